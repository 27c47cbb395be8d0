package prefs

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Keys and values for the persisted client-local state. The selected UI
// language survives restarts; everything else (cart included) does not.
const (
	KeyLanguage     = "userLanguage"
	DefaultLanguage = "en"
)

var Languages = []string{"en", "tr"}

var ErrUnknownLanguage = errors.New("unknown language code")

// Store is a small sqlite-backed key-value store.
type Store struct {
	db *sqlx.DB
}

func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS prefs(
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(schema)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Get(key string) (string, error) {
	var v string
	err := s.db.Get(&v, `SELECT value FROM prefs WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return v, err
}

func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
INSERT INTO prefs(key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	return err
}

// Language returns the stored UI language, defaulting when unset.
func (s *Store) Language() (string, error) {
	v, err := s.Get(KeyLanguage)
	if err != nil {
		return "", err
	}
	if v == "" {
		return DefaultLanguage, nil
	}
	return v, nil
}

// SetLanguage rejects codes outside the known set.
func (s *Store) SetLanguage(code string) error {
	for _, l := range Languages {
		if l == code {
			return s.Set(KeyLanguage, code)
		}
	}
	return ErrUnknownLanguage
}
