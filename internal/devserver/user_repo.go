package devserver

import (
	"vitrin/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByUsername(username string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
  SELECT id, username, email, first_name, last_name, image, password_hash
  FROM users WHERE LOWER(username) = LOWER(?)`, username)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
