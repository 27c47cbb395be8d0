package prefs_test

import (
	"testing"

	"vitrin/internal/prefs"
)

func memstore(t *testing.T) *prefs.Store {
	t.Helper()
	s, err := prefs.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLanguageDefaultsToEnglish(t *testing.T) {
	s := memstore(t)
	lang, err := s.Language()
	if err != nil {
		t.Fatal(err)
	}
	if lang != "en" {
		t.Fatalf("default language = %q, want en", lang)
	}
}

func TestLanguageRoundTrip(t *testing.T) {
	s := memstore(t)
	if err := s.SetLanguage("tr"); err != nil {
		t.Fatal(err)
	}
	lang, err := s.Language()
	if err != nil {
		t.Fatal(err)
	}
	if lang != "tr" {
		t.Fatalf("language = %q, want tr", lang)
	}

	// Overwrite under the same key, no duplicate rows.
	if err := s.SetLanguage("en"); err != nil {
		t.Fatal(err)
	}
	if lang, _ = s.Language(); lang != "en" {
		t.Fatalf("language = %q, want en", lang)
	}
}

func TestUnknownLanguageRejected(t *testing.T) {
	s := memstore(t)
	if err := s.SetLanguage("xx"); err != prefs.ErrUnknownLanguage {
		t.Fatalf("want ErrUnknownLanguage, got %v", err)
	}
}

func TestRawKeyRoundTrip(t *testing.T) {
	s := memstore(t)
	v, err := s.Get("missing")
	if err != nil {
		t.Fatal(err)
	}
	if v != "" {
		t.Fatalf("missing key should read empty, got %q", v)
	}
	if err := s.Set("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", "v2"); err != nil {
		t.Fatal(err)
	}
	if v, _ = s.Get("k"); v != "v2" {
		t.Fatalf("got %q, want v2", v)
	}
}
