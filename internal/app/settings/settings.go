package settings

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"aihub/internal/app/errors"
	"aihub/internal/app/model"
)

// Choice records where a capability's provider runs. It is written by
// the onboarding/settings layer and only read at provider resolution.
type Choice string

const (
	ChoiceLocal Choice = "local"
	ChoiceCloud Choice = "cloud"
)

// Valid reports whether c is an allowed choice value.
func (c Choice) Valid() bool {
	return c == ChoiceLocal || c == ChoiceCloud
}

// Store persists the per-capability provider choice.
type Store interface {
	Get(capability model.Capability) (Choice, error)
	Set(capability model.Capability, choice Choice) error
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS provider_choice (
	capability TEXT PRIMARY KEY,
	choice     TEXT NOT NULL
)`

// SQLiteStore is a Store backed by a sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the settings database at path.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", path))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open settings database")
	}
	return NewSQLiteStore(db)
}

// NewSQLiteStore initializes the schema on an existing connection.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(createTableSQL); err != nil {
		return nil, errors.Wrap(err, "failed to initialize settings schema")
	}
	return &SQLiteStore{db: db}, nil
}

// Get returns the persisted choice for a capability. An unset
// capability defaults to local.
func (s *SQLiteStore) Get(capability model.Capability) (Choice, error) {
	var choice string
	err := s.db.QueryRow(
		"SELECT choice FROM provider_choice WHERE capability = ?",
		string(capability),
	).Scan(&choice)
	if err == sql.ErrNoRows {
		return ChoiceLocal, nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to read provider choice for %s", capability)
	}

	c := Choice(choice)
	if !c.Valid() {
		return "", errors.WithCause(errors.ErrInvalidChoice,
			errors.Newf("stored choice %q for %s", choice, capability))
	}
	return c, nil
}

// Set persists the choice for a capability, replacing any prior value.
func (s *SQLiteStore) Set(capability model.Capability, choice Choice) error {
	if !capability.Valid() {
		return errors.Newf("unknown capability %q", capability)
	}
	if !choice.Valid() {
		return errors.WithCause(errors.ErrInvalidChoice, errors.Newf("choice %q", choice))
	}

	_, err := s.db.Exec(
		`INSERT INTO provider_choice (capability, choice) VALUES (?, ?)
		 ON CONFLICT(capability) DO UPDATE SET choice = excluded.choice`,
		string(capability), string(choice),
	)
	return errors.Wrapf(err, "failed to persist provider choice for %s", capability)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
