package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// RequiredTables lists the tables a database must contain to be opened.
var RequiredTables = []string{"continent", "country", "region"}

// Store holds the single live connection to a geographic database.
type Store struct {
	db   *sqlx.DB
	path string
}

// Open opens the existing SQLite database at path.
//
// The file is opened read/write and is never created. After the connection
// is verified, foreign key enforcement is switched on and every table in
// RequiredTables is checked. A missing table closes the connection and
// returns an OpenError with ErrCodeInvalidDatabase; any driver failure
// returns ErrCodeDatabaseError.
func Open(path string) (*Store, error) {
	return open(path, "rw")
}

// Create opens the database at path, creating the file if needed, and
// applies the bundled schema. Existing tables are left alone.
func Create(path string) (*Store, error) {
	db, err := connect(path, "rwc")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, databaseError(path, "failed to apply schema", err)
	}
	db.Close()

	return open(path, "rw")
}

func open(path, mode string) (*Store, error) {
	db, err := connect(path, mode)
	if err != nil {
		return nil, err
	}

	if err := verifySchema(db, path); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// connect opens a single-connection pool and applies pragmas.
func connect(path, mode string) (*sqlx.DB, error) {
	if path == "" {
		return nil, databaseError(path, "no database path given", nil)
	}

	db, err := sqlx.Open("sqlite3", fileURI(path, mode))
	if err != nil {
		return nil, databaseError(path, "failed to open database", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, databaseError(path, "failed to connect to database", err)
	}

	// SQLite only supports one writer at a time; the engine needs exactly one
	// connection so pragmas stick.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, databaseError(path, "failed to apply pragmas", err)
	}

	return db, nil
}

// uriEscaper escapes the characters SQLite gives meaning to inside a file:
// URI path.
var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// fileURI builds the DSN for path opened with mode (rw or rwc).
func fileURI(path, mode string) string {
	return "file:" + uriEscaper.Replace(path) + "?mode=" + mode
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// verifySchema checks that every required table exists.
func verifySchema(db *sqlx.DB, path string) error {
	for _, table := range RequiredTables {
		var name string
		err := db.Get(&name, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		if errors.Is(err, sql.ErrNoRows) {
			return invalidDatabase(path, table)
		}
		if err != nil {
			return databaseError(path, "failed to read schema", err)
		}
	}
	return nil
}

// Close closes the database connection.
// Closing an already closed store is a no-op.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// IsOpen reports whether the store still holds a live connection.
func (s *Store) IsOpen() bool {
	return s != nil && s.db != nil
}

// Path returns the path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// DB returns the underlying connection for the repositories.
func (s *Store) DB() *sqlx.DB {
	return s.db
}
