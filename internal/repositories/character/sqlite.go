package character

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
	"github.com/KirkDiggler/rpg-sheets/internal/pkg/clock"
)

const createCharactersTable = `CREATE TABLE IF NOT EXISTS characters (
	category   TEXT NOT NULL,
	record_key TEXT NOT NULL,
	name       TEXT NOT NULL,
	document   TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (category, record_key)
)`

// SQLiteConfig contains configuration for the SQLite character repository.
type SQLiteConfig struct {
	// Path is the database file; parent directories are created
	Path  string
	Clock clock.Clock
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Path", cfg.Path, vb)
	return vb.Build()
}

// SQLite persists character records in a single SQLite table
type SQLite struct {
	db    *sql.DB
	clock clock.Clock
}

var _ Repository = (*SQLite)(nil)

// NewSQLite opens the database at cfg.Path and ensures the schema exists
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLite, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	cleanPath := filepath.Clean(cfg.Path)
	if err := ensureDir(filepath.Dir(cleanPath)); err != nil {
		return nil, errors.Wrapf(err, "failed to create directory for %s", cleanPath)
	}

	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite db")
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping sqlite db")
	}
	if _, err := db.ExecContext(ctx, createCharactersTable); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create characters table")
	}

	return &SQLite{db: db, clock: c}, nil
}

// Close closes the database handle
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save upserts a record
func (s *SQLite) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	stored, key, err := prepareSave(input)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal character")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO characters (category, record_key, name, document, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (category, record_key) DO UPDATE SET
		   name = excluded.name,
		   document = excluded.document,
		   updated_at = excluded.updated_at`,
		string(stored.Type),
		key,
		strings.TrimSpace(stored.Name),
		string(data),
		s.clock.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save character %s", key)
	}

	slog.DebugContext(ctx, "character saved",
		"backend", "sqlite",
		"category", stored.Type,
		"key", key)

	return &SaveOutput{Character: stored, Key: key}, nil
}

// Get loads a record
func (s *SQLite) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	key, err := validateSelector(input.Category, input.Name)
	if err != nil {
		return nil, err
	}

	var document string
	err = s.db.QueryRowContext(ctx,
		`SELECT document FROM characters WHERE category = ? AND record_key = ?`,
		string(input.Category), key,
	).Scan(&document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("character %s not found", key).
				WithMeta("category", string(input.Category))
		}
		return nil, errors.Wrapf(err, "failed to get character %s", key)
	}

	c, err := decodeDocument([]byte(document), input.Category)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Character: c}, nil
}

// Delete removes a record
func (s *SQLite) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	key, err := validateSelector(input.Category, input.Name)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM characters WHERE category = ? AND record_key = ?`,
		string(input.Category), key,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete character %s", key)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete character %s", key)
	}
	if affected == 0 {
		return nil, errors.NotFoundf("character %s not found", key).
			WithMeta("category", string(input.Category))
	}

	slog.DebugContext(ctx, "character deleted",
		"backend", "sqlite",
		"category", input.Category,
		"key", key)

	return &DeleteOutput{}, nil
}

// List returns record names ordered by key
func (s *SQLite) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if err := validateCategory(input.Category); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT record_key FROM characters WHERE category = ? ORDER BY record_key`,
		string(input.Category),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", input.Category)
	}
	defer func() { _ = rows.Close() }()

	names := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, errors.Wrapf(err, "failed to scan %s key", input.Category)
		}
		names = append(names, entities.NameFromKey(key))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", input.Category)
	}

	return &ListOutput{Names: names}, nil
}

// UpdatedAt reports when a record was last written
func (s *SQLite) UpdatedAt(ctx context.Context, category entities.Category, name string) (time.Time, error) {
	key, err := validateSelector(category, name)
	if err != nil {
		return time.Time{}, err
	}

	var millis int64
	err = s.db.QueryRowContext(ctx,
		`SELECT updated_at FROM characters WHERE category = ? AND record_key = ?`,
		string(category), key,
	).Scan(&millis)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, errors.NotFoundf("character %s not found", key)
		}
		return time.Time{}, errors.Wrapf(err, "failed to get character %s", key)
	}
	return time.UnixMilli(millis).UTC(), nil
}
