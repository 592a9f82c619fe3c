package dataset

import (
	"context"
	"database/sql"
	"fighterdata/internal/fighters"
	"fighterdata/lib/sqliteutil"
	"fmt"
)

type Config struct {
	Path     string            `json:"path"`
	Mirrors  []string          `json:"mirrors"`
	Database sqliteutil.Config `json:"database"`
}

// Store is where a run loads the dataset from and saves it back to. The
// JSON file at Path is the source of truth; mirrors only receive copies.
type Store struct {
	Path    string
	Mirrors []string

	db  *sql.DB
	sql *SQLMirror
}

func OpenStore(ctx context.Context, config Config) (*Store, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("dataset path was not specified")
	}
	s := &Store{
		Path:    config.Path,
		Mirrors: config.Mirrors,
	}
	if !config.Database.Enabled() {
		return s, nil
	}

	db, err := config.Database.OpenDB()
	if err != nil {
		return nil, fmt.Errorf("open database mirror: %w", err)
	}
	mirror, err := NewSQLMirror(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.db = db
	s.sql = &mirror
	return s, nil
}

func (s *Store) Load(ctx context.Context) ([]fighters.Fighter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(s.Path)
}

func (s *Store) Save(ctx context.Context, records []fighters.Fighter) error {
	err := Save(ctx, records, s.Path, s.Mirrors...)
	if err != nil {
		return err
	}
	if s.sql == nil {
		return nil
	}
	err = s.sql.Replace(ctx, records)
	if err != nil {
		return fmt.Errorf("database mirror: %w", err)
	}
	return nil
}

// SQL returns the database mirror, or nil when none is configured.
func (s *Store) SQL() *SQLMirror {
	return s.sql
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
