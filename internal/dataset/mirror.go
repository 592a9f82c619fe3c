package dataset

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fighterdata/internal/fighters"
	"fmt"
)

//go:embed schema.sql
var Schema string

// SQLMirror keeps a copy of the dataset in a SQL table, one row per
// record in dataset order.
type SQLMirror struct {
	db *sql.DB
}

func NewSQLMirror(ctx context.Context, db *sql.DB) (SQLMirror, error) {
	_, err := db.ExecContext(ctx, Schema)
	if err != nil {
		return SQLMirror{}, fmt.Errorf("create schema: %w", err)
	}
	return SQLMirror{db: db}, nil
}

// Replace swaps the mirrored rows for records in a single transaction.
func (m SQLMirror) Replace(ctx context.Context, records []fighters.Fighter) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "delete from fighter")
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "insert into fighter(position, name, record) values (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, f := range records {
		encoded, err := json.Marshal(f)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx, i, f.Name, string(encoded))
		if err != nil {
			return fmt.Errorf("insert %s: %w", f.Name, err)
		}
	}

	return tx.Commit()
}

// Records reads the mirrored dataset back in order.
func (m SQLMirror) Records(ctx context.Context) ([]fighters.Fighter, error) {
	rows, err := m.db.QueryContext(ctx, "select record from fighter order by position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []fighters.Fighter{}
	for rows.Next() {
		var raw string
		err = rows.Scan(&raw)
		if err != nil {
			return nil, err
		}
		var f fighters.Fighter
		err = json.Unmarshal([]byte(raw), &f)
		if err != nil {
			return nil, err
		}
		records = append(records, f)
	}
	return records, rows.Err()
}
