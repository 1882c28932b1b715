package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/worttrainer/internal/trainer"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store is a SQLite backed state store.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the state database at path and migrates it to the
// latest schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	if err := migrateUp(path); err != nil {
		return nil, fmt.Errorf("failed to migrate state database: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

func migrateUp(path string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite3://"+path)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveState replaces the saved items, selection and score with state.
func (s *Store) SaveState(ctx context.Context, state trainer.State) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
			return fmt.Errorf("failed to clear items: %w", err)
		}

		for i, item := range state.Items {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO items(position, text, url, attribution) VALUES (?, ?, ?, ?)`,
				i, item.Text, item.URL, item.Attribution)
			if err != nil {
				return fmt.Errorf("failed to save item %q: %w", item.Text, err)
			}
		}

		var selected sql.NullInt64
		if state.Selected != nil {
			selected = sql.NullInt64{Int64: int64(*state.Selected), Valid: true}
		}

		_, err := tx.ExecContext(ctx, `
		INSERT INTO state(id, selected, correct, incorrect, updated_at) VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			selected=excluded.selected,
			correct=excluded.correct,
			incorrect=excluded.incorrect,
			updated_at=excluded.updated_at;
		`, selected, state.Score.Correct, state.Score.Incorrect, now())
		if err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}
		return nil
	})
}

// LoadState returns the saved state. The boolean is false if nothing has
// been saved yet.
func (s *Store) LoadState(ctx context.Context) (trainer.State, bool, error) {
	var (
		state    trainer.State
		selected sql.NullInt64
	)

	row := s.db.QueryRowContext(ctx, `SELECT selected, correct, incorrect FROM state WHERE id = 1`)
	if err := row.Scan(&selected, &state.Score.Correct, &state.Score.Incorrect); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return trainer.State{}, false, nil
		}
		return trainer.State{}, false, fmt.Errorf("failed to load state: %w", err)
	}
	if selected.Valid {
		idx := int(selected.Int64)
		state.Selected = &idx
	}

	rows, err := s.db.QueryContext(ctx, `SELECT text, url, attribution FROM items ORDER BY position`)
	if err != nil {
		return trainer.State{}, false, fmt.Errorf("failed to load items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item trainer.Item
		if err := rows.Scan(&item.Text, &item.URL, &item.Attribution); err != nil {
			return trainer.State{}, false, fmt.Errorf("failed to load items: %w", err)
		}
		state.Items = append(state.Items, item)
	}
	if err := rows.Err(); err != nil {
		return trainer.State{}, false, fmt.Errorf("failed to load items: %w", err)
	}

	return state, true, nil
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// now returns UTC time truncated to seconds (consistent with SQLite default).
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
