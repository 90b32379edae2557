package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/mcoot/hangbot/internal/model"
	"github.com/mcoot/hangbot/internal/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New opens the database at path and applies pending migrations
func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	// SQLite serialises writers; a single connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Stats operations

func (s *Storage) SaveStats(ctx context.Context, stats map[model.PlayerID]model.PlayerStats) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM player_stats`); err != nil {
		return err
	}
	for id, st := range stats {
		data, err := json.Marshal(st)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO player_stats (player_id, data) VALUES (?, ?)`, string(id), data); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Storage) GetStats(ctx context.Context) (map[model.PlayerID]model.PlayerStats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT player_id, data FROM player_stats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[model.PlayerID]model.PlayerStats)
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		var st model.PlayerStats
		if err := json.Unmarshal(data, &st); err != nil {
			continue // Skip invalid data
		}
		stats[model.PlayerID(id)] = st
	}
	return stats, rows.Err()
}

// Recent word operations

func (s *Storage) AddRecentWord(ctx context.Context, word string, window int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO recent_words (word) VALUES (?)`, strings.ToUpper(word)); err != nil {
		return err
	}
	if window > 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM recent_words WHERE id NOT IN (SELECT id FROM recent_words ORDER BY id DESC LIMIT ?)`,
			window); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Storage) IsRecentWord(ctx context.Context, word string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recent_words WHERE word = ?`, strings.ToUpper(word)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Render operations

func (s *Storage) SaveRender(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO renders (cache_key, data) VALUES (?, ?)`, key, data)
	return err
}

func (s *Storage) GetRender(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM renders WHERE cache_key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrRenderNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	var loaded int
	err := s.db.QueryRowContext(ctx, `SELECT loaded FROM dictionary_state WHERE id = 1`).Scan(&loaded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrDictionaryNotLoaded
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT word FROM dictionary_words`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	words := []string{}
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM dictionary_words`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO dictionary_words (word) VALUES (?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, w := range words {
		if _, err := stmt.ExecContext(ctx, w); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO dictionary_state (id, loaded) VALUES (1, 1)`); err != nil {
		return err
	}
	return tx.Commit()
}
