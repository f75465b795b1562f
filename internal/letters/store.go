package letters

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store records letter conversions in a local SQLite ledger.
// A nil *Store is valid and records nothing, which is how the service
// runs when auditing is disabled.
type Store struct {
	db *sql.DB
}

// ConversionRecord is one row of the conversion ledger
type ConversionRecord struct {
	ID         int64  `json:"id"`
	Path       string `json:"path"`
	Format     string `json:"format"`
	Strategy   string `json:"strategy,omitempty"`
	CharCount  int    `json:"char_count"`
	DurationMS int64  `json:"duration_ms"`
	CreatedAt  string `json:"created_at"`
}

// ConversionSummary aggregates the conversion ledger
type ConversionSummary struct {
	TotalConversions int            `json:"total_conversions"`
	TotalCharacters  int64          `json:"total_characters"`
	CountByStrategy  map[string]int `json:"count_by_strategy"`
	CountByFormat    map[string]int `json:"count_by_format"`
}

// NewStore opens or creates the conversion ledger at databasePath
func NewStore(databasePath string) (*Store, error) {
	if databasePath == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}

	db, err := sql.Open("sqlite3", databasePath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create audit schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			format TEXT NOT NULL,
			strategy TEXT,
			char_count INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_path ON conversions(path)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	return nil
}

// RecordConversion appends one conversion to the ledger
func (s *Store) RecordConversion(ctx context.Context, rec ConversionRecord) error {
	if s == nil {
		return nil
	}

	createdAt := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (path, format, strategy, char_count, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Path, rec.Format, rec.Strategy, rec.CharCount, rec.DurationMS, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record conversion: %w", err)
	}

	return nil
}

// RecentConversions returns the most recent ledger rows, newest first
func (s *Store) RecentConversions(ctx context.Context, limit int) ([]ConversionRecord, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, format, strategy, char_count, duration_ms, created_at
		 FROM conversions ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions: %w", err)
	}
	defer rows.Close()

	var records []ConversionRecord
	for rows.Next() {
		var rec ConversionRecord
		var strategy sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Path, &rec.Format, &strategy,
			&rec.CharCount, &rec.DurationMS, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversion row: %w", err)
		}
		rec.Strategy = strategy.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read conversion rows: %w", err)
	}

	return records, nil
}

// Summary aggregates the whole ledger
func (s *Store) Summary(ctx context.Context) (*ConversionSummary, error) {
	if s == nil {
		return &ConversionSummary{
			CountByStrategy: map[string]int{},
			CountByFormat:   map[string]int{},
		}, nil
	}

	summary := &ConversionSummary{
		CountByStrategy: make(map[string]int),
		CountByFormat:   make(map[string]int),
	}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(char_count), 0) FROM conversions`,
	).Scan(&summary.TotalConversions, &summary.TotalCharacters)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize conversions: %w", err)
	}

	if err := s.countBy(ctx, "strategy", summary.CountByStrategy); err != nil {
		return nil, err
	}
	if err := s.countBy(ctx, "format", summary.CountByFormat); err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *Store) countBy(ctx context.Context, column string, out map[string]int) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT COALESCE(`+column+`, ''), COUNT(*) FROM conversions GROUP BY `+column,
	)
	if err != nil {
		return fmt.Errorf("failed to group conversions by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("failed to scan %s group: %w", column, err)
		}
		if key != "" {
			out[key] = count
		}
	}
	return rows.Err()
}
