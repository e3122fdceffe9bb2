// Package sqlite provides a SQLite-backed forecast cache.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/valleycast/internal/platform/grpc/pagination"
	sqlitemigrate "github.com/louisbranch/valleycast/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/valleycast/internal/services/forecast/storage"
	"github.com/louisbranch/valleycast/internal/services/forecast/storage/sqlite/migrations"
	"github.com/louisbranch/valleycast/internal/u64"
)

// cursorStride packs (first_day, days) into one ordered page cursor. Day
// counts must stay below it, and first days at or below maxFirstDay so the
// packed cursor fits an int64.
const (
	cursorStride = 1000
	maxFirstDay  = (math.MaxInt64 - (cursorStride - 1)) / cursorStride
)

// Store persists forecast payloads in SQLite.
type Store struct {
	sqlDB *sql.DB
	clock func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite forecast store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, clock: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func validateKey(key storage.Key) error {
	if key.FirstDay < 1 || key.FirstDay > maxFirstDay {
		return fmt.Errorf("first day must be between 1 and %d", int64(maxFirstDay))
	}
	if key.Days < 1 || key.Days >= cursorStride {
		return fmt.Errorf("days must be between 1 and %d", cursorStride-1)
	}
	return nil
}

// PutForecast inserts or replaces one forecast. A zero checksum is computed
// from the payload; a non-zero one must match it.
func (s *Store) PutForecast(ctx context.Context, record storage.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := validateKey(record.Key); err != nil {
		return err
	}
	if len(record.Payload) == 0 {
		return fmt.Errorf("payload is required")
	}
	if record.Checksum == 0 {
		record.Checksum = storage.Checksum(record.Payload)
	}
	if err := record.Verify(); err != nil {
		return err
	}
	createdAt := record.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = s.clock().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO forecasts (game_id, first_day, days, payload, checksum, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (game_id, first_day, days) DO UPDATE SET
		   payload = excluded.payload,
		   checksum = excluded.checksum,
		   created_at = excluded.created_at`,
		record.GameID.Padded(),
		record.FirstDay,
		record.Days,
		record.Payload,
		// database/sql rejects uint64 values with the high bit set.
		int64(record.Checksum),
		toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("put forecast: %w", err)
	}
	return nil
}

// GetForecast returns one forecast after verifying its checksum.
func (s *Store) GetForecast(ctx context.Context, key storage.Key) (storage.Record, error) {
	if err := ctx.Err(); err != nil {
		return storage.Record{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Record{}, fmt.Errorf("storage is not configured")
	}
	if err := validateKey(key); err != nil {
		return storage.Record{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT payload, checksum, created_at
		   FROM forecasts
		  WHERE game_id = ? AND first_day = ? AND days = ?`,
		key.GameID.Padded(),
		key.FirstDay,
		key.Days,
	)

	record := storage.Record{Key: key}
	var checksum, createdAt int64
	if err := row.Scan(&record.Payload, &checksum, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Record{}, storage.ErrNotFound
		}
		return storage.Record{}, fmt.Errorf("get forecast: %w", err)
	}
	record.Checksum = uint64(checksum)
	record.CreatedAt = fromMillis(createdAt)
	if err := record.Verify(); err != nil {
		return storage.Record{}, fmt.Errorf("get forecast %s day %d: %w", key.GameID, key.FirstDay, err)
	}
	return record, nil
}

// ListForecasts returns one page of cached forecasts for a game ordered by
// first day, then length.
func (s *Store) ListForecasts(ctx context.Context, gameID u64.Value, pageSize int, pageToken string) (storage.Page, error) {
	if err := ctx.Err(); err != nil {
		return storage.Page{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Page{}, fmt.Errorf("storage is not configured")
	}
	if pageSize <= 0 {
		return storage.Page{}, fmt.Errorf("page size must be greater than zero")
	}
	after, err := pagination.DecodeCursor(pageToken)
	if err != nil {
		return storage.Page{}, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT first_day, days, created_at
		   FROM forecasts
		  WHERE game_id = ? AND first_day * ? + days > ?
		  ORDER BY first_day ASC, days ASC
		  LIMIT ?`,
		gameID.Padded(),
		cursorStride,
		after,
		pageSize+1,
	)
	if err != nil {
		return storage.Page{}, fmt.Errorf("list forecasts: %w", err)
	}
	defer rows.Close()

	page := storage.Page{Forecasts: make([]storage.Summary, 0, pageSize)}
	for rows.Next() {
		summary := storage.Summary{Key: storage.Key{GameID: gameID}}
		var createdAt int64
		if err := rows.Scan(&summary.FirstDay, &summary.Days, &createdAt); err != nil {
			return storage.Page{}, fmt.Errorf("list forecasts: %w", err)
		}
		summary.CreatedAt = fromMillis(createdAt)
		page.Forecasts = append(page.Forecasts, summary)
	}
	if err := rows.Err(); err != nil {
		return storage.Page{}, fmt.Errorf("list forecasts: %w", err)
	}
	if len(page.Forecasts) > pageSize {
		last := page.Forecasts[pageSize-1]
		page.NextPageToken = pagination.EncodeCursor(last.FirstDay*cursorStride + int64(last.Days))
		page.Forecasts = page.Forecasts[:pageSize]
	}
	return page, nil
}

var _ storage.Store = (*Store)(nil)
