// Package storage defines persistence contracts for the forecast cache.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/louisbranch/valleycast/internal/u64"
)

var (
	// ErrNotFound indicates a requested forecast record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrChecksumMismatch indicates a stored payload no longer matches the
	// checksum recorded with it.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")
)

// Key identifies one cached forecast.
type Key struct {
	GameID   u64.Value
	FirstDay int64
	Days     int
}

// Record is one cached forecast payload.
type Record struct {
	Key
	Payload   []byte
	Checksum  uint64
	CreatedAt time.Time
}

// Summary describes a cached forecast without its payload.
type Summary struct {
	Key
	CreatedAt time.Time
}

// Page is one page of cached forecast summaries.
type Page struct {
	Forecasts     []Summary
	NextPageToken string
}

// Store persists computed forecasts so repeated requests skip the scan.
type Store interface {
	PutForecast(ctx context.Context, record Record) error
	GetForecast(ctx context.Context, key Key) (Record, error)
	ListForecasts(ctx context.Context, gameID u64.Value, pageSize int, pageToken string) (Page, error)
}

// Checksum hashes a payload the way stores record it.
func Checksum(payload []byte) uint64 {
	return xxhash.Sum64(payload)
}

// Verify reports ErrChecksumMismatch when the record payload does not hash to
// its recorded checksum.
func (r Record) Verify() error {
	if Checksum(r.Payload) != r.Checksum {
		return ErrChecksumMismatch
	}
	return nil
}
