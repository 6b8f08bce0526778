package storage

import (
	"context"

	"auctionscout/internal/scraper"
)

// Repository persists auction rows and exposes the dedup keys of
// everything already recorded.
type Repository interface {
	// LoadExistingKeys reads all persisted rows and returns their dedup
	// keys (title|link).
	LoadExistingKeys(ctx context.Context) (map[string]struct{}, error)

	// Append persists new rows after the existing content. It never
	// overwrites and is a no-op for empty input.
	Append(ctx context.Context, rows []scraper.Auction) error

	Close() error
}
