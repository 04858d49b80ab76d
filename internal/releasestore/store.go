// Package releasestore persists an append-only history of package releases.
package releasestore

import (
	"context"
	"time"
)

// Record is one completed release.
type Record struct {
	ID       string    `json:"id"`
	Package  string    `json:"package"`
	Version  string    `json:"version,omitempty"`
	Revision string    `json:"revision"`
	Message  string    `json:"message,omitempty"`
	Variants []int     `json:"variants,omitempty"`
	At       time.Time `json:"at"`
}

// Store defines the interface for persisting and querying release records.
type Store interface {
	// Append adds a release record.
	Append(ctx context.Context, rec Record) error

	// ByPackage retrieves all records for a package, oldest first.
	ByPackage(ctx context.Context, name string) ([]Record, error)

	// Close closes the store and releases resources.
	Close() error
}
