package history

import (
	"context"

	"github.com/google/uuid"
)

// DefaultMaxItems is the history cap used when none is configured.
const DefaultMaxItems = 50

// Store persists a capped, newest-first list of records. When an append
// pushes the list past its cap the oldest records are evicted.
type Store interface {
	// Append adds r as the newest record.
	Append(ctx context.Context, r Record) error

	// List returns up to limit records, newest first. A limit of zero or
	// less returns everything.
	List(ctx context.Context, limit int) ([]Record, error)

	// Remove deletes a record by ID. Returns ErrRecordNotFound if absent.
	Remove(ctx context.Context, id uuid.UUID) error

	// Clear deletes every record.
	Clear(ctx context.Context) error
}

// Option configures a store.
type Option func(*storeOptions)

type storeOptions struct {
	maxItems int
}

// WithMaxItems sets the history cap. Values below one are ignored.
func WithMaxItems(n int) Option {
	return func(o *storeOptions) {
		if n > 0 {
			o.maxItems = n
		}
	}
}

func newOptions(opts []Option) storeOptions {
	o := storeOptions{maxItems: DefaultMaxItems}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
