package store

import (
	"context"
	"time"

	"github.com/crawlkit/jobident/jobid"
)

// Record is a stored job: its derived identifier, the prefix and parameters
// it was derived from, and when it was first stored. Persisting the inputs
// alongside the ID lets any reader verify identity-parameter correspondence
// by re-deriving.
type Record struct {
	// ID is the derived identifier, the record's primary key.
	ID string `json:"id"`

	// Prefix is the namespace the ID was derived under.
	Prefix string `json:"prefix"`

	// Params are the job-defining parameters.
	Params jobid.Params `json:"params"`

	// CreatedAt is when the record was first stored.
	CreatedAt time.Time `json:"created_at"`
}

// NewRecord derives the identifier for params under prefix and returns the
// record ready to store.
func NewRecord(params jobid.Params, prefix string) Record {
	return Record{
		ID:        jobid.Derive(params, prefix),
		Prefix:    prefix,
		Params:    params,
		CreatedAt: time.Now().UTC(),
	}
}

// Verify reports whether the record's ID still matches its stored parameters
// and prefix. A false result means the record was tampered with or written
// by a caller that maintained identity separately from derivation.
func (r Record) Verify() bool {
	return jobid.Derive(r.Params, r.Prefix) == r.ID
}

// Store is the job record store. Implementations must be safe for
// concurrent use.
type Store interface {
	// Put writes a record unconditionally. A zero ttl stores without expiry.
	Put(ctx context.Context, rec Record, ttl time.Duration) error

	// PutIfAbsent writes a record only if its ID is not already present and
	// reports whether the write happened. A false result is a dedup hit: a
	// job with identical parameters already exists.
	PutIfAbsent(ctx context.Context, rec Record, ttl time.Duration) (bool, error)

	// Get returns the record for id. The second result is false if no record
	// exists.
	Get(ctx context.Context, id string) (*Record, bool, error)

	// Delete removes the record for id. Deleting a missing record is not an
	// error.
	Delete(ctx context.Context, id string) error

	// Ping verifies connectivity to the backing store.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}
