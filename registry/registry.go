// Package registry lets crawl workers announce the jobs they hold to an
// etcd cluster.
//
// An announcement is keyed by the job's derived identifier, so two workers
// that announce jobs with identical parameters and prefix collide on the
// same key: the registry is where derivation-based deduplication becomes
// visible across processes. Announcements are held under an etcd lease and
// disappear automatically when a worker crashes or loses connectivity.
package registry

import (
	"context"
	"time"

	"github.com/crawlkit/jobident/jobid"
)

// Announcement describes a job currently held by a worker.
type Announcement struct {
	// JobID is the derived identifier of the job, and the announcement key.
	JobID string `json:"job_id"`

	// Prefix is the namespace the identifier was derived under.
	Prefix string `json:"prefix"`

	// Params are the job-defining parameters. Readers can re-derive JobID
	// from Prefix and Params to verify the announcement.
	Params jobid.Params `json:"params"`

	// Worker identifies the worker holding the job.
	Worker string `json:"worker"`

	// AnnouncedAt is when the worker announced the job.
	AnnouncedAt time.Time `json:"announced_at"`
}

// Registry is the job announcement interface. Implementations must be safe
// for concurrent use.
type Registry interface {
	// Announce publishes the job under a lease. The announcement stays
	// visible as long as the lease is renewed; announcing the same JobID
	// again replaces the entry and restarts its keepalive.
	Announce(ctx context.Context, a Announcement) error

	// Withdraw removes the announcement for jobID by revoking its lease.
	// Withdrawing an unannounced job is a no-op.
	Withdraw(ctx context.Context, jobID string) error

	// List returns all live announcements in the namespace.
	List(ctx context.Context) ([]Announcement, error)

	// Watch emits the full announcement list whenever it changes. The
	// initial state is sent immediately. The channel closes when the context
	// is canceled or the registry is closed.
	Watch(ctx context.Context) (<-chan []Announcement, error)

	// Close stops all keepalive goroutines and releases the connection.
	Close() error
}

// Config holds etcd connection settings.
type Config struct {
	// Endpoints is the list of etcd endpoints ("host:port").
	Endpoints []string `json:"endpoints"`

	// Namespace is the etcd key prefix for all announcements.
	// Default: "jobident".
	Namespace string `json:"namespace"`

	// TTL is the announcement lease time-to-live in seconds. A worker that
	// stops renewing within this interval drops out of the registry.
	// Default: 30.
	TTL int `json:"ttl"`

	// TLS enables mutual TLS for the etcd connection. Nil disables TLS.
	TLS *TLSConfig `json:"tls"`
}

// TLSConfig holds certificate paths for mutual TLS with etcd.
type TLSConfig struct {
	// Enabled determines whether TLS is active.
	Enabled bool `json:"enabled"`

	// CertFile is the path to the client certificate (PEM).
	CertFile string `json:"cert_file"`

	// KeyFile is the path to the client private key (PEM).
	KeyFile string `json:"key_file"`

	// CAFile is the path to the CA certificate used to verify the server.
	CAFile string `json:"ca_file"`
}
