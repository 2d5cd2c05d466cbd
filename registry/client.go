package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// Client implements Registry against an etcd cluster.
//
// Announcements are stored under /{namespace}/jobs/{job-id} with a lease.
// The client renews each lease every TTL/3 in a background goroutine, so an
// announcement survives exactly as long as its worker does.
//
// Thread-safety: all methods are safe for concurrent use.
type Client struct {
	client    *clientv3.Client
	namespace string
	ttl       int
	logger    *slog.Logger

	mu         sync.RWMutex
	leases     map[string]clientv3.LeaseID // job ID -> lease
	cancelFns  map[string]context.CancelFunc
	wg         sync.WaitGroup
	closed     bool
	closedChan chan struct{}
}

// NewClient connects to etcd and verifies connectivity. The returned client
// must be closed with Close to stop keepalive goroutines.
//
// A nil logger defaults to slog.Default().
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("registry endpoints cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "jobident"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30
	}

	clientCfg := clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: 5 * time.Second,
	}
	if cfg.TLS != nil && cfg.TLS.Enabled {
		tlsConfig, err := cfg.TLS.clientConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to configure TLS: %w", err)
		}
		clientCfg.TLS = tlsConfig
	}

	cli, err := clientv3.New(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := cli.Get(ctx, "health-check"); err != nil && err != context.DeadlineExceeded {
		cli.Close()
		return nil, fmt.Errorf("etcd health check failed: %w", err)
	}

	return &Client{
		client:     cli,
		namespace:  namespace,
		ttl:        ttl,
		logger:     logger,
		leases:     make(map[string]clientv3.LeaseID),
		cancelFns:  make(map[string]context.CancelFunc),
		closedChan: make(chan struct{}),
	}, nil
}

// Announce publishes the job under a fresh lease and starts its keepalive.
func (c *Client) Announce(ctx context.Context, a Announcement) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("registry client is closed")
	}

	// Re-announcing replaces the entry; stop the old keepalive first.
	if cancelFn, exists := c.cancelFns[a.JobID]; exists {
		cancelFn()
		delete(c.cancelFns, a.JobID)
	}

	lease, err := c.client.Grant(ctx, int64(c.ttl))
	if err != nil {
		return fmt.Errorf("failed to create lease: %w", err)
	}

	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal announcement: %w", err)
	}

	if _, err := c.client.Put(ctx, c.jobKey(a.JobID), string(data), clientv3.WithLease(lease.ID)); err != nil {
		return fmt.Errorf("failed to announce job %s: %w", a.JobID, err)
	}

	c.leases[a.JobID] = lease.ID

	keepaliveCtx, cancel := context.WithCancel(context.Background())
	c.cancelFns[a.JobID] = cancel
	c.wg.Add(1)
	go c.keepalive(keepaliveCtx, lease.ID, a.JobID)

	return nil
}

// Withdraw revokes the lease for jobID, removing its announcement.
func (c *Client) Withdraw(ctx context.Context, jobID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("registry client is closed")
	}

	if cancelFn, exists := c.cancelFns[jobID]; exists {
		cancelFn()
		delete(c.cancelFns, jobID)
	}

	leaseID, exists := c.leases[jobID]
	if !exists {
		return nil
	}
	if _, err := c.client.Revoke(ctx, leaseID); err != nil {
		return fmt.Errorf("failed to revoke lease: %w", err)
	}
	delete(c.leases, jobID)

	return nil
}

// List returns all live announcements in the namespace.
func (c *Client) List(ctx context.Context) ([]Announcement, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, fmt.Errorf("registry client is closed")
	}

	resp, err := c.client.Get(ctx, c.jobsPrefix(), clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}

	announcements := make([]Announcement, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var a Announcement
		if err := json.Unmarshal(kv.Value, &a); err != nil {
			c.logger.Warn("skipping unreadable announcement", "key", string(kv.Key), "error", err)
			continue
		}
		announcements = append(announcements, a)
	}
	return announcements, nil
}

// Watch emits the full announcement list on every change.
func (c *Client) Watch(ctx context.Context) (<-chan []Announcement, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, fmt.Errorf("registry client is closed")
	}

	ch := make(chan []Announcement, 1)

	initial, err := c.list(ctx)
	if err != nil {
		return nil, err
	}
	ch <- initial

	watchChan := c.client.Watch(ctx, c.jobsPrefix(), clientv3.WithPrefix())

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case <-c.closedChan:
				return
			case resp, ok := <-watchChan:
				if !ok || resp.Err() != nil {
					return
				}

				current, err := c.list(context.Background())
				if err != nil {
					c.logger.Warn("failed to refresh announcements after change", "error", err)
					continue
				}

				select {
				case ch <- current:
				case <-ctx.Done():
					return
				case <-c.closedChan:
					return
				}
			}
		}
	}()

	return ch, nil
}

// list is List without the closed-state lock, for use from goroutines that
// already coordinate shutdown through closedChan.
func (c *Client) list(ctx context.Context) ([]Announcement, error) {
	resp, err := c.client.Get(ctx, c.jobsPrefix(), clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	announcements := make([]Announcement, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var a Announcement
		if err := json.Unmarshal(kv.Value, &a); err != nil {
			continue
		}
		announcements = append(announcements, a)
	}
	return announcements, nil
}

// Close stops all keepalives, terminates watches, and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true

	for _, cancel := range c.cancelFns {
		cancel()
	}
	c.cancelFns = make(map[string]context.CancelFunc)

	close(c.closedChan)
	c.mu.Unlock()

	c.wg.Wait()
	return c.client.Close()
}

// keepalive renews the lease every TTL/3 until the context is canceled or
// the lease becomes invalid.
func (c *Client) keepalive(ctx context.Context, leaseID clientv3.LeaseID, jobID string) {
	defer c.wg.Done()

	interval := time.Duration(c.ttl) * time.Second / 3
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.closedChan:
			return
		case <-ticker.C:
			renewCtx, cancel := context.WithTimeout(ctx, interval)
			_, err := c.client.KeepAliveOnce(renewCtx, leaseID)
			cancel()
			if err != nil {
				c.logger.Warn("lease renewal failed, announcement will expire",
					"job_id", jobID, "error", err)
				c.dropLease(jobID)
				return
			}
		}
	}
}

// dropLease forgets a job's lease bookkeeping once the lease is dead. The
// announcement is already gone (or about to expire) on the server, so a
// later Withdraw for the same job must be a no-op rather than a failed
// revoke of a nonexistent lease.
func (c *Client) dropLease(jobID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.leases, jobID)
	delete(c.cancelFns, jobID)
}

func (c *Client) jobsPrefix() string {
	return fmt.Sprintf("/%s/jobs/", c.namespace)
}

func (c *Client) jobKey(jobID string) string {
	return c.jobsPrefix() + jobID
}
