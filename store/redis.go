package store

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// instrumentation scope for traces and metrics emitted by this package.
const scopeName = "github.com/crawlkit/jobident/store"

// Options configures the Redis connection and telemetry.
type Options struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration

	// TracerProvider overrides the global OpenTelemetry tracer provider.
	TracerProvider trace.TracerProvider

	// MeterProvider overrides the global OpenTelemetry meter provider.
	MeterProvider metric.MeterProvider
}

// RedisStore implements Store using go-redis/v9.
type RedisStore struct {
	client *redis.Client
	tracer trace.Tracer

	puts      metric.Int64Counter
	dedupHits metric.Int64Counter
}

// NewRedisStore creates a Redis-backed store with the given options and
// verifies connectivity before returning.
func NewRedisStore(opts Options) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = otel.GetTracerProvider()
	}
	if opts.MeterProvider == nil {
		opts.MeterProvider = otel.GetMeterProvider()
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	meter := opts.MeterProvider.Meter(scopeName)
	puts, err := meter.Int64Counter(
		"jobident.store.puts",
		metric.WithDescription("Number of job records written"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create puts counter: %w", err)
	}
	dedupHits, err := meter.Int64Counter(
		"jobident.store.dedup_hits",
		metric.WithDescription("Number of PutIfAbsent calls that found an existing record"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create dedup counter: %w", err)
	}

	return &RedisStore{
		client:    client,
		tracer:    opts.TracerProvider.Tracer(scopeName),
		puts:      puts,
		dedupHits: dedupHits,
	}, nil
}

// Put writes a record unconditionally.
func (s *RedisStore) Put(ctx context.Context, rec Record, ttl time.Duration) error {
	ctx, span := s.startSpan(ctx, "store.put", rec.ID)
	defer span.End()

	data, err := json.Marshal(rec)
	if err != nil {
		return spanError(span, fmt.Errorf("failed to marshal record: %w", err))
	}
	if err := s.client.Set(ctx, recordKey(rec.ID), data, ttl).Err(); err != nil {
		return spanError(span, fmt.Errorf("failed to store record %s: %w", rec.ID, err))
	}

	s.puts.Add(ctx, 1)
	return nil
}

// PutIfAbsent writes a record only if its ID is not already present.
func (s *RedisStore) PutIfAbsent(ctx context.Context, rec Record, ttl time.Duration) (bool, error) {
	ctx, span := s.startSpan(ctx, "store.put_if_absent", rec.ID)
	defer span.End()

	data, err := json.Marshal(rec)
	if err != nil {
		return false, spanError(span, fmt.Errorf("failed to marshal record: %w", err))
	}
	stored, err := s.client.SetNX(ctx, recordKey(rec.ID), data, ttl).Result()
	if err != nil {
		return false, spanError(span, fmt.Errorf("failed to store record %s: %w", rec.ID, err))
	}

	if stored {
		s.puts.Add(ctx, 1)
	} else {
		s.dedupHits.Add(ctx, 1)
	}
	span.SetAttributes(attribute.Bool("store.stored", stored))
	return stored, nil
}

// Get returns the record for id.
func (s *RedisStore) Get(ctx context.Context, id string) (*Record, bool, error) {
	ctx, span := s.startSpan(ctx, "store.get", id)
	defer span.End()

	data, err := s.client.Get(ctx, recordKey(id)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, spanError(span, fmt.Errorf("failed to fetch record %s: %w", id, err))
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false, spanError(span, fmt.Errorf("failed to unmarshal record %s: %w", id, err))
	}
	return &rec, true, nil
}

// Delete removes the record for id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	ctx, span := s.startSpan(ctx, "store.delete", id)
	defer span.End()

	if err := s.client.Del(ctx, recordKey(id)).Err(); err != nil {
		return spanError(span, fmt.Errorf("failed to delete record %s: %w", id, err))
	}
	return nil
}

// Ping verifies connectivity to Redis.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// spanError marks the span failed and returns err unchanged, so error
// returns on traced operations stay one-liners.
func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func (s *RedisStore) startSpan(ctx context.Context, name, id string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("job.id", id)))
}
