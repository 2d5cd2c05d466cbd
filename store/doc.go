// Package store persists job records keyed by their derived identifier.
//
// The derived identifier is the primary key: two callers that store jobs
// with identical parameters and prefix land on the same key, so
// deduplication is a PutIfAbsent on the derived ID rather than a separately
// maintained identity flag. Callers re-derive the identifier with
// jobid.Derive when comparing jobs; the store never invents identity.
//
// RedisStore is the production implementation, backed by go-redis. All
// operations take a context and are safe for concurrent use. Operations are
// traced and counted through OpenTelemetry; providers default to the otel
// globals and can be injected through Options for tests.
package store
