// Package jobident is an SDK for deterministic crawl-job identity.
//
// A crawl job is defined by what it searches for: a keyword, a platform,
// an optional label, and an optional posting-time window. jobident turns
// those defining parameters into a stable, collision-resistant, path-safe
// identifier, and builds the surrounding plumbing on top of that identity:
//
//   - jobid derives identifiers: canonicalization, fingerprinting, and
//     bounded-length formatting, plus a deterministic UUID variant.
//   - store persists job records in Redis keyed by derived identifier,
//     with PutIfAbsent deduplication and OpenTelemetry instrumentation.
//   - registry announces held jobs to etcd under leases, so identical
//     parameters collapse onto one announcement across workers.
//   - match compiles CEL selectors that filter jobs by their parameters.
//   - jobfile loads YAML job definition files and derives their IDs.
//
// The derivation core is pure and dependency-free in behavior: identical
// parameters always derive identical identifiers across processes and
// machines, and any single parameter change produces a different
// identifier. Everything else in the module treats that identifier as the
// job's primary key and re-derives it when verifying or deduplicating,
// rather than storing a separately maintained identity.
package jobident
