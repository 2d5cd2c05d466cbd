// Package jobid derives deterministic, content-addressable identifiers for
// crawl jobs from their defining parameters.
//
// A job is identified by five parameters: a search keyword, a target
// platform, an optional label, and an optional posting-time window. The
// derivation pipeline canonicalizes those parameters into a stable byte
// sequence, fingerprints it, and formats the result into a bounded-length,
// path-safe identifier:
//
//	id := jobid.Derive(jobid.Params{
//	    Keyword:  jobid.Set("iphone air"),
//	    Platform: jobid.Set("x"),
//	}, "job")
//	// id = "job-<16 hex chars>"
//
// # Determinism Guarantees
//
// The same parameters always produce the same identifier, across calls,
// processes, and machines. Changing any single recognized parameter changes
// the identifier. Field construction order never matters: the canonical form
// sorts field names explicitly. An absent field and a field explicitly set
// to null are the same canonical state, so identifiers do not drift between
// callers that omit optional fields and callers that pass them as null. An
// empty string is a value, distinct from absence.
//
// Parameter values are opaque: no timestamp parsing or normalization occurs,
// so two differently formatted encodings of the same instant are different
// values and produce different identifiers.
//
// # Identifier Format
//
// Identifiers have the form {prefix}-{digest[:16]}, truncated to at most 80
// characters. Output contains only the prefix's own characters, a single
// "-", and lowercase hexadecimal digits; it never contains "/" or "\", so it
// is safe as a filesystem-path component, URL segment, or storage key. The
// formatter does not sanitize the prefix: callers supply a path-safe,
// length-bounded prefix, and CheckPrefix validates that contract at the
// boundary.
//
// # Concurrency
//
// Derivation is a pure function with no shared state. It is safe to call
// from any number of goroutines without locking.
package jobid
