package jobid

import "github.com/google/uuid"

// namespace for version-5 UUID derivation. Fixed forever: changing it would
// change every derived UUID.
var namespace = uuid.MustParse("7c9e4f2a-1b8d-4e3f-9a76-5d0c21e8b4a3")

// DeriveUUID returns a deterministic version-5 UUID for a job defined by p,
// computed over the same canonical form as Derive. It serves callers whose
// storage keys are UUID-shaped; the determinism and sensitivity guarantees
// are identical to Derive's.
func DeriveUUID(p Params) uuid.UUID {
	return uuid.NewSHA1(namespace, Canonicalize(p))
}
