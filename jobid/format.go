package jobid

import (
	"fmt"
	"strings"
)

const (
	// MaxLength is the maximum total length of a derived identifier.
	MaxLength = 80

	// DigestChars is the number of leading digest characters included in an
	// identifier. It is a fixed policy constant: varying it per call would
	// make identical parameters derive different identifiers and break the
	// determinism contract across versions.
	DigestChars = 16

	// MaxPrefixLength is the longest prefix that leaves room within
	// MaxLength for the separator and the full DigestChars digest prefix.
	MaxPrefixLength = MaxLength - 1 - DigestChars
)

// FormatID composes an identifier as prefix + "-" + digest[:digestChars],
// right-truncated to maxLen characters if the composed string is longer.
//
// Truncation only removes characters, so it never reintroduces path-unsafe
// characters. A prefix longer than maxLen-1-digestChars truncates into the
// digest portion and, in pathological cases, past the separator entirely;
// bounding the prefix is the caller's contract (see CheckPrefix), not
// corrected here.
func FormatID(prefix, digest string, maxLen, digestChars int) string {
	if digestChars > len(digest) {
		digestChars = len(digest)
	}
	id := prefix + "-" + digest[:digestChars]
	if len(id) > maxLen {
		id = id[:maxLen]
	}
	return id
}

// Derive returns the canonical identifier for a job defined by p, namespaced
// by prefix: FormatID(prefix, Fingerprint(Canonicalize(p)), MaxLength,
// DigestChars).
//
// Derive is pure: no state, no side effects, no failure modes. Callers
// persist the result as the job's primary key and re-derive it whenever
// comparing or deduplicating jobs.
func Derive(p Params, prefix string) string {
	return FormatID(prefix, Fingerprint(Canonicalize(p)), MaxLength, DigestChars)
}

// DeriveFromMap is Derive for callers holding job parameters as a dynamic
// mapping. See ParamsFromMap for the key handling rules.
func DeriveFromMap(m map[string]*string, prefix string) string {
	return Derive(ParamsFromMap(m), prefix)
}

// CheckPrefix validates the caller side of the prefix contract: the prefix
// must be free of path separators and short enough that the composed
// identifier retains the full digest prefix. Derive does not call this;
// validate at the boundary where the prefix enters the system.
//
// Returned errors wrap ErrUnsafePrefix or ErrPrefixTooLong.
func CheckPrefix(prefix string) error {
	if strings.ContainsAny(prefix, `/\`) {
		return fmt.Errorf("%w: %q", ErrUnsafePrefix, prefix)
	}
	if len(prefix) > MaxPrefixLength {
		return fmt.Errorf("%w: %d characters, limit %d", ErrPrefixTooLong, len(prefix), MaxPrefixLength)
	}
	return nil
}
