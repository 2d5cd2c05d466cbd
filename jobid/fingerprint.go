package jobid

import (
	"crypto/md5"
	"encoding/hex"
)

// Fingerprint returns the lowercase hexadecimal MD5 digest of b.
//
// MD5 keeps derived identifiers byte-compatible with identifiers already
// persisted by earlier deployments. The digest is a content fingerprint, not
// a security boundary: the requirement is reproducibility across processes
// and machines, not tamper resistance, so no keyed MAC or randomness is
// involved.
func Fingerprint(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}
