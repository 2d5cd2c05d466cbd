package jobid

import "errors"

// Sentinel errors returned (wrapped) by CheckPrefix. Use errors.Is to test
// for them.
var (
	// ErrUnsafePrefix indicates the prefix contains a path separator and
	// would make the derived identifier unsafe as a path component.
	ErrUnsafePrefix = errors.New("prefix contains path separator")

	// ErrPrefixTooLong indicates the prefix would force truncation into the
	// digest portion of the identifier, degrading collision resistance.
	ErrPrefixTooLong = errors.New("prefix too long")
)
