// Package sheaf provides a section-oriented text container: a single flat text
// stream partitioned into named sections by bracketed header lines, with each
// section exposed as an independent seekable read/write stream over the shared
// backing store.
package sheaf

import "errors"

// Format errors
var (
	// ErrMalformed indicates that the source text does not follow the
	// section format (content before the first header, or an invalid
	// header line).
	ErrMalformed = errors.New("malformed section format")
)

// Integrity errors
var (
	// ErrDuplicateSection indicates that a section name is already in use.
	ErrDuplicateSection = errors.New("duplicate section name")

	// ErrInvalidName indicates a section name that cannot be serialized
	// (empty, or containing ']' or a line terminator).
	ErrInvalidName = errors.New("invalid section name")
)

// Lookup errors
var (
	// ErrSectionNotFound indicates that no live section has the given name.
	ErrSectionNotFound = errors.New("section not found")
)

// View errors
var (
	// ErrStaleView indicates an operation on a view whose section has been
	// deleted from the container.
	ErrStaleView = errors.New("view refers to a deleted section")

	// ErrViewClosed indicates an operation on a view after its Close.
	ErrViewClosed = errors.New("view is closed")
)

// Container errors
var (
	// ErrSheafClosed indicates an operation on a container after its Close.
	ErrSheafClosed = errors.New("sheaf is closed")
)

// Offset errors
var (
	// ErrInvalidOffset indicates a stream position that is out of bounds
	// (a seek resolving to a negative offset, or a negative truncate size).
	ErrInvalidOffset = errors.New("invalid stream offset")

	// ErrInvalidWhence indicates an unrecognized whence value passed to Seek.
	ErrInvalidWhence = errors.New("invalid seek whence")
)
