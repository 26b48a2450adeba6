package media

import "errors"

var (
	// ErrInvalidDirectory is returned by New when the root is missing or is
	// not a directory.
	ErrInvalidDirectory = errors.New("invalid media directory")

	// ErrNotFound means an identifier does not resolve to an existing
	// regular file under the root.
	ErrNotFound = errors.New("media item not found")

	// ErrIOFailure wraps write and copy failures during creation and read
	// failures of the root directory during listing.
	ErrIOFailure = errors.New("media i/o failure")

	// ErrOutsideRoot is returned by IDScheme for paths that are not directly
	// inside the configured root.
	ErrOutsideRoot = errors.New("path is not directly inside the media directory")
)
