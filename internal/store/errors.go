package store

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a unique constraint violation (email/username taken).
	ErrDuplicate = errors.New("duplicate")

	// ErrInvalidInput indicates the input data is invalid at the storage level.
	ErrInvalidInput = errors.New("invalid input")
)

// IsNotFound checks whether the error is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate checks whether the error is ErrDuplicate.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
