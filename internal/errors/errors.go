package errors

import stderrors "errors"

var (
	// ErrNotFound is returned when a referenced portfolio or holding does not exist.
	ErrNotFound = stderrors.New("not found")
	// ErrForbidden is returned when the acting owner does not own the resource.
	ErrForbidden = stderrors.New("forbidden")
	// ErrUnauthenticated is returned when no acting owner can be resolved.
	ErrUnauthenticated = stderrors.New("unauthenticated")
	// ErrStorageUnavailable wraps failures of the storage layer.
	ErrStorageUnavailable = stderrors.New("storage unavailable")
)

type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

// IsValidation reports whether err carries an *ErrValidation.
func IsValidation(err error) bool {
	var v *ErrValidation
	return stderrors.As(err, &v)
}
