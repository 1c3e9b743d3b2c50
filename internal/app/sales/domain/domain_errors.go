package domain

import "errors"

// Domain errors as sentinel values
var (
	ErrInvalidYear = errors.New("year must be a four-digit year")
)
