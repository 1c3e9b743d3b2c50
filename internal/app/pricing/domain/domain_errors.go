package domain

import "errors"

// Domain errors as sentinel values
var (
	// Product errors
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyProductID  = errors.New("product id cannot be empty")
	ErrEmptyName       = errors.New("product name cannot be empty")
	ErrInvalidPrice    = errors.New("product base price must not be negative")

	// Override errors
	ErrUnknownCostField = errors.New("unknown cost field")
	ErrInvalidEditSide  = errors.New("edit side must be amount or pct")
	ErrMissingEditValue = errors.New("edited side carries no value")
	ErrEmptyCountryCode = errors.New("country code cannot be empty")
)
