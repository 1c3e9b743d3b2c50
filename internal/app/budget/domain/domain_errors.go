package domain

import "errors"

// Domain errors as sentinel values. ErrInvalidMonth is the only hard
// call-contract failure in the reconciliation engine: every data
// quality problem degrades to empty or partial results instead.
var (
	ErrInvalidMonth = errors.New("month filter must be between 1 and 12")
	ErrInvalidYear  = errors.New("year must be a four-digit year")
	ErrNoBudgetRows = errors.New("import contains no budget rows")
)
