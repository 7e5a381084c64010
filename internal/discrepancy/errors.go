package discrepancy

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDayCount indicates a day count below MinDayCount.
	ErrInvalidDayCount = errors.New("discrepancy: day count must be at least 2")
)

// ValidateDayCount rejects day counts below MinDayCount with a *DayCountError.
func ValidateDayCount(n int) error {
	if n < MinDayCount {
		return &DayCountError{Got: n}
	}
	return nil
}

// DayCountError carries the rejected day count.
type DayCountError struct {
	Got int
}

func (e *DayCountError) Error() string {
	return fmt.Sprintf("%v, got %d", ErrInvalidDayCount, e.Got)
}

func (e *DayCountError) Unwrap() error {
	return ErrInvalidDayCount
}
