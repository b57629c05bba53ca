package domain

import "errors"

// Cabin classes
const (
	CabinBusiness = "business"
	CabinEconomy  = "economy"
)

var (
	// ErrScheduleNotFound is returned when no schedule matches the lookup key
	ErrScheduleNotFound = errors.New("flight not found")
	// ErrInventoryNotFound is returned when a schedule has no inventory row
	ErrInventoryNotFound = errors.New("inventory not found")
)

// CapacityExceededError is returned when requested booked seats exceed the
// schedule's capacity for a cabin class. No write happens in that case.
type CapacityExceededError struct {
	Cabin string
}

func (e *CapacityExceededError) Error() string {
	return "booked " + e.Cabin + " seats exceed capacity"
}

// IsCapacityExceeded reports whether err is a capacity violation
func IsCapacityExceeded(err error) bool {
	var capacityErr *CapacityExceededError
	return errors.As(err, &capacityErr)
}
