package resource

import "fmt"

// ErrNegativeAmount is returned when extract is asked to split off a
// negative quantity.
var ErrNegativeAmount = fmt.Errorf("resource: amount must be non-negative")

// ErrInsufficientQuantity is returned when extract is asked to split off
// more than the resource currently holds.
var ErrInsufficientQuantity = fmt.Errorf("resource: amount exceeds total quantity")

// ErrConservation reports a conservation-invariant violation: the total
// quantity observed across a paired absorb/extract (or a full tick/tock
// cycle) drifted by more than the allowed relative epsilon.
type ErrConservation struct {
	Before float64
	After  float64
	Epsilon float64
}

func (e *ErrConservation) Error() string {
	return fmt.Sprintf("resource: conservation violated: before=%g after=%g epsilon=%g", e.Before, e.After, e.Epsilon)
}
