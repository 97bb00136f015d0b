// Package resource implements the conserved-quantity material payload
// that facilities create, split, and absorb as it moves through the
// routing overlay's settlement leg.
package resource

import (
	"github.com/google/uuid"

	"github.com/cyclus-go/cyclus/internal/adapters/metrics"
	"github.com/cyclus-go/cyclus/pkg/mathutil"
)

// Basis distinguishes how a Resource's composition scalars are counted.
// The core treats the distinction as opaque bookkeeping: only
// total_quantity() and the conservation law are load-bearing.
type Basis int

const (
	// AtomBasis counts composition scalars in moles (or an equivalent
	// atom count unit).
	AtomBasis Basis = iota
	// MassBasis counts composition scalars in mass units.
	MassBasis
)

func (b Basis) String() string {
	if b == MassBasis {
		return "mass"
	}
	return "atom"
}

// Resource is a mutable, owned quantity of conserved stuff. Composition
// is a mapping from species identifier to a non-negative scalar; the
// core never interprets species identifiers beyond summing them into a
// total quantity.
type Resource struct {
	ID          uuid.UUID
	UnitTag     string
	Basis       Basis
	composition map[string]float64
}

// New constructs a Resource from a composition map. The map is copied so
// the caller's map may be reused or mutated afterward without aliasing.
func New(unitTag string, basis Basis, composition map[string]float64) *Resource {
	comp := make(map[string]float64, len(composition))
	for species, qty := range composition {
		comp[species] = qty
	}
	return &Resource{
		ID:          uuid.New(),
		UnitTag:     unitTag,
		Basis:       basis,
		composition: comp,
	}
}

// NewScalar is a convenience constructor for tests and simple facilities
// that don't care about per-species composition: it creates a single
// anonymous species holding the full quantity.
func NewScalar(unitTag string, basis Basis, quantity float64) *Resource {
	return New(unitTag, basis, map[string]float64{"bulk": quantity})
}

// TotalQuantity returns the sum of all composition scalars.
func (r *Resource) TotalQuantity() float64 {
	var total float64
	for _, qty := range r.composition {
		total += qty
	}
	return total
}

// Composition returns a defensive copy of the species→scalar mapping.
func (r *Resource) Composition() map[string]float64 {
	out := make(map[string]float64, len(r.composition))
	for species, qty := range r.composition {
		out[species] = qty
	}
	return out
}

// Absorb consumes other entirely: its composition is merged into r and
// other is left holding zero quantity. Both resources must share the
// same basis.
func (r *Resource) Absorb(other *Resource) {
	before := r.TotalQuantity() + other.TotalQuantity()
	for species, qty := range other.composition {
		r.composition[species] += qty
		other.composition[species] = 0
	}
	after := r.TotalQuantity() + other.TotalQuantity()
	if !mathutil.ApproxEqual(before, after, mathutil.DefaultEpsilon) {
		metrics.RecordConservationFailure(r.UnitTag)
		panic(&ErrConservation{Before: before, After: after, Epsilon: mathutil.DefaultEpsilon})
	}
}

// Extract splits off a fresh Resource of exactly amount, decrementing r
// by the same quantity. Composition is split proportionally across
// species so the conservation law holds species-by-species, not merely
// in aggregate.
func (r *Resource) Extract(amount float64) (*Resource, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	total := r.TotalQuantity()
	if amount > total && !mathutil.ApproxEqual(amount, total, mathutil.DefaultEpsilon) {
		return nil, ErrInsufficientQuantity
	}
	if amount > total {
		amount = total
	}

	extracted := make(map[string]float64, len(r.composition))
	if total > 0 {
		fraction := amount / total
		for species, qty := range r.composition {
			share := qty * fraction
			extracted[species] = share
			r.composition[species] = qty - share
		}
	}

	out := &Resource{
		ID:          uuid.New(),
		UnitTag:     r.UnitTag,
		Basis:       r.Basis,
		composition: extracted,
	}

	before := total
	after := r.TotalQuantity() + out.TotalQuantity()
	if !mathutil.ApproxEqual(before, after, mathutil.DefaultEpsilon) {
		metrics.RecordConservationFailure(r.UnitTag)
		return nil, &ErrConservation{Before: before, After: after, Epsilon: mathutil.DefaultEpsilon}
	}
	return out, nil
}

// Clone deep-copies the resource, including a fresh identity, so the
// clone shares no ownership with the original.
func (r *Resource) Clone() *Resource {
	return &Resource{
		ID:          uuid.New(),
		UnitTag:     r.UnitTag,
		Basis:       r.Basis,
		composition: r.Composition(),
	}
}
