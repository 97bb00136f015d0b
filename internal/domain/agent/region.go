package agent

import "github.com/cyclus-go/cyclus/internal/domain/registry"

// Region is the root of an agent forest: it has no parent, and forwards
// any UP message straight to the market registered for the message's
// commodity. It uses Base's default behavior unmodified.
type Region struct {
	Base
}

// NewRegion constructs and registers a Region with ctx.
func NewRegion(ctx *registry.SimulationContext, name string) (*Region, error) {
	base, err := NewBase(ctx, KindRegion, name)
	if err != nil {
		return nil, err
	}
	r := &Region{Base: base}
	if err := ctx.RegisterAgent(r); err != nil {
		return nil, err
	}
	return r, nil
}
