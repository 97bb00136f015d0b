package agent

import "github.com/cyclus-go/cyclus/internal/domain/registry"

// Institution sits between a Region and its Facilities. It uses Base's
// default behavior unmodified: forward UP to its parent, pass DOWN
// through unchanged.
type Institution struct {
	Base
}

// NewInstitution constructs and registers an Institution under parent,
// appending it to parent's child list in declaration order.
func NewInstitution(ctx *registry.SimulationContext, name string, parent Capability) (*Institution, error) {
	base, err := NewBase(ctx, KindInstitution, name)
	if err != nil {
		return nil, err
	}
	inst := &Institution{Base: base}
	inst.SetParent(parent)
	if err := ctx.RegisterAgent(inst); err != nil {
		return nil, err
	}
	parent.AddChild(inst)
	return inst, nil
}
