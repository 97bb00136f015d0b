// Package pluginregistry implements the in-process half of spec.md §6's
// pluggable constructor registry: a name→factory table the scenario
// loader consults when it hits a facility or market declaration's
// kind-tag. The dynamic .so loader that would populate this table from
// an external plugin artifact stays explicitly out of scope (per
// SPEC_FULL.md's carried Non-goals); this package is the registry such a
// loader would register into, plus the read-only catalog describing
// what kinds are available on disk.
package pluginregistry

import (
	"fmt"
	"sync"

	"github.com/cyclus-go/cyclus/internal/domain/agent"
	"github.com/cyclus-go/cyclus/internal/domain/registry"
)

// Constructor builds one agent instance for a kind-tag, handed its
// parameter subtree by the scenario loader. Per spec.md §6, a plugin
// must not retain pointers into params past construction.
type Constructor func(ctx *registry.SimulationContext, name string, parent agent.Capability, params map[string]any) (agent.Capability, error)

// KindRegistry is the name→factory table for facility/market kinds.
type KindRegistry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewKindRegistry returns an empty registry. Built-in kinds (RecipeReactor,
// SourceFacility, SinkFacility) are registered by the caller via
// RegisterBuiltins, not automatically, so a scenario that never uses
// them never pays for the import.
func NewKindRegistry() *KindRegistry {
	return &KindRegistry{constructors: make(map[string]Constructor)}
}

// Register adds ctor under kind. Re-registering the same kind is an
// error — kind-tags are meant to be declared once, at startup.
func (k *KindRegistry) Register(kind string, ctor Constructor) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, exists := k.constructors[kind]; exists {
		return fmt.Errorf("pluginregistry: kind %q already registered", kind)
	}
	k.constructors[kind] = ctor
	return nil
}

// Construct builds an agent of kind, failing if kind was never
// registered.
func (k *KindRegistry) Construct(kind string, ctx *registry.SimulationContext, name string, parent agent.Capability, params map[string]any) (agent.Capability, error) {
	k.mu.RLock()
	ctor, ok := k.constructors[kind]
	k.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("pluginregistry: unknown kind %q", kind)
	}
	return ctor(ctx, name, parent, params)
}

// Kinds lists every registered kind-tag, in no fixed order, for
// diagnostics.
func (k *KindRegistry) Kinds() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make([]string, 0, len(k.constructors))
	for kind := range k.constructors {
		out = append(out, kind)
	}
	return out
}
