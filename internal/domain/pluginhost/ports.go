// Package pluginhost defines the contract spec.md §6 describes for a
// remotely hosted facility implementation: construct/init/destruct
// driven over the wire instead of an in-process call. The in-process
// path (internal/infrastructure/pluginregistry.KindRegistry) stays the
// default; this port exists for the out-of-process case, with
// internal/adapters/grpc providing the one implementation.
package pluginhost

import "context"

// Spec is the scenario-supplied configuration blob for one remotely
// hosted facility instance: a kind name plus its parameter block with
// every value as a string (the in-process KindRegistry receives
// map[string]any instead).
type Spec struct {
	Kind       string
	Name       string
	Parameters map[string]string
}

// Host is the remote half of the plugin contract: a process, reachable
// over gRPC, capable of constructing, initializing, and destructing
// facility instances it hosts on the simulation's behalf.
type Host interface {
	// Construct asks the host to instantiate a facility for spec,
	// returning an opaque handle the host uses to address it in later
	// calls.
	Construct(ctx context.Context, spec Spec) (Handle, error)

	// Init runs the facility's one-time startup logic.
	Init(ctx context.Context, handle Handle) error

	// Destruct tears the hosted facility down at simulation end.
	Destruct(ctx context.Context, handle Handle) error
}

// Handle addresses one hosted facility instance across the lifetime of
// a Host connection.
type Handle struct {
	ID string
}
