package simulation

import (
	"fmt"

	"github.com/cyclus-go/cyclus/internal/domain/registry"
)

// Phase names one of the four driver steps a period runs through.
type Phase string

const (
	PhaseTick     Phase = "tick"
	PhaseResolve  Phase = "resolve"
	PhaseDrain    Phase = "drain"
	PhaseTock     Phase = "tock"
)

// Diagnostic is the structured fatal-error report the Timekeeper
// surfaces when any phase raises (spec.md §7). It records the period,
// the phase, the id of the root agent or market whose call failed, and
// the wrapped error; it does not carry the message path or the
// transaction involved.
type Diagnostic struct {
	Period  int
	Phase   Phase
	AgentID registry.AgentID
	Err     error
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("simulation: period=%d phase=%s agent=%d: %v", d.Period, d.Phase, d.AgentID, d.Err)
}

func (d *Diagnostic) Unwrap() error { return d.Err }
