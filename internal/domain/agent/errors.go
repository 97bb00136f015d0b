package agent

import "fmt"

// ErrUnsupportedOperation is the default SendMaterial/ReceiveMaterial
// behavior for agent kinds that never hold physical inventory (Region,
// Institution, Market): the capability exists on the common trait, but
// calling it on a non-facility is a programming error.
var ErrUnsupportedOperation = fmt.Errorf("agent: operation not supported by this agent kind")

// ErrNotReceiver is returned when a resolved registry.Agent does not
// also implement routing.Receiver — every concrete agent type in this
// package does, so this only fires against a malformed registry entry.
var ErrNotReceiver = fmt.Errorf("agent: resolved agent does not implement routing.Receiver")
