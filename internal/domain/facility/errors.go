package facility

import "fmt"

// ErrCommodityMismatch is returned by SendMaterial when asked to ship a
// commodity other than the facility's configured out_commodity.
var ErrCommodityMismatch = fmt.Errorf("facility: commodity does not match out_commodity")

// ErrNotSupplier is returned when a settled message arrives home naming
// neither this facility as its supplier nor as its requester.
var ErrNotSupplier = fmt.Errorf("facility: received settlement naming neither supplier nor requester role of this facility")

// ErrUnexpectedDirection is returned if an UP message is ever delivered
// to a Facility's Receive: facilities only originate UP messages, they
// never forward one on behalf of another agent.
var ErrUnexpectedDirection = fmt.Errorf("facility: facilities do not receive UP messages")
