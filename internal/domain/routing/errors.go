package routing

import "fmt"

// ErrNoDestination is returned by SendOn on an UP message whose next
// destination has not been set.
var ErrNoDestination = fmt.Errorf("routing: no destination set for UP send")

// ErrCircular is returned by SendOn when the next destination equals the
// message's originator while still travelling UP — sending back to self
// before the direction has flipped.
var ErrCircular = fmt.Errorf("routing: next destination is circular")

// ErrTerminalMessage is returned by SendOn on a message whose direction
// is DONE. A DOWN send with an empty path stack is not an error: it
// moves the message to DONE.
var ErrTerminalMessage = fmt.Errorf("routing: message is terminal")

// ErrInvalidRecipient is returned by SetNextDest when the proposed
// destination equals the current holder (a trivial self-loop).
var ErrInvalidRecipient = fmt.Errorf("routing: next destination equals current holder")

// ErrInvalidReversal is returned by ReverseDirection on a message whose
// direction is DONE (it has nothing left to reverse).
var ErrInvalidReversal = fmt.Errorf("routing: cannot reverse a terminal message")
