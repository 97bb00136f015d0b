// Package routing implements the Message envelope and the two-leg UP/DOWN
// path protocol described in spec.md §4.1: a transaction proposal climbs
// the agent hierarchy to a clearing market and then retraces the exact
// inverse path back to its originator.
//
// The vocabulary (Envelope fields, Hop-by-hop delivery) borrows the shape
// of a typed request/response contract crossing a process boundary, the
// same shape the teacher uses for its own out-of-process routing client,
// but delivery here stays in-process and synchronous: SendOn invokes the
// next holder's Receive directly rather than placing the message on a
// queue.
package routing

import (
	"github.com/google/uuid"

	"github.com/cyclus-go/cyclus/internal/adapters/metrics"
	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/domain/resource"
	"github.com/cyclus-go/cyclus/internal/domain/txn"
)

// Direction is the leg of the routing protocol a Message currently
// occupies.
type Direction int

const (
	// Up carries a proposal from its originator toward a clearing market.
	Up Direction = iota
	// Down carries a cleared (or rejected) result back toward the
	// originator, retracing the UP path in reverse.
	Down
	// Done is terminal: the message has returned to its originator and
	// rejects further sends.
	Done
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	default:
		return "DONE"
	}
}

// Receiver is anything a Message can be delivered to. The agent
// hierarchy implements this so routing stays decoupled from agent's
// concrete types — SendOn is handed a resolver rather than importing the
// agent package directly.
type Receiver interface {
	Receive(m *Message) error
}

// Resolver maps an AgentID to its live Receiver, typically backed by a
// registry.SimulationContext.
type Resolver func(registry.AgentID) (Receiver, error)

// Message is an envelope carrying a Transaction through the routing
// overlay.
type Message struct {
	id            uuid.UUID
	direction     Direction
	transaction   *txn.Transaction
	originator    registry.AgentID
	pathStack     []registry.AgentID
	nextDest      registry.AgentID
	currentHolder registry.AgentID
}

// NewMessage creates a Message in state UP, held by its originator, with
// an empty path stack.
func NewMessage(originator registry.AgentID, transaction *txn.Transaction) *Message {
	return &Message{
		id:            uuid.New(),
		direction:     Up,
		transaction:   transaction,
		originator:    originator,
		currentHolder: originator,
	}
}

func (m *Message) ID() uuid.UUID                     { return m.id }
func (m *Message) Direction() Direction              { return m.direction }
func (m *Message) Transaction() *txn.Transaction     { return m.transaction }
func (m *Message) Originator() registry.AgentID      { return m.originator }
func (m *Message) CurrentHolder() registry.AgentID   { return m.currentHolder }
func (m *Message) NextDest() registry.AgentID        { return m.nextDest }

// PathStack returns a defensive copy of the path stack, oldest hop at
// index 0.
func (m *Message) PathStack() []registry.AgentID {
	out := make([]registry.AgentID, len(m.pathStack))
	copy(out, m.pathStack)
	return out
}

// SetTransaction replaces the carried transaction, used by a market to
// write match results (endpoints, amount, price) into a clone before
// flipping it DOWN.
func (m *Message) SetTransaction(t *txn.Transaction) {
	m.transaction = t
}

// SetNextDest records the next UP hop. Has no effect when direction is
// not UP (silently ignored per the Open Question in spec.md §9 — kept as
// a quiet no-op rather than an error, flagged for the domain owner).
// Fails with ErrInvalidRecipient if agent equals the current holder.
func (m *Message) SetNextDest(agent registry.AgentID) error {
	if m.direction != Up {
		return nil
	}
	if agent == m.currentHolder {
		return ErrInvalidRecipient
	}
	m.nextDest = agent
	return nil
}

// SendOn forwards the message per its current direction, resolving the
// next holder through resolve and invoking its Receive.
func (m *Message) SendOn(resolve Resolver) error {
	switch m.direction {
	case Up:
		return m.sendUp(resolve)
	case Down:
		return m.sendDown(resolve)
	default:
		return ErrTerminalMessage
	}
}

func (m *Message) sendUp(resolve Resolver) error {
	if m.nextDest == 0 {
		return ErrNoDestination
	}
	if m.nextDest == m.originator {
		return ErrCircular
	}
	m.pathStack = append(m.pathStack, m.currentHolder)
	m.currentHolder = m.nextDest
	m.nextDest = 0

	next, err := resolve(m.currentHolder)
	if err != nil {
		return err
	}
	metrics.RecordMessageRouted(m.direction.String())
	return next.Receive(m)
}

func (m *Message) sendDown(resolve Resolver) error {
	if len(m.pathStack) == 0 {
		m.direction = Done
		return nil
	}
	top := m.pathStack[len(m.pathStack)-1]
	m.pathStack = m.pathStack[:len(m.pathStack)-1]
	m.currentHolder = top

	if len(m.pathStack) == 0 {
		m.direction = Done
	}

	next, err := resolve(m.currentHolder)
	if err != nil {
		return err
	}
	metrics.RecordMessageRouted(Down.String())
	return next.Receive(m)
}

// ReverseDirection flips UP→DOWN or DOWN→UP. The originator is not
// pushed onto the stack at flip time: the stack already contains every
// intermediate hop in order, so reverse traversal retraces them and
// naturally terminates at the originator.
func (m *Message) ReverseDirection() error {
	switch m.direction {
	case Up:
		m.direction = Down
		return nil
	case Down:
		m.direction = Up
		return nil
	default:
		return ErrInvalidReversal
	}
}

// Clone deep-copies the message, including its transaction and path
// stack. The clone shares no Resource ownership with the original — any
// Resource payload carried by the transaction is cloned too.
func (m *Message) Clone() *Message {
	stack := make([]registry.AgentID, len(m.pathStack))
	copy(stack, m.pathStack)

	var clonedTxn *txn.Transaction
	if m.transaction != nil {
		var payload *resource.Resource
		if p := m.transaction.Payload(); p != nil {
			payload = p.Clone()
		}
		clonedTxn = txn.ReconstructTransaction(
			m.transaction.ID(),
			m.transaction.Commodity(),
			m.transaction.Amount(),
			m.transaction.MinAmount(),
			m.transaction.UnitPrice(),
			payload,
			m.transaction.Supplier(),
			m.transaction.Requester(),
			m.transaction.Metadata(),
		)
	}

	return &Message{
		id:            uuid.New(),
		direction:     m.direction,
		transaction:   clonedTxn,
		originator:    m.originator,
		pathStack:     stack,
		nextDest:      m.nextDest,
		currentHolder: m.currentHolder,
	}
}
