package txn

import "github.com/google/uuid"

// TransactionID uniquely identifies a Transaction across its whole
// lifetime: the With* mutators and Message.Clone keep it.
type TransactionID uuid.UUID

// NewTransactionID generates a fresh, random TransactionID.
func NewTransactionID() TransactionID {
	return TransactionID(uuid.New())
}

func (id TransactionID) String() string {
	return uuid.UUID(id).String()
}
