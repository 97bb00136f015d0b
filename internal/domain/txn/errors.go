package txn

import "fmt"

// ErrBelowMinAmount is returned when |amount| < min_amount at
// construction — the offer or request is too small to ever be worth
// matching.
var ErrBelowMinAmount = fmt.Errorf("txn: |amount| must be >= min_amount")

// ErrNegativeMinAmount is returned when min_amount is negative.
var ErrNegativeMinAmount = fmt.Errorf("txn: min_amount must be >= 0")

// ErrZeroAmount is returned when a request or offer of exactly zero
// amount is constructed directly; spec.md §8 treats a zero-amount
// request as something the market silently drops, not a constructor
// error, so this is only raised for callers building a non-settlement
// transaction (amount 0 with a non-empty min_amount makes no sense).
var ErrZeroAmount = fmt.Errorf("txn: amount must be non-zero unless min_amount is also zero")

// ErrEndpointsNotSet is returned when settlement metadata (supplier,
// requester, payload) is attached to a transaction before both
// endpoints have been assigned by market clearing.
var ErrEndpointsNotSet = fmt.Errorf("txn: supplier and requester must both be set before settlement")
