// Package handoffconst contains constants and error messages of the handoff
// contract shared with off-chain code.
package handoffconst

// Handoff states.
const (
	Pending = iota
	Validated
)

// Error messages thrown by the handoff contract.
const (
	ErrPartyNotRegistered   = "party is not registered"
	ErrInvalidRolePair      = "invalid buyer-seller role combination for transaction"
	ErrSellerNotOwner       = "seller does not own the asset"
	ErrHandoffNotFound      = "handoff not found"
	ErrNotSeller            = "only designated seller can confirm sale"
	ErrNotPending           = "handoff is not pending"
	ErrNotBuyer             = "only buyer can rate the seller"
	ErrNotValidated         = "transaction not validated"
	ErrAlreadyRated         = "seller already rated for this transaction"
	ErrProvenanceMismatch   = "provenance asset mismatch"
	ErrProducerNotFound     = "producer not found"
	ErrRewardTransferFailed = "seller can not cover the reward"
)
