/*
Package fault recognizes exceptions thrown by Provena contracts.

Contracts report failures as FAULT exceptions with fixed messages. Both test
invocations and sent transactions surface them as plain text inside errors, so
the package matches message substrings and sorts them into a few classes
clients can check with errors.Is.
*/
package fault

import (
	"errors"
	"fmt"
	"strings"

	"github.com/provena-labs/provena-contract/common"
	"github.com/provena-labs/provena-contract/contracts/dispute/disputeconst"
	"github.com/provena-labs/provena-contract/contracts/handoff/handoffconst"
	"github.com/provena-labs/provena-contract/contracts/product"
	"github.com/provena-labs/provena-contract/contracts/registry"
	"github.com/provena-labs/provena-contract/contracts/score/scoreconst"
)

// Classes of contract exceptions.
var (
	// ErrNotFound is returned when requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAccessDenied is returned when the signer is not allowed to perform
	// the operation.
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidArgument is returned for malformed or out of range arguments.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict is returned when the operation collides with existing state.
	ErrConflict = errors.New("conflict")
	// ErrInvalidState is returned when entity is not in a state allowing the
	// operation.
	ErrInvalidState = errors.New("invalid state")
	// ErrInsufficientFunds is returned when a token transfer can not be
	// covered.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type rule struct {
	msg   string
	class error
}

// rules are checked in order, longer messages sharing a prefix with shorter
// ones go first.
var rules = []rule{
	{common.ErrCommitteeWitnessFailed, ErrAccessDenied},
	{common.ErrWitnessFailed, ErrAccessDenied},
	{common.ErrInvalidAddress, ErrInvalidArgument},

	{registry.ErrAlreadyRegistered, ErrConflict},
	{registry.ErrNotRegistered, ErrNotFound},

	{product.ErrNotFound, ErrNotFound},
	{product.ErrNotOwner, ErrAccessDenied},
	{product.ErrNoAccess, ErrAccessDenied},

	{scoreconst.ErrPartyNotRegistered, ErrNotFound},
	{scoreconst.ErrSelfRating, ErrInvalidArgument},
	{scoreconst.ErrScoreOutOfRange, ErrInvalidArgument},
	{scoreconst.ErrInvalidRoleOrDimension, ErrInvalidArgument},
	{scoreconst.ErrConfidenceNotApplicable, ErrInvalidArgument},
	{scoreconst.ErrCoordinatorOnly, ErrAccessDenied},
	{scoreconst.ErrArbitratorOnly, ErrAccessDenied},
	{scoreconst.ErrRewardPoolExhausted, ErrInsufficientFunds},
	{scoreconst.ErrScoreNotFound, ErrNotFound},
	{scoreconst.ErrInvalidDimension, ErrInvalidArgument},
	{scoreconst.ErrTokenOnly, ErrAccessDenied},
	{registry.ErrInvalidRole, ErrInvalidArgument},

	{handoffconst.ErrInvalidRolePair, ErrInvalidArgument},
	{handoffconst.ErrSellerNotOwner, ErrInvalidArgument},
	{handoffconst.ErrHandoffNotFound, ErrNotFound},
	{handoffconst.ErrNotSeller, ErrAccessDenied},
	{handoffconst.ErrNotPending, ErrInvalidState},
	{handoffconst.ErrNotBuyer, ErrAccessDenied},
	{handoffconst.ErrNotValidated, ErrInvalidState},
	{handoffconst.ErrAlreadyRated, ErrConflict},
	{handoffconst.ErrProvenanceMismatch, ErrInvalidArgument},
	{handoffconst.ErrProducerNotFound, ErrNotFound},
	{handoffconst.ErrRewardTransferFailed, ErrInsufficientFunds},

	{disputeconst.ErrWrongDeposit, ErrInvalidArgument},
	{disputeconst.ErrDuplicateDispute, ErrConflict},
	{disputeconst.ErrRespondentIsConsumer, ErrInvalidArgument},
	{disputeconst.ErrNotRatee, ErrAccessDenied},
	{disputeconst.ErrNotRater, ErrInvalidArgument},
	{disputeconst.ErrDisputeNotFound, ErrNotFound},
	{disputeconst.ErrNotRespondent, ErrAccessDenied},
	{disputeconst.ErrAlreadyResponded, ErrConflict},
	{disputeconst.ErrDepositsIncomplete, ErrInvalidState},
	{disputeconst.ErrPartyVote, ErrAccessDenied},
	{disputeconst.ErrNoStanding, ErrAccessDenied},
	{disputeconst.ErrAlreadyVoted, ErrConflict},
	{disputeconst.ErrVotingClosed, ErrInvalidState},
	{disputeconst.ErrVotingStillOpen, ErrInvalidState},
	{disputeconst.ErrAlreadyFinalized, ErrInvalidState},
	{disputeconst.ErrDepositFailed, ErrInsufficientFunds},
	{disputeconst.ErrPayoutFailed, ErrInsufficientFunds},
}

// Is checks whether err was caused by the contract exception with the given
// message.
func Is(err error, msg string) bool {
	return err != nil && strings.Contains(err.Error(), msg)
}

// Message returns the known contract exception message err was caused by.
func Message(err error) (string, bool) {
	for i := range rules {
		if Is(err, rules[i].msg) {
			return rules[i].msg, true
		}
	}
	return "", false
}

// Classify wraps err into one of the package error classes if it was caused
// by a known contract exception. Other errors are returned as is.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	for i := range rules {
		if Is(err, rules[i].msg) {
			return fmt.Errorf("%w: %w", rules[i].class, err)
		}
	}

	return err
}
