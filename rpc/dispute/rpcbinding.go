// Package dispute contains RPC wrappers for Provena Dispute contract.
package dispute

import (
	"errors"
	"fmt"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// DisputeBallot is a contract-specific dispute.Ballot type used by its methods.
type DisputeBallot struct {
	Voter util.Uint160
	SupportRespondent bool
}

// DisputeDispute is a contract-specific dispute.Dispute type used by its methods.
type DisputeDispute struct {
	ID *big.Int
	HandoffID *big.Int
	Dimension *big.Int
	ScoreID *big.Int
	Challenger util.Uint160
	Respondent util.Uint160
	ChallengerDeposit *big.Int
	RespondentDeposit *big.Int
	VotingDeadline *big.Int
	VotesForRespondent *big.Int
	VotesForChallenger *big.Int
	Outcome *big.Int
	Finalized bool
}

// DisputeInitiatedEvent represents "DisputeInitiated" event emitted by the contract.
type DisputeInitiatedEvent struct {
	ID *big.Int
	Challenger util.Uint160
	Respondent util.Uint160
	HandoffID *big.Int
	Dimension *big.Int
	Deadline *big.Int
}

// DisputeRespondedEvent represents "DisputeResponded" event emitted by the contract.
type DisputeRespondedEvent struct {
	ID *big.Int
	Respondent util.Uint160
}

// VoteCastEvent represents "VoteCast" event emitted by the contract.
type VoteCastEvent struct {
	ID *big.Int
	Voter util.Uint160
	SupportRespondent bool
}

// DisputeFinalizedEvent represents "DisputeFinalized" event emitted by the contract.
type DisputeFinalizedEvent struct {
	ID *big.Int
	Outcome *big.Int
	VotesForRespondent *big.Int
	VotesForChallenger *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// ActiveDispute invokes `activeDispute` method of contract.
func (c *ContractReader) ActiveDispute(handoffID *big.Int, dim *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "activeDispute", handoffID, dim))
}

// Ballots invokes `ballots` method of contract.
func (c *ContractReader) Ballots(disputeID *big.Int) ([]*DisputeBallot, error) {
	return func (item stackitem.Item, err error) ([]*DisputeBallot, error) {
		if err != nil {
			return nil, err
		}
		return func (item stackitem.Item) ([]*DisputeBallot, error) {
			arr, ok := item.Value().([]stackitem.Item)
			if !ok {
				return nil, errors.New("not an array")
			}
			res := make([]*DisputeBallot, len(arr))
			for i := range res {
				res[i], err = itemToDisputeBallot(arr[i], nil)
				if err != nil {
					return nil, fmt.Errorf("item %d: %w", i, err)
				}
			}
			return res, nil
		} (item)
	} (unwrap.Item(c.invoker.Call(c.hash, "ballots", disputeID)))
}

// ByChallenger invokes `byChallenger` method of contract.
func (c *ContractReader) ByChallenger(party util.Uint160) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "byChallenger", party))
}

// ByRespondent invokes `byRespondent` method of contract.
func (c *ContractReader) ByRespondent(party util.Uint160) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "byRespondent", party))
}

// Deposit invokes `deposit` method of contract.
func (c *ContractReader) Deposit() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "deposit"))
}

// EligibleFor invokes `eligibleFor` method of contract.
func (c *ContractReader) EligibleFor(voter util.Uint160) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "eligibleFor", voter))
}

// GetDispute invokes `getDispute` method of contract.
func (c *ContractReader) GetDispute(disputeID *big.Int) (*DisputeDispute, error) {
	return itemToDisputeDispute(unwrap.Item(c.invoker.Call(c.hash, "getDispute", disputeID)))
}

// HasActiveDispute invokes `hasActiveDispute` method of contract.
func (c *ContractReader) HasActiveDispute(handoffID *big.Int, dim *big.Int) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "hasActiveDispute", handoffID, dim))
}

// LastID invokes `lastID` method of contract.
func (c *ContractReader) LastID() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "lastID"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// VotingPeriod invokes `votingPeriod` method of contract.
func (c *ContractReader) VotingPeriod() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "votingPeriod"))
}

// FinalizeDispute creates a transaction invoking `finalizeDispute` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) FinalizeDispute(disputeID *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "finalizeDispute", disputeID)
}

// FinalizeDisputeTransaction creates a transaction invoking `finalizeDispute` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) FinalizeDisputeTransaction(disputeID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "finalizeDispute", disputeID)
}

// FinalizeDisputeUnsigned creates a transaction invoking `finalizeDispute` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) FinalizeDisputeUnsigned(disputeID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "finalizeDispute", nil, disputeID)
}

// InitiateDispute creates a transaction invoking `initiateDispute` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) InitiateDispute(challenger util.Uint160, handoffID *big.Int, dim *big.Int, respondent util.Uint160, deposit *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "initiateDispute", challenger, handoffID, dim, respondent, deposit)
}

// InitiateDisputeTransaction creates a transaction invoking `initiateDispute` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) InitiateDisputeTransaction(challenger util.Uint160, handoffID *big.Int, dim *big.Int, respondent util.Uint160, deposit *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "initiateDispute", challenger, handoffID, dim, respondent, deposit)
}

// InitiateDisputeUnsigned creates a transaction invoking `initiateDispute` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) InitiateDisputeUnsigned(challenger util.Uint160, handoffID *big.Int, dim *big.Int, respondent util.Uint160, deposit *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "initiateDispute", nil, challenger, handoffID, dim, respondent, deposit)
}

// RespondToDispute creates a transaction invoking `respondToDispute` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RespondToDispute(respondent util.Uint160, disputeID *big.Int, deposit *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "respondToDispute", respondent, disputeID, deposit)
}

// RespondToDisputeTransaction creates a transaction invoking `respondToDispute` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RespondToDisputeTransaction(respondent util.Uint160, disputeID *big.Int, deposit *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "respondToDispute", respondent, disputeID, deposit)
}

// RespondToDisputeUnsigned creates a transaction invoking `respondToDispute` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RespondToDisputeUnsigned(respondent util.Uint160, disputeID *big.Int, deposit *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "respondToDispute", nil, respondent, disputeID, deposit)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// VoteDispute creates a transaction invoking `voteDispute` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) VoteDispute(voter util.Uint160, disputeID *big.Int, supportRespondent bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "voteDispute", voter, disputeID, supportRespondent)
}

// VoteDisputeTransaction creates a transaction invoking `voteDispute` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) VoteDisputeTransaction(voter util.Uint160, disputeID *big.Int, supportRespondent bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "voteDispute", voter, disputeID, supportRespondent)
}

// VoteDisputeUnsigned creates a transaction invoking `voteDispute` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) VoteDisputeUnsigned(voter util.Uint160, disputeID *big.Int, supportRespondent bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "voteDispute", nil, voter, disputeID, supportRespondent)
}

// itemToDisputeBallot converts stack item into *DisputeBallot.
func itemToDisputeBallot(item stackitem.Item, err error) (*DisputeBallot, error) {
	if err != nil {
		return nil, err
	}
	var res = new(DisputeBallot)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of DisputeBallot from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *DisputeBallot) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Voter, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Voter: %w", err)
	}

	index++
	res.SupportRespondent, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field SupportRespondent: %w", err)
	}

	return nil
}

// itemToDisputeDispute converts stack item into *DisputeDispute.
func itemToDisputeDispute(item stackitem.Item, err error) (*DisputeDispute, error) {
	if err != nil {
		return nil, err
	}
	var res = new(DisputeDispute)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of DisputeDispute from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *DisputeDispute) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 13 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	res.HandoffID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field HandoffID: %w", err)
	}

	index++
	res.Dimension, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Dimension: %w", err)
	}

	index++
	res.ScoreID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ScoreID: %w", err)
	}

	index++
	res.Challenger, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Challenger: %w", err)
	}

	index++
	res.Respondent, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Respondent: %w", err)
	}

	index++
	res.ChallengerDeposit, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ChallengerDeposit: %w", err)
	}

	index++
	res.RespondentDeposit, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field RespondentDeposit: %w", err)
	}

	index++
	res.VotingDeadline, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field VotingDeadline: %w", err)
	}

	index++
	res.VotesForRespondent, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field VotesForRespondent: %w", err)
	}

	index++
	res.VotesForChallenger, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field VotesForChallenger: %w", err)
	}

	index++
	res.Outcome, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Outcome: %w", err)
	}

	index++
	res.Finalized, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Finalized: %w", err)
	}

	return nil
}

// DisputeInitiatedEventsFromApplicationLog retrieves a set of all emitted events
// with "DisputeInitiated" name from the provided [result.ApplicationLog].
func DisputeInitiatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*DisputeInitiatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*DisputeInitiatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "DisputeInitiated" {
				continue
			}
			event := new(DisputeInitiatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize DisputeInitiatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to DisputeInitiatedEvent or
// returns an error if it's not possible to do to so.
func (e *DisputeInitiatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 6 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Challenger, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Challenger: %w", err)
	}

	index++
	e.Respondent, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Respondent: %w", err)
	}

	index++
	e.HandoffID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field HandoffID: %w", err)
	}

	index++
	e.Dimension, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Dimension: %w", err)
	}

	index++
	e.Deadline, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Deadline: %w", err)
	}

	return nil
}

// DisputeRespondedEventsFromApplicationLog retrieves a set of all emitted events
// with "DisputeResponded" name from the provided [result.ApplicationLog].
func DisputeRespondedEventsFromApplicationLog(log *result.ApplicationLog) ([]*DisputeRespondedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*DisputeRespondedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "DisputeResponded" {
				continue
			}
			event := new(DisputeRespondedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize DisputeRespondedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to DisputeRespondedEvent or
// returns an error if it's not possible to do to so.
func (e *DisputeRespondedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Respondent, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Respondent: %w", err)
	}

	return nil
}

// VoteCastEventsFromApplicationLog retrieves a set of all emitted events
// with "VoteCast" name from the provided [result.ApplicationLog].
func VoteCastEventsFromApplicationLog(log *result.ApplicationLog) ([]*VoteCastEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*VoteCastEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "VoteCast" {
				continue
			}
			event := new(VoteCastEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize VoteCastEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to VoteCastEvent or
// returns an error if it's not possible to do to so.
func (e *VoteCastEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Voter, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Voter: %w", err)
	}

	index++
	e.SupportRespondent, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field SupportRespondent: %w", err)
	}

	return nil
}

// DisputeFinalizedEventsFromApplicationLog retrieves a set of all emitted events
// with "DisputeFinalized" name from the provided [result.ApplicationLog].
func DisputeFinalizedEventsFromApplicationLog(log *result.ApplicationLog) ([]*DisputeFinalizedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*DisputeFinalizedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "DisputeFinalized" {
				continue
			}
			event := new(DisputeFinalizedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize DisputeFinalizedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to DisputeFinalizedEvent or
// returns an error if it's not possible to do to so.
func (e *DisputeFinalizedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Outcome, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Outcome: %w", err)
	}

	index++
	e.VotesForRespondent, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field VotesForRespondent: %w", err)
	}

	index++
	e.VotesForChallenger, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field VotesForChallenger: %w", err)
	}

	return nil
}
