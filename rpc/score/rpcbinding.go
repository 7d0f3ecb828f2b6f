// Package score contains RPC wrappers for Provena Score contract.
package score

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

// ScoreScoreRecord is a contract-specific score.ScoreRecord type used by its methods.
type ScoreScoreRecord struct {
	ID *big.Int
	Rater util.Uint160
	Ratee util.Uint160
	Dimension *big.Int
	Value *big.Int
	Timestamp *big.Int
	HandoffID *big.Int
}

// ScoreAssignedEvent represents "ScoreAssigned" event emitted by the contract.
type ScoreAssignedEvent struct {
	ID *big.Int
	Rater util.Uint160
	Ratee util.Uint160
	Dimension *big.Int
	Value *big.Int
	Score *big.Int
}

// ConfidenceChangedEvent represents "ConfidenceChanged" event emitted by the contract.
type ConfidenceChangedEvent struct {
	Party util.Uint160
	Confidence *big.Int
}

// ManualScoreSetEvent represents "ManualScoreSet" event emitted by the contract.
type ManualScoreSetEvent struct {
	Ratee util.Uint160
	Dimension *big.Int
	Score *big.Int
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

// ApplicableDimensions invokes `applicableDimensions` method of contract.
func (c *ContractReader) ApplicableDimensions(ratee util.Uint160) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "applicableDimensions", ratee))
}

// Confidence invokes `confidence` method of contract.
func (c *ContractReader) Confidence(party util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "confidence", party))
}

// GetScore invokes `getScore` method of contract.
func (c *ContractReader) GetScore(id *big.Int) (*ScoreScoreRecord, error) {
	return itemToScoreScoreRecord(unwrap.Item(c.invoker.Call(c.hash, "getScore", id)))
}

// GlobalScore invokes `globalScore` method of contract.
func (c *ContractReader) GlobalScore(ratee util.Uint160, dim *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "globalScore", ratee, dim))
}

// Policy invokes `policy` method of contract.
func (c *ContractReader) Policy() ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "policy"))
}

// Reward invokes `reward` method of contract.
func (c *ContractReader) Reward() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "reward"))
}

// RewardPool invokes `rewardPool` method of contract.
func (c *ContractReader) RewardPool() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "rewardPool"))
}

// ScoreIDByHandoff invokes `scoreIDByHandoff` method of contract.
func (c *ContractReader) ScoreIDByHandoff(handoffID *big.Int, dim *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "scoreIDByHandoff", handoffID, dim))
}

// ScoreIDs invokes `scoreIDs` method of contract.
func (c *ContractReader) ScoreIDs(ratee util.Uint160) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "scoreIDs", ratee))
}

// ScoresOf invokes `scoresOf` method of contract.
func (c *ContractReader) ScoresOf(ratee util.Uint160) ([]*ScoreScoreRecord, error) {
	return func (item stackitem.Item, err error) ([]*ScoreScoreRecord, error) {
		if err != nil {
			return nil, err
		}
		return func (item stackitem.Item) ([]*ScoreScoreRecord, error) {
			arr, ok := item.Value().([]stackitem.Item)
			if !ok {
				return nil, errors.New("not an array")
			}
			res := make([]*ScoreScoreRecord, len(arr))
			for i := range res {
				res[i], err = itemToScoreScoreRecord(arr[i], nil)
				if err != nil {
					return nil, fmt.Errorf("item %d: %w", i, err)
				}
			}
			return res, nil
		} (item)
	} (unwrap.Item(c.invoker.Call(c.hash, "scoresOf", ratee)))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// SetManualScore creates a transaction invoking `setManualScore` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetManualScore(ratee util.Uint160, dim *big.Int, score *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setManualScore", ratee, dim, score)
}

// SetManualScoreTransaction creates a transaction invoking `setManualScore` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetManualScoreTransaction(ratee util.Uint160, dim *big.Int, score *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setManualScore", ratee, dim, score)
}

// SetManualScoreUnsigned creates a transaction invoking `setManualScore` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetManualScoreUnsigned(ratee util.Uint160, dim *big.Int, score *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setManualScore", nil, ratee, dim, score)
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

// itemToScoreScoreRecord converts stack item into *ScoreScoreRecord.
func itemToScoreScoreRecord(item stackitem.Item, err error) (*ScoreScoreRecord, error) {
	if err != nil {
		return nil, err
	}
	var res = new(ScoreScoreRecord)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of ScoreScoreRecord from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *ScoreScoreRecord) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 7 {
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
	res.Rater, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Rater: %w", err)
	}

	index++
	res.Ratee, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Ratee: %w", err)
	}

	index++
	res.Dimension, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Dimension: %w", err)
	}

	index++
	res.Value, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Value: %w", err)
	}

	index++
	res.Timestamp, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Timestamp: %w", err)
	}

	index++
	res.HandoffID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field HandoffID: %w", err)
	}

	return nil
}

// ScoreAssignedEventsFromApplicationLog retrieves a set of all emitted events
// with "ScoreAssigned" name from the provided [result.ApplicationLog].
func ScoreAssignedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ScoreAssignedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ScoreAssignedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ScoreAssigned" {
				continue
			}
			event := new(ScoreAssignedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ScoreAssignedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ScoreAssignedEvent or
// returns an error if it's not possible to do to so.
func (e *ScoreAssignedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Rater, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Rater: %w", err)
	}

	index++
	e.Ratee, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Ratee: %w", err)
	}

	index++
	e.Dimension, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Dimension: %w", err)
	}

	index++
	e.Value, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Value: %w", err)
	}

	index++
	e.Score, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Score: %w", err)
	}

	return nil
}

// ConfidenceChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "ConfidenceChanged" name from the provided [result.ApplicationLog].
func ConfidenceChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ConfidenceChangedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ConfidenceChangedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ConfidenceChanged" {
				continue
			}
			event := new(ConfidenceChangedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ConfidenceChangedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ConfidenceChangedEvent or
// returns an error if it's not possible to do to so.
func (e *ConfidenceChangedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Party, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Party: %w", err)
	}

	index++
	e.Confidence, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Confidence: %w", err)
	}

	return nil
}

// ManualScoreSetEventsFromApplicationLog retrieves a set of all emitted events
// with "ManualScoreSet" name from the provided [result.ApplicationLog].
func ManualScoreSetEventsFromApplicationLog(log *result.ApplicationLog) ([]*ManualScoreSetEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ManualScoreSetEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ManualScoreSet" {
				continue
			}
			event := new(ManualScoreSetEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ManualScoreSetEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ManualScoreSetEvent or
// returns an error if it's not possible to do to so.
func (e *ManualScoreSetEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Ratee, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Ratee: %w", err)
	}

	index++
	e.Dimension, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Dimension: %w", err)
	}

	index++
	e.Score, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Score: %w", err)
	}

	return nil
}
