// Package handoff contains RPC wrappers for Provena Handoff contract.
package handoff

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

// HandoffHandoff is a contract-specific handoff.Handoff type used by its methods.
type HandoffHandoff struct {
	ID *big.Int
	Seller util.Uint160
	Buyer util.Uint160
	AssetID *big.Int
	CreatedAt *big.Int
	Status *big.Int
	Previous *big.Int
}

// BuyRecordedEvent represents "BuyRecorded" event emitted by the contract.
type BuyRecordedEvent struct {
	ID *big.Int
	Buyer util.Uint160
	Seller util.Uint160
	AssetID *big.Int
}

// SellConfirmedEvent represents "SellConfirmed" event emitted by the contract.
type SellConfirmedEvent struct {
	ID *big.Int
	Seller util.Uint160
	Buyer util.Uint160
	AssetID *big.Int
}

// SellerRatedEvent represents "SellerRated" event emitted by the contract.
type SellerRatedEvent struct {
	ID *big.Int
	Buyer util.Uint160
	Ratee util.Uint160
	Dimension *big.Int
	ScoreID *big.Int
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

// BuyersOf invokes `buyersOf` method of contract.
func (c *ContractReader) BuyersOf(seller util.Uint160) ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "buyersOf", seller))
}

// GetHandoff invokes `getHandoff` method of contract.
func (c *ContractReader) GetHandoff(handoffID *big.Int) (*HandoffHandoff, error) {
	return itemToHandoffHandoff(unwrap.Item(c.invoker.Call(c.hash, "getHandoff", handoffID)))
}

// HandoffsByAsset invokes `handoffsByAsset` method of contract.
func (c *ContractReader) HandoffsByAsset(assetID *big.Int) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "handoffsByAsset", assetID))
}

// HasTransacted invokes `hasTransacted` method of contract.
func (c *ContractReader) HasTransacted(a util.Uint160, b util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "hasTransacted", a, b))
}

// IsRated invokes `isRated` method of contract.
func (c *ContractReader) IsRated(handoffID *big.Int, dim *big.Int) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isRated", handoffID, dim))
}

// LastID invokes `lastID` method of contract.
func (c *ContractReader) LastID() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "lastID"))
}

// PendingByAsset invokes `pendingByAsset` method of contract.
func (c *ContractReader) PendingByAsset(assetID *big.Int) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "pendingByAsset", assetID))
}

// ProvenanceOf invokes `provenanceOf` method of contract.
func (c *ContractReader) ProvenanceOf(handoffID *big.Int) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "provenanceOf", handoffID))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// BuyerRateSeller creates a transaction invoking `buyerRateSeller` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) BuyerRateSeller(buyer util.Uint160, handoffID *big.Int, dim *big.Int, value *big.Int, assetIDForProvenance *big.Int, rateOriginalProducer bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "buyerRateSeller", buyer, handoffID, dim, value, assetIDForProvenance, rateOriginalProducer)
}

// BuyerRateSellerTransaction creates a transaction invoking `buyerRateSeller` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) BuyerRateSellerTransaction(buyer util.Uint160, handoffID *big.Int, dim *big.Int, value *big.Int, assetIDForProvenance *big.Int, rateOriginalProducer bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "buyerRateSeller", buyer, handoffID, dim, value, assetIDForProvenance, rateOriginalProducer)
}

// BuyerRateSellerUnsigned creates a transaction invoking `buyerRateSeller` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) BuyerRateSellerUnsigned(buyer util.Uint160, handoffID *big.Int, dim *big.Int, value *big.Int, assetIDForProvenance *big.Int, rateOriginalProducer bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "buyerRateSeller", nil, buyer, handoffID, dim, value, assetIDForProvenance, rateOriginalProducer)
}

// ConfirmSell creates a transaction invoking `confirmSell` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ConfirmSell(seller util.Uint160, handoffID *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "confirmSell", seller, handoffID)
}

// ConfirmSellTransaction creates a transaction invoking `confirmSell` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ConfirmSellTransaction(seller util.Uint160, handoffID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "confirmSell", seller, handoffID)
}

// ConfirmSellUnsigned creates a transaction invoking `confirmSell` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ConfirmSellUnsigned(seller util.Uint160, handoffID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "confirmSell", nil, seller, handoffID)
}

// RecordBuy creates a transaction invoking `recordBuy` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RecordBuy(buyer util.Uint160, seller util.Uint160, assetID *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "recordBuy", buyer, seller, assetID)
}

// RecordBuyTransaction creates a transaction invoking `recordBuy` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RecordBuyTransaction(buyer util.Uint160, seller util.Uint160, assetID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "recordBuy", buyer, seller, assetID)
}

// RecordBuyUnsigned creates a transaction invoking `recordBuy` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RecordBuyUnsigned(buyer util.Uint160, seller util.Uint160, assetID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "recordBuy", nil, buyer, seller, assetID)
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

// itemToHandoffHandoff converts stack item into *HandoffHandoff.
func itemToHandoffHandoff(item stackitem.Item, err error) (*HandoffHandoff, error) {
	if err != nil {
		return nil, err
	}
	var res = new(HandoffHandoff)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of HandoffHandoff from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *HandoffHandoff) FromStackItem(item stackitem.Item) error {
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
	res.Seller, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Seller: %w", err)
	}

	index++
	res.Buyer, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Buyer: %w", err)
	}

	index++
	res.AssetID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AssetID: %w", err)
	}

	index++
	res.CreatedAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CreatedAt: %w", err)
	}

	index++
	res.Status, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}

	index++
	res.Previous, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Previous: %w", err)
	}

	return nil
}

// BuyRecordedEventsFromApplicationLog retrieves a set of all emitted events
// with "BuyRecorded" name from the provided [result.ApplicationLog].
func BuyRecordedEventsFromApplicationLog(log *result.ApplicationLog) ([]*BuyRecordedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*BuyRecordedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "BuyRecorded" {
				continue
			}
			event := new(BuyRecordedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize BuyRecordedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to BuyRecordedEvent or
// returns an error if it's not possible to do to so.
func (e *BuyRecordedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Buyer, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Buyer: %w", err)
	}

	index++
	e.Seller, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Seller: %w", err)
	}

	index++
	e.AssetID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AssetID: %w", err)
	}

	return nil
}

// SellConfirmedEventsFromApplicationLog retrieves a set of all emitted events
// with "SellConfirmed" name from the provided [result.ApplicationLog].
func SellConfirmedEventsFromApplicationLog(log *result.ApplicationLog) ([]*SellConfirmedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*SellConfirmedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "SellConfirmed" {
				continue
			}
			event := new(SellConfirmedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize SellConfirmedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to SellConfirmedEvent or
// returns an error if it's not possible to do to so.
func (e *SellConfirmedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Seller, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Seller: %w", err)
	}

	index++
	e.Buyer, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Buyer: %w", err)
	}

	index++
	e.AssetID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AssetID: %w", err)
	}

	return nil
}

// SellerRatedEventsFromApplicationLog retrieves a set of all emitted events
// with "SellerRated" name from the provided [result.ApplicationLog].
func SellerRatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*SellerRatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*SellerRatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "SellerRated" {
				continue
			}
			event := new(SellerRatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize SellerRatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to SellerRatedEvent or
// returns an error if it's not possible to do to so.
func (e *SellerRatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
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
	e.Buyer, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Buyer: %w", err)
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
	e.ScoreID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ScoreID: %w", err)
	}

	return nil
}
