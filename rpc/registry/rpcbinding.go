// Package registry contains RPC wrappers for Provena Registry contract.
package registry

import (
	"errors"
	"fmt"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
	"unicode/utf8"
)

// RegistryStakeholder is a contract-specific registry.Stakeholder type used by its methods.
type RegistryStakeholder struct {
	Role *big.Int
	Metadata string
}

// RegisteredEvent represents "Registered" event emitted by the contract.
type RegisteredEvent struct {
	Party util.Uint160
	Role *big.Int
	Metadata string
}

// MetadataUpdatedEvent represents "MetadataUpdated" event emitted by the contract.
type MetadataUpdatedEvent struct {
	Party util.Uint160
	Metadata string
}

// RoleTransferredEvent represents "RoleTransferred" event emitted by the contract.
type RoleTransferredEvent struct {
	From util.Uint160
	To util.Uint160
	Role *big.Int
}

// RemovedEvent represents "Removed" event emitted by the contract.
type RemovedEvent struct {
	Party util.Uint160
	Role *big.Int
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

// IsRegistered invokes `isRegistered` method of contract.
func (c *ContractReader) IsRegistered(party util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isRegistered", party))
}

// ListByRole invokes `listByRole` method of contract.
func (c *ContractReader) ListByRole(r *big.Int) ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "listByRole", r))
}

// MetadataOf invokes `metadataOf` method of contract.
func (c *ContractReader) MetadataOf(party util.Uint160) (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "metadataOf", party))
}

// RoleOf invokes `roleOf` method of contract.
func (c *ContractReader) RoleOf(party util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "roleOf", party))
}

// TotalByRole invokes `totalByRole` method of contract.
func (c *ContractReader) TotalByRole(r *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalByRole", r))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Register creates a transaction invoking `register` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Register(party util.Uint160, r *big.Int, metadata string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "register", party, r, metadata)
}

// RegisterTransaction creates a transaction invoking `register` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RegisterTransaction(party util.Uint160, r *big.Int, metadata string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "register", party, r, metadata)
}

// RegisterUnsigned creates a transaction invoking `register` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RegisterUnsigned(party util.Uint160, r *big.Int, metadata string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "register", nil, party, r, metadata)
}

// Remove creates a transaction invoking `remove` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Remove(party util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "remove", party)
}

// RemoveTransaction creates a transaction invoking `remove` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RemoveTransaction(party util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "remove", party)
}

// RemoveUnsigned creates a transaction invoking `remove` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RemoveUnsigned(party util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "remove", nil, party)
}

// TransferRole creates a transaction invoking `transferRole` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) TransferRole(from util.Uint160, to util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "transferRole", from, to)
}

// TransferRoleTransaction creates a transaction invoking `transferRole` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) TransferRoleTransaction(from util.Uint160, to util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "transferRole", from, to)
}

// TransferRoleUnsigned creates a transaction invoking `transferRole` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) TransferRoleUnsigned(from util.Uint160, to util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "transferRole", nil, from, to)
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

// UpdateMetadata creates a transaction invoking `updateMetadata` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UpdateMetadata(party util.Uint160, metadata string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateMetadata", party, metadata)
}

// UpdateMetadataTransaction creates a transaction invoking `updateMetadata` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateMetadataTransaction(party util.Uint160, metadata string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateMetadata", party, metadata)
}

// UpdateMetadataUnsigned creates a transaction invoking `updateMetadata` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateMetadataUnsigned(party util.Uint160, metadata string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateMetadata", nil, party, metadata)
}

// itemToRegistryStakeholder converts stack item into *RegistryStakeholder.
func itemToRegistryStakeholder(item stackitem.Item, err error) (*RegistryStakeholder, error) {
	if err != nil {
		return nil, err
	}
	var res = new(RegistryStakeholder)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of RegistryStakeholder from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *RegistryStakeholder) FromStackItem(item stackitem.Item) error {
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
	res.Role, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Role: %w", err)
	}

	index++
	res.Metadata, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Metadata: %w", err)
	}

	return nil
}

// RegisteredEventsFromApplicationLog retrieves a set of all emitted events
// with "Registered" name from the provided [result.ApplicationLog].
func RegisteredEventsFromApplicationLog(log *result.ApplicationLog) ([]*RegisteredEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RegisteredEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Registered" {
				continue
			}
			event := new(RegisteredEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RegisteredEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RegisteredEvent or
// returns an error if it's not possible to do to so.
func (e *RegisteredEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Role, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Role: %w", err)
	}

	index++
	e.Metadata, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Metadata: %w", err)
	}

	return nil
}

// MetadataUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "MetadataUpdated" name from the provided [result.ApplicationLog].
func MetadataUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*MetadataUpdatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*MetadataUpdatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "MetadataUpdated" {
				continue
			}
			event := new(MetadataUpdatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize MetadataUpdatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to MetadataUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *MetadataUpdatedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Metadata, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Metadata: %w", err)
	}

	return nil
}

// RoleTransferredEventsFromApplicationLog retrieves a set of all emitted events
// with "RoleTransferred" name from the provided [result.ApplicationLog].
func RoleTransferredEventsFromApplicationLog(log *result.ApplicationLog) ([]*RoleTransferredEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RoleTransferredEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RoleTransferred" {
				continue
			}
			event := new(RoleTransferredEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RoleTransferredEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RoleTransferredEvent or
// returns an error if it's not possible to do to so.
func (e *RoleTransferredEvent) FromStackItem(item *stackitem.Array) error {
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
	e.From, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field From: %w", err)
	}

	index++
	e.To, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field To: %w", err)
	}

	index++
	e.Role, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Role: %w", err)
	}

	return nil
}

// RemovedEventsFromApplicationLog retrieves a set of all emitted events
// with "Removed" name from the provided [result.ApplicationLog].
func RemovedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RemovedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RemovedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Removed" {
				continue
			}
			event := new(RemovedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RemovedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RemovedEvent or
// returns an error if it's not possible to do to so.
func (e *RemovedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Role, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Role: %w", err)
	}

	return nil
}
