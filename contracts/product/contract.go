package product

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/provena-labs/provena-contract/common"
)

// Product is a tracked asset.
type Product struct {
	ID        int
	Creator   interop.Hash160
	Owner     interop.Hash160
	Metadata  string
	CreatedAt int
}

const (
	productPrefix = 'p'
	historyPrefix = 'h'
	lastIDKey     = 'n'
	opPrefix      = 'o'

	ErrNotFound = "product not found"
	ErrNotOwner = "caller is not the owner of the product"
	ErrNoAccess = "only creator or owner can update the product"
)

// _deploy stores operators, contracts which may transfer products on behalf
// of their owners. Deploy data is [operators...].
// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	if data != nil {
		common.SaveOperators(storage.GetContext(), opPrefix, data.([]any), 0)
	}

	runtime.Log("product contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	common.UpdateContract(script, manifest, data)
	runtime.Log("product contract updated")
}

// Mint creates new product owned by its creator and returns its identifier.
func Mint(creator interop.Hash160, metadata string) int {
	common.CheckAddress(creator)
	common.CheckWitness(creator)

	ctx := storage.GetContext()
	id := common.NextID(ctx, lastIDKey)

	p := Product{
		ID:        id,
		Creator:   creator,
		Owner:     creator,
		Metadata:  metadata,
		CreatedAt: runtime.GetTime(),
	}
	common.SetSerialized(ctx, common.IDKey(productPrefix, id), p)
	common.AppendToList(ctx, common.ListKey(historyPrefix, id), creator)

	runtime.Notify("ProductMinted", id, creator, metadata)
	return id
}

// Transfer moves product ownership. Current owner must sign the transaction
// unless the transfer is made by an operator.
func Transfer(from, to interop.Hash160, id int) {
	common.CheckAddress(to)

	ctx := storage.GetContext()
	common.CheckWitnessOrOperator(ctx, opPrefix, from)
	p := mustProduct(ctx, id)
	if !p.Owner.Equals(from) {
		panic(ErrNotOwner)
	}

	p.Owner = to
	common.SetSerialized(ctx, common.IDKey(productPrefix, id), p)

	common.AppendToList(ctx, common.ListKey(historyPrefix, id), to)

	runtime.Notify("ProductTransferred", id, from, to)
}

// UpdateMetadata replaces product metadata. Only creator or current owner
// may do it.
func UpdateMetadata(caller interop.Hash160, id int, metadata string) {
	common.CheckWitness(caller)

	ctx := storage.GetContext()
	p := mustProduct(ctx, id)
	if !p.Owner.Equals(caller) && !p.Creator.Equals(caller) {
		panic(ErrNoAccess)
	}

	p.Metadata = metadata
	common.SetSerialized(ctx, common.IDKey(productPrefix, id), p)

	runtime.Notify("ProductUpdated", id, metadata)
}

// OwnerOf returns current owner of the product.
func OwnerOf(id int) interop.Hash160 {
	return mustProduct(storage.GetReadOnlyContext(), id).Owner
}

// CreatorOf returns the party which minted the product.
func CreatorOf(id int) interop.Hash160 {
	return mustProduct(storage.GetReadOnlyContext(), id).Creator
}

// Details returns full product record.
func Details(id int) Product {
	return mustProduct(storage.GetReadOnlyContext(), id)
}

// History returns all owners of the product, the creator first.
func History(id int) []interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	mustProduct(ctx, id)
	return common.GetHashList(ctx, common.ListKey(historyPrefix, id))
}

// TotalSupply returns number of minted products.
func TotalSupply() int {
	return common.LastID(storage.GetReadOnlyContext(), lastIDKey)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func mustProduct(ctx storage.Context, id int) Product {
	data := storage.Get(ctx, common.IDKey(productPrefix, id))
	if data == nil {
		panic(ErrNotFound)
	}
	return std.Deserialize(data.([]byte)).(Product)
}
