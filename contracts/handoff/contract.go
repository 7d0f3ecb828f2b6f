package handoff

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/provena-labs/provena-contract/common"
	"github.com/provena-labs/provena-contract/contracts/handoff/handoffconst"
	"github.com/provena-labs/provena-contract/contracts/registry/role"
)

// Handoff is a recorded sale of goods or a service between two parties.
type Handoff struct {
	ID        int
	Seller    interop.Hash160
	Buyer     interop.Hash160
	AssetID   int
	CreatedAt int
	Status    int
	// Previous is the handoff which brought the asset to the seller, 0 if
	// the seller is the first known holder.
	Previous int
}

const (
	registryContractKey = 'R'
	productContractKey  = 'P'
	scoreContractKey    = 'S'
	tokenContractKey    = 'T'

	lastIDKey          = 'n'
	handoffPrefix      = 't'
	ratedPrefix        = 'f'
	assetHandoffPrefix = 'a'
	assetHeadPrefix    = 'v'
	buyersPrefix       = 'b'
	edgePrefix         = 'e'
)

// _deploy stores addresses of the collaborating contracts. Deploy data is
// [registry, product, score, token].
// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	args := data.([]any)
	if isUpdate {
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	if len(args) < 4 {
		panic("not enough deploy arguments")
	}

	ctx := storage.GetContext()

	putAddress(ctx, registryContractKey, args[0].(interop.Hash160))
	putAddress(ctx, productContractKey, args[1].(interop.Hash160))
	putAddress(ctx, scoreContractKey, args[2].(interop.Hash160))
	putAddress(ctx, tokenContractKey, args[3].(interop.Hash160))

	runtime.Log("handoff contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	common.UpdateContract(script, manifest, data)
	runtime.Log("handoff contract updated")
}

// RecordBuy registers buyer's intention to buy the asset from the seller and
// returns identifier of the new pending handoff. Zero asset stands for
// intangible goods and services. Buyer must be exactly one step after the
// seller in the supply chain. A tangible asset must currently be owned by the
// seller; if the seller got it through a handoff, the new one is linked to it.
func RecordBuy(buyer, seller interop.Hash160, assetID int) int {
	common.CheckAddress(seller)
	common.CheckWitness(buyer)

	ctx := storage.GetContext()
	registry := getAddress(ctx, registryContractKey)

	buyerRole := roleOf(registry, buyer)
	sellerRole := roleOf(registry, seller)
	if buyerRole == role.None || sellerRole == role.None {
		panic(handoffconst.ErrPartyNotRegistered)
	}
	if !role.Adjacent(buyerRole, sellerRole) {
		panic(handoffconst.ErrInvalidRolePair)
	}

	prev := 0
	if assetID != 0 {
		owner := contract.Call(getAddress(ctx, productContractKey), "ownerOf", contract.ReadOnly, assetID).(interop.Hash160)
		if !owner.Equals(seller) {
			panic(handoffconst.ErrSellerNotOwner)
		}

		head := provenanceHead(ctx, assetID)
		if head != 0 && mustHandoff(ctx, head).Buyer.Equals(seller) {
			prev = head
		}
	}

	id := common.NextID(ctx, lastIDKey)
	h := Handoff{
		ID:        id,
		Seller:    seller,
		Buyer:     buyer,
		AssetID:   assetID,
		CreatedAt: runtime.GetTime(),
		Status:    handoffconst.Pending,
		Previous:  prev,
	}
	putHandoff(ctx, h)

	if assetID != 0 {
		common.AppendToList(ctx, common.ListKey(assetHandoffPrefix, assetID), id)
	}

	runtime.Notify("BuyRecorded", id, buyer, seller, assetID)

	return id
}

// ConfirmSell validates the pending handoff. Only its seller may do it.
// Unless a supplier sells to a factory, the seller pays the reward to the
// buyer, or to the reward pool of the score contract if the buyer is a
// consumer. Asset still owned by the seller moves to the buyer.
func ConfirmSell(seller interop.Hash160, handoffID int) {
	common.CheckWitness(seller)

	ctx := storage.GetContext()
	h := mustHandoff(ctx, handoffID)

	if !h.Seller.Equals(seller) {
		panic(handoffconst.ErrNotSeller)
	}
	if h.Status != handoffconst.Pending {
		panic(handoffconst.ErrNotPending)
	}

	h.Status = handoffconst.Validated
	putHandoff(ctx, h)

	registry := getAddress(ctx, registryContractKey)
	sellerRole := roleOf(registry, h.Seller)
	buyerRole := roleOf(registry, h.Buyer)

	if sellerRole != role.Supplier || buyerRole != role.Factory {
		scoreAddr := getAddress(ctx, scoreContractKey)
		reward := contract.Call(scoreAddr, "reward", contract.ReadOnly).(int)

		to := h.Buyer
		if buyerRole == role.Consumer {
			to = scoreAddr
		}

		common.TransferTokens(getAddress(ctx, tokenContractKey), seller, to, reward,
			handoffconst.ErrRewardTransferFailed)
	}

	if h.AssetID != 0 {
		product := getAddress(ctx, productContractKey)
		owner := contract.Call(product, "ownerOf", contract.ReadOnly, h.AssetID).(interop.Hash160)
		if owner.Equals(seller) {
			contract.Call(product, "transfer", contract.All, seller, h.Buyer, h.AssetID)
			storage.Put(ctx, common.IDKey(assetHeadPrefix, h.AssetID), handoffID)
		}
	}

	recordEdge(ctx, h.Buyer, h.Seller)

	runtime.Notify("SellConfirmed", handoffID, seller, h.Buyer, h.AssetID)
}

// BuyerRateSeller rates the seller of the validated handoff along the
// dimension, once per dimension. With rateOriginalProducer set the rating
// goes to the factory which produced the asset instead: it is found by
// walking the provenance chain of the handoff, assetIDForProvenance must
// match handoff's asset. Returns identifier of the rating.
func BuyerRateSeller(buyer interop.Hash160, handoffID, dim, value, assetIDForProvenance int, rateOriginalProducer bool) int {
	common.CheckWitness(buyer)

	ctx := storage.GetContext()
	h := mustHandoff(ctx, handoffID)

	if !h.Buyer.Equals(buyer) {
		panic(handoffconst.ErrNotBuyer)
	}
	if h.Status != handoffconst.Validated {
		panic(handoffconst.ErrNotValidated)
	}

	flagKey := common.SlotKey(ratedPrefix, dim, handoffID)
	if storage.Get(ctx, flagKey) != nil {
		panic(handoffconst.ErrAlreadyRated)
	}

	ratee := h.Seller
	if rateOriginalProducer {
		if assetIDForProvenance == 0 || assetIDForProvenance != h.AssetID {
			panic(handoffconst.ErrProvenanceMismatch)
		}
		ratee = findProducer(ctx, h)
	}

	storage.Put(ctx, flagKey, true)
	recordEdge(ctx, buyer, ratee)

	scoreID := contract.Call(getAddress(ctx, scoreContractKey), "rate", contract.All,
		buyer, ratee, dim, value, handoffID, rateOriginalProducer).(int)

	runtime.Notify("SellerRated", handoffID, buyer, ratee, dim, scoreID)

	return scoreID
}

// GetHandoff returns handoff with the given identifier.
func GetHandoff(handoffID int) Handoff {
	return mustHandoff(storage.GetReadOnlyContext(), handoffID)
}

// HandoffsByAsset returns identifiers of all handoffs of the asset.
func HandoffsByAsset(assetID int) []int {
	return common.GetIntList(storage.GetReadOnlyContext(), common.ListKey(assetHandoffPrefix, assetID))
}

// PendingByAsset returns identifiers of not yet confirmed handoffs of the
// asset.
func PendingByAsset(assetID int) []int {
	ctx := storage.GetReadOnlyContext()
	ids := common.GetIntList(ctx, common.ListKey(assetHandoffPrefix, assetID))

	res := []int{}
	for i := range ids {
		if mustHandoff(ctx, ids[i]).Status == handoffconst.Pending {
			res = append(res, ids[i])
		}
	}
	return res
}

// ProvenanceOf returns identifiers of handoffs which brought the asset of
// the given handoff to its seller, starting from the handoff itself and going
// back in time.
func ProvenanceOf(handoffID int) []int {
	ctx := storage.GetReadOnlyContext()
	last := common.LastID(ctx, lastIDKey)

	res := []int{}
	cur := mustHandoff(ctx, handoffID)
	for steps := 0; steps < last; steps++ {
		res = append(res, cur.ID)
		if cur.Previous == 0 {
			break
		}
		cur = mustHandoff(ctx, cur.Previous)
	}
	return res
}

// IsRated checks whether the handoff was rated along the dimension.
func IsRated(handoffID, dim int) bool {
	return storage.Get(storage.GetReadOnlyContext(), common.SlotKey(ratedPrefix, dim, handoffID)) != nil
}

// BuyersOf returns parties which bought from or rated the seller.
func BuyersOf(seller interop.Hash160) []interop.Hash160 {
	return common.GetHashList(storage.GetReadOnlyContext(), common.AddressKey(buyersPrefix, seller))
}

// HasTransacted checks whether two parties were ever counterparts of a
// confirmed handoff or a rating. The relation is symmetric.
func HasTransacted(a, b interop.Hash160) bool {
	return storage.Get(storage.GetReadOnlyContext(), edgeKey(a, b)) != nil
}

// LastID returns identifier of the latest handoff, 0 if there are none.
func LastID() int {
	return common.LastID(storage.GetReadOnlyContext(), lastIDKey)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// findProducer walks provenance chain of the handoff back to the first
// handoff sold by a factory. Asset creator is used when the chain has no
// factory sellers. Walk length is bounded by the number of handoffs.
func findProducer(ctx storage.Context, h Handoff) interop.Hash160 {
	registry := getAddress(ctx, registryContractKey)
	last := common.LastID(ctx, lastIDKey)

	cur := h
	for steps := 0; steps < last; steps++ {
		if roleOf(registry, cur.Seller) == role.Factory {
			return cur.Seller
		}
		if cur.Previous == 0 {
			break
		}
		cur = mustHandoff(ctx, cur.Previous)
	}

	creator := contract.Call(getAddress(ctx, productContractKey), "creatorOf", contract.ReadOnly, h.AssetID).(interop.Hash160)
	if roleOf(registry, creator) == role.Factory {
		return creator
	}

	panic(handoffconst.ErrProducerNotFound)
}

func recordEdge(ctx storage.Context, buyer, seller interop.Hash160) {
	key := edgeKey(buyer, seller)
	if storage.Get(ctx, key) != nil {
		return
	}

	storage.Put(ctx, key, true)
	storage.Put(ctx, edgeKey(seller, buyer), true)

	common.AppendToList(ctx, common.AddressKey(buyersPrefix, seller), buyer)
}

func edgeKey(a, b interop.Hash160) []byte {
	return append(common.AddressKey(edgePrefix, a), b...)
}

func provenanceHead(ctx storage.Context, assetID int) int {
	return common.LastID(ctx, common.IDKey(assetHeadPrefix, assetID))
}

func mustHandoff(ctx storage.Context, id int) Handoff {
	data := storage.Get(ctx, common.IDKey(handoffPrefix, id))
	if data == nil {
		panic(handoffconst.ErrHandoffNotFound)
	}
	return std.Deserialize(data.([]byte)).(Handoff)
}

func putHandoff(ctx storage.Context, h Handoff) {
	common.SetSerialized(ctx, common.IDKey(handoffPrefix, h.ID), h)
}

func roleOf(registry, party interop.Hash160) int {
	return contract.Call(registry, "roleOf", contract.ReadOnly, party).(int)
}

func putAddress(ctx storage.Context, key byte, h interop.Hash160) {
	common.CheckAddress(h)
	storage.Put(ctx, key, h)
}

func getAddress(ctx storage.Context, key byte) interop.Hash160 {
	return storage.Get(ctx, key).(interop.Hash160)
}
