package registry

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/provena-labs/provena-contract/common"
	"github.com/provena-labs/provena-contract/contracts/registry/role"
)

// Stakeholder is a registered supply chain participant.
type Stakeholder struct {
	Role     int
	Metadata string
}

const (
	stakeholderPrefix = 's'
	roleCountPrefix   = 'c'

	ErrInvalidRole       = "invalid role"
	ErrAlreadyRegistered = "stakeholder is already registered"
	ErrNotRegistered     = "stakeholder is not registered"
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	runtime.Log("registry contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	common.UpdateContract(script, manifest, data)
	runtime.Log("registry contract updated")
}

// Register assigns role to the party. Party must sign the transaction and
// must not have a role yet.
func Register(party interop.Hash160, r int, metadata string) {
	common.CheckAddress(party)
	common.CheckWitness(party)

	if !role.Valid(r) {
		panic(ErrInvalidRole)
	}

	ctx := storage.GetContext()
	if storage.Get(ctx, stakeholderKey(party)) != nil {
		panic(ErrAlreadyRegistered)
	}

	putStakeholder(ctx, party, Stakeholder{Role: r, Metadata: metadata})
	changeRoleCount(ctx, r, 1)

	runtime.Notify("Registered", party, r, metadata)
}

// UpdateMetadata replaces opaque metadata of the registered party.
func UpdateMetadata(party interop.Hash160, metadata string) {
	common.CheckWitness(party)

	ctx := storage.GetContext()
	s := mustStakeholder(ctx, party)
	s.Metadata = metadata
	putStakeholder(ctx, party, s)

	runtime.Notify("MetadataUpdated", party, metadata)
}

// TransferRole moves role and metadata of the registered party to another
// unregistered one. The source party must sign the transaction.
func TransferRole(from, to interop.Hash160) {
	common.CheckAddress(to)
	common.CheckWitness(from)

	ctx := storage.GetContext()
	s := mustStakeholder(ctx, from)
	if storage.Get(ctx, stakeholderKey(to)) != nil {
		panic(ErrAlreadyRegistered)
	}

	storage.Delete(ctx, stakeholderKey(from))
	putStakeholder(ctx, to, s)

	runtime.Notify("RoleTransferred", from, to, s.Role)
}

// Remove unregisters the party. It can be invoked only by committee.
func Remove(party interop.Hash160) {
	common.CheckCommitteeWitness()

	ctx := storage.GetContext()
	s := mustStakeholder(ctx, party)

	storage.Delete(ctx, stakeholderKey(party))
	changeRoleCount(ctx, s.Role, -1)

	runtime.Notify("Removed", party, s.Role)
}

// RoleOf returns role of the party, role.None for unknown parties.
func RoleOf(party interop.Hash160) int {
	s := getStakeholder(storage.GetReadOnlyContext(), party)
	return s.Role
}

// IsRegistered checks whether the party has a role.
func IsRegistered(party interop.Hash160) bool {
	return RoleOf(party) != role.None
}

// MetadataOf returns metadata of the registered party.
func MetadataOf(party interop.Hash160) string {
	return mustStakeholder(storage.GetReadOnlyContext(), party).Metadata
}

// TotalByRole returns number of registered parties with the given role.
func TotalByRole(r int) int {
	return common.LastID(storage.GetReadOnlyContext(), common.IDKey(roleCountPrefix, r))
}

// ListByRole returns all parties registered with the given role.
func ListByRole(r int) []interop.Hash160 {
	ctx := storage.GetReadOnlyContext()

	res := []interop.Hash160{}

	it := storage.Find(ctx, []byte{stakeholderPrefix}, storage.RemovePrefix)
	for iterator.Next(it) {
		kv := iterator.Value(it).(struct {
			key   []byte
			value []byte
		})

		s := std.Deserialize(kv.value).(Stakeholder)
		if s.Role == r {
			res = append(res, kv.key)
		}
	}

	return res
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func stakeholderKey(party interop.Hash160) []byte {
	return common.AddressKey(stakeholderPrefix, party)
}

func getStakeholder(ctx storage.Context, party interop.Hash160) Stakeholder {
	data := storage.Get(ctx, stakeholderKey(party))
	if data == nil {
		return Stakeholder{}
	}
	return std.Deserialize(data.([]byte)).(Stakeholder)
}

func mustStakeholder(ctx storage.Context, party interop.Hash160) Stakeholder {
	s := getStakeholder(ctx, party)
	if s.Role == role.None {
		panic(ErrNotRegistered)
	}
	return s
}

func putStakeholder(ctx storage.Context, party interop.Hash160, s Stakeholder) {
	common.SetSerialized(ctx, stakeholderKey(party), s)
}

func changeRoleCount(ctx storage.Context, r int, delta int) {
	key := common.IDKey(roleCountPrefix, r)
	storage.Put(ctx, key, common.LastID(ctx, key)+delta)
}
