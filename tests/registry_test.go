package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/provena-labs/provena-contract/common"
	"github.com/provena-labs/provena-contract/contracts/registry"
	"github.com/provena-labs/provena-contract/contracts/registry/role"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	s := newSuite(t)
	reader := s.reader(s.registry)

	acc := s.e.NewAccount(t)
	p := s.newUnregistered(t, acc)

	reader.Invoke(t, role.None, "roleOf", acc.ScriptHash())
	reader.Invoke(t, false, "isRegistered", acc.ScriptHash())

	t.Run("invalid role", func(t *testing.T) {
		p.registry.InvokeFail(t, registry.ErrInvalidRole, "register", acc.ScriptHash(), role.None, "")
		p.registry.InvokeFail(t, registry.ErrInvalidRole, "register", acc.ScriptHash(), role.Consumer+1, "")
	})

	t.Run("foreign witness", func(t *testing.T) {
		other := s.e.NewAccount(t)
		p.registry.InvokeFail(t, common.ErrWitnessFailed, "register", other.ScriptHash(), role.Factory, "")
	})

	p.registry.Invoke(t, stackitem.Null{}, "register", acc.ScriptHash(), role.Factory, "ACME plant")

	reader.Invoke(t, role.Factory, "roleOf", acc.ScriptHash())
	reader.Invoke(t, true, "isRegistered", acc.ScriptHash())
	reader.Invoke(t, "ACME plant", "metadataOf", acc.ScriptHash())
	reader.Invoke(t, 1, "totalByRole", role.Factory)
	reader.Invoke(t, 0, "totalByRole", role.Supplier)

	t.Run("twice", func(t *testing.T) {
		p.registry.InvokeFail(t, registry.ErrAlreadyRegistered, "register", acc.ScriptHash(), role.Retailer, "")
	})

	t.Run("list", func(t *testing.T) {
		second := s.newParty(t, role.Factory)
		s.newParty(t, role.Supplier)

		items := s.callArray(t, s.registry, "listByRole", role.Factory)
		require.Len(t, items, 2)
		require.ElementsMatch(t,
			[]any{acc.ScriptHash(), second.ScriptHash()},
			[]any{itemHash(t, items[0]), itemHash(t, items[1])})
	})
}

func TestRegistry_UpdateMetadata(t *testing.T) {
	s := newSuite(t)
	p := s.newParty(t, role.Retailer)

	p.registry.Invoke(t, stackitem.Null{}, "updateMetadata", p.ScriptHash(), "corner shop")
	s.reader(s.registry).Invoke(t, "corner shop", "metadataOf", p.ScriptHash())

	stranger := s.newUnregistered(t, s.e.NewAccount(t))
	stranger.registry.InvokeFail(t, registry.ErrNotRegistered, "updateMetadata", stranger.ScriptHash(), "x")
	stranger.registry.InvokeFail(t, common.ErrWitnessFailed, "updateMetadata", p.ScriptHash(), "x")
}

func TestRegistry_TransferRole(t *testing.T) {
	s := newSuite(t)
	reader := s.reader(s.registry)

	from := s.newParty(t, role.Distributor)
	taken := s.newParty(t, role.Supplier)
	to := s.e.NewAccount(t)

	from.registry.InvokeFail(t, registry.ErrAlreadyRegistered, "transferRole", from.ScriptHash(), taken.ScriptHash())
	from.registry.Invoke(t, stackitem.Null{}, "transferRole", from.ScriptHash(), to.ScriptHash())

	reader.Invoke(t, role.None, "roleOf", from.ScriptHash())
	reader.Invoke(t, role.Distributor, "roleOf", to.ScriptHash())
	reader.Invoke(t, role.String(role.Distributor), "metadataOf", to.ScriptHash())
	reader.Invoke(t, 1, "totalByRole", role.Distributor)
}

func TestRegistry_Remove(t *testing.T) {
	s := newSuite(t)
	p := s.newParty(t, role.Consumer)

	p.registry.InvokeFail(t, common.ErrCommitteeWitnessFailed, "remove", p.ScriptHash())

	committee := s.committee(s.registry)
	committee.Invoke(t, stackitem.Null{}, "remove", p.ScriptHash())
	committee.Invoke(t, false, "isRegistered", p.ScriptHash())
	committee.Invoke(t, 0, "totalByRole", role.Consumer)
	committee.InvokeFail(t, registry.ErrNotRegistered, "remove", p.ScriptHash())

	// removed parties may register again
	p.registry.Invoke(t, stackitem.Null{}, "register", p.ScriptHash(), role.Retailer, "")
}

func TestRegistry_Version(t *testing.T) {
	s := newSuite(t)
	testVersionAndUpdate(t, s.committee(s.registry))
}
