package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/provena-labs/provena-contract/common"
	"github.com/provena-labs/provena-contract/contracts/product"
	"github.com/provena-labs/provena-contract/contracts/registry/role"
	"github.com/stretchr/testify/require"
)

func TestProduct_Mint(t *testing.T) {
	s := newSuite(t)
	reader := s.reader(s.product)

	supplier := s.newParty(t, role.Supplier)
	other := s.newParty(t, role.Supplier)

	reader.Invoke(t, 0, "totalSupply")
	supplier.product.InvokeFail(t, common.ErrWitnessFailed, "mint", other.ScriptHash(), "ore")

	supplier.product.Invoke(t, 1, "mint", supplier.ScriptHash(), "ore")
	other.product.Invoke(t, 2, "mint", other.ScriptHash(), "coal")
	reader.Invoke(t, 2, "totalSupply")

	reader.Invoke(t, supplier.ScriptHash(), "ownerOf", 1)
	reader.Invoke(t, supplier.ScriptHash(), "creatorOf", 1)

	st, err := reader.TestInvoke(t, "details", 2)
	require.NoError(t, err)
	fields := st.Pop().Array()
	require.Len(t, fields, 5)
	require.EqualValues(t, 2, itemInt(t, fields[0]))
	require.Equal(t, other.ScriptHash(), itemHash(t, fields[1]))
	require.Equal(t, other.ScriptHash(), itemHash(t, fields[2]))
	require.Equal(t, []byte("coal"), fields[3].Value())

	reader.InvokeFail(t, product.ErrNotFound, "ownerOf", 3)
	reader.InvokeFail(t, product.ErrNotFound, "details", 0)
}

func TestProduct_Transfer(t *testing.T) {
	s := newSuite(t)

	supplier, factory, _, _, _ := s.chain(t)
	id := s.mint(t, supplier)

	factory.product.InvokeFail(t, product.ErrNotOwner, "transfer", factory.ScriptHash(), factory.ScriptHash(), id)
	factory.product.InvokeFail(t, common.ErrWitnessFailed, "transfer", supplier.ScriptHash(), factory.ScriptHash(), id)
	supplier.product.InvokeFail(t, product.ErrNotFound, "transfer", supplier.ScriptHash(), factory.ScriptHash(), id+1)

	supplier.product.Invoke(t, stackitem.Null{}, "transfer", supplier.ScriptHash(), factory.ScriptHash(), id)
	s.reader(s.product).Invoke(t, factory.ScriptHash(), "ownerOf", id)
	s.reader(s.product).Invoke(t, supplier.ScriptHash(), "creatorOf", id)

	history := s.callArray(t, s.product, "history", id)
	require.Len(t, history, 2)
	require.Equal(t, supplier.ScriptHash(), itemHash(t, history[0]))
	require.Equal(t, factory.ScriptHash(), itemHash(t, history[1]))
}

func TestProduct_UpdateMetadata(t *testing.T) {
	s := newSuite(t)

	supplier, factory, distributor, _, _ := s.chain(t)
	id := s.mint(t, supplier)
	supplier.product.Invoke(t, stackitem.Null{}, "transfer", supplier.ScriptHash(), factory.ScriptHash(), id)

	// both creator and owner may update
	supplier.product.Invoke(t, stackitem.Null{}, "updateMetadata", supplier.ScriptHash(), id, "ore, grade A")
	factory.product.Invoke(t, stackitem.Null{}, "updateMetadata", factory.ScriptHash(), id, "ore, grade B")
	distributor.product.InvokeFail(t, product.ErrNoAccess, "updateMetadata", distributor.ScriptHash(), id, "fake")

	st, err := s.reader(s.product).TestInvoke(t, "details", id)
	require.NoError(t, err)
	require.Equal(t, []byte("ore, grade B"), st.Pop().Array()[3].Value())
}

func TestProduct_Version(t *testing.T) {
	s := newSuite(t)
	testVersionAndUpdate(t, s.committee(s.product))
}
