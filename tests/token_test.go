package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/provena-labs/provena-contract/common"
	"github.com/provena-labs/provena-contract/contracts/registry/role"
	"github.com/stretchr/testify/require"
)

func TestToken_Standard(t *testing.T) {
	s := newSuite(t)
	reader := s.reader(s.token)

	reader.Invoke(t, "PRV", "symbol")
	reader.Invoke(t, 8, "decimals")
	reader.Invoke(t, int64(initialSupply), "totalSupply")
	reader.Invoke(t, int64(initialSupply-poolFunds), "balanceOf", s.e.CommitteeHash)
	reader.Invoke(t, int64(poolFunds), "balanceOf", s.score)
}

func TestToken_Transfer(t *testing.T) {
	s := newSuite(t)

	a := s.newParty(t, role.Consumer)
	b := s.newParty(t, role.Consumer)

	a.token.Invoke(t, true, "transfer", a.ScriptHash(), b.ScriptHash(), 10, nil)
	require.EqualValues(t, partyFunds-10, s.balanceOf(t, a.ScriptHash()))
	require.EqualValues(t, partyFunds+10, s.balanceOf(t, b.ScriptHash()))

	t.Run("not enough assets", func(t *testing.T) {
		a.token.Invoke(t, false, "transfer", a.ScriptHash(), b.ScriptHash(), int64(partyFunds), nil)
	})

	t.Run("foreign funds", func(t *testing.T) {
		a.token.Invoke(t, false, "transfer", b.ScriptHash(), a.ScriptHash(), 1, nil)
	})

	t.Run("negative amount", func(t *testing.T) {
		a.token.InvokeFail(t, "negative amount", "transfer", a.ScriptHash(), b.ScriptHash(), -1, nil)
	})

	t.Run("bad address", func(t *testing.T) {
		a.token.InvokeFail(t, common.ErrInvalidAddress, "transfer", a.ScriptHash(), []byte{1, 2, 3}, 1, nil)
	})

	t.Run("whole balance", func(t *testing.T) {
		c := s.newUnregistered(t, s.e.NewAccount(t))
		all := s.balanceOf(t, b.ScriptHash())
		b.token.Invoke(t, true, "transfer", b.ScriptHash(), c.ScriptHash(), all, nil)
		require.Zero(t, s.balanceOf(t, b.ScriptHash()))
		require.Equal(t, all, s.balanceOf(t, c.ScriptHash()))
	})
}

func TestToken_TransferToContract(t *testing.T) {
	s := newSuite(t)
	a := s.newParty(t, role.Consumer)

	// contracts without payment handler reject tokens
	a.token.InvokeFail(t, "method not found", "transfer", a.ScriptHash(), s.registry, 1, nil)

	a.token.Invoke(t, true, "transfer", a.ScriptHash(), s.score, 1, nil)
	require.EqualValues(t, poolFunds+1, s.balanceOf(t, s.score))
	require.EqualValues(t, poolFunds+1, s.callInt(t, s.score, "rewardPool"))
}

func TestToken_Version(t *testing.T) {
	s := newSuite(t)
	testVersionAndUpdate(t, s.committee(s.token))

	var empty util.Uint160
	s.reader(s.token).Invoke(t, 0, "balanceOf", empty)
}
