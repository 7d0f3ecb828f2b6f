package deploy

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/config/netmode"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/provena-labs/provena-contract/contracts"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSpanTransactionModifier(t *testing.T) {
	t.Run("invalid invocation result state", func(t *testing.T) {
		var res result.Invoke
		res.State = "FAULT" // any non-HALT

		err := spanTransactionModifier(func() (uint32, error) { return 0, nil })(&res, new(transaction.Transaction))
		require.Error(t, err)
	})

	var validRes result.Invoke
	validRes.State = "HALT"

	t.Run("height failure", func(t *testing.T) {
		errHeight := errors.New("any error")

		err := spanTransactionModifier(func() (uint32, error) { return 0, errHeight })(&validRes, new(transaction.Transaction))
		require.ErrorIs(t, err, errHeight)
	})

	for _, tc := range []struct {
		curHeight     uint32
		expectedNonce uint32
		expectedVUB   uint32
	}{
		{curHeight: 0, expectedNonce: 0, expectedVUB: 100},
		{curHeight: 1, expectedNonce: 0, expectedVUB: 100},
		{curHeight: 99, expectedNonce: 0, expectedVUB: 100},
		{curHeight: 100, expectedNonce: 100, expectedVUB: 200},
		{curHeight: 199, expectedNonce: 100, expectedVUB: 200},
		{curHeight: 200, expectedNonce: 200, expectedVUB: 300},
		{curHeight: math.MaxUint32 - 50, expectedNonce: 100 * (math.MaxUint32 / 100), expectedVUB: math.MaxUint32},
	} {
		m := spanTransactionModifier(func() (uint32, error) { return tc.curHeight, nil })

		var tx transaction.Transaction

		err := m(&validRes, &tx)
		require.NoError(t, err, tc)
		require.EqualValues(t, tc.expectedNonce, tx.Nonce, tc)
		require.EqualValues(t, tc.expectedVUB, tx.ValidUntilBlock, tc)
	}
}

func testContractSet(tb testing.TB) contracts.Set {
	c := func(name string, b byte) contracts.Contract {
		f, err := nef.NewFile([]byte{b, b, b})
		require.NoError(tb, err)
		return contracts.Contract{NEF: *f, Manifest: *manifest.NewManifest(name)}
	}

	return contracts.Set{
		Registry: c("Provena Registry", 1),
		Product:  c("Provena Product", 2),
		Token:    c("Provena Token", 3),
		Score:    c("Provena Score", 4),
		Handoff:  c("Provena Handoff", 5),
		Dispute:  c("Provena Dispute", 6),
	}
}

func TestPredictAddresses(t *testing.T) {
	var (
		set     = testContractSet(t)
		sender  = util.Uint160{1, 2, 3}
		another = util.Uint160{3, 2, 1}
		res     = PredictAddresses(sender, set)
	)

	require.Equal(t, state.CreateContractHash(sender, set.Score.NEF.Checksum, set.Score.Manifest.Name), res.Score)

	all := []util.Uint160{res.Registry, res.Product, res.Token, res.Score, res.Handoff, res.Dispute}
	seen := make(map[util.Uint160]struct{}, len(all))
	for _, a := range all {
		seen[a] = struct{}{}
	}
	require.Len(t, seen, len(all))

	require.NotEqual(t, res, PredictAddresses(another, set))
	require.Equal(t, res, PredictAddresses(sender, set))
}

func TestDeployArgs(t *testing.T) {
	var (
		addrs = Result{
			Registry: util.Uint160{1},
			Product:  util.Uint160{2},
			Token:    util.Uint160{3},
			Score:    util.Uint160{4},
			Handoff:  util.Uint160{5},
			Dispute:  util.Uint160{6},
		}
		p = PolicyPrm{
			Smoothing:    1,
			DecayRate:    2,
			RestoreRate:  3,
			Reward:       4,
			Deposit:      5,
			VotingPeriod: 6,
			TokenSupply:  7,
		}
	)

	require.Equal(t, []any{addrs.Handoff}, productDeployArgs(addrs))
	require.Equal(t, []any{util.Uint160{9}, int64(7), addrs.Handoff, addrs.Dispute}, tokenDeployArgs(util.Uint160{9}, addrs, p))
	require.Equal(t, []any{addrs.Registry, addrs.Token, addrs.Handoff, addrs.Dispute,
		int64(1), int64(2), int64(3), int64(4)}, scoreDeployArgs(addrs, p))
	require.Equal(t, []any{addrs.Registry, addrs.Product, addrs.Score, addrs.Token}, handoffDeployArgs(addrs))
	require.Equal(t, []any{addrs.Registry, addrs.Token, addrs.Score, addrs.Handoff,
		int64(5), int64(6)}, disputeDeployArgs(addrs, p))
}

func TestResolveAddresses(t *testing.T) {
	predicted := Result{
		Registry: util.Uint160{1},
		Product:  util.Uint160{2},
		Token:    util.Uint160{3},
		Score:    util.Uint160{4},
		Handoff:  util.Uint160{5},
		Dispute:  util.Uint160{6},
	}

	require.Equal(t, predicted, resolveAddresses(predicted, Result{}))

	res := resolveAddresses(predicted, Result{Score: util.Uint160{40}, Dispute: util.Uint160{60}})
	exp := predicted
	exp.Score = util.Uint160{40}
	exp.Dispute = util.Uint160{60}
	require.Equal(t, exp, res)
}

var errSendingDisabled = errors.New("sending is disabled")

// stateBlockchain serves contract states from memory. Scripts of the
// transactions being made are recorded, test invocation of them always
// fails with errSendingDisabled.
type stateBlockchain struct {
	actor.RPCActor

	states  map[util.Uint160]*state.Contract
	err     error
	scripts [][]byte
}

func (x *stateBlockchain) InvokeScript(script []byte, _ []transaction.Signer) (*result.Invoke, error) {
	x.scripts = append(x.scripts, script)
	return nil, errSendingDisabled
}

func (x *stateBlockchain) GetVersion() (*result.Version, error) {
	return &result.Version{Protocol: result.Protocol{Network: netmode.UnitTestNet}}, nil
}

func (x *stateBlockchain) GetContractStateByHash(h util.Uint160) (*state.Contract, error) {
	if x.err != nil {
		return nil, x.err
	}

	st, ok := x.states[h]
	if !ok {
		return nil, neorpc.ErrUnknownContract
	}
	return st, nil
}

func TestDeploy(t *testing.T) {
	acc, err := wallet.NewAccount()
	require.NoError(t, err)

	var (
		set   = testContractSet(t)
		addrs = PredictAddresses(acc.ScriptHash(), set)
		bc    = &stateBlockchain{states: make(map[util.Uint160]*state.Contract)}
		prm   = Prm{
			Logger:       zaptest.NewLogger(t),
			Blockchain:   bc,
			LocalAccount: acc,
			Contracts:    set,
			Policy:       PolicyPrm{RewardPool: 100},
		}
	)

	onChain := func(c contracts.Contract) *state.Contract {
		return &state.Contract{ContractBase: state.ContractBase{NEF: c.NEF, Manifest: c.Manifest}}
	}

	bc.states[addrs.Registry] = onChain(set.Registry)
	bc.states[addrs.Product] = onChain(set.Product)
	bc.states[addrs.Token] = onChain(set.Token)
	bc.states[addrs.Score] = onChain(set.Score)
	bc.states[addrs.Handoff] = onChain(set.Handoff)
	bc.states[addrs.Dispute] = onChain(set.Dispute)

	t.Run("up to date", func(t *testing.T) {
		res, err := Deploy(context.Background(), prm)
		require.NoError(t, err)
		require.Equal(t, addrs, res)
	})

	t.Run("state failure", func(t *testing.T) {
		bc.err = errors.New("connection lost")
		t.Cleanup(func() { bc.err = nil })

		_, err := Deploy(context.Background(), prm)
		require.ErrorIs(t, err, bc.err)
		require.ErrorContains(t, err, set.Registry.Manifest.Name)
	})

	t.Run("recorded contract is updated", func(t *testing.T) {
		t.Cleanup(func() { bc.scripts = nil })

		// score deployed from older code lives at another address
		old := set.Score
		oldNEF, err := nef.NewFile([]byte{4, 4, 4, 4})
		require.NoError(t, err)
		old.NEF = *oldNEF

		recorded := PredictAddresses(acc.ScriptHash(), contracts.Set{Score: old}).Score
		require.NotEqual(t, addrs.Score, recorded)
		bc.states[recorded] = onChain(old)
		t.Cleanup(func() { delete(bc.states, recorded) })

		withRecorded := prm
		withRecorded.Deployed = Result{Score: recorded}

		_, err = Deploy(context.Background(), withRecorded)
		require.Error(t, err)
		require.ErrorContains(t, err, set.Score.Manifest.Name)

		require.Len(t, bc.scripts, 1)
		require.True(t, bytes.Contains(bc.scripts[0], recorded.BytesBE()))
		require.True(t, bytes.Contains(bc.scripts[0], []byte(methodUpdate)))
	})

	t.Run("recorded contract is missing", func(t *testing.T) {
		t.Cleanup(func() { bc.scripts = nil })

		withRecorded := prm
		withRecorded.Deployed = Result{Handoff: util.Uint160{0xbb}}

		_, err := Deploy(context.Background(), withRecorded)
		require.ErrorContains(t, err, "missing at the recorded address")
		require.ErrorContains(t, err, set.Handoff.Manifest.Name)
		require.Empty(t, bc.scripts)
	})
}

func TestIsErrContractNotFound(t *testing.T) {
	require.True(t, isErrContractNotFound(neorpc.ErrUnknownContract))
	require.False(t, isErrContractNotFound(errors.New("any")))
}
