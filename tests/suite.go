package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/provena-labs/provena-contract/contracts/registry/role"
	"github.com/provena-labs/provena-contract/contracts/score/scoreconst"
	"github.com/stretchr/testify/require"
)

const (
	registryPath = "../contracts/registry"
	productPath  = "../contracts/product"
	tokenPath    = "../contracts/token"
	scorePath    = "../contracts/score"
	handoffPath  = "../contracts/handoff"
	disputePath  = "../contracts/dispute"

	arbiterPath = "../internal/testcontracts/arbiter"
)

const (
	// initialSupply is minted to the committee.
	initialSupply = 1_000_000 * scoreconst.Precision
	// partyFunds is given to every party created by the suite.
	partyFunds = 1_000 * scoreconst.Precision
	// poolFunds is put into the reward pool.
	poolFunds = 1_000 * scoreconst.Precision
	// testVotingPeriod is short enough to be passed by adding blocks.
	testVotingPeriod = 50
)

// suiteConfig holds deploy-time policy of the suite, zero values select
// contract defaults.
type suiteConfig struct {
	smoothing    int64
	decayRate    int64
	restoreRate  int64
	reward       int64
	deposit      int64
	votingPeriod int64

	// withArbiter makes the score contract accept confidence adjustments from
	// the test arbiter contract instead of the dispute one.
	withArbiter bool
}

// suite is a deployed set of all contracts.
type suite struct {
	e *neotest.Executor

	registry util.Uint160
	product  util.Uint160
	token    util.Uint160
	score    util.Uint160
	handoff  util.Uint160
	dispute  util.Uint160
	// arbiter is set only if suiteConfig.withArbiter is.
	arbiter util.Uint160
}

// party is a registered stakeholder with its own invokers.
type party struct {
	neotest.Signer
	role int

	registry *neotest.ContractInvoker
	product  *neotest.ContractInvoker
	token    *neotest.ContractInvoker
	handoff  *neotest.ContractInvoker
	dispute  *neotest.ContractInvoker
}

func compileContract(t *testing.T, e *neotest.Executor, ctrPath string) *neotest.Contract {
	return neotest.CompileFile(t, e.CommitteeHash, ctrPath, path.Join(ctrPath, "config.yml"))
}

func newSuite(t *testing.T) *suite {
	return newSuiteWithConfig(t, suiteConfig{votingPeriod: testVotingPeriod})
}

func newSuiteWithConfig(t *testing.T, cfg suiteConfig) *suite {
	e := newExecutor(t)

	cRegistry := compileContract(t, e, registryPath)
	cProduct := compileContract(t, e, productPath)
	cToken := compileContract(t, e, tokenPath)
	cScore := compileContract(t, e, scorePath)
	cHandoff := compileContract(t, e, handoffPath)
	cDispute := compileContract(t, e, disputePath)

	// Addresses are known before deployment, so circular references are
	// resolved by passing them in deploy data.
	e.DeployContract(t, cRegistry, nil)
	e.DeployContract(t, cProduct, []any{cHandoff.Hash})
	e.DeployContract(t, cToken, []any{e.CommitteeHash, int64(initialSupply), cHandoff.Hash, cDispute.Hash})
	arbiter := cDispute.Hash
	if cfg.withArbiter {
		cArbiter := compileContract(t, e, arbiterPath)
		e.DeployContract(t, cArbiter, nil)
		arbiter = cArbiter.Hash
	}

	e.DeployContract(t, cScore, []any{cRegistry.Hash, cToken.Hash, cHandoff.Hash, arbiter,
		cfg.smoothing, cfg.decayRate, cfg.restoreRate, cfg.reward})
	e.DeployContract(t, cHandoff, []any{cRegistry.Hash, cProduct.Hash, cScore.Hash, cToken.Hash})
	e.DeployContract(t, cDispute, []any{cRegistry.Hash, cToken.Hash, cScore.Hash, cHandoff.Hash,
		cfg.deposit, cfg.votingPeriod})

	s := &suite{
		e:        e,
		registry: cRegistry.Hash,
		product:  cProduct.Hash,
		token:    cToken.Hash,
		score:    cScore.Hash,
		handoff:  cHandoff.Hash,
		dispute:  cDispute.Hash,
	}
	if cfg.withArbiter {
		s.arbiter = arbiter
	}

	s.committee(s.token).Invoke(t, true, "transfer", e.CommitteeHash, s.score, int64(poolFunds), nil)

	return s
}

func (s *suite) committee(h util.Uint160) *neotest.ContractInvoker {
	return s.e.CommitteeInvoker(h)
}

func (s *suite) reader(h util.Uint160) *neotest.ContractInvoker {
	return s.e.NewInvoker(h, s.e.Committee)
}

// newParty creates funded account with the given role.
func (s *suite) newParty(t *testing.T, r int) *party {
	acc := s.e.NewAccount(t)
	p := s.newUnregistered(t, acc)
	p.role = r

	p.registry.Invoke(t, stackitem.Null{}, "register", acc.ScriptHash(), r, role.String(r))
	s.committee(s.token).Invoke(t, true, "transfer", s.e.CommitteeHash, acc.ScriptHash(), int64(partyFunds), nil)

	return p
}

func (s *suite) newUnregistered(t *testing.T, acc neotest.Signer) *party {
	return &party{
		Signer:   acc,
		registry: s.e.NewInvoker(s.registry, acc),
		product:  s.e.NewInvoker(s.product, acc),
		token:    s.e.NewInvoker(s.token, acc),
		handoff:  s.e.NewInvoker(s.handoff, acc),
		dispute:  s.e.NewInvoker(s.dispute, acc),
	}
}

// chain returns one party per role in supply chain order.
func (s *suite) chain(t *testing.T) (supplier, factory, distributor, retailer, consumer *party) {
	return s.newParty(t, role.Supplier), s.newParty(t, role.Factory), s.newParty(t, role.Distributor),
		s.newParty(t, role.Retailer), s.newParty(t, role.Consumer)
}

func (s *suite) balanceOf(t *testing.T, h util.Uint160) int64 {
	return s.callInt(t, s.token, "balanceOf", h)
}

func (s *suite) callInt(t *testing.T, h util.Uint160, method string, args ...any) int64 {
	st, err := s.reader(h).TestInvoke(t, method, args...)
	require.NoError(t, err)
	return st.Pop().BigInt().Int64()
}

func (s *suite) callArray(t *testing.T, h util.Uint160, method string, args ...any) []stackitem.Item {
	st, err := s.reader(h).TestInvoke(t, method, args...)
	require.NoError(t, err)
	return st.Pop().Array()
}

func (s *suite) callInts(t *testing.T, h util.Uint160, method string, args ...any) []int64 {
	items := s.callArray(t, h, method, args...)
	res := make([]int64, len(items))
	for i := range items {
		res[i] = itemInt(t, items[i])
	}
	return res
}

// trade makes confirmed handoff of the asset from seller to buyer and returns
// its identifier.
func (s *suite) trade(t *testing.T, buyer, seller *party, assetID int64) int64 {
	id := s.recordBuy(t, buyer, seller, assetID)
	seller.handoff.Invoke(t, stackitem.Null{}, "confirmSell", seller.ScriptHash(), id)
	return id
}

func (s *suite) recordBuy(t *testing.T, buyer, seller *party, assetID int64) int64 {
	next := s.callInt(t, s.handoff, "lastID") + 1
	buyer.handoff.Invoke(t, next, "recordBuy", buyer.ScriptHash(), seller.ScriptHash(), assetID)
	return next
}

// rate makes buyer rate the seller of the handoff and returns identifier of
// the new rating.
func (s *suite) rate(t *testing.T, buyer *party, handoffID int64, dim int, value int) int64 {
	return s.invokeInt(t, buyer.handoff, "buyerRateSeller", buyer.ScriptHash(), handoffID, dim, value, 0, false)
}

// rateProducer is like rate but the rating goes to the factory which
// produced the asset.
func (s *suite) rateProducer(t *testing.T, buyer *party, handoffID, assetID int64, dim int, value int) int64 {
	return s.invokeInt(t, buyer.handoff, "buyerRateSeller", buyer.ScriptHash(), handoffID, dim, value, assetID, true)
}

// invokeInt persists the invocation and returns its integer result.
func (s *suite) invokeInt(t *testing.T, inv *neotest.ContractInvoker, method string, args ...any) int64 {
	tx := inv.PrepareInvoke(t, method, args...)
	s.e.AddNewBlock(t, tx)
	res := s.e.CheckHalt(t, tx.Hash())
	require.Len(t, res.Stack, 1)
	return itemInt(t, res.Stack[0])
}

func (s *suite) mint(t *testing.T, creator *party) int64 {
	next := s.callInt(t, s.product, "totalSupply") + 1
	creator.product.Invoke(t, next, "mint", creator.ScriptHash(), "product")
	return next
}

// waitFor adds blocks until the chain time reaches ts.
func (s *suite) waitFor(t *testing.T, ts int64) {
	for int64(s.e.TopBlock(t).Timestamp) < ts {
		s.e.AddNewBlock(t)
	}
}

// invokeCalledByEntry persists the invocation signed by the account with
// CalledByEntry witness scope, the default one of wallets and RPC actors,
// and checks that it has succeeded. Executor signs with Global scope, which
// hides witness checks failing in nested calls.
func (s *suite) invokeCalledByEntry(t *testing.T, acc neotest.Signer, h util.Uint160, method string, args ...any) *state.AppExecResult {
	tx := s.e.NewUnsignedTx(t, h, method, args...)
	tx.Signers = []transaction.Signer{{
		Account: acc.ScriptHash(),
		Scopes:  transaction.CalledByEntry,
	}}
	tx.ValidUntilBlock = s.e.Chain.BlockHeight() + 1
	// fixed fees are enough for any suite call
	tx.SystemFee = 10_0000_0000
	tx.NetworkFee = 1000_0000
	require.NoError(t, acc.SignTx(s.e.Chain.GetConfig().Magic, tx))

	s.e.AddNewBlock(t, tx)
	return s.e.CheckHalt(t, tx.Hash())
}

// storageItem returns raw value stored by the contract under the key, nil if
// there is none.
func (s *suite) storageItem(t *testing.T, h util.Uint160, key []byte) []byte {
	cs := s.e.Chain.GetContractState(h)
	require.NotNil(t, cs)
	return s.e.Chain.GetStorageItem(cs.ID, key)
}

func itemInt(t testing.TB, item stackitem.Item) int64 {
	v, err := item.TryInteger()
	require.NoError(t, err)
	return v.Int64()
}

func itemHash(t testing.TB, item stackitem.Item) util.Uint160 {
	b, err := item.TryBytes()
	require.NoError(t, err)
	h, err := util.Uint160DecodeBytesBE(b)
	require.NoError(t, err)
	return h
}

func itemBool(t testing.TB, item stackitem.Item) bool {
	v, err := item.TryBool()
	require.NoError(t, err)
	return v
}
