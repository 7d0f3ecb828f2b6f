package deploy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/nep17"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/provena-labs/provena-contract/contracts"
	"go.uber.org/zap"
)

const methodUpdate = "update"

// Blockchain groups services provided by particular Neo blockchain network
// that are required for Provena deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to the
	// blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing. It may return non-nil
	// state.Contract along with an error.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// PolicyPrm groups initial policy values of the Provena contracts. Zero
// values are replaced with contract defaults.
type PolicyPrm struct {
	// Weight of the new rating in the running score, in 10^-8 units.
	Smoothing int64
	// Confidence lost by the respondent per vote of margin.
	DecayRate int64
	// Confidence restored to the respondent per vote of margin.
	RestoreRate int64
	// Reward paid for each rating.
	Reward int64
	// Dispute deposit.
	Deposit int64
	// Dispute voting period in milliseconds.
	VotingPeriod int64

	// Initial supply of the reward token minted to the deployer.
	TokenSupply int64
	// Amount of the reward token transferred into the score contract once
	// it is deployed. Zero disables funding.
	RewardPool int64
}

// Prm groups all parameters of the Provena deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy contracts to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// It becomes a sender of all deployment transactions, so contract
	// addresses depend on it. Updates are allowed only if the account is a
	// committee one.
	LocalAccount *wallet.Account

	Contracts contracts.Set

	// Addresses of the already deployed contracts. Contract address depends
	// on its NEF, so contracts deployed from older code can only be found by
	// the recorded addresses; they are updated in place. Contracts with zero
	// addresses are looked up at the addresses predicted for LocalAccount and
	// deployed there if missing.
	Deployed Result

	Policy PolicyPrm
}

// Result groups addresses of the deployed contracts.
type Result struct {
	Registry util.Uint160
	Product  util.Uint160
	Token    util.Uint160
	Score    util.Uint160
	Handoff  util.Uint160
	Dispute  util.Uint160
}

// PredictAddresses calculates addresses the contracts get once deployed by
// the sender.
func PredictAddresses(sender util.Uint160, set contracts.Set) Result {
	addr := func(c contracts.Contract) util.Uint160 {
		return state.CreateContractHash(sender, c.NEF.Checksum, c.Manifest.Name)
	}

	return Result{
		Registry: addr(set.Registry),
		Product:  addr(set.Product),
		Token:    addr(set.Token),
		Score:    addr(set.Score),
		Handoff:  addr(set.Handoff),
		Dispute:  addr(set.Dispute),
	}
}

// resolveAddresses returns known addresses replacing predicted ones.
func resolveAddresses(predicted, known Result) Result {
	pick := func(p, k util.Uint160) util.Uint160 {
		if k.Equals(util.Uint160{}) {
			return p
		}
		return k
	}

	return Result{
		Registry: pick(predicted.Registry, known.Registry),
		Product:  pick(predicted.Product, known.Product),
		Token:    pick(predicted.Token, known.Token),
		Score:    pick(predicted.Score, known.Score),
		Handoff:  pick(predicted.Handoff, known.Handoff),
		Dispute:  pick(predicted.Dispute, known.Dispute),
	}
}

// Deploy deploys the Provena contracts into the blockchain given in Prm or
// updates them if they are already there. Contracts which are up to date are
// skipped, so Deploy can be called repeatedly.
//
// Summary of stages:
//  1. registry, product and token contracts
//  2. score, handoff and dispute contracts referring to each other by
//     recorded or predicted addresses
//  3. funding of the reward pool
func Deploy(ctx context.Context, prm Prm) (Result, error) {
	localActor, err := actor.NewTuned(prm.Blockchain, []actor.SignerAccount{{
		Signer: transaction.Signer{
			Account: prm.LocalAccount.ScriptHash(),
			Scopes:  transaction.CalledByEntry,
		},
		Account: prm.LocalAccount,
	}}, actor.Options{
		CheckerModifier: spanTransactionModifier(prm.Blockchain.GetBlockCount),
	})
	if err != nil {
		return Result{}, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	var (
		set   = prm.Contracts
		addrs = resolveAddresses(PredictAddresses(localActor.Sender(), set), prm.Deployed)
		known = prm.Deployed
	)

	prm.Logger.Info("resolved contract addresses",
		zap.Stringer("registry", addrs.Registry),
		zap.Stringer("product", addrs.Product),
		zap.Stringer("token", addrs.Token),
		zap.Stringer("score", addrs.Score),
		zap.Stringer("handoff", addrs.Handoff),
		zap.Stringer("dispute", addrs.Dispute))

	steps := []struct {
		contract contracts.Contract
		address  util.Uint160
		recorded util.Uint160
		args     []any
	}{
		{set.Registry, addrs.Registry, known.Registry, nil},
		{set.Product, addrs.Product, known.Product, productDeployArgs(addrs)},
		{set.Token, addrs.Token, known.Token, tokenDeployArgs(localActor.Sender(), addrs, prm.Policy)},
		{set.Score, addrs.Score, known.Score, scoreDeployArgs(addrs, prm.Policy)},
		{set.Handoff, addrs.Handoff, known.Handoff, handoffDeployArgs(addrs)},
		{set.Dispute, addrs.Dispute, known.Dispute, disputeDeployArgs(addrs, prm.Policy)},
	}

	var deployedToken bool

	for _, s := range steps {
		deployed, err := syncContract(ctx, syncContractPrm{
			logger:     prm.Logger,
			blockchain: prm.Blockchain,
			actor:      localActor,
			nef:        s.contract.NEF,
			manifest:   s.contract.Manifest,
			address:    s.address,
			recorded:   !s.recorded.Equals(util.Uint160{}),
			deployArgs: s.args,
		})
		if err != nil {
			return Result{}, fmt.Errorf("sync contract '%s': %w", s.contract.Manifest.Name, err)
		}

		if s.address == addrs.Token {
			deployedToken = deployed
		}
	}

	// pool is funded only together with token deployment, otherwise each run
	// would repeat the transfer
	if deployedToken && prm.Policy.RewardPool > 0 {
		err = fundRewardPool(ctx, prm.Logger, localActor, addrs, prm.Policy.RewardPool)
		if err != nil {
			return Result{}, fmt.Errorf("fund reward pool: %w", err)
		}
	}

	return addrs, nil
}

// syncContractPrm groups parameters of syncContract.
type syncContractPrm struct {
	logger     *zap.Logger
	blockchain Blockchain
	actor      *actor.Actor

	nef      nef.File
	manifest manifest.Manifest

	// expected address of the contract
	address util.Uint160
	// address is recorded, so the contract must already be there
	recorded bool

	deployArgs []any
}

// syncContract deploys the contract if it is missing on the chain or updates
// it if on-chain NEF differs from the local one. Returns true if contract has
// been deployed.
func syncContract(ctx context.Context, prm syncContractPrm) (bool, error) {
	l := prm.logger.With(zap.String("contract", prm.manifest.Name), zap.Stringer("address", prm.address))

	l.Info("reading on-chain state of the contract...")

	onChain, err := prm.blockchain.GetContractStateByHash(prm.address)
	if err != nil {
		if !isErrContractNotFound(err) {
			return false, fmt.Errorf("read on-chain state of the contract: %w", err)
		}
		onChain = nil
	}

	// just to definitely avoid mutation
	nefCp := prm.nef
	manifestCp := prm.manifest

	if onChain == nil {
		if prm.recorded {
			return false, errors.New("contract is missing at the recorded address")
		}

		l.Info("contract is missing on the chain, deploying...")

		h, vub, err := management.New(prm.actor).Deploy(&nefCp, &manifestCp, prm.deployArgs)
		if err := await(ctx, l, prm.actor, h, vub, err); err != nil {
			return false, fmt.Errorf("deploy contract: %w", err)
		}

		l.Info("contract successfully deployed")
		return true, nil
	}

	if onChain.NEF.Checksum == prm.nef.Checksum {
		l.Info("on-chain contract is up to date, skip")
		return false, nil
	}

	l.Info("on-chain contract differs from the local one, updating...")

	bNEF, err := nefCp.Bytes()
	if err != nil {
		// not really expected
		return false, fmt.Errorf("encode local NEF of the contract into binary: %w", err)
	}

	jManifest, err := json.Marshal(manifestCp)
	if err != nil {
		// not really expected
		return false, fmt.Errorf("encode local manifest of the contract into JSON: %w", err)
	}

	h, vub, err := prm.actor.SendCall(prm.address, methodUpdate, bNEF, jManifest, nil)
	if err := await(ctx, l, prm.actor, h, vub, err); err != nil {
		return false, fmt.Errorf("update contract: %w", err)
	}

	l.Info("contract successfully updated")
	return false, nil
}

func fundRewardPool(ctx context.Context, l *zap.Logger, act *actor.Actor, addrs Result, amount int64) error {
	l.Info("transferring reward tokens to the score contract...", zap.Int64("amount", amount))

	h, vub, err := nep17.New(act, addrs.Token).Transfer(act.Sender(), addrs.Score, big.NewInt(amount), nil)

	return await(ctx, l, act, h, vub, err)
}

// await waits for the transaction to be accepted and checks its result.
func await(ctx context.Context, l *zap.Logger, act *actor.Actor, h util.Uint256, vub uint32, err error) error {
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("wait for transaction %s: %w", h.StringLE(), ctx.Err())
	default:
	}

	l.Debug("transaction sent, waiting for the outcome...", zap.Stringer("tx", h), zap.Uint32("vub", vub))

	res, err := act.Wait(h, vub, nil)
	if err != nil {
		return fmt.Errorf("wait for transaction %s: %w", h.StringLE(), err)
	}

	if res.VMState != vmstate.Halt {
		return fmt.Errorf("transaction %s failed: %s", h.StringLE(), res.FaultException)
	}

	l.Debug("transaction accepted", zap.Stringer("tx", h))
	return nil
}

func isErrContractNotFound(err error) bool {
	return errors.Is(err, neorpc.ErrUnknownContract)
}

func productDeployArgs(addrs Result) []any {
	return []any{addrs.Handoff}
}

func tokenDeployArgs(owner util.Uint160, addrs Result, p PolicyPrm) []any {
	return []any{owner, p.TokenSupply, addrs.Handoff, addrs.Dispute}
}

func scoreDeployArgs(addrs Result, p PolicyPrm) []any {
	return []any{addrs.Registry, addrs.Token, addrs.Handoff, addrs.Dispute,
		p.Smoothing, p.DecayRate, p.RestoreRate, p.Reward}
}

func handoffDeployArgs(addrs Result) []any {
	return []any{addrs.Registry, addrs.Product, addrs.Score, addrs.Token}
}

func disputeDeployArgs(addrs Result, p PolicyPrm) []any {
	return []any{addrs.Registry, addrs.Token, addrs.Score, addrs.Handoff,
		p.Deposit, p.VotingPeriod}
}

// returns actor.TransactionCheckerModifier which checks that invocation
// finished with 'HALT' state and, if so, sets transaction's nonce and
// ValidUntilBlock to 100*N and 100*(N+1) correspondingly, where
// 100*N <= current height < 100*(N+1). Equal transactions built within the
// same 100-block window are then identical, so repeated deployments do not
// flood the mempool.
func spanTransactionModifier(getBlockchainHeight func() (uint32, error)) actor.TransactionCheckerModifier {
	return func(r *result.Invoke, tx *transaction.Transaction) error {
		err := actor.DefaultCheckerModifier(r, tx)
		if err != nil {
			return err
		}

		curHeight, err := getBlockchainHeight()
		if err != nil {
			return fmt.Errorf("get blockchain height: %w", err)
		}
		const span = 100
		n := curHeight / span

		tx.Nonce = n * span

		if math.MaxUint32-span > tx.Nonce {
			tx.ValidUntilBlock = tx.Nonce + span
		} else {
			tx.ValidUntilBlock = math.MaxUint32
		}

		return nil
	}
}
