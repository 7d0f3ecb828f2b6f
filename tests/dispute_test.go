package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/provena-labs/provena-contract/contracts/dispute/disputeconst"
	"github.com/provena-labs/provena-contract/contracts/registry/role"
	"github.com/provena-labs/provena-contract/contracts/score/dimension"
	"github.com/provena-labs/provena-contract/contracts/score/scoreconst"
	"github.com/stretchr/testify/require"
)

const deposit = disputeconst.DefaultDeposit

// disputeEnv is a retailer rating of a distributor, the distributor is going
// to challenge it. Voters are retailers which bought from the distributor.
type disputeEnv struct {
	*suite

	distributor *party
	retailer    *party
	voters      []*party

	handoffID int64
}

func newDisputeEnv(t *testing.T, voters int) *disputeEnv {
	s := newSuite(t)
	env := &disputeEnv{
		suite:       s,
		distributor: s.newParty(t, role.Distributor),
		retailer:    s.newParty(t, role.Retailer),
	}

	env.handoffID = s.trade(t, env.retailer, env.distributor, 0)
	s.rate(t, env.retailer, env.handoffID, dimension.Packaging, 2)

	for i := 0; i < voters; i++ {
		v := s.newParty(t, role.Retailer)
		s.trade(t, v, env.distributor, 0)
		env.voters = append(env.voters, v)
	}

	return env
}

func (env *disputeEnv) initiate(t *testing.T, dim int) int64 {
	return env.invokeInt(t, env.distributor.dispute, "initiateDispute",
		env.distributor.ScriptHash(), env.handoffID, dim, env.retailer.ScriptHash(), deposit)
}

func (env *disputeEnv) respond(t *testing.T, id int64) {
	env.retailer.dispute.Invoke(t, stackitem.Null{}, "respondToDispute", env.retailer.ScriptHash(), id, deposit)
}

func (env *disputeEnv) vote(t *testing.T, voter *party, id int64, supportRespondent bool) {
	voter.dispute.Invoke(t, stackitem.Null{}, "voteDispute", voter.ScriptHash(), id, supportRespondent)
}

func (env *disputeEnv) get(t *testing.T, id int64) []stackitem.Item {
	st, err := env.reader(env.suite.dispute).TestInvoke(t, "getDispute", id)
	require.NoError(t, err)
	fields := st.Pop().Array()
	require.Len(t, fields, 13)
	return fields
}

// finalize waits for the deadline and finalizes the dispute.
func (env *disputeEnv) finalize(t *testing.T, id int64) {
	env.waitFor(t, itemInt(t, env.get(t, id)[8]))
	env.committee(env.suite.dispute).Invoke(t, stackitem.Null{}, "finalizeDispute", id)
}

func TestDispute_ChallengerWins(t *testing.T) {
	env := newDisputeEnv(t, 3)
	reader := env.reader(env.suite.dispute)

	id := env.initiate(t, dimension.Packaging)
	require.EqualValues(t, 1, id)

	reader.Invoke(t, true, "hasActiveDispute", env.handoffID, dimension.Packaging)
	reader.Invoke(t, id, "activeDispute", env.handoffID, dimension.Packaging)
	require.Equal(t, []int64{id}, env.callInts(t, env.suite.dispute, "byChallenger", env.distributor.ScriptHash()))
	require.Equal(t, []int64{id}, env.callInts(t, env.suite.dispute, "byRespondent", env.retailer.ScriptHash()))

	env.respond(t, id)
	require.EqualValues(t, 2*deposit, env.balanceOf(t, env.suite.dispute))

	require.Equal(t, []int64{id}, env.callInts(t, env.suite.dispute, "eligibleFor", env.voters[0].ScriptHash()))

	env.vote(t, env.voters[0], id, false)
	env.vote(t, env.voters[1], id, false)
	env.vote(t, env.voters[2], id, true)

	require.Empty(t, env.callInts(t, env.suite.dispute, "eligibleFor", env.voters[0].ScriptHash()))

	ballots := env.callArray(t, env.suite.dispute, "ballots", id)
	require.Len(t, ballots, 3)
	first := ballots[0].Value().([]stackitem.Item)
	require.Equal(t, env.voters[0].ScriptHash(), itemHash(t, first[0]))
	require.False(t, itemBool(t, first[1]))

	challengerBefore := env.balanceOf(t, env.distributor.ScriptHash())
	votersBefore := make([]int64, len(env.voters))
	for i := range env.voters {
		votersBefore[i] = env.balanceOf(t, env.voters[i].ScriptHash())
	}

	env.finalize(t, id)

	fields := env.get(t, id)
	require.EqualValues(t, 1, itemInt(t, fields[9]))
	require.EqualValues(t, 2, itemInt(t, fields[10]))
	require.EqualValues(t, disputeconst.ChallengerWins, itemInt(t, fields[11]))
	require.True(t, itemBool(t, fields[12]))

	// half of the lost deposit goes to the majority voters
	require.Equal(t, challengerBefore+deposit+deposit/2, env.balanceOf(t, env.distributor.ScriptHash()))
	require.Equal(t, votersBefore[0]+deposit/4, env.balanceOf(t, env.voters[0].ScriptHash()))
	require.Equal(t, votersBefore[1]+deposit/4, env.balanceOf(t, env.voters[1].ScriptHash()))
	require.Equal(t, votersBefore[2], env.balanceOf(t, env.voters[2].ScriptHash()))
	require.Zero(t, env.balanceOf(t, env.suite.dispute))

	require.EqualValues(t, scoreconst.MaxConfidence-scoreconst.DefaultDecayRate,
		env.callInt(t, env.score, "confidence", env.retailer.ScriptHash()))

	reader.Invoke(t, false, "hasActiveDispute", env.handoffID, dimension.Packaging)
	env.committee(env.suite.dispute).InvokeFail(t, disputeconst.ErrAlreadyFinalized, "finalizeDispute", id)

	t.Run("restore", func(t *testing.T) {
		// the rating can be disputed again, now the respondent wins
		id := env.initiate(t, dimension.Packaging)
		env.respond(t, id)
		env.vote(t, env.voters[0], id, true)
		env.vote(t, env.voters[1], id, true)
		env.vote(t, env.voters[2], id, true)
		env.finalize(t, id)

		require.EqualValues(t, disputeconst.RespondentWins, itemInt(t, env.get(t, id)[11]))
		// restored value is clamped
		require.EqualValues(t, scoreconst.MaxConfidence,
			env.callInt(t, env.score, "confidence", env.retailer.ScriptHash()))
	})
}

func TestDispute_TieGoesToRespondent(t *testing.T) {
	env := newDisputeEnv(t, 2)

	id := env.initiate(t, dimension.Packaging)
	env.respond(t, id)
	env.vote(t, env.voters[0], id, true)
	env.vote(t, env.voters[1], id, false)

	respondentBefore := env.balanceOf(t, env.retailer.ScriptHash())
	voterBefore := env.balanceOf(t, env.voters[0].ScriptHash())

	env.finalize(t, id)

	require.EqualValues(t, disputeconst.RespondentWins, itemInt(t, env.get(t, id)[11]))
	require.Equal(t, respondentBefore+deposit+deposit/2, env.balanceOf(t, env.retailer.ScriptHash()))
	require.Equal(t, voterBefore+deposit/2, env.balanceOf(t, env.voters[0].ScriptHash()))
	require.EqualValues(t, scoreconst.MaxConfidence, env.callInt(t, env.score, "confidence", env.retailer.ScriptHash()))
}

func TestDispute_NoVoters(t *testing.T) {
	env := newDisputeEnv(t, 0)

	id := env.initiate(t, dimension.Packaging)
	env.respond(t, id)

	respondentBefore := env.balanceOf(t, env.retailer.ScriptHash())
	env.finalize(t, id)

	// nobody to share with, the winner takes both deposits
	require.Equal(t, respondentBefore+2*deposit, env.balanceOf(t, env.retailer.ScriptHash()))
}

func TestDispute_Forfeit(t *testing.T) {
	env := newDisputeEnv(t, 1)

	before := env.balanceOf(t, env.distributor.ScriptHash())
	id := env.initiate(t, dimension.Packaging)
	require.Equal(t, before-deposit, env.balanceOf(t, env.distributor.ScriptHash()))

	env.voters[0].dispute.InvokeFail(t, disputeconst.ErrDepositsIncomplete, "voteDispute",
		env.voters[0].ScriptHash(), id, false)
	require.Empty(t, env.callInts(t, env.suite.dispute, "eligibleFor", env.voters[0].ScriptHash()))

	env.finalize(t, id)

	require.EqualValues(t, disputeconst.ChallengerWins, itemInt(t, env.get(t, id)[11]))
	require.Equal(t, before, env.balanceOf(t, env.distributor.ScriptHash()))

	env.retailer.dispute.InvokeFail(t, disputeconst.ErrAlreadyFinalized, "respondToDispute",
		env.retailer.ScriptHash(), id, deposit)
}

func TestDispute_Initiate(t *testing.T) {
	env := newDisputeEnv(t, 1)
	voter := env.voters[0]

	t.Run("wrong deposit", func(t *testing.T) {
		env.distributor.dispute.InvokeFail(t, disputeconst.ErrWrongDeposit, "initiateDispute",
			env.distributor.ScriptHash(), env.handoffID, dimension.Packaging, env.retailer.ScriptHash(), deposit+1)
	})

	t.Run("unknown rating", func(t *testing.T) {
		env.distributor.dispute.InvokeFail(t, disputeconst.ErrScoreNotFound, "initiateDispute",
			env.distributor.ScriptHash(), env.handoffID, dimension.Accuracy, env.retailer.ScriptHash(), deposit)
	})

	t.Run("not ratee", func(t *testing.T) {
		voter.dispute.InvokeFail(t, disputeconst.ErrNotRatee, "initiateDispute",
			voter.ScriptHash(), env.handoffID, dimension.Packaging, env.retailer.ScriptHash(), deposit)
	})

	t.Run("not rater", func(t *testing.T) {
		env.distributor.dispute.InvokeFail(t, disputeconst.ErrNotRater, "initiateDispute",
			env.distributor.ScriptHash(), env.handoffID, dimension.Packaging, voter.ScriptHash(), deposit)
	})

	t.Run("consumer rating", func(t *testing.T) {
		consumer := env.newParty(t, role.Consumer)
		hid := env.trade(t, consumer, env.retailer, 0)
		env.rate(t, consumer, hid, dimension.ReturnPolicy, 1)

		env.retailer.dispute.InvokeFail(t, disputeconst.ErrRespondentIsConsumer, "initiateDispute",
			env.retailer.ScriptHash(), hid, dimension.ReturnPolicy, consumer.ScriptHash(), deposit)
	})

	id := env.initiate(t, dimension.Packaging)

	t.Run("duplicate", func(t *testing.T) {
		env.distributor.dispute.InvokeFail(t, disputeconst.ErrDuplicateDispute, "initiateDispute",
			env.distributor.ScriptHash(), env.handoffID, dimension.Packaging, env.retailer.ScriptHash(), deposit)
	})

	t.Run("respond", func(t *testing.T) {
		voter.dispute.InvokeFail(t, disputeconst.ErrNotRespondent, "respondToDispute",
			voter.ScriptHash(), id, deposit)
		env.retailer.dispute.InvokeFail(t, disputeconst.ErrWrongDeposit, "respondToDispute",
			env.retailer.ScriptHash(), id, 2*deposit)
		env.retailer.dispute.InvokeFail(t, disputeconst.ErrDisputeNotFound, "respondToDispute",
			env.retailer.ScriptHash(), id+1, deposit)

		env.respond(t, id)
		env.retailer.dispute.InvokeFail(t, disputeconst.ErrAlreadyResponded, "respondToDispute",
			env.retailer.ScriptHash(), id, deposit)
	})
}

func TestDispute_Vote(t *testing.T) {
	env := newDisputeEnv(t, 1)
	voter := env.voters[0]

	id := env.initiate(t, dimension.Packaging)
	env.respond(t, id)

	t.Run("parties", func(t *testing.T) {
		env.retailer.dispute.InvokeFail(t, disputeconst.ErrPartyVote, "voteDispute",
			env.retailer.ScriptHash(), id, true)
		env.distributor.dispute.InvokeFail(t, disputeconst.ErrPartyVote, "voteDispute",
			env.distributor.ScriptHash(), id, false)
	})

	t.Run("no standing", func(t *testing.T) {
		stranger := env.newParty(t, role.Retailer)
		stranger.dispute.InvokeFail(t, disputeconst.ErrNoStanding, "voteDispute",
			stranger.ScriptHash(), id, true)
		require.Empty(t, env.callInts(t, env.suite.dispute, "eligibleFor", stranger.ScriptHash()))
	})

	env.vote(t, voter, id, true)
	voter.dispute.InvokeFail(t, disputeconst.ErrAlreadyVoted, "voteDispute", voter.ScriptHash(), id, false)

	env.committee(env.suite.dispute).InvokeFail(t, disputeconst.ErrVotingStillOpen, "finalizeDispute", id)

	t.Run("after deadline", func(t *testing.T) {
		late := env.newParty(t, role.Retailer)
		env.trade(t, late, env.distributor, 0)

		env.waitFor(t, itemInt(t, env.get(t, id)[8]))
		late.dispute.InvokeFail(t, disputeconst.ErrVotingClosed, "voteDispute", late.ScriptHash(), id, true)
	})
}

func TestDispute_Policy(t *testing.T) {
	s := newSuiteWithConfig(t, suiteConfig{deposit: 5 * scoreconst.Precision})
	reader := s.reader(s.dispute)

	reader.Invoke(t, 5*scoreconst.Precision, "deposit")
	reader.Invoke(t, disputeconst.DefaultVotingPeriod, "votingPeriod")
	reader.Invoke(t, 0, "lastID")
	reader.InvokeFail(t, disputeconst.ErrDisputeNotFound, "getDispute", 1)

	acc := s.e.NewAccount(t)
	s.e.NewInvoker(s.dispute, acc).InvokeFail(t, disputeconst.ErrTokenOnly, "onNEP17Payment", acc.ScriptHash(), 1, nil)
}

func TestDispute_Version(t *testing.T) {
	s := newSuite(t)
	testVersionAndUpdate(t, s.committee(s.dispute))
}

func TestDispute_CalledByEntryScope(t *testing.T) {
	env := newDisputeEnv(t, 0)

	// deposits are moved by the dispute contract, party's witness is only
	// valid in the dispute itself
	res := env.invokeCalledByEntry(t, env.distributor.Signer, env.suite.dispute, "initiateDispute",
		env.distributor.ScriptHash(), env.handoffID, dimension.Packaging, env.retailer.ScriptHash(), deposit)
	require.Len(t, res.Stack, 1)
	id := itemInt(t, res.Stack[0])

	env.invokeCalledByEntry(t, env.retailer.Signer, env.suite.dispute, "respondToDispute",
		env.retailer.ScriptHash(), id, deposit)

	require.EqualValues(t, 2*deposit, env.balanceOf(t, env.suite.dispute))
	require.EqualValues(t, deposit, itemInt(t, env.get(t, id)[7]))
}
