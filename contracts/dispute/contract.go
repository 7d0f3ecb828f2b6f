package dispute

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/provena-labs/provena-contract/common"
	"github.com/provena-labs/provena-contract/contracts/dispute/disputeconst"
	"github.com/provena-labs/provena-contract/contracts/registry/role"
)

type (
	// Dispute is a staked challenge of a single rating.
	Dispute struct {
		ID        int
		HandoffID int
		Dimension int
		ScoreID   int
		// Challenger is the rated party.
		Challenger interop.Hash160
		// Respondent is the party which made the rating.
		Respondent         interop.Hash160
		ChallengerDeposit  int
		RespondentDeposit  int
		VotingDeadline     int
		VotesForRespondent int
		VotesForChallenger int
		Outcome            int
		Finalized          bool
	}

	// Ballot is a single vote in a dispute.
	Ballot struct {
		Voter             interop.Hash160
		SupportRespondent bool
	}

	// scoreRecord is a copy of score.ScoreRecord to prevent cross-contract
	// imports.
	scoreRecord struct {
		ID        int
		Rater     interop.Hash160
		Ratee     interop.Hash160
		Dimension int
		Value     int
		Timestamp int
		HandoffID int
	}
)

const (
	registryContractKey = 'R'
	tokenContractKey    = 'T'
	scoreContractKey    = 'S'
	handoffContractKey  = 'H'
	depositKey          = 'M'
	votingPeriodKey     = 'W'

	lastIDKey        = 'n'
	disputePrefix    = 'd'
	ballotsPrefix    = 'b'
	votedPrefix      = 'v'
	activePrefix     = 'a'
	challengerPrefix = 'c'
	respondentPrefix = 'r'
)

// _deploy stores addresses of the collaborating contracts and dispute policy.
// Deploy data is [registry, token, score, handoff, deposit, votingPeriod],
// voting period is in milliseconds, zero policy values select defaults.
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
	putAddress(ctx, tokenContractKey, args[1].(interop.Hash160))
	putAddress(ctx, scoreContractKey, args[2].(interop.Hash160))
	putAddress(ctx, handoffContractKey, args[3].(interop.Hash160))

	storage.Put(ctx, depositKey, policyArg(args, 4, disputeconst.DefaultDeposit))
	storage.Put(ctx, votingPeriodKey, policyArg(args, 5, disputeconst.DefaultVotingPeriod))

	runtime.Log("dispute contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	common.UpdateContract(script, manifest, data)
	runtime.Log("dispute contract updated")
}

// OnNEP17Payment accepts deposits in reward token.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	ctx := storage.GetReadOnlyContext()
	if !runtime.GetCallingScriptHash().Equals(getAddress(ctx, tokenContractKey)) {
		common.AbortWithMessage(disputeconst.ErrTokenOnly)
	}
}

// InitiateDispute challenges the rating made along the dimension within the
// handoff. Challenger must be the rated party, respondent must be the rater
// and can not be a consumer. Deposit must equal the required amount, it is
// transferred from the challenger. Only one unresolved dispute may exist per
// rating. Returns identifier of the new dispute.
func InitiateDispute(challenger interop.Hash160, handoffID, dim int, respondent interop.Hash160, deposit int) int {
	common.CheckWitness(challenger)

	ctx := storage.GetContext()
	if deposit != storage.Get(ctx, depositKey).(int) {
		panic(disputeconst.ErrWrongDeposit)
	}

	scoreAddr := getAddress(ctx, scoreContractKey)
	scoreID := contract.Call(scoreAddr, "scoreIDByHandoff", contract.ReadOnly, handoffID, dim).(int)
	if scoreID == 0 {
		panic(disputeconst.ErrScoreNotFound)
	}

	rec := contract.Call(scoreAddr, "getScore", contract.ReadOnly, scoreID).(scoreRecord)
	if !rec.Ratee.Equals(challenger) {
		panic(disputeconst.ErrNotRatee)
	}
	if !rec.Rater.Equals(respondent) {
		panic(disputeconst.ErrNotRater)
	}
	if roleOf(getAddress(ctx, registryContractKey), respondent) == role.Consumer {
		panic(disputeconst.ErrRespondentIsConsumer)
	}

	activeKey := common.SlotKey(activePrefix, dim, handoffID)
	if storage.Get(ctx, activeKey) != nil {
		panic(disputeconst.ErrDuplicateDispute)
	}

	common.TransferTokens(getAddress(ctx, tokenContractKey), challenger,
		runtime.GetExecutingScriptHash(), deposit, disputeconst.ErrDepositFailed)

	id := common.NextID(ctx, lastIDKey)
	d := Dispute{
		ID:                id,
		HandoffID:         handoffID,
		Dimension:         dim,
		ScoreID:           scoreID,
		Challenger:        challenger,
		Respondent:        respondent,
		ChallengerDeposit: deposit,
		VotingDeadline:    runtime.GetTime() + storage.Get(ctx, votingPeriodKey).(int),
		Outcome:           disputeconst.Pending,
	}
	putDispute(ctx, d)

	storage.Put(ctx, activeKey, id)
	common.AppendToList(ctx, common.AddressKey(challengerPrefix, challenger), id)
	common.AppendToList(ctx, common.AddressKey(respondentPrefix, respondent), id)

	runtime.Notify("DisputeInitiated", id, challenger, respondent, handoffID, dim, d.VotingDeadline)

	return id
}

// RespondToDispute locks respondent's deposit, which must equal the one of
// the challenger, before the voting deadline. Without it the respondent
// loses the dispute when it is finalized.
func RespondToDispute(respondent interop.Hash160, disputeID int, deposit int) {
	common.CheckWitness(respondent)

	ctx := storage.GetContext()
	d := mustDispute(ctx, disputeID)

	switch {
	case !d.Respondent.Equals(respondent):
		panic(disputeconst.ErrNotRespondent)
	case d.Finalized:
		panic(disputeconst.ErrAlreadyFinalized)
	case deposit != d.ChallengerDeposit:
		panic(disputeconst.ErrWrongDeposit)
	case d.RespondentDeposit != 0:
		panic(disputeconst.ErrAlreadyResponded)
	case runtime.GetTime() >= d.VotingDeadline:
		panic(disputeconst.ErrVotingClosed)
	}

	common.TransferTokens(getAddress(ctx, tokenContractKey), respondent,
		runtime.GetExecutingScriptHash(), deposit, disputeconst.ErrDepositFailed)

	d.RespondentDeposit = deposit
	putDispute(ctx, d)

	runtime.Notify("DisputeResponded", disputeID, respondent)
}

// VoteDispute casts a vote in the dispute with complete deposits. Voter must
// have dealt with the challenger before and must not be a party of the
// dispute. Each voter votes once, before the deadline.
func VoteDispute(voter interop.Hash160, disputeID int, supportRespondent bool) {
	common.CheckWitness(voter)

	ctx := storage.GetContext()
	d := mustDispute(ctx, disputeID)

	if d.Finalized {
		panic(disputeconst.ErrAlreadyFinalized)
	}
	if d.RespondentDeposit == 0 {
		panic(disputeconst.ErrDepositsIncomplete)
	}
	if voter.Equals(d.Challenger) || voter.Equals(d.Respondent) {
		panic(disputeconst.ErrPartyVote)
	}
	if !hasStanding(ctx, voter, d.Challenger) {
		panic(disputeconst.ErrNoStanding)
	}

	vk := votedKey(voter, disputeID)
	if storage.Get(ctx, vk) != nil {
		panic(disputeconst.ErrAlreadyVoted)
	}
	if runtime.GetTime() >= d.VotingDeadline {
		panic(disputeconst.ErrVotingClosed)
	}

	storage.Put(ctx, vk, true)

	if supportRespondent {
		d.VotesForRespondent++
	} else {
		d.VotesForChallenger++
	}
	putDispute(ctx, d)

	common.AppendToList(ctx, common.ListKey(ballotsPrefix, disputeID),
		std.Serialize(Ballot{Voter: voter, SupportRespondent: supportRespondent}))

	runtime.Notify("VoteCast", disputeID, voter, supportRespondent)
}

// FinalizeDispute closes the dispute after its deadline. Respondent without
// a deposit loses and the challenger gets its deposit back. Otherwise ties go
// to the respondent; the winner gets its deposit back and the loser's one
// except for a half split equally between voters who backed the winner.
// Confidence of the respondent is adjusted when it is tracked for its role.
func FinalizeDispute(disputeID int) {
	ctx := storage.GetContext()
	d := mustDispute(ctx, disputeID)

	if d.Finalized {
		panic(disputeconst.ErrAlreadyFinalized)
	}
	if runtime.GetTime() < d.VotingDeadline {
		panic(disputeconst.ErrVotingStillOpen)
	}

	token := getAddress(ctx, tokenContractKey)
	d.Finalized = true

	if d.RespondentDeposit == 0 {
		d.Outcome = disputeconst.ChallengerWins
		common.PayFromSelf(token, d.Challenger, d.ChallengerDeposit, disputeconst.ErrPayoutFailed)
	} else {
		d.Outcome = disputeconst.RespondentWins
		winner, own, lost := d.Respondent, d.RespondentDeposit, d.ChallengerDeposit
		if d.VotesForChallenger > d.VotesForRespondent {
			d.Outcome = disputeconst.ChallengerWins
			winner, own, lost = d.Challenger, d.ChallengerDeposit, d.RespondentDeposit
		}

		paid := payVoters(ctx, token, disputeID, d.Outcome == disputeconst.RespondentWins, lost/2)
		common.PayFromSelf(token, winner, own+lost-paid, disputeconst.ErrPayoutFailed)
	}

	putDispute(ctx, d)
	storage.Delete(ctx, common.SlotKey(activePrefix, d.Dimension, d.HandoffID))

	if role.TracksConfidence(roleOf(getAddress(ctx, registryContractKey), d.Respondent)) {
		contract.Call(getAddress(ctx, scoreContractKey), "adjustConfidence", contract.All,
			d.Respondent, d.VotesForRespondent, d.VotesForChallenger)
	}

	runtime.Notify("DisputeFinalized", disputeID, d.Outcome, d.VotesForRespondent, d.VotesForChallenger)
}

// GetDispute returns dispute with the given identifier.
func GetDispute(disputeID int) Dispute {
	return mustDispute(storage.GetReadOnlyContext(), disputeID)
}

// Ballots returns votes cast in the dispute in order of submission.
func Ballots(disputeID int) []Ballot {
	ctx := storage.GetReadOnlyContext()
	mustDispute(ctx, disputeID)
	return getBallots(ctx, disputeID)
}

// EligibleFor returns identifiers of disputes the voter can vote in right
// now.
func EligibleFor(voter interop.Hash160) []int {
	ctx := storage.GetReadOnlyContext()
	last := common.LastID(ctx, lastIDKey)
	now := runtime.GetTime()

	res := []int{}
	for id := 1; id <= last; id++ {
		d := mustDispute(ctx, id)
		if d.Finalized || d.RespondentDeposit == 0 || now >= d.VotingDeadline {
			continue
		}
		if voter.Equals(d.Challenger) || voter.Equals(d.Respondent) {
			continue
		}
		if storage.Get(ctx, votedKey(voter, id)) != nil || !hasStanding(ctx, voter, d.Challenger) {
			continue
		}
		res = append(res, id)
	}
	return res
}

// ByRespondent returns identifiers of disputes against ratings of the party.
func ByRespondent(party interop.Hash160) []int {
	return common.GetIntList(storage.GetReadOnlyContext(), common.AddressKey(respondentPrefix, party))
}

// ByChallenger returns identifiers of disputes initiated by the party.
func ByChallenger(party interop.Hash160) []int {
	return common.GetIntList(storage.GetReadOnlyContext(), common.AddressKey(challengerPrefix, party))
}

// HasActiveDispute checks whether rating made along the dimension within the
// handoff is being disputed.
func HasActiveDispute(handoffID, dim int) bool {
	return ActiveDispute(handoffID, dim) != 0
}

// ActiveDispute returns identifier of the unresolved dispute of the rating
// made along the dimension within the handoff, 0 if there is none.
func ActiveDispute(handoffID, dim int) int {
	return common.LastID(storage.GetReadOnlyContext(), common.SlotKey(activePrefix, dim, handoffID))
}

// Deposit returns the amount each party of a dispute locks.
func Deposit() int {
	return storage.Get(storage.GetReadOnlyContext(), depositKey).(int)
}

// VotingPeriod returns duration of disputes in milliseconds.
func VotingPeriod() int {
	return storage.Get(storage.GetReadOnlyContext(), votingPeriodKey).(int)
}

// LastID returns identifier of the latest dispute, 0 if there are none.
func LastID() int {
	return common.LastID(storage.GetReadOnlyContext(), lastIDKey)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// payVoters splits pot equally between voters who supported the outcome and
// returns the amount actually paid.
func payVoters(ctx storage.Context, token interop.Hash160, disputeID int, respondentWon bool, pot int) int {
	ballots := getBallots(ctx, disputeID)

	aligned := []interop.Hash160{}
	for i := range ballots {
		if ballots[i].SupportRespondent == respondentWon {
			aligned = append(aligned, ballots[i].Voter)
		}
	}

	if len(aligned) == 0 {
		return 0
	}

	share := pot / len(aligned)
	for i := range aligned {
		common.PayFromSelf(token, aligned[i], share, disputeconst.ErrPayoutFailed)
	}

	return share * len(aligned)
}

func hasStanding(ctx storage.Context, voter, challenger interop.Hash160) bool {
	return contract.Call(getAddress(ctx, handoffContractKey), "hasTransacted", contract.ReadOnly,
		voter, challenger).(bool)
}

func votedKey(voter interop.Hash160, disputeID int) []byte {
	return append(common.AddressKey(votedPrefix, voter), convert.ToBytes(disputeID)...)
}

func getBallots(ctx storage.Context, disputeID int) []Ballot {
	key := common.ListKey(ballotsPrefix, disputeID)
	n := common.ListLen(ctx, key)

	res := []Ballot{}
	for i := 1; i <= n; i++ {
		res = append(res, std.Deserialize(common.ListItem(ctx, key, i).([]byte)).(Ballot))
	}
	return res
}

func mustDispute(ctx storage.Context, id int) Dispute {
	data := storage.Get(ctx, common.IDKey(disputePrefix, id))
	if data == nil {
		panic(disputeconst.ErrDisputeNotFound)
	}
	return std.Deserialize(data.([]byte)).(Dispute)
}

func putDispute(ctx storage.Context, d Dispute) {
	common.SetSerialized(ctx, common.IDKey(disputePrefix, d.ID), d)
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

func policyArg(args []any, i int, def int) int {
	if len(args) <= i {
		return def
	}
	v := args[i].(int)
	if v <= 0 {
		return def
	}
	return v
}
