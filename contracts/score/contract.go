package score

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/provena-labs/provena-contract/common"
	"github.com/provena-labs/provena-contract/contracts/registry/role"
	"github.com/provena-labs/provena-contract/contracts/score/dimension"
	"github.com/provena-labs/provena-contract/contracts/score/scoreconst"
)

// ScoreRecord is a single submitted rating.
type ScoreRecord struct {
	ID        int
	Rater     interop.Hash160
	Ratee     interop.Hash160
	Dimension int
	Value     int
	Timestamp int
	HandoffID int
}

const (
	registryContractKey = 'R'
	tokenContractKey    = 'T'
	handoffContractKey  = 'H'
	disputeContractKey  = 'D'
	smoothingKey        = 'W'
	decayRateKey        = 'K'
	restoreRateKey      = 'O'
	rewardKey           = 'P'

	lastIDKey          = 'n'
	recordPrefix       = 's'
	rateeListPrefix    = 'l'
	runningScorePrefix = 'r'
	confidencePrefix   = 'c'
	handoffIndexPrefix = 'x'
)

// _deploy stores addresses of the collaborating contracts and scoring
// policy. Deploy data is [registry, token, handoff, dispute, smoothing,
// decayRate, restoreRate, reward], zero policy values select defaults.
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
	putAddress(ctx, handoffContractKey, args[2].(interop.Hash160))
	putAddress(ctx, disputeContractKey, args[3].(interop.Hash160))

	storage.Put(ctx, smoothingKey, policyArg(args, 4, scoreconst.DefaultSmoothing))
	storage.Put(ctx, decayRateKey, policyArg(args, 5, scoreconst.DefaultDecayRate))
	storage.Put(ctx, restoreRateKey, policyArg(args, 6, scoreconst.DefaultRestoreRate))
	storage.Put(ctx, rewardKey, policyArg(args, 7, scoreconst.RewardAmount))

	if storage.Get(ctx, smoothingKey).(int) > scoreconst.Precision {
		panic("smoothing weight exceeds 1.0")
	}

	runtime.Log("score contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	common.UpdateContract(script, manifest, data)
	runtime.Log("score contract updated")
}

// OnNEP17Payment accepts reward token transfers funding the reward pool.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	ctx := storage.GetReadOnlyContext()
	if !runtime.GetCallingScriptHash().Equals(getAddress(ctx, tokenContractKey)) {
		common.AbortWithMessage(scoreconst.ErrTokenOnly)
	}
}

// Rate records a rating of ratee made by rater along the dimension and
// updates ratee's running score. Only the handoff contract may call it.
// Traced ratings are those routed through the provenance chain of an asset.
// Consumers get a reward from the pool for each rating. Returns new record
// identifier.
func Rate(rater, ratee interop.Hash160, dim, value, handoffID int, traced bool) int {
	ctx := storage.GetContext()
	common.CheckCaller(getAddress(ctx, handoffContractKey), scoreconst.ErrCoordinatorOnly)

	registry := getAddress(ctx, registryContractKey)
	raterRole := roleOf(registry, rater)
	rateeRole := roleOf(registry, ratee)

	switch {
	case raterRole == role.None || rateeRole == role.None:
		panic(scoreconst.ErrPartyNotRegistered)
	case rater.Equals(ratee):
		panic(scoreconst.ErrSelfRating)
	case value < scoreconst.MinScore || value > scoreconst.MaxScore:
		panic(scoreconst.ErrScoreOutOfRange)
	case !dimension.Allowed(raterRole, rateeRole, dim, traced):
		panic(scoreconst.ErrInvalidRoleOrDimension)
	}

	id := common.NextID(ctx, lastIDKey)
	rec := ScoreRecord{
		ID:        id,
		Rater:     rater,
		Ratee:     ratee,
		Dimension: dim,
		Value:     value,
		Timestamp: runtime.GetTime(),
		HandoffID: handoffID,
	}
	common.SetSerialized(ctx, common.IDKey(recordPrefix, id), rec)
	common.AppendToList(ctx, common.AddressKey(rateeListPrefix, ratee), id)
	storage.Put(ctx, common.SlotKey(handoffIndexPrefix, dim, handoffID), id)

	running := value * scoreconst.Precision
	key := runningScoreKey(ratee, dim)
	old := storage.Get(ctx, key)
	if old != nil {
		running = smooth(old.(int), running, storage.Get(ctx, smoothingKey).(int))
	}
	storage.Put(ctx, key, running)

	if role.TracksConfidence(raterRole) {
		ck := common.AddressKey(confidencePrefix, rater)
		if storage.Get(ctx, ck) == nil {
			storage.Put(ctx, ck, scoreconst.MaxConfidence)
		}
	}

	if raterRole == role.Consumer {
		common.PayFromSelf(getAddress(ctx, tokenContractKey), rater,
			storage.Get(ctx, rewardKey).(int), scoreconst.ErrRewardPoolExhausted)
	}

	runtime.Notify("ScoreAssigned", id, rater, ratee, dim, value, running)

	return id
}

// AdjustConfidence applies dispute outcome to the confidence of the
// respondent, the party whose rating was challenged. Only the dispute
// contract may call it. Challenger majority decreases confidence by the vote
// margin times decay rate, respondent majority restores margin times restore
// rate, a tie changes nothing. Result is clamped to [0, MaxConfidence].
func AdjustConfidence(respondent interop.Hash160, votesForRespondent, votesForChallenger int) int {
	ctx := storage.GetContext()
	common.CheckCaller(getAddress(ctx, disputeContractKey), scoreconst.ErrArbitratorOnly)

	if !role.TracksConfidence(roleOf(getAddress(ctx, registryContractKey), respondent)) {
		panic(scoreconst.ErrConfidenceNotApplicable)
	}

	conf := confidence(ctx, respondent)

	if votesForChallenger > votesForRespondent {
		conf -= (votesForChallenger - votesForRespondent) * storage.Get(ctx, decayRateKey).(int)
		if conf < 0 {
			conf = 0
		}
	} else if votesForRespondent > votesForChallenger {
		conf += (votesForRespondent - votesForChallenger) * storage.Get(ctx, restoreRateKey).(int)
		if conf > scoreconst.MaxConfidence {
			conf = scoreconst.MaxConfidence
		}
	}

	storage.Put(ctx, common.AddressKey(confidencePrefix, respondent), conf)
	runtime.Notify("ConfidenceChanged", respondent, conf)

	return conf
}

// SetManualScore overrides running score of the ratee along the dimension.
// Score is a fixed-point value from 1.0 to 10.0. It can be invoked only by
// committee.
func SetManualScore(ratee interop.Hash160, dim int, score int) {
	common.CheckCommitteeWitness()

	if !dimension.Valid(dim) {
		panic(scoreconst.ErrInvalidDimension)
	}
	if score < scoreconst.MinScore*scoreconst.Precision || score > scoreconst.MaxScore*scoreconst.Precision {
		panic(scoreconst.ErrScoreOutOfRange)
	}

	ctx := storage.GetContext()
	storage.Put(ctx, runningScoreKey(ratee, dim), score)

	runtime.Notify("ManualScoreSet", ratee, dim, score)
}

// GlobalScore returns running score of the ratee along the dimension, 0 if
// the ratee was never rated along it.
func GlobalScore(ratee interop.Hash160, dim int) int {
	v := storage.Get(storage.GetReadOnlyContext(), runningScoreKey(ratee, dim))
	if v == nil {
		return 0
	}
	return v.(int)
}

// Confidence returns confidence of the party. Parties never involved in a
// dispute have maximum confidence.
func Confidence(party interop.Hash160) int {
	return confidence(storage.GetReadOnlyContext(), party)
}

// ScoreIDs returns identifiers of all ratings of the ratee in order of
// submission.
func ScoreIDs(ratee interop.Hash160) []int {
	return common.GetIntList(storage.GetReadOnlyContext(), common.AddressKey(rateeListPrefix, ratee))
}

// ScoresOf returns all ratings of the ratee in order of submission.
func ScoresOf(ratee interop.Hash160) []ScoreRecord {
	ctx := storage.GetReadOnlyContext()
	ids := common.GetIntList(ctx, common.AddressKey(rateeListPrefix, ratee))

	res := []ScoreRecord{}
	for i := range ids {
		res = append(res, mustRecord(ctx, ids[i]))
	}
	return res
}

// GetScore returns rating with the given identifier.
func GetScore(id int) ScoreRecord {
	return mustRecord(storage.GetReadOnlyContext(), id)
}

// ScoreIDByHandoff returns identifier of the rating made along the dimension
// within the handoff, 0 if there is none.
func ScoreIDByHandoff(handoffID, dim int) int {
	v := storage.Get(storage.GetReadOnlyContext(), common.SlotKey(handoffIndexPrefix, dim, handoffID))
	if v == nil {
		return 0
	}
	return v.(int)
}

// ApplicableDimensions returns dimensions the ratee can be rated along
// according to its role. The list is empty for unregistered parties.
func ApplicableDimensions(ratee interop.Hash160) []int {
	ctx := storage.GetReadOnlyContext()
	return dimension.Of(roleOf(getAddress(ctx, registryContractKey), ratee))
}

// Reward returns amount of tokens paid for a rating or a confirmed handoff.
func Reward() int {
	return storage.Get(storage.GetReadOnlyContext(), rewardKey).(int)
}

// RewardPool returns amount of tokens available for consumer rewards.
func RewardPool() int {
	ctx := storage.GetReadOnlyContext()
	return contract.Call(getAddress(ctx, tokenContractKey), "balanceOf", contract.ReadOnly,
		runtime.GetExecutingScriptHash()).(int)
}

// Policy returns smoothing weight, decay rate and restore rate in this
// order.
func Policy() []int {
	ctx := storage.GetReadOnlyContext()
	return []int{
		storage.Get(ctx, smoothingKey).(int),
		storage.Get(ctx, decayRateKey).(int),
		storage.Get(ctx, restoreRateKey).(int),
	}
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// smooth returns exponential moving average of the old running score and
// the new scaled value with the given weight of the latter. Division
// truncates.
func smooth(old, value, weight int) int {
	return (weight*value + (scoreconst.Precision-weight)*old) / scoreconst.Precision
}

func confidence(ctx storage.Context, party interop.Hash160) int {
	v := storage.Get(ctx, common.AddressKey(confidencePrefix, party))
	if v == nil {
		return scoreconst.MaxConfidence
	}
	return v.(int)
}

func mustRecord(ctx storage.Context, id int) ScoreRecord {
	data := storage.Get(ctx, common.IDKey(recordPrefix, id))
	if data == nil {
		panic(scoreconst.ErrScoreNotFound)
	}
	return std.Deserialize(data.([]byte)).(ScoreRecord)
}

func runningScoreKey(ratee interop.Hash160, dim int) []byte {
	return append(common.AddressKey(runningScorePrefix, ratee), convert.ToBytes(dim+1)...)
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
