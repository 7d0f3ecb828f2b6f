package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/provena-labs/provena-contract/common"
	"github.com/provena-labs/provena-contract/contracts/registry/role"
	"github.com/provena-labs/provena-contract/contracts/score/dimension"
	"github.com/provena-labs/provena-contract/contracts/score/scoreconst"
	"github.com/stretchr/testify/require"
)

func TestScore_RunningScore(t *testing.T) {
	testCases := []struct {
		name      string
		smoothing int64
		expected  int64
	}{
		{name: "default smoothing", expected: 780_000_000},
		{name: "slow smoothing", smoothing: 1_000_000, expected: 798_000_000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newSuiteWithConfig(t, suiteConfig{smoothing: tc.smoothing, votingPeriod: testVotingPeriod})

			factory := s.newParty(t, role.Factory)
			distributor := s.newParty(t, role.Distributor)

			first := s.trade(t, distributor, factory, 0)
			second := s.trade(t, distributor, factory, 0)

			s.rate(t, distributor, first, dimension.ProductQuality, 8)
			require.EqualValues(t, 8*scoreconst.Precision,
				s.callInt(t, s.score, "globalScore", factory.ScriptHash(), dimension.ProductQuality))

			s.rate(t, distributor, second, dimension.ProductQuality, 6)
			require.Equal(t, tc.expected,
				s.callInt(t, s.score, "globalScore", factory.ScriptHash(), dimension.ProductQuality))

			// other dimensions are independent
			require.Zero(t, s.callInt(t, s.score, "globalScore", factory.ScriptHash(), dimension.Warranty))
		})
	}
}

func TestScore_Rate(t *testing.T) {
	s := newSuite(t)

	supplier, factory, distributor, _, _ := s.chain(t)
	hid := s.trade(t, distributor, factory, 0)

	t.Run("out of range", func(t *testing.T) {
		for _, v := range []int{0, 11, -1} {
			distributor.handoff.InvokeFail(t, scoreconst.ErrScoreOutOfRange, "buyerRateSeller",
				distributor.ScriptHash(), hid, dimension.ProductQuality, v, 0, false)
		}
	})

	t.Run("dimension of other role", func(t *testing.T) {
		distributor.handoff.InvokeFail(t, scoreconst.ErrInvalidRoleOrDimension, "buyerRateSeller",
			distributor.ScriptHash(), hid, dimension.Trust, 5, 0, false)
		distributor.handoff.InvokeFail(t, scoreconst.ErrInvalidRoleOrDimension, "buyerRateSeller",
			distributor.ScriptHash(), hid, dimension.Count, 5, 0, false)
	})

	t.Run("direct call", func(t *testing.T) {
		inv := s.e.NewInvoker(s.score, distributor.Signer)
		inv.InvokeFail(t, scoreconst.ErrCoordinatorOnly, "rate",
			distributor.ScriptHash(), factory.ScriptHash(), dimension.ProductQuality, 5, hid, false)
		inv.InvokeFail(t, scoreconst.ErrArbitratorOnly, "adjustConfidence", factory.ScriptHash(), 1, 2)
	})

	id := s.rate(t, distributor, hid, dimension.Warranty, 9)
	require.EqualValues(t, 1, id)

	st, err := s.reader(s.score).TestInvoke(t, "getScore", id)
	require.NoError(t, err)
	fields := st.Pop().Array()
	require.Len(t, fields, 7)
	require.Equal(t, id, itemInt(t, fields[0]))
	require.Equal(t, distributor.ScriptHash(), itemHash(t, fields[1]))
	require.Equal(t, factory.ScriptHash(), itemHash(t, fields[2]))
	require.EqualValues(t, dimension.Warranty, itemInt(t, fields[3]))
	require.EqualValues(t, 9, itemInt(t, fields[4]))
	require.Equal(t, hid, itemInt(t, fields[6]))

	reader := s.reader(s.score)
	reader.Invoke(t, id, "scoreIDByHandoff", hid, dimension.Warranty)
	reader.Invoke(t, 0, "scoreIDByHandoff", hid, dimension.ProductQuality)
	reader.InvokeFail(t, scoreconst.ErrScoreNotFound, "getScore", id+1)

	require.Equal(t, []int64{id}, s.callInts(t, s.score, "scoreIDs", factory.ScriptHash()))
	require.Len(t, s.callArray(t, s.score, "scoresOf", factory.ScriptHash()), 1)
	require.Empty(t, s.callArray(t, s.score, "scoresOf", supplier.ScriptHash()))
}

func TestScore_Rewards(t *testing.T) {
	s := newSuite(t)

	supplier, factory, _, retailer, consumer := s.chain(t)

	t.Run("industrial rater", func(t *testing.T) {
		hid := s.trade(t, factory, supplier, 0)
		before := s.balanceOf(t, factory.ScriptHash())

		s.rate(t, factory, hid, dimension.MaterialQuality, 7)
		require.Equal(t, before, s.balanceOf(t, factory.ScriptHash()))
		require.EqualValues(t, scoreconst.MaxConfidence, s.callInt(t, s.score, "confidence", factory.ScriptHash()))
	})

	t.Run("consumer", func(t *testing.T) {
		hid := s.trade(t, consumer, retailer, 0)
		pool := s.callInt(t, s.score, "rewardPool")
		before := s.balanceOf(t, consumer.ScriptHash())

		s.rate(t, consumer, hid, dimension.Delivery, 7)
		s.rate(t, consumer, hid, dimension.PriceFairness, 4)

		require.Equal(t, before+2*scoreconst.RewardAmount, s.balanceOf(t, consumer.ScriptHash()))
		require.Equal(t, pool-2*scoreconst.RewardAmount, s.callInt(t, s.score, "rewardPool"))
	})
}

func TestScore_RewardPoolExhausted(t *testing.T) {
	const reward = 2_000 * scoreconst.Precision

	s := newSuiteWithConfig(t, suiteConfig{reward: reward, votingPeriod: testVotingPeriod})
	s.reader(s.score).Invoke(t, reward, "reward")

	retailer := s.newParty(t, role.Retailer)
	consumer := s.newParty(t, role.Consumer)
	s.committee(s.token).Invoke(t, true, "transfer", s.e.CommitteeHash, retailer.ScriptHash(), 5*reward, nil)

	// confirmation puts one reward into the pool, so it holds enough for one
	// rating only
	hid := s.trade(t, consumer, retailer, 0)
	require.EqualValues(t, poolFunds+reward, s.callInt(t, s.score, "rewardPool"))

	s.rate(t, consumer, hid, dimension.Delivery, 10)
	consumer.handoff.InvokeFail(t, scoreconst.ErrRewardPoolExhausted, "buyerRateSeller",
		consumer.ScriptHash(), hid, dimension.ReturnPolicy, 10, 0, false)
}

func TestScore_ManualScore(t *testing.T) {
	s := newSuite(t)
	factory := s.newParty(t, role.Factory)

	committee := s.committee(s.score)
	committee.InvokeFail(t, scoreconst.ErrInvalidDimension, "setManualScore",
		factory.ScriptHash(), dimension.Count, 5*scoreconst.Precision)
	committee.InvokeFail(t, scoreconst.ErrScoreOutOfRange, "setManualScore",
		factory.ScriptHash(), dimension.EcoRating, 11*scoreconst.Precision)
	committee.InvokeFail(t, scoreconst.ErrScoreOutOfRange, "setManualScore",
		factory.ScriptHash(), dimension.EcoRating, scoreconst.Precision-1)

	s.e.NewInvoker(s.score, factory.Signer).InvokeFail(t, common.ErrCommitteeWitnessFailed, "setManualScore",
		factory.ScriptHash(), dimension.EcoRating, 5*scoreconst.Precision)

	committee.Invoke(t, stackitem.Null{}, "setManualScore", factory.ScriptHash(), dimension.EcoRating, 550_000_000)
	committee.Invoke(t, 550_000_000, "globalScore", factory.ScriptHash(), dimension.EcoRating)

	// next rating is smoothed against the manual value
	distributor := s.newParty(t, role.Distributor)
	hid := s.trade(t, distributor, factory, 0)
	s.rate(t, distributor, hid, dimension.EcoRating, 10)
	committee.Invoke(t, 595_000_000, "globalScore", factory.ScriptHash(), dimension.EcoRating)
}

func TestScore_Reads(t *testing.T) {
	s := newSuite(t)
	reader := s.reader(s.score)

	retailer := s.newParty(t, role.Retailer)
	consumer := s.newParty(t, role.Consumer)

	require.Equal(t, []int64{dimension.Delivery, dimension.PriceFairness, dimension.ReturnPolicy},
		s.callInts(t, s.score, "applicableDimensions", retailer.ScriptHash()))
	require.Empty(t, s.callInts(t, s.score, "applicableDimensions", consumer.ScriptHash()))
	require.Equal(t,
		[]int64{scoreconst.DefaultSmoothing, scoreconst.DefaultDecayRate, scoreconst.DefaultRestoreRate},
		s.callInts(t, s.score, "policy"))

	reader.Invoke(t, scoreconst.RewardAmount, "reward")
	reader.Invoke(t, int64(poolFunds), "rewardPool")
	reader.Invoke(t, scoreconst.MaxConfidence, "confidence", consumer.ScriptHash())
}

func TestScore_Payment(t *testing.T) {
	s := newSuite(t)
	acc := s.e.NewAccount(t)

	s.e.NewInvoker(s.score, acc).InvokeFail(t, scoreconst.ErrTokenOnly, "onNEP17Payment", acc.ScriptHash(), 1, nil)
}

func TestScore_Version(t *testing.T) {
	s := newSuite(t)
	testVersionAndUpdate(t, s.committee(s.score))
}

func TestScore_AdjustConfidence(t *testing.T) {
	s := newSuiteWithConfig(t, suiteConfig{votingPeriod: testVotingPeriod, withArbiter: true})

	factory := s.newParty(t, role.Factory)
	retailer := s.newParty(t, role.Retailer)
	distributor := s.newParty(t, role.Distributor)
	arbiter := s.committee(s.arbiter)

	adjust := func(t *testing.T, respondent *party, forRespondent, forChallenger int, expected int64) {
		arbiter.Invoke(t, expected, "adjustConfidence", s.score, respondent.ScriptHash(), forRespondent, forChallenger)
		require.Equal(t, expected, s.callInt(t, s.score, "confidence", respondent.ScriptHash()))
	}

	t.Run("direct call", func(t *testing.T) {
		s.committee(s.score).InvokeFail(t, scoreconst.ErrArbitratorOnly, "adjustConfidence",
			factory.ScriptHash(), 20, 80)
	})

	t.Run("not applicable", func(t *testing.T) {
		stranger := s.e.NewAccount(t)
		for _, h := range []any{distributor.ScriptHash(), stranger.ScriptHash()} {
			arbiter.InvokeFail(t, scoreconst.ErrConfidenceNotApplicable, "adjustConfidence",
				s.score, h, 20, 80)
		}
	})

	t.Run("challenger majority", func(t *testing.T) {
		require.EqualValues(t, scoreconst.MaxConfidence, s.callInt(t, s.score, "confidence", factory.ScriptHash()))
		adjust(t, factory, 20, 80, 88*scoreconst.Precision)
	})

	t.Run("respondent majority", func(t *testing.T) {
		adjust(t, factory, 5, 2, 88*scoreconst.Precision+3*scoreconst.DefaultRestoreRate)
	})

	t.Run("tie", func(t *testing.T) {
		adjust(t, factory, 3, 3, 88*scoreconst.Precision+3*scoreconst.DefaultRestoreRate)
	})

	t.Run("bounds", func(t *testing.T) {
		adjust(t, retailer, 0, 501, 0)
		adjust(t, retailer, 0, 1, 0)
		adjust(t, retailer, 10_000, 0, scoreconst.MaxConfidence)
	})
}
