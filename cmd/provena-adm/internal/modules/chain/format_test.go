package chain

import (
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/provena-labs/provena-contract/contracts/dispute/disputeconst"
	"github.com/provena-labs/provena-contract/contracts/registry/role"
	"github.com/provena-labs/provena-contract/contracts/score/dimension"
	"github.com/provena-labs/provena-contract/contracts/score/scoreconst"
	"github.com/provena-labs/provena-contract/deploy"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	for r := role.None; r <= role.Consumer; r++ {
		require.Equal(t, role.String(r), roleName(big.NewInt(int64(r))))
	}
	for d := 0; d < dimension.Count; d++ {
		require.Equal(t, dimension.String(d), dimensionName(big.NewInt(int64(d))))
	}

	require.Equal(t, "Retailer", roleName(big.NewInt(role.Retailer)))
	require.Equal(t, "unknown (9)", roleName(big.NewInt(9)))
	require.Equal(t, "unknown (-1)", roleName(big.NewInt(-1)))
	require.Equal(t, "Packaging", dimensionName(big.NewInt(dimension.Packaging)))
	require.Equal(t, "unknown (12)", dimensionName(big.NewInt(dimension.Count)))
	require.Equal(t, "challenger wins", outcomeName(big.NewInt(disputeconst.ChallengerWins)))
	require.Equal(t, "validated", handoffStatusName(big.NewInt(1)))
}

func TestFixed(t *testing.T) {
	require.Equal(t, "7.8", fixed(big.NewInt(780_000_000)))
	require.Equal(t, "0", fixed(big.NewInt(0)))
	require.Equal(t, "100 (100%)", confidence(big.NewInt(scoreconst.MaxConfidence)))
	require.Equal(t, "99.8 (99%)", confidence(big.NewInt(scoreconst.MaxConfidence-scoreconst.DefaultDecayRate)))
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	require.EqualValues(t, 42, id.Int64())

	for _, s := range []string{"", "0", "-1", "one"} {
		_, err = parseID(s)
		require.Error(t, err, s)
	}
}

func TestParseHash(t *testing.T) {
	h := util.Uint160{1, 2, 3, 4, 5}

	for _, s := range []string{address.Uint160ToString(h), h.StringLE(), "0x" + h.StringLE()} {
		res, err := parseHash(s)
		require.NoError(t, err, s)
		require.Equal(t, h, res, s)
	}

	_, err := parseHash("not a hash")
	require.Error(t, err)
}

func TestContractHash(t *testing.T) {
	h := util.Uint160{9, 8, 7}

	v := viper.New()
	v.Set("contracts.score", h.StringLE())
	v.Set("contracts.dispute", "invalid")

	res, err := contractHash(v, "score")
	require.NoError(t, err)
	require.Equal(t, h, res)

	_, err = contractHash(v, "handoff")
	require.ErrorContains(t, err, "contracts.handoff")

	_, err = contractHash(v, "dispute")
	require.Error(t, err)
}

func TestReadPolicy(t *testing.T) {
	v := viper.New()
	v.Set(smoothingInitFlag, 1)
	v.Set(decayRateInitFlag, 2)
	v.Set(restoreRateInitFlag, 3)
	v.Set(rewardInitFlag, 4)
	v.Set(depositInitFlag, 5)
	v.Set(votingPeriodInitFlag, 6)
	v.Set(tokenSupplyInitFlag, 7)
	v.Set(rewardPoolInitFlag, 8)

	p := readPolicy(v)
	require.EqualValues(t, []int64{1, 2, 3, 4, 5, 6, 7, 8}, []int64{
		p.Smoothing, p.DecayRate, p.RestoreRate, p.Reward,
		p.Deposit, p.VotingPeriod, p.TokenSupply, p.RewardPool,
	})
}

func TestVersionString(t *testing.T) {
	require.Equal(t, "v0.1.0", versionString(big.NewInt(1_000)))
	require.Equal(t, "v1.2.3", versionString(big.NewInt(1_002_003)))
	require.Equal(t, "unknown", versionString(nil))
	require.Equal(t, "unknown", versionString(big.NewInt(0)))
}

func TestJoinIDs(t *testing.T) {
	require.Equal(t, "-", joinIDs(nil))
	require.Equal(t, "3 <- 2 <- 1", joinIDs([]*big.Int{big.NewInt(3), big.NewInt(2), big.NewInt(1)}))
}

func TestReadDeployed(t *testing.T) {
	score := util.Uint160{1, 2, 3}
	handoff := util.Uint160{4, 5, 6}

	v := viper.New()

	res, err := readDeployed(v)
	require.NoError(t, err)
	require.Zero(t, res)

	v.Set("contracts.score", score.StringLE())
	v.Set("contracts.handoff", address.Uint160ToString(handoff))

	res, err = readDeployed(v)
	require.NoError(t, err)
	require.Equal(t, deploy.Result{Score: score, Handoff: handoff}, res)

	v.Set("contracts.dispute", "invalid")
	_, err = readDeployed(v)
	require.ErrorContains(t, err, "contracts.dispute")
}
