package chain

import (
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/provena-labs/provena-contract/contracts/dispute/disputeconst"
	"github.com/provena-labs/provena-contract/contracts/handoff/handoffconst"
	"github.com/provena-labs/provena-contract/contracts/registry/role"
	"github.com/provena-labs/provena-contract/contracts/score/dimension"
	"github.com/provena-labs/provena-contract/contracts/score/scoreconst"
)

// decimals of fixed-point scores and token amounts.
const decimals = 8

func unknownName(v *big.Int) string {
	return "unknown (" + v.String() + ")"
}

func enumName(names map[int64]string, v *big.Int) string {
	if v.IsInt64() {
		if s, ok := names[v.Int64()]; ok {
			return s
		}
	}
	return unknownName(v)
}

// roleName prints role the way role.String does, None included.
func roleName(v *big.Int) string {
	if v.IsInt64() && (v.Sign() == 0 || role.Valid(int(v.Int64()))) {
		return role.String(int(v.Int64()))
	}
	return unknownName(v)
}

func dimensionName(v *big.Int) string {
	if v.IsInt64() && dimension.Valid(int(v.Int64())) {
		return dimension.String(int(v.Int64()))
	}
	return unknownName(v)
}

func handoffStatusName(v *big.Int) string {
	return enumName(map[int64]string{
		handoffconst.Pending:   "pending",
		handoffconst.Validated: "validated",
	}, v)
}

func outcomeName(v *big.Int) string {
	return enumName(map[int64]string{
		disputeconst.Pending:        "pending",
		disputeconst.RespondentWins: "respondent wins",
		disputeconst.ChallengerWins: "challenger wins",
	}, v)
}

// fixed formats fixed-point value with 8 decimals.
func fixed(v *big.Int) string {
	return fixedn.ToString(v, decimals)
}

// confidence formats confidence as a percentage of the maximum.
func confidence(v *big.Int) string {
	pct := new(big.Int).Mul(v, big.NewInt(100))
	pct.Quo(pct, big.NewInt(scoreconst.MaxConfidence))
	return fixed(v) + " (" + pct.String() + "%)"
}

func hashString(h util.Uint160) string {
	return address.Uint160ToString(h)
}

// timestamp formats block time in milliseconds.
func timestamp(v *big.Int) string {
	if !v.IsInt64() {
		return v.String()
	}
	return time.UnixMilli(v.Int64()).UTC().Format(time.RFC3339)
}

// parseID parses positive identifier of a handoff, score or dispute.
func parseID(s string) (*big.Int, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("invalid identifier '%s': positive integer expected", s)
	}
	return big.NewInt(n), nil
}

func versionString(v *big.Int) string {
	if v == nil || v.Sign() == 0 || !v.IsInt64() {
		return "unknown"
	}

	n := v.Int64()
	major := n / 1_000_000
	minor := (n % 1_000_000) / 1000
	patch := n % 1_000
	return fmt.Sprintf("v%d.%d.%d", major, minor, patch)
}
