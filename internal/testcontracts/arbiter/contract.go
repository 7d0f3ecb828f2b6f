package arbiter

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
)

// AdjustConfidence passes dispute outcome to the score contract on behalf of
// this contract.
func AdjustConfidence(score, respondent interop.Hash160, votesForRespondent, votesForChallenger int) int {
	return contract.Call(score, "adjustConfidence", contract.All,
		respondent, votesForRespondent, votesForChallenger).(int)
}
