package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/provena-labs/provena-contract/common"
	"github.com/provena-labs/provena-contract/contracts/dispute/disputeconst"
	"github.com/provena-labs/provena-contract/contracts/handoff/handoffconst"
	"github.com/provena-labs/provena-contract/contracts/score/scoreconst"
	"github.com/stretchr/testify/require"
)

// invocationError mimics error returned by actor on FAULT test invocation.
func invocationError(msg string) error {
	return fmt.Errorf("script failed (FAULT state) due to an error: at instruction 1337 (THROW): unhandled exception: \"%s\"", msg)
}

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		msg   string
		class error
	}{
		{msg: common.ErrWitnessFailed, class: ErrAccessDenied},
		{msg: common.ErrCommitteeWitnessFailed, class: ErrAccessDenied},
		{msg: scoreconst.ErrScoreOutOfRange, class: ErrInvalidArgument},
		{msg: scoreconst.ErrInvalidRoleOrDimension, class: ErrInvalidArgument},
		{msg: scoreconst.ErrRewardPoolExhausted, class: ErrInsufficientFunds},
		{msg: handoffconst.ErrHandoffNotFound, class: ErrNotFound},
		{msg: handoffconst.ErrNotValidated, class: ErrInvalidState},
		{msg: handoffconst.ErrAlreadyRated, class: ErrConflict},
		{msg: disputeconst.ErrVotingStillOpen, class: ErrInvalidState},
		{msg: disputeconst.ErrNoStanding, class: ErrAccessDenied},
	} {
		t.Run(tc.msg, func(t *testing.T) {
			src := invocationError(tc.msg)

			err := Classify(src)
			require.ErrorIs(t, err, tc.class)
			require.ErrorIs(t, err, src)
			require.True(t, Is(err, tc.msg))

			msg, ok := Message(err)
			require.True(t, ok)
			require.Equal(t, tc.msg, msg)
		})
	}
}

func TestClassify_Unknown(t *testing.T) {
	require.NoError(t, Classify(nil))

	src := errors.New("connection refused")
	require.Equal(t, src, Classify(src))

	_, ok := Message(src)
	require.False(t, ok)
	require.False(t, Is(nil, common.ErrWitnessFailed))
}

func TestRulesOrder(t *testing.T) {
	// a message containing another one must be matched first
	for i := range rules {
		for j := i + 1; j < len(rules); j++ {
			require.NotContains(t, rules[j].msg, rules[i].msg,
				"rule %q is shadowed by earlier rule %q", rules[j].msg, rules[i].msg)
		}
	}
}
