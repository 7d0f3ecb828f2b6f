package score

import (
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/stretchr/testify/require"
)

// testInvoker answers every call with the same stack.
type testInvoker struct {
	stack []stackitem.Item

	method string
	params []any
}

func (x *testInvoker) Call(_ util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	x.method, x.params = operation, params
	return &result.Invoke{State: vmstate.Halt.String(), Stack: x.stack}, nil
}

var (
	rater = util.Uint160{1}
	ratee = util.Uint160{2}
)

func recordItem(id int64) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(id),
		stackitem.NewByteArray(rater.BytesBE()),
		stackitem.NewByteArray(ratee.BytesBE()),
		stackitem.Make(6),
		stackitem.Make(8),
		stackitem.Make(1_700_000_000_000),
		stackitem.Make(3),
	})
}

func TestContractReader_GetScore(t *testing.T) {
	inv := &testInvoker{stack: []stackitem.Item{recordItem(5)}}

	rec, err := NewReader(inv, util.Uint160{}).GetScore(big.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, "getScore", inv.method)
	require.Equal(t, &ScoreScoreRecord{
		ID:        big.NewInt(5),
		Rater:     rater,
		Ratee:     ratee,
		Dimension: big.NewInt(6),
		Value:     big.NewInt(8),
		Timestamp: big.NewInt(1_700_000_000_000),
		HandoffID: big.NewInt(3),
	}, rec)

	t.Run("wrong structure", func(t *testing.T) {
		inv.stack = []stackitem.Item{stackitem.NewStruct([]stackitem.Item{stackitem.Make(1)})}

		_, err := NewReader(inv, util.Uint160{}).GetScore(big.NewInt(1))
		require.Error(t, err)
	})
}

func TestContractReader_ScoresOf(t *testing.T) {
	inv := &testInvoker{stack: []stackitem.Item{
		stackitem.NewArray([]stackitem.Item{recordItem(1), recordItem(2)}),
	}}

	recs, err := NewReader(inv, util.Uint160{}).ScoresOf(ratee)
	require.NoError(t, err)
	require.Equal(t, []any{ratee}, inv.params)
	require.Len(t, recs, 2)
	require.EqualValues(t, 1, recs[0].ID.Int64())
	require.EqualValues(t, 2, recs[1].ID.Int64())
}

func TestScoreAssignedEventsFromApplicationLog(t *testing.T) {
	event := func(name string, items ...stackitem.Item) state.NotificationEvent {
		return state.NotificationEvent{Name: name, Item: stackitem.NewArray(items)}
	}

	log := &result.ApplicationLog{Executions: []state.Execution{{
		Events: []state.NotificationEvent{
			event("Transfer", stackitem.Null{}, stackitem.Null{}, stackitem.Make(1)),
			event("ScoreAssigned",
				stackitem.Make(7),
				stackitem.NewByteArray(rater.BytesBE()),
				stackitem.NewByteArray(ratee.BytesBE()),
				stackitem.Make(0),
				stackitem.Make(9),
				stackitem.Make(900_000_000),
			),
			event("ConfidenceChanged", stackitem.NewByteArray(rater.BytesBE()), stackitem.Make(88_0000_0000)),
		},
	}}}

	evs, err := ScoreAssignedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Equal(t, []*ScoreAssignedEvent{{
		ID:        big.NewInt(7),
		Rater:     rater,
		Ratee:     ratee,
		Dimension: big.NewInt(0),
		Value:     big.NewInt(9),
		Score:     big.NewInt(900_000_000),
	}}, evs)

	conf, err := ConfidenceChangedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, conf, 1)
	require.Equal(t, rater, conf[0].Party)
	require.EqualValues(t, 88_0000_0000, conf[0].Confidence.Int64())

	_, err = ScoreAssignedEventsFromApplicationLog(nil)
	require.Error(t, err)

	log.Executions[0].Events[1].Item = stackitem.NewArray([]stackitem.Item{stackitem.Make(1)})
	_, err = ScoreAssignedEventsFromApplicationLog(log)
	require.Error(t, err)
}
