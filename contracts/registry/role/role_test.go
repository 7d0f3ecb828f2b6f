package role

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdjacent(t *testing.T) {
	for _, tc := range []struct {
		buyer, seller int
		ok            bool
	}{
		{Factory, Supplier, true},
		{Distributor, Factory, true},
		{Retailer, Distributor, true},
		{Consumer, Retailer, true},
		{Supplier, None, false},
		{Consumer, Factory, false},
		{Supplier, Factory, false},
		{Factory, Factory, false},
		{Consumer + 1, Consumer, false},
	} {
		require.Equal(t, tc.ok, Adjacent(tc.buyer, tc.seller), "%s buys from %s", String(tc.buyer), String(tc.seller))
	}
}

func TestString(t *testing.T) {
	for r := Supplier; r <= Consumer; r++ {
		require.Equal(t, r, FromString(String(r)))
	}
	require.Equal(t, None, FromString("Farmer"))
	require.Equal(t, "None", String(0))
}

func TestChallengeable(t *testing.T) {
	require.False(t, Challengeable(None))
	require.False(t, Challengeable(Consumer))
	require.True(t, Challengeable(Factory))
	require.True(t, TracksConfidence(Retailer))
	require.False(t, TracksConfidence(Distributor))
}
