package dimension

import (
	"testing"

	"github.com/provena-labs/provena-contract/contracts/registry/role"
	"github.com/stretchr/testify/require"
)

func TestOf(t *testing.T) {
	require.Equal(t, []int{Trust, DeliverySpeed, MaterialQuality}, Of(role.Supplier))
	require.Equal(t, []int{ProductQuality, Warranty, EcoRating}, Of(role.Factory))
	require.Equal(t, []int{Packaging, Transparency, Accuracy}, Of(role.Distributor))
	require.Equal(t, []int{Delivery, PriceFairness, ReturnPolicy}, Of(role.Retailer))
	require.Empty(t, Of(role.Consumer))
	require.Empty(t, Of(role.None))

	total := 0
	for r := role.Supplier; r <= role.Consumer; r++ {
		total += len(Of(r))
	}
	require.Equal(t, Count, total)
}

func TestAllowed(t *testing.T) {
	allowed := map[[2]int]bool{
		{role.Factory, role.Supplier}:     true,
		{role.Distributor, role.Factory}:  true,
		{role.Retailer, role.Distributor}: true,
		{role.Consumer, role.Retailer}:    true,
	}

	for rater := role.None; rater <= role.Consumer; rater++ {
		for ratee := role.None; ratee <= role.Consumer; ratee++ {
			for d := 0; d < Count; d++ {
				exp := allowed[[2]int{rater, ratee}] && Owner(d) == ratee
				require.Equal(t, exp, Allowed(rater, ratee, d, false),
					"rater %s, ratee %s, dimension %s", role.String(rater), role.String(ratee), String(d))
			}
		}
	}

	t.Run("traced", func(t *testing.T) {
		for _, d := range Of(role.Factory) {
			require.False(t, Allowed(role.Consumer, role.Factory, d, false))
			require.True(t, Allowed(role.Consumer, role.Factory, d, true))
		}
		require.False(t, Allowed(role.Consumer, role.Factory, Delivery, true))
		require.False(t, Allowed(role.Retailer, role.Factory, ProductQuality, true))
		require.True(t, Allowed(role.Factory, role.Supplier, Trust, true))
	})

	t.Run("out of range", func(t *testing.T) {
		require.False(t, Allowed(role.Factory, role.Supplier, -1, false))
		require.False(t, Allowed(role.Factory, role.Supplier, Count, false))
		require.Equal(t, role.None, Owner(Count))
	})
}

func TestString(t *testing.T) {
	for d := 0; d < Count; d++ {
		require.Equal(t, d, FromString(String(d)))
	}
	require.Equal(t, -1, FromString("Speed"))
	require.Equal(t, "Unknown", String(42))
}
