package watchlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func TestEffectiveDropDerivedFromPrices(t *testing.T) {
	d, ok := EffectiveDrop(WatchedItem{PreviousPrice: price(5.00), LastPrice: price(3.50)})
	require.True(t, ok)
	assert.InDelta(t, 1.50, d, 1e-9)
}

func TestEffectiveDropClampsPriceRise(t *testing.T) {
	d, ok := EffectiveDrop(WatchedItem{PreviousPrice: price(3.00), LastPrice: price(5.00)})
	require.True(t, ok)
	assert.Zero(t, d, "a price rise is a drop of zero, never negative")
}

func TestEffectiveDropServerValueIsAuthoritative(t *testing.T) {
	item := WatchedItem{
		PriceDrop:     price(2.00),
		PreviousPrice: price(10.00),
		LastPrice:     price(1.00), // would derive 9.00
	}
	d, ok := EffectiveDrop(item)
	require.True(t, ok)
	assert.InDelta(t, 2.00, d, 1e-9)
}

func TestEffectiveDropServerZeroIsStillAuthoritative(t *testing.T) {
	d, ok := EffectiveDrop(WatchedItem{PriceDrop: price(0), PreviousPrice: price(5), LastPrice: price(3)})
	require.True(t, ok)
	assert.Zero(t, d)
}

func TestEffectiveDropUnknownWhenNoData(t *testing.T) {
	_, ok := EffectiveDrop(WatchedItem{})
	assert.False(t, ok, "missing data means unknown, not a drop of zero")

	_, ok = EffectiveDrop(WatchedItem{LastPrice: price(3.50)})
	assert.False(t, ok, "one price alone is not enough to derive a drop")
}

func TestWithPositiveDropFilters(t *testing.T) {
	items := []WatchedItem{
		{ItemID: "drop", PriceDrop: price(1.50)},
		{ItemID: "flat", PriceDrop: price(0)},
		{ItemID: "unknown"},
		{ItemID: "derived", PreviousPrice: price(4), LastPrice: price(2)},
	}

	out := WithPositiveDrop(items)

	require.Len(t, out, 2)
	assert.Equal(t, "drop", out[0].ItemID)
	assert.Equal(t, "derived", out[1].ItemID)
}

func TestBiggestDropFirstWinsOnTie(t *testing.T) {
	items := []WatchedItem{
		{ItemID: "a", PriceDrop: price(1.50)},
		{ItemID: "b", PriceDrop: price(0)},
		{ItemID: "c", PriceDrop: price(3.00)},
		{ItemID: "d", PriceDrop: price(3.00)},
	}

	best, ok := BiggestDrop(items)

	require.True(t, ok)
	assert.Equal(t, "c", best.ItemID)
}

func TestBiggestDropEmptyInput(t *testing.T) {
	_, ok := BiggestDrop(nil)
	assert.False(t, ok)
}

func TestBiggestDropIgnoresUnknownAndZero(t *testing.T) {
	items := []WatchedItem{
		{ItemID: "unknown"},
		{ItemID: "flat", PriceDrop: price(0)},
	}
	_, ok := BiggestDrop(items)
	assert.False(t, ok)
}
