package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCartMalformed(t *testing.T) {
	assert.Empty(t, DecodeCart(""))
	assert.Empty(t, DecodeCart("not json"))
	assert.Empty(t, DecodeCart(`{"oops": "object"}`))
	assert.Empty(t, DecodeCart("null"))
}

func TestCartRoundTrip(t *testing.T) {
	discounted := 800.0
	cart := []CartItem{
		{ProductID: "GN-001", ProductName: "Gold Necklace", BasePrice: 1000, DiscountedPrice: &discounted, Quantity: 2},
		{ProductID: "SR-001", ProductName: "Silver Ring", BasePrice: 500, Quantity: 1},
	}

	decoded := DecodeCart(EncodeCart(cart))
	require.Len(t, decoded, 2)
	assert.Equal(t, cart[0].ProductName, decoded[0].ProductName)
	require.NotNil(t, decoded[0].DiscountedPrice)
	assert.Equal(t, 800.0, *decoded[0].DiscountedPrice)
	assert.Nil(t, decoded[1].DiscountedPrice)
}

func TestEncodeCartNil(t *testing.T) {
	assert.Equal(t, "[]", EncodeCart(nil))
}

func TestResolveViewType(t *testing.T) {
	assert.Equal(t, ViewRegular, BrowsingState{}.ResolveViewType())
	assert.Equal(t, ViewDiscount, BrowsingState{LastViewType: ViewDiscount}.ResolveViewType())
	assert.Equal(t, ViewBestseller, BrowsingState{ViewType: ViewBestseller, LastViewType: ViewDiscount}.ResolveViewType())
}
