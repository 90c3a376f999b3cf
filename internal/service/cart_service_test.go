package service

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCartService() *CartService {
	return NewCartService(rand.New(rand.NewSource(1)))
}

func discounted(v float64) *float64 {
	return &v
}

func firstPageView() PageView {
	rows := []models.CatalogRow{
		{ProductID: "GN-001", ProductName: "Gold Necklace 1", BasePrice: 1000},
		{ProductID: "GN-002", ProductName: "Gold Necklace 2", BasePrice: 2000, DiscountedPrice: discounted(1600), HasDiscount: true},
		{ProductID: "GN-003", ProductName: "Gold Necklace 3", BasePrice: 3000},
	}
	return PageView{Rows: rows, Page: 0, TotalPages: 1, TotalCount: len(rows), ViewType: models.ViewRegular}
}

func TestAddItemNewLine(t *testing.T) {
	s := testCartService()

	cart, item, err := s.AddItem(nil, firstPageView(), 2)
	require.NoError(t, err)

	assert.Equal(t, "GN-002", item.ProductID)
	assert.Equal(t, "Gold Necklace 2", item.ProductName)
	assert.Equal(t, 1, item.Quantity)
	require.Len(t, cart, 1)
	require.NotNil(t, cart[0].DiscountedPrice)
	assert.Equal(t, 1600.0, *cart[0].DiscountedPrice)
}

func TestAddItemMergesByName(t *testing.T) {
	s := testCartService()
	view := firstPageView()

	cart, _, err := s.AddItem(nil, view, 1)
	require.NoError(t, err)
	cart, item, err := s.AddItem(cart, view, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, item.Quantity)
	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestAddItemOnLaterPage(t *testing.T) {
	s := testCartService()

	view := firstPageView()
	view.Page = 1

	// Display indices on page 1 start at 6.
	cart, item, err := s.AddItem(nil, view, 6)
	require.NoError(t, err)

	assert.Equal(t, "GN-001", item.ProductID)
	assert.Len(t, cart, 1)
}

func TestAddItemIndexOutsidePage(t *testing.T) {
	s := testCartService()

	_, _, err := s.AddItem(nil, firstPageView(), 4)
	assert.ErrorIs(t, err, ErrInvalidIndex)

	_, _, err = s.AddItem(nil, firstPageView(), 0)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestUpdateItemIncrease(t *testing.T) {
	s := testCartService()
	cart := []models.CartItem{{ProductID: "GN-001", ProductName: "Gold Necklace 1", BasePrice: 1000, Quantity: 1}}

	cart, item, err := s.UpdateItem(cart, "GN-001", CartOpIncrease)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestUpdateItemDecreaseToZeroRemovesLine(t *testing.T) {
	s := testCartService()
	cart := []models.CartItem{
		{ProductID: "GN-001", ProductName: "Gold Necklace 1", BasePrice: 1000, Quantity: 1},
		{ProductID: "GN-002", ProductName: "Gold Necklace 2", BasePrice: 2000, Quantity: 3},
	}

	cart, item, err := s.UpdateItem(cart, "GN-001", CartOpDecrease)
	require.NoError(t, err)

	assert.Equal(t, 0, item.Quantity)
	require.Len(t, cart, 1)
	assert.Equal(t, "GN-002", cart[0].ProductID)
}

func TestUpdateItemRemove(t *testing.T) {
	s := testCartService()
	cart := []models.CartItem{
		{ProductID: "GN-001", ProductName: "Gold Necklace 1", BasePrice: 1000, Quantity: 5},
	}

	cart, item, err := s.UpdateItem(cart, "GN-001", CartOpRemove)
	require.NoError(t, err)
	assert.Equal(t, "GN-001", item.ProductID)
	assert.Empty(t, cart)
}

func TestUpdateItemUnknownID(t *testing.T) {
	s := testCartService()

	_, _, err := s.UpdateItem(nil, "nope", CartOpIncrease)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestTotals(t *testing.T) {
	cart := []models.CartItem{
		{ProductID: "a", ProductName: "A", BasePrice: 100, Quantity: 1},
		{ProductID: "b", ProductName: "B", BasePrice: 100, DiscountedPrice: discounted(60), Quantity: 1},
	}

	totals := Totals(cart)

	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 200.0, totals.OriginalTotal)
	assert.Equal(t, 160.0, totals.FinalTotal)
	assert.Equal(t, 40.0, totals.Savings)
	assert.Equal(t, 20.0, totals.SavingsPercent)
}

func TestTotalsEmptyCart(t *testing.T) {
	totals := Totals(nil)
	assert.Equal(t, 0, totals.ItemCount)
	assert.Equal(t, 0.0, totals.SavingsPercent)
}

func TestCheckoutOrderIDFormat(t *testing.T) {
	s := testCartService()
	cart := []models.CartItem{
		{ProductID: "a", ProductName: "A", BasePrice: 100, Quantity: 2},
	}

	result := s.Checkout(cart)

	assert.Regexp(t, regexp.MustCompile(`^ORD-\d{6}$`), result.OrderID)
	assert.Equal(t, 2, result.Totals.ItemCount)
	assert.Equal(t, 200.0, result.Totals.FinalTotal)
}
