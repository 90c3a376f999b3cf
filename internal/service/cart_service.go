package service

import (
	"fmt"
	"math/rand"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/models"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/util"

	"go.uber.org/zap"
)

// Cart update operations.
const (
	CartOpIncrease = "increase"
	CartOpDecrease = "decrease"
	CartOpRemove   = "remove"
)

// CartTotals are derived values, recomputed on every view and never stored.
type CartTotals struct {
	ItemCount      int
	OriginalTotal  float64
	FinalTotal     float64
	Savings        float64
	SavingsPercent float64
}

// CheckoutResult is the outcome of a simulated checkout.
type CheckoutResult struct {
	OrderID string
	Totals  CartTotals
}

// CartService owns cart mutations. The cart itself lives in a session slot;
// every method takes the decoded cart and returns the next one.
type CartService struct {
	rng    *rand.Rand
	logger *zap.Logger
}

// NewCartService creates a cart service. The random source feeds checkout
// order ids and is injectable so tests can pin it.
func NewCartService(rng *rand.Rand) *CartService {
	return &CartService{
		rng:    rng,
		logger: util.GetLogger(),
	}
}

// AddItem adds the product at displayIdx to the cart. displayIdx is the
// 1-based index shown to the user; it must land inside the currently
// displayed page or the call fails with ErrInvalidIndex. Two rows with the
// same display name share one cart line regardless of product id, and the
// price fields are captured from the catalog row at add time.
func (s *CartService) AddItem(cart []models.CartItem, view PageView, displayIdx int) ([]models.CartItem, models.CartItem, error) {
	absolute := displayIdx - 1
	pageStart := view.Page * PageSize
	local := absolute - pageStart
	if local < 0 || local >= len(view.Rows) {
		return cart, models.CartItem{}, fmt.Errorf("%w: index %d, page %d holds %d rows",
			ErrInvalidIndex, displayIdx, view.Page, len(view.Rows))
	}

	row := view.Rows[local]
	productID := row.ProductID
	if productID == "" {
		// Catalog exports do not always carry an id column.
		productID = fmt.Sprintf("prod_%d", absolute)
	}

	for i := range cart {
		if cart[i].ProductName == row.ProductName {
			cart[i].Quantity++
			s.logger.Debug("Merged cart line",
				zap.String("product_name", row.ProductName),
				zap.Int("quantity", cart[i].Quantity))
			return cart, cart[i], nil
		}
	}

	item := models.CartItem{
		ProductID:       productID,
		ProductName:     row.ProductName,
		BasePrice:       row.BasePrice,
		DiscountedPrice: row.DiscountedPrice,
		Quantity:        1,
	}
	return append(cart, item), item, nil
}

// UpdateItem applies increase, decrease or remove to the line with the given
// product id. Decrease removes the line when its quantity reaches zero; a
// quantity of 0 is never persisted. An unknown id returns ErrItemNotFound.
func (s *CartService) UpdateItem(cart []models.CartItem, productID, op string) ([]models.CartItem, models.CartItem, error) {
	for i := range cart {
		if cart[i].ProductID != productID {
			continue
		}
		target := cart[i]
		switch op {
		case CartOpIncrease:
			cart[i].Quantity++
			return cart, cart[i], nil
		case CartOpDecrease:
			cart[i].Quantity--
			if cart[i].Quantity <= 0 {
				target.Quantity = 0
				return append(cart[:i], cart[i+1:]...), target, nil
			}
			return cart, cart[i], nil
		case CartOpRemove:
			return append(cart[:i], cart[i+1:]...), target, nil
		default:
			return cart, models.CartItem{}, fmt.Errorf("unknown cart operation %q", op)
		}
	}
	return cart, models.CartItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, productID)
}

// Clear empties the cart unconditionally.
func (s *CartService) Clear() []models.CartItem {
	return []models.CartItem{}
}

// Totals computes the derived price summary: original total over base
// prices, final total over discounted prices where present, and savings.
func Totals(cart []models.CartItem) CartTotals {
	t := CartTotals{}
	for _, item := range cart {
		t.ItemCount += item.Quantity
		t.OriginalTotal += item.BasePrice * float64(item.Quantity)
		if item.DiscountedPrice != nil {
			t.FinalTotal += *item.DiscountedPrice * float64(item.Quantity)
		} else {
			t.FinalTotal += item.BasePrice * float64(item.Quantity)
		}
	}
	t.Savings = t.OriginalTotal - t.FinalTotal
	if t.OriginalTotal > 0 {
		t.SavingsPercent = t.Savings / t.OriginalTotal * 100
	}
	return t
}

// Checkout computes the totals and mints an opaque order id. The caller
// clears the cart unconditionally afterwards; cart-clear is not transactional
// with any downstream order creation in this design.
func (s *CartService) Checkout(cart []models.CartItem) CheckoutResult {
	result := CheckoutResult{
		OrderID: fmt.Sprintf("ORD-%06d", 100000+s.rng.Intn(900000)),
		Totals:  Totals(cart),
	}
	s.logger.Info("Checkout completed",
		zap.String("order_id", result.OrderID),
		zap.Int("items", result.Totals.ItemCount),
		zap.Float64("final_total", result.Totals.FinalTotal))
	return result
}
