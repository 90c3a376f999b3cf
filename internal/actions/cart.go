package actions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/bot"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/models"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/service"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const tryOnURL = "https://sirpi-57.github.io/infinite-ai-jewelry-tryon/tryon.html"

// AddToCart resolves the product_idx entity against the currently displayed
// page and merges the row into the cart.
func (a *Actions) AddToCart(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	idxStr, ok := tr.EntityValue("product_idx")
	if !ok {
		d.Utter("Sorry, I couldn't understand which product you want to add. Please try again.")
		return nil
	}
	displayIdx, err := strconv.Atoi(idxStr)
	if err != nil {
		a.logger.Warn("Invalid product index", zap.String("product_idx", idxStr))
		d.Utter("Sorry, I couldn't identify the product you're trying to add. Please try again.")
		return nil
	}

	st := browseState(tr)
	view, err := a.browse.CurrentView(st)
	if err != nil {
		util.ActionsFailedTotal.WithLabelValues("add_to_cart").Inc()
		a.logger.Error("Failed to resolve displayed page", zap.Error(err))
		d.Utter("Sorry, I couldn't add this item to your cart. Please try again.")
		return nil
	}

	cart := cartFromTracker(tr)
	cart, item, err := a.carts.AddItem(cart, view, displayIdx)
	if err != nil {
		if errors.Is(err, service.ErrInvalidIndex) {
			a.logger.Warn("Cart add out of page bounds",
				zap.Int("product_idx", displayIdx),
				zap.Int("page", view.Page))
			d.Utter("Sorry, I couldn't find that product. Please try again.")
			return nil
		}
		a.logger.Error("Cart add failed", zap.Error(err))
		d.Utter("Sorry, I couldn't add this item to your cart. Please try again.")
		return nil
	}

	util.CartAddsTotal.Inc()
	a.publishProductAdded(ctx, tr, view, item)

	d.Utter(
		fmt.Sprintf("✅ Added %s to your cart!", item.ProductName),
		bot.Button{Title: "🛒 View Cart", Payload: "/view_cart"},
		bot.Button{Title: "🔄 Continue Shopping", Payload: "/continue_shopping"},
	)

	return []bot.Event{
		bot.SlotSet(models.SlotShoppingCart, models.EncodeCart(cart)),
		bot.SlotSet(models.SlotLastViewType, view.ViewType),
		bot.SlotSet(models.SlotLastPage, view.Page),
		bot.SlotSet(models.SlotShoppingContext, "product_browsing"),
	}
}

// ViewCart renders the itemized cart with per-line controls and the totals
// summary.
func (a *Actions) ViewCart(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	cart := cartFromTracker(tr)

	if len(cart) == 0 {
		d.Utter(
			"Your cart is empty. Would you like to explore products?",
			bot.Button{Title: "Explore Products", Payload: "/explore_products"},
			bot.Button{Title: "View Different Category", Payload: "/reset_category_flow"},
		)
		return nil
	}

	a.renderCart(d, cart)
	return []bot.Event{bot.SlotSet(models.SlotShoppingContext, "cart_viewing")}
}

func (a *Actions) renderCart(d *bot.Dispatcher, cart []models.CartItem) {
	totals := service.Totals(cart)

	var b strings.Builder
	fmt.Fprintf(&b, "🛒 Your Cart (%d items):\n\n", totals.ItemCount)

	var itemButtons []bot.Button
	for i, item := range cart {
		lineTotal := item.BasePrice * float64(item.Quantity)
		priceDisplay := fmt.Sprintf("₹%s", formatPrice(item.BasePrice))
		if item.DiscountedPrice != nil {
			lineTotal = *item.DiscountedPrice * float64(item.Quantity)
			priceDisplay = fmt.Sprintf("₹%s (₹%s original)", formatPrice(*item.DiscountedPrice), formatPrice(item.BasePrice))
		}

		fmt.Fprintf(&b, "%d. %s\n", i+1, item.ProductName)
		fmt.Fprintf(&b, "   Price: %s × %d = ₹%.2f\n\n", priceDisplay, item.Quantity, lineTotal)

		itemButtons = append(itemButtons,
			bot.Button{
				Title:   fmt.Sprintf("➕ Add More %s", item.ProductName),
				Payload: fmt.Sprintf(`/update_cart{"product_id": "%s", "action": "increase"}`, item.ProductID),
			},
			bot.Button{
				Title:   fmt.Sprintf("➖ Reduce %s", item.ProductName),
				Payload: fmt.Sprintf(`/update_cart{"product_id": "%s", "action": "decrease"}`, item.ProductID),
			},
			bot.Button{
				Title:   fmt.Sprintf("❌ Remove %s", item.ProductName),
				Payload: fmt.Sprintf(`/update_cart{"product_id": "%s", "action": "remove"}`, item.ProductID),
			},
		)
	}

	b.WriteString("📊 Cart Summary:\n")
	if totals.Savings > 0 {
		fmt.Fprintf(&b, "Original Total: ₹%.2f\n", totals.OriginalTotal)
		fmt.Fprintf(&b, "Final Total: ₹%.2f\n", totals.FinalTotal)
		fmt.Fprintf(&b, "Your Savings: ₹%.2f (%.1f%%)\n", totals.Savings, totals.SavingsPercent)
	} else {
		fmt.Fprintf(&b, "Total: ₹%.2f\n", totals.FinalTotal)
	}
	fmt.Fprintf(&b, "\nTry Your Choice: %s", tryOnURL)

	buttons := append(itemButtons,
		bot.Button{Title: "🛍️ Continue Shopping", Payload: "/continue_shopping"},
		bot.Button{Title: "🗑️ Clear Cart", Payload: "/clear_cart"},
		bot.Button{Title: "💳 Checkout", Payload: "/checkout"},
	)
	d.Utter(b.String(), buttons...)
}

// UpdateCart applies increase/decrease/remove to one cart line and
// re-renders the cart.
func (a *Actions) UpdateCart(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	productID, okID := tr.EntityValue("product_id")
	op, okOp := tr.EntityValue("action")
	if !okID || !okOp {
		d.Utter("Sorry, I couldn't update your cart. Please try again.")
		return nil
	}

	cart := cartFromTracker(tr)
	cart, item, err := a.carts.UpdateItem(cart, productID, op)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			d.Utter("Sorry, I couldn't find that item in your cart.")
			return nil
		}
		a.logger.Warn("Cart update failed", zap.Error(err))
		d.Utter("Sorry, I couldn't update your cart. Please try again.")
		return nil
	}

	util.CartUpdatesTotal.WithLabelValues(op).Inc()
	a.publishCartUpdated(ctx, tr, productID, op, len(cart))

	switch {
	case op == service.CartOpIncrease:
		d.Utter(fmt.Sprintf("✅ Added one more %s to your cart.", item.ProductName))
	case op == service.CartOpDecrease && item.Quantity == 0:
		d.Utter(fmt.Sprintf("❌ Removed %s from your cart (quantity reached zero).", item.ProductName))
	case op == service.CartOpDecrease:
		d.Utter(fmt.Sprintf("✅ Reduced quantity of %s in your cart.", item.ProductName))
	default:
		d.Utter(fmt.Sprintf("❌ Removed %s from your cart.", item.ProductName))
	}

	if len(cart) > 0 {
		a.renderCart(d, cart)
	}

	return []bot.Event{
		bot.SlotSet(models.SlotShoppingCart, models.EncodeCart(cart)),
		bot.SlotSet(models.SlotShoppingContext, "cart_viewing"),
	}
}

// ClearCart empties the cart unconditionally.
func (a *Actions) ClearCart(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	util.CartUpdatesTotal.WithLabelValues("clear").Inc()
	a.publishCartUpdated(ctx, tr, "", "clear", 0)

	d.Utter(
		"🗑️ Your cart has been cleared.",
		bot.Button{Title: "🛍️ Continue Shopping", Payload: "/continue_shopping"},
		bot.Button{Title: "🔍 Explore Categories", Payload: "/reset_category_flow"},
	)

	return []bot.Event{
		bot.SlotSet(models.SlotShoppingCart, models.EncodeCart(a.carts.Clear())),
		bot.SlotSet(models.SlotShoppingContext, nil),
	}
}

// Checkout simulates placing the order and clears the cart. Cart-clear is
// deliberately unconditional: it is not transactional with any downstream
// order step.
func (a *Actions) Checkout(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	cart := cartFromTracker(tr)

	if len(cart) == 0 {
		d.Utter(
			"Your cart is empty. Please add some items before checkout.",
			bot.Button{Title: "Explore Products", Payload: "/explore_products"},
			bot.Button{Title: "View Different Category", Payload: "/reset_category_flow"},
		)
		return nil
	}

	result := a.carts.Checkout(cart)

	util.CheckoutsTotal.Inc()
	util.CheckoutAmount.Observe(result.Totals.FinalTotal)
	a.publishCheckoutCompleted(ctx, tr, result)

	var b strings.Builder
	b.WriteString("🎉 Thank you for your order!\n\n")
	fmt.Fprintf(&b, "Order ID: %s\n", result.OrderID)
	fmt.Fprintf(&b, "Total Amount: ₹%.2f\n\n", result.Totals.FinalTotal)
	b.WriteString("This is a demonstration. In a real application, you would proceed to payment here.\n\n")
	b.WriteString("Your cart has been cleared. Would you like to continue shopping?")

	d.Utter(b.String(),
		bot.Button{Title: "Continue Shopping", Payload: "/reset_category_flow"},
		bot.Button{Title: "Track Order", Payload: fmt.Sprintf(`/track_order{"order_id": "%s"}`, result.OrderID)},
	)

	return []bot.Event{bot.SlotSet(models.SlotShoppingCart, models.EncodeCart(a.carts.Clear()))}
}

func (a *Actions) publishProductAdded(ctx context.Context, tr *bot.Tracker, view service.PageView, item models.CartItem) {
	event := &models.ProductAddedEvent{
		BaseEvent:    a.baseEvent(models.EventTypeProductAdded, tr),
		ProductID:    item.ProductID,
		ProductName:  item.ProductName,
		ViewType:     view.ViewType,
		Page:         view.Page,
		BasePrice:    item.BasePrice,
		CartQuantity: item.Quantity,
	}
	if err := a.publisher.PublishProductAdded(ctx, event); err != nil {
		a.logger.Warn("Failed to publish ProductAdded event", zap.Error(err))
	}
}

func (a *Actions) publishCartUpdated(ctx context.Context, tr *bot.Tracker, productID, op string, cartSize int) {
	event := &models.CartUpdatedEvent{
		BaseEvent: a.baseEvent(models.EventTypeCartUpdated, tr),
		ProductID: productID,
		Operation: op,
		CartSize:  cartSize,
	}
	if err := a.publisher.PublishCartUpdated(ctx, event); err != nil {
		a.logger.Warn("Failed to publish CartUpdated event", zap.Error(err))
	}
}

func (a *Actions) publishCheckoutCompleted(ctx context.Context, tr *bot.Tracker, result service.CheckoutResult) {
	event := &models.CheckoutCompletedEvent{
		BaseEvent:   a.baseEvent(models.EventTypeCheckoutCompleted, tr),
		OrderID:     result.OrderID,
		ItemCount:   result.Totals.ItemCount,
		FinalTotal:  result.Totals.FinalTotal,
		TotalSaving: result.Totals.Savings,
	}
	if err := a.publisher.PublishCheckoutCompleted(ctx, event); err != nil {
		a.logger.Warn("Failed to publish CheckoutCompleted event", zap.Error(err))
	}
}

func (a *Actions) baseEvent(eventType string, tr *bot.Tracker) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		SenderID:  tr.SenderID,
		Timestamp: time.Now(),
	}
}
