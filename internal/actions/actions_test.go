package actions

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/bot"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/broker"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/models"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/service"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *store.Catalog {
	var rows []models.CatalogRow
	for i := 1; i <= 8; i++ {
		price := float64(1000 * i)
		row := models.CatalogRow{
			MainCategory: "Gold",
			SubCategory:  "Necklaces",
			ProductID:    fmt.Sprintf("GN-%03d", i),
			ProductName:  fmt.Sprintf("Gold Necklace %d", i),
			Definition:   "A fine necklace",
			BasePrice:    price,
			DeliveryTime: "5-7 days",
			IsBestseller: i <= 6,
		}
		if i%2 == 0 {
			discounted := price * 0.9
			row.DiscountedPrice = &discounted
			row.HasDiscount = true
		}
		rows = append(rows, row)
	}
	return store.NewCatalog(rows)
}

func testActions() *Actions {
	return New(
		service.NewBrowseService(testCatalog()),
		service.NewCartService(rand.New(rand.NewSource(1))),
		service.NewTrackingService(rand.New(rand.NewSource(1)), func() time.Time {
			return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
		}),
		service.NewStylistClient("http://127.0.0.1:1", time.Second, time.Second, nil, 0),
		broker.NewEventPublisher(nil),
	)
}

func goldTracker() *bot.Tracker {
	return &bot.Tracker{
		SenderID: "user-1",
		Slots: map[string]any{
			models.SlotMainCategory: "Gold",
			models.SlotSubCategory:  "Necklaces",
		},
	}
}

func slotValue(t *testing.T, events []bot.Event, name string) any {
	t.Helper()
	for _, ev := range events {
		if ev["event"] == "slot" && ev["name"] == name {
			return ev["value"]
		}
	}
	t.Fatalf("no slot event for %q", name)
	return nil
}

func hasSlotEvent(events []bot.Event, name string) bool {
	for _, ev := range events {
		if ev["event"] == "slot" && ev["name"] == name {
			return true
		}
	}
	return false
}

func TestRegistryNames(t *testing.T) {
	registry := testActions().Registry()
	assert.Len(t, registry, 20)
	for _, name := range []string{
		"action_show_bestsellers",
		"action_show_more",
		"action_add_to_cart",
		"action_checkout",
		"action_show_order_status",
		"action_jewelry_styling_advice",
		"action_analyze_review_sentiment",
		"action_handle_review_image",
	} {
		assert.Contains(t, registry, name)
	}
}

func TestShowBestsellersFirstPage(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	events := a.ShowBestsellers(context.Background(), goldTracker(), d)

	msgs := d.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Showing 1-5 of 6 bestsellers:")
	assert.Contains(t, msgs[0].Text, "Gold Necklace 1")

	require.NotEmpty(t, msgs[0].Buttons)
	assert.Equal(t, `/add_to_cart{"product_idx": "1"}`, msgs[0].Buttons[0].Payload)

	assert.Equal(t, 0, slotValue(t, events, models.SlotCurrentPage))
	assert.Equal(t, models.ViewBestseller, slotValue(t, events, models.SlotViewType))
	assert.Equal(t, "product_browsing", slotValue(t, events, models.SlotShoppingContext))
}

func TestShowMoreAdvances(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	tr := goldTracker()
	tr.Slots[models.SlotViewType] = models.ViewRegular
	tr.Slots[models.SlotCurrentPage] = float64(0)

	events := a.ShowMore(context.Background(), tr, d)

	msgs := d.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Showing 6-8 of 8 products:")
	assert.Equal(t, 1, slotValue(t, events, models.SlotCurrentPage))
}

func TestShowMoreAtEndOfResults(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	tr := goldTracker()
	tr.Slots[models.SlotViewType] = models.ViewRegular
	tr.Slots[models.SlotCurrentPage] = float64(1)

	events := a.ShowMore(context.Background(), tr, d)

	msgs := d.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "You've seen all the available products in this category.")
	assert.Equal(t, 1, slotValue(t, events, models.SlotCurrentPage))
}

func TestSinglePageViewGetsExhaustedSuffix(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	// 4 discounted rows fit on one page.
	events := a.ShowDiscounted(context.Background(), goldTracker(), d)

	msgs := d.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Showing 1-4 of 4 discounted products:")
	assert.Contains(t, msgs[0].Text, "You've seen all the available discounted products in this category.")
	assert.Equal(t, models.ViewDiscount, slotValue(t, events, models.SlotViewType))
}

func TestResetCategoryFlowClearsSlots(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	events := a.ResetCategoryFlow(context.Background(), goldTracker(), d)

	assert.Nil(t, slotValue(t, events, models.SlotMainCategory))
	assert.Nil(t, slotValue(t, events, models.SlotSubCategory))
	assert.Nil(t, slotValue(t, events, models.SlotViewType))
	assert.Equal(t, 0, slotValue(t, events, models.SlotCurrentPage))
	assert.Equal(t, "explore_products", slotValue(t, events, models.SlotIntent))
}

func TestContinueShoppingResumesPage(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	tr := goldTracker()
	tr.Slots[models.SlotViewType] = models.ViewRegular
	tr.Slots[models.SlotCurrentPage] = float64(1)

	events := a.ContinueShopping(context.Background(), tr, d)

	msgs := d.Messages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Text, "Returning to where you left off")
	assert.Contains(t, msgs[1].Text, "Showing 6-8 of 8 products:")
	assert.Equal(t, 1, slotValue(t, events, models.SlotCurrentPage))
}

func TestContinueShoppingNoticesStalePage(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	// Four discounted rows fit on one page, so a persisted page 3 no
	// longer exists and the resume lands on the first page.
	tr := goldTracker()
	tr.Slots[models.SlotViewType] = models.ViewDiscount
	tr.Slots[models.SlotCurrentPage] = float64(3)

	events := a.ContinueShopping(context.Background(), tr, d)

	msgs := d.Messages()
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[1].Text, "No products found on this page. Showing the first page instead.")
	assert.Equal(t, 0, slotValue(t, events, models.SlotCurrentPage))
}

func TestContinueShoppingWithoutCategoryResets(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	events := a.ContinueShopping(context.Background(), &bot.Tracker{Slots: map[string]any{}}, d)

	require.NotEmpty(t, d.Messages())
	assert.Nil(t, slotValue(t, events, models.SlotMainCategory))
}

func TestAddToCartStoresItem(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	tr := goldTracker()
	tr.Slots[models.SlotViewType] = models.ViewRegular
	tr.LatestMessage.Entities = []bot.Entity{{Entity: "product_idx", Value: "2"}}

	events := a.AddToCart(context.Background(), tr, d)

	msgs := d.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Added Gold Necklace 2 to your cart!")

	raw, ok := slotValue(t, events, models.SlotShoppingCart).(string)
	require.True(t, ok)
	cart := models.DecodeCart(raw)
	require.Len(t, cart, 1)
	assert.Equal(t, "GN-002", cart[0].ProductID)
	assert.Equal(t, 1, cart[0].Quantity)
}

func TestAddToCartIndexOutsidePage(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	tr := goldTracker()
	tr.LatestMessage.Entities = []bot.Entity{{Entity: "product_idx", Value: "99"}}

	events := a.AddToCart(context.Background(), tr, d)

	assert.Nil(t, events)
	require.Len(t, d.Messages(), 1)
	assert.Contains(t, d.Messages()[0].Text, "couldn't find that product")
}

func TestViewCartEmpty(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	events := a.ViewCart(context.Background(), goldTracker(), d)

	assert.Nil(t, events)
	require.Len(t, d.Messages(), 1)
	assert.Contains(t, d.Messages()[0].Text, "Your cart is empty")
}

func TestViewCartShowsSavings(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	discounted := 900.0
	tr := goldTracker()
	tr.Slots[models.SlotShoppingCart] = models.EncodeCart([]models.CartItem{
		{ProductID: "GN-002", ProductName: "Gold Necklace 2", BasePrice: 1000, DiscountedPrice: &discounted, Quantity: 2},
	})

	events := a.ViewCart(context.Background(), tr, d)

	msgs := d.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Your Cart (2 items)")
	assert.Contains(t, msgs[0].Text, "Your Savings: ₹200.00 (10.0%)")
	assert.Contains(t, msgs[0].Text, tryOnURL)
	assert.Equal(t, "cart_viewing", slotValue(t, events, models.SlotShoppingContext))
}

func TestUpdateCartDecreaseToZero(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	tr := goldTracker()
	tr.Slots[models.SlotShoppingCart] = models.EncodeCart([]models.CartItem{
		{ProductID: "GN-001", ProductName: "Gold Necklace 1", BasePrice: 1000, Quantity: 1},
	})
	tr.LatestMessage.Entities = []bot.Entity{
		{Entity: "product_id", Value: "GN-001"},
		{Entity: "action", Value: "decrease"},
	}

	events := a.UpdateCart(context.Background(), tr, d)

	require.NotEmpty(t, d.Messages())
	assert.Contains(t, d.Messages()[0].Text, "quantity reached zero")

	raw, _ := slotValue(t, events, models.SlotShoppingCart).(string)
	assert.Empty(t, models.DecodeCart(raw))
}

func TestCheckoutClearsCart(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	tr := goldTracker()
	tr.Slots[models.SlotShoppingCart] = models.EncodeCart([]models.CartItem{
		{ProductID: "GN-001", ProductName: "Gold Necklace 1", BasePrice: 1000, Quantity: 2},
	})

	events := a.Checkout(context.Background(), tr, d)

	msgs := d.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Thank you for your order!")
	assert.Regexp(t, `Order ID: ORD-\d{6}`, msgs[0].Text)

	raw, _ := slotValue(t, events, models.SlotShoppingCart).(string)
	assert.Empty(t, models.DecodeCart(raw))
}

func TestCheckoutEmptyCart(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	events := a.Checkout(context.Background(), goldTracker(), d)

	assert.Nil(t, events)
	require.Len(t, d.Messages(), 1)
	assert.Contains(t, d.Messages()[0].Text, "cart is empty")
}

func TestValidateOrderIDFromEntity(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	tr := goldTracker()
	tr.LatestMessage.Entities = []bot.Entity{{Entity: "order_id", Value: "ORD-123456"}}

	events := a.ValidateOrderID(context.Background(), tr, d)
	assert.Equal(t, "ORD-123456", slotValue(t, events, models.SlotOrderID))
}

func TestValidateOrderIDFromText(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	tr := goldTracker()
	tr.LatestMessage.Text = "track my order 555123"

	events := a.ValidateOrderID(context.Background(), tr, d)
	assert.Equal(t, "ORD-555123", slotValue(t, events, models.SlotOrderID))
}

func TestValidateOrderIDNoDigits(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	tr := goldTracker()
	tr.LatestMessage.Text = "I lost my order number"

	events := a.ValidateOrderID(context.Background(), tr, d)

	assert.False(t, hasSlotEvent(events, models.SlotOrderID))
	require.Len(t, d.Messages(), 1)
	assert.NotEmpty(t, d.Messages()[0].Buttons)
}

func TestShowOrderStatusTimeline(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	tr := goldTracker()
	tr.Slots[models.SlotOrderID] = "ORD-123456"

	events := a.ShowOrderStatus(context.Background(), tr, d)

	msgs := d.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Order Details")
	assert.Contains(t, msgs[0].Text, "ORD-123456")
	assert.Contains(t, msgs[0].Text, "Order Timeline")
	assert.Contains(t, msgs[0].Text, "Order Placed")
	assert.Contains(t, msgs[0].Text, "Delivered")

	require.True(t, hasSlotEvent(events, models.SlotOrderDetails))
}

func TestShowOrderDetailsFromSlot(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	record := service.NewTrackingService(rand.New(rand.NewSource(2)), nil).GenerateRecord("ORD-777777")

	tr := goldTracker()
	tr.Slots[models.SlotOrderDetails] = record

	events := a.ShowOrderDetails(context.Background(), tr, d)

	assert.Nil(t, events)
	msgs := d.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "ORD-777777")
	assert.Contains(t, msgs[0].Text, "Credit Card (ending in ****1234)")
	assert.Contains(t, msgs[0].Text, "EXP123456789")
}

func TestReportIssue(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	tr := goldTracker()
	tr.Slots[models.SlotOrderID] = "ORD-123456"

	events := a.ReportIssue(context.Background(), tr, d)

	msgs := d.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Issue Reported Successfully")
	assert.Contains(t, msgs[0].Text, "support@infiniteai.in")

	ref, ok := slotValue(t, events, models.SlotIssueReference).(string)
	require.True(t, ok)
	assert.Len(t, ref, 8)
}

func TestStylingAdviceUpstreamDown(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	tr := goldTracker()
	tr.LatestMessage.Text = "what earrings suit a round face?"

	events := a.StylingAdvice(context.Background(), tr, d)

	assert.Nil(t, events)
	msgs := d.Messages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Text, "Let me look up some jewelry styling advice")
	assert.Contains(t, msgs[1].Text, "having trouble connecting")
}

func TestInitializeStylingUpstreamDown(t *testing.T) {
	a := testActions()
	d := bot.NewDispatcher()

	events := a.InitializeStyling(context.Background(), goldTracker(), d)

	assert.Equal(t, false, slotValue(t, events, models.SlotStylingReady))
}

func TestAnalyzeReviewSentiment(t *testing.T) {
	a := testActions()

	d := bot.NewDispatcher()
	tr := goldTracker()
	tr.LatestMessage.Text = "Absolutely love it, the finish is perfect"
	events := a.AnalyzeReviewSentiment(context.Background(), tr, d)
	assert.Equal(t, "positive", slotValue(t, events, models.SlotReviewSentiment))
	assert.Contains(t, d.Messages()[0].Text, "Thank you so much")

	d = bot.NewDispatcher()
	tr = goldTracker()
	tr.LatestMessage.Text = "The clasp arrived broken, terrible quality"
	events = a.AnalyzeReviewSentiment(context.Background(), tr, d)
	assert.Equal(t, "negative", slotValue(t, events, models.SlotReviewSentiment))
	assert.Contains(t, d.Messages()[0].Text, "honest feedback")
}

func TestHandleReviewImage(t *testing.T) {
	a := testActions()

	d := bot.NewDispatcher()
	events := a.HandleReviewImage(context.Background(), goldTracker(), d)

	assert.Nil(t, events)
	require.Len(t, d.Messages(), 2)
	assert.Contains(t, d.Messages()[0].Text, "share an image with your review")
	assert.Contains(t, d.Messages()[1].Text, "review has been submitted")
}
