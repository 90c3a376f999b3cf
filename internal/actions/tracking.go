package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/bot"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/models"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/service"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/util"

	"go.uber.org/zap"
)

var statusEmoji = map[string]string{
	"Order Placed":       "📝",
	"Payment Confirmed":  "💰",
	"Processing":         "⚙️",
	"Ready for Shipment": "📦",
	"Shipped":            "🚚",
	"Out for Delivery":   "🛵",
	"Delivered":          "✅",
}

// InitiateOrderTracking clears any prior tracking state and asks for an
// order id.
func (a *Actions) InitiateOrderTracking(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	return []bot.Event{
		bot.SlotSet(models.SlotOrderID, nil),
		bot.SlotSet(models.SlotOrderDetails, nil),
		bot.FollowupAction("utter_ask_order_id"),
	}
}

// ValidateOrderID resolves an order id from the order_id entity, falling
// back to digits in the raw message text. Any id is accepted; the tracking
// stub has no real orders to check against.
func (a *Actions) ValidateOrderID(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	orderID, ok := tr.EntityValue("order_id")
	if !ok {
		orderID, ok = service.NormalizeOrderID(tr.LatestMessage.Text)
	}
	if !ok {
		d.Utter(
			"Please select one of the sample order IDs, or enter a valid order number.",
			bot.Button{Title: "Track ORD-123456", Payload: `/provide_order_id{"order_id": "ORD-123456"}`},
			bot.Button{Title: "Track ORD-987654", Payload: `/provide_order_id{"order_id": "ORD-987654"}`},
			bot.Button{Title: "Back to Main Menu", Payload: "/greet"},
		)
		return []bot.Event{bot.FollowupAction("utter_ask_order_id")}
	}

	return []bot.Event{bot.SlotSet(models.SlotOrderID, orderID)}
}

// ShowOrderStatus renders a synthetic status timeline for the tracked order.
func (a *Actions) ShowOrderStatus(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	orderID := tr.StringSlot(models.SlotOrderID)
	if orderID == "" {
		d.Utter(
			"I don't have a valid order ID to track. Let's try again.",
			bot.Button{Title: "Track Order", Payload: "/track_order"},
			bot.Button{Title: "Back to Main Menu", Payload: "/greet"},
		)
		return []bot.Event{bot.FollowupAction("utter_ask_order_id")}
	}

	record := a.tracking.GenerateRecord(orderID)

	util.OrdersTrackedTotal.Inc()
	a.publishOrderTracked(ctx, tr, record)

	var b strings.Builder
	fmt.Fprintf(&b, "📋 *Order Details* (ID: %s)\n\n", record.OrderID)
	fmt.Fprintf(&b, "*Product:* %s\n", record.Product)
	fmt.Fprintf(&b, "*Amount:* ₹%d\n", record.Amount)
	fmt.Fprintf(&b, "*Shipping Address:* %s\n", record.ShippingAddress)
	fmt.Fprintf(&b, "*Current Status:* %s\n", record.CurrentStatus)
	fmt.Fprintf(&b, "*Estimated Delivery:* %s\n\n", record.EstimatedDelivery)

	b.WriteString("📊 *Order Timeline:*\n\n")
	for _, step := range record.StatusTimeline {
		emoji := statusEmoji[step.Status]
		if step.Completed {
			fmt.Fprintf(&b, "%s %s: ✅ %s\n", emoji, step.Status, step.Date)
		} else {
			fmt.Fprintf(&b, "%s %s: ⏳ %s (Estimated)\n", emoji, step.Status, step.Date)
		}
	}

	d.Utter(b.String(),
		bot.Button{Title: "View Order Details", Payload: "/view_order_details"},
		bot.Button{Title: "Report an Issue", Payload: "/report_issue"},
		bot.Button{Title: "Track Another Order", Payload: "/track_order"},
		bot.Button{Title: "Back to Main Menu", Payload: "/greet"},
	)

	return []bot.Event{bot.SlotSet(models.SlotOrderDetails, record)}
}

// ShowOrderDetails renders the stored record with payment and shipping
// blocks.
func (a *Actions) ShowOrderDetails(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	record, ok := orderRecordFromTracker(tr)
	if !ok {
		d.Utter(
			"I don't have any order details to display. Please try tracking your order again.",
			bot.Button{Title: "Track Order", Payload: "/track_order"},
			bot.Button{Title: "Back to Main Menu", Payload: "/greet"},
		)
		return nil
	}

	orderDate := ""
	if len(record.StatusTimeline) > 0 {
		orderDate = record.StatusTimeline[0].Date
	}

	var b strings.Builder
	b.WriteString("📦 *Detailed Order Information*\n\n")
	fmt.Fprintf(&b, "*Order ID:* %s\n", record.OrderID)
	fmt.Fprintf(&b, "*Product:* %s\n", record.Product)
	fmt.Fprintf(&b, "*Amount:* ₹%d\n", record.Amount)
	fmt.Fprintf(&b, "*Order Date:* %s\n", orderDate)
	fmt.Fprintf(&b, "*Current Status:* %s\n", record.CurrentStatus)
	fmt.Fprintf(&b, "*Shipping Address:* %s\n", record.ShippingAddress)
	fmt.Fprintf(&b, "*Estimated Delivery:* %s\n\n", record.EstimatedDelivery)

	b.WriteString("*Payment Information:*\n")
	b.WriteString("Method: Credit Card (ending in ****1234)\n")
	fmt.Fprintf(&b, "Amount: ₹%d\n", record.Amount)
	b.WriteString("Status: Paid\n\n")

	b.WriteString("*Shipping Information:*\n")
	b.WriteString("Courier: Express Delivery Services\n")
	b.WriteString("Tracking Number: EXP123456789\n\n")

	b.WriteString("*Product Care:* All jewelry items come with a care instruction card. Please follow the instructions to maintain your item's appearance.\n")

	d.Utter(b.String(),
		bot.Button{Title: "Track Status", Payload: fmt.Sprintf(`/track_order{"order_id": "%s"}`, record.OrderID)},
		bot.Button{Title: "Report an Issue", Payload: "/report_issue"},
		bot.Button{Title: "Track Another Order", Payload: "/track_order"},
		bot.Button{Title: "Back to Main Menu", Payload: "/greet"},
	)

	return nil
}

// ReportIssue logs an issue against the tracked order and hands back a
// reference number.
func (a *Actions) ReportIssue(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	orderID := ""
	if record, ok := orderRecordFromTracker(tr); ok {
		orderID = record.OrderID
	}
	if orderID == "" {
		orderID = tr.StringSlot(models.SlotOrderID)
	}
	if orderID == "" {
		d.Utter(
			"I need an order ID to report an issue. Please provide your order ID first.",
			bot.Button{Title: "Track Order", Payload: "/track_order"},
		)
		return nil
	}

	reference := a.tracking.IssueReference()

	var b strings.Builder
	b.WriteString("🔔 *Issue Reported Successfully*\n\n")
	fmt.Fprintf(&b, "Thank you for bringing this to our attention. Your issue with order %s has been logged.\n\n", orderID)
	fmt.Fprintf(&b, "*Reference Number:* %s\n\n", reference)
	b.WriteString("Our customer service team will review your order and contact you within 24 hours.\n\n")
	b.WriteString("For immediate assistance, you can contact our customer support at:\n")
	b.WriteString("📞 +91-9994481257\n")
	b.WriteString("📧 support@infiniteai.in\n")

	d.Utter(b.String(),
		bot.Button{Title: "Track Order Status", Payload: fmt.Sprintf(`/track_order{"order_id": "%s"}`, orderID)},
		bot.Button{Title: "Track Another Order", Payload: "/track_order"},
		bot.Button{Title: "Back to Main Menu", Payload: "/greet"},
	)

	return []bot.Event{bot.SlotSet(models.SlotIssueReference, reference)}
}

// orderRecordFromTracker decodes the order_details slot, which arrives as a
// generic JSON map after the engine round-trips it.
func orderRecordFromTracker(tr *bot.Tracker) (models.OrderRecord, bool) {
	raw, ok := tr.Slots[models.SlotOrderDetails]
	if !ok || raw == nil {
		return models.OrderRecord{}, false
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return models.OrderRecord{}, false
	}
	var record models.OrderRecord
	if err := json.Unmarshal(data, &record); err != nil || record.OrderID == "" {
		return models.OrderRecord{}, false
	}
	return record, true
}

func (a *Actions) publishOrderTracked(ctx context.Context, tr *bot.Tracker, record models.OrderRecord) {
	event := &models.OrderTrackedEvent{
		BaseEvent: a.baseEvent(models.EventTypeOrderTracked, tr),
		OrderID:   record.OrderID,
		Status:    record.CurrentStatus,
	}
	if err := a.publisher.PublishOrderTracked(ctx, event); err != nil {
		a.logger.Warn("Failed to publish OrderTracked event", zap.Error(err))
	}
}
