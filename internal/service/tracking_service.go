package service

import (
	"math/rand"
	"strings"
	"time"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/models"
)

const dateLayout = "02 Jan 2006"

var (
	trackingMaterials = []string{"Gold", "Silver", "Diamond", "Pearl"}
	trackingProducts  = []string{"Necklace", "Earrings", "Bracelet", "Ring", "Anklet"}

	timelineStatuses = []string{
		"Order Placed",
		"Payment Confirmed",
		"Processing",
		"Ready for Shipment",
		"Shipped",
		"Out for Delivery",
		"Delivered",
	}
)

const referenceChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TrackingService generates synthetic order-status records. The random
// source and clock are injected so tests can pin the seed and assert exact
// timelines.
type TrackingService struct {
	rng *rand.Rand
	now func() time.Time
}

// NewTrackingService creates a tracking service.
func NewTrackingService(rng *rand.Rand, now func() time.Time) *TrackingService {
	if now == nil {
		now = time.Now
	}
	return &TrackingService{rng: rng, now: now}
}

// GenerateRecord builds a fresh order record for the given id. The shape is
// deterministic (seven timeline steps, current status between steps 3 and 5);
// the content is randomized.
func (s *TrackingService) GenerateRecord(orderID string) models.OrderRecord {
	now := s.now()

	orderDate := now.AddDate(0, 0, -(3 + s.rng.Intn(8)))
	dates := []time.Time{
		orderDate,
		orderDate,
		now.AddDate(0, 0, -(1 + s.rng.Intn(3))),
		now.AddDate(0, 0, -s.rng.Intn(3)),
		now,
		now.AddDate(0, 0, 1),
		now.AddDate(0, 0, 2),
	}

	currentIdx := 3 + s.rng.Intn(3)

	timeline := make([]models.StatusStep, len(timelineStatuses))
	for i, status := range timelineStatuses {
		timeline[i] = models.StatusStep{
			Status:    status,
			Date:      dates[i].Format(dateLayout),
			Completed: i <= currentIdx,
		}
	}

	return models.OrderRecord{
		OrderID:           orderID,
		Product:           trackingMaterials[s.rng.Intn(len(trackingMaterials))] + " " + trackingProducts[s.rng.Intn(len(trackingProducts))],
		Amount:            1500 + s.rng.Intn(13501),
		ShippingAddress:   "123 Sample Street, City, State, PIN",
		CurrentStatus:     timelineStatuses[currentIdx],
		EstimatedDelivery: timeline[len(timeline)-1].Date,
		StatusTimeline:    timeline,
	}
}

// IssueReference mints an 8-character reference id for a reported issue.
func (s *TrackingService) IssueReference() string {
	var b strings.Builder
	for i := 0; i < 8; i++ {
		b.WriteByte(referenceChars[s.rng.Intn(len(referenceChars))])
	}
	return b.String()
}

// NormalizeOrderID extracts an order id from free text when the engine did
// not parse one: any digits in the message become ORD-<digits>.
func NormalizeOrderID(text string) (string, bool) {
	var digits strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return "", false
	}
	return "ORD-" + digits.String(), true
}
