package models

import "encoding/json"

// View types applied on top of a category's catalog subset.
const (
	ViewBestseller = "bestseller"
	ViewDiscount   = "discount"
	ViewRegular    = "regular"
)

// Slot names persisted by the dialogue engine between turns.
const (
	SlotMainCategory    = "main_category"
	SlotSubCategory     = "sub_category"
	SlotViewType        = "view_type"
	SlotLastViewType    = "last_view_type"
	SlotCurrentPage     = "current_page"
	SlotLastPage        = "last_page"
	SlotIntent          = "intent"
	SlotShoppingContext = "shopping_context"
	SlotShoppingCart    = "shopping_cart"
	SlotOrderID         = "order_id"
	SlotOrderDetails    = "order_details"
	SlotIssueReference  = "issue_reference"
	SlotStylingReady    = "jewelry_styling_initialized"
	SlotReviewText      = "review_text"
	SlotReviewSentiment = "review_sentiment"
)

// CatalogRow is a single product entry, immutable after load.
type CatalogRow struct {
	MainCategory     string   `db:"main_category" json:"main_category"`
	SubCategory      string   `db:"sub_category" json:"sub_category"`
	ProductID        string   `db:"product_id" json:"product_id"`
	ProductName      string   `db:"product_name" json:"product_name"`
	Definition       string   `db:"definition" json:"definition"`
	BasePrice        float64  `db:"base_price" json:"base_price"`
	DiscountedPrice  *float64 `db:"discounted_price" json:"discounted_price,omitempty"`
	DeliveryTime     string   `db:"delivery_time" json:"delivery_time"`
	AvailableOptions string   `db:"available_options" json:"available_options"`
	ProductURL       string   `db:"product_url" json:"product_url"`
	IsBestseller     bool     `db:"is_bestseller" json:"is_bestseller"`
	HasDiscount      bool     `db:"has_discount" json:"has_discount"`
}

// BrowsingState is the slot-backed browsing context for one session.
// It is decoded from the tracker at the start of a turn and written back
// through slot events; handlers never hold it across calls.
type BrowsingState struct {
	MainCategory string
	SubCategory  string
	ViewType     string
	CurrentPage  int
	LastViewType string
	LastPage     int

	// Continuing is set when the turn resumes a browsing session that was
	// interrupted by a cart action (intent slot == "continue_shopping").
	Continuing bool
}

// ResolveViewType returns the effective view type for pagination:
// the active view, else the one active before the last reset, else regular.
func (b BrowsingState) ResolveViewType() string {
	if b.ViewType != "" {
		return b.ViewType
	}
	if b.LastViewType != "" {
		return b.LastViewType
	}
	return ViewRegular
}

// CartItem is one line of the session cart. Items merge on ProductName:
// adding a product whose name already appears bumps that line's quantity.
type CartItem struct {
	ProductID       string   `json:"product_id"`
	ProductName     string   `json:"product_name"`
	BasePrice       float64  `json:"base_price"`
	DiscountedPrice *float64 `json:"discounted_price,omitempty"`
	Quantity        int      `json:"quantity"`
}

// DecodeCart parses the cart slot value. A missing or malformed payload is
// an empty cart, never an error; the slot contents come from a prior turn
// and a bad value must not break the session.
func DecodeCart(raw string) []CartItem {
	if raw == "" {
		return []CartItem{}
	}
	var items []CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []CartItem{}
	}
	if items == nil {
		return []CartItem{}
	}
	return items
}

// EncodeCart serializes the cart for slot storage.
func EncodeCart(items []CartItem) string {
	if items == nil {
		items = []CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// StatusStep is one entry of an order's status timeline.
type StatusStep struct {
	Status    string `json:"status"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// OrderRecord is a synthetic order-status record produced by the tracking
// stub. It is never backed by a real order system.
type OrderRecord struct {
	OrderID           string       `json:"order_id"`
	Product           string       `json:"product"`
	Amount            int          `json:"amount"`
	ShippingAddress   string       `json:"shipping_address"`
	CurrentStatus     string       `json:"current_status"`
	EstimatedDelivery string       `json:"estimated_delivery"`
	StatusTimeline    []StatusStep `json:"status_timeline"`
}
