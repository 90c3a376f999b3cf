package actions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/bot"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/models"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/service"
)

// displayType is the user-facing plural for a view type.
func displayType(viewType string) string {
	switch viewType {
	case models.ViewBestseller:
		return "bestsellers"
	case models.ViewDiscount:
		return "discounted products"
	default:
		return "products"
	}
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatProductPage renders the page text: a range header followed by one
// block per product.
func formatProductPage(view service.PageView) string {
	if len(view.Rows) == 0 {
		return "No products found."
	}

	start := view.StartIndex()
	end := start + len(view.Rows) - 1

	var b strings.Builder
	fmt.Fprintf(&b, "Showing %d-%d of %d %s:\n\n", start, end, view.TotalCount, displayType(view.ViewType))

	for _, row := range view.Rows {
		fmt.Fprintf(&b, "🏆 %s\n", row.ProductName)
		fmt.Fprintf(&b, "💎 %s\n", row.Definition)
		fmt.Fprintf(&b, "💰 Base Price: ₹%s\n", formatPrice(row.BasePrice))
		if row.DiscountedPrice != nil {
			fmt.Fprintf(&b, "🏷️ Discounted Price: ₹%s\n", formatPrice(*row.DiscountedPrice))
		}
		fmt.Fprintf(&b, "⌛ Delivery Time: %s\n", row.DeliveryTime)
		fmt.Fprintf(&b, "✨ Available Options: %s\n", row.AvailableOptions)
		fmt.Fprintf(&b, "🔗 Product Link: %s\n\n", row.ProductURL)
	}
	return b.String()
}

// productButtons builds one add-to-cart button per displayed row. The
// payload carries the row's 1-based display index, which AddToCart resolves
// back against the same page.
func productButtons(view service.PageView) []bot.Button {
	buttons := make([]bot.Button, 0, len(view.Rows))
	start := view.StartIndex()
	for i, row := range view.Rows {
		buttons = append(buttons, bot.Button{
			Title:   fmt.Sprintf("🛒 Add %s to Cart", row.ProductName),
			Payload: fmt.Sprintf(`/add_to_cart{"product_idx": "%d"}`, start+i),
		})
	}
	return buttons
}

// navigationButtons builds the pagination and view-switch buttons. On the
// last page Show More is replaced by a category-exploration escape hatch;
// the cart and category buttons are always present.
func navigationButtons(view service.PageView) []bot.Button {
	var buttons []bot.Button

	if !view.IsLastPage() {
		buttons = append(buttons, bot.Button{Title: "📥 Show More", Payload: "/show_more"})
		buttons = append(buttons, viewSwitchButtons(view.ViewType)...)
	} else {
		buttons = append(buttons, bot.Button{Title: "✨ Check Other Options", Payload: "/reset_category_flow"})
	}

	buttons = append(buttons,
		bot.Button{Title: "🛒 View Cart", Payload: "/view_cart"},
		bot.Button{Title: "🔄 View Different Category", Payload: "/reset_category_flow"},
	)
	return buttons
}

// viewSwitchButtons offers the two views other than the active one.
func viewSwitchButtons(viewType string) []bot.Button {
	switch viewType {
	case models.ViewBestseller:
		return []bot.Button{
			{Title: "Show Discounted", Payload: "/show_discounted"},
			{Title: "Show Regular", Payload: "/show_regular"},
		}
	case models.ViewDiscount:
		return []bot.Button{
			{Title: "Show Bestsellers", Payload: "/show_bestsellers"},
			{Title: "Show Regular", Payload: "/show_regular"},
		}
	default:
		return []bot.Button{
			{Title: "Show Bestsellers", Payload: "/show_bestsellers"},
			{Title: "Show Discounted", Payload: "/show_discounted"},
		}
	}
}

// alternativeViewButtons is the empty-view and error button set: the other
// two views plus the cart and category escape hatches.
func alternativeViewButtons(viewType string) []bot.Button {
	var buttons []bot.Button
	switch viewType {
	case models.ViewBestseller:
		buttons = []bot.Button{
			{Title: "Show discounted products", Payload: "/show_discounted"},
			{Title: "Show regular products", Payload: "/show_regular"},
		}
	case models.ViewDiscount:
		buttons = []bot.Button{
			{Title: "Show bestsellers", Payload: "/show_bestsellers"},
			{Title: "Show regular products", Payload: "/show_regular"},
		}
	default:
		buttons = []bot.Button{
			{Title: "Show bestsellers", Payload: "/show_bestsellers"},
			{Title: "Show discounted products", Payload: "/show_discounted"},
		}
	}
	return append(buttons,
		bot.Button{Title: "View Cart", Payload: "/view_cart"},
		bot.Button{Title: "View different category", Payload: "/reset_category_flow"},
	)
}

// endOfResultsButtons lets the user switch views or leave the category once
// everything has been seen.
func endOfResultsButtons() []bot.Button {
	return []bot.Button{
		{Title: "Show Bestsellers", Payload: "/show_bestsellers"},
		{Title: "Show Discounted", Payload: "/show_discounted"},
		{Title: "Show Regular", Payload: "/show_regular"},
		{Title: "🛒 View Cart", Payload: "/view_cart"},
		{Title: "✨ Explore Products", Payload: "/explore_products"},
	}
}
