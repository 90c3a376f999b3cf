// Package actions implements the named handlers the dialogue engine
// dispatches to. Every handler is a stateless function from (tracker,
// latest message) to (slot events, outbound messages); no handler keeps
// state between calls, and every failure degrades to a safe message plus a
// safe slot reset instead of propagating.
package actions

import (
	"context"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/bot"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/broker"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/models"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/service"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/util"

	"go.uber.org/zap"
)

// Intent names the handlers react to or persist into the intent slot.
const (
	intentShowBestsellers  = "show_bestsellers"
	intentShowDiscounted   = "show_discounted"
	intentShowRegular      = "show_regular"
	intentShowMore         = "show_more"
	intentShowProducts     = "show_products"
	intentContinueShopping = "continue_shopping"
	intentExploreProducts  = "explore_products"
)

// Handler runs one action for one turn.
type Handler func(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event

// Actions bundles the services the handlers delegate to.
type Actions struct {
	browse    *service.BrowseService
	carts     *service.CartService
	tracking  *service.TrackingService
	stylist   *service.StylistClient
	publisher *broker.EventPublisher
	logger    *zap.Logger
}

// New creates the action set. publisher may be nil when analytics is off.
func New(
	browse *service.BrowseService,
	carts *service.CartService,
	tracking *service.TrackingService,
	stylist *service.StylistClient,
	publisher *broker.EventPublisher,
) *Actions {
	return &Actions{
		browse:    browse,
		carts:     carts,
		tracking:  tracking,
		stylist:   stylist,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// Registry maps action names to handlers. The names are the contract with
// the dialogue engine's domain file.
func (a *Actions) Registry() map[string]Handler {
	return map[string]Handler{
		"action_show_bestsellers":           a.ShowBestsellers,
		"action_show_discounted":            a.ShowDiscounted,
		"action_show_regular":               a.ShowRegular,
		"action_show_more":                  a.ShowMore,
		"action_reset_category_flow":        a.ResetCategoryFlow,
		"action_continue_shopping":          a.ContinueShopping,
		"action_add_to_cart":                a.AddToCart,
		"action_view_cart":                  a.ViewCart,
		"action_update_cart":                a.UpdateCart,
		"action_clear_cart":                 a.ClearCart,
		"action_checkout":                   a.Checkout,
		"action_initiate_order_tracking":    a.InitiateOrderTracking,
		"action_validate_order_id":          a.ValidateOrderID,
		"action_show_order_status":          a.ShowOrderStatus,
		"action_show_order_details":         a.ShowOrderDetails,
		"action_report_issue":               a.ReportIssue,
		"action_jewelry_styling_advice":     a.StylingAdvice,
		"action_initialize_jewelry_styling": a.InitializeStyling,
		"action_analyze_review_sentiment":   a.AnalyzeReviewSentiment,
		"action_handle_review_image":        a.HandleReviewImage,
	}
}

// browseState decodes the slot-backed browsing context for this turn.
func browseState(tr *bot.Tracker) models.BrowsingState {
	return models.BrowsingState{
		MainCategory: tr.StringSlot(models.SlotMainCategory),
		SubCategory:  tr.StringSlot(models.SlotSubCategory),
		ViewType:     tr.StringSlot(models.SlotViewType),
		CurrentPage:  tr.IntSlot(models.SlotCurrentPage),
		LastViewType: tr.StringSlot(models.SlotLastViewType),
		LastPage:     tr.IntSlot(models.SlotLastPage),
		Continuing:   tr.StringSlot(models.SlotIntent) == intentContinueShopping,
	}
}

// nullable maps "" to nil so an empty value unsets the slot instead of
// persisting an empty string.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func cartFromTracker(tr *bot.Tracker) []models.CartItem {
	return models.DecodeCart(tr.StringSlot(models.SlotShoppingCart))
}
