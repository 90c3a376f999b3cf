package actions

import (
	"context"
	"fmt"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/bot"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/models"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/service"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/util"

	"go.uber.org/zap"
)

// ShowBestsellers activates the bestseller view.
func (a *Actions) ShowBestsellers(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	return a.selectView(ctx, tr, d, models.ViewBestseller, intentShowBestsellers)
}

// ShowDiscounted activates the discount view.
func (a *Actions) ShowDiscounted(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	return a.selectView(ctx, tr, d, models.ViewDiscount, intentShowDiscounted)
}

// ShowRegular activates the unfiltered view.
func (a *Actions) ShowRegular(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	return a.selectView(ctx, tr, d, models.ViewRegular, intentShowRegular)
}

func (a *Actions) selectView(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher, viewType, intent string) []bot.Event {
	st := browseState(tr)

	res, err := a.browse.SelectView(st, viewType)
	if err != nil {
		util.ActionsFailedTotal.WithLabelValues(intent).Inc()
		a.logger.Error("View selection failed",
			zap.String("view_type", viewType),
			zap.Error(err))
		d.Utter(
			fmt.Sprintf("Sorry, I encountered an error while fetching %s. Would you like to try something else?", displayType(viewType)),
			alternativeViewButtons(viewType)...,
		)
		return []bot.Event{
			bot.SlotSet(models.SlotCurrentPage, 0),
			bot.SlotSet(models.SlotLastViewType, nullable(st.ViewType)),
			bot.SlotSet(models.SlotViewType, nil),
			bot.SlotSet(models.SlotShoppingContext, nil),
		}
	}

	switch res.Outcome {
	case service.OutcomeEmptyView:
		d.Utter(
			fmt.Sprintf("Sorry, we don't have any %s in %s %s at the moment.\n\nWould you like to:",
				displayType(viewType), st.MainCategory, st.SubCategory),
			alternativeViewButtons(viewType)...,
		)
		return []bot.Event{
			bot.SlotSet(models.SlotCurrentPage, 0),
			bot.SlotSet(models.SlotLastViewType, nullable(res.State.LastViewType)),
			bot.SlotSet(models.SlotViewType, nil),
		}

	case service.OutcomeEndOfResults:
		// Reached through the continuation redirect into Advance.
		return a.emitEndOfResults(d, res)

	default:
		return a.emitPage(d, res, intent)
	}
}

// ShowMore advances one page, or re-renders the persisted page when
// continuing a prior session.
func (a *Actions) ShowMore(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	st := browseState(tr)

	res, err := a.browse.Advance(st)
	if err != nil {
		util.ActionsFailedTotal.WithLabelValues(intentShowMore).Inc()
		a.logger.Error("Page advance failed", zap.Error(err))
		d.Utter("Unable to load products. Please choose an alternative:", endOfResultsButtons()...)
		return []bot.Event{
			bot.SlotSet(models.SlotCurrentPage, 0),
			bot.SlotSet(models.SlotViewType, nil),
			bot.SlotSet(models.SlotIntent, nil),
			bot.SlotSet(models.SlotShoppingContext, nil),
			bot.SlotSet(models.SlotLastPage, nil),
		}
	}

	if res.Outcome == service.OutcomeEndOfResults {
		return a.emitEndOfResults(d, res)
	}
	return a.emitPage(d, res, intentShowMore)
}

// emitPage renders a product page and persists the browsing state that
// produced it.
func (a *Actions) emitPage(d *bot.Dispatcher, res service.BrowseResult, intent string) []bot.Event {
	message := formatProductPage(res.View)
	if res.View.TotalPages == 1 {
		message += fmt.Sprintf("\nYou've seen all the available %s in this category.", displayType(res.View.ViewType))
	}

	buttons := append(productButtons(res.View), navigationButtons(res.View)...)
	d.Utter(message, buttons...)

	util.PagesServedTotal.WithLabelValues(res.View.ViewType).Inc()

	return []bot.Event{
		bot.SlotSet(models.SlotCurrentPage, res.State.CurrentPage),
		bot.SlotSet(models.SlotViewType, res.State.ViewType),
		bot.SlotSet(models.SlotLastViewType, nullable(res.State.LastViewType)),
		bot.SlotSet(models.SlotIntent, intent),
		bot.SlotSet(models.SlotShoppingContext, "product_browsing"),
		bot.SlotSet(models.SlotLastPage, res.State.LastPage),
	}
}

// emitEndOfResults tells the user the view is exhausted without moving the
// persisted page, so repeated advances stay idempotent.
func (a *Actions) emitEndOfResults(d *bot.Dispatcher, res service.BrowseResult) []bot.Event {
	d.Utter(
		fmt.Sprintf("You've seen all the available %s in this category.", displayType(res.View.ViewType)),
		endOfResultsButtons()...,
	)
	return []bot.Event{
		bot.SlotSet(models.SlotCurrentPage, res.State.CurrentPage),
		bot.SlotSet(models.SlotViewType, res.State.ViewType),
		bot.SlotSet(models.SlotShoppingContext, "product_browsing"),
		bot.SlotSet(models.SlotLastPage, res.State.LastPage),
	}
}

// ResetCategoryFlow clears the whole browsing context and queues category
// re-selection for the next turn.
func (a *Actions) ResetCategoryFlow(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	d.Utter(
		"Are you sure you want to reset and explore categories again?",
		bot.Button{Title: "Yes, Reset and Explore", Payload: "/reset_category_flow"},
		bot.Button{Title: "View Cart", Payload: "/view_cart"},
	)

	return []bot.Event{
		bot.SlotSet(models.SlotMainCategory, nil),
		bot.SlotSet(models.SlotSubCategory, nil),
		bot.SlotSet(models.SlotCurrentPage, 0),
		bot.SlotSet(models.SlotViewType, nil),
		bot.SlotSet(models.SlotLastViewType, nil),
		bot.SlotSet(models.SlotIntent, intentExploreProducts),
		bot.SlotSet(models.SlotShoppingContext, nil),
		bot.SlotSet(models.SlotLastPage, nil),
	}
}

// ContinueShopping re-renders the page the user was on before a cart
// interruption. It never advances the page.
func (a *Actions) ContinueShopping(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	st := browseState(tr)

	res, err := a.browse.Resume(st)
	if err != nil {
		util.ActionsFailedTotal.WithLabelValues(intentContinueShopping).Inc()
		a.logger.Error("Resume failed", zap.Error(err))
		d.Utter("Sorry, I couldn't pick up where you left off. Please try again.",
			alternativeViewButtons(models.ViewRegular)...)
		return nil
	}

	switch res.Outcome {
	case service.OutcomeNeedCategory:
		return a.ResetCategoryFlow(ctx, tr, d)

	case service.OutcomeChooseView:
		d.Utter(
			fmt.Sprintf("Let's continue shopping in %s %s.", st.MainCategory, st.SubCategory),
			bot.Button{Title: "Show Bestsellers", Payload: categoryPayload("show_bestsellers", st)},
			bot.Button{Title: "Show Discounted", Payload: categoryPayload("show_discounted", st)},
			bot.Button{Title: "Show Regular", Payload: categoryPayload("show_regular", st)},
			bot.Button{Title: "View Cart", Payload: "/view_cart"},
			bot.Button{Title: "View Different Category", Payload: "/reset_category_flow"},
		)
		return []bot.Event{bot.SlotSet(models.SlotIntent, intentContinueShopping)}

	case service.OutcomeNotFound:
		d.Utter(fmt.Sprintf("Sorry, we don't have any %s in %s %s at the moment.",
			displayType(res.State.ViewType), st.MainCategory, st.SubCategory))
		return []bot.Event{bot.SlotSet(models.SlotViewType, res.State.ViewType)}

	default:
		d.Utter("Returning to where you left off...")
		if res.FellBack {
			d.Utter("No products found on this page. Showing the first page instead.")
		}

		message := formatProductPage(res.View)
		buttons := append(productButtons(res.View), navigationButtons(res.View)...)
		d.Utter(message, buttons...)

		util.PagesServedTotal.WithLabelValues(res.View.ViewType).Inc()

		return []bot.Event{
			bot.SlotSet(models.SlotCurrentPage, res.State.CurrentPage),
			bot.SlotSet(models.SlotViewType, res.State.ViewType),
			bot.SlotSet(models.SlotIntent, intentShowProducts),
		}
	}
}

func categoryPayload(intent string, st models.BrowsingState) string {
	return fmt.Sprintf(`/%s{"main_category": "%s", "sub_category": "%s"}`, intent, st.MainCategory, st.SubCategory)
}
