package actions

import (
	"context"
	"strings"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/bot"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/models"

	"go.uber.org/zap"
)

// StylingAdvice forwards the user's question to the styling knowledge
// service and relays the answer.
func (a *Actions) StylingAdvice(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	question := strings.TrimSpace(tr.LatestMessage.Text)

	d.Utter("Let me look up some jewelry styling advice for you...")

	answer, cached, err := a.stylist.Ask(ctx, question)
	if err != nil {
		a.logger.Warn("Styling advice lookup failed", zap.Error(err))
		d.Utter("I'm having trouble connecting to my jewelry styling knowledge. Please try again later.")
		return nil
	}

	if strings.TrimSpace(answer) == "" {
		d.Utter("I couldn't find specific advice for that. Could you try asking differently?")
		return nil
	}

	d.Utter(answer)
	a.publishAdviceServed(ctx, tr, question, cached)
	return nil
}

// InitializeStyling checks whether the styling knowledge service is ready
// and records the result so the flow can short-circuit later turns.
func (a *Actions) InitializeStyling(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	ready, err := a.stylist.Ready(ctx)
	if err != nil {
		a.logger.Warn("Styling readiness check failed", zap.Error(err))
		d.Utter("I'm having trouble connecting to my jewelry styling knowledge. Please try again later.")
		return []bot.Event{bot.SlotSet(models.SlotStylingReady, false)}
	}
	if !ready {
		d.Utter("I'm still preparing my jewelry styling knowledge. Please try again in a moment.")
		return []bot.Event{bot.SlotSet(models.SlotStylingReady, false)}
	}

	return []bot.Event{bot.SlotSet(models.SlotStylingReady, true)}
}

func (a *Actions) publishAdviceServed(ctx context.Context, tr *bot.Tracker, question string, cached bool) {
	event := &models.AdviceServedEvent{
		BaseEvent: a.baseEvent(models.EventTypeAdviceServed, tr),
		Question:  question,
		Cached:    cached,
	}
	if err := a.publisher.PublishAdviceServed(ctx, event); err != nil {
		a.logger.Warn("Failed to publish AdviceServed event", zap.Error(err))
	}
}
