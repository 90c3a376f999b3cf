package worker

import (
	"context"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/broker"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/models"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/util"

	"go.uber.org/zap"
)

// AnalyticsWorker consumes conversation analytics events and folds them into
// Prometheus counters. Losing it costs dashboards, not correctness.
type AnalyticsWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewAnalyticsWorker creates an analytics worker.
func NewAnalyticsWorker(consumer *broker.Consumer) *AnalyticsWorker {
	logger := util.GetLogger()
	eventHandler := broker.NewEventHandler()

	// CheckoutAmount is observed at checkout time; the worker only logs so
	// a replayed event cannot count the same order twice.
	eventHandler.OnCheckoutCompleted(func(ctx context.Context, event *models.CheckoutCompletedEvent) error {
		logger.Info("Checkout observed",
			zap.String("order_id", event.OrderID),
			zap.Int("items", event.ItemCount),
			zap.Float64("final_total", event.FinalTotal))
		return nil
	})

	eventHandler.OnProductAdded(func(ctx context.Context, event *models.ProductAddedEvent) error {
		logger.Debug("Product add observed",
			zap.String("product_name", event.ProductName),
			zap.String("view_type", event.ViewType))
		return nil
	})

	return &AnalyticsWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
		logger:       logger,
	}
}

// Start starts consuming until the context is cancelled.
func (w *AnalyticsWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting analytics worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker.
func (w *AnalyticsWorker) Stop() error {
	w.logger.Info("Stopping analytics worker")
	return w.consumer.Close()
}
