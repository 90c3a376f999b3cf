package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/actions"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/bot"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Handler contains HTTP handlers
type Handler struct {
	registry map[string]actions.Handler
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(a *actions.Actions) *Handler {
	return &Handler{
		registry: a.Registry(),
		logger:   util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/webhook", h.runAction)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// runAction executes one named action for one conversation turn.
func (h *Handler) runAction(c *gin.Context) {
	var req bot.ActionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	handler, ok := h.registry[req.NextAction]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Unknown action",
			"action": req.NextAction,
		})
		return
	}

	ctx, span := util.StartSpan(c.Request.Context(), "action.run")
	span.SetAttributes(attribute.String("action.name", req.NextAction))
	defer span.End()

	tracker := &req.Tracker
	if tracker.SenderID == "" {
		tracker.SenderID = req.SenderID
	}
	if tracker.Slots == nil {
		tracker.Slots = map[string]any{}
	}

	d := bot.NewDispatcher()
	events := handler(ctx, tracker, d)
	if events == nil {
		events = []bot.Event{}
	}

	util.ActionsExecutedTotal.WithLabelValues(req.NextAction).Inc()
	h.logger.Debug("Action executed",
		zap.String("action", req.NextAction),
		zap.String("sender_id", tracker.SenderID),
		zap.Int("events", len(events)),
		zap.Int("responses", len(d.Messages())))

	c.JSON(http.StatusOK, bot.ActionResponse{
		Events:    events,
		Responses: d.Messages(),
	})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
