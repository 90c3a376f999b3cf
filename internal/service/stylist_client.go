package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/redisclient"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/util"

	"go.uber.org/zap"
)

// StylistClient talks to the external styling-advice service. All transport
// and status failures collapse into ErrUpstreamUnavailable; callers render a
// fixed degraded-service message and never retry automatically.
type StylistClient struct {
	baseURL       string
	http          *http.Client
	queryTimeout  time.Duration
	healthTimeout time.Duration
	cache         *redisclient.Client
	cacheTTL      time.Duration
	logger        *zap.Logger
}

// NewStylistClient creates a stylist client. cache may be nil, in which case
// every question goes upstream.
func NewStylistClient(baseURL string, queryTimeout, healthTimeout time.Duration, cache *redisclient.Client, cacheTTL time.Duration) *StylistClient {
	return &StylistClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{},
		queryTimeout:  queryTimeout,
		healthTimeout: healthTimeout,
		cache:         cache,
		cacheTTL:      cacheTTL,
		logger:        util.GetLogger(),
	}
}

type queryRequest struct {
	Question string `json:"question"`
}

type queryResponse struct {
	Answer string `json:"answer"`
}

type healthResponse struct {
	Ready bool `json:"ready"`
}

// Ask returns styling advice for a question, and whether the answer came
// from the cache. The upstream call runs under the query timeout.
func (c *StylistClient) Ask(ctx context.Context, question string) (answer string, cached bool, err error) {
	ctx, span := util.StartSpan(ctx, "StylistClient.Ask")
	defer span.End()

	if c.cache != nil {
		if answer, ok, err := c.cache.GetAdvice(ctx, question); err == nil && ok {
			util.StylistCacheHitsTotal.Inc()
			return answer, true, nil
		}
	}

	util.StylistRequestsTotal.Inc()

	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	body, err := json.Marshal(queryRequest{Question: question})
	if err != nil {
		return "", false, fmt.Errorf("failed to encode question: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("failed to build query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		util.StylistFailuresTotal.Inc()
		c.logger.Warn("Styling service query failed", zap.Error(err))
		return "", false, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		util.StylistFailuresTotal.Inc()
		c.logger.Warn("Styling service returned non-success status",
			zap.Int("status", resp.StatusCode))
		return "", false, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var qr queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		util.StylistFailuresTotal.Inc()
		return "", false, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	if c.cache != nil && qr.Answer != "" {
		if err := c.cache.SetAdvice(ctx, question, qr.Answer, c.cacheTTL); err != nil {
			c.logger.Warn("Failed to cache styling answer", zap.Error(err))
		}
	}

	return qr.Answer, false, nil
}

// Ready checks the styling service health endpoint under the health timeout.
func (c *StylistClient) Ready(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false, fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var hr healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return hr.Ready, nil
}
