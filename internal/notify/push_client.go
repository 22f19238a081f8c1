package notify

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"trading-journal-go/internal/config"
)

// PushClient talks to the local push notification gateway over HTTP. It
// implements both Notifier and PushRegistrar. Every call is single-shot;
// there is no retry loop, only rate limiting.
type PushClient struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

// ensure PushClient implements both collaborator interfaces
var (
	_ Notifier      = (*PushClient)(nil)
	_ PushRegistrar = (*PushClient)(nil)
)

// NewPushClient creates a client for the push gateway configured in cfg.
func NewPushClient(cfg *config.Push, logger *zap.Logger) *PushClient {
	client := resty.New().SetBaseURL(cfg.GatewayURL)

	// rate.Limit is requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &PushClient{
		client:  client,
		logger:  logger,
		limiter: limiter,
	}
}

// RequestPermission asks the gateway for the current notification permission.
func (c *PushClient) RequestPermission(ctx context.Context) (Permission, error) {
	type permissionResponse struct {
		Permission string `json:"permission"`
	}

	var result permissionResponse
	resp, err := c.doRequest(ctx, "POST", "/permission", c.client.R().SetResult(&result))
	if err != nil {
		return PermissionDefault, fmt.Errorf("failed to request permission: %w", err)
	}

	switch Permission(resp.Result().(*permissionResponse).Permission) {
	case PermissionGranted:
		return PermissionGranted, nil
	case PermissionDenied:
		return PermissionDenied, nil
	default:
		return PermissionDefault, nil
	}
}

// Show posts a notification to the gateway for display.
func (c *PushClient) Show(ctx context.Context, title string, opts Options) error {
	body := struct {
		Title string `json:"title"`
		Options
	}{Title: title, Options: opts}

	_, err := c.doRequest(ctx, "POST", "/notifications", c.client.R().SetBody(body))
	if err != nil {
		c.logger.Error("Failed to show notification", zap.String("title", title), zap.Error(err))
		return fmt.Errorf("failed to show notification: %w", err)
	}
	return nil
}

// Subscribe registers a push subscription with the gateway.
func (c *PushClient) Subscribe(ctx context.Context) (*Subscription, error) {
	var sub Subscription
	_, err := c.doRequest(ctx, "POST", "/subscriptions", c.client.R().SetResult(&sub))
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	c.logger.Info("Subscribed to push notifications", zap.String("endpoint", sub.Endpoint))
	return &sub, nil
}

// Unsubscribe removes the current push subscription. A gateway with no
// active subscription reports false without error.
func (c *PushClient) Unsubscribe(ctx context.Context) (bool, error) {
	type unsubscribeResponse struct {
		Removed bool `json:"removed"`
	}

	var result unsubscribeResponse
	resp, err := c.doRequest(ctx, "DELETE", "/subscriptions", c.client.R().SetResult(&result))
	if err != nil {
		return false, fmt.Errorf("failed to unsubscribe: %w", err)
	}

	return resp.Result().(*unsubscribeResponse).Removed, nil
}

// doRequest executes a single rate-limited request. Unlike a market data
// client there is no retry here: permission and subscription calls are
// surfaced to the user once and abandoned on failure.
func (c *PushClient) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	c.logger.Debug("Executing push gateway request",
		zap.String("method", method),
		zap.String("url", c.client.BaseURL+url))

	resp, err := req.SetContext(ctx).Execute(method, url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("request failed with status %s: %s", resp.Status(), resp.String())
	}
	return resp, nil
}
