package api

import (
	"context"
	"fmt"
	"net/url"

	"cartpilot/internal/intent"
	"cartpilot/internal/plan"
	"cartpilot/internal/watchlist"
)

// ChatReply is the assistant's answer to one chat message: display text plus
// any item intents it extracted from the message.
type ChatReply struct {
	Reply string          `json:"reply"`
	Items []intent.Intent `json:"items"`
}

// SendChat sends one user message to the assistant.
func (c *Client) SendChat(ctx context.Context, userID, message string) (*ChatReply, error) {
	req := map[string]string{
		"user_id": userID,
		"message": message,
	}
	var reply ChatReply
	if err := c.do(ctx, "POST", "/chat/assistant", req, &reply); err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	return &reply, nil
}

// FetchWatchlist retrieves the user's full watchlist.
func (c *Client) FetchWatchlist(ctx context.Context, userID string) ([]watchlist.WatchedItem, error) {
	var items []watchlist.WatchedItem
	path := "/watchlist/user/" + url.PathEscape(userID)
	if err := c.do(ctx, "GET", path, nil, &items); err != nil {
		return nil, fmt.Errorf("watchlist fetch failed: %w", err)
	}
	return items, nil
}

// ToggleWatch flips the watch state of an item and returns the server's
// authoritative answer. currentPrice may be nil when the client has no price
// for the item.
func (c *Client) ToggleWatch(ctx context.Context, userID, itemID string, currentPrice *float64) (bool, error) {
	req := map[string]any{
		"user_id":       userID,
		"item_id":       itemID,
		"current_price": currentPrice,
	}
	var resp struct {
		Watched bool `json:"watched"`
	}
	if err := c.do(ctx, "POST", "/watchlist/toggle", req, &resp); err != nil {
		return false, fmt.Errorf("watch toggle failed: %w", err)
	}
	return resp.Watched, nil
}

// BuildPlans asks the planning backend for candidate store plans. origin and
// destination may be empty; the backend treats them as nulls.
func (c *Client) BuildPlans(ctx context.Context, userID, preference, origin, destination string) (*plan.Response, error) {
	req := map[string]any{
		"user_id":    userID,
		"preference": preference,
	}
	if origin != "" {
		req["origin"] = origin
	}
	if destination != "" {
		req["destination"] = destination
	}
	var resp plan.Response
	if err := c.do(ctx, "POST", "/plans/build", req, &resp); err != nil {
		return nil, fmt.Errorf("plan build failed: %w", err)
	}
	return &resp, nil
}

// CreateCheckoutSession starts a billing checkout and returns the URL the
// user should be sent to. Older backend versions return the URL under "url"
// instead of "checkout_url"; both are accepted.
func (c *Client) CreateCheckoutSession(ctx context.Context, userID, billingPlan string) (string, error) {
	req := map[string]string{
		"user_id": userID,
		"plan":    billingPlan,
	}
	var resp struct {
		CheckoutURL string `json:"checkout_url"`
		URL         string `json:"url"`
	}
	if err := c.do(ctx, "POST", "/billing/create-checkout-session", req, &resp); err != nil {
		return "", fmt.Errorf("checkout session failed: %w", err)
	}
	if resp.CheckoutURL != "" {
		return resp.CheckoutURL, nil
	}
	if resp.URL != "" {
		return resp.URL, nil
	}
	return "", fmt.Errorf("checkout response had no url")
}
