package tui

import (
	"context"
	"time"

	"cartpilot/internal/api"
	"cartpilot/internal/plan"
	"cartpilot/internal/watchlist"

	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 45 * time.Second

// Messages carrying server responses back onto the UI goroutine.

type chatResultMsg struct {
	reply *api.ChatReply
	err   error
}

type watchlistMsg struct {
	items []watchlist.WatchedItem
	err   error
}

// toggleResultMsg carries the pre-toggle membership so a failed request can
// roll the optimistic update back to exactly where it started.
type toggleResultMsg struct {
	itemID  string
	prev    bool
	watched bool
	err     error
}

type plansMsg struct {
	seq  int
	resp *plan.Response
	err  error
}

type checkoutMsg struct {
	url string
	err error
}

func (m Model) sendChatCmd(message string) tea.Cmd {
	backend, userID := m.backend, m.userID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		reply, err := backend.SendChat(ctx, userID, message)
		return chatResultMsg{reply: reply, err: err}
	}
}

func (m Model) fetchWatchlistCmd() tea.Cmd {
	backend, userID := m.backend, m.userID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := backend.FetchWatchlist(ctx, userID)
		return watchlistMsg{items: items, err: err}
	}
}

func (m Model) toggleWatchCmd(itemID string, prev bool, currentPrice *float64) tea.Cmd {
	backend, userID := m.backend, m.userID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		watched, err := backend.ToggleWatch(ctx, userID, itemID, currentPrice)
		return toggleResultMsg{itemID: itemID, prev: prev, watched: watched, err: err}
	}
}

func (m Model) buildPlansCmd(seq int, preference string) tea.Cmd {
	backend, userID, origin := m.backend, m.userID, m.origin
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		resp, err := backend.BuildPlans(ctx, userID, preference, origin, "")
		return plansMsg{seq: seq, resp: resp, err: err}
	}
}

func (m Model) checkoutCmd(billingPlan string) tea.Cmd {
	backend, userID := m.backend, m.userID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		url, err := backend.CreateCheckoutSession(ctx, userID, billingPlan)
		return checkoutMsg{url: url, err: err}
	}
}
