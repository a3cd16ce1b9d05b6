// Package tui implements the interactive terminal client. All view state
// lives in a single Bubble Tea model: server calls run as commands, their
// results come back as typed messages, and every state transition happens in
// Update on the UI goroutine. There is no locking because there is no
// parallel mutation, only interleaved continuations.
package tui

import (
	"context"

	"cartpilot/internal/api"
	"cartpilot/internal/intent"
	"cartpilot/internal/plan"
	"cartpilot/internal/watchlist"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Backend is the slice of the API client the view model uses. Tests swap in
// a scripted fake.
type Backend interface {
	SendChat(ctx context.Context, userID, message string) (*api.ChatReply, error)
	FetchWatchlist(ctx context.Context, userID string) ([]watchlist.WatchedItem, error)
	ToggleWatch(ctx context.Context, userID, itemID string, currentPrice *float64) (bool, error)
	BuildPlans(ctx context.Context, userID, preference, origin, destination string) (*plan.Response, error)
	CreateCheckoutSession(ctx context.Context, userID, billingPlan string) (string, error)
}

// Focus determines which pane receives key input.
type Focus int

const (
	FocusInput Focus = iota
	FocusList
	FocusPlans
)

// Model is the view model for the interactive client.
type Model struct {
	backend Backend
	logger  *zap.Logger

	userID string
	origin string

	// Domain state
	list    []intent.Intent
	tracker *watchlist.Tracker
	watched []watchlist.WatchedItem
	plans   *plan.Response

	// planSeq is the "current request" slot for plan builds: it is bumped on
	// every dispatch and responses carrying an older value are discarded.
	planSeq int

	// UI components
	input      textinput.Model
	transcript viewport.Model
	spin       spinner.Model
	styles     Styles

	focus      Focus
	cursor     int
	planCursor int

	lines    []string
	status   string
	busy     bool
	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates the view model. logger may be nil.
func New(backend Backend, userID, origin string, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "Tell me what you need (e.g. \"2 lbs of chicken and some olive oil\")"
	ti.Focus()
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		backend: backend,
		logger:  logger,
		userID:  userID,
		origin:  origin,
		tracker: watchlist.NewTracker(),
		input:   ti,
		spin:    sp,
		styles:  DefaultStyles(),
		status:  "connecting...",
	}
}

// Init fetches the watchlist snapshot for the active user on startup.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchWatchlistCmd(), m.spin.Tick)
}

// ShoppingList exposes the current merged list, primarily for tests.
func (m Model) ShoppingList() []intent.Intent { return m.list }

// Tracker exposes watch membership, primarily for tests.
func (m Model) Tracker() *watchlist.Tracker { return m.tracker }

// Plans exposes the latest accepted plan response, primarily for tests.
func (m Model) Plans() *plan.Response { return m.plans }

// Status exposes the status line, primarily for tests.
func (m Model) Status() string { return m.status }
