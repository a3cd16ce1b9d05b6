package tui

import (
	"fmt"
	"strings"

	"cartpilot/internal/api"
	"cartpilot/internal/intent"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update is the single place where view state changes. Server responses
// arrive here as messages; a failed call only touches the status line, never
// the merged domain state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case chatResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("assistant unavailable: %v", msg.err)
			return m, nil
		}
		m.list = intent.Merge(m.list, msg.reply.Items)
		m.appendLine("assistant", api.FlattenHTML(msg.reply.Reply))
		m.status = fmt.Sprintf("%d item(s) on your list", len(m.list))
		return m, nil

	case watchlistMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("could not load watchlist: %v", msg.err)
			return m, nil
		}
		ids := make([]string, 0, len(msg.items))
		for _, it := range msg.items {
			ids = append(ids, it.ItemID)
		}
		m.tracker.LoadSnapshot(ids)
		m.watched = msg.items
		if m.status == "connecting..." {
			m.status = "ready"
		}
		return m, nil

	case toggleResultMsg:
		if msg.err != nil {
			// Roll the optimistic update back to the pre-toggle value.
			m.tracker.SetLocally(msg.itemID, msg.prev)
			m.status = fmt.Sprintf("watch toggle failed: %v", msg.err)
			return m, nil
		}
		// Server answer wins, even over a concurrent toggle's guess.
		m.tracker.ReconcileToggle(msg.itemID, msg.watched)
		if msg.watched {
			m.status = "now watching item"
		} else {
			m.status = "stopped watching item"
		}
		return m, m.fetchWatchlistCmd()

	case plansMsg:
		if msg.seq != m.planSeq {
			// Superseded by a newer plan build; drop it.
			m.logger.Debug("discarding stale plan response", zap.Int("seq", msg.seq))
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("plan build failed: %v", msg.err)
			return m, nil
		}
		m.plans = msg.resp
		m.planCursor = 0
		m.focus = FocusPlans
		m.status = fmt.Sprintf("%d candidate plan(s)", len(msg.resp.Plans))
		return m, nil

	case checkoutMsg:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("checkout failed: %v", msg.err)
			return m, nil
		}
		m.appendLine("billing", "Complete your upgrade here: "+msg.url)
		m.status = "checkout link ready"
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.focus = (m.focus + 1) % 3
		if m.focus == FocusInput {
			m.input.Focus()
		} else {
			m.input.Blur()
		}
		return m, nil
	}

	switch m.focus {
	case FocusInput:
		return m.handleInputKey(msg)
	case FocusList:
		return m.handleListKey(msg)
	case FocusPlans:
		return m.handlePlansKey(msg)
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.busy {
			return m, nil
		}
		m.input.Reset()
		m.appendLine("you", text)
		m.busy = true
		m.status = "thinking..."
		return m, m.sendChatCmd(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.list)-1 {
			m.cursor++
		}
	case "w", "enter":
		if m.cursor >= len(m.list) {
			return m, nil
		}
		item := m.list[m.cursor]
		prev := m.tracker.IsWatched(item.ID)
		// Optimistic flip; toggleResultMsg reconciles or rolls back.
		m.tracker.SetLocally(item.ID, !prev)
		return m, m.toggleWatchCmd(item.ID, prev, m.lastKnownPrice(item.ID))
	case "p":
		return m.dispatchPlanBuild("cheapest")
	case "t":
		return m.dispatchPlanBuild("fastest")
	case "u":
		m.busy = true
		m.status = "creating checkout session..."
		return m, m.checkoutCmd("premium")
	}
	return m, nil
}

func (m Model) handlePlansKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.planCursor > 0 {
			m.planCursor--
		}
	case "down", "j":
		if m.plans != nil && m.planCursor < len(m.plans.Plans)-1 {
			m.planCursor++
		}
	case "p":
		return m.dispatchPlanBuild("cheapest")
	case "t":
		return m.dispatchPlanBuild("fastest")
	}
	return m, nil
}

// dispatchPlanBuild bumps the current-request slot so that any response still
// in flight for an earlier build is discarded on arrival.
func (m Model) dispatchPlanBuild(preference string) (tea.Model, tea.Cmd) {
	m.planSeq++
	m.busy = true
	m.status = "building store plans (" + preference + ")..."
	return m, m.buildPlansCmd(m.planSeq, preference)
}

// lastKnownPrice looks up the item's latest price from the watchlist
// snapshot, if the server reported one.
func (m Model) lastKnownPrice(itemID string) *float64 {
	for _, w := range m.watched {
		if w.ItemID == itemID {
			return w.LastPrice
		}
	}
	return nil
}

func (m *Model) appendLine(who, text string) {
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		m.lines = append(m.lines, fmt.Sprintf("%s: %s", who, line))
		who = " "
	}
	if m.ready {
		m.transcript.SetContent(strings.Join(m.lines, "\n"))
		m.transcript.GotoBottom()
	}
}

func (m *Model) resize() {
	transcriptHeight := m.height / 3
	if transcriptHeight < 4 {
		transcriptHeight = 4
	}
	if !m.ready {
		m.transcript = newTranscript(m.width, transcriptHeight)
		m.ready = true
	} else {
		m.transcript.Width = m.width
		m.transcript.Height = transcriptHeight
	}
	m.input.Width = m.width - 4
	m.transcript.SetContent(strings.Join(m.lines, "\n"))
	m.transcript.GotoBottom()
}
