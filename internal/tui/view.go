package tui

import (
	"fmt"
	"strings"

	"cartpilot/internal/intent"
	"cartpilot/internal/plan"
	"cartpilot/internal/watchlist"

	"github.com/charmbracelet/bubbles/viewport"
)

func newTranscript(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	return vp
}

// View renders the full client screen: transcript, shopping list with watch
// markers and drop signals, candidate plans, input, status line.
func (m Model) View() string {
	if m.quitting {
		return "bye!\n"
	}
	if !m.ready {
		return "starting up..."
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("cartpilot"))
	b.WriteString("\n")
	b.WriteString(m.transcript.View())
	b.WriteString("\n\n")

	b.WriteString(m.renderShoppingList())
	b.WriteString(m.renderDrops())
	b.WriteString(m.renderPlans())

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	status := m.status
	if m.busy {
		status = m.spin.View() + " " + status
	}
	b.WriteString(m.styles.Status.Render(status))
	b.WriteString(m.styles.Faint.Render("  [tab] switch pane  [w] watch  [p/t] plans  [u] upgrade  [esc] quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderShoppingList() string {
	var b strings.Builder
	b.WriteString(m.styles.Section.Render("Shopping list"))
	b.WriteString("\n")
	if len(m.list) == 0 {
		b.WriteString(m.styles.Faint.Render("  (empty — tell the assistant what you need)"))
		b.WriteString("\n")
		return b.String()
	}
	for i, it := range m.list {
		marker := "  "
		if m.tracker.IsWatched(it.ID) {
			marker = m.styles.Watched.Render("★ ")
		}
		line := fmt.Sprintf("%s%s", marker, describeItem(it))
		if m.focus == FocusList && i == m.cursor {
			line = m.styles.Selected.Render(line)
		}
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

func describeItem(it intent.Intent) string {
	label := it.RawText
	if it.CanonicalCategory != "" {
		label = fmt.Sprintf("%s (%s)", it.RawText, it.CanonicalCategory)
	}
	if it.Quantity > 1 {
		label = fmt.Sprintf("%gx %s", it.Quantity, label)
	}
	return label
}

func (m Model) renderDrops() string {
	dropped := watchlist.WithPositiveDrop(m.watched)
	if len(dropped) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Section.Render("Price drops"))
	b.WriteString("\n")
	if best, ok := watchlist.BiggestDrop(m.watched); ok {
		d, _ := watchlist.EffectiveDrop(best)
		b.WriteString(m.styles.Drop.Render(fmt.Sprintf("  biggest: %s fell $%.2f", best.RawText, d)))
		b.WriteString("\n")
	}
	for _, it := range dropped {
		d, _ := watchlist.EffectiveDrop(it)
		b.WriteString(fmt.Sprintf("    %s  -$%.2f\n", it.RawText, d))
	}
	return b.String()
}

func (m Model) renderPlans() string {
	if m.plans == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Section.Render("Store plans"))
	if m.plans.Explanation != "" {
		b.WriteString(m.styles.Faint.Render("  " + m.plans.Explanation))
	}
	b.WriteString("\n")

	keys := plan.SortedKeys(m.plans)
	for i, key := range keys {
		p := m.plans.Plans[key]
		line := fmt.Sprintf("%s — %d store(s), $%.2f, %.0f min travel",
			p.Label, p.NumberOfStores, p.TotalPrice, p.TravelMinutes)
		if plan.IsRecommended(key, m.plans) {
			line = m.styles.Recommended.Render("★ " + line + " (recommended)")
		} else {
			line = "  " + line
		}
		if m.focus == FocusPlans && i == m.planCursor {
			line = m.styles.Selected.Render(line)
		}
		b.WriteString("  " + line + "\n")

		if route, ok := plan.BuildRouteQuery(m.origin, "", p.Stores); ok {
			b.WriteString(m.styles.Faint.Render("      route: " + route))
			b.WriteString("\n")
		}
		for _, disc := range p.Discounts {
			b.WriteString(m.styles.Faint.Render("      discount: " + disc))
			b.WriteString("\n")
		}
	}
	return b.String()
}
