// ABOUTME: Trip list screen with cursor navigation and paging
// ABOUTME: Emits selection and action messages consumed by the root model

package triplist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/planventure/planventure-cli/internal/api"
	"github.com/planventure/planventure-cli/internal/tui/styles"
)

// SelectedMsg is sent when a trip is opened.
type SelectedMsg struct {
	TripID int
}

// CreateMsg is sent when the user wants to plan a new trip.
type CreateMsg struct{}

// RefreshMsg asks the root model to reload the current page.
type RefreshMsg struct{}

// PageMsg asks the root model to load another page.
type PageMsg struct {
	Page int
}

// LogoutMsg is sent when the user ends the session from the list.
type LogoutMsg struct{}

// Model is the trip list screen.
type Model struct {
	trips      []api.Trip
	pagination api.Pagination
	cursor     int
}

// New creates an empty trip list.
func New() *Model {
	return &Model{}
}

// SetPage replaces the list contents with a loaded page.
func (m *Model) SetPage(page *api.TripPage) {
	m.trips = page.Trips
	m.pagination = page.Pagination
	if m.cursor >= len(m.trips) {
		m.cursor = 0
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.trips)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.trips) {
			id := m.trips[m.cursor].ID
			return m, func() tea.Msg { return SelectedMsg{TripID: id} }
		}
	case "n":
		return m, func() tea.Msg { return CreateMsg{} }
	case "r":
		return m, func() tea.Msg { return RefreshMsg{} }
	case "]":
		if m.pagination.HasNext {
			next := m.pagination.Page + 1
			return m, func() tea.Msg { return PageMsg{Page: next} }
		}
	case "[":
		if m.pagination.HasPrev {
			prev := m.pagination.Page - 1
			return m, func() tea.Msg { return PageMsg{Page: prev} }
		}
	case "l":
		return m, func() tea.Msg { return LogoutMsg{} }
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Your trips") + "\n")

	if len(m.trips) == 0 {
		b.WriteString(styles.Subtitle.Render("No trips yet. Press n to plan one.") + "\n")
		return b.String()
	}

	for i, t := range m.trips {
		line := fmt.Sprintf("%-25s %s → %s", truncate(t.Destination, 25), t.StartDate, t.EndDate)
		if t.Coordinates != nil {
			line += "  ⌖"
		}
		if i == m.cursor {
			b.WriteString(styles.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if m.pagination.Pages > 1 {
		b.WriteString("\n" + styles.Subtitle.Render(
			fmt.Sprintf("Page %d of %d (%d trips)", m.pagination.Page, m.pagination.Pages, m.pagination.Total)))
	}
	return b.String()
}

// truncate shortens a string to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
