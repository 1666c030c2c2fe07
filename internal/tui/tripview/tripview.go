// ABOUTME: Trip detail screen rendering one trip read-only
// ABOUTME: Offers edit, delete (with confirmation), and back actions

package tripview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/planventure/planventure-cli/internal/api"
	"github.com/planventure/planventure-cli/internal/tui/styles"
)

// EditMsg is sent when the user wants to edit the shown trip.
type EditMsg struct {
	TripID int
}

// DeleteMsg is sent after the user confirms deletion.
type DeleteMsg struct {
	TripID int
}

// BackMsg returns to the trip list.
type BackMsg struct{}

// Model is the trip detail screen.
type Model struct {
	trip       *api.Trip
	confirming bool
}

// New creates a detail view for the given trip.
func New(t *api.Trip) *Model {
	return &Model{trip: t}
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

	if m.confirming {
		switch key.String() {
		case "y":
			m.confirming = false
			id := m.trip.ID
			return m, func() tea.Msg { return DeleteMsg{TripID: id} }
		default:
			m.confirming = false
		}
		return m, nil
	}

	switch key.String() {
	case "e":
		id := m.trip.ID
		return m, func() tea.Msg { return EditMsg{TripID: id} }
	case "d":
		m.confirming = true
	case "b", "esc":
		return m, func() tea.Msg { return BackMsg{} }
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	t := m.trip
	var b strings.Builder

	b.WriteString(styles.Title.Render(t.Destination) + "\n")
	b.WriteString(styles.Label.Render("Dates      ") + styles.Value.Render(t.StartDate+" → "+t.EndDate) + "\n")
	if t.Coordinates != nil {
		b.WriteString(styles.Label.Render("Location   ") +
			styles.Value.Render(fmt.Sprintf("%.4f, %.4f", t.Coordinates.Latitude, t.Coordinates.Longitude)) + "\n")
	}
	b.WriteString(styles.Label.Render("Updated    ") + styles.Value.Render(t.UpdatedAt) + "\n")

	if t.Itinerary != "" {
		b.WriteString("\n" + styles.Subtitle.Render("Itinerary") + "\n")
		b.WriteString(formatItinerary(t.Itinerary) + "\n")
	}

	if m.confirming {
		b.WriteString("\n" + styles.StatusWarning.Render("Delete this trip? Press y to confirm, any other key to cancel."))
	}
	return b.String()
}

// formatItinerary pretty-prints the itinerary JSON, falling back to the
// raw text when it is not valid JSON.
func formatItinerary(raw string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return raw
	}
	return buf.String()
}
