// ABOUTME: Create and edit trip form as a bubbletea model
// ABOUTME: Produces a draft for the diff engine; never submits directly

package tripform

import (
	"errors"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/planventure/planventure-cli/internal/api"
	"github.com/planventure/planventure-cli/internal/trip"
	"github.com/planventure/planventure-cli/internal/tui/styles"
)

// Mode distinguishes planning a new trip from editing an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// SubmitMsg carries the finished draft. For edits the root model runs
// the diff engine against the original; for creates it builds the
// create request, optionally scaffolding a default itinerary.
type SubmitMsg struct {
	Mode     Mode
	TripID   int
	Draft    trip.Draft
	TripType trip.TripType
	Scaffold bool
}

// CancelledMsg abandons the form.
type CancelledMsg struct{}

// Form is the trip create/edit form model.
type Form struct {
	mode   Mode
	tripID int
	form   *huh.Form
	errMsg string
	busy   bool

	destination string
	startDate   string
	endDate     string
	latitude    string
	longitude   string
	itinerary   string
	tripType    string
	scaffold    bool
}

// NewCreate creates an empty form for planning a new trip.
func NewCreate() *Form {
	f := &Form{mode: ModeCreate, tripType: string(trip.TypeLeisure), scaffold: true}
	f.form = f.buildForm()
	return f
}

// NewEdit creates a form prefilled from the trip being edited.
func NewEdit(t api.Trip) *Form {
	d := trip.DraftOf(t)
	f := &Form{
		mode:        ModeEdit,
		tripID:      t.ID,
		destination: d.Destination,
		startDate:   d.StartDate,
		endDate:     d.EndDate,
		latitude:    d.Latitude,
		longitude:   d.Longitude,
		itinerary:   d.Itinerary,
	}
	f.form = f.buildForm()
	return f
}

func (f *Form) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Destination").
			Placeholder("Paris").
			Value(&f.destination).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("Destination is required")
				}
				return nil
			}),
		huh.NewInput().
			Title("Start date").
			Placeholder("YYYY-MM-DD").
			Value(&f.startDate).
			Validate(validateDate),
		huh.NewInput().
			Title("End date").
			Placeholder("YYYY-MM-DD").
			Value(&f.endDate).
			Validate(validateDate),
		huh.NewInput().
			Title("Latitude").
			Description("Optional; leave both blank for none").
			Value(&f.latitude).
			Validate(optionalFloat(-90, 90)),
		huh.NewInput().
			Title("Longitude").
			Value(&f.longitude).
			Validate(optionalFloat(-180, 180)),
		huh.NewText().
			Title("Itinerary").
			Description("JSON document or free-form notes").
			Value(&f.itinerary),
	}

	title := "Edit trip"
	if f.mode == ModeCreate {
		title = "Plan a new trip"
		var typeOptions []huh.Option[string]
		for _, tt := range trip.TripTypes {
			typeOptions = append(typeOptions, huh.NewOption(string(tt), string(tt)))
		}
		fields = append(fields,
			huh.NewSelect[string]().
				Title("Trip type").
				Options(typeOptions...).
				Value(&f.tripType),
			huh.NewConfirm().
				Title("Generate a default itinerary?").
				Description("Used only when the itinerary above is empty").
				Value(&f.scaffold),
		)
	}

	return huh.NewForm(huh.NewGroup(fields...).Title(title)).
		WithShowHelp(false)
}

// Init implements tea.Model.
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model.
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if f.busy {
		return f, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return f, func() tea.Msg { return CancelledMsg{} }
	}

	model, cmd := f.form.Update(msg)
	if hf, ok := model.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		f.busy = true
		f.errMsg = ""
		submit := SubmitMsg{
			Mode:   f.mode,
			TripID: f.tripID,
			Draft: trip.Draft{
				Destination: f.destination,
				StartDate:   f.startDate,
				EndDate:     f.endDate,
				Latitude:    f.latitude,
				Longitude:   f.longitude,
				Itinerary:   f.itinerary,
			},
			TripType: trip.TripType(f.tripType),
			Scaffold: f.scaffold,
		}
		return f, tea.Batch(cmd, func() tea.Msg { return submit })
	}
	return f, cmd
}

// Fail surfaces a failed save and re-arms the form with all values
// preserved. The returned command initializes the rebuilt form.
func (f *Form) Fail(msg string) tea.Cmd {
	f.errMsg = msg
	f.busy = false
	f.form = f.buildForm()
	return f.form.Init()
}

// View implements tea.Model.
func (f *Form) View() string {
	var b strings.Builder
	b.WriteString(f.form.View())
	if f.busy {
		b.WriteString("\n" + styles.Subtitle.Render("Saving..."))
	}
	if f.errMsg != "" {
		b.WriteString("\n" + styles.StatusError.Render(f.errMsg))
	}
	b.WriteString("\n" + styles.Help.Render("esc Cancel"))
	return b.String()
}

// validateDate requires a YYYY-MM-DD value.
func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return errors.New("Use YYYY-MM-DD format")
	}
	return nil
}

// optionalFloat allows blank input or a number within [min, max].
func optionalFloat(min, max float64) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.New("Must be a number")
		}
		if v < min || v > max {
			return errors.New("Out of range")
		}
		return nil
	}
}
