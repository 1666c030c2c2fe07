// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Guards navigation on session state and routes input to child screens

package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/planventure/planventure-cli/internal/api"
	"github.com/planventure/planventure-cli/internal/session"
	"github.com/planventure/planventure-cli/internal/trip"
	"github.com/planventure/planventure-cli/internal/tui/authform"
	"github.com/planventure/planventure-cli/internal/tui/debuglog"
	"github.com/planventure/planventure-cli/internal/tui/styles"
	"github.com/planventure/planventure-cli/internal/tui/tripform"
	"github.com/planventure/planventure-cli/internal/tui/triplist"
	"github.com/planventure/planventure-cli/internal/tui/tripview"
)

// Layout constants
const (
	minTerminalWidth = 60
)

// initializedMsg is sent when session restoration finishes.
type initializedMsg struct {
	err error
}

// sessionChangedMsg is sent for every session state transition.
type sessionChangedMsg struct {
	state session.State
}

// authResultMsg is sent when a login or register round-trip completes.
type authResultMsg struct {
	err error
}

// tripsLoadedMsg is sent when a trip list page arrives.
type tripsLoadedMsg struct {
	page *api.TripPage
	err  error
}

// tripLoadedMsg is sent when a single trip arrives.
type tripLoadedMsg struct {
	trip *api.Trip
	err  error
}

// tripSavedMsg is sent when a create or update completes.
type tripSavedMsg struct {
	trip *api.Trip
	err  error
}

// tripDeletedMsg is sent when a deletion completes.
type tripDeletedMsg struct {
	deleted *api.DeletedTrip
	err     error
}

// App is the root model for the TUI.
type App struct {
	client  *api.Client
	manager *session.Manager

	screen  Screen
	current route
	// pending remembers where the user was headed when the guard
	// redirected to login, so a successful sign-in lands them there.
	pending *route

	width  int
	height int
	status string
	err    error

	spin    spinner.Model
	listPg  int
	curTrip *api.Trip

	// Child models
	auth   *authform.Form
	list   *triplist.Model
	detail *tripview.Model
	form   *tripform.Form

	sessionCh   chan session.State
	unsubscribe func()
}

// New creates the root TUI model. Session transitions are pumped into
// the bubbletea loop through a buffered channel so subscriber callbacks
// never block the session manager.
func New(client *api.Client, manager *session.Manager) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	a := &App{
		client:    client,
		manager:   manager,
		screen:    ScreenTripList,
		current:   route{screen: ScreenTripList},
		spin:      sp,
		listPg:    1,
		list:      triplist.New(),
		sessionCh: make(chan session.State, 8),
	}
	a.unsubscribe = manager.Subscribe(func(s session.State) {
		select {
		case a.sessionCh <- s:
		default:
		}
	})
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.initialize(), a.listenSession(), a.spin.Tick)
}

// initialize restores any persisted session off the Update loop.
func (a *App) initialize() tea.Cmd {
	return func() tea.Msg {
		return initializedMsg{err: a.manager.Initialize()}
	}
}

// listenSession waits for the next session transition. Re-issued after
// every receipt so the channel keeps draining.
func (a *App) listenSession() tea.Cmd {
	return func() tea.Msg {
		return sessionChangedMsg{state: <-a.sessionCh}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.forwardToScreen(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.unsubscribe()
			return a, tea.Quit
		}
		if msg.String() == "q" && a.screen == ScreenTripList {
			a.unsubscribe()
			return a, tea.Quit
		}
		return a.forwardToScreen(msg)

	case initializedMsg:
		if msg.err != nil {
			debuglog.Error("session restore failed", msg.err)
		}
		return a, a.navigate(a.current)

	case sessionChangedMsg:
		return a.handleSessionChanged(msg.state)

	case authform.SubmitMsg:
		return a, a.submitAuth(msg)

	case authform.SwitchMsg:
		return a, a.showAuth(msg.Mode)

	case authform.CancelledMsg:
		a.unsubscribe()
		return a, tea.Quit

	case authResultMsg:
		return a.handleAuthResult(msg)

	case triplist.SelectedMsg:
		return a, a.navigate(route{screen: ScreenTripDetail, tripID: msg.TripID})

	case triplist.CreateMsg:
		return a, a.navigate(route{screen: ScreenTripCreate})

	case triplist.RefreshMsg:
		return a, a.loadTrips(a.listPg)

	case triplist.PageMsg:
		a.listPg = msg.Page
		return a, a.loadTrips(msg.Page)

	case triplist.LogoutMsg:
		a.manager.Logout()
		return a, nil

	case tripview.EditMsg:
		return a, a.navigate(route{screen: ScreenTripEdit, tripID: msg.TripID})

	case tripview.DeleteMsg:
		return a, a.deleteTrip(msg.TripID)

	case tripview.BackMsg:
		return a, a.navigate(route{screen: ScreenTripList})

	case tripform.SubmitMsg:
		return a.handleTripSubmit(msg)

	case tripform.CancelledMsg:
		if a.curTrip != nil {
			return a, a.navigate(route{screen: ScreenTripDetail, tripID: a.curTrip.ID})
		}
		return a, a.navigate(route{screen: ScreenTripList})

	case tripsLoadedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.list.SetPage(msg.page)
		return a, nil

	case tripLoadedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.curTrip = msg.trip
		if a.screen == ScreenTripDetail {
			a.detail = tripview.New(a.curTrip)
		} else if a.screen == ScreenTripEdit {
			a.form = tripform.NewEdit(*a.curTrip)
			return a, a.form.Init()
		}
		return a, nil

	case tripSavedMsg:
		if msg.err != nil {
			if a.form != nil {
				return a, a.form.Fail(msg.err.Error())
			}
			a.err = msg.err
			return a, nil
		}
		a.curTrip = msg.trip
		a.form = nil
		a.status = "Saved " + msg.trip.Destination
		return a, a.navigate(route{screen: ScreenTripDetail, tripID: msg.trip.ID})

	case tripDeletedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.curTrip = nil
		a.status = "Deleted " + msg.deleted.Destination
		return a, a.navigate(route{screen: ScreenTripList})

	default:
		// huh form internals need every message while a form is active.
		return a.forwardToScreen(msg)
	}
}

// forwardToScreen routes a message to the active child model.
func (a *App) forwardToScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenLogin, ScreenRegister:
		if a.auth == nil {
			return a, nil
		}
		model, cmd := a.auth.Update(msg)
		a.auth = model.(*authform.Form)
		return a, cmd
	case ScreenTripList:
		model, cmd := a.list.Update(msg)
		a.list = model.(*triplist.Model)
		return a, cmd
	case ScreenTripDetail:
		if a.detail == nil {
			return a, nil
		}
		model, cmd := a.detail.Update(msg)
		a.detail = model.(*tripview.Model)
		return a, cmd
	case ScreenTripCreate, ScreenTripEdit:
		if a.form == nil {
			return a, nil
		}
		model, cmd := a.form.Update(msg)
		a.form = model.(*tripform.Form)
		return a, cmd
	}
	return a, nil
}

// navigate applies the guard's verdict for a navigation attempt. A
// redirect captures the target so the post-login landing restores it.
func (a *App) navigate(r route) tea.Cmd {
	switch evaluateGuard(a.manager.Initialized(), a.manager.Current(), r.screen) {
	case DecisionPending:
		a.current = r
		return nil
	case DecisionRedirectLogin:
		a.pending = &r
		return a.showAuth(authform.ModeLogin)
	}

	a.current = r
	a.screen = r.screen
	a.err = nil
	switch r.screen {
	case ScreenLogin:
		return a.showAuth(authform.ModeLogin)
	case ScreenRegister:
		return a.showAuth(authform.ModeRegister)
	case ScreenTripList:
		a.detail = nil
		a.form = nil
		return a.loadTrips(a.listPg)
	case ScreenTripDetail:
		a.detail = nil
		return a.loadTrip(r.tripID)
	case ScreenTripCreate:
		a.form = tripform.NewCreate()
		return a.form.Init()
	case ScreenTripEdit:
		a.form = nil
		return a.loadTrip(r.tripID)
	}
	return nil
}

// showAuth switches to the auth form in the given mode.
func (a *App) showAuth(mode authform.Mode) tea.Cmd {
	a.screen = ScreenLogin
	if mode == authform.ModeRegister {
		a.screen = ScreenRegister
	}
	a.auth = authform.New(mode)
	return a.auth.Init()
}

// handleSessionChanged re-runs the guard against the current route so a
// logout anywhere, including a forced one on a rejected credential,
// revokes protected screens immediately.
func (a *App) handleSessionChanged(state session.State) (tea.Model, tea.Cmd) {
	debuglog.Log("session state: %s", state)
	if protected(a.screen) && state == session.StateUnauthenticated {
		target := a.current
		a.pending = &target
		a.curTrip = nil
		a.detail = nil
		a.form = nil
		a.status = "Session ended. Sign in to continue."
		return a, tea.Batch(a.showAuth(authform.ModeLogin), a.listenSession())
	}
	return a, a.listenSession()
}

// submitAuth runs the login or register round-trip off the Update loop.
func (a *App) submitAuth(msg authform.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		var err error
		if msg.Mode == authform.ModeRegister {
			_, err = a.manager.Register(context.Background(), msg.Email, msg.Password)
		} else {
			_, err = a.manager.Login(context.Background(), msg.Email, msg.Password)
		}
		return authResultMsg{err: err}
	}
}

func (a *App) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, session.ErrSuperseded) {
			return a, nil
		}
		if a.auth != nil {
			return a, a.auth.Fail(msg.err.Error())
		}
		return a, nil
	}

	a.status = ""
	target := route{screen: ScreenTripList}
	if a.pending != nil {
		target = *a.pending
		a.pending = nil
	}
	return a, a.navigate(target)
}

// handleTripSubmit turns a finished form into the right API call. Edits
// go through the diff engine so only changed fields travel.
func (a *App) handleTripSubmit(msg tripform.SubmitMsg) (tea.Model, tea.Cmd) {
	if msg.Mode == tripform.ModeCreate {
		in, err := buildCreateInput(msg)
		if err != nil {
			return a, a.form.Fail(err.Error())
		}
		return a, a.createTrip(in)
	}

	if a.curTrip == nil {
		return a, a.navigate(route{screen: ScreenTripList})
	}
	patch, err := trip.Diff(*a.curTrip, msg.Draft)
	if errors.Is(err, trip.ErrNoChanges) {
		a.status = "No changes to save"
		a.form = nil
		return a, a.navigate(route{screen: ScreenTripDetail, tripID: a.curTrip.ID})
	}
	if err != nil {
		return a, a.form.Fail(err.Error())
	}
	return a, a.updateTrip(a.curTrip.ID, patch)
}

// buildCreateInput assembles the create request from a draft,
// scaffolding a default itinerary when asked and none was written.
func buildCreateInput(msg tripform.SubmitMsg) (api.CreateTripInput, error) {
	d := msg.Draft
	in := api.CreateTripInput{
		Destination: strings.TrimSpace(d.Destination),
		StartDate:   strings.TrimSpace(d.StartDate),
		EndDate:     strings.TrimSpace(d.EndDate),
		Itinerary:   strings.TrimSpace(d.Itinerary),
	}

	lat := strings.TrimSpace(d.Latitude)
	lng := strings.TrimSpace(d.Longitude)
	if (lat == "") != (lng == "") {
		return in, &trip.ValidationError{Message: "Provide both latitude and longitude, or neither"}
	}
	if lat != "" {
		latV, err := strconv.ParseFloat(lat, 64)
		if err != nil {
			return in, &trip.ValidationError{Message: "Latitude must be a number"}
		}
		lngV, err := strconv.ParseFloat(lng, 64)
		if err != nil {
			return in, &trip.ValidationError{Message: "Longitude must be a number"}
		}
		in.Latitude = &latV
		in.Longitude = &lngV
	}

	if in.Itinerary == "" && msg.Scaffold {
		scaffolded, err := trip.ScaffoldItinerary(in.Destination, in.StartDate, in.EndDate, msg.TripType)
		if err != nil {
			return in, err
		}
		in.Itinerary = scaffolded
	}
	return in, nil
}

// loadTrips fetches a page of trips.
func (a *App) loadTrips(page int) tea.Cmd {
	return func() tea.Msg {
		result, err := a.client.ListTrips(context.Background(), api.ListTripsOptions{Page: page})
		return tripsLoadedMsg{page: result, err: err}
	}
}

// loadTrip fetches a single trip.
func (a *App) loadTrip(id int) tea.Cmd {
	return func() tea.Msg {
		t, err := a.client.GetTrip(context.Background(), id)
		return tripLoadedMsg{trip: t, err: err}
	}
}

func (a *App) createTrip(in api.CreateTripInput) tea.Cmd {
	return func() tea.Msg {
		t, err := a.client.CreateTrip(context.Background(), in)
		return tripSavedMsg{trip: t, err: err}
	}
}

func (a *App) updateTrip(id int, patch api.TripPatch) tea.Cmd {
	return func() tea.Msg {
		t, err := a.client.UpdateTrip(context.Background(), id, patch)
		return tripSavedMsg{trip: t, err: err}
	}
}

func (a *App) deleteTrip(id int) tea.Cmd {
	return func() tea.Msg {
		deleted, err := a.client.DeleteTrip(context.Background(), id)
		return tripDeletedMsg{deleted: deleted, err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var content string
	switch evaluateGuard(a.manager.Initialized(), a.manager.Current(), a.screen) {
	case DecisionPending:
		content = a.spin.View() + " Loading..."
	default:
		content = a.viewScreen()
	}
	return a.wrapWithFrame(content)
}

func (a *App) viewScreen() string {
	switch a.screen {
	case ScreenLogin, ScreenRegister:
		if a.auth != nil {
			return a.auth.View()
		}
	case ScreenTripList:
		view := a.list.View()
		if a.err != nil {
			view += "\n" + styles.StatusError.Render("Error: "+a.err.Error())
		}
		return view
	case ScreenTripDetail:
		if a.err != nil {
			return styles.StatusError.Render("Error: " + a.err.Error())
		}
		if a.detail != nil {
			return a.detail.View()
		}
		return a.spin.View() + " Loading trip..."
	case ScreenTripCreate, ScreenTripEdit:
		if a.form != nil {
			return a.form.View()
		}
		return a.spin.View() + " Loading trip..."
	}
	return ""
}

// renderHeader creates the header bar with app branding and the
// signed-in account.
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := " " + titleStyle.Render("PlanVenture")
	rightText := ""
	if profile := a.manager.Profile(); profile != nil {
		rightText = contextStyle.Render(profile.EmailAddress) + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftText) - lipgloss.Width(rightText)
	if fillWidth < 0 {
		fillWidth = 0
	}
	return borderStyle.Render("╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮")
}

// renderFooter creates the footer with keyboard shortcuts and status.
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenLogin, ScreenRegister:
		shortcuts = []string{"Enter Submit", "ctrl+r Switch", "Esc Quit"}
	case ScreenTripList:
		shortcuts = []string{"↑↓ Navigate", "Enter Open", "n New", "[] Page", "r Refresh", "l Logout", "q Quit"}
	case ScreenTripDetail:
		shortcuts = []string{"e Edit", "d Delete", "b Back"}
	case ScreenTripCreate, ScreenTripEdit:
		shortcuts = []string{"Enter Next", "Esc Cancel"}
	}

	var styled []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styled = append(styled, s)
		}
	}

	leftText := " " + strings.Join(styled, "  ")
	leftPlain := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlain := ""
	if a.status != "" {
		rightText = statusStyle.Render(a.status) + " "
		rightPlain = a.status + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftPlain) - lipgloss.Width(rightPlain)
	if fillWidth < 0 {
		fillWidth = 0
	}
	return borderStyle.Render("╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯")
}

// wrapWithFrame wraps content with header and footer.
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder
	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())
	return sb.String()
}

// Run starts the TUI.
func Run(client *api.Client, manager *session.Manager) error {
	app := New(client, manager)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}
