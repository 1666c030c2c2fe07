// ABOUTME: Login and register form as a bubbletea model
// ABOUTME: Validates input locally with huh before any network call

package authform

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/planventure/planventure-cli/internal/session"
	"github.com/planventure/planventure-cli/internal/tui/styles"
)

// Mode selects between signing in and creating an account.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// SubmitMsg is sent when the form completes with valid input.
type SubmitMsg struct {
	Mode     Mode
	Email    string
	Password string
}

// SwitchMsg is sent when the user toggles between login and register.
type SwitchMsg struct {
	Mode Mode
}

// CancelledMsg is sent when the user backs out of the form.
type CancelledMsg struct{}

// Form is the authentication form model.
type Form struct {
	mode     Mode
	form     *huh.Form
	email    string
	password string
	confirm  string
	errMsg   string
	busy     bool
}

// New creates an auth form in the given mode.
func New(mode Mode) *Form {
	f := &Form{mode: mode}
	f.form = f.buildForm()
	return f
}

func (f *Form) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&f.email).
			Validate(func(s string) error {
				return session.ValidateEmail(strings.ToLower(strings.TrimSpace(s)))
			}),
	}

	if f.mode == ModeLogin {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&f.password).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("Password is required")
				}
				return nil
			}))
	} else {
		fields = append(fields,
			huh.NewInput().
				Title("Password").
				Description("At least 8 characters with a letter and a number").
				EchoMode(huh.EchoModePassword).
				Value(&f.password).
				Validate(session.ValidatePassword),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&f.confirm).
				Validate(func(s string) error {
					if s != f.password {
						return errors.New("Passwords do not match")
					}
					return nil
				}))
	}

	title := "Sign in to PlanVenture"
	if f.mode == ModeRegister {
		title = "Create a PlanVenture account"
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
		// A submit is in flight; ignore input until Fail or Reset.
		return f, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return f, func() tea.Msg { return CancelledMsg{} }
		case "ctrl+r":
			next := ModeRegister
			if f.mode == ModeRegister {
				next = ModeLogin
			}
			return f, func() tea.Msg { return SwitchMsg{Mode: next} }
		}
	}

	model, cmd := f.form.Update(msg)
	if hf, ok := model.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		f.busy = true
		f.errMsg = ""
		submit := SubmitMsg{
			Mode:     f.mode,
			Email:    strings.ToLower(strings.TrimSpace(f.email)),
			Password: f.password,
		}
		return f, tea.Batch(cmd, func() tea.Msg { return submit })
	}
	return f, cmd
}

// Fail surfaces a failed attempt and re-arms the form with the email
// preserved so the user can retry. The returned command initializes the
// rebuilt form.
func (f *Form) Fail(msg string) tea.Cmd {
	f.errMsg = msg
	f.busy = false
	f.password = ""
	f.confirm = ""
	f.form = f.buildForm()
	return f.form.Init()
}

// Mode returns the form's current mode.
func (f *Form) Mode() Mode {
	return f.mode
}

// View implements tea.Model.
func (f *Form) View() string {
	var b strings.Builder
	b.WriteString(f.form.View())
	if f.busy {
		b.WriteString("\n" + styles.Subtitle.Render("Signing in..."))
	}
	if f.errMsg != "" {
		b.WriteString("\n" + styles.StatusError.Render(f.errMsg))
	}
	hint := "ctrl+r Create account instead"
	if f.mode == ModeRegister {
		hint = "ctrl+r Sign in instead"
	}
	b.WriteString("\n" + styles.Help.Render(hint+"  •  esc Quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
