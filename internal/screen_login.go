package internal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/ptshare/ptshare-client/internal/api"
	"github.com/ptshare/ptshare-client/internal/style"
)

// AuthMode represents the sub-mode the auth screen is in. Login and
// register are never active at the same time.
type AuthMode int

const (
	AuthModeLogin AuthMode = iota
	AuthModeRegister
)

type authState int

const (
	authIdle authState = iota
	authSubmitting
)

// Messages sent from LoginScreen to parent

// LoginSubmittedMsg signals a login attempt with the live challenge
type LoginSubmittedMsg struct {
	Username    string
	Password    string
	Code        string
	ChallengeID string
}

// RegisterSubmittedMsg signals a registration attempt
type RegisterSubmittedMsg struct {
	Username    string
	Password    string
	Code        string
	ChallengeID string
}

// loginKeyMap defines the keybindings for the auth screen
type loginKeyMap struct {
	Tab     key.Binding
	Enter   key.Binding
	Mode    key.Binding
	Captcha key.Binding
}

func (k loginKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Mode, k.Captcha}
}

func (k loginKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Tab, k.Enter, k.Mode, k.Captcha}}
}

func newLoginKeyMap() loginKeyMap {
	return loginKeyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Mode:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("^T", "login/register")),
		Captcha: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^R", "new captcha")),
	}
}

// LoginScreen is a self-contained BubbleTea model for the login and
// registration forms.
type LoginScreen struct {
	form          *huh.Form
	mode          AuthMode
	state         authState
	width, height int
	model         *Model
	help          help.Model
	keys          loginKeyMap

	// One live challenge at a time; replaced after every failed or
	// completed attempt, and never reused across submits.
	challenge   api.Captcha
	captchaPath string

	errText string
	notice  string

	// Form field values (bound to form inputs)
	username        string
	password        string
	confirmPassword string
	code            string
}

// enterSubmitsKeyMap creates a keymap where Enter submits the form
// immediately instead of tabbing through fields.
func enterSubmitsKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Input.Next = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next"))
	km.Confirm.Next = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next"))
	km.Input.Submit = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))
	km.Confirm.Submit = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))
	return km
}

func requiredField(label string) func(string) error {
	return func(str string) error {
		if strings.TrimSpace(str) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

// confirmPasswordValidator fails fast on a password mismatch before any
// network call is made.
func confirmPasswordValidator(password *string) func(string) error {
	return func(str string) error {
		if strings.TrimSpace(str) == "" {
			return fmt.Errorf("confirm password is required")
		}
		if str != *password {
			return fmt.Errorf("passwords do not match")
		}
		return nil
	}
}

// buildAuthForm creates a huh form for the given mode, bound to the
// screen's field values.
func buildAuthForm(mode AuthMode, username, password, confirmPassword, code *string) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("username").
			Title("Username").
			Placeholder("username").
			Validate(requiredField("username")).
			Value(username),

		huh.NewInput().
			Key("password").
			Title("Password").
			Placeholder("password").
			EchoMode(huh.EchoModePassword).
			Validate(requiredField("password")).
			Value(password),
	}

	if mode == AuthModeRegister {
		fields = append(fields,
			huh.NewInput().
				Key("confirm").
				Title("Confirm Password").
				Placeholder("password again").
				EchoMode(huh.EchoModePassword).
				Validate(confirmPasswordValidator(password)).
				Value(confirmPassword),
		)
	}

	fields = append(fields,
		huh.NewInput().
			Key("code").
			Title("Captcha").
			Placeholder("answer").
			Validate(requiredField("captcha answer")).
			Value(code),
	)

	return huh.NewForm(huh.NewGroup(fields...)).
		WithWidth(50).
		WithShowHelp(false).
		WithShowErrors(true).
		WithKeyMap(enterSubmitsKeyMap())
}

// NewLoginScreen creates the auth screen and kicks off the initial
// captcha fetch.
func NewLoginScreen(m *Model) (*LoginScreen, tea.Cmd) {
	screen := &LoginScreen{
		mode:   AuthModeLogin,
		width:  m.width,
		height: m.height,
		model:  m,
		help:   help.New(),
		keys:   newLoginKeyMap(),
	}
	if m.prefs != nil {
		screen.username = m.prefs.Username
	}

	screen.form = buildAuthForm(AuthModeLogin, &screen.username, &screen.password, &screen.confirmPassword, &screen.code)

	return screen, tea.Batch(screen.form.Init(), m.fetchCaptcha())
}

// Init implements tea.Model
func (s *LoginScreen) Init() tea.Cmd {
	return s.form.Init()
}

// SetChallenge installs a fresh challenge, clearing the previous answer.
func (s *LoginScreen) SetChallenge(challenge api.Captcha, imagePath string) {
	s.challenge = challenge
	s.captchaPath = imagePath
	s.code = ""
	s.state = authIdle
	s.rebuildForm()
}

// SetError surfaces an auth failure and re-arms the form. The attempt
// spent the challenge, so it is dropped; submits stay blocked until the
// replacement lands via SetChallenge.
func (s *LoginScreen) SetError(text string) {
	s.errText = text
	s.notice = ""
	s.state = authIdle
	s.code = ""
	s.challenge = api.Captcha{}
	s.rebuildForm()
}

// SwitchToLogin flips back to login mode after a successful
// registration.
func (s *LoginScreen) SwitchToLogin(notice string) {
	s.mode = AuthModeLogin
	s.notice = notice
	s.errText = ""
	s.state = authIdle
	s.code = ""
	s.confirmPassword = ""
	s.challenge = api.Captcha{}
	s.rebuildForm()
}

// rebuildForm recreates the form for the current mode. Bound values
// survive the rebuild.
func (s *LoginScreen) rebuildForm() {
	s.form = buildAuthForm(s.mode, &s.username, &s.password, &s.confirmPassword, &s.code)
	_ = s.form.Init()
}

// Update implements ScreenModel
func (s *LoginScreen) Update(msg tea.Msg) (ScreenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, nil

	case LoginSubmittedMsg:
		return s, s.model.submitLogin(msg.Username, msg.Password, msg.Code, msg.ChallengeID)
	case RegisterSubmittedMsg:
		return s, s.model.submitRegister(msg.Username, msg.Password, msg.Code, msg.ChallengeID)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+t":
			s.toggleMode()
			return s, nil
		case "ctrl+r":
			return s, s.model.fetchCaptcha()
		case "enter":
			if s.state == authSubmitting {
				return s, nil
			}
			// First update the form to commit the current field's value
			form, _ := s.form.Update(msg)
			if f, ok := form.(*huh.Form); ok {
				s.form = f
			}
			// Then submit the form immediately
			s.form.NextGroup()
			if s.form.State == huh.StateCompleted {
				return s, s.handleSubmit()
			}
			return s, nil
		}
	}

	if s.state == authSubmitting {
		return s, nil
	}

	// Update the form
	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	// Check if form is complete
	if s.form.State == huh.StateCompleted {
		return s, s.handleSubmit()
	}

	return s, cmd
}

func (s *LoginScreen) toggleMode() {
	if s.mode == AuthModeLogin {
		s.mode = AuthModeRegister
	} else {
		s.mode = AuthModeLogin
	}
	s.errText = ""
	s.notice = ""
	s.code = ""
	s.confirmPassword = ""
	s.rebuildForm()
}

// handleSubmit processes the form submission
func (s *LoginScreen) handleSubmit() tea.Cmd {
	if s.challenge.UUID == "" {
		s.SetError("Captcha not loaded yet, refresh with ctrl+r.")
		return nil
	}

	s.state = authSubmitting
	s.errText = ""
	s.notice = ""

	username := s.username
	password := s.password
	code := s.code
	challengeID := s.challenge.UUID

	if s.mode == AuthModeRegister {
		return func() tea.Msg {
			return RegisterSubmittedMsg{
				Username:    username,
				Password:    password,
				Code:        code,
				ChallengeID: challengeID,
			}
		}
	}

	return func() tea.Msg {
		return LoginSubmittedMsg{
			Username:    username,
			Password:    password,
			Code:        code,
			ChallengeID: challengeID,
		}
	}
}

// View implements tea.Model
func (s *LoginScreen) View() string {
	var title string
	switch s.mode {
	case AuthModeRegister:
		title = "Create Account"
	default:
		title = "Sign In"
	}

	banner := style.ApplyBoldForegroundGrad("PT Share", style.ColorFuscia, style.ColorCyan)

	var parts []string
	parts = append(parts, banner, "")

	if s.errText != "" {
		parts = append(parts, style.ErrorBannerStyle.Render(s.errText), "")
	}
	if s.notice != "" {
		parts = append(parts, style.NoticeStyle.Render(s.notice), "")
	}

	if s.state == authSubmitting {
		parts = append(parts, style.MutedStyle.Render("Submitting..."))
	} else {
		parts = append(parts, s.form.View())
	}

	if s.captchaPath != "" {
		parts = append(parts, "", style.MutedStyle.Render("Captcha image: "+s.captchaPath))
	}

	parts = append(parts, "", s.help.View(s.keys))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	return style.RenderSubscreen(s.width, s.height, title, content)
}

// SetSize updates the screen dimensions
func (s *LoginScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}
