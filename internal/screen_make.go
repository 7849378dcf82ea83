package internal

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/ptshare/ptshare-client/internal/api"
	"github.com/ptshare/ptshare-client/internal/style"
)

// Messages sent from MakeScreen to parent
type MakeSubmittedMsg struct {
	Category   api.Category
	SourcePath string
}

type MakeCancelledMsg struct{}

type makeState int

const (
	makeEditing makeState = iota
	makeSubmitting
)

// MakeScreen is a self-contained BubbleTea model for asking the server
// to build a .torrent from a path it can reach. The source path is
// server-side, so it is not checked against the local filesystem.
type MakeScreen struct {
	form          *huh.Form
	state         makeState
	width, height int
	model         *Model

	errText string

	category   api.Category
	sourcePath string
}

// NewMakeScreen creates a new make-seed dialog
func NewMakeScreen(m *Model) (*MakeScreen, tea.Cmd) {
	screen := &MakeScreen{
		width:    m.width,
		height:   m.height,
		model:    m,
		category: api.CategoryVideo,
	}

	screen.buildForm()
	return screen, screen.form.Init()
}

func (s *MakeScreen) buildForm() {
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[api.Category]().
				Key("category").
				Title("Category").
				Options(categoryOptions()...).
				Value(&s.category),

			huh.NewInput().
				Key("sourcePath").
				Title("Source Path (on server)").
				Placeholder("/data/content/movie.mkv").
				Validate(func(str string) error {
					if strings.TrimSpace(str) == "" {
						return fmt.Errorf("source path is required")
					}
					return nil
				}).
				Value(&s.sourcePath),

			huh.NewConfirm().
				Key("confirm").
				Title("Create a seed from this path?").
				Affirmative("Create").
				Negative("Cancel"),
		),
	).
		WithWidth(60).
		WithShowHelp(true).
		WithShowErrors(true)
}

// Init implements tea.Model
func (s *MakeScreen) Init() tea.Cmd {
	return s.form.Init()
}

// SetError surfaces a failed make and re-arms the form with the
// previous values intact.
func (s *MakeScreen) SetError(text string) {
	s.errText = text
	s.state = makeEditing
	s.buildForm()
	_ = s.form.Init()
}

// Update implements ScreenModel
func (s *MakeScreen) Update(msg tea.Msg) (ScreenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, nil

	case MakeSubmittedMsg:
		return s, s.model.makeSeed(msg.Category, msg.SourcePath)

	case MakeCancelledMsg:
		s.model.makeScreen = nil
		s.model.PopScreen()
		return s, nil

	case tea.KeyMsg:
		// A write in flight is not cancellable.
		if s.state == makeSubmitting {
			return s, nil
		}
		if msg.String() == "esc" {
			return s, func() tea.Msg { return MakeCancelledMsg{} }
		}
	}

	if s.state == makeSubmitting {
		return s, nil
	}

	// Update the form
	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	// Check if form is complete
	if s.form.State == huh.StateCompleted {
		if !s.form.GetBool("confirm") {
			return s, func() tea.Msg { return MakeCancelledMsg{} }
		}

		s.state = makeSubmitting
		s.errText = ""
		category := s.category
		sourcePath := strings.TrimSpace(s.sourcePath)
		return s, func() tea.Msg {
			return MakeSubmittedMsg{Category: category, SourcePath: sourcePath}
		}
	}

	return s, cmd
}

// View implements tea.Model
func (s *MakeScreen) View() string {
	var parts []string
	if s.errText != "" {
		parts = append(parts, style.ErrorBannerStyle.Render(s.errText), "")
	}
	if s.state == makeSubmitting {
		parts = append(parts, style.MutedStyle.Render("Creating seed..."))
	} else {
		parts = append(parts, s.form.View())
	}

	return style.RenderSubscreen(
		s.width,
		s.height,
		"Make Seed",
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	)
}

// SetSize updates the screen dimensions
func (s *MakeScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}
