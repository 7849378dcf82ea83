package internal

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/ptshare/ptshare-client/internal/api"
	"github.com/ptshare/ptshare-client/internal/style"
)

// Messages sent from UploadScreen to parent
type UploadSubmittedMsg struct {
	Category api.Category
	Path     string
}

type UploadCancelledMsg struct{}

type uploadState int

const (
	uploadEditing uploadState = iota
	uploadSubmitting
)

// UploadScreen is a self-contained BubbleTea model for publishing an
// existing .torrent file.
type UploadScreen struct {
	form          *huh.Form
	state         uploadState
	width, height int
	model         *Model

	errText string

	category api.Category
	path     string
}

// categoryOptions builds the select options for the assignable categories
func categoryOptions() []huh.Option[api.Category] {
	categories := api.Categories()
	options := make([]huh.Option[api.Category], len(categories))
	for i, c := range categories {
		options[i] = huh.NewOption(c.Label(), c)
	}
	return options
}

func torrentPathValidator(str string) error {
	trimmed := strings.TrimSpace(str)
	if trimmed == "" {
		return fmt.Errorf("file path is required")
	}
	info, err := os.Stat(trimmed)
	if err != nil {
		return fmt.Errorf("cannot read %s", trimmed)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", trimmed)
	}
	return nil
}

// NewUploadScreen creates a new upload dialog
func NewUploadScreen(m *Model) (*UploadScreen, tea.Cmd) {
	screen := &UploadScreen{
		width:    m.width,
		height:   m.height,
		model:    m,
		category: api.CategoryVideo,
	}

	screen.buildForm()
	return screen, screen.form.Init()
}

// buildForm recreates the form bound to the current values, so a failed
// submit re-arms the dialog without losing them.
func (s *UploadScreen) buildForm() {
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[api.Category]().
				Key("category").
				Title("Category").
				Options(categoryOptions()...).
				Value(&s.category),

			huh.NewInput().
				Key("path").
				Title("Torrent File").
				Placeholder("/path/to/file.torrent").
				Validate(torrentPathValidator).
				Value(&s.path),

			huh.NewConfirm().
				Key("confirm").
				Title("Upload this seed?").
				Affirmative("Upload").
				Negative("Cancel"),
		),
	).
		WithWidth(60).
		WithShowHelp(true).
		WithShowErrors(true)
}

// Init implements tea.Model
func (s *UploadScreen) Init() tea.Cmd {
	return s.form.Init()
}

// SetError surfaces a failed upload and re-arms the form with the
// previous values intact.
func (s *UploadScreen) SetError(text string) {
	s.errText = text
	s.state = uploadEditing
	s.buildForm()
	_ = s.form.Init()
}

// Update implements ScreenModel
func (s *UploadScreen) Update(msg tea.Msg) (ScreenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, nil

	case UploadSubmittedMsg:
		return s, s.model.uploadSeed(msg.Category, msg.Path)

	case UploadCancelledMsg:
		s.model.uploadScreen = nil
		s.model.PopScreen()
		return s, nil

	case tea.KeyMsg:
		// A write in flight is not cancellable.
		if s.state == uploadSubmitting {
			return s, nil
		}
		if msg.String() == "esc" {
			return s, func() tea.Msg { return UploadCancelledMsg{} }
		}
	}

	if s.state == uploadSubmitting {
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
			return s, func() tea.Msg { return UploadCancelledMsg{} }
		}

		s.state = uploadSubmitting
		s.errText = ""
		category := s.category
		path := strings.TrimSpace(s.path)
		return s, func() tea.Msg {
			return UploadSubmittedMsg{Category: category, Path: path}
		}
	}

	return s, cmd
}

// View implements tea.Model
func (s *UploadScreen) View() string {
	var parts []string
	if s.errText != "" {
		parts = append(parts, style.ErrorBannerStyle.Render(s.errText), "")
	}
	if s.state == uploadSubmitting {
		parts = append(parts, style.MutedStyle.Render("Uploading..."))
	} else {
		parts = append(parts, s.form.View())
	}

	return style.RenderSubscreen(
		s.width,
		s.height,
		"Upload Seed",
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	)
}

// SetSize updates the screen dimensions
func (s *UploadScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}
