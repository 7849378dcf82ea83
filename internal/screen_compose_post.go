package internal

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/ptshare/ptshare-client/internal/style"
)

// Messages sent from ComposePostScreen to parent
type PostSubmittedMsg struct {
	Title   string
	Content string
}

type ComposePostCancelledMsg struct{}

type composeState int

const (
	composeEditing composeState = iota
	composeSubmitting
)

// ComposePostScreen is a self-contained BubbleTea model for writing a
// new board post.
type ComposePostScreen struct {
	form          *huh.Form
	state         composeState
	width, height int
	model         *Model

	errText string

	title   string
	content string
}

// NewComposePostScreen creates a new post composer
func NewComposePostScreen(m *Model) (*ComposePostScreen, tea.Cmd) {
	screen := &ComposePostScreen{
		width:  m.width,
		height: m.height,
		model:  m,
	}

	screen.buildForm()
	return screen, screen.form.Init()
}

func (s *ComposePostScreen) buildForm() {
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Placeholder("post title").
				CharLimit(120).
				Validate(func(str string) error {
					if strings.TrimSpace(str) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}).
				Value(&s.title),

			huh.NewText().
				Key("content").
				Title("Content").
				Placeholder("write something...").
				CharLimit(4000).
				Lines(8).
				Validate(func(str string) error {
					if strings.TrimSpace(str) == "" {
						return fmt.Errorf("content is required")
					}
					return nil
				}).
				Value(&s.content),

			huh.NewConfirm().
				Key("confirm").
				Title("Publish this post?").
				Affirmative("Publish").
				Negative("Cancel"),
		),
	).
		WithWidth(64).
		WithShowHelp(true).
		WithShowErrors(true)
}

// Init implements tea.Model
func (s *ComposePostScreen) Init() tea.Cmd {
	return s.form.Init()
}

// SetError surfaces a failed publish and re-arms the form with the
// draft intact.
func (s *ComposePostScreen) SetError(text string) {
	s.errText = text
	s.state = composeEditing
	s.buildForm()
	_ = s.form.Init()
}

// Update implements ScreenModel
func (s *ComposePostScreen) Update(msg tea.Msg) (ScreenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, nil

	case PostSubmittedMsg:
		return s, s.model.createPost(msg.Title, msg.Content)

	case ComposePostCancelledMsg:
		s.model.composePostScreen = nil
		s.model.PopScreen()
		return s, nil

	case tea.KeyMsg:
		// A write in flight is not cancellable.
		if s.state == composeSubmitting {
			return s, nil
		}
		if msg.String() == "esc" {
			return s, func() tea.Msg { return ComposePostCancelledMsg{} }
		}
	}

	if s.state == composeSubmitting {
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
			return s, func() tea.Msg { return ComposePostCancelledMsg{} }
		}

		s.state = composeSubmitting
		s.errText = ""
		title := strings.TrimSpace(s.title)
		content := s.content
		return s, func() tea.Msg {
			return PostSubmittedMsg{Title: title, Content: content}
		}
	}

	return s, cmd
}

// View implements tea.Model
func (s *ComposePostScreen) View() string {
	var parts []string
	if s.errText != "" {
		parts = append(parts, style.ErrorBannerStyle.Render(s.errText), "")
	}
	if s.state == composeSubmitting {
		parts = append(parts, style.MutedStyle.Render("Publishing..."))
	} else {
		parts = append(parts, s.form.View())
	}

	return style.RenderSubscreen(
		s.width,
		s.height,
		"New Post",
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	)
}

// SetSize updates the screen dimensions
func (s *ComposePostScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}
