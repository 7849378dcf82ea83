package internal

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/ptshare/ptshare-client/internal/api"
	"github.com/ptshare/ptshare-client/internal/style"
)

// Messages sent from PostDetailScreen to parent

// PostDetailCancelledMsg signals user wants to close the post
type PostDetailCancelledMsg struct{}

// postDetailKeyMap defines key bindings for the post detail screen
type postDetailKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
}

func (k postDetailKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back}
}

func (k postDetailKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Back}}
}

// PostDetailScreen shows one post in full, with no preview truncation.
type PostDetailScreen struct {
	viewport      viewport.Model
	post          api.Post
	width, height int
	model         *Model
	help          help.Model
	keys          postDetailKeyMap
}

// NewPostDetailScreen creates a detail screen for the given post
func NewPostDetailScreen(post api.Post, m *Model) *PostDetailScreen {
	keys := postDetailKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}

	vp := viewport.New(m.width-14, m.height-12)
	vp.SetContent(wordwrap.String(post.Content, m.width-14))

	return &PostDetailScreen{
		viewport: vp,
		post:     post,
		width:    m.width,
		height:   m.height,
		model:    m,
		help:     help.New(),
		keys:     keys,
	}
}

// Init implements tea.Model
func (s *PostDetailScreen) Init() tea.Cmd {
	return nil
}

// Update implements ScreenModel
func (s *PostDetailScreen) Update(msg tea.Msg) (ScreenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, nil

	case PostDetailCancelledMsg:
		s.model.postDetailScreen = nil
		s.model.PopScreen()
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return PostDetailCancelledMsg{} }
		}
	}

	// Delegate to viewport for scrolling
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

// View implements tea.Model
func (s *PostDetailScreen) View() string {
	byline := style.MutedStyle.Render(
		fmt.Sprintf("%s · %s", s.post.Author, s.post.CreatedAt),
	)

	return style.RenderSubscreen(s.width, s.height, s.post.Title,
		lipgloss.JoinVertical(
			lipgloss.Left,
			byline,
			" ",
			s.viewport.View(),
			" ",
			lipgloss.JoinHorizontal(
				lipgloss.Left,
				s.help.View(s.keys),
				"  ",
				fmt.Sprintf("%3.f%%", s.viewport.ScrollPercent()*100),
			),
		),
	)
}

// SetSize updates dimensions
func (s *PostDetailScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.viewport.Width = width - 14
	s.viewport.Height = height - 12
	s.viewport.SetContent(wordwrap.String(s.post.Content, width-14))
}
