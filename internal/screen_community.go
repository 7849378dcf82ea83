package internal

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ptshare/ptshare-client/internal/api"
	"github.com/ptshare/ptshare-client/internal/style"
)

// Messages sent from CommunityScreen to parent
type PostSelectedMsg struct {
	Post api.Post
}

// previewLimit is the longest post body shown in the board list before
// truncation. The full body is only on the detail screen.
const previewLimit = 100

// truncate shortens s to limit characters, marking the cut with "...".
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// CommunityScreen is a self-contained BubbleTea model for the post board
type CommunityScreen struct {
	list          list.Model
	spinner       spinner.Model
	loading       bool
	width, height int
	model         *Model
}

// NewCommunityScreen creates the post board and kicks off the initial read.
func NewCommunityScreen(m *Model) (*CommunityScreen, tea.Cmd) {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(style.ColorFuscia)

	l := list.New([]list.Item{}, newPostDelegate(), m.width, m.height)
	l.Title = "Community"
	l.SetFilteringEnabled(true)
	l.SetShowStatusBar(true)
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read")),
			key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new post")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "seeds")),
		}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read")),
			key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new post")),
			key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "seeds")),
		}
	}

	screen := &CommunityScreen{
		list:    l,
		spinner: sp,
		width:   m.width,
		height:  m.height,
		model:   m,
	}
	screen.SetSize(m.width, m.height)

	return screen, tea.Batch(sp.Tick, screen.Reload())
}

// Reload re-reads the board.
func (s *CommunityScreen) Reload() tea.Cmd {
	s.loading = true
	return s.model.fetchPosts()
}

// ApplyPosts installs a board response.
func (s *CommunityScreen) ApplyPosts(posts []api.Post) {
	s.loading = false
	items := make([]list.Item, len(posts))
	for i, post := range posts {
		items[i] = postItem{post: post}
	}
	s.list.SetItems(items)
}

// FinishLoad clears the loading state after a failed read.
func (s *CommunityScreen) FinishLoad() {
	s.loading = false
}

// Init implements tea.Model
func (s *CommunityScreen) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update implements ScreenModel
func (s *CommunityScreen) Update(msg tea.Msg) (ScreenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case PostSelectedMsg:
		s.model.postDetailScreen = NewPostDetailScreen(msg.Post, s.model)
		s.model.PushScreen(ScreenPostDetail)
		return s, nil

	case tea.KeyMsg:
		// Custom keys only when the list filter prompt is not active
		if s.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "enter":
				if item, ok := s.list.SelectedItem().(postItem); ok {
					selected := item.post
					return s, func() tea.Msg { return PostSelectedMsg{Post: selected} }
				}
				return s, nil

			case "n":
				var cmd tea.Cmd
				s.model.composePostScreen, cmd = NewComposePostScreen(s.model)
				s.model.PushScreen(ScreenComposePost)
				return s, cmd

			case "r":
				return s, s.Reload()

			case "esc":
				var cmd tea.Cmd
				s.model.seedsScreen, cmd = NewSeedsScreen(s.model)
				s.model.NavigateTo(ScreenSeeds)
				return s, cmd
			}
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// View implements tea.Model
func (s *CommunityScreen) View() string {
	header := ""
	if s.loading {
		header = style.FilterBarStyle.Render(s.spinner.View() + "loading")
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, s.list.View()),
	)
}

// SetSize updates the screen dimensions
func (s *CommunityScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.list.SetSize(width-4, height-4)
}

// postItem represents a post in the board list
type postItem struct {
	post api.Post
}

func (i postItem) FilterValue() string { return i.post.Title }

func (i postItem) Title() string {
	return fmt.Sprintf("%s  %s", i.post.Title, style.MutedStyle.Render(i.post.Author))
}

func (i postItem) Description() string {
	return truncate(i.post.Content, previewLimit)
}

// newPostDelegate creates a custom delegate for post list items
func newPostDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.ShortHelpFunc = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "read"),
			),
		}
	}

	d.FullHelpFunc = func() [][]key.Binding {
		return [][]key.Binding{
			{
				key.NewBinding(
					key.WithKeys("enter"),
					key.WithHelp("enter", "read"),
				),
				key.NewBinding(
					key.WithKeys("n"),
					key.WithHelp("n", "new post"),
				),
			},
		}
	}

	return d
}
