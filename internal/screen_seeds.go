package internal

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ptshare/ptshare-client/internal/api"
	"github.com/ptshare/ptshare-client/internal/style"
)

// Messages sent from SeedsScreen to parent
type SeedSelectedMsg struct {
	Item api.SeedItem
}

// seedsKeyMap defines the custom keybindings shown in the list help
type seedsKeyMap struct {
	Download  key.Binding
	Category  key.Binding
	Search    key.Binding
	Upload    key.Binding
	Make      key.Binding
	Community key.Binding
	Downloads key.Binding
	Refresh   key.Binding
	Logout    key.Binding
}

func newSeedsKeyMap() seedsKeyMap {
	return seedsKeyMap{
		Download:  key.NewBinding(key.WithKeys("enter", "d"), key.WithHelp("enter", "download")),
		Category:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Upload:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
		Make:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "make seed")),
		Community: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "community")),
		Downloads: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "downloads")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Logout:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("^D", "log out")),
	}
}

// SeedsScreen is a self-contained BubbleTea model for browsing seeds
type SeedsScreen struct {
	list          list.Model
	spinner       spinner.Model
	searchInput   textinput.Model
	searching     bool
	loading       bool
	width, height int
	model         *Model
	keys          seedsKeyMap

	// Filter state. gen increments on every filter change or reload;
	// a list response carrying a stale gen is dropped.
	category api.Category
	keyword  string
	gen      int
}

// NewSeedsScreen creates the seed browser and kicks off the initial read.
func NewSeedsScreen(m *Model) (*SeedsScreen, tea.Cmd) {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(style.ColorFuscia)

	search := textinput.New()
	search.Placeholder = "seed name"
	search.CharLimit = 64
	search.Width = 30

	keys := newSeedsKeyMap()

	l := list.New([]list.Item{}, newSeedDelegate(), m.width, m.height)
	l.Title = "Seeds"
	// Server-side filtering via category and keyword, not the list's own.
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(true)
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Download, keys.Category, keys.Search, keys.Upload}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{
			keys.Download, keys.Category, keys.Search, keys.Upload,
			keys.Make, keys.Community, keys.Downloads, keys.Refresh, keys.Logout,
		}
	}

	screen := &SeedsScreen{
		list:        l,
		spinner:     sp,
		searchInput: search,
		width:       m.width,
		height:      m.height,
		model:       m,
		keys:        keys,
		category:    api.CategoryAll,
	}

	return screen, tea.Batch(sp.Tick, screen.Reload())
}

// Reload issues a list read for the current filter state under a fresh
// generation.
func (s *SeedsScreen) Reload() tea.Cmd {
	s.gen++
	s.loading = true
	return s.model.fetchSeeds(s.gen, s.category, s.keyword)
}

// ApplyList installs a list response, dropping it when its generation
// is no longer the current one.
func (s *SeedsScreen) ApplyList(msg seedListMsg) {
	if msg.gen != s.gen {
		return
	}
	s.loading = false

	items := make([]list.Item, len(msg.items))
	for i, seed := range msg.items {
		items[i] = seedItem{seed: seed}
	}
	s.list.SetItems(items)
	s.list.ResetSelected()
}

// FinishLoad clears the loading state after a failed read, keeping the
// previous items on screen.
func (s *SeedsScreen) FinishLoad(gen int) {
	if gen != s.gen {
		return
	}
	s.loading = false
}

// Init implements tea.Model
func (s *SeedsScreen) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update implements ScreenModel
func (s *SeedsScreen) Update(msg tea.Msg) (ScreenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case SeedSelectedMsg:
		return s, s.model.downloadSeed(msg.Item)

	case tea.KeyMsg:
		if s.searching {
			return s.handleSearchKeys(msg)
		}
		return s.handleKeys(msg)
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// handleSearchKeys handles input while the keyword prompt is focused
func (s *SeedsScreen) handleSearchKeys(msg tea.KeyMsg) (ScreenModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.searching = false
		s.keyword = s.searchInput.Value()
		s.searchInput.Blur()
		return s, s.Reload()
	case "esc":
		s.searching = false
		s.searchInput.SetValue(s.keyword)
		s.searchInput.Blur()
		return s, nil
	}

	var cmd tea.Cmd
	s.searchInput, cmd = s.searchInput.Update(msg)
	return s, cmd
}

// handleKeys handles keyboard input
func (s *SeedsScreen) handleKeys(msg tea.KeyMsg) (ScreenModel, tea.Cmd) {
	switch msg.String() {
	case "enter", "d":
		if item, ok := s.list.SelectedItem().(seedItem); ok {
			selected := item.seed
			return s, func() tea.Msg { return SeedSelectedMsg{Item: selected} }
		}
		return s, nil

	case "c":
		s.category = nextCategory(s.category)
		return s, s.Reload()

	case "/":
		s.searching = true
		s.searchInput.SetValue(s.keyword)
		return s, s.searchInput.Focus()

	case "r":
		return s, s.Reload()

	case "u":
		var cmd tea.Cmd
		s.model.uploadScreen, cmd = NewUploadScreen(s.model)
		s.model.PushScreen(ScreenUpload)
		return s, cmd

	case "m":
		var cmd tea.Cmd
		s.model.makeScreen, cmd = NewMakeScreen(s.model)
		s.model.PushScreen(ScreenMake)
		return s, cmd

	case "p":
		var cmd tea.Cmd
		s.model.communityScreen, cmd = NewCommunityScreen(s.model)
		s.model.NavigateTo(ScreenCommunity)
		return s, cmd

	case "t":
		s.model.downloadsScreen = NewDownloadsScreen(s.model)
		s.model.PushScreen(ScreenDownloads)
		return s, nil

	case "ctrl+d":
		s.model.modalScreen = NewModalScreen(
			ModalTypeLogout,
			"Log Out",
			"Log out and return to the sign-in screen?",
			[]string{"Cancel", "Log Out"},
			s.model,
		)
		s.model.PushScreen(ScreenModal)
		return s, s.model.modalScreen.Init()
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// nextCategory cycles All -> Video -> Music -> Book -> Image -> Other -> All
func nextCategory(c api.Category) api.Category {
	if c >= api.CategoryOther {
		return api.CategoryAll
	}
	return c + 1
}

// filterBar renders the active category and keyword above the list
func (s *SeedsScreen) filterBar() string {
	categoryLabel := "All"
	if s.category != api.CategoryAll {
		categoryLabel = s.category.Label()
	}

	bar := fmt.Sprintf("Category: %s", style.CategoryStyle.Render(categoryLabel))
	if s.searching {
		bar += "  Search: " + s.searchInput.View()
	} else if s.keyword != "" {
		bar += fmt.Sprintf("  Search: %q", s.keyword)
	}
	if s.loading {
		bar += "  " + s.spinner.View() + "loading"
	}
	return style.FilterBarStyle.Render(bar)
}

// View implements tea.Model
func (s *SeedsScreen) View() string {
	main := lipgloss.JoinVertical(
		lipgloss.Left,
		s.filterBar(),
		s.list.View(),
	)

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		main,
		" ",
		s.model.renderTaskWidget(),
	)

	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

// SetSize updates the screen dimensions
func (s *SeedsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	// Leave room for the filter bar, the task widget column, and padding.
	listWidth := width - 33
	if listWidth < 20 {
		listWidth = 20
	}
	listHeight := height - 4
	if listHeight < 5 {
		listHeight = 5
	}
	s.list.SetSize(listWidth, listHeight)
}

// seedItem represents a seed in the list
type seedItem struct {
	seed api.SeedItem
}

func (i seedItem) FilterValue() string { return i.seed.Name }

func (i seedItem) Title() string {
	return fmt.Sprintf("%s  %s", i.seed.Name, style.CategoryStyle.Render("["+i.seed.CategoryID.Label()+"]"))
}

func (i seedItem) Description() string {
	return fmt.Sprintf("by %s · %s · %d seeding", i.seed.Creator, i.seed.CreatedTime, i.seed.SeederCount)
}

// newSeedDelegate creates a custom delegate for seed list items
func newSeedDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.ShortHelpFunc = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "download"),
			),
		}
	}

	d.FullHelpFunc = func() [][]key.Binding {
		return [][]key.Binding{
			{
				key.NewBinding(
					key.WithKeys("enter"),
					key.WithHelp("enter", "download"),
				),
				key.NewBinding(
					key.WithKeys("c"),
					key.WithHelp("c", "category"),
				),
			},
		}
	}

	return d
}
