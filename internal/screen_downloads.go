package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ptshare/ptshare-client/internal/style"
)

// Messages sent from DownloadsScreen to parent

// DownloadsCancelledMsg signals user wants to close the downloads screen
type DownloadsCancelledMsg struct{}

// downloadsKeyMap defines key bindings for the downloads screen help display
type downloadsKeyMap struct {
	Back key.Binding
}

func (k downloadsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back}
}

func (k downloadsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Back}}
}

// DownloadsScreen is a self-contained BubbleTea model for viewing seed
// download tasks.
type DownloadsScreen struct {
	width, height int
	model         *Model
	help          help.Model
	keys          downloadsKeyMap
}

// NewDownloadsScreen creates a new downloads screen
func NewDownloadsScreen(m *Model) *DownloadsScreen {
	keys := downloadsKeyMap{
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}

	return &DownloadsScreen{
		width:  m.width,
		height: m.height,
		model:  m,
		help:   help.New(),
		keys:   keys,
	}
}

// Init implements tea.Model
func (s *DownloadsScreen) Init() tea.Cmd {
	return nil
}

// Update implements ScreenModel
func (s *DownloadsScreen) Update(msg tea.Msg) (ScreenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, nil

	case DownloadsCancelledMsg:
		s.model.PopScreen()
		return s, nil

	case tea.KeyMsg:
		return s.handleKeys(msg)

	case progress.FrameMsg:
		// Handle progress animation updates
		var cmds []tea.Cmd
		for taskID, prog := range s.model.taskProgress {
			model, cmd := prog.Update(msg)
			s.model.taskProgress[taskID] = model.(progress.Model)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return s, tea.Batch(cmds...)
	}

	return s, nil
}

// View implements tea.Model
func (s *DownloadsScreen) View() string {
	activeTasks := s.model.taskManager.GetActive()
	completedTasks := s.model.taskManager.GetCompleted(10)

	var b strings.Builder

	b.WriteString(style.TitleStyle.Render("Downloads"))
	b.WriteString("\n\n")

	if len(activeTasks) > 0 {
		sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(style.ColorFuscia)
		b.WriteString(sectionStyle.Render("Active"))
		b.WriteString("\n\n")

		for _, task := range activeTasks {
			b.WriteString(s.renderTask(task))
			b.WriteString("\n\n")
		}
	} else {
		b.WriteString(style.MutedStyle.Render("No active downloads"))
		b.WriteString("\n\n")
	}

	if len(completedTasks) > 0 {
		b.WriteString("\n")
		sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(style.ColorFuscia)
		b.WriteString(sectionStyle.Render("Recent"))
		b.WriteString("\n\n")

		for _, task := range completedTasks {
			b.WriteString(s.renderCompletedTask(task))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(style.MutedStyle.Render("Saving to " + s.model.downloadDir))
	b.WriteString("\n\n")
	b.WriteString(s.help.View(s.keys))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// SetSize updates dimensions
func (s *DownloadsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// handleKeys handles keyboard input
func (s *DownloadsScreen) handleKeys(msg tea.KeyMsg) (ScreenModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return DownloadsCancelledMsg{} }
	}
	return s, nil
}

// renderTask renders an active task with progress bar
func (s *DownloadsScreen) renderTask(task *Task) string {
	var b strings.Builder

	highlightStyle := lipgloss.NewStyle().Bold(true).Foreground(style.ColorFuscia)
	b.WriteString(highlightStyle.Render(task.FileName))
	b.WriteString("\n")

	// Progress bar (40 chars). A torrent payload of unknown size keeps
	// the bar empty and only the byte counter moves.
	prog := float64(task.TransferredBytes) / float64(task.TotalBytes)
	if task.TotalBytes == 0 {
		prog = 0
	}
	filled := int(prog * 40)
	if filled > 40 {
		filled = 40
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 40-filled)
	b.WriteString(bar)
	b.WriteString("\n")

	pct := int(prog * 100)
	if pct > 100 {
		pct = 100
	}
	transferred := formatBytes(task.TransferredBytes)

	speed := formatSpeed(task.Speed)

	var eta string
	if task.Speed > 0 && task.TotalBytes > 0 {
		remaining := task.TotalBytes - task.TransferredBytes
		etaSeconds := float64(remaining) / task.Speed
		eta = formatDuration(time.Duration(etaSeconds) * time.Second)
	} else {
		eta = "--:--"
	}

	var stats string
	if task.TotalBytes > 0 {
		total := formatBytes(task.TotalBytes)
		stats = fmt.Sprintf("%d%% • %s / %s • %s • ETA: %s", pct, transferred, total, speed, eta)
	} else {
		stats = fmt.Sprintf("%s • %s", transferred, speed)
	}
	b.WriteString(style.MutedStyle.Render(stats))

	return b.String()
}

// renderCompletedTask renders a completed task
func (s *DownloadsScreen) renderCompletedTask(task *Task) string {
	var icon, status string

	if task.Status == TaskCompleted {
		icon = style.TaskCompleteStyle.Render("✓")
		duration := task.EndTime.Sub(task.StartTime)
		status = fmt.Sprintf("%s • %s", formatBytes(task.TransferredBytes), formatDuration(duration))
	} else {
		icon = style.TaskFailedStyle.Render("✗")
		if task.Error != nil {
			status = task.Error.Error()
		} else {
			status = "Failed"
		}
	}

	return fmt.Sprintf("%s %s  %s", icon, task.FileName, style.MutedStyle.Render(status))
}
