package internal

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ptshare/ptshare-client/internal/api"
	"gopkg.in/yaml.v3"
)

// Screen types
type Screen int

// ScreenModel is the interface that all screens must implement
type ScreenModel interface {
	Update(tea.Msg) (ScreenModel, tea.Cmd)
	View() string
}

const (
	ScreenLogin Screen = iota
	ScreenSeeds
	ScreenUpload
	ScreenMake
	ScreenCommunity
	ScreenComposePost
	ScreenPostDetail
	ScreenDownloads
	ScreenModal
	ScreenLoading
	ScreenLogs
)

// Model
type Model struct {
	program *tea.Program

	// Configuration
	cfgPath     string
	prefs       *Settings
	logger      *slog.Logger
	debugBuffer *DebugBuffer
	soundPlayer *SoundPlayer

	msgHandlers map[reflect.Type]msgHandler

	// Screen state
	screenHistory []Screen // Stack of screens, current screen is last element

	width  int
	height int

	// Backend client and session. The session has exactly one writer:
	// the auth flow (setSession/clearSession below). Screens read it to
	// attach the token and stamp author fields.
	apiClient   *api.Client
	session     *Session
	sessionFile string

	// Screen to return to after a forced re-login
	returnScreen Screen
	hasReturn    bool

	// Screens
	loginScreen       *LoginScreen
	seedsScreen       *SeedsScreen
	uploadScreen      *UploadScreen
	makeScreen        *MakeScreen
	communityScreen   *CommunityScreen
	composePostScreen *ComposePostScreen
	postDetailScreen  *PostDetailScreen
	downloadsScreen   *DownloadsScreen
	modalScreen       *ModalScreen
	loadingScreen     *LoadingScreen
	logsScreen        *LogsScreen

	// Task management for seed downloads
	taskManager *TaskManager
	downloadDir string

	// Task widget
	taskProgress map[string]progress.Model // task ID -> progress model
}

// CurrentScreen returns the current screen, or ScreenLogin if history is empty
func (m *Model) CurrentScreen() Screen {
	if len(m.screenHistory) == 0 {
		return ScreenLogin
	}
	return m.screenHistory[len(m.screenHistory)-1]
}

// PushScreen adds a new screen to history (modal/overlay pattern)
func (m *Model) PushScreen(screen Screen) {
	m.screenHistory = append(m.screenHistory, screen)
}

// PopScreen removes current screen and returns to previous
// Returns the screen we're now on
func (m *Model) PopScreen() Screen {
	if len(m.screenHistory) <= 1 {
		m.screenHistory = []Screen{ScreenLogin}
		return ScreenLogin
	}
	m.screenHistory = m.screenHistory[:len(m.screenHistory)-1]
	return m.screenHistory[len(m.screenHistory)-1]
}

// ReplaceScreen replaces the current screen without adding to history
func (m *Model) ReplaceScreen(screen Screen) {
	if len(m.screenHistory) == 0 {
		m.screenHistory = []Screen{screen}
	} else {
		m.screenHistory[len(m.screenHistory)-1] = screen
	}
}

// NavigateTo clears history and jumps to a screen (hard navigation)
// Used for login, logout, and session expiry
func (m *Model) NavigateTo(screen Screen) {
	m.screenHistory = []Screen{screen}
}

// currentScreen returns the current screen as a ScreenModel interface
func (m *Model) currentScreen() ScreenModel {
	switch m.CurrentScreen() {
	case ScreenLogin:
		return m.loginScreen
	case ScreenSeeds:
		return m.seedsScreen
	case ScreenUpload:
		return m.uploadScreen
	case ScreenMake:
		return m.makeScreen
	case ScreenCommunity:
		return m.communityScreen
	case ScreenComposePost:
		return m.composePostScreen
	case ScreenPostDetail:
		return m.postDetailScreen
	case ScreenDownloads:
		return m.downloadsScreen
	case ScreenModal:
		return m.modalScreen
	case ScreenLoading:
		return m.loadingScreen
	case ScreenLogs:
		return m.logsScreen
	}
	return nil
}

func NewModel(cfgPath string, logger *slog.Logger, db *DebugBuffer) *Model {
	prefs, err := readConfig(cfgPath)
	if err != nil {
		logger.Error(fmt.Sprintf("unable to read config file %s\n", cfgPath))
		os.Exit(1)
	}

	// Initialize download directory
	downloadDir := prefs.DownloadDir
	if downloadDir == "" {
		home, _ := os.UserHomeDir()
		downloadDir = home + "/Downloads/PTShare"
	}

	// Initialize sound player
	soundPlayer, err := NewSoundPlayer(prefs.EnableSounds)
	if err != nil {
		logger.Error("Failed to initialize sound player", "err", err)
	}

	sessionFile := sessionPath(cfgPath)
	session, err := loadSession(sessionFile)
	if err != nil {
		logger.Warn("Unable to read session file", "err", err)
	}

	m := &Model{
		msgHandlers:   make(map[reflect.Type]msgHandler),
		cfgPath:       cfgPath,
		prefs:         prefs,
		logger:        logger,
		debugBuffer:   db,
		soundPlayer:   soundPlayer,
		session:       session,
		sessionFile:   sessionFile,
		taskManager:   NewTaskManager(),
		downloadDir:   downloadDir,
		taskProgress:  make(map[string]progress.Model),
		screenHistory: []Screen{ScreenLogin},
	}
	m.apiClient = api.New(prefs.ServerURL, func() string {
		if m.session.Valid() {
			return m.session.Token
		}
		return ""
	})
	return m
}

func readConfig(cfgPath string) (*Settings, error) {
	fh, err := os.Open(cfgPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = fh.Close()
	}()

	var prefs Settings
	decoder := yaml.NewDecoder(fh)
	if err := decoder.Decode(&prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// setSession persists a new session. Sole mutation point together with
// clearSession; called only from the auth flow handlers.
func (m *Model) setSession(s *Session) {
	m.session = s
	if err := saveSession(m.sessionFile, s); err != nil {
		m.logger.Warn("Unable to persist session", "err", err)
	}
}

// clearSession drops the in-memory session and the persisted file.
func (m *Model) clearSession() {
	m.session = nil
	if err := removeSession(m.sessionFile); err != nil {
		m.logger.Warn("Unable to remove session file", "err", err)
	}
}

func (m *Model) Init() tea.Cmd {
	m.registerHandler(tea.WindowSizeMsg{}, m.handleWindowResize)
	m.registerHandler(errorMsg{}, m.handleErrorMsg)
	m.registerHandler(captchaMsg{}, m.handleCaptchaMsg)
	m.registerHandler(loginResultMsg{}, m.handleLoginResultMsg)
	m.registerHandler(registerResultMsg{}, m.handleRegisterResultMsg)
	m.registerHandler(userInfoMsg{}, m.handleUserInfoMsg)
	m.registerHandler(seedListMsg{}, m.handleSeedListMsg)
	m.registerHandler(seedUploadedMsg{}, m.handleSeedUploadedMsg)
	m.registerHandler(seedMadeMsg{}, m.handleSeedMadeMsg)
	m.registerHandler(postListMsg{}, m.handlePostListMsg)
	m.registerHandler(postCreatedMsg{}, m.handlePostCreatedMsg)
	m.registerHandler(taskProgressMsg{}, m.handleTaskProgressMsg)
	m.registerHandler(taskStatusMsg{}, m.handleTaskStatusMsg)
	m.registerHandler(sessionExpiredMsg{}, m.handleSessionExpiredMsg)
	m.registerHandler(ModalButtonClickedMsg{}, m.handleModalButtonClickedMsgHandler)
	m.registerHandler(ModalCancelledMsg{}, m.handleModalCancelledMsgHandler)
	m.registerHandler(LoadingCancelledMsg{}, m.handleLoadingCancelledMsgHandler)

	// A still-valid persisted session skips the login screen.
	if m.session.Valid() {
		var cmd tea.Cmd
		m.seedsScreen, cmd = NewSeedsScreen(m)
		m.NavigateTo(ScreenSeeds)
		return cmd
	}

	var cmd tea.Cmd
	m.loginScreen, cmd = NewLoginScreen(m)
	return cmd
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.logger.Debug("Update UI", "tea.Msg", fmt.Sprintf("%v", msg), "currentScreen", m.CurrentScreen())

	// Handle global keybindings
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+q" {
			return m, tea.Quit
		}
		if keyMsg.String() == "ctrl+l" {
			m.logsScreen = NewLogsScreen(m.debugBuffer, m)
			m.PushScreen(ScreenLogs)
			return m, nil
		}
	}

	// Check if we have a registered handler for this message type
	msgType := reflect.TypeOf(msg)
	if handler, ok := m.msgHandlers[msgType]; ok {
		return handler(msg)
	}

	if screen := m.currentScreen(); screen != nil {
		_, cmd := screen.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) View() string {
	if screen := m.currentScreen(); screen != nil {
		return screen.View()
	}
	return ""
}

func (m *Model) Start() error {
	// Store program reference for sending messages from download workers
	m.program = tea.NewProgram(m, tea.WithAltScreen())

	_, err := m.program.Run()
	return err
}
