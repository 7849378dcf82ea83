package internal

import (
	"fmt"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ptshare/ptshare-client/internal/api"
)

type msgHandler = func(msg tea.Msg) (tea.Model, tea.Cmd)

// registerHandler registers a message handler for the given message type.
// The msgType parameter should be a zero-value instance of the message type.
func (m *Model) registerHandler(msgType tea.Msg, handler msgHandler) {
	t := reflect.TypeOf(msgType)
	m.msgHandlers[t] = handler
}

func (m *Model) handleWindowResize(msg tea.Msg) (tea.Model, tea.Cmd) {
	windowMsg := msg.(tea.WindowSizeMsg)
	m.width = windowMsg.Width
	m.height = windowMsg.Height
	m.resizeAllScreens(windowMsg.Width, windowMsg.Height)
	return m, nil
}

func (m *Model) resizeAllScreens(w, h int) {
	if m.loginScreen != nil {
		m.loginScreen.SetSize(w, h)
	}
	if m.seedsScreen != nil {
		m.seedsScreen.SetSize(w, h)
	}
	if m.uploadScreen != nil {
		m.uploadScreen.SetSize(w, h)
	}
	if m.makeScreen != nil {
		m.makeScreen.SetSize(w, h)
	}
	if m.communityScreen != nil {
		m.communityScreen.SetSize(w, h)
	}
	if m.composePostScreen != nil {
		m.composePostScreen.SetSize(w, h)
	}
	if m.postDetailScreen != nil {
		m.postDetailScreen.SetSize(w, h)
	}
	if m.downloadsScreen != nil {
		m.downloadsScreen.SetSize(w, h)
	}
	if m.modalScreen != nil {
		m.modalScreen.SetSize(w, h)
	}
	if m.loadingScreen != nil {
		m.loadingScreen.SetSize(w, h)
	}
	if m.logsScreen != nil {
		m.logsScreen.SetSize(w, h)
	}
}

func (m *Model) handleErrorMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	errorMessage := msg.(errorMsg)
	m.soundPlayer.PlayAsync(SoundError)
	m.modalScreen = NewModalScreen(ModalTypeError, "Error", errorMessage.text, []string{"OK"}, m)
	m.PushScreen(ScreenModal)
	return m, m.modalScreen.Init()
}

// expireSession returns a command routing an unauthorized rejection to
// the session-expiry flow. ok is false when err is something else.
func (m *Model) expireSession(err error) (tea.Cmd, bool) {
	if !api.IsUnauthorized(err) {
		return nil, false
	}
	from := m.screenHistory[0]
	return func() tea.Msg { return sessionExpiredMsg{from: from} }, true
}

func (m *Model) handleSessionExpiredMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	expiredMessage := msg.(sessionExpiredMsg)
	m.clearSession()
	m.returnScreen = expiredMessage.from
	m.hasReturn = true

	var cmd tea.Cmd
	m.loginScreen, cmd = NewLoginScreen(m)
	m.loginScreen.SetError("Session expired, please log in again.")
	m.NavigateTo(ScreenLogin)
	return m, cmd
}

// Auth flow

func (m *Model) handleCaptchaMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	captchaMessage := msg.(captchaMsg)
	if m.loginScreen != nil {
		m.loginScreen.SetChallenge(captchaMessage.challenge, captchaMessage.imagePath)
	}
	return m, nil
}

func (m *Model) handleLoginResultMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	loginResult := msg.(loginResultMsg)
	if loginResult.err != nil {
		// Failed login clears any previously held session, surfaces the
		// rejection, and burns a fresh challenge (the old one is spent).
		m.clearSession()
		m.soundPlayer.PlayAsync(SoundError)
		if m.loginScreen != nil {
			m.loginScreen.SetError(userMessage(loginResult.err, "Login failed, please try again."))
		}
		return m, m.fetchCaptcha()
	}

	m.setSession(&Session{
		Token:     loginResult.token,
		ExpiresAt: time.Now().Add(sessionTTL),
	})

	var cmd tea.Cmd
	m.loadingScreen, cmd = NewLoadingScreen("Signing in...", m)
	m.PushScreen(ScreenLoading)
	return m, tea.Batch(cmd, m.fetchUserInfo())
}

func (m *Model) handleUserInfoMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	userInfo := msg.(userInfoMsg)
	m.loadingScreen = nil
	if userInfo.err != nil {
		m.clearSession()
		m.soundPlayer.PlayAsync(SoundError)
		if m.loginScreen != nil {
			m.loginScreen.SetError(userMessage(userInfo.err, "Unable to load user info, please log in again."))
		}
		m.NavigateTo(ScreenLogin)
		return m, m.fetchCaptcha()
	}

	session := *m.session
	session.UserID = userInfo.user.UserID
	session.UserName = userInfo.user.UserName
	m.setSession(&session)

	m.logger.Info("Logged in", "user", session.UserName)
	m.soundPlayer.PlayAsync(SoundLoggedIn)
	m.loginScreen = nil

	// Return to the screen an expired session bounced the user from,
	// defaulting to the seed list.
	target := ScreenSeeds
	if m.hasReturn {
		target = m.returnScreen
		m.hasReturn = false
	}

	var cmd tea.Cmd
	if target == ScreenCommunity {
		m.communityScreen, cmd = NewCommunityScreen(m)
		m.NavigateTo(ScreenCommunity)
		return m, cmd
	}
	m.seedsScreen, cmd = NewSeedsScreen(m)
	m.NavigateTo(ScreenSeeds)
	return m, cmd
}

func (m *Model) handleRegisterResultMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	registerResult := msg.(registerResultMsg)
	if m.loginScreen == nil {
		return m, nil
	}
	if registerResult.err != nil {
		m.soundPlayer.PlayAsync(SoundError)
		m.loginScreen.SetError(userMessage(registerResult.err, "Registration failed, please try again."))
	} else {
		m.loginScreen.SwitchToLogin("Registration successful, please log in.")
	}
	// Completed attempts burn the challenge either way.
	return m, m.fetchCaptcha()
}

// Seed list flow

func (m *Model) handleSeedListMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	seedList := msg.(seedListMsg)
	if seedList.err != nil {
		if cmd, expired := m.expireSession(seedList.err); expired {
			return m, cmd
		}
		// A superseded request's failure stays silent, same as its data
		// would be dropped by ApplyList.
		if m.seedsScreen == nil || seedList.gen != m.seedsScreen.gen {
			return m, nil
		}
		m.seedsScreen.FinishLoad(seedList.gen)
		return m, func() tea.Msg {
			return errorMsg{text: userMessage(seedList.err, "Unable to fetch seed list.")}
		}
	}
	if m.seedsScreen != nil {
		m.seedsScreen.ApplyList(seedList)
	}
	return m, nil
}

func (m *Model) handleSeedUploadedMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	uploaded := msg.(seedUploadedMsg)
	if uploaded.err != nil {
		if cmd, expired := m.expireSession(uploaded.err); expired {
			return m, cmd
		}
		// Failure keeps the dialog open with its values intact.
		m.soundPlayer.PlayAsync(SoundError)
		if m.uploadScreen != nil {
			m.uploadScreen.SetError(userMessage(uploaded.err, "Upload failed."))
		}
		return m, nil
	}

	// Success closes and resets the dialog, then re-reads the list
	// under the current filter state.
	m.uploadScreen = nil
	if m.CurrentScreen() == ScreenUpload {
		m.PopScreen()
	}
	if m.seedsScreen != nil {
		return m, m.seedsScreen.Reload()
	}
	return m, nil
}

func (m *Model) handleSeedMadeMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	made := msg.(seedMadeMsg)
	if made.err != nil {
		if cmd, expired := m.expireSession(made.err); expired {
			return m, cmd
		}
		m.soundPlayer.PlayAsync(SoundError)
		if m.makeScreen != nil {
			m.makeScreen.SetError(userMessage(made.err, "Seed creation failed."))
		}
		return m, nil
	}

	m.makeScreen = nil
	if m.CurrentScreen() == ScreenMake {
		m.PopScreen()
	}

	m.modalScreen = NewModalScreen(
		ModalTypeGeneric,
		"Seed Created",
		fmt.Sprintf("The .torrent file was saved next to the source:\n%s.torrent", made.sourcePath),
		[]string{"OK"},
		m,
	)
	m.PushScreen(ScreenModal)

	cmds := []tea.Cmd{m.modalScreen.Init()}
	if m.seedsScreen != nil {
		cmds = append(cmds, m.seedsScreen.Reload())
	}
	return m, tea.Batch(cmds...)
}

// Community flow

func (m *Model) handlePostListMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	postList := msg.(postListMsg)
	if postList.err != nil {
		if cmd, expired := m.expireSession(postList.err); expired {
			return m, cmd
		}
		if m.communityScreen != nil {
			m.communityScreen.FinishLoad()
		}
		return m, func() tea.Msg {
			return errorMsg{text: userMessage(postList.err, "Unable to fetch posts.")}
		}
	}
	if m.communityScreen != nil {
		m.communityScreen.ApplyPosts(postList.posts)
	}
	return m, nil
}

func (m *Model) handlePostCreatedMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	created := msg.(postCreatedMsg)
	if created.err != nil {
		if cmd, expired := m.expireSession(created.err); expired {
			return m, cmd
		}
		m.soundPlayer.PlayAsync(SoundError)
		if m.composePostScreen != nil {
			m.composePostScreen.SetError(userMessage(created.err, "Publish failed."))
		}
		return m, nil
	}

	m.composePostScreen = nil
	if m.CurrentScreen() == ScreenComposePost {
		m.PopScreen()
	}
	if m.communityScreen != nil {
		return m, m.communityScreen.Reload()
	}
	return m, nil
}

// Download task flow

func (m *Model) handleTaskProgressMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	taskProgressMessage := msg.(taskProgressMsg)
	task := m.taskManager.Get(taskProgressMessage.taskID)
	if task != nil {
		now := time.Now()

		// Calculate speed if we have previous data
		if !task.LastUpdate.IsZero() {
			duration := now.Sub(task.LastUpdate).Seconds()
			if duration > 0 {
				bytesSinceLast := taskProgressMessage.bytes - task.LastBytes
				task.Speed = float64(bytesSinceLast) / duration
			}
		}

		task.TransferredBytes = taskProgressMessage.bytes
		task.LastBytes = taskProgressMessage.bytes
		task.LastUpdate = now
		if taskProgressMessage.total > 0 {
			task.TotalBytes = taskProgressMessage.total
		}

		// Update or create progress model for active tasks
		if task.Status == TaskActive {
			prog, exists := m.taskProgress[taskProgressMessage.taskID]
			if !exists {
				prog = progress.New(progress.WithDefaultGradient())
				prog.Width = 20 // Compact width for widget
				m.taskProgress[taskProgressMessage.taskID] = prog
			}

			percent := 0.0
			if task.TotalBytes > 0 {
				percent = float64(task.TransferredBytes) / float64(task.TotalBytes)
			}
			cmd := prog.SetPercent(percent)
			m.taskProgress[taskProgressMessage.taskID] = prog
			return m, cmd // Return progress animation command
		}
	}
	return m, nil
}

func (m *Model) handleTaskStatusMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	taskStatusMessage := msg.(taskStatusMsg)
	task := m.taskManager.Get(taskStatusMessage.taskID)
	if task != nil {
		task.Status = taskStatusMessage.status
		task.Error = taskStatusMessage.err
		if taskStatusMessage.status == TaskCompleted || taskStatusMessage.status == TaskFailed {
			task.EndTime = time.Now()
			// Remove progress model when task completes
			delete(m.taskProgress, taskStatusMessage.taskID)
			if taskStatusMessage.status == TaskCompleted {
				m.soundPlayer.PlayAsync(SoundTransferComplete)
			} else {
				m.soundPlayer.PlayAsync(SoundError)
			}
		}
	}
	return m, nil
}

// Modal handlers

// handleModalCancelledMsgHandler wraps handleModalCancelledMsg for the msgHandler signature
func (m *Model) handleModalCancelledMsgHandler(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.PopScreen()
	return m, nil
}

// handleModalButtonClickedMsgHandler wraps handleModalButtonClickedMsg for the msgHandler signature
func (m *Model) handleModalButtonClickedMsgHandler(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, m.handleModalButtonClickedMsg(msg.(ModalButtonClickedMsg))
}

// handleModalButtonClickedMsg handles modal button clicks
func (m *Model) handleModalButtonClickedMsg(msg ModalButtonClickedMsg) tea.Cmd {
	switch msg.Type {
	case ModalTypeLogout:
		if msg.ButtonClicked == "Log Out" {
			m.clearSession()
			m.seedsScreen = nil
			m.communityScreen = nil

			var cmd tea.Cmd
			m.loginScreen, cmd = NewLoginScreen(m)
			m.NavigateTo(ScreenLogin)
			return cmd
		}
		// Cancel - return to previous screen
		m.PopScreen()

	default:
		// Generic modal (errors, make results) - return to previous screen
		m.PopScreen()
	}

	return nil
}

// handleLoadingCancelledMsgHandler handles when the loading screen is cancelled (ESC pressed)
func (m *Model) handleLoadingCancelledMsgHandler(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.PopScreen()
	return m, nil
}
