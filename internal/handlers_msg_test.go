package internal

import (
	"log/slog"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/ptshare/ptshare-client/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := &Model{
		msgHandlers:   make(map[reflect.Type]msgHandler),
		logger:        slog.New(slog.DiscardHandler),
		sessionFile:   filepath.Join(t.TempDir(), "ptshare-session.yaml"),
		taskManager:   NewTaskManager(),
		taskProgress:  make(map[string]progress.Model),
		screenHistory: []Screen{ScreenSeeds},
		width:         80,
		height:        24,
	}
	m.apiClient = api.New("http://localhost", func() string {
		if m.session.Valid() {
			return m.session.Token
		}
		return ""
	})
	m.seedsScreen = &SeedsScreen{
		list:  list.New([]list.Item{}, newSeedDelegate(), 80, 24),
		model: m,
	}
	return m
}

func TestHandleSeedUploadedMsg_SuccessClosesDialogAndReloadsOnce(t *testing.T) {
	m := newTestModel(t)
	m.uploadScreen = &UploadScreen{model: m}
	m.PushScreen(ScreenUpload)
	genBefore := m.seedsScreen.gen

	_, cmd := m.handleSeedUploadedMsg(seedUploadedMsg{})

	assert.Nil(t, m.uploadScreen)
	assert.Equal(t, ScreenSeeds, m.CurrentScreen())
	// Exactly one re-read under the current filter state.
	assert.Equal(t, genBefore+1, m.seedsScreen.gen)
	assert.True(t, m.seedsScreen.loading)
	require.NotNil(t, cmd)
}

func TestHandleSeedUploadedMsg_SuccessAfterDialogClosed(t *testing.T) {
	m := newTestModel(t)
	// The dialog is no longer on top; the landing write must not pop
	// whatever screen replaced it.
	m.uploadScreen = nil

	_, cmd := m.handleSeedUploadedMsg(seedUploadedMsg{})

	assert.Equal(t, ScreenSeeds, m.CurrentScreen())
	require.NotNil(t, cmd)
}

func TestHandleSeedListMsg_StaleFailureStaysSilent(t *testing.T) {
	m := newTestModel(t)
	m.seedsScreen.gen = 2
	m.seedsScreen.loading = true

	t.Run("superseded request failure is dropped", func(t *testing.T) {
		_, cmd := m.handleSeedListMsg(seedListMsg{gen: 1, err: assert.AnError})
		assert.Nil(t, cmd)
		assert.True(t, m.seedsScreen.loading)
	})

	t.Run("current request failure is surfaced", func(t *testing.T) {
		_, cmd := m.handleSeedListMsg(seedListMsg{gen: 2, err: assert.AnError})
		require.NotNil(t, cmd)
		assert.IsType(t, errorMsg{}, cmd())
		assert.False(t, m.seedsScreen.loading)
	})
}

func TestHandleTaskProgressMsg_TracksAnnouncedTotal(t *testing.T) {
	m := newTestModel(t)
	task := &Task{ID: "t1", FileName: "ubuntu.iso", Status: TaskActive, StartTime: time.Now()}
	m.taskManager.Add(task)

	_, cmd := m.handleTaskProgressMsg(taskProgressMsg{taskID: "t1", bytes: 50, total: 200})

	assert.Equal(t, int64(200), task.TotalBytes)
	assert.Equal(t, int64(50), task.TransferredBytes)
	percent := float64(task.TransferredBytes) / float64(task.TotalBytes)
	assert.InDelta(t, 0.25, percent, 1e-9)
	require.NotNil(t, cmd)
	_, tracked := m.taskProgress["t1"]
	assert.True(t, tracked)

	// A later report without a total keeps the known size.
	_, _ = m.handleTaskProgressMsg(taskProgressMsg{taskID: "t1", bytes: 120})
	assert.Equal(t, int64(200), task.TotalBytes)
	assert.Equal(t, int64(120), task.TransferredBytes)
}

func TestHandlePostCreatedMsg_SuccessClosesComposerAndReloads(t *testing.T) {
	m := newTestModel(t)
	m.communityScreen = &CommunityScreen{
		list:  list.New([]list.Item{}, newPostDelegate(), 80, 24),
		model: m,
	}
	m.NavigateTo(ScreenCommunity)
	m.composePostScreen = &ComposePostScreen{model: m}
	m.PushScreen(ScreenComposePost)

	_, cmd := m.handlePostCreatedMsg(postCreatedMsg{})

	assert.Nil(t, m.composePostScreen)
	assert.Equal(t, ScreenCommunity, m.CurrentScreen())
	assert.True(t, m.communityScreen.loading)
	require.NotNil(t, cmd)
}

func TestHandleSessionExpiredMsg(t *testing.T) {
	m := newTestModel(t)
	m.session = &Session{Token: "tok"}

	_, cmd := m.handleSessionExpiredMsg(sessionExpiredMsg{from: ScreenCommunity})

	assert.Nil(t, m.session)
	assert.Equal(t, ScreenLogin, m.CurrentScreen())
	assert.True(t, m.hasReturn)
	assert.Equal(t, ScreenCommunity, m.returnScreen)
	require.NotNil(t, m.loginScreen)
	assert.Contains(t, m.loginScreen.errText, "Session expired")
	require.NotNil(t, cmd)
}

func TestExpireSession(t *testing.T) {
	m := newTestModel(t)

	t.Run("unauthorized error routes to expiry", func(t *testing.T) {
		cmd, expired := m.expireSession(&api.Error{Code: 401, Msg: "session expired"})
		assert.True(t, expired)
		require.NotNil(t, cmd)

		msg, ok := cmd().(sessionExpiredMsg)
		require.True(t, ok)
		assert.Equal(t, ScreenSeeds, msg.from)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		cmd, expired := m.expireSession(assert.AnError)
		assert.False(t, expired)
		assert.Nil(t, cmd)
	})
}
