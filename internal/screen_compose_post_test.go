package internal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposePostScreen_EscWhileSubmitting(t *testing.T) {
	m := newTestModel(t)
	m.composePostScreen = &ComposePostScreen{model: m, state: composeSubmitting}
	m.PushScreen(ScreenComposePost)

	updated, cmd := m.composePostScreen.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, composeSubmitting, updated.(*ComposePostScreen).state)
	assert.Equal(t, ScreenComposePost, m.CurrentScreen())
}

func TestComposePostScreen_EscWhileEditing(t *testing.T) {
	m := newTestModel(t)
	s := &ComposePostScreen{model: m, state: composeEditing}

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, ComposePostCancelledMsg{}, cmd())
}
