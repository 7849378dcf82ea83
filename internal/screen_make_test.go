package internal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeScreen_EscWhileSubmitting(t *testing.T) {
	m := newTestModel(t)
	m.makeScreen = &MakeScreen{model: m, state: makeSubmitting}
	m.PushScreen(ScreenMake)

	updated, cmd := m.makeScreen.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, makeSubmitting, updated.(*MakeScreen).state)
	assert.Equal(t, ScreenMake, m.CurrentScreen())
}

func TestMakeScreen_EscWhileEditing(t *testing.T) {
	m := newTestModel(t)
	s := &MakeScreen{model: m, state: makeEditing}

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, MakeCancelledMsg{}, cmd())
}
