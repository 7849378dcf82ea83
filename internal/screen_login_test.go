package internal

import (
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/ptshare/ptshare-client/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredField(t *testing.T) {
	validate := requiredField("username")
	assert.Error(t, validate(""))
	assert.Error(t, validate("   "))
	assert.NoError(t, validate("alice"))
}

func TestConfirmPasswordValidator(t *testing.T) {
	password := "s3cret"
	validate := confirmPasswordValidator(&password)

	t.Run("empty confirm rejected", func(t *testing.T) {
		assert.Error(t, validate(""))
	})

	t.Run("mismatch rejected locally", func(t *testing.T) {
		err := validate("different")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "do not match")
	})

	t.Run("match accepted", func(t *testing.T) {
		assert.NoError(t, validate("s3cret"))
	})

	t.Run("tracks the live password value", func(t *testing.T) {
		password = "changed"
		assert.NoError(t, validate("changed"))
		assert.Error(t, validate("s3cret"))
	})
}

func TestBuildAuthForm(t *testing.T) {
	var username, password, confirm, code string

	t.Run("login form starts editing", func(t *testing.T) {
		form := buildAuthForm(AuthModeLogin, &username, &password, &confirm, &code)
		require.NotNil(t, form)
		assert.Equal(t, huh.StateNormal, form.State)
	})

	t.Run("register form keeps bound values", func(t *testing.T) {
		username = "alice"
		form := buildAuthForm(AuthModeRegister, &username, &password, &confirm, &code)
		require.NotNil(t, form)
		// Rebuilding with the same pointers preserves the draft.
		assert.Equal(t, "alice", username)
	})
}

func TestLoginScreen_FailedAttemptSpendsChallenge(t *testing.T) {
	m := &Model{width: 80, height: 24}
	s, _ := NewLoginScreen(m)
	s.SetChallenge(api.Captcha{UUID: "ch-1"}, "")
	s.username = "alice"
	s.password = "pw"
	s.code = "1234"

	require.NotNil(t, s.handleSubmit())

	// The rejection arrives; the challenge it was answered against is
	// gone, so a resubmit is blocked until a fresh one lands.
	s.SetError("Invalid captcha answer.")
	assert.Empty(t, s.challenge.UUID)
	assert.Nil(t, s.handleSubmit())

	s.SetChallenge(api.Captcha{UUID: "ch-2"}, "")
	s.code = "5678"
	cmd := s.handleSubmit()
	require.NotNil(t, cmd)
	msg, ok := cmd().(LoginSubmittedMsg)
	require.True(t, ok)
	assert.Equal(t, "ch-2", msg.ChallengeID)
}

func TestLoginScreen_SwitchToLoginDropsChallenge(t *testing.T) {
	m := &Model{width: 80, height: 24}
	s, _ := NewLoginScreen(m)
	s.mode = AuthModeRegister
	s.SetChallenge(api.Captcha{UUID: "ch-1"}, "")

	s.SwitchToLogin("Registration successful, please log in.")

	assert.Equal(t, AuthModeLogin, s.mode)
	assert.Empty(t, s.challenge.UUID)
	assert.Nil(t, s.handleSubmit())
}
