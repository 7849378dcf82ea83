package internal

import "github.com/ptshare/ptshare-client/internal/api"

// Internal message types for BubbleTea communication

type errorMsg struct {
	text string
}

// captchaMsg delivers a fresh challenge. imagePath is a temp PNG the
// user can open to read the challenge.
type captchaMsg struct {
	challenge api.Captcha
	imagePath string
}

type loginResultMsg struct {
	token string
	err   error
}

type registerResultMsg struct {
	err error
}

type userInfoMsg struct {
	user api.UserInfo
	err  error
}

// seedListMsg carries one list response. gen identifies the filter
// state the request was issued under; stale generations are dropped.
type seedListMsg struct {
	gen   int
	items []api.SeedItem
	err   error
}

type seedUploadedMsg struct {
	err error
}

type seedMadeMsg struct {
	sourcePath string
	err        error
}

type postListMsg struct {
	posts []api.Post
	err   error
}

type postCreatedMsg struct {
	err error
}

// taskProgressMsg reports streamed bytes for one task. total is the
// size announced by the server, 0 when unknown.
type taskProgressMsg struct {
	taskID string
	bytes  int64
	total  int64
}

type taskStatusMsg struct {
	taskID string
	status TaskStatus
	err    error
}

// sessionExpiredMsg forces a return to the login screen, remembering
// where the user was.
type sessionExpiredMsg struct {
	from Screen
}
