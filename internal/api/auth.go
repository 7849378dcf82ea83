package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetCaptcha fetches a fresh challenge. Every call invalidates the
// previous challenge server-side; the returned uuid is single-use.
func (c *Client) GetCaptcha(ctx context.Context) (Captcha, error) {
	req, err := c.newRequest(ctx, "GET", "/api/captchaImage", nil)
	if err != nil {
		return Captcha{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Captcha{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// The captcha endpoint returns img and uuid at the top level rather
	// than inside the data envelope.
	var out struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
		Captcha
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Captcha{}, fmt.Errorf("malformed response: %w", err)
	}
	if out.Code != 0 && out.Code != successCode {
		return Captcha{}, &Error{Code: out.Code, Msg: out.Msg}
	}
	return out.Captcha, nil
}

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Code     string `json:"code"`
	UUID     string `json:"uuid"`
}

// Login exchanges credentials plus the captcha answer for a session
// token. code is the user's answer to the challenge identified by uuid.
func (c *Client) Login(ctx context.Context, username, password, code, uuid string) (string, error) {
	env, err := c.postJSON(ctx, "/api/login", authRequest{
		Username: username,
		Password: password,
		Code:     code,
		UUID:     uuid,
	})
	if err != nil {
		return "", err
	}
	if env.Token == "" {
		return "", fmt.Errorf("malformed response: login succeeded without a token")
	}
	return env.Token, nil
}

// Register creates a new account. The confirm-password check is the
// caller's responsibility; the wire shape matches Login.
func (c *Client) Register(ctx context.Context, username, password, code, uuid string) error {
	_, err := c.postJSON(ctx, "/api/register", authRequest{
		Username: username,
		Password: password,
		Code:     code,
		UUID:     uuid,
	})
	return err
}

// GetUserInfo returns the identity of the authenticated user.
func (c *Client) GetUserInfo(ctx context.Context) (UserInfo, error) {
	var info UserInfo
	if err := c.getJSON(ctx, "/api/user/info", nil, &info); err != nil {
		return UserInfo{}, err
	}
	return info, nil
}
