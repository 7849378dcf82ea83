package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCaptcha(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/captchaImage", r.URL.Path)
		_, _ = w.Write([]byte(`{"code":200,"img":"aW1hZ2U=","uuid":"ch-42"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	captcha, err := c.GetCaptcha(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "aW1hZ2U=", captcha.Img)
	assert.Equal(t, "ch-42", captcha.UUID)
}

func TestGetCaptcha_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":500,"msg":"captcha service down"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.GetCaptcha(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "captcha service down", apiErr.Msg)
}

func TestLogin(t *testing.T) {
	var gotBody authRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"code":200,"msg":"ok","token":"tok-abc"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	token, err := c.Login(context.Background(), "alice", "secret", "1234", "ch-42")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
	assert.Equal(t, authRequest{Username: "alice", Password: "secret", Code: "1234", UUID: "ch-42"}, gotBody)
}

func TestLogin_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":200,"msg":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Login(context.Background(), "alice", "secret", "1234", "ch-42")
	require.Error(t, err)
}

func TestRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/register", r.URL.Path)
			_, _ = w.Write([]byte(`{"code":200,"msg":"ok"}`))
		}))
		defer srv.Close()

		c := New(srv.URL, nil)
		require.NoError(t, c.Register(context.Background(), "bob", "pw", "9999", "ch-7"))
	})

	t.Run("duplicate username", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":500,"msg":"username taken"}`))
		}))
		defer srv.Close()

		c := New(srv.URL, nil)
		err := c.Register(context.Background(), "bob", "pw", "9999", "ch-7")
		require.Error(t, err)

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "username taken", apiErr.Msg)
	})
}
