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

func TestListPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/community/posts", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"code":200,"data":[
			{"id":2,"title":"Second","content":"newer","author":"bob","createdAt":"2026-02-01"},
			{"id":1,"title":"First","content":"older","author":"alice","createdAt":"2026-01-01"}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	posts, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Second", posts[0].Title)
	assert.Equal(t, "alice", posts[1].Author)
}

func TestCreatePost(t *testing.T) {
	var gotBody createPostRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/community/posts", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"code":200,"msg":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	err := c.CreatePost(context.Background(), "Hello", "First post body", "alice")
	require.NoError(t, err)
	assert.Equal(t, createPostRequest{Title: "Hello", Content: "First post body", Author: "alice"}, gotBody)
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "All", CategoryAll.Label())
	assert.Equal(t, "Video", CategoryVideo.Label())
	assert.Equal(t, "Other", CategoryOther.Label())
	assert.Equal(t, "Unknown", Category(42).Label())

	categories := Categories()
	require.Len(t, categories, 5)
	assert.Equal(t, CategoryVideo, categories[0])
	assert.NotContains(t, categories, CategoryAll)
}
