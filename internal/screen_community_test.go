package internal

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	"github.com/ptshare/ptshare-client/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommunityScreen(t *testing.T) *CommunityScreen {
	t.Helper()
	return &CommunityScreen{
		list:  list.New([]list.Item{}, newPostDelegate(), 80, 24),
		model: &Model{apiClient: api.New("http://localhost", nil)},
	}
}

func TestCommunityScreen_ApplyPosts(t *testing.T) {
	s := newTestCommunityScreen(t)

	_ = s.Reload()
	assert.True(t, s.loading)

	s.ApplyPosts([]api.Post{
		{ID: 2, Title: "Second", Content: "newer", Author: "bob"},
		{ID: 1, Title: "First", Content: "older", Author: "alice"},
	})

	assert.False(t, s.loading)
	require.Len(t, s.list.Items(), 2)

	item, ok := s.list.Items()[0].(postItem)
	require.True(t, ok)
	assert.Equal(t, "Second", item.post.Title)
}

func TestCommunityScreen_FinishLoad(t *testing.T) {
	s := newTestCommunityScreen(t)

	_ = s.Reload()
	s.FinishLoad()
	assert.False(t, s.loading)
}

func TestPostItemPreviewTruncation(t *testing.T) {
	long := strings.Repeat("a", 250)
	item := postItem{post: api.Post{Title: "Wall of text", Content: long, Author: "alice"}}

	desc := item.Description()
	assert.Equal(t, strings.Repeat("a", previewLimit)+"...", desc)
	assert.Equal(t, "Wall of text", item.FilterValue())
}
