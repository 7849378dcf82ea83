package api

import "context"

// ListPosts fetches the community board, newest first, unfiltered.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.getJSON(ctx, "/api/community/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

// CreatePost publishes a new board entry. Author is stamped from the
// session by the caller.
func (c *Client) CreatePost(ctx context.Context, title, content, author string) error {
	_, err := c.postJSON(ctx, "/api/community/posts", createPostRequest{
		Title:   title,
		Content: content,
		Author:  author,
	})
	return err
}
