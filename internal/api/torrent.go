package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// ListSeeds fetches the seed table. CategoryAll omits the category
// filter; an empty keyword omits the name filter.
func (c *Client) ListSeeds(ctx context.Context, category Category, keyword string) ([]SeedItem, error) {
	query := url.Values{}
	if category != CategoryAll {
		query.Set("category", strconv.Itoa(int(category)))
	}
	if keyword != "" {
		query.Set("name", keyword)
	}

	var items []SeedItem
	if err := c.getJSON(ctx, "/api/torrent/list", query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UploadRequest carries one seed file upload. Author and CreatorID are
// stamped from the session by the caller, never user-entered.
type UploadRequest struct {
	Author    string
	CreatorID int64
	Category  Category
	FileName  string
	File      io.Reader
}

// UploadSeed posts a seed file as multipart form data.
func (c *Client) UploadSeed(ctx context.Context, r UploadRequest) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"author":    r.Author,
		"creatorId": strconv.FormatInt(r.CreatorID, 10),
		"category":  strconv.Itoa(int(r.Category)),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return err
		}
	}

	part, err := w.CreateFormFile("file", r.FileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r.File); err != nil {
		return fmt.Errorf("reading upload file: %w", err)
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/torrent/upload", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	_, err = c.do(req)
	return err
}

// MakeRequest synthesizes a seed from a path the server can resolve,
// rather than from an uploaded file.
type MakeRequest struct {
	Author     string
	CreatorID  int64
	Category   Category
	SourcePath string
}

// MakeSeed asks the server to build a .torrent next to SourcePath. The
// client does not validate the path; that is the backend's contract.
func (c *Client) MakeSeed(ctx context.Context, r MakeRequest) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"author":     r.Author,
		"creatorId":  strconv.FormatInt(r.CreatorID, 10),
		"category":   strconv.Itoa(int(r.Category)),
		"sourcePath": r.SourcePath,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/torrent/make", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	_, err = c.do(req)
	return err
}

// DownloadSeed streams the seed file for id into dest. progress, if
// non-nil, is called with the running byte count and the announced
// total (0 when the server sends no Content-Length) as data arrives.
// Returns the total number of bytes written.
func (c *Client) DownloadSeed(ctx context.Context, id int64, dest io.Writer, progress func(written, total int64)) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/torrent/download/%d", id), nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, &Error{Code: resp.StatusCode, Msg: "download failed"}
	}

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}

	var written int64
	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := dest.Write(buf[:n]); err != nil {
				return written, err
			}
			written += int64(n)
			if progress != nil {
				progress(written, total)
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}
