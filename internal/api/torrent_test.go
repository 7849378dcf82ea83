package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSeeds_QueryParams(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/torrent/list", r.URL.Path)
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"code":200,"data":[{"id":1,"name":"ubuntu.iso","categoryId":4,"creator":"alice","createdTime":"2026-01-02","seederCount":3,"fileUrl":"/files/1"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)

	t.Run("all categories and no keyword omit both params", func(t *testing.T) {
		items, err := c.ListSeeds(context.Background(), CategoryAll, "")
		require.NoError(t, err)
		assert.NotContains(t, gotQuery, "category")
		assert.NotContains(t, gotQuery, "name")

		require.Len(t, items, 1)
		assert.Equal(t, int64(1), items[0].ID)
		assert.Equal(t, CategoryOther, items[0].CategoryID)
		assert.Equal(t, 3, items[0].SeederCount)
	})

	t.Run("explicit filters are forwarded", func(t *testing.T) {
		_, err := c.ListSeeds(context.Background(), CategoryVideo, "ubuntu")
		require.NoError(t, err)
		assert.Equal(t, []string{"0"}, gotQuery["category"])
		assert.Equal(t, []string{"ubuntu"}, gotQuery["name"])
	})

	t.Run("zero-valued video category is still sent", func(t *testing.T) {
		_, err := c.ListSeeds(context.Background(), CategoryVideo, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"0"}, gotQuery["category"])
	})
}

func TestUploadSeed_MultipartFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/torrent/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "alice", r.FormValue("author"))
		assert.Equal(t, "7", r.FormValue("creatorId"))
		assert.Equal(t, "1", r.FormValue("category"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "album.torrent", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "torrent-bytes", string(content))

		_, _ = w.Write([]byte(`{"code":200,"msg":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	err := c.UploadSeed(context.Background(), UploadRequest{
		Author:    "alice",
		CreatorID: 7,
		Category:  CategoryMusic,
		FileName:  "album.torrent",
		File:      strings.NewReader("torrent-bytes"),
	})
	require.NoError(t, err)
}

func TestMakeSeed_MultipartFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/torrent/make", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "bob", r.FormValue("author"))
		assert.Equal(t, "9", r.FormValue("creatorId"))
		assert.Equal(t, "2", r.FormValue("category"))
		assert.Equal(t, "/data/books/novel.epub", r.FormValue("sourcePath"))

		_, _ = w.Write([]byte(`{"code":200,"msg":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	err := c.MakeSeed(context.Background(), MakeRequest{
		Author:     "bob",
		CreatorID:  9,
		Category:   CategoryBook,
		SourcePath: "/data/books/novel.epub",
	})
	require.NoError(t, err)
}

func TestDownloadSeed(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 100_000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/torrent/download/42", r.URL.Path)
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)

	var dest bytes.Buffer
	var lastProgress, lastTotal int64
	written, err := c.DownloadSeed(context.Background(), 42, &dest, func(n, total int64) {
		lastProgress = n
		lastTotal = total
	})
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), written)
	assert.Equal(t, int64(len(payload)), lastProgress)
	assert.Equal(t, int64(len(payload)), lastTotal)
	assert.Equal(t, payload, dest.Bytes())
}

func TestDownloadSeed_UnknownLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Flushing before the body forces chunked encoding, so no
		// Content-Length is announced.
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		_, _ = w.Write([]byte("partial"))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	var dest bytes.Buffer
	var lastTotal int64 = -1
	written, err := c.DownloadSeed(context.Background(), 7, &dest, func(n, total int64) {
		lastTotal = total
	})
	require.NoError(t, err)
	assert.Equal(t, int64(len("partial")), written)
	assert.Equal(t, int64(0), lastTotal)
}

func TestDownloadSeed_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	var dest bytes.Buffer
	_, err := c.DownloadSeed(context.Background(), 99, &dest, nil)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
}
