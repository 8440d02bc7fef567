package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/article", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"summary": "Title\nBody text."})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	summary, err := c.Summarize(context.Background(), Request{
		Category: "Health & Wellness",
		Posts:    []Post{{Content: "post", Comments: []string{"reply"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Title\nBody text.", summary)
	assert.Equal(t, "Health & Wellness", got.Category)
	require.Len(t, got.Posts, 1)
	assert.Equal(t, []string{"reply"}, got.Posts[0].Comments)
}

func TestSummarizeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Summarize(context.Background(), Request{Category: "x"})
	assert.ErrorContains(t, err, "unexpected status 502")
}

func TestSummarizeEmptySummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"summary": ""})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Summarize(context.Background(), Request{Category: "x"})
	assert.ErrorContains(t, err, "empty summary")
}
