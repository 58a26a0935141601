package bible

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupClientVerse(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"reference":"John 3:16","verses":[{"book_name":"John","chapter":3,"verse":16,"text":"For God so loved the world"}],"text":"For God so loved the world\n"}`))
	}))
	defer srv.Close()

	c := NewLookupClient(srv.URL + "/")
	text, err := c.Verse(context.Background(), "John 3:16")

	require.NoError(t, err)
	assert.Equal(t, "For God so loved the world", text)
	assert.Equal(t, "/John%203:16", gotPath)
}

func TestLookupClientVerseEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"reference":"John 3:16","verses":[],"text":"  "}`))
	}))
	defer srv.Close()

	_, err := NewLookupClient(srv.URL).Verse(context.Background(), "John 3:16")
	assert.Error(t, err)
}

func TestLookupClientVerseNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewLookupClient(srv.URL).Verse(context.Background(), "Nowhere 1:1")
	assert.ErrorContains(t, err, "404")
}

func TestLookupClientVerseBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := NewLookupClient(srv.URL).Verse(context.Background(), "John 3:16")
	assert.Error(t, err)
}

func TestLookupClientChapterVerseCount(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"reference":"Jude 1","verses":[{"verse":1},{"verse":2},{"verse":3}],"text":"…"}`))
	}))
	defer srv.Close()

	n, err := NewLookupClient(srv.URL).ChapterVerseCount(context.Background(), "Jude", 1)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "/Jude%201", gotPath)
}

func TestLookupClientChapterVerseCountEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"reference":"Gen 99","verses":[],"text":""}`))
	}))
	defer srv.Close()

	_, err := NewLookupClient(srv.URL).ChapterVerseCount(context.Background(), "Gen", 99)
	assert.Error(t, err)
}
