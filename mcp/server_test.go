package mcp

import (
	"context"
	"fmt"
	"testing"

	"github.com/SaiNageswarS/agent-boot/schema"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/bible"
	mcpSdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLookup struct {
	verses map[string]string
}

func (s *stubLookup) Verse(_ context.Context, ref string) (string, error) {
	if text, ok := s.verses[ref]; ok {
		return text, nil
	}
	return "", fmt.Errorf("unknown reference %q", ref)
}

func (s *stubLookup) ChapterVerseCount(context.Context, string, int) (int, error) {
	return 0, fmt.Errorf("not supported")
}

type stubSearcher struct {
	chunks []*schema.ToolResultChunk
}

func (s *stubSearcher) Run(_ context.Context, _ string) <-chan *schema.ToolResultChunk {
	out := make(chan *schema.ToolResultChunk, len(s.chunks))
	for _, c := range s.chunks {
		out <- c
	}
	close(out)
	return out
}

func textOf(t *testing.T, result *mcpSdk.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcpSdk.TextContent)
	require.True(t, ok)
	return text.Text
}

func newTestServer(t *testing.T, lookup bible.Lookup, tool ScriptureSearcher) *Server {
	t.Helper()
	fetcher := bible.NewFetcher(lookup, bible.NewCache())
	s, err := NewServer(fetcher, tool)
	require.NoError(t, err)
	return s
}

func TestNewServerRequiresFetcher(t *testing.T) {
	_, err := NewServer(nil, nil)
	assert.Error(t, err)
}

func TestLookupVerse(t *testing.T) {
	lookup := &stubLookup{verses: map[string]string{
		"John 3:16": "For God so loved the world",
		"John 3:17": "For God sent not his Son",
	}}
	s := newTestServer(t, lookup, nil)

	result, _, err := s.LookupVerse(context.Background(), nil, LookupVerseInput{Reference: "John 3:16-17"})

	require.NoError(t, err)
	assert.False(t, result.IsError)
	text := textOf(t, result)
	assert.Equal(t, "John 3:16: For God so loved the world\nJohn 3:17: For God sent not his Son", text)
}

func TestLookupVerseEmptyReference(t *testing.T) {
	s := newTestServer(t, &stubLookup{}, nil)

	result, _, err := s.LookupVerse(context.Background(), nil, LookupVerseInput{Reference: "  "})

	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestLookupVerseNotFound(t *testing.T) {
	s := newTestServer(t, &stubLookup{}, nil)

	result, _, err := s.LookupVerse(context.Background(), nil, LookupVerseInput{Reference: "Nowhere 1:1"})

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "Nowhere 1:1")
}

func TestSearchScripture(t *testing.T) {
	tool := &stubSearcher{chunks: []*schema.ToolResultChunk{
		{Title: "John 3", Attribution: "kjv", Sentences: []string{"16 For God so loved"}},
		{Title: "Empty"},
		{Title: "Romans 5", Attribution: "kjv", Sentences: []string{"8 But God commendeth"}},
	}}
	s := newTestServer(t, &stubLookup{}, tool)

	result, _, err := s.SearchScripture(context.Background(), nil, SearchScriptureInput{Query: "love of God"})

	require.NoError(t, err)
	assert.False(t, result.IsError)
	text := textOf(t, result)
	assert.Contains(t, text, "## John 3 (kjv)\n16 For God so loved")
	assert.Contains(t, text, "## Romans 5 (kjv)")
	assert.NotContains(t, text, "Empty")
}

func TestSearchScriptureChunkError(t *testing.T) {
	tool := &stubSearcher{chunks: []*schema.ToolResultChunk{{Error: "index unavailable"}}}
	s := newTestServer(t, &stubLookup{}, tool)

	result, _, err := s.SearchScripture(context.Background(), nil, SearchScriptureInput{Query: "love"})

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "index unavailable", textOf(t, result))
}

func TestSearchScriptureEmptyQuery(t *testing.T) {
	s := newTestServer(t, &stubLookup{}, &stubSearcher{})

	result, _, err := s.SearchScripture(context.Background(), nil, SearchScriptureInput{Query: ""})

	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestSearchScriptureNoMatches(t *testing.T) {
	s := newTestServer(t, &stubLookup{}, &stubSearcher{})

	result, _, err := s.SearchScripture(context.Background(), nil, SearchScriptureInput{Query: "obscure"})

	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, textOf(t, result), "no passages matched")
}
