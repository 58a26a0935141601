package appconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"BIBLE_API_URL", "WEB_SEARCH_URL", "ENABLE_WEB_SEARCH", "CHAT_API_URL",
		"CHAT_MODEL", "CHAT_MAX_TOKENS", "MONGO_DATABASE", "RAG_TOP_K",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "https://bible-api.com", cfg.BibleAPIURL)
	assert.Equal(t, "", cfg.WebSearchURL)
	assert.True(t, cfg.EnableWebSearch)
	assert.Equal(t, "", cfg.ChatAPIURL)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	assert.Equal(t, 300, cfg.ChatMaxTokens)
	assert.Equal(t, "biblechat", cfg.MongoDatabase)
	assert.Equal(t, 3, cfg.RagTopK)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("BIBLE_API_URL", "https://lookup.internal")
	t.Setenv("ENABLE_WEB_SEARCH", "false")
	t.Setenv("CHAT_MODEL", "gpt-4o")
	t.Setenv("CHAT_MAX_TOKENS", "512")
	t.Setenv("RAG_TOP_K", "5")

	cfg := FromEnv()

	assert.Equal(t, "https://lookup.internal", cfg.BibleAPIURL)
	assert.False(t, cfg.EnableWebSearch)
	assert.Equal(t, "gpt-4o", cfg.ChatModel)
	assert.Equal(t, 512, cfg.ChatMaxTokens)
	assert.Equal(t, 5, cfg.RagTopK)
}

func TestFromEnvRejectsBadIntegers(t *testing.T) {
	t.Setenv("CHAT_MAX_TOKENS", "lots")
	t.Setenv("RAG_TOP_K", "-1")

	cfg := FromEnv()

	assert.Equal(t, 300, cfg.ChatMaxTokens)
	assert.Equal(t, 3, cfg.RagTopK)
}
