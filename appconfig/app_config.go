package appconfig

import (
	"os"
	"strconv"

	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	BibleAPIURL     string `ini:"bible_api_url"`
	WebSearchURL    string `ini:"web_search_url"`
	EnableWebSearch bool   `ini:"enable_web_search"`
	ChatAPIURL      string `ini:"chat_api_url"`
	ChatModel       string `ini:"chat_model"`
	ChatMaxTokens   int    `ini:"chat_max_tokens"`
	MongoDatabase   string `ini:"mongo_database"`
	RagTopK         int    `ini:"rag_top_k"`
}

// FromEnv builds the config from environment variables with sensible
// defaults. Credentials (WEB_SEARCH_KEY, CHAT_API_KEY, API_KEY) are read at
// the client construction sites, never stored here.
func FromEnv() *AppConfig {
	return &AppConfig{
		BibleAPIURL:     envOr("BIBLE_API_URL", "https://bible-api.com"),
		WebSearchURL:    os.Getenv("WEB_SEARCH_URL"),
		EnableWebSearch: os.Getenv("ENABLE_WEB_SEARCH") != "false",
		ChatAPIURL:      os.Getenv("CHAT_API_URL"),
		ChatModel:       envOr("CHAT_MODEL", "gpt-4o-mini"),
		ChatMaxTokens:   envIntOr("CHAT_MAX_TOKENS", 300),
		MongoDatabase:   envOr("MONGO_DATABASE", "biblechat"),
		RagTopK:         envIntOr("RAG_TOP_K", 3),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
