package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/SaiNageswarS/bible-rag-custom-gpt/appconfig"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/bible"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/llm"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/model"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/rag"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/websearch"
	"github.com/SaiNageswarS/go-api-boot/embed"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-api-boot/server"
	"go.uber.org/zap"
)

// Narrow views of the pipeline collaborators, defined here so the controller
// can be exercised with fakes.
type verseFetcher interface {
	FetchRange(ctx context.Context, text string) []bible.VerseText
}

type contextRetriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]string, rag.Source)
}

// ChatController runs the full question-answering pipeline: reference
// detection, verse expansion, tiered context retrieval, request assembly,
// model invocation, and answer extraction.
type ChatController struct {
	fetcher   verseFetcher
	retriever contextRetriever
	chatModel llm.Model
	topK      int
}

// ProvideChatController wires the pipeline from injected Mongo and embedder
// clients plus environment configuration.
func ProvideChatController(mongo odm.MongoClient, embedder embed.Embedder) *ChatController {
	cfg := appconfig.FromEnv()

	fetcher := bible.NewFetcher(bible.NewLookupClient(cfg.BibleAPIURL), bible.NewCache())
	var web *websearch.Client
	if cfg.EnableWebSearch {
		web = websearch.NewClient(cfg.WebSearchURL, os.Getenv("WEB_SEARCH_KEY"))
	}
	retriever := rag.NewRetriever(mongo, cfg.MongoDatabase, embedder, web)
	chatModel := llm.NewChatClient(cfg.ChatAPIURL, os.Getenv("CHAT_API_KEY"), cfg.ChatModel, cfg.ChatMaxTokens)

	return &ChatController{
		fetcher:   fetcher,
		retriever: retriever,
		chatModel: chatModel,
		topK:      cfg.RagTopK,
	}
}

// HandleChat handles POST /chat.
func (c *ChatController) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("Failed to decode chat request", zap.Error(err))
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		http.Error(w, "Question is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	// Verse lookups happen only when a literal reference is present.
	var verses []bible.VerseText
	if ref, ok := bible.ExtractFirstReference(question); ok {
		verses = c.fetcher.FetchRange(ctx, ref.Raw)
	}

	snippets, source := c.retriever.Retrieve(ctx, question, c.topK)

	messages := llm.Assemble(question, req.History, snippets, source == rag.SourceWeb, verses)

	raw, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		logger.Error("chat model invocation failed", zap.Error(err))
		http.Error(w, "The assistant is temporarily unavailable. Please try again.", http.StatusBadGateway)
		return
	}

	response := model.ChatResponse{Answer: llm.ExtractText(raw)}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to encode chat response", zap.Error(err))
		return
	}

	logger.Info("Chat processed", zap.String("contextSource", string(source)),
		zap.Int("verseBlocks", len(verses)))
}

func (c *ChatController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/chat",
			Method:  http.MethodPost,
			Handler: c.HandleChat,
		},
	}
}
