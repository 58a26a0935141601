package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/SaiNageswarS/agent-boot/schema"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/appconfig"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/db"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/model"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/rag"
	"github.com/SaiNageswarS/go-api-boot/embed"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-api-boot/server"
	"go.uber.org/zap"
)

type passageSearcher interface {
	Run(ctx context.Context, query string) <-chan *schema.ToolResultChunk
}

// QueryController serves the retrieval-only surface consumed by the ChatGPT
// custom GPT: ranked scripture passages for a query, no generation.
type QueryController struct {
	tool passageSearcher
}

func ProvideQueryController(mongo odm.MongoClient, embedder embed.Embedder) *QueryController {
	cfg := appconfig.FromEnv()

	passages := odm.CollectionOf[db.PassageModel](mongo, cfg.MongoDatabase)
	vectors := odm.CollectionOf[db.PassageAnnModel](mongo, cfg.MongoDatabase)

	return &QueryController{
		tool: rag.NewSearchTool(passages, vectors, embedder),
	}
}

// HandleQuery handles POST /query.
func (c *QueryController) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var req model.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("Failed to decode query request", zap.Error(err))
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "Query is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	passages := make([]model.Passage, 0, 8)
	for chunk := range c.tool.Run(ctx, req.Query) {
		if chunk.Error != "" {
			logger.Error("search tool reported error", zap.String("error", chunk.Error))
			continue
		}
		if len(chunk.Sentences) == 0 {
			continue
		}
		passages = append(passages, model.Passage{
			Title:  chunk.Title,
			Source: chunk.Attribution,
			Text:   strings.Join(chunk.Sentences, " "),
		})
	}

	response := model.QueryResponse{
		Query:    req.Query,
		Passages: passages,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to encode query response", zap.Error(err))
		return
	}

	logger.Info("Query processed", zap.String("query", req.Query),
		zap.Int("passages", len(passages)))
}

func (c *QueryController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/query",
			Method:  http.MethodPost,
			Handler: c.HandleQuery,
		},
	}
}
