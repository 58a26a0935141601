package controller

import (
	"encoding/json"
	"net/http"

	"github.com/SaiNageswarS/bible-rag-custom-gpt/appconfig"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/db"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/middleware"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-api-boot/server"
)

type MetadataController struct {
	mongo    *odm.MongoClient
	database string
}

func ProvideMetadataController(mongo odm.MongoClient) *MetadataController {
	return &MetadataController{
		mongo:    &mongo,
		database: appconfig.FromEnv().MongoDatabase,
	}
}

// ListBooks returns the distinct books covered by the passage store.
func (mc *MetadataController) ListBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var books []string
	err := odm.CollectionOf[db.PassageModel](*mc.mongo, mc.database).DistinctInto(ctx, "book", nil, &books)
	if err != nil {
		http.Error(w, "Failed to fetch books", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	response := map[string][]string{"books": books}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (mc *MetadataController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/metadata/books",
			Method:  http.MethodGet,
			Handler: middleware.APIKeyAuthMiddleware(mc.ListBooks),
		},
	}
}
