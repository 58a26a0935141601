package rag

import (
	"context"
	"strings"

	"github.com/SaiNageswarS/bible-rag-custom-gpt/db"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/websearch"
	"github.com/SaiNageswarS/go-api-boot/embed"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"go.uber.org/zap"
)

const (
	// DefaultTopK caps context snippets when the caller passes no limit.
	DefaultTopK = 3

	numCandidates = 100
)

// Source identifies the tier that produced a batch of snippets.
type Source string

const (
	SourceNone     Source = "none"
	SourceVector   Source = "vector"
	SourceFullText Source = "fulltext"
	SourceWeb      Source = "web"
)

// tier is one stage of the fallback chain. A tier cannot fail: environmental
// errors are logged inside the tier and surface as an empty batch.
type tier struct {
	source Source
	run    func(ctx context.Context, query string, topK int) []string
}

// Retriever orchestrates three-tier context retrieval: vector similarity,
// then full-text search, then live web search. Each tier is attempted only
// when the previous one yielded nothing usable.
type Retriever struct {
	embedder embed.Embedder
	passages odm.OdmCollectionInterface[db.PassageModel]
	vectors  odm.OdmCollectionInterface[db.PassageAnnModel]
	web      *websearch.Client

	tiers []tier
}

func NewRetriever(mongo odm.MongoClient, database string, embedder embed.Embedder, web *websearch.Client) *Retriever {
	r := &Retriever{
		embedder: embedder,
		passages: odm.CollectionOf[db.PassageModel](mongo, database),
		vectors:  odm.CollectionOf[db.PassageAnnModel](mongo, database),
		web:      web,
	}
	r.tiers = []tier{
		{source: SourceVector, run: r.vectorTier},
		{source: SourceFullText, run: r.fullTextTier},
		{source: SourceWeb, run: r.webTier},
	}
	return r
}

// Retrieve returns up to topK context snippets for query along with the tier
// that produced them. It never fails; when every tier comes back empty the
// result is an empty batch tagged SourceNone.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]string, Source) {
	if strings.TrimSpace(query) == "" {
		return nil, SourceNone
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	for _, t := range r.tiers {
		if snippets := t.run(ctx, query, topK); len(snippets) > 0 {
			return snippets, t.source
		}
	}
	return nil, SourceNone
}

// vectorTier embeds the query and runs nearest-neighbor search over the ANN
// collection. Without a configured embedder the tier is skipped outright.
func (r *Retriever) vectorTier(ctx context.Context, query string, topK int) []string {
	if r.embedder == nil {
		return nil
	}

	emb, err := async.Await(r.embedder.GetEmbedding(ctx, query, embed.WithTask("retrieval.query")))
	if err != nil {
		logger.Error("query embedding failed", zap.Error(err))
		return nil
	}

	hits, err := async.Await(r.vectors.VectorSearch(ctx, emb, odm.VectorSearchParams{
		IndexName:     db.VectorIndexName,
		Path:          db.VectorPath,
		K:             topK,
		NumCandidates: numCandidates,
	}))
	if err != nil {
		logger.Error("vector search failed", zap.Error(err))
		return nil
	}

	snippets := make([]string, 0, topK)
	for _, h := range hits {
		if len(snippets) == topK {
			break
		}
		if s := snippetOf(h.Doc.Content, h.Doc.Text); s != "" {
			snippets = append(snippets, s)
		}
	}
	return snippets
}

// fullTextTier runs Atlas term search over the passage collection.
func (r *Retriever) fullTextTier(ctx context.Context, query string, topK int) []string {
	hits, err := async.Await(r.passages.TermSearch(ctx, query, odm.TermSearchParams{
		IndexName: db.TextSearchIndexName,
		Path:      db.TextSearchPaths,
		Limit:     topK,
	}))
	if err != nil {
		logger.Error("full-text search failed", zap.Error(err))
		return nil
	}

	snippets := make([]string, 0, topK)
	for _, h := range hits {
		if len(snippets) == topK {
			break
		}
		if s := snippetOf(h.Doc.Content, h.Doc.Text); s != "" {
			snippets = append(snippets, s)
		}
	}
	return snippets
}

// webTier is the last resort: live web search through the configured client.
func (r *Retriever) webTier(ctx context.Context, query string, topK int) []string {
	if r.web == nil {
		return nil
	}

	snippets, err := r.web.Search(ctx, query, topK)
	if err != nil {
		// Search only errors on caller misuse; Retrieve guards the empty
		// query, so this should not happen.
		logger.Error("web search rejected query", zap.Error(err))
		return nil
	}
	return snippets
}

// snippetOf normalizes a result row to plain text, preferring the content
// field over the text field.
func snippetOf(content, text string) string {
	if s := strings.TrimSpace(content); s != "" {
		return s
	}
	return strings.TrimSpace(text)
}
