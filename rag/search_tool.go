package rag

import (
	"context"
	"fmt"
	"sort"

	"github.com/SaiNageswarS/agent-boot/schema"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/db"
	"github.com/SaiNageswarS/go-api-boot/embed"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/go-collection-boot/ds"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// hybrid search parameters.
const (
	rrfK               = 60  // dampening constant from the RRF paper
	textSearchWeight   = 1.0 // per-engine weights
	vectorSearchWeight = 1.0
	vecK               = 30 // hits kept from each engine
	textK              = 30
	maxPassages        = 12
)

// SearchTool serves the retrieval-only surface (the /query endpoint and the
// MCP search tool). Unlike Retriever's fallback chain, it fuses the text and
// vector engines with Reciprocal-Rank Fusion: rank is more stable than raw
// score when merging BM25 and cosine result lists.
type SearchTool struct {
	embedder embed.Embedder
	passages odm.OdmCollectionInterface[db.PassageModel]
	vectors  odm.OdmCollectionInterface[db.PassageAnnModel]
}

func NewSearchTool(passages odm.OdmCollectionInterface[db.PassageModel], vectors odm.OdmCollectionInterface[db.PassageAnnModel], embedder embed.Embedder) *SearchTool {
	return &SearchTool{
		embedder: embedder,
		passages: passages,
		vectors:  vectors,
	}
}

// Run streams ranked passage groups for query, one chapter per chunk.
func (s *SearchTool) Run(ctx context.Context, query string) <-chan *schema.ToolResultChunk {
	out := make(chan *schema.ToolResultChunk, 8)

	go func() {
		defer close(out)

		ranked, err := async.Await(s.hybridSearch(ctx, query))
		if err != nil {
			logger.Error("hybrid search failed", zap.Error(err))
			out <- &schema.ToolResultChunk{Error: err.Error()}
			return
		}

		for _, group := range groupByChapter(ranked) {
			first := group[0]

			sort.Slice(group, func(i, j int) bool {
				return group[i].VerseStart < group[j].VerseStart
			})

			sentences := make([]string, 0, len(group))
			for _, p := range group {
				if text := snippetOf(p.Content, p.Text); text != "" {
					sentences = append(sentences, text)
				}
			}

			out <- &schema.ToolResultChunk{
				Id:          first.PassageID,
				Title:       fmt.Sprintf("%s %d", first.Book, first.Chapter),
				Attribution: first.SourceURI,
				Sentences:   sentences,
			}
		}
	}()

	return out
}

func (s *SearchTool) hybridSearch(ctx context.Context, query string) <-chan async.Result[[]*db.PassageModel] {
	return async.Go(func() ([]*db.PassageModel, error) {
		// Fire the text search, then embed and fire the vector search.
		textTask := s.passages.TermSearch(ctx, query, odm.TermSearchParams{
			IndexName: db.TextSearchIndexName,
			Path:      db.TextSearchPaths,
			Limit:     textK,
		})

		textRanks, cache, err := collectTextRanks(textTask)
		if err != nil {
			logger.Error("text search failed", zap.Error(err))
		}

		vecRanks := map[string]int{}
		if s.embedder != nil {
			emb, embErr := async.Await(s.embedder.GetEmbedding(ctx, query, embed.WithTask("retrieval.query")))
			if embErr != nil {
				logger.Error("query embedding failed", zap.Error(embErr))
			} else {
				vecRanks, err = collectVectorRanks(s.vectors.VectorSearch(ctx, emb, odm.VectorSearchParams{
					IndexName:     db.VectorIndexName,
					Path:          db.VectorPath,
					K:             vecK,
					NumCandidates: numCandidates,
				}))
				if err != nil {
					logger.Error("vector search failed", zap.Error(err))
				}
			}
		}

		if len(textRanks) == 0 && len(vecRanks) == 0 {
			return nil, nil
		}

		// Reciprocal-Rank Fusion: score(id) = sum weight_e / (rrfK + rank_e).
		combined := make(map[string]float64)
		for id, r := range textRanks {
			combined[id] = textSearchWeight / float64(rrfK+r)
		}
		for id, r := range vecRanks {
			combined[id] += vectorSearchWeight / float64(rrfK+r)
		}

		// Keep the top-N with a min-heap, highest RRF score first.
		type pair struct {
			id    string
			score float64
		}
		h := ds.NewMinHeap(func(a, b pair) bool { return a.score < b.score })
		for id, sc := range combined {
			h.Push(pair{id, sc})
			if h.Len() > maxPassages {
				h.Pop()
			}
		}

		sorted := h.ToSortedSlice()
		ids := make([]string, 0, len(sorted))
		for i := len(sorted) - 1; i >= 0; i-- {
			ids = append(ids, sorted[i].id)
		}

		return s.fetchByIds(ctx, cache, ids), nil
	})
}

// collectTextRanks returns id→rank (1-based) plus a cache of the full docs.
func collectTextRanks(task <-chan async.Result[[]odm.SearchHit[db.PassageModel]]) (map[string]int, map[string]*db.PassageModel, error) {
	ranks := make(map[string]int)
	cache := make(map[string]*db.PassageModel)

	hits, err := async.Await(task)
	if err != nil {
		return ranks, cache, status.Errorf(codes.Internal, "await text hits: %v", err)
	}

	for i, h := range hits {
		id := h.Doc.Id()
		if _, seen := ranks[id]; !seen {
			ranks[id] = i + 1
			cache[id] = &h.Doc
		}
	}
	return ranks, cache, nil
}

func collectVectorRanks(task <-chan async.Result[[]odm.SearchHit[db.PassageAnnModel]]) (map[string]int, error) {
	ranks := make(map[string]int)

	hits, err := async.Await(task)
	if err != nil {
		return ranks, status.Errorf(codes.Internal, "await vector hits: %v", err)
	}

	for i, h := range hits {
		id := h.Doc.Id()
		if _, seen := ranks[id]; !seen {
			ranks[id] = i + 1
		}
	}
	return ranks, nil
}

// fetchByIds materializes passages in ranking order, pulling any hits not
// already cached from the text engine in one round-trip.
func (s *SearchTool) fetchByIds(ctx context.Context, cache map[string]*db.PassageModel, rankedIds []string) []*db.PassageModel {
	if len(rankedIds) == 0 {
		return nil
	}

	byID := make(map[string]*db.PassageModel, len(rankedIds))
	var missing []string
	for _, id := range rankedIds {
		if p, ok := cache[id]; ok {
			byID[id] = p
		} else {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		docs, err := async.Await(
			s.passages.Find(ctx, bson.M{"_id": bson.M{"$in": missing}}, nil, 0, 0),
		)
		if err != nil {
			logger.Error("fetching passages by id failed", zap.Error(err))
			// return whatever is already cached
		}
		for _, d := range docs {
			byID[d.PassageID] = &d
		}
	}

	ordered := make([]*db.PassageModel, 0, len(rankedIds))
	for _, id := range rankedIds {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

// groupByChapter buckets ranked passages by book and chapter. Group order
// follows the best-ranked member of each bucket.
func groupByChapter(passages []*db.PassageModel) [][]*db.PassageModel {
	if len(passages) == 0 {
		return nil
	}

	index := make(map[string]int, len(passages))
	var groups [][]*db.PassageModel
	for _, p := range passages {
		key := fmt.Sprintf("%s\x00%d", p.Book, p.Chapter)
		if i, ok := index[key]; ok {
			groups[i] = append(groups[i], p)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, []*db.PassageModel{p})
	}
	return groups
}
