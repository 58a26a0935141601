package bible

import (
	"context"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/go-collection-boot/ds"
	"go.uber.org/zap"
)

// Lookup is the external verse-lookup capability consumed by Fetcher.
type Lookup interface {
	Verse(ctx context.Context, ref string) (string, error)
	ChapterVerseCount(ctx context.Context, book string, chapter int) (int, error)
}

// VerseText is one resolved reference. OK is false when the lookup failed;
// a failed lookup never aborts the containing batch.
type VerseText struct {
	Ref  string
	Text string
	OK   bool
}

// Fetcher resolves reference strings to verse text through a Lookup, with a
// shared memoization cache. All lookup failures degrade to missing entries.
type Fetcher struct {
	lookup Lookup
	cache  *Cache
}

func NewFetcher(lookup Lookup, cache *Cache) *Fetcher {
	if cache == nil {
		cache = NewCache()
	}
	return &Fetcher{lookup: lookup, cache: cache}
}

// FetchOne resolves a single reference, consulting the cache first.
// Failed lookups are not cached.
func (f *Fetcher) FetchOne(ctx context.Context, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}

	if text, ok := f.cache.Verse(ref); ok {
		return text, true
	}

	text, err := f.lookup.Verse(ctx, ref)
	if err != nil {
		logger.Error("verse lookup failed", zap.String("ref", ref), zap.Error(err))
		return "", false
	}

	f.cache.PutVerse(ref, text)
	return text, true
}

// FetchMany resolves the given references concurrently. Duplicate inputs
// collapse to a single entry and a single external call; result order follows
// first appearance in refs regardless of completion order.
func (f *Fetcher) FetchMany(ctx context.Context, refs []string) []VerseText {
	seen := ds.NewSet[string]()
	ordered := make([]string, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" || seen.Contains(ref) {
			continue
		}
		seen.Add(ref)
		ordered = append(ordered, ref)
	}

	type fetched struct {
		text string
		ok   bool
	}

	tasks := make([]<-chan async.Result[fetched], 0, len(ordered))
	for _, ref := range ordered {
		tasks = append(tasks, async.Go(func() (fetched, error) {
			text, ok := f.FetchOne(ctx, ref)
			return fetched{text: text, ok: ok}, nil
		}))
	}

	out := make([]VerseText, 0, len(ordered))
	for i, task := range tasks {
		res, err := async.Await(task)
		if err != nil {
			res = fetched{}
		}
		out = append(out, VerseText{Ref: ordered[i], Text: res.text, OK: res.ok})
	}
	return out
}

// FetchRange expands a range reference into per-verse fetches. Input that is
// not a valid range (bare book or chapter, single verse, inverted endpoints)
// is fetched verbatim as one opaque reference.
//
// Cross-chapter ranges need the length of the start chapter and of every
// chapter strictly between the endpoints; a failed length lookup skips that
// chapter's expansion and yields partial results.
func (f *Fetcher) FetchRange(ctx context.Context, text string) []VerseText {
	trimmed := strings.TrimSpace(text)

	rng, ok := ParseRange(trimmed)
	if !ok {
		verse, found := f.FetchOne(ctx, trimmed)
		return []VerseText{{Ref: trimmed, Text: verse, OK: found}}
	}

	var refs []string
	addVerses := func(chapter, from, to int) {
		for v := from; v <= to; v++ {
			refs = append(refs, fmt.Sprintf("%s %d:%d", rng.Book, chapter, v))
		}
	}

	if rng.SameChapter() {
		addVerses(rng.ChapterStart, rng.VerseStart, rng.VerseEnd)
		return f.FetchMany(ctx, refs)
	}

	if n := f.ChapterLength(ctx, rng.Book, rng.ChapterStart); n >= rng.VerseStart {
		addVerses(rng.ChapterStart, rng.VerseStart, n)
	}
	for ch := rng.ChapterStart + 1; ch < rng.ChapterEnd; ch++ {
		if n := f.ChapterLength(ctx, rng.Book, ch); n > 0 {
			addVerses(ch, 1, n)
		}
	}
	addVerses(rng.ChapterEnd, 1, rng.VerseEnd)

	return f.FetchMany(ctx, refs)
}

// ChapterLength returns the verse count of a chapter, or 0 when unknown.
func (f *Fetcher) ChapterLength(ctx context.Context, book string, chapter int) int {
	key := fmt.Sprintf("%s %d", book, chapter)
	if n, ok := f.cache.ChapterLength(key); ok {
		return n
	}

	n, err := f.lookup.ChapterVerseCount(ctx, book, chapter)
	if err != nil {
		logger.Error("chapter length lookup failed",
			zap.String("book", book), zap.Int("chapter", chapter), zap.Error(err))
		return 0
	}

	f.cache.PutChapterLength(key, n)
	return n
}
