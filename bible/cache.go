package bible

import (
	"strings"
	"sync"
)

// Cache memoizes resolved verse text and chapter lengths for the lifetime of
// the process. Verse text and chapter lengths live in separate maps, so a
// reference string can never collide with a chapter-length key.
//
// Writes are plain key insertions with no read-modify-write dependency;
// concurrent identical-key fetches may redundantly overwrite with equivalent
// data, which is benign.
type Cache struct {
	mu     sync.RWMutex
	verses map[string]string
	chLens map[string]int
}

func NewCache() *Cache {
	return &Cache{
		verses: make(map[string]string),
		chLens: make(map[string]int),
	}
}

func (c *Cache) Verse(ref string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	text, ok := c.verses[normalizeKey(ref)]
	return text, ok
}

func (c *Cache) PutVerse(ref, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verses[normalizeKey(ref)] = text
}

func (c *Cache) ChapterLength(key string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.chLens[normalizeKey(key)]
	return n, ok
}

func (c *Cache) PutChapterLength(key string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chLens[normalizeKey(key)] = n
}

// Reset clears all cached entries. Intended for tests.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verses = make(map[string]string)
	c.chLens = make(map[string]int)
}

func normalizeKey(s string) string {
	return strings.TrimSpace(s)
}
