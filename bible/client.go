package bible

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultLookupTimeout = 10 * time.Second

// verseEntry is one verse record in a lookup response.
type verseEntry struct {
	BookName string `json:"book_name"`
	Chapter  int    `json:"chapter"`
	Verse    int    `json:"verse"`
	Text     string `json:"text"`
}

// lookupResponse is the payload returned by a bible-api.com compatible
// endpoint for both single-verse and whole-chapter lookups.
type lookupResponse struct {
	Reference string       `json:"reference"`
	Verses    []verseEntry `json:"verses"`
	Text      string       `json:"text"`
}

// LookupClient resolves reference strings against a REST verse-lookup
// endpoint. The reference is passed URL-encoded as the request path.
type LookupClient struct {
	baseURL string
	client  *http.Client
}

func NewLookupClient(baseURL string) *LookupClient {
	return &LookupClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultLookupTimeout},
	}
}

// Verse fetches the text of a single reference. Non-OK statuses and
// malformed bodies are returned as errors for the caller to degrade on.
func (c *LookupClient) Verse(ctx context.Context, ref string) (string, error) {
	body, err := c.get(ctx, ref)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(body.Text)
	if text == "" {
		return "", fmt.Errorf("empty verse text for %q", ref)
	}
	return text, nil
}

// ChapterVerseCount fetches a whole chapter and counts its verse entries.
func (c *LookupClient) ChapterVerseCount(ctx context.Context, book string, chapter int) (int, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s %d", book, chapter))
	if err != nil {
		return 0, err
	}
	if len(body.Verses) == 0 {
		return 0, fmt.Errorf("no verses returned for %s %d", book, chapter)
	}
	return len(body.Verses), nil
}

func (c *LookupClient) get(ctx context.Context, ref string) (*lookupResponse, error) {
	reqURL := c.baseURL + "/" + url.PathEscape(strings.TrimSpace(ref))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verse lookup returned status %d for %q", resp.StatusCode, ref)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode verse lookup response: %w", err)
	}
	return &body, nil
}
