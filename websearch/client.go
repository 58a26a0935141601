package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

const (
	// DefaultTopK is the result cap applied when the caller passes no limit.
	DefaultTopK = 3

	defaultSearchTimeout = 10 * time.Second
	snippetSeparator     = " — "
)

// ErrEmptyQuery indicates a caller bug, not an environmental failure; it is
// the only error Search ever returns.
var ErrEmptyQuery = errors.New("websearch: query must not be empty")

// searchItem is one web result. The provider populates either Snippet or
// Text, and either URL or DisplayURL.
type searchItem struct {
	Name       string `json:"name"`
	Snippet    string `json:"snippet"`
	Text       string `json:"text"`
	URL        string `json:"url"`
	DisplayURL string `json:"displayUrl"`
}

type searchResponse struct {
	WebPages struct {
		Value []searchItem `json:"value"`
	} `json:"webPages"`
}

// Client queries a Bing-compatible web search endpoint and converts results
// into short attributed snippets. An unconfigured client is a valid no-op:
// Search returns no snippets without error.
type Client struct {
	endpoint string
	key      string
	client   *http.Client
}

func NewClient(endpoint, key string) *Client {
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		key:      strings.TrimSpace(key),
		client:   &http.Client{Timeout: defaultSearchTimeout},
	}
}

// Configured reports whether both endpoint and credential are present.
func (c *Client) Configured() bool {
	return c.endpoint != "" && c.key != ""
}

// Search returns up to topK attributed snippets for query. Transient
// failures (network errors, non-success statuses, malformed payloads) are
// logged and yield an empty result; they never propagate to the caller.
func (c *Client) Search(ctx context.Context, query string, topK int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if !c.Configured() {
		return nil, nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	reqURL, err := url.Parse(c.endpoint)
	if err != nil {
		logger.Error("invalid web search endpoint", zap.Error(err))
		return nil, nil
	}
	params := reqURL.Query()
	params.Set("q", query)
	params.Set("count", strconv.Itoa(topK))
	params.Set("textFormat", "Raw")
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		logger.Error("building web search request failed", zap.Error(err))
		return nil, nil
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error("web search request failed", zap.Error(err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("web search returned non-success status", zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.Error("decoding web search response failed", zap.Error(err))
		return nil, nil
	}

	snippets := make([]string, 0, topK)
	for _, item := range body.WebPages.Value {
		if len(snippets) == topK {
			break
		}
		if s := renderItem(item); s != "" {
			snippets = append(snippets, s)
		}
	}
	return snippets, nil
}

// renderItem joins the non-empty parts of a result into one display string.
func renderItem(item searchItem) string {
	text := item.Snippet
	if text == "" {
		text = item.Text
	}
	link := item.URL
	if link == "" {
		link = item.DisplayURL
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{item.Name, text, link} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, snippetSeparator)
}
