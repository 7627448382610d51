// Package youtube implements the YouTube Data API v3 collaborator.
//
// The client exposes the three operations the crawler needs — search by
// term, fetch by id, and related search — and handles authentication,
// response caching, and retries for transient failures. It returns
// [crawl.Item] values directly so the engine never sees wire formats.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ytcrawl/ytcrawl/pkg/cache"
	"github.com/ytcrawl/ytcrawl/pkg/crawl"
	"github.com/ytcrawl/ytcrawl/pkg/errors"
	"github.com/ytcrawl/ytcrawl/pkg/httputil"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"
	httpTimeout    = 10 * time.Second

	// MaxResults is the page-size cap of the search API. Branch counts are
	// validated against it before a crawl starts.
	MaxResults = 50
)

// SearchOptions carry the optional result filters of the search API.
// Zero values mean the API default.
type SearchOptions struct {
	RegionCode        string // ISO 3166-1 alpha-2 region restriction
	RelevanceLanguage string // ISO 639-1 language preference
	SafeSearch        string // none, moderate, or strict
}

// query converts the options to their API parameter names.
func (o SearchOptions) query(v url.Values) {
	if o.RegionCode != "" {
		v.Set("regionCode", o.RegionCode)
	}
	if o.RelevanceLanguage != "" {
		v.Set("relevanceLanguage", o.RelevanceLanguage)
	}
	if o.SafeSearch != "" {
		v.Set("safeSearch", o.SafeSearch)
	}
}

// Config configures a Client.
type Config struct {
	APIKey  string        // required; rejected keys surface as UNAUTHORIZED
	Cache   cache.Cache   // response cache; nil disables caching
	TTL     time.Duration // cache lifetime; 0 means cache.DefaultTTL
	Refresh bool          // bypass cached responses
	BaseURL string        // API endpoint override (tests)
}

// Client is the authenticated handle to the YouTube Data API.
// It is safe for concurrent use when its cache backend is.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	apiKey  string
	baseURL string
	ttl     time.Duration
	refresh bool
}

// NewClient creates the API handle. It fails with UNAUTHORIZED when no API
// key is configured; a key rejected by the API surfaces the same code on
// the first call.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized,
			"no API key configured (use --api-key or 'ytcrawl config set api_key <key>')")
	}
	c := &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cfg.Cache,
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		ttl:     cfg.TTL,
		refresh: cfg.Refresh,
	}
	if c.cache == nil {
		c.cache = cache.NewNullCache()
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.ttl == 0 {
		c.ttl = cache.DefaultTTL
	}
	return c, nil
}

// Search returns up to n videos matching the query, in relevance order.
// Result positions become seed ranks.
func (c *Client) Search(ctx context.Context, n int64, query string, opts SearchOptions) ([]*crawl.Item, error) {
	v := url.Values{}
	v.Set("part", "snippet")
	v.Set("type", "video")
	v.Set("q", query)
	v.Set("maxResults", strconv.FormatInt(n, 10))
	opts.query(v)

	key := cache.Key("search", query, strconv.FormatInt(n, 10), opts.RegionCode, opts.RelevanceLanguage, opts.SafeSearch)
	var resp searchListResponse
	if err := c.cached(ctx, key, &resp, func() error {
		return c.fetch(ctx, "/search", v, &resp)
	}); err != nil {
		return nil, err
	}
	return searchItems(resp), nil
}

// VideoByID fetches a single video by its identifier.
// The result has zero or one element; a missing video is VIDEO_NOT_FOUND.
func (c *Client) VideoByID(ctx context.Context, id string) ([]*crawl.Item, error) {
	v := url.Values{}
	v.Set("part", "snippet")
	v.Set("id", id)

	key := cache.Key("video", id)
	var resp videoListResponse
	if err := c.cached(ctx, key, &resp, func() error {
		return c.fetch(ctx, "/videos", v, &resp)
	}); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, errors.New(errors.ErrCodeVideoNotFound, "no video with id %q", id)
	}

	items := make([]*crawl.Item, len(resp.Items))
	for i, it := range resp.Items {
		items[i] = newItem(it.ID, it.Snippet)
	}
	return items, nil
}

// Related returns up to n videos related to the given video, in the order
// the API ranks them. Position in the result is significant: it becomes the
// child's rank in the traversal.
func (c *Client) Related(ctx context.Context, n int64, id string, opts SearchOptions) ([]*crawl.Item, error) {
	v := url.Values{}
	v.Set("part", "snippet")
	v.Set("type", "video")
	v.Set("relatedToVideoId", id)
	v.Set("maxResults", strconv.FormatInt(n, 10))
	opts.query(v)

	key := cache.Key("related", id, strconv.FormatInt(n, 10), opts.RegionCode, opts.RelevanceLanguage, opts.SafeSearch)
	var resp searchListResponse
	if err := c.cached(ctx, key, &resp, func() error {
		return c.fetch(ctx, "/search", v, &resp)
	}); err != nil {
		return nil, err
	}
	return searchItems(resp), nil
}

// cached retrieves a response from cache or executes fetch and caches the
// result. When the client was built with Refresh, the cache is bypassed.
func (c *Client) cached(ctx context.Context, key string, v any, fetch func() error) error {
	if !c.refresh {
		if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
			if json.Unmarshal(data, v) == nil {
				return nil
			}
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return nil
}

// fetch performs one GET against the API and decodes the response into v.
func (c *Client) fetch(ctx context.Context, path string, params url.Values, v any) error {
	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "request to %s", path)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// checkStatus maps API error responses to the error taxonomy.
// 5xx responses are retryable; everything else fails immediately.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var body apiError
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(data, &body)

	reason := ""
	if len(body.Error.Errors) > 0 {
		reason = body.Error.Errors[0].Reason
	}
	msg := body.Error.Message
	if msg == "" {
		msg = fmt.Sprintf("status %d", resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden && reason != "quotaExceeded",
		reason == "keyInvalid":
		return errors.New(errors.ErrCodeUnauthorized, "API key rejected: %s", msg)
	case reason == "quotaExceeded":
		return errors.New(errors.ErrCodeRateLimited, "API quota exceeded: %s", msg)
	case resp.StatusCode == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s", msg)
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &httputil.RetryableError{Err: &errors.RateLimitedError{
			RetryAfter: retryAfter,
			Message:    msg,
		}}
	case resp.StatusCode >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "%s", msg)}
	default:
		return errors.New(errors.ErrCodeAPI, "%s", msg)
	}
}

func searchItems(resp searchListResponse) []*crawl.Item {
	items := make([]*crawl.Item, 0, len(resp.Items))
	for _, it := range resp.Items {
		// Channel and playlist results carry no videoId.
		if it.ID.VideoID == "" {
			continue
		}
		items = append(items, newItem(it.ID.VideoID, it.Snippet))
	}
	return items
}

func newItem(id string, s snippet) *crawl.Item {
	return &crawl.Item{
		ID:           id,
		Title:        s.Title,
		Description:  s.Description,
		ChannelID:    s.ChannelID,
		ChannelTitle: s.ChannelTitle,
		PublishedAt:  s.PublishedAt,
		Thumbnail:    s.Thumbnails.Default.URL,
	}
}
