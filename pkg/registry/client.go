package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/loomui/loom/pkg/cache"
)

const httpTimeout = 10 * time.Second

// DefaultCacheTTL is the default lifetime of persistently cached responses.
const DefaultCacheTTL = 24 * time.Hour

// Client fetches component descriptors from a registry over HTTP.
//
// Descriptors fetched by id are memoized in-memory for the lifetime of the
// client instance, so resolving a closure never fetches the same component
// twice. An optional cache backend persists responses across runs.
//
// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	backend cache.Cache
	ttl     time.Duration

	mu   sync.Mutex
	memo map[string]*Component
}

// NewClient creates a registry client for the given base URL.
// Pass cache.NewNullCache() as backend to disable persistent caching.
func NewClient(baseURL string, backend cache.Cache, ttl time.Duration) *Client {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: httpTimeout},
		backend: backend,
		ttl:     ttl,
		memo:    make(map[string]*Component),
	}
}

// Component fetches one descriptor by id.
//
// Returns an error wrapping cache.ErrNotFound if the registry does not
// know the identifier, and one wrapping ErrInvalid if the response does
// not match the expected descriptor shape. If refresh is true, the
// persistent cache is bypassed (the in-memory memo still applies).
func (c *Client) Component(ctx context.Context, id string, refresh bool) (*Component, error) {
	c.mu.Lock()
	if comp, ok := c.memo[id]; ok {
		c.mu.Unlock()
		return comp, nil
	}
	c.mu.Unlock()

	// Validation happens inside the fetch closure so that an invalid
	// response is never persisted to the backend.
	var comp Component
	key := "component:" + id
	err := c.cached(ctx, key, refresh, &comp, func() error {
		if err := c.get(ctx, c.baseURL+"/registry/components/"+url.PathEscape(id), &comp); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: component %s", cache.ErrNotFound, id)
			}
			return err
		}
		return comp.Validate()
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.memo[id] = &comp
	c.mu.Unlock()
	return &comp, nil
}

// Components fetches every descriptor the registry knows about.
func (c *Client) Components(ctx context.Context, refresh bool) ([]Component, error) {
	var comps []Component
	err := c.cached(ctx, "components:all", refresh, &comps, func() error {
		if err := c.get(ctx, c.baseURL+"/registry/components", &comps); err != nil {
			return err
		}
		for i := range comps {
			if err := comps[i].Validate(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comps, nil
}

// Search fetches descriptors matching a free-text query.
// Search results are not cached; queries are open-ended.
func (c *Client) Search(ctx context.Context, query string) ([]Component, error) {
	var comps []Component
	u := c.baseURL + "/registry/search?q=" + url.QueryEscape(query)
	if err := c.get(ctx, u, &comps); err != nil {
		return nil, err
	}
	for i := range comps {
		if err := comps[i].Validate(); err != nil {
			return nil, err
		}
	}
	return comps, nil
}

// ComponentsByID fetches several descriptors concurrently, preserving the
// order of ids in the result. All fetches are issued at once and the call
// waits for every one to finish; any single failure fails the whole batch.
func (c *Client) ComponentsByID(ctx context.Context, ids []string, refresh bool) ([]*Component, error) {
	comps := make([]*Component, len(ids))
	errs := make([]error, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			comps[i], errs[i] = c.Component(ctx, id, refresh)
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return comps, nil
}

// cached retrieves a value from the persistent backend or executes fetch
// and stores the result. If refresh is true the backend is bypassed.
func (c *Client) cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if data, hit, _ := c.backend.Get(ctx, key); hit {
			if json.Unmarshal(data, v) == nil {
				return nil
			}
		}
	}
	if err := cache.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.backend.Set(ctx, key, data, c.ttl)
	}
	return nil
}

// get performs an HTTP GET and JSON-decodes the response into v.
func (c *Client) get(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return cache.ErrNotFound
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", cache.ErrNetwork, code)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, cache.ErrNotFound)
}
