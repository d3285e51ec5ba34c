// Package feed implements the paginated product feed: it accumulates pages
// for the current filter, serializes page fetches, and discards results that
// arrive for a filter that is no longer active.
package feed

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
)

// Client fetches one page of products for a filter.
type Client interface {
	FetchProducts(ctx context.Context, page int, filter domain.FeedFilter) (domain.FeedPage, error)
}

// Snapshot is the read-only view handed to the presentation layer.
type Snapshot struct {
	Filter         domain.FeedFilter
	Items          []domain.Product
	HasMore        bool
	Loading        bool
	InitialLoading bool
	Err            error
}

// Controller owns the feed state. Fetches issued under a superseded filter
// identity are dropped when they resolve; page N+1 is never requested
// before page N has been applied.
type Controller struct {
	client Client
	logger *log.Logger

	mu      sync.Mutex
	started bool
	filter  domain.FeedFilter
	gen     uint64 // filter identity tag; bumped on every filter change
	pages   []domain.FeedPage
	current int // highest applied page number
	last    int // lastPage reported by the latest applied page, 0 until known
	loading bool
	initial bool
	err     error
	subs    []func(Snapshot)
}

func New(client Client, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Controller{client: client, logger: logger}
}

// SetFilter switches the feed to a new filter identity. Equal filters are a
// no-op once started. On a change all cached pages are discarded and page 1
// is fetched; any in-flight fetch for the old filter becomes stale.
func (c *Controller) SetFilter(ctx context.Context, filter domain.FeedFilter) error {
	c.mu.Lock()
	if c.started && filter == c.filter {
		c.mu.Unlock()
		return nil
	}
	c.started = true
	c.filter = filter
	c.gen++
	c.pages = nil
	c.current = 0
	c.last = 0
	c.err = nil
	c.initial = true
	return c.fetchLocked(ctx, 1)
}

// LoadMore fetches the next page. It is a no-op while a fetch is in flight
// or once the last applied page reported no further pages. After a failure
// it retries the same page rather than skipping it.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return nil
	}
	if c.started && c.last > 0 && c.current >= c.last {
		c.mu.Unlock()
		return nil
	}
	c.started = true
	if c.current == 0 {
		c.initial = true
	}
	return c.fetchLocked(ctx, c.current+1)
}

// fetchLocked performs the page fetch. The mutex is held on entry and
// released around the network call; the result is applied only if the
// filter identity is still current.
func (c *Controller) fetchLocked(ctx context.Context, page int) error {
	gen := c.gen
	filter := c.filter
	c.loading = true
	c.notifyAndUnlock()

	result, err := c.client.FetchProducts(ctx, page, filter)

	c.mu.Lock()
	if gen != c.gen {
		// The filter changed while this fetch was in flight. Its result
		// belongs to a dead page sequence and the new fetch owns the
		// loading flag, so nothing may be touched here.
		c.mu.Unlock()
		c.logger.Printf("feed: dropped stale page %d result", page)
		return nil
	}
	c.loading = false
	if err != nil {
		c.err = fmt.Errorf("fetch page %d: %w", page, err)
		err = c.err
		c.notifyAndUnlock()
		return err
	}

	if result.CurrentPage == 0 {
		result.CurrentPage = page
	}
	if result.LastPage == 0 {
		result.LastPage = result.CurrentPage
	}
	c.pages = append(c.pages, result)
	c.current = result.CurrentPage
	c.last = result.LastPage
	c.err = nil
	c.initial = false
	c.notifyAndUnlock()
	return nil
}

// Snapshot returns the current feed view with items flattened in page order.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	var items []domain.Product
	for _, p := range c.pages {
		items = append(items, p.Items...)
	}
	return Snapshot{
		Filter:         c.filter,
		Items:          items,
		HasMore:        !c.started || c.last == 0 || c.current < c.last,
		Loading:        c.loading,
		InitialLoading: c.initial,
		Err:            c.err,
	}
}

// Subscribe registers fn to receive a snapshot whenever the feed changes.
func (c *Controller) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// notifyAndUnlock snapshots under the lock, releases it, then invokes
// subscribers so they can safely call back into the controller.
func (c *Controller) notifyAndUnlock() {
	subs := make([]func(Snapshot), len(c.subs))
	copy(subs, c.subs)
	var snap Snapshot
	if len(subs) > 0 {
		snap = c.snapshotLocked()
	}
	c.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}
