package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/readmore/core"
)

const (
	// DefaultDebounce is the quiet period that ends a burst of scroll events.
	DefaultDebounce = 100 * time.Millisecond

	// DefaultLimit is the number of related pages requested.
	DefaultLimit = 3

	// DefaultTopic is the channel the fetched pages are published on.
	DefaultTopic = "ext.relatedArticles.init"
)

// DefaultModules are the modules loaded alongside the fetch: the panel
// renderer and the gateway bundle.
var DefaultModules = []string{
	"ext.relatedArticles.readMore",
	"ext.relatedArticles.readMore.gateway",
}

// State is the lifecycle stage of a Bootstrap.
type State int32

const (
	// Idle means the bootstrap is waiting for the panel to come near.
	Idle State = iota
	// Triggered means loading and fetching are in flight.
	Triggered
	// Done means the bootstrap has finished, whatever the outcome.
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Triggered:
		return "triggered"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// ScrollSource delivers scroll notifications.
type ScrollSource interface {
	// Subscribe returns the event stream and a function that ends the
	// subscription. The function may be called more than once.
	Subscribe() (<-chan struct{}, func())
}

// Fetcher returns the related pages of the current page.
// *gateway.Gateway satisfies it.
type Fetcher interface {
	GetForCurrentPage(ctx context.Context, limit int) []core.PageSummary
}

// ModuleLoader loads rendering modules on demand.
type ModuleLoader interface {
	Load(ctx context.Context, modules ...string) error
}

// Publisher hands fetched pages to the rendering subsystem.
type Publisher interface {
	Publish(topic string, pages []core.PageSummary)
}

// Bootstrap lazily loads the related pages panel of one page view.
type Bootstrap struct {
	viewport  Viewport
	panel     Element
	scrolls   ScrollSource
	fetcher   Fetcher
	loader    ModuleLoader
	publisher Publisher

	debounce time.Duration
	limit    int
	modules  []string
	topic    string
	onEmpty  func()

	pool     *ants.Pool
	ownsPool bool
	released atomic.Bool

	started atomic.Bool
	state   atomic.Int32
	logger  *slog.Logger
}

// Option configures a Bootstrap.
type Option func(*Bootstrap) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bootstrap) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// WithDebounce sets the quiet period after the last scroll event before the
// panel position is checked. Default is 100ms.
func WithDebounce(d time.Duration) Option {
	return func(b *Bootstrap) error {
		if d < 0 {
			return ErrInvalidDebounce
		}
		b.debounce = d
		return nil
	}
}

// WithLimit sets the number of related pages requested. Default is 3.
func WithLimit(limit int) Option {
	return func(b *Bootstrap) error {
		b.limit = limit
		return nil
	}
}

// WithModules sets the modules loaded alongside the fetch.
func WithModules(modules ...string) Option {
	return func(b *Bootstrap) error {
		b.modules = append([]string(nil), modules...)
		return nil
	}
}

// WithTopic sets the channel the pages are published on.
func WithTopic(topic string) Option {
	return func(b *Bootstrap) error {
		b.topic = topic
		return nil
	}
}

// WithPool runs the load and the fetch on a caller-owned pool.
// The pool is not released by the bootstrap.
func WithPool(pool *ants.Pool) Option {
	return func(b *Bootstrap) error {
		if pool == nil {
			return nil
		}
		if b.ownsPool && b.pool != nil {
			b.pool.Release()
		}
		b.pool = pool
		b.ownsPool = false
		return nil
	}
}

// WithOnEmpty sets a hook that runs when the fetch yields no pages.
func WithOnEmpty(fn func()) Option {
	return func(b *Bootstrap) error {
		b.onEmpty = fn
		return nil
	}
}

// New creates a bootstrap for the panel element of one page view.
func New(
	viewport Viewport,
	panel Element,
	scrolls ScrollSource,
	fetcher Fetcher,
	loader ModuleLoader,
	publisher Publisher,
	opts ...Option,
) (*Bootstrap, error) {
	switch {
	case viewport == nil:
		return nil, ErrViewportRequired
	case panel == nil:
		return nil, ErrPanelRequired
	case scrolls == nil:
		return nil, ErrScrollSourceRequired
	case fetcher == nil:
		return nil, ErrFetcherRequired
	case loader == nil:
		return nil, ErrModuleLoaderRequired
	case publisher == nil:
		return nil, ErrPublisherRequired
	}

	// One worker per post-trigger task
	pool, err := ants.NewPool(2)
	if err != nil {
		return nil, err
	}

	b := &Bootstrap{
		viewport:  viewport,
		panel:     panel,
		scrolls:   scrolls,
		fetcher:   fetcher,
		loader:    loader,
		publisher: publisher,
		debounce:  DefaultDebounce,
		limit:     DefaultLimit,
		modules:   append([]string(nil), DefaultModules...),
		topic:     DefaultTopic,
		pool:      pool,
		ownsPool:  true,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}

	return b, nil
}

// State returns the current lifecycle stage.
func (b *Bootstrap) State() State {
	return State(b.state.Load())
}

// Run waits for the panel to come near the viewport, then loads and
// publishes the related pages. It returns ctx.Err() if ctx ends before the
// trigger fires. Once triggered, cancelling ctx no longer affects the load
// or the fetch.
func (b *Bootstrap) Run(ctx context.Context) error {
	if !b.started.CompareAndSwap(false, true) {
		return ErrAlreadyRun
	}

	events, unsubscribe := b.scrolls.Subscribe()

	// The panel may already be near, e.g. on a short page or a reload
	// that restored the scroll position.
	if b.isPanelNear() {
		return b.trigger(ctx, unsubscribe)
	}

	debounce := newDebouncer(b.debounce)
	defer debounce.stop()

	for {
		select {
		case <-ctx.Done():
			unsubscribe()
			b.finish()
			return ctx.Err()
		case _, ok := <-events:
			if !ok {
				// Stream ended; a pending check may still fire.
				events = nil
				continue
			}
			debounce.touch()
		case <-debounce.C():
			if b.isPanelNear() {
				return b.trigger(ctx, unsubscribe)
			}
		}
	}
}

func (b *Bootstrap) isPanelNear() bool {
	vp := b.viewport.Rect()
	return IsElementCloseToViewport(b.panel.Rect(), vp, 2*vp.Height())
}

// trigger detaches from the scroll source and runs the load and the fetch
// concurrently, publishing the pages once both are done.
func (b *Bootstrap) trigger(ctx context.Context, unsubscribe func()) error {
	unsubscribe()
	b.state.Store(int32(Triggered))
	defer b.finish()

	ctx = context.WithoutCancel(ctx)
	b.logger.Debug("related pages panel near viewport", "limit", b.limit)

	var (
		wg      sync.WaitGroup
		loadErr error
		pages   []core.PageSummary
	)
	wg.Add(2)
	b.submit(func() {
		defer wg.Done()
		loadErr = b.loader.Load(ctx, b.modules...)
	})
	b.submit(func() {
		defer wg.Done()
		pages = b.fetcher.GetForCurrentPage(ctx, b.limit)
	})
	wg.Wait()

	if len(pages) == 0 {
		b.logger.Debug("no related pages")
		if b.onEmpty != nil {
			b.onEmpty()
		}
	}
	if loadErr != nil {
		b.logger.Error("failed to load related pages modules", "modules", b.modules, "err", loadErr)
		return fmt.Errorf("%w: %w", ErrModuleLoadFailed, loadErr)
	}
	if len(pages) == 0 {
		return nil
	}

	b.publisher.Publish(b.topic, pages)
	return nil
}

// finish marks the bootstrap done and releases the pool it created.
func (b *Bootstrap) finish() {
	b.state.Store(int32(Done))
	b.Release()
}

// submit runs task on the pool, or inline when the pool refuses it.
func (b *Bootstrap) submit(task func()) {
	if err := b.pool.Submit(task); err != nil {
		b.logger.Warn("worker pool rejected task, running inline", "err", err)
		task()
	}
}

// Release releases the worker pool if the bootstrap created it.
// Run releases it on completion; calling Release is only needed for a
// bootstrap that is never run. Release may be called more than once.
func (b *Bootstrap) Release() {
	if b.ownsPool && b.pool != nil && b.released.CompareAndSwap(false, true) {
		b.pool.Release()
	}
}
