package skips

import (
	"context"
	"errors"
	"sync"

	"github.com/skipwise/skipselect/internal/logging"
)

// State is the load lifecycle phase of one fetch attempt.
type State int

const (
	// StatePending means the response is not yet known.
	StatePending State = iota
	// StateReady means the batch was received and parsed.
	StateReady
	// StateFailed means the attempt failed; Message says why.
	StateFailed
)

// LoadResult is the tri-state outcome of one fetch attempt. Exactly one of
// Items (StateReady) or Message (StateFailed) is meaningful.
type LoadResult struct {
	State   State
	Items   []SkipOption
	Message string
}

// Fetcher performs the actual catalogue request. It must honour ctx
// cancellation and return the context's error when cancelled.
type Fetcher func(ctx context.Context) ([]SkipOption, error)

// Loader runs one cancellable fetch and delivers its result on a channel.
// It is the scoped request handle for a single view lifetime: Close is the
// scope exit, after which no result is ever delivered, so a consumer torn
// down mid-flight cannot be mutated by a late response.
//
// A Loader is single use. Recovery from failure is a fresh Loader, not a
// retry on this one.
type Loader struct {
	fetch Fetcher

	mu     sync.Mutex
	closed bool
	cancel context.CancelFunc
}

// NewLoader returns a Loader that will run fetch once.
func NewLoader(fetch Fetcher) *Loader {
	return &Loader{fetch: fetch}
}

// Start begins the fetch and returns a channel that yields at most one
// LoadResult and is then closed. The channel closes without a value when
// the loader was closed or the context cancelled before the response
// resolved; cancellation is logged for diagnostics but never surfaced as a
// failed result.
func (l *Loader) Start(ctx context.Context) <-chan LoadResult {
	results := make(chan LoadResult, 1)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		close(results)
		return results
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	go func() {
		defer close(results)

		items, err := l.fetch(fetchCtx)
		result := buildResult(items, err)

		log := logging.ComponentLogger(*logging.FromContext(ctx), "loader")
		if result == nil {
			log.Debug().Msg("fetch cancelled, result discarded")
			return
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.closed {
			log.Debug().Msg("loader closed before response, result discarded")
			return
		}
		results <- *result
	}()

	return results
}

// Close cancels any in-flight request and guarantees that no result is
// delivered afterwards. Safe to call more than once.
func (l *Loader) Close() {
	l.mu.Lock()
	l.closed = true
	cancel := l.cancel
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// buildResult maps a fetch outcome onto the tri-state result. Cancellation
// maps to nil: it is a silent no-op, not a failure.
func buildResult(items []SkipOption, err error) *LoadResult {
	if err == nil {
		return &LoadResult{State: StateReady, Items: items}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return &LoadResult{State: StateFailed, Message: err.Error()}
}
