package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/vakwetoweya/internal/logging"
)

// Event reports a change of session presence.
type Event struct {
	Authenticated bool
	// External is true when the change was found by polling rather than
	// reported by a write through this process.
	External bool
}

// Watcher tracks whether a session token is present.
//
// Writes made through a store wrapped with WithNotify(store, w.Notify) are
// published immediately. Polling every interval picks up changes made behind
// the client's back (another process, a wiped file). The poll is a
// convenience, not a correctness mechanism: nothing is coordinated with
// in-flight requests.
type Watcher struct {
	store    Store
	interval time.Duration
	log      logging.Logger

	mu     sync.Mutex
	known  bool
	last   bool
	seq    uint64 // bumped by every Notify
	closed bool
	subs   []chan Event
}

func NewWatcher(store Store, interval time.Duration, log logging.Logger) *Watcher {
	return &Watcher{store: store, interval: interval, log: log}
}

// Subscribe returns a channel receiving every presence change. The channel is
// closed when Run returns. Slow subscribers miss events rather than block.
func (w *Watcher) Subscribe() <-chan Event {
	ch := make(chan Event, 8)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		close(ch)
		return ch
	}
	w.subs = append(w.subs, ch)
	return ch
}

// Notify records a presence change made by this process.
func (w *Watcher) Notify(authenticated bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seq++
	w.update(authenticated, false)
}

// Authenticated reports the last known presence.
func (w *Watcher) Authenticated() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// Check reads the store once and publishes a change if there is one. A read
// that overlaps a Notify is stale and dropped.
func (w *Watcher) Check(ctx context.Context) error {
	w.mu.Lock()
	seq := w.seq
	w.mu.Unlock()

	token, err := w.store.Get(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seq != seq {
		return nil
	}
	w.update(token != "", true)
	return nil
}

// Run polls the store every interval until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	defer w.close()

	if err := w.Check(ctx); err != nil {
		w.log.Warn(ctx, "session check failed", "error", err)
	}
	if w.interval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.Check(ctx); err != nil {
				w.log.Warn(ctx, "session check failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// update must be called with w.mu held.
func (w *Watcher) update(authenticated, external bool) {
	if w.known && w.last == authenticated {
		return
	}
	first := !w.known
	w.known, w.last = true, authenticated

	// The initial poll only establishes a baseline.
	if first && external {
		return
	}
	if w.closed {
		return
	}

	ev := Event{Authenticated: authenticated, External: external}
	for _, ch := range w.subs {
		select {
		case ch <- ev:
		default:
			w.log.Warn(context.Background(), "session event dropped", "authenticated", authenticated)
		}
	}
}

func (w *Watcher) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	for _, ch := range w.subs {
		close(ch)
	}
	w.subs = nil
}
