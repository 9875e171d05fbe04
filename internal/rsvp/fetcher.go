package rsvp

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// defaultSettleDelay is how long a post-submit refresh waits for the backend
// to settle before re-reading the guest list.
const defaultSettleDelay = 1200 * time.Millisecond

// Fetcher owns the loading/error/data state for remote guest-list lookups.
//
// Every fetch is tagged with a generation; a completion whose generation is no
// longer current is dropped, so a slow response for an old invite id can never
// overwrite the state of a newer one, and an invalidated fetcher ignores
// whatever is still in flight.
type Fetcher struct {
	source GuestSource
	logger *zap.Logger
	settle time.Duration

	mu      sync.Mutex
	gen     uint64
	id      string
	loading bool
	lastErr string
	record  *Record
	ok      bool
}

// State is a point-in-time snapshot of the fetcher.
type State struct {
	InviteID string
	Loading  bool
	Err      string
	// Record is the most recently loaded guest list. It may be stale when
	// Err is set: showing old data beats blanking the page.
	Record *Record
	// OK reports whether Record came from a successful fetch for InviteID.
	OK bool
}

// NewFetcher builds a fetcher over the given source.
func NewFetcher(source GuestSource, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{source: source, logger: logger, settle: defaultSettleDelay}
}

// SetSettleDelay overrides the post-submit refresh delay (tests).
func (f *Fetcher) SetSettleDelay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settle = d
}

// Fetch loads the guest list for inviteID. It blocks until the lookup
// completes, but only the most recently started fetch may publish its result.
func (f *Fetcher) Fetch(ctx context.Context, inviteID string) {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	if inviteID != f.id {
		// New invite: the old record must not leak into the new view.
		f.record = nil
		f.ok = false
	}
	f.id = inviteID
	f.loading = true
	f.lastErr = ""
	f.mu.Unlock()

	rec, err := f.source.Lookup(ctx, inviteID)
	f.complete(gen, inviteID, rec, err)
}

// Refresh repeats the fetch for the current invite id, if any.
func (f *Fetcher) Refresh(ctx context.Context) {
	f.mu.Lock()
	id := f.id
	f.mu.Unlock()
	if id == "" {
		return
	}
	f.Fetch(ctx, id)
}

// RefreshAfter schedules a Refresh once the settle delay elapses. Used after
// a successful submit so the backend has time to apply the write. The refresh
// is skipped if ctx is cancelled or the fetcher is superseded meanwhile.
func (f *Fetcher) RefreshAfter(ctx context.Context) {
	f.mu.Lock()
	delay := f.settle
	f.mu.Unlock()
	go func() {
		select {
		case <-ctx.Done():
		case <-time.After(delay):
			f.Refresh(ctx)
		}
	}()
}

// Invalidate discards any in-flight fetch; its completion becomes a no-op.
func (f *Fetcher) Invalidate() {
	f.mu.Lock()
	f.gen++
	f.loading = false
	f.mu.Unlock()
}

// State snapshots the current fetcher state.
func (f *Fetcher) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{
		InviteID: f.id,
		Loading:  f.loading,
		Err:      f.lastErr,
		Record:   f.record,
		OK:       f.ok,
	}
}

func (f *Fetcher) complete(gen uint64, inviteID string, rec Record, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		f.logger.Debug("guest list fetch superseded", zap.String("invite_id", inviteID))
		return
	}
	f.loading = false
	if err != nil {
		// Keep the previous record: stale-but-available beats blank.
		f.lastErr = "The guest list could not be loaded. Please try again."
		f.ok = false
		f.logger.Warn("guest list fetch failed", zap.String("invite_id", inviteID), zap.Error(err))
		return
	}
	f.lastErr = ""
	f.record = &rec
	f.ok = true
}
