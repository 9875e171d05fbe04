package rsvp

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// stubSource serializes lookups through per-invite gates so tests can decide
// completion order.
type stubSource struct {
	mu      sync.Mutex
	records map[string]Record
	errs    map[string]error
	gates   map[string]chan struct{}
	entered map[string]chan struct{}
}

func newStubSource() *stubSource {
	return &stubSource{
		records: map[string]Record{},
		errs:    map[string]error{},
		gates:   map[string]chan struct{}{},
		entered: map[string]chan struct{}{},
	}
}

func (s *stubSource) set(id string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = rec
}

func (s *stubSource) fail(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[id] = err
}

// gate makes lookups for id block until release is called. The entered
// channel closes when a lookup for id reaches the gate, so callers can order
// concurrent fetches without sleeping.
func (s *stubSource) gate(id string) (entered <-chan struct{}, release func()) {
	enter := make(chan struct{})
	ch := make(chan struct{})
	s.mu.Lock()
	s.gates[id] = ch
	s.entered[id] = enter
	s.mu.Unlock()
	return enter, func() { close(ch) }
}

func (s *stubSource) Lookup(_ context.Context, id string) (Record, error) {
	s.mu.Lock()
	gate := s.gates[id]
	enter := s.entered[id]
	delete(s.entered, id)
	s.mu.Unlock()
	if enter != nil {
		close(enter)
	}
	if gate != nil {
		<-gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.errs[id]; err != nil {
		return Record{}, err
	}
	return s.records[id], nil
}

func TestFetcherSuccess(t *testing.T) {
	src := newStubSource()
	src.set("abc", Record{Title: "The Smiths"})
	f := NewFetcher(src, nil)

	f.Fetch(context.Background(), "abc")

	st := f.State()
	if st.Loading || st.Err != "" || !st.OK {
		t.Fatalf("state = %+v", st)
	}
	if st.Record == nil || st.Record.Title != "The Smiths" {
		t.Fatalf("record = %+v", st.Record)
	}
}

func TestFetcherFailureKeepsStaleRecord(t *testing.T) {
	src := newStubSource()
	src.set("abc", Record{Title: "The Smiths"})
	f := NewFetcher(src, nil)
	f.Fetch(context.Background(), "abc")

	src.fail("abc", errors.New("boom"))
	f.Refresh(context.Background())

	st := f.State()
	if st.Err == "" {
		t.Fatal("expected error message")
	}
	if st.OK {
		t.Fatal("OK must drop after a failed fetch")
	}
	if st.Record == nil || st.Record.Title != "The Smiths" {
		t.Fatalf("stale record must survive a failed refresh, got %+v", st.Record)
	}
}

// Two fetches for different invites in quick succession, where the first
// resolves after the second: the final state must match the second invite.
func TestFetcherSupersededFetchIsDropped(t *testing.T) {
	src := newStubSource()
	src.set("first", Record{Title: "First"})
	src.set("second", Record{Title: "Second"})
	entered, releaseFirst := src.gate("first")
	f := NewFetcher(src, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.Fetch(context.Background(), "first")
	}()

	// the second fetch starts only once the first is in flight, and finishes
	<-entered
	f.Fetch(context.Background(), "second")

	releaseFirst()
	wg.Wait()

	st := f.State()
	if st.InviteID != "second" {
		t.Fatalf("InviteID = %q, want second", st.InviteID)
	}
	if st.Record == nil || st.Record.Title != "Second" {
		t.Fatalf("record = %+v, want Second", st.Record)
	}
	if !st.OK || st.Loading {
		t.Fatalf("state = %+v", st)
	}
}

func TestFetcherNewInviteClearsOldRecord(t *testing.T) {
	src := newStubSource()
	src.set("abc", Record{Title: "The Smiths"})
	src.fail("xyz", errors.New("boom"))
	f := NewFetcher(src, nil)

	f.Fetch(context.Background(), "abc")
	f.Fetch(context.Background(), "xyz")

	st := f.State()
	if st.Record != nil {
		t.Fatalf("old invite's record leaked into new view: %+v", st.Record)
	}
	if st.OK {
		t.Fatal("OK must be false after failed fetch for new invite")
	}
}

func TestFetcherInvalidate(t *testing.T) {
	src := newStubSource()
	src.set("abc", Record{Title: "The Smiths"})
	entered, release := src.gate("abc")
	f := NewFetcher(src, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.Fetch(context.Background(), "abc")
	}()

	// wait until the fetch is in flight, then tear down
	<-entered
	f.Invalidate()
	release()
	wg.Wait()

	st := f.State()
	if st.Record != nil || st.OK || st.Loading {
		t.Fatalf("invalidated fetch must not publish, state = %+v", st)
	}
}

func TestFetcherRefreshWithoutFetchIsNoop(t *testing.T) {
	f := NewFetcher(newStubSource(), nil)
	f.Refresh(context.Background())
	if st := f.State(); st.InviteID != "" || st.Record != nil {
		t.Fatalf("state = %+v", st)
	}
}
