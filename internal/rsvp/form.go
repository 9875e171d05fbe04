package rsvp

import (
	"context"
	"errors"
	"sync"
	"time"

	"mikadarshika.com/wedding-web/internal/invite"
)

// FormState enumerates the confirmation dialog lifecycle.
type FormState int

const (
	FormClosed FormState = iota
	FormOpen
	FormSubmitting
	FormSent
	FormFailed
)

// sentBannerTTL is how long the success banner stays up before the dialog
// returns to its closed presentation.
const sentBannerTTL = 2 * time.Second

// ErrGuestListLoading rejects a confirm attempt while the guest list is still
// being fetched; submitting against a stale list is worse than waiting.
var ErrGuestListLoading = errors.New("rsvp: guest list still loading")

// ErrFormNotOpen rejects operations that require an open dialog.
var ErrFormNotOpen = errors.New("rsvp: form is not open")

// Form drives the confirmation dialog: it seeds per-guest selections from the
// reconciled view, collects edits, and runs the submit protocol.
//
// A failed submit preserves the selection exactly as entered and performs no
// confirmation mutation, so retrying simply resubmits the same choices.
type Form struct {
	persister Persister

	// Loading, when set, guards Confirm against submitting while a remote
	// fetch is in flight.
	Loading func() bool

	// afterFunc schedules the sent-banner reset; replaced in tests.
	afterFunc func(d time.Duration, fn func()) *time.Timer

	mu           sync.Mutex
	state        FormState
	inviteID     string
	title        string
	people       []invite.Person
	selection    map[string]bool
	confirmation map[string]invite.Confirmation
	lastErr      string
	resetGen     uint64
}

// NewForm builds a closed form for one invite.
func NewForm(inviteID, title string, persister Persister) *Form {
	return &Form{
		persister: persister,
		afterFunc: time.AfterFunc,
		state:     FormClosed,
		inviteID:  inviteID,
		title:     title,
	}
}

// Open seeds the selection from the reconciled view and opens the dialog.
// Everyone defaults to their last confirmation; people who have never
// responded default to attending, so first-time responders opt in by
// unticking rather than ticking.
func (f *Form) Open(view View) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.people = clonePeople(view.People)
	f.selection = make(map[string]bool, len(f.people))
	f.confirmation = make(map[string]invite.Confirmation, len(f.people))
	for _, p := range f.people {
		status := view.StatusFor(p.Name)
		f.confirmation[p.Name] = status
		f.selection[p.Name] = status != invite.NotAttending
	}
	f.lastErr = ""
	f.state = FormOpen
}

// Close discards the in-progress selection.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selection = nil
	f.lastErr = ""
	f.state = FormClosed
}

// SetChoice records a user edit for one person. Unknown names and closed
// forms are ignored.
func (f *Form) SetChoice(name string, attending bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FormOpen {
		return
	}
	if _, ok := f.selection[name]; ok {
		f.selection[name] = attending
	}
}

// Confirm runs the submit protocol. On success the confirmation map is
// updated to match the selection and the sent banner auto-resets after a
// fixed interval. On failure the dialog stays open with the selection intact.
func (f *Form) Confirm(ctx context.Context) error {
	f.mu.Lock()
	if f.state != FormOpen {
		f.mu.Unlock()
		return ErrFormNotOpen
	}
	if f.Loading != nil && f.Loading() {
		f.mu.Unlock()
		return ErrGuestListLoading
	}
	f.state = FormSubmitting
	sub := Submission{InviteID: f.inviteID, Title: f.title}
	for _, p := range f.people {
		sub.People = append(sub.People, Choice{Name: p.Name, Attending: f.selection[p.Name]})
	}
	f.mu.Unlock()

	err := f.persister.Persist(ctx, sub)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		// Back to Open: the user retries without losing anything.
		f.state = FormOpen
		f.lastErr = "Something went wrong sending your RSVP. Please try again."
		return err
	}
	for _, ch := range sub.People {
		f.confirmation[ch.Name] = invite.Normalize(ch.Attending)
	}
	f.lastErr = ""
	f.state = FormSent
	f.resetGen++
	gen := f.resetGen
	f.afterFunc(sentBannerTTL, func() { f.expireBanner(gen) })
	return nil
}

// State reports the current dialog state.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastError returns the user-facing message from the most recent failed
// submit, if any.
func (f *Form) LastError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Selection returns a copy of the in-progress choices.
func (f *Form) Selection() map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]bool, len(f.selection))
	for k, v := range f.selection {
		out[k] = v
	}
	return out
}

// Confirmation returns a copy of the committed per-person state.
func (f *Form) Confirmation() map[string]invite.Confirmation {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]invite.Confirmation, len(f.confirmation))
	for k, v := range f.confirmation {
		out[k] = v
	}
	return out
}

// People returns the reconciled people backing the open dialog, in render
// order.
func (f *Form) People() []invite.Person {
	f.mu.Lock()
	defer f.mu.Unlock()
	return clonePeople(f.people)
}

func (f *Form) expireBanner(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	// A confirm that fired after this timer was armed owns the banner now.
	if gen != f.resetGen || f.state != FormSent {
		return
	}
	f.selection = nil
	f.state = FormClosed
}
