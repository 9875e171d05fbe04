package main

import (
	"context"
	"net/http"
	"strings"

	"mikadarshika.com/wedding-web/internal/invite"
	"mikadarshika.com/wedding-web/internal/rsvp"
	"mikadarshika.com/wedding-web/internal/store"
)

// RSVPData is the view model for the confirmation dialog fragment.
type RSVPData struct {
	InviteID string
	Title    string
	People   []RSVPRow
	// Notice is a non-blocking message (e.g. the guest list came from a
	// stale cache); the form stays usable.
	Notice string
	// Error is a blocking submit failure; selections are preserved so the
	// user can retry.
	Error string
	CSRF  string
}

// RSVPRow is one guest line: the displayed status plus the editable choice.
type RSVPRow struct {
	Name        string
	StatusLabel string
	Selected    bool
}

// SentData is the view model for the post-submit success banner.
type SentData struct {
	InviteID string
	Title    string
}

// buildRSVPView assembles the reconciled view for an invite, consulting the
// remote endpoint when configured and the local store otherwise. It returns
// the view, the display title, and a non-blocking notice.
func buildRSVPView(ctx context.Context, id, resolvedTitle string) (rsvp.View, string, string) {
	bundled, _ := dataset.Lookup(id)
	bundled.ID = id
	if bundled.Title == "" {
		bundled.Title = resolvedTitle
	}

	if rsvpAPI.Configured() {
		fetcher.Fetch(ctx, id)
		st := fetcher.State()
		if st.InviteID != id {
			// A concurrent request for another invite superseded this
			// fetch; its record belongs to that invite and must not
			// render here.
			return rsvp.Reconcile(bundled, nil, false), bundled.Title, ""
		}
		title := bundled.Title
		if st.Record != nil && st.Record.Title != "" {
			title = st.Record.Title
		}
		return rsvp.Reconcile(bundled, st.Record, st.OK), title, st.Err
	}

	confirmed, err := store.Confirmations(ctx, kv, id)
	if err != nil {
		logger.Warn("reading local confirmations failed")
		confirmed = nil
	}
	withLocal := rsvp.ApplyLocal(bundled, confirmed)
	return rsvp.Reconcile(withLocal, nil, false), bundled.Title, ""
}

// newRSVPForm builds an open form for the invite, seeded from the reconciled
// view.
func newRSVPForm(id, title string, view rsvp.View) *rsvp.Form {
	form := rsvp.NewForm(id, title, persister)
	form.Loading = func() bool {
		st := fetcher.State()
		return rsvpAPI.Configured() && st.InviteID == id && st.Loading
	}
	form.Open(view)
	return form
}

// rsvpRows renders the per-guest rows from an open form.
func rsvpRows(form *rsvp.Form, view rsvp.View) []RSVPRow {
	selection := form.Selection()
	people := form.People()
	rows := make([]RSVPRow, 0, len(people))
	for _, p := range people {
		rows = append(rows, RSVPRow{
			Name:        p.Name,
			StatusLabel: view.StatusFor(p.Name).String(),
			Selected:    selection[p.Name],
		})
	}
	return rows
}

// resolveForRSVP resolves an invite id for the dialog endpoints.
func resolveForRSVP(r *http.Request) (string, string) {
	id, title := invite.Resolve(r.URL.Query(), dataset, rsvpAPI.Configured())
	if id != "" {
		return id, title
	}
	// POST carries the id in the form body
	posted := strings.TrimSpace(r.PostFormValue(invite.QueryParam))
	if posted == "" {
		return "", ""
	}
	if inv, ok := dataset.Lookup(posted); ok {
		return posted, inv.Title
	}
	if rsvpAPI.Configured() {
		return posted, ""
	}
	return "", ""
}
