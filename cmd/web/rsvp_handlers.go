package main

import (
	"context"
	"errors"
	"net/http"

	mw "mikadarshika.com/wedding-web/internal/middleware"
	"mikadarshika.com/wedding-web/internal/rsvp"
)

// RSVPDialogHandler renders the confirmation dialog fragment for an invite.
// An unresolvable invite is a valid non-personalized state, not a failure,
// so it renders nothing actionable.
func RSVPDialogHandler(w http.ResponseWriter, r *http.Request) {
	id, title := resolveForRSVP(r)
	if id == "" {
		http.NotFound(w, r)
		return
	}

	view, displayTitle, notice := buildRSVPView(r.Context(), id, title)
	form := newRSVPForm(id, displayTitle, view)

	render(w, "rsvp_dialog", RSVPData{
		InviteID: id,
		Title:    displayTitle,
		People:   rsvpRows(form, view),
		Notice:   notice,
		CSRF:     mw.GetSession(r).CSRFToken,
	})
}

// RSVPSubmitHandler runs the submit protocol: it rebuilds the reconciled
// view, applies the posted choices, and persists them remotely or locally.
func RSVPSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	id, title := resolveForRSVP(r)
	if id == "" {
		http.NotFound(w, r)
		return
	}

	view, displayTitle, notice := buildRSVPView(r.Context(), id, title)
	form := newRSVPForm(id, displayTitle, view)

	attending := map[string]bool{}
	for _, name := range r.Form["attending"] {
		attending[name] = true
	}
	for _, p := range form.People() {
		form.SetChoice(p.Name, attending[p.Name])
	}

	if err := form.Confirm(r.Context()); err != nil {
		msg := form.LastError()
		status := http.StatusBadGateway
		if errors.Is(err, rsvp.ErrGuestListLoading) {
			msg = "The guest list is still loading. Please try again in a moment."
			status = http.StatusConflict
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		render(w, "rsvp_dialog", RSVPData{
			InviteID: id,
			Title:    displayTitle,
			People:   rsvpRows(form, view),
			Notice:   notice,
			Error:    msg,
			CSRF:     mw.GetSession(r).CSRFToken,
		})
		return
	}

	if rsvpAPI.Configured() {
		// Re-read once the backend settles; detached from the request
		// context, which ends as soon as this handler returns.
		fetcher.RefreshAfter(context.WithoutCancel(r.Context()))
	}

	render(w, "rsvp_sent", SentData{InviteID: id, Title: displayTitle})
}
