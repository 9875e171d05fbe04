package main

import (
	"fmt"
	"html/template"
	"net/http"

	"mikadarshika.com/wedding-web/internal/content"
	"mikadarshika.com/wedding-web/internal/invite"
	mw "mikadarshika.com/wedding-web/internal/middleware"
	"mikadarshika.com/wedding-web/internal/nav"
	"mikadarshika.com/wedding-web/internal/seo"
)

// HomeData is the view model for the landing page.
type HomeData struct {
	Site     content.Site
	Greeting string
	InviteID string
	Nav      []nav.Section
	Meta     seo.Meta
	JSONLD   []template.JS
}

// HomeHandler renders the single scrolling page: hero, invitation, schedule,
// FAQ, and gallery, personalized when the visit carries a resolvable invite.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	sd := mw.GetSession(r)

	id, title := invite.Resolve(r.URL.Query(), dataset, rsvpAPI.Configured())
	if id == "" && sd.InviteID != "" {
		// The visitor navigated without the query parameter; fall back to
		// the invite remembered in the session.
		if inv, ok := dataset.Lookup(sd.InviteID); ok {
			id, title = sd.InviteID, inv.Title
		} else if rsvpAPI.Configured() {
			id = sd.InviteID
		}
	}
	sd.RememberInvite(id)

	if id != "" && title == "" && rsvpAPI.Configured() {
		// Page-level name lookup; tied to the request context, so it is
		// abandoned when the client goes away.
		if rec, err := rsvpAPI.Lookup(r.Context(), id); err == nil {
			title = rec.Title
		}
	}

	render(w, "base", BuildHomeData(id, title))
}

// BuildHomeData assembles the landing page view model.
func BuildHomeData(inviteID, title string) HomeData {
	greeting := "Hi there!"
	if title != "" {
		greeting = fmt.Sprintf("Hi %s!", title)
	}
	return HomeData{
		Site:     site,
		Greeting: greeting,
		InviteID: inviteID,
		Nav:      nav.Sections,
		Meta: seo.Meta{
			Title:       site.SEO.Title,
			Description: site.SEO.Description,
			OG: seo.OpenGraph{
				Title:       site.SEO.Title,
				Description: site.SEO.Description,
				Type:        "website",
			},
		},
		JSONLD: []template.JS{
			seo.JSON(seo.Event(site.Couple+" Wedding", "2027-01-09", "Auckland", "NZ", "")),
			seo.JSON(seo.WebSite(site.Couple, "")),
		},
	}
}
