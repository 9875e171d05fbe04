package invite

import (
	"net/url"
	"strings"
)

// QueryParam is the URL query parameter carrying the invite id.
const QueryParam = "invite"

// Resolve extracts the invite id from the page query and resolves it to a
// display title. A missing or unknown id is not an error: it yields zero
// values and the caller hides every RSVP affordance.
//
// When a remote source is configured the id is passed through untouched (the
// remote endpoint is authoritative for the title); otherwise the id must be
// present in the bundled dataset.
func Resolve(query url.Values, ds *Dataset, remoteConfigured bool) (id, title string) {
	id = strings.TrimSpace(query.Get(QueryParam))
	if id == "" {
		return "", ""
	}
	if inv, ok := ds.Lookup(id); ok {
		return id, inv.Title
	}
	if remoteConfigured {
		return id, ""
	}
	return "", ""
}
