// Package nav defines the single-page section navigation used by the menu
// dialog.
package nav

// Section is one entry in the full-screen navigation menu. Href is an anchor
// into the scrolling page.
type Section struct {
	Href  string
	Label string
}

// Sections is the primary navigation definition, in page order.
var Sections = []Section{
	{Href: "#invitation", Label: "INVITATION"},
	{Href: "#schedule", Label: "SCHEDULE"},
	{Href: "#faq", Label: "FAQ"},
	{Href: "#gallery", Label: "GALLERY"},
}
