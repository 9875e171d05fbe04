// Package seo builds page metadata and schema.org payloads.
package seo

// OpenGraph holds the og: meta fields.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
}

// Meta is the per-page metadata rendered into the layout head.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
}
