package seo

import (
	"encoding/json"
	"html/template"
)

// JSON marshals v for inclusion in a ld+json script block. It returns an
// empty value on error.
func JSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return template.JS(b)
}

// Event returns a schema.org Event payload for the wedding day.
func Event(name, startDate, locality, country, url string) map[string]any {
	m := map[string]any{
		"@context":            "https://schema.org",
		"@type":               "Event",
		"name":                name,
		"eventAttendanceMode": "https://schema.org/OfflineEventAttendanceMode",
	}
	if startDate != "" {
		m["startDate"] = startDate
	}
	if locality != "" || country != "" {
		m["location"] = map[string]any{
			"@type": "Place",
			"address": map[string]any{
				"@type":           "PostalAddress",
				"addressLocality": locality,
				"addressCountry":  country,
			},
		}
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}
