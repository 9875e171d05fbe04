// Package content loads the site copy: hero, invitation, schedule, FAQ, and
// gallery. Copy lives in a YAML file with markdown bodies; a compiled-in
// fallback keeps the site rendering when the file is absent.
package content

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

const siteFile = "site.yaml"

// Site is the full set of guest-facing copy.
type Site struct {
	Couple   string
	Monogram string

	Hero       Hero
	Invitation Invitation
	Schedule   Section
	FAQ        []FAQItem
	Gallery    []string

	SEO SEO
}

// Hero is the landing section.
type Hero struct {
	DateLabel  string
	FirstName  string
	SecondName string
}

// Invitation is the personalized invitation section.
type Invitation struct {
	Hosts   string
	Line    string
	Couple  string
	Details []string
	RSVPBy  string
	Image   string
}

// Section is a titled block with a rendered markdown body.
type Section struct {
	Title string
	Body  template.HTML
	Image string
}

// FAQItem is one question with its rendered answer.
type FAQItem struct {
	Question string
	Answer   template.HTML
}

// SEO holds page metadata.
type SEO struct {
	Title       string
	Description string
}

type siteYAML struct {
	Couple   string `yaml:"couple"`
	Monogram string `yaml:"monogram"`
	Hero     struct {
		DateLabel  string `yaml:"date_label"`
		FirstName  string `yaml:"first_name"`
		SecondName string `yaml:"second_name"`
	} `yaml:"hero"`
	Invitation struct {
		Hosts   string   `yaml:"hosts"`
		Line    string   `yaml:"line"`
		Couple  string   `yaml:"couple"`
		Details []string `yaml:"details"`
		RSVPBy  string   `yaml:"rsvp_by"`
		Image   string   `yaml:"image"`
	} `yaml:"invitation"`
	Schedule struct {
		Title string `yaml:"title"`
		Body  string `yaml:"body"`
		Image string `yaml:"image"`
	} `yaml:"schedule"`
	FAQ []struct {
		Question string `yaml:"question"`
		Answer   string `yaml:"answer"`
	} `yaml:"faq"`
	Gallery []string `yaml:"gallery"`
	SEO     struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	} `yaml:"seo"`
}

// Load reads the site copy from dir. A missing file falls back to the
// compiled-in copy; a present-but-broken file is an error so a bad deploy
// fails loudly instead of silently shipping fallback copy.
func Load(dir string) (Site, error) {
	path := filepath.Join(dir, siteFile)
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Fallback(), nil
		}
		return Site{}, fmt.Errorf("read site content: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML site copy and renders its markdown bodies.
func Parse(b []byte) (Site, error) {
	var raw siteYAML
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return Site{}, fmt.Errorf("parse site content: %w", err)
	}
	site := Site{
		Couple:   strings.TrimSpace(raw.Couple),
		Monogram: strings.TrimSpace(raw.Monogram),
		Hero: Hero{
			DateLabel:  strings.TrimSpace(raw.Hero.DateLabel),
			FirstName:  strings.TrimSpace(raw.Hero.FirstName),
			SecondName: strings.TrimSpace(raw.Hero.SecondName),
		},
		Invitation: Invitation{
			Hosts:   strings.TrimSpace(raw.Invitation.Hosts),
			Line:    strings.TrimSpace(raw.Invitation.Line),
			Couple:  strings.TrimSpace(raw.Invitation.Couple),
			Details: raw.Invitation.Details,
			RSVPBy:  strings.TrimSpace(raw.Invitation.RSVPBy),
			Image:   strings.TrimSpace(raw.Invitation.Image),
		},
		Schedule: Section{
			Title: strings.TrimSpace(raw.Schedule.Title),
			Body:  renderMarkdown(raw.Schedule.Body),
			Image: strings.TrimSpace(raw.Schedule.Image),
		},
		Gallery: raw.Gallery,
		SEO: SEO{
			Title:       strings.TrimSpace(raw.SEO.Title),
			Description: strings.TrimSpace(raw.SEO.Description),
		},
	}
	for _, item := range raw.FAQ {
		q := strings.TrimSpace(item.Question)
		if q == "" {
			continue
		}
		site.FAQ = append(site.FAQ, FAQItem{
			Question: q,
			Answer:   renderMarkdown(item.Answer),
		})
	}
	return site, nil
}

var sanitizer = bluemonday.UGCPolicy()

// renderMarkdown converts markdown copy to sanitized HTML. Errors degrade to
// the escaped source text rather than failing the page.
func renderMarkdown(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}
