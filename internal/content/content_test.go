package content

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	src := []byte(`
couple: Mika & Darshika
monogram: M&D
hero:
  date_label: January 9th 2027
  first_name: Mika
  second_name: Darshika
invitation:
  hosts: Uday & Sashi Narayan and Sophia Sangsongkhram
  line: joyfully invite you to celebrate the wedding of
  couple: Mika & Darshika
  details:
    - "Wedding date: 9 January 2027"
  rsvp_by: 31 March 2026
schedule:
  title: Schedule
  body: |
    A schedule of the day's **events and rituals** will be posted later this year.
faq:
  - question: What is the dress code?
    answer: |
      Formal wear. We encourage *traditional cultural outfits*.
  - question: ""
    answer: dropped
gallery:
  - /assets/images/gallery/1.jpg
seo:
  title: Mika & Darshika
  description: Wedding site
`)
	site, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if site.Couple != "Mika & Darshika" || site.Hero.DateLabel != "January 9th 2027" {
		t.Errorf("site = %+v", site)
	}
	if !strings.Contains(string(site.Schedule.Body), "<strong>events and rituals</strong>") {
		t.Errorf("schedule body = %q", site.Schedule.Body)
	}
	if len(site.FAQ) != 1 {
		t.Fatalf("FAQ = %d entries, want 1 (blank question dropped)", len(site.FAQ))
	}
	if !strings.Contains(string(site.FAQ[0].Answer), "<em>traditional cultural outfits</em>") {
		t.Errorf("faq answer = %q", site.FAQ[0].Answer)
	}
}

func TestParseSanitizesMarkup(t *testing.T) {
	src := []byte("schedule:\n  title: Schedule\n  body: |\n    hello <script>alert(1)</script> world\n")
	site, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if strings.Contains(string(site.Schedule.Body), "<script>") {
		t.Fatalf("script tag survived sanitization: %q", site.Schedule.Body)
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("faq: [broken")); err == nil {
		t.Fatal("expected error")
	}
}

func TestFallbackIsComplete(t *testing.T) {
	site := Fallback()
	if site.Couple == "" || site.Hero.FirstName == "" || site.Invitation.RSVPBy == "" {
		t.Fatalf("fallback missing copy: %+v", site)
	}
	if len(site.FAQ) != 4 {
		t.Errorf("FAQ = %d entries", len(site.FAQ))
	}
	if len(site.Gallery) != 11 {
		t.Errorf("Gallery = %d images", len(site.Gallery))
	}
}

func TestLoadMissingDirFallsBack(t *testing.T) {
	site, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if site.Couple != "Mika & Darshika" {
		t.Fatalf("expected fallback copy, got %+v", site)
	}
}
