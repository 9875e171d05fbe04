package rsvp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"mikadarshika.com/wedding-web/internal/invite"
)

func TestClientNotConfigured(t *testing.T) {
	c := NewClient("", "")
	if c.Configured() {
		t.Fatal("empty base URL must not be configured")
	}
	if _, err := c.Lookup(context.Background(), "abc"); err != ErrNotConfigured {
		t.Fatalf("Lookup err = %v, want ErrNotConfigured", err)
	}
	if err := c.Persist(context.Background(), Submission{}); err != ErrNotConfigured {
		t.Fatalf("Persist err = %v, want ErrNotConfigured", err)
	}
}

func TestClientLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		if got := r.URL.Query().Get("inviteId"); got != "smith-family" {
			t.Errorf("inviteId = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sekrit" {
			t.Errorf("Authorization = %q", got)
		}
		// heterogeneous confirmed representations on purpose
		_, _ = io.WriteString(w, `{"title":"The Smiths","people":[
			{"name":"Alice","confirmed":1},
			{"name":"Bob","confirmed":"0"},
			{"name":"Carol","confirmed":null},
			{"name":"Dave","confirmed":true}
		]}`)
	}))
	defer srv.Close()

	rec, err := NewClient(srv.URL, "sekrit").Lookup(context.Background(), "smith-family")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if rec.Title != "The Smiths" {
		t.Errorf("Title = %q", rec.Title)
	}
	want := []invite.Confirmation{invite.Attending, invite.NotAttending, invite.Unknown, invite.Attending}
	if len(rec.People) != len(want) {
		t.Fatalf("People = %d, want %d", len(rec.People), len(want))
	}
	for i, p := range rec.People {
		if p.Status != want[i] {
			t.Errorf("People[%d] (%s) = %v, want %v", i, p.Name, p.Status, want[i])
		}
	}
}

func TestClientLookupErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-ok status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "<html>not json</html>")
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			if _, err := NewClient(srv.URL, "").Lookup(context.Background(), "x"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestClientPersist(t *testing.T) {
	var got submitPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	sub := Submission{
		InviteID: "smith-family",
		Title:    "The Smiths",
		People: []Choice{
			{Name: "Alice", Attending: true},
			{Name: "Bob", Attending: false},
		},
	}
	if err := NewClient(srv.URL, "").Persist(context.Background(), sub); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if got.InviteID != "smith-family" || got.Title != "The Smiths" {
		t.Errorf("payload = %+v", got)
	}
	if len(got.People) != 2 || got.People[0].Confirmed != 1 || got.People[1].Confirmed != 0 {
		t.Errorf("people payload = %+v", got.People)
	}
}

func TestClientPersistStrictPolicy(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-ok status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"closed"}`, http.StatusConflict)
		}},
		{"unparseable body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "ok")
		}},
		{"error field", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"error":"invite not found"}`)
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			if err := NewClient(srv.URL, "").Persist(context.Background(), Submission{InviteID: "x"}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
