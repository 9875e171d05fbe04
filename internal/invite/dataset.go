package invite

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Dataset is the bundled guest list: a read-only mapping from invite id to
// invite, loaded once at startup.
type Dataset struct {
	invites map[string]Invite
}

// rawInvite mirrors the on-disk JSON shape. Confirmed is decoded as `any`
// because historical exports carry booleans, numbers, and strings
// interchangeably; the union never leaves this file.
type rawInvite struct {
	Title  string      `json:"title"`
	People []rawPerson `json:"people"`
}

type rawPerson struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Confirmed any    `json:"confirmed,omitempty"`
}

// LoadDataset reads the bundled invite mapping from path.
func LoadDataset(path string) (*Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read invites: %w", err)
	}
	return ParseDataset(b)
}

// ParseDataset decodes a JSON invite mapping and normalizes every confirmed
// value into the tri-state.
func ParseDataset(b []byte) (*Dataset, error) {
	var raw map[string]rawInvite
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse invites: %w", err)
	}
	ds := &Dataset{invites: make(map[string]Invite, len(raw))}
	for id, ri := range raw {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		inv := Invite{ID: id, Title: strings.TrimSpace(ri.Title)}
		for _, rp := range ri.People {
			name := strings.TrimSpace(rp.Name)
			if name == "" {
				continue
			}
			inv.People = append(inv.People, Person{
				Name:   name,
				Email:  strings.TrimSpace(rp.Email),
				Status: Normalize(rp.Confirmed),
			})
		}
		ds.invites[id] = inv
	}
	return ds, nil
}

// Lookup returns the invite for id, if bundled.
func (d *Dataset) Lookup(id string) (Invite, bool) {
	if d == nil {
		return Invite{}, false
	}
	inv, ok := d.invites[id]
	return inv, ok
}

// IDs lists all bundled invite ids in stable order.
func (d *Dataset) IDs() []string {
	if d == nil {
		return nil
	}
	ids := make([]string, 0, len(d.invites))
	for id := range d.invites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len reports the number of bundled invites.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.invites)
}
