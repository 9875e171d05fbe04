// Package invite holds the guest data model shared by the site: invites,
// people, and the normalized attendance tri-state.
package invite

import "strconv"

// Confirmation is the normalized attendance state for a single person.
type Confirmation int

const (
	// Unknown means no response has been recorded yet.
	Unknown Confirmation = iota
	// Attending means the person confirmed they will attend.
	Attending
	// NotAttending means the person confirmed they will not attend.
	NotAttending
)

// String returns the guest-facing label for the state.
func (c Confirmation) String() string {
	switch c {
	case Attending:
		return "Attending"
	case NotAttending:
		return "Not attending"
	default:
		return "Not confirmed"
	}
}

// Known reports whether the person has responded at all.
func (c Confirmation) Known() bool { return c == Attending || c == NotAttending }

// Person is a single invitee. Name is the reconciliation key; there is no
// separate numeric id.
type Person struct {
	Name   string
	Email  string
	Status Confirmation
}

// Invite groups the people addressed by one invitation link.
type Invite struct {
	ID     string
	Title  string
	People []Person
}

// Normalize maps the loosely-typed "confirmed" representations found in
// backing stores (absent, null, booleans, 0/1 numbers, "0"/"1" strings) onto
// the tri-state. It is total: any value yields a defined result, and feeding
// a Confirmation back through returns it unchanged.
func Normalize(v any) Confirmation {
	switch val := v.(type) {
	case nil:
		return Unknown
	case Confirmation:
		return val
	case bool:
		return fromBool(val)
	case float64:
		return fromBool(val != 0)
	case float32:
		return fromBool(val != 0)
	case int:
		return fromBool(val != 0)
	case int64:
		return fromBool(val != 0)
	case string:
		if n, err := strconv.ParseFloat(val, 64); err == nil {
			return fromBool(n != 0)
		}
		// Unparseable strings coerce like booleans: empty is false,
		// anything else ("yes", "maybe") counts as true.
		return fromBool(val != "")
	default:
		return Unknown
	}
}

func fromBool(b bool) Confirmation {
	if b {
		return Attending
	}
	return NotAttending
}
