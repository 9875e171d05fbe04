package rsvp

import (
	"strings"

	"mikadarshika.com/wedding-web/internal/invite"
)

// View is the reconciled, authoritative-for-this-render guest list. It is a
// pure derivation: reconciling never mutates its inputs and never fails.
type View struct {
	People []invite.Person

	// authoritative holds the remote names when the remote fetch succeeded
	// with a usable guest list. Any name outside it renders as Unknown no
	// matter what cached state claims.
	authoritative map[string]struct{}
}

// Reconcile merges the bundled invite with the remote record.
//
// With no remote data the bundled people are used as-is; an empty bundle
// degrades to a single synthetic person named after the invite title. When
// remote data exists and every remote person carries a name, the remote list
// replaces the bundled one outright, membership and order included. Remote
// entries with blank names keep the bundled identities and only adopt the
// remote confirmation values positionally.
func Reconcile(bundled invite.Invite, remote *Record, remoteOK bool) View {
	people := clonePeople(bundled.People)
	if len(people) == 0 && strings.TrimSpace(bundled.Title) != "" {
		people = []invite.Person{{Name: strings.TrimSpace(bundled.Title), Status: invite.Unknown}}
	}

	remoteNamed := remote != nil && namedPeople(remote.People)
	if remote != nil {
		if remoteNamed {
			people = people[:0]
			for _, rp := range remote.People {
				people = append(people, invite.Person{Name: rp.Name, Status: rp.Status})
			}
		} else {
			// Degraded backend export: names are missing, so the bundled
			// identities stay and remote confirmations map by position.
			for i := range people {
				if i >= len(remote.People) {
					break
				}
				people[i].Status = remote.People[i].Status
			}
		}
	}

	v := View{People: people}
	if remoteOK && remoteNamed {
		v.authoritative = make(map[string]struct{}, len(remote.People))
		for _, rp := range remote.People {
			v.authoritative[rp.Name] = struct{}{}
		}
	}
	return v
}

// StatusFor resolves the displayed status for a person by name. When the
// remote fetch succeeded, a name absent from the remote list is Unknown
// regardless of any cached value; stale local data must never report a false
// "attending".
func (v View) StatusFor(name string) invite.Confirmation {
	if v.authoritative != nil {
		if _, ok := v.authoritative[name]; !ok {
			return invite.Unknown
		}
	}
	for _, p := range v.People {
		if p.Name == name {
			return p.Status
		}
	}
	return invite.Unknown
}

// ApplyLocal overlays locally persisted confirmations onto an invite. Only
// names present in the map are touched. Used in local-storage mode, where the
// store is the sole source of prior responses.
func ApplyLocal(inv invite.Invite, confirmed map[string]bool) invite.Invite {
	if len(confirmed) == 0 {
		return inv
	}
	out := inv
	out.People = clonePeople(inv.People)
	for i, p := range out.People {
		if attending, ok := confirmed[p.Name]; ok {
			out.People[i].Status = invite.Normalize(attending)
		}
	}
	return out
}

func namedPeople(people []RecordPerson) bool {
	if len(people) == 0 {
		return false
	}
	for _, p := range people {
		if strings.TrimSpace(p.Name) == "" {
			return false
		}
	}
	return true
}

func clonePeople(people []invite.Person) []invite.Person {
	if len(people) == 0 {
		return nil
	}
	out := make([]invite.Person, len(people))
	copy(out, people)
	return out
}
