package stores

import (
	"github.com/nbd-wtf/go-nostr"
)

// Store holds raw events for the query layer. Implementations return query
// results newest first.
type Store interface {
	QueryEvents(filter nostr.Filter) ([]*nostr.Event, error)
	StoreEvent(event *nostr.Event) error
	DeleteEvent(eventID string) error
}

// IsAddressable reports whether kind is replaced per pubkey and d tag
func IsAddressable(kind int) bool {
	return kind >= 30000 && kind < 40000
}

// DTag returns the d tag of an addressable event, or "" if it has none
func DTag(event *nostr.Event) string {
	for _, tag := range event.Tags {
		if len(tag) >= 2 && tag[0] == "d" {
			return tag[1]
		}
	}
	return ""
}

// Supersedes reports whether a replaces b as the current version of an
// addressable event: a later created_at wins, and on a tie the smaller ID.
func Supersedes(a, b *nostr.Event) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt > b.CreatedAt
	}
	return a.ID < b.ID
}
