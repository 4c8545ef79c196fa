package memory

import (
	"fmt"
	"sort"

	"github.com/nbd-wtf/go-nostr"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/HORNET-Storage/nostreats/lib/stores"
)

// DefaultLimit caps queries that do not set their own limit
const DefaultLimit = 500

// MemoryStore keeps events for the lifetime of the process
type MemoryStore struct {
	events      *xsync.MapOf[string, *nostr.Event]
	replaceable map[int]struct{}
}

// NewMemoryStore creates an empty store. Events of the given addressable
// kinds replace each other per pubkey and d tag; all other events accumulate.
func NewMemoryStore(replaceableKinds ...int) *MemoryStore {
	replaceable := make(map[int]struct{}, len(replaceableKinds))
	for _, kind := range replaceableKinds {
		if stores.IsAddressable(kind) {
			replaceable[kind] = struct{}{}
		}
	}

	return &MemoryStore{
		events:      xsync.NewMapOf[string, *nostr.Event](),
		replaceable: replaceable,
	}
}

// StoreEvent saves the event. A replaceable event removes the versions it
// supersedes (same pubkey, kind and d tag) and is dropped if one of them
// supersedes it instead. See stores.Supersedes.
func (store *MemoryStore) StoreEvent(event *nostr.Event) error {
	if event == nil || event.ID == "" {
		return fmt.Errorf("event has no id")
	}

	if _, ok := store.replaceable[event.Kind]; ok {
		d := stores.DTag(event)
		superseded := false

		store.events.Range(func(id string, existing *nostr.Event) bool {
			if id == event.ID || existing.Kind != event.Kind || existing.PubKey != event.PubKey || stores.DTag(existing) != d {
				return true
			}
			if stores.Supersedes(existing, event) {
				superseded = true
				return false
			}
			store.events.Delete(id)
			return true
		})

		if superseded {
			return nil
		}
	}

	store.events.Store(event.ID, event)
	return nil
}

func (store *MemoryStore) DeleteEvent(eventID string) error {
	store.events.Delete(eventID)
	return nil
}

// QueryEvents returns matching events newest first, ties by ID
func (store *MemoryStore) QueryEvents(filter nostr.Filter) ([]*nostr.Event, error) {
	var events []*nostr.Event
	store.events.Range(func(_ string, event *nostr.Event) bool {
		if filter.Matches(event) {
			events = append(events, event)
		}
		return true
	})

	sort.Slice(events, func(i, j int) bool {
		if events[i].CreatedAt != events[j].CreatedAt {
			return events[i].CreatedAt > events[j].CreatedAt
		}
		return events[i].ID < events[j].ID
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(events) > limit {
		events = events[:limit]
	}

	return events, nil
}

// Count returns the number of stored events
func (store *MemoryStore) Count() int {
	return store.events.Size()
}
