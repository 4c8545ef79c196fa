package listings

import (
	"testing"

	"github.com/nbd-wtf/go-nostr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HORNET-Storage/nostreats/lib/types"
)

func listingEvent(id, owner, d, name string, createdAt int64, lat, lng string, extra ...nostr.Tag) *nostr.Event {
	tags := nostr.Tags{{"d", d}, {"name", name}, {"lat", lat}, {"lng", lng}}
	return &nostr.Event{
		ID:        id,
		PubKey:    owner,
		Kind:      types.KindListing,
		CreatedAt: nostr.Timestamp(createdAt),
		Tags:      append(tags, extra...),
	}
}

func TestFromEvents_KeepsNewestVersion(t *testing.T) {
	events := []*nostr.Event{
		listingEvent("e1", "owner", "tacos", "Old Name", 100, "40.0", "-74.0"),
		listingEvent("e2", "owner", "tacos", "New Name", 200, "40.0", "-74.0"),
		listingEvent("e3", "other", "tacos", "Other Tacos", 150, "41.0", "-74.0"),
		listingEvent("e4", "owner", "broken", "Broken", 300, "x", "-74.0"),
	}

	ls := FromEvents(events)
	require.Len(t, ls, 2)
	assert.Equal(t, "New Name", ls[0].Name)
	assert.Equal(t, "Other Tacos", ls[1].Name)
	assert.Equal(t, "30023:owner:tacos", Ref(ls[0]))
}

func TestFromEvents_TieGoesToSmallerEventID(t *testing.T) {
	ls := FromEvents([]*nostr.Event{
		listingEvent("bb", "owner", "tacos", "B", 100, "0", "0"),
		listingEvent("aa", "owner", "tacos", "A", 100, "0", "0"),
	})
	require.Len(t, ls, 1)
	assert.Equal(t, "A", ls[0].Name)
}

func TestOpen(t *testing.T) {
	ls := FromEvents([]*nostr.Event{
		listingEvent("e1", "o", "a", "Open", 100, "0", "0"),
		listingEvent("e2", "o", "b", "Closed", 100, "0", "0", nostr.Tag{"status", "closed"}),
		listingEvent("e3", "o", "c", "Inactive", 100, "0", "0", nostr.Tag{"status", "inactive"}),
		listingEvent("e4", "o", "d", "Demolished", 100, "0", "0", nostr.Tag{"status", "demolished"}),
	})
	require.Len(t, ls, 4)

	open := Open(ls)
	require.Len(t, open, 1)
	assert.Equal(t, "Open", open[0].Name)
}

func TestSearch(t *testing.T) {
	ls := FromEvents([]*nostr.Event{
		listingEvent("e1", "o", "a", "Taco Stand", 100, "0", "0"),
		listingEvent("e2", "o", "b", "Noodle Bar", 100, "0", "0", nostr.Tag{"address", "1 TACO Lane"}),
		listingEvent("e3", "o", "c", "Bakery", 100, "0", "0", nostr.Tag{"about", "no tacos here"}),
		listingEvent("e4", "o", "d", "Pizza", 100, "0", "0"),
	})

	assert.Len(t, Search(ls, "taco"), 3)
	assert.Len(t, Search(ls, "PIZZA"), 1)
	assert.Len(t, Search(ls, ""), 4)
}

func TestNearby(t *testing.T) {
	ls := FromEvents([]*nostr.Event{
		listingEvent("e1", "o", "nyc", "NYC", 100, "40.7128", "-74.0060"),
		listingEvent("e2", "o", "hoboken", "Hoboken", 100, "40.7440", "-74.0324"),
		listingEvent("e3", "o", "london", "London", 100, "51.5074", "-0.1278"),
	})

	near := Nearby(ls, 40.7128, -74.0060, 10)
	require.Len(t, near, 2)
	for _, l := range near {
		assert.NotEqual(t, "London", l.Name)
	}
	assert.Len(t, Nearby(ls, 40.7128, -74.0060, 0), 1)
}
