package kind30023

import (
	"github.com/nbd-wtf/go-nostr"

	"github.com/HORNET-Storage/nostreats/lib/types"

	lib_nostr "github.com/HORNET-Storage/nostreats/lib/handlers/nostr"
)

// BuildKind30023Handler returns a handler that files well-formed listing
// (restaurant profile) events into the batch.
func BuildKind30023Handler() lib_nostr.KindHandler {
	return func(event *nostr.Event, batch *types.Batch) bool {
		listing := ParseListing(event)
		if listing == nil {
			return false
		}
		batch.Listings = append(batch.Listings, *listing)
		return true
	}
}
