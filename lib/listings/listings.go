// Package listings builds the restaurant catalog from listing events and
// filters it for display.
package listings

import (
	"sort"

	"github.com/nbd-wtf/go-nostr"

	"github.com/HORNET-Storage/nostreats/lib/geo"
	"github.com/HORNET-Storage/nostreats/lib/handlers/nostr/kind30023"
	"github.com/HORNET-Storage/nostreats/lib/stores"
	"github.com/HORNET-Storage/nostreats/lib/types"

	lib_nostr "github.com/HORNET-Storage/nostreats/lib/handlers/nostr"
)

// Ref returns the addressable reference reviews use to point at l
func Ref(l types.Listing) string {
	return lib_nostr.ListingRef(l.PubKey, l.ID)
}

// FromEvents parses listing events, keeping only the current version of each
// listing (same owner and d tag) as decided by stores.Supersedes. The result
// is sorted newest first.
func FromEvents(events []*nostr.Event) []types.Listing {
	newest := make(map[string]types.Listing)
	for _, event := range events {
		listing := kind30023.ParseListing(event)
		if listing == nil {
			continue
		}

		ref := Ref(*listing)
		current, ok := newest[ref]
		if !ok || newer(*listing, current) {
			newest[ref] = *listing
		}
	}

	out := make([]types.Listing, 0, len(newest))
	for _, listing := range newest {
		out = append(out, listing)
	}
	SortNewestFirst(out)
	return out
}

func newer(a, b types.Listing) bool {
	return stores.Supersedes(a.Event, b.Event)
}

// SortNewestFirst orders listings by CreatedAt descending, then by reference
func SortNewestFirst(ls []types.Listing) {
	sort.Slice(ls, func(i, j int) bool {
		if ls[i].CreatedAt != ls[j].CreatedAt {
			return ls[i].CreatedAt > ls[j].CreatedAt
		}
		return Ref(ls[i]) < Ref(ls[j])
	})
}

// Open keeps only listings whose status is open
func Open(ls []types.Listing) []types.Listing {
	return filter(ls, func(l types.Listing) bool {
		return l.Status == types.StatusOpen
	})
}

// Nearby keeps listings at most radiusKm from (lat, lng)
func Nearby(ls []types.Listing, lat, lng, radiusKm float64) []types.Listing {
	return filter(ls, func(l types.Listing) bool {
		return geo.Within(lat, lng, l.Lat, l.Lng, radiusKm)
	})
}

func filter(ls []types.Listing, keep func(types.Listing) bool) []types.Listing {
	out := make([]types.Listing, 0, len(ls))
	for _, l := range ls {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}
