package nostr

import (
	"fmt"

	"github.com/nbd-wtf/go-nostr"

	"github.com/HORNET-Storage/nostreats/lib/types"
)

// GetTag returns the value of the first tag named exactly name.
// A tag without a value element reports false.
func GetTag(tags nostr.Tags, name string) (string, bool) {
	for _, tag := range tags {
		if len(tag) == 0 || tag[0] != name {
			continue
		}
		if len(tag) < 2 {
			return "", false
		}
		return tag[1], true
	}
	return "", false
}

// RequireTag is GetTag that also treats an empty value as missing
func RequireTag(tags nostr.Tags, name string) (string, bool) {
	value, ok := GetTag(tags, name)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// ListingRef builds the addressable reference "30023:<pubkey>:<d>"
func ListingRef(pubkey string, d string) string {
	return fmt.Sprintf("%d:%s:%s", types.KindListing, pubkey, d)
}
