package kind30023

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nbd-wtf/go-nostr"

	"github.com/HORNET-Storage/nostreats/lib/types"

	lib_nostr "github.com/HORNET-Storage/nostreats/lib/handlers/nostr"
)

// ParseListing converts a kind 30023 event into a Listing. It returns nil
// when the kind is wrong, when d, name, lat or lng is missing, or when a
// coordinate is not a finite number. An unrecognised status is kept as-is and
// only excludes the listing from the open catalog.
func ParseListing(event *nostr.Event) *types.Listing {
	if event == nil || event.Kind != types.KindListing {
		return nil
	}

	d, ok := lib_nostr.RequireTag(event.Tags, "d")
	if !ok {
		return nil
	}
	name, ok := lib_nostr.RequireTag(event.Tags, "name")
	if !ok {
		return nil
	}

	lat, ok := parseCoordinate(event.Tags, "lat")
	if !ok {
		return nil
	}
	lng, ok := parseCoordinate(event.Tags, "lng")
	if !ok {
		return nil
	}

	status := types.StatusOpen
	if value, ok := lib_nostr.RequireTag(event.Tags, "status"); ok {
		status = types.ListingStatus(value)
	}

	claimed, _ := lib_nostr.GetTag(event.Tags, "claimed")

	return &types.Listing{
		ID:        d,
		PubKey:    event.PubKey,
		Name:      name,
		About:     optionalTag(event.Tags, "about"),
		Content:   event.Content,
		Phone:     optionalTag(event.Tags, "phone"),
		Website:   optionalTag(event.Tags, "website"),
		Address:   optionalTag(event.Tags, "address"),
		Lat:       lat,
		Lng:       lng,
		Status:    status,
		Claimed:   claimed == "true",
		CreatedAt: event.CreatedAt,
		Event:     event,
	}
}

func parseCoordinate(tags nostr.Tags, name string) (float64, bool) {
	raw, ok := lib_nostr.RequireTag(tags, name)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func optionalTag(tags nostr.Tags, name string) string {
	value, _ := lib_nostr.GetTag(tags, name)
	return value
}

// ListingInput carries the user-editable fields of a new listing
type ListingInput struct {
	Name    string
	About   string
	Content string
	Phone   string
	Website string
	Address string
	Lat     float64
	Lng     float64
}

// BuildListingTags produces the tag list for a new open listing. Optional
// fields are only emitted when set.
func BuildListingTags(input ListingInput, d string, claimed bool) nostr.Tags {
	tags := nostr.Tags{
		{"d", d},
		{"name", input.Name},
		{"lat", strconv.FormatFloat(input.Lat, 'f', -1, 64)},
		{"lng", strconv.FormatFloat(input.Lng, 'f', -1, 64)},
		{"status", string(types.StatusOpen)},
		{"claimed", strconv.FormatBool(claimed)},
		{"alt", "Restaurant profile: " + input.Name},
	}

	if input.About != "" {
		tags = append(tags, nostr.Tag{"about", input.About})
	}
	if input.Phone != "" {
		tags = append(tags, nostr.Tag{"phone", input.Phone})
	}
	if input.Website != "" {
		tags = append(tags, nostr.Tag{"website", input.Website})
	}
	if input.Address != "" {
		tags = append(tags, nostr.Tag{"address", input.Address})
	}

	return tags
}

var (
	slugStrip = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpace = regexp.MustCompile(`\s+`)
)

// GenerateListingID derives a d tag from the listing name: a slug of at most
// 30 characters followed by the base36 millisecond timestamp.
func GenerateListingID(name string, now time.Time) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "")
	slug = slugSpace.ReplaceAllString(slug, "-")
	if len(slug) > 30 {
		slug = slug[:30]
	}
	return slug + "-" + strconv.FormatInt(now.UnixMilli(), 36)
}
