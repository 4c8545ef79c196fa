package kind30024

import (
	"fmt"
	"strconv"

	"github.com/nbd-wtf/go-nostr"

	"github.com/HORNET-Storage/nostreats/lib/types"

	lib_nostr "github.com/HORNET-Storage/nostreats/lib/handlers/nostr"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ParseReview parses a kind 30024 event using the default zap denominations.
func ParseReview(event *nostr.Event) *types.Review {
	return ParseReviewWithAmounts(event, types.DefaultZapAmounts)
}

// ParseReviewWithAmounts converts a kind 30024 event into a Review, or nil
// when the a, rating or zap_amount tag is missing, the rating is not an
// integer in [1,5], or the amount is not exactly one of amounts.
func ParseReviewWithAmounts(event *nostr.Event, amounts types.ZapAmounts) *types.Review {
	if event == nil || event.Kind != types.KindReview {
		return nil
	}

	listingRef, ok := lib_nostr.RequireTag(event.Tags, "a")
	if !ok {
		return nil
	}
	rawRating, ok := lib_nostr.RequireTag(event.Tags, "rating")
	if !ok {
		return nil
	}
	rawAmount, ok := lib_nostr.RequireTag(event.Tags, "zap_amount")
	if !ok {
		return nil
	}

	rating, err := strconv.Atoi(rawRating)
	if err != nil || rating < MinRating || rating > MaxRating {
		return nil
	}

	amount, err := strconv.ParseInt(rawAmount, 10, 64)
	if err != nil || !amounts.Contains(amount) {
		return nil
	}

	supersedes, _ := lib_nostr.GetTag(event.Tags, "supersedes")

	return &types.Review{
		ID:           event.ID,
		PubKey:       event.PubKey,
		Content:      event.Content,
		Rating:       rating,
		ZapAmount:    amount,
		ListingRef:   listingRef,
		SupersedesID: supersedes,
		CreatedAt:    event.CreatedAt,
		Event:        event,
	}
}

// ReviewInput carries what a reviewer chooses when writing a review
type ReviewInput struct {
	ListingPubkey string
	ListingD      string
	Rating        int
	Content       string
	ZapAmount     int64
	SupersedesID  string
}

// BuildReviewTags produces the tag list for a new review addressed to the
// given platform identity.
func BuildReviewTags(input ReviewInput, platformPubkey string) nostr.Tags {
	tags := nostr.Tags{
		{"a", lib_nostr.ListingRef(input.ListingPubkey, input.ListingD)},
		{"rating", strconv.Itoa(input.Rating)},
		{"zap_amount", strconv.FormatInt(input.ZapAmount, 10)},
		{"platform", platformPubkey},
		{"alt", fmt.Sprintf("NostrEats restaurant review (%d/5 stars)", input.Rating)},
	}

	if input.SupersedesID != "" {
		tags = append(tags, nostr.Tag{"supersedes", input.SupersedesID})
	}

	return tags
}
