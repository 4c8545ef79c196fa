// Nostr event kinds and the read-model types derived from them
package types

import (
	"github.com/nbd-wtf/go-nostr"
)

// Event kinds used by the platform. Only listings, reviews and zap receipts
// are read; the rest are reserved by the wider protocol.
const (
	KindListing           = 30023
	KindReview            = 30024
	KindCommunitySignal   = 30025
	KindOwnershipTransfer = 30026
	KindPlatformPolicy    = 30078
	KindZapReceipt        = 9735
)

// ListingStatus is the lifecycle state a listing owner advertises
type ListingStatus string

const (
	StatusOpen     ListingStatus = "open"
	StatusClosed   ListingStatus = "closed"
	StatusInactive ListingStatus = "inactive"
)

// Valid reports whether s is one of the known statuses
func (s ListingStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusInactive:
		return true
	}
	return false
}

// Listing is a restaurant profile parsed from a kind 30023 event.
// Optional fields are empty when the tag was absent.
type Listing struct {
	ID        string          `json:"id"`
	PubKey    string          `json:"pubkey"`
	Name      string          `json:"name"`
	About     string          `json:"about,omitempty"`
	Content   string          `json:"content"`
	Phone     string          `json:"phone,omitempty"`
	Website   string          `json:"website,omitempty"`
	Address   string          `json:"address,omitempty"`
	Lat       float64         `json:"lat"`
	Lng       float64         `json:"lng"`
	Status    ListingStatus   `json:"status"`
	Claimed   bool            `json:"claimed"`
	CreatedAt nostr.Timestamp `json:"created_at"`
	Event     *nostr.Event    `json:"-"`
}

// Review is a rating parsed from a kind 30024 event. Rating and ZapAmount
// are always within their allowed ranges; the parser refuses anything else.
type Review struct {
	ID           string          `json:"id"`
	PubKey       string          `json:"pubkey"`
	Content      string          `json:"content"`
	Rating       int             `json:"rating"`
	ZapAmount    int64           `json:"zap_amount"`
	ListingRef   string          `json:"listing_ref"`
	SupersedesID string          `json:"supersedes_id,omitempty"`
	CreatedAt    nostr.Timestamp `json:"created_at"`
	IsValidated  bool            `json:"is_validated"`
	Event        *nostr.Event    `json:"-"`
}

// ReviewSummary is the aggregated view of a single listing's reviews
type ReviewSummary struct {
	ListingRef       string   `json:"listing_ref"`
	Reviews          []Review `json:"reviews"`
	Latest           []Review `json:"latest"`
	Featured         *Review  `json:"featured,omitempty"`
	AverageRating    float64  `json:"average_rating"`
	TotalReviewCount int      `json:"total_review_count"`
}

// Batch holds events sorted by kind after classification
type Batch struct {
	Listings []Listing
	Reviews  []Review
	Receipts []*nostr.Event
	Skipped  int
}
