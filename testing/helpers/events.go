// Package helpers provides signed event fixtures for integration testing the read model
package helpers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/nbd-wtf/go-nostr"

	"github.com/HORNET-Storage/nostreats/lib/handlers/nostr/kind30023"
	"github.com/HORNET-Storage/nostreats/lib/handlers/nostr/kind30024"
	"github.com/HORNET-Storage/nostreats/lib/types"

	lib_nostr "github.com/HORNET-Storage/nostreats/lib/handlers/nostr"
)

// TestKeyPair represents a key pair for testing
type TestKeyPair struct {
	PrivateKey string
	PublicKey  string
}

// GenerateKeyPair generates a new key pair for testing
func GenerateKeyPair() (*TestKeyPair, error) {
	sk := nostr.GeneratePrivateKey()
	pk, err := nostr.GetPublicKey(sk)
	if err != nil {
		return nil, fmt.Errorf("failed to get public key: %w", err)
	}
	return &TestKeyPair{
		PrivateKey: sk,
		PublicKey:  pk,
	}, nil
}

func sign(kp *TestKeyPair, kind int, createdAt int64, tags nostr.Tags, content string) (*nostr.Event, error) {
	event := &nostr.Event{
		PubKey:    kp.PublicKey,
		CreatedAt: nostr.Timestamp(createdAt),
		Kind:      kind,
		Tags:      tags,
		Content:   content,
	}
	if err := event.Sign(kp.PrivateKey); err != nil {
		return nil, fmt.Errorf("failed to sign event: %w", err)
	}
	return event, nil
}

// CreateListing creates a kind 30023 restaurant profile owned by kp
func CreateListing(kp *TestKeyPair, d string, input kind30023.ListingInput, createdAt int64, extra ...nostr.Tag) (*nostr.Event, error) {
	tags := kind30023.BuildListingTags(input, d, false)
	tags = append(tags, extra...)
	return sign(kp, types.KindListing, createdAt, tags, input.Content)
}

// CreateReview creates a kind 30024 review by kp of the listing (owner, d)
func CreateReview(kp *TestKeyPair, owner string, d string, rating int, zapAmount int64, content string, createdAt int64, platform string) (*nostr.Event, error) {
	tags := kind30024.BuildReviewTags(kind30024.ReviewInput{
		ListingPubkey: owner,
		ListingD:      d,
		Rating:        rating,
		Content:       content,
		ZapAmount:     zapAmount,
	}, platform)
	return sign(kp, types.KindReview, createdAt, tags, content)
}

// CreateRawReview creates a kind 30024 event with caller-supplied tags
func CreateRawReview(kp *TestKeyPair, tags nostr.Tags, createdAt int64) (*nostr.Event, error) {
	return sign(kp, types.KindReview, createdAt, tags, "")
}

// ZapOptions controls how a zap receipt is shaped
type ZapOptions struct {
	ReviewID   string
	ListingRef string
	Recipient  string
	Sats       int64
	// AmountInDescription moves the amount from the receipt tag into the
	// embedded zap request.
	AmountInDescription bool
}

// CreateZapReceipt creates a kind 9735 receipt signed by the wallet server
// key, embedding a kind 9734 zap request signed by the sender.
func CreateZapReceipt(server *TestKeyPair, sender *TestKeyPair, opts ZapOptions, createdAt int64) (*nostr.Event, error) {
	millisats := strconv.FormatInt(opts.Sats*1000, 10)

	requestTags := nostr.Tags{{"p", opts.Recipient}}
	if opts.ReviewID != "" {
		requestTags = append(requestTags, nostr.Tag{"e", opts.ReviewID})
	}
	if opts.ListingRef != "" {
		requestTags = append(requestTags, nostr.Tag{"a", opts.ListingRef})
	}
	requestTags = append(requestTags, nostr.Tag{"amount", millisats})

	request, err := sign(sender, 9734, createdAt-1, requestTags, "")
	if err != nil {
		return nil, err
	}
	description, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal zap request: %w", err)
	}

	tags := nostr.Tags{{"p", opts.Recipient}}
	if opts.ReviewID != "" {
		tags = append(tags, nostr.Tag{"e", opts.ReviewID})
	}
	if opts.ListingRef != "" {
		tags = append(tags, nostr.Tag{"a", opts.ListingRef})
	}
	if !opts.AmountInDescription {
		tags = append(tags, nostr.Tag{"amount", millisats})
	}
	tags = append(tags, nostr.Tag{"description", string(description)})

	return sign(server, types.KindZapReceipt, createdAt, tags, "")
}

// ListingRef is a convenience re-export for tests
func ListingRef(owner string, d string) string {
	return lib_nostr.ListingRef(owner, d)
}
