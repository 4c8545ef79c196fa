package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/nbd-wtf/go-nostr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HORNET-Storage/nostreats/lib/handlers/nostr/kind9735"
	"github.com/HORNET-Storage/nostreats/lib/query"
	"github.com/HORNET-Storage/nostreats/lib/reviews"
	"github.com/HORNET-Storage/nostreats/lib/stores/memory"
	"github.com/HORNET-Storage/nostreats/lib/types"
)

func TestLoadEvents_SkipsBadLines(t *testing.T) {
	input := strings.Join([]string{
		`{"id":"l1","pubkey":"owner","kind":30023,"created_at":100,"tags":[["d","tacos"],["name","Tacos"],["lat","1"],["lng","2"]],"content":"","sig":""}`,
		``,
		`not json`,
		`{"id":"z1","pubkey":"lnurl","kind":9735,"created_at":101,"tags":[["p","platform"]],"content":"","sig":""}`,
	}, "\n")

	store, err := loadEvents(strings.NewReader(input), false)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Count())

	events, err := store.QueryEvents(nostr.Filter{Kinds: []int{types.KindListing}})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "l1", events[0].ID)
}

func TestLoadEvents_VerifyDropsUnsigned(t *testing.T) {
	sk := nostr.GeneratePrivateKey()
	signed := nostr.Event{Kind: types.KindZapReceipt, CreatedAt: nostr.Now(), Tags: nostr.Tags{{"p", "platform"}}}
	require.NoError(t, signed.Sign(sk))

	input := signed.String() + "\n" +
		`{"id":"forged","pubkey":"00","kind":9735,"created_at":1,"tags":[],"content":"","sig":"00"}`

	store, err := loadEvents(strings.NewReader(input), true)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Count())
}

func TestParseLatLng(t *testing.T) {
	lat, lng, err := parseLatLng("40.7128, -74.0060")
	require.NoError(t, err)
	assert.Equal(t, 40.7128, lat)
	assert.Equal(t, -74.0060, lng)

	_, _, err = parseLatLng("40.7")
	assert.Error(t, err)
	_, _, err = parseLatLng("north,south")
	assert.Error(t, err)
}

func TestWriteSummary(t *testing.T) {
	listing := &types.Listing{Name: "Taco Stand", Status: types.StatusOpen, Address: "1 Main St"}
	featured := types.Review{ID: "r1", PubKey: "abcdef0123456789", Rating: 5, Content: "Superb", CreatedAt: 1700000000}
	summary := &types.ReviewSummary{
		Latest:           []types.Review{featured},
		Featured:         &featured,
		AverageRating:    5,
		TotalReviewCount: 1,
	}

	var buf bytes.Buffer
	writeSummary(&buf, listing, summary)

	out := buf.String()
	assert.Contains(t, out, "Taco Stand (open)")
	assert.Contains(t, out, "Rating: 5.0 from 1 review(s)")
	assert.Contains(t, out, `Featured: "Superb"`)
	assert.Contains(t, out, "5/5  2023-11-14  abcdef01…6789  Superb")
}

func TestWriteListings_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeListings(&buf, nil))
	assert.Equal(t, "No restaurants found.\n", buf.String())
}

func TestRunAuthorReview(t *testing.T) {
	alice, err := nostr.GetPublicKey(nostr.GeneratePrivateKey())
	require.NoError(t, err)

	store := memory.NewMemoryStore(types.KindListing)
	for _, event := range []*nostr.Event{
		{ID: "l1", PubKey: "owner", Kind: types.KindListing, CreatedAt: 100,
			Tags: nostr.Tags{{"d", "tacos"}, {"name", "Taco Stand"}, {"lat", "1"}, {"lng", "2"}}},
		{ID: "r1", PubKey: alice, Kind: types.KindReview, CreatedAt: 200, Content: "Crispy",
			Tags: nostr.Tags{{"a", "30023:owner:tacos"}, {"rating", "4"}, {"zap_amount", "86"}}},
		{ID: "z1", Kind: types.KindZapReceipt, CreatedAt: 201,
			Tags: nostr.Tags{{"p", "platform"}, {"e", "r1"}, {"a", "30023:owner:tacos"}, {"amount", "86000"}}},
	} {
		require.NoError(t, store.StoreEvent(event))
	}

	aggregator := reviews.NewAggregator(kind9735.NewValidator("platform", nil), nil)
	service := query.NewService(query.FromStore(store), aggregator, query.DefaultOptions())

	listing, err := service.Restaurant(context.Background(), "owner", "tacos")
	require.NoError(t, err)
	require.NotNil(t, listing)

	var buf bytes.Buffer
	ctx := context.Background()

	author = alice
	defer func() { author = "" }()
	require.NoError(t, runAuthorReview(ctx, &buf, service, listing))
	assert.Contains(t, buf.String(), "4/5  1970-01-01")
	assert.Contains(t, buf.String(), "Crispy")

	other, err := nostr.GetPublicKey(nostr.GeneratePrivateKey())
	require.NoError(t, err)
	author = other
	assert.ErrorContains(t, runAuthorReview(ctx, &buf, service, listing), "no validated review")

	author = "not-a-key"
	assert.ErrorContains(t, runAuthorReview(ctx, &buf, service, listing), "invalid --author")
}
