package reviews

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/nbd-wtf/go-nostr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HORNET-Storage/nostreats/lib/handlers/nostr/kind9735"
	"github.com/HORNET-Storage/nostreats/lib/logging"
	"github.com/HORNET-Storage/nostreats/lib/types"
)

const (
	platform = "platformpubkey"
	ref      = "30023:owner:taco-stand"
)

func reviewEvent(id, author string, createdAt int64, rating string) *nostr.Event {
	return &nostr.Event{
		ID:        id,
		PubKey:    author,
		Kind:      types.KindReview,
		CreatedAt: nostr.Timestamp(createdAt),
		Tags:      nostr.Tags{{"a", ref}, {"rating", rating}, {"zap_amount", "86"}},
	}
}

func zapFor(reviewID string, millisats string) *nostr.Event {
	return &nostr.Event{
		ID:   "zap-" + reviewID,
		Kind: types.KindZapReceipt,
		Tags: nostr.Tags{{"p", platform}, {"e", reviewID}, {"amount", millisats}},
	}
}

func newAggregator() *Aggregator {
	return NewAggregator(kind9735.NewValidator(platform, nil), func() Picker { return fixedPicker(0) })
}

func TestSummarize_LatestReviewPerAuthorCounts(t *testing.T) {
	reviewEvents := []*nostr.Event{
		reviewEvent("r1", "alice", 100, "2"),
		reviewEvent("r2", "alice", 200, "3"),
		reviewEvent("r3", "alice", 300, "5"),
	}
	receipts := []*nostr.Event{zapFor("r1", "86000"), zapFor("r2", "86000"), zapFor("r3", "86000")}

	summary := newAggregator().Summarize(ref, reviewEvents, receipts)

	assert.Len(t, summary.Reviews, 3)
	require.Len(t, summary.Latest, 1)
	assert.Equal(t, "r3", summary.Latest[0].ID)
	assert.Equal(t, 1, summary.TotalReviewCount)
	assert.Equal(t, 5.0, summary.AverageRating)
	require.NotNil(t, summary.Featured)
	assert.Equal(t, "r3", summary.Featured.ID)
}

func TestSummarize_DropsUnpaidMalformedAndDuplicates(t *testing.T) {
	offListing := reviewEvent("r5", "erin", 100, "1")
	offListing.Tags[0] = nostr.Tag{"a", "30023:owner:other"}

	reviewEvents := []*nostr.Event{
		reviewEvent("r1", "alice", 100, "4"),
		reviewEvent("r1", "alice", 100, "4"),
		reviewEvent("r2", "bob", 100, "1"),
		reviewEvent("r3", "carol", 100, "9"),
		reviewEvent("r4", "dave", 100, "5"),
		offListing,
	}
	receipts := []*nostr.Event{
		zapFor("r1", "86000"),
		zapFor("r2", "100000"),
		zapFor("r3", "86000"),
		zapFor("r4", "420000"),
		zapFor("r5", "86000"),
	}

	summary := newAggregator().Summarize(ref, reviewEvents, receipts)

	require.Len(t, summary.Reviews, 2)
	for _, r := range summary.Reviews {
		assert.True(t, r.IsValidated)
	}
	assert.Equal(t, 2, summary.TotalReviewCount)
	assert.Equal(t, 4.5, summary.AverageRating)
	require.NotNil(t, summary.Featured)
	assert.Equal(t, "r4", summary.Featured.ID)
}

func TestSummarize_ListingZapValidatesEveryReview(t *testing.T) {
	listingZap := &nostr.Event{
		Kind: types.KindZapReceipt,
		Tags: nostr.Tags{{"p", platform}, {"a", ref}, {"amount", "420000"}},
	}

	summary := newAggregator().Summarize(ref, []*nostr.Event{
		reviewEvent("r1", "alice", 100, "4"),
		reviewEvent("r2", "bob", 110, "3"),
	}, []*nostr.Event{listingZap})

	assert.Equal(t, 2, summary.TotalReviewCount)
	assert.Equal(t, 3.5, summary.AverageRating)
	assert.Nil(t, summary.Featured)
	assert.Equal(t, "r2", summary.Latest[0].ID)
}

func TestSummarize_Empty(t *testing.T) {
	summary := newAggregator().Summarize(ref, nil, nil)

	assert.NotNil(t, summary.Reviews)
	assert.Empty(t, summary.Latest)
	assert.Equal(t, 0.0, summary.AverageRating)
	assert.Equal(t, 0, summary.TotalReviewCount)
	assert.Nil(t, summary.Featured)
}

func TestSummarize_LogsDropCounts(t *testing.T) {
	var buf bytes.Buffer
	logging.SetLogger(logging.NewWriterLogger(&buf, logging.DEBUG))
	defer logging.SetLogger(nil)

	newAggregator().Summarize(ref, []*nostr.Event{reviewEvent("r1", "alice", 100, "4")}, nil)

	assert.Contains(t, buf.String(), "Summarized reviews")
	assert.Contains(t, buf.String(), "unpaid=1")
}

func TestSummarize_SeededSourceIsRepeatableAndConcurrent(t *testing.T) {
	var reviewEvents, receipts []*nostr.Event
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("r%d", i)
		reviewEvents = append(reviewEvents, reviewEvent(id, fmt.Sprintf("author%d", i), int64(100+i), "5"))
		receipts = append(receipts, zapFor(id, "86000"))
	}

	aggregator := NewAggregator(kind9735.NewValidator(platform, nil), SeededSource(7))

	first := aggregator.Summarize(ref, reviewEvents, receipts)
	require.NotNil(t, first.Featured)

	for i := 0; i < 5; i++ {
		again := aggregator.Summarize(ref, reviewEvents, receipts)
		require.NotNil(t, again.Featured)
		assert.Equal(t, first.Featured.ID, again.Featured.ID)
	}

	var wg sync.WaitGroup
	featured := make([]string, 8)
	for i := range featured {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			summary := aggregator.Summarize(ref, reviewEvents, receipts)
			featured[i] = summary.Featured.ID
		}(i)
	}
	wg.Wait()

	for _, id := range featured {
		assert.Equal(t, first.Featured.ID, id)
	}
}

func TestSummarize_IgnoresEventsOfTheWrongKind(t *testing.T) {
	stray := zapFor("r1", "86000")
	misplaced := reviewEvent("r2", "bob", 100, "5")

	summary := newAggregator().Summarize(ref,
		[]*nostr.Event{reviewEvent("r1", "alice", 100, "4"), stray},
		[]*nostr.Event{zapFor("r1", "86000"), misplaced},
	)

	require.Len(t, summary.Latest, 1)
	assert.Equal(t, "r1", summary.Latest[0].ID)
	assert.Equal(t, 4.0, summary.AverageRating)
}
