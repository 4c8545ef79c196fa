package reviews

import (
	"github.com/nbd-wtf/go-nostr"

	"github.com/HORNET-Storage/nostreats/lib/handlers"
	"github.com/HORNET-Storage/nostreats/lib/handlers/nostr/kind9735"
	"github.com/HORNET-Storage/nostreats/lib/logging"
	"github.com/HORNET-Storage/nostreats/lib/types"

	lib_nostr "github.com/HORNET-Storage/nostreats/lib/handlers/nostr"
)

// Aggregator turns a snapshot of review events and zap receipts for one
// listing into a ReviewSummary. It holds no mutable state, so one aggregator
// may summarize from many goroutines at once.
type Aggregator struct {
	validator *kind9735.Validator
	registry  *lib_nostr.Registry
	pickers   PickerSource
}

// NewAggregator builds an aggregator. A nil source features reviews using
// DefaultPicker.
func NewAggregator(validator *kind9735.Validator, pickers PickerSource) *Aggregator {
	return &Aggregator{
		validator: validator,
		registry:  handlers.NewRegistry(validator.Amounts()),
		pickers:   pickers,
	}
}

func (a *Aggregator) picker() Picker {
	if a.pickers == nil {
		return DefaultPicker
	}
	return a.pickers()
}

// Summarize parses reviewEvents, keeps those backed by a qualifying zap in
// receiptEvents, resolves one review per author and computes the summary.
// When listingRef is set, reviews addressed to any other listing are dropped.
// Events of the wrong kind in either collection are ignored.
func (a *Aggregator) Summarize(listingRef string, reviewEvents []*nostr.Event, receiptEvents []*nostr.Event) types.ReviewSummary {
	summary := types.ReviewSummary{
		ListingRef: listingRef,
		Reviews:    []types.Review{},
		Latest:     []types.Review{},
	}

	parsed := a.registry.Classify(reviewEvents)
	receipts := a.registry.Classify(receiptEvents).Receipts

	seen := make(map[string]struct{}, len(parsed.Reviews))
	malformed := len(reviewEvents) - len(parsed.Reviews)
	var unpaid, duplicate, misaddressed int

	for i := range parsed.Reviews {
		review := parsed.Reviews[i]
		if _, ok := seen[review.ID]; ok {
			duplicate++
			continue
		}
		seen[review.ID] = struct{}{}

		if listingRef != "" && review.ListingRef != listingRef {
			misaddressed++
			continue
		}

		review.IsValidated = a.validator.ValidatePayment(&review, receipts)
		if !review.IsValidated {
			unpaid++
			continue
		}
		summary.Reviews = append(summary.Reviews, review)
	}

	summary.Latest = LatestPerAuthor(summary.Reviews)
	summary.AverageRating = AverageRating(summary.Latest)
	summary.Featured = PickFeatured(summary.Latest, a.picker())
	summary.TotalReviewCount = len(summary.Latest)

	logging.Debug("Summarized reviews", map[string]interface{}{
		"listing":      listingRef,
		"events":       len(reviewEvents),
		"receipts":     len(receipts),
		"validated":    len(summary.Reviews),
		"counted":      summary.TotalReviewCount,
		"malformed":    malformed,
		"unpaid":       unpaid,
		"duplicate":    duplicate,
		"misaddressed": misaddressed,
	})

	return summary
}
