package kind30024

import (
	"github.com/nbd-wtf/go-nostr"

	"github.com/HORNET-Storage/nostreats/lib/types"

	lib_nostr "github.com/HORNET-Storage/nostreats/lib/handlers/nostr"
)

// BuildKind30024Handler returns a handler that files well-formed review
// events into the batch. Validation against zap receipts happens later.
func BuildKind30024Handler(amounts types.ZapAmounts) lib_nostr.KindHandler {
	return func(event *nostr.Event, batch *types.Batch) bool {
		review := ParseReviewWithAmounts(event, amounts)
		if review == nil {
			return false
		}
		batch.Reviews = append(batch.Reviews, *review)
		return true
	}
}
