package kind9735

import (
	"github.com/nbd-wtf/go-nostr"

	"github.com/HORNET-Storage/nostreats/lib/types"

	lib_nostr "github.com/HORNET-Storage/nostreats/lib/handlers/nostr"
)

// BuildKind9735Handler returns a handler that collects zap receipts as-is.
// Receipts are only read for their tags when a review is validated.
func BuildKind9735Handler() lib_nostr.KindHandler {
	return func(event *nostr.Event, batch *types.Batch) bool {
		if event.Kind != types.KindZapReceipt {
			return false
		}
		batch.Receipts = append(batch.Receipts, event)
		return true
	}
}
