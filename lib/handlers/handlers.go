package handlers

import (
	"github.com/HORNET-Storage/nostreats/lib/types"

	lib_nostr "github.com/HORNET-Storage/nostreats/lib/handlers/nostr"
	"github.com/HORNET-Storage/nostreats/lib/handlers/nostr/kind30023"
	"github.com/HORNET-Storage/nostreats/lib/handlers/nostr/kind30024"
	"github.com/HORNET-Storage/nostreats/lib/handlers/nostr/kind9735"
)

// NewRegistry registers the handlers for every kind the read model consumes.
// Reserved platform kinds are left unregistered and end up skipped.
func NewRegistry(amounts types.ZapAmounts) *lib_nostr.Registry {
	registry := lib_nostr.NewRegistry()
	registry.RegisterHandler(types.KindListing, kind30023.BuildKind30023Handler())
	registry.RegisterHandler(types.KindReview, kind30024.BuildKind30024Handler(amounts))
	registry.RegisterHandler(types.KindZapReceipt, kind9735.BuildKind9735Handler())
	return registry
}
