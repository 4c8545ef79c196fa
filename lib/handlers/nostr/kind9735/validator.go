package kind9735

import (
	"strconv"

	"github.com/nbd-wtf/go-nostr"
	"github.com/tidwall/gjson"

	"github.com/HORNET-Storage/nostreats/lib/types"

	lib_nostr "github.com/HORNET-Storage/nostreats/lib/handlers/nostr"
)

// Validator decides whether a review is backed by a zap to the platform
type Validator struct {
	platformPubkey string
	amounts        types.ZapAmounts
}

// NewValidator builds a validator for zaps sent to platformPubkey. A nil or
// empty amounts set falls back to the default denominations.
func NewValidator(platformPubkey string, amounts types.ZapAmounts) *Validator {
	if len(amounts) == 0 {
		amounts = types.DefaultZapAmounts
	}
	return &Validator{
		platformPubkey: platformPubkey,
		amounts:        amounts,
	}
}

func (v *Validator) Amounts() types.ZapAmounts {
	return v.amounts
}

// Matches reports whether the receipt pays the platform and references
// either the review itself (e tag) or the review's listing (a tag).
func (v *Validator) Matches(review *types.Review, receipt *nostr.Event) bool {
	if review == nil || receipt == nil || receipt.Kind != types.KindZapReceipt || v.platformPubkey == "" {
		return false
	}

	recipient, ok := lib_nostr.RequireTag(receipt.Tags, "p")
	if !ok || recipient != v.platformPubkey {
		return false
	}

	if eventID, ok := lib_nostr.GetTag(receipt.Tags, "e"); ok && eventID == review.ID {
		return true
	}
	if listingRef, ok := lib_nostr.GetTag(receipt.Tags, "a"); ok && listingRef == review.ListingRef {
		return true
	}

	return false
}

// ValidatePayment reports whether any matching receipt carries an allowed
// amount. Receipts are not ranked: the first qualifying one wins.
func (v *Validator) ValidatePayment(review *types.Review, receipts []*nostr.Event) bool {
	if review == nil {
		return false
	}

	for _, receipt := range receipts {
		if !v.Matches(review, receipt) {
			continue
		}
		if amount, ok := ExtractAmount(receipt); ok && v.amounts.Contains(amount) {
			return true
		}
	}

	return false
}

// MarkValidated returns a copy of reviews with IsValidated set from receipts
func (v *Validator) MarkValidated(reviews []types.Review, receipts []*nostr.Event) []types.Review {
	marked := make([]types.Review, len(reviews))
	for i := range reviews {
		marked[i] = reviews[i]
		marked[i].IsValidated = v.ValidatePayment(&marked[i], receipts)
	}
	return marked
}

// ExtractAmount returns the zapped amount in sats. The receipt's own amount
// tag (millisats) is preferred; otherwise the amount entry of the zap request
// embedded as JSON in the description tag is used. Only that entry is read,
// so other tags of the request may hold values of any JSON type.
func ExtractAmount(receipt *nostr.Event) (int64, bool) {
	if receipt == nil {
		return 0, false
	}

	if raw, ok := lib_nostr.RequireTag(receipt.Tags, "amount"); ok {
		if sats, ok := millisatsToSats(raw); ok {
			return sats, true
		}
	}

	description, ok := lib_nostr.RequireTag(receipt.Tags, "description")
	if !ok || !gjson.Valid(description) {
		return 0, false
	}

	var amount gjson.Result
	gjson.Get(description, "tags").ForEach(func(_, tag gjson.Result) bool {
		name := tag.Get("0")
		if name.Type == gjson.String && name.Str == "amount" {
			amount = tag.Get("1")
			return false
		}
		return true
	})

	switch amount.Type {
	case gjson.String:
		return millisatsToSats(amount.Str)
	case gjson.Number:
		return millisatsToSats(amount.Raw)
	}
	return 0, false
}

func millisatsToSats(raw string) (int64, bool) {
	millisats, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return floorDiv(millisats, 1000), true
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
