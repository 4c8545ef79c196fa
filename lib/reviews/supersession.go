package reviews

import (
	"sort"

	"github.com/HORNET-Storage/nostreats/lib/types"
)

// SortNewestFirst orders reviews by CreatedAt descending, breaking ties by
// the lexicographically smaller event ID. It sorts in place.
func SortNewestFirst(reviews []types.Review) {
	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].CreatedAt != reviews[j].CreatedAt {
			return reviews[i].CreatedAt > reviews[j].CreatedAt
		}
		return reviews[i].ID < reviews[j].ID
	})
}

// LatestPerAuthor keeps one review per author: the one with the greatest
// CreatedAt, or on a tie the smallest ID. The result is newest first.
// SupersedesID is carried along but never consulted.
func LatestPerAuthor(reviews []types.Review) []types.Review {
	sorted := make([]types.Review, len(reviews))
	copy(sorted, reviews)
	SortNewestFirst(sorted)

	seen := make(map[string]struct{}, len(sorted))
	latest := make([]types.Review, 0, len(sorted))
	for _, review := range sorted {
		if _, ok := seen[review.PubKey]; ok {
			continue
		}
		seen[review.PubKey] = struct{}{}
		latest = append(latest, review)
	}

	return latest
}

// LatestForAuthor returns the newest review written by pubkey, or nil
func LatestForAuthor(reviews []types.Review, pubkey string) *types.Review {
	if pubkey == "" {
		return nil
	}

	var latest *types.Review
	for i := range reviews {
		review := &reviews[i]
		if review.PubKey != pubkey {
			continue
		}
		if latest == nil || review.CreatedAt > latest.CreatedAt ||
			(review.CreatedAt == latest.CreatedAt && review.ID < latest.ID) {
			latest = review
		}
	}

	if latest == nil {
		return nil
	}
	found := *latest
	return &found
}
