package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/HORNET-Storage/nostreats/lib/query"
	"github.com/HORNET-Storage/nostreats/lib/reviews"
	"github.com/HORNET-Storage/nostreats/lib/signing"
	"github.com/HORNET-Storage/nostreats/lib/types"
)

var (
	seed   int64
	author string
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews <owner-pubkey> <d-tag>",
	Short: "Summarize the zap-backed reviews of a restaurant",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pickers reviews.PickerSource
		if seed >= 0 {
			pickers = reviews.SeededSource(uint64(seed))
		}

		service, err := buildService(pickers)
		if err != nil {
			return err
		}

		listing, err := service.Restaurant(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if listing == nil {
			return fmt.Errorf("restaurant %s not found", args[1])
		}

		if author != "" {
			return runAuthorReview(cmd.Context(), cmd.OutOrStdout(), service, listing)
		}

		summary, err := service.RestaurantReviews(cmd.Context(), listing)
		if err != nil {
			return err
		}

		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), summary)
		}
		writeSummary(cmd.OutOrStdout(), listing, summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reviewsCmd)
	reviewsCmd.Flags().Int64Var(&seed, "seed", -1, "seed for the featured review pick (random when negative)")
	reviewsCmd.Flags().StringVar(&author, "author", "", "show only the current review by this pubkey (hex or npub)")
	reviewsCmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")
}

func runAuthorReview(ctx context.Context, w io.Writer, service *query.Service, listing *types.Listing) error {
	pubkey, err := signing.NormalizePublicKey(author)
	if err != nil {
		return fmt.Errorf("invalid --author: %w", err)
	}

	review, err := service.UserReview(ctx, listing, pubkey)
	if err != nil {
		return err
	}
	if review == nil {
		return fmt.Errorf("no validated review by %s for %s", shortKey(pubkey), listing.Name)
	}

	if jsonOutput {
		return writeJSON(w, review)
	}
	writeReview(w, *review)
	return nil
}

func writeSummary(w io.Writer, listing *types.Listing, summary *types.ReviewSummary) {
	fmt.Fprintf(w, "%s (%s)\n", listing.Name, listing.Status)
	if listing.Address != "" {
		fmt.Fprintf(w, "%s\n", listing.Address)
	}
	fmt.Fprintf(w, "Rating: %.1f from %d review(s)\n", summary.AverageRating, summary.TotalReviewCount)

	if summary.Featured != nil {
		fmt.Fprintf(w, "\nFeatured: %q\n", summary.Featured.Content)
	}

	if len(summary.Latest) > 0 {
		fmt.Fprintln(w)
	}
	for _, r := range summary.Latest {
		writeReview(w, r)
	}
}

func writeReview(w io.Writer, r types.Review) {
	when := time.Unix(int64(r.CreatedAt), 0).UTC().Format("2006-01-02")
	fmt.Fprintf(w, "%d/5  %s  %s  %s\n", r.Rating, when, shortKey(r.PubKey), r.Content)
}

func shortKey(pubkey string) string {
	if len(pubkey) <= 12 {
		return pubkey
	}
	return pubkey[:8] + "…" + pubkey[len(pubkey)-4:]
}
