package query

import (
	"context"
	"fmt"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"golang.org/x/sync/errgroup"

	"github.com/HORNET-Storage/nostreats/lib/listings"
	"github.com/HORNET-Storage/nostreats/lib/logging"
	"github.com/HORNET-Storage/nostreats/lib/reviews"
	"github.com/HORNET-Storage/nostreats/lib/types"
)

// Options tunes the limits and deadlines applied to each query
type Options struct {
	ListingLimit   int
	ReviewLimit    int
	ReceiptLimit   int
	Timeout        time.Duration
	ListingTimeout time.Duration
}

// DefaultOptions match the limits used by the web client
func DefaultOptions() Options {
	return Options{
		ListingLimit:   500,
		ReviewLimit:    200,
		ReceiptLimit:   500,
		Timeout:        10 * time.Second,
		ListingTimeout: 5 * time.Second,
	}
}

// OptionsFromConfig fills Options from the loaded configuration
func OptionsFromConfig(cfg *types.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	if cfg.Query.ListingLimit > 0 {
		opts.ListingLimit = cfg.Query.ListingLimit
	}
	if cfg.Query.ReviewLimit > 0 {
		opts.ReviewLimit = cfg.Query.ReviewLimit
	}
	if cfg.Query.ReceiptLimit > 0 {
		opts.ReceiptLimit = cfg.Query.ReceiptLimit
	}
	if cfg.Query.TimeoutSeconds > 0 {
		opts.Timeout = time.Duration(cfg.Query.TimeoutSeconds) * time.Second
	}
	if cfg.Query.ListingTimeoutSeconds > 0 {
		opts.ListingTimeout = time.Duration(cfg.Query.ListingTimeoutSeconds) * time.Second
	}
	return opts
}

// Service answers the questions the restaurant pages ask. Every call
// fetches a fresh snapshot; nothing is cached between calls.
type Service struct {
	querier    Querier
	aggregator *reviews.Aggregator
	opts       Options
}

func NewService(querier Querier, aggregator *reviews.Aggregator, opts Options) *Service {
	return &Service{
		querier:    querier,
		aggregator: aggregator,
		opts:       opts,
	}
}

// Restaurants returns every open listing, newest first
func (s *Service) Restaurants(ctx context.Context) ([]types.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	events, err := s.querier.QueryEvents(ctx, nostr.Filter{
		Kinds: []int{types.KindListing},
		Limit: s.opts.ListingLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}

	return listings.Open(listings.FromEvents(events)), nil
}

// AllRestaurants returns listings of every status, newest first
func (s *Service) AllRestaurants(ctx context.Context) ([]types.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	events, err := s.querier.QueryEvents(ctx, nostr.Filter{
		Kinds: []int{types.KindListing},
		Limit: s.opts.ListingLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}

	return listings.FromEvents(events), nil
}

// Restaurant looks up a single listing by owner and d tag, returning the
// current well-formed version. A missing or malformed listing returns nil
// without an error.
func (s *Service) Restaurant(ctx context.Context, pubkey string, d string) (*types.Listing, error) {
	if pubkey == "" || d == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.ListingTimeout)
	defer cancel()

	events, err := s.querier.QueryEvents(ctx, nostr.Filter{
		Kinds:   []int{types.KindListing},
		Authors: []string{pubkey},
		Tags:    nostr.TagMap{"d": []string{d}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query listing %s: %w", d, err)
	}

	// Each relay may hold its own version; resolve them like the catalog does.
	found := listings.FromEvents(events)
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// Search filters open listings by name, address or description. A status:
// filter naming a non-open status searches every listing instead.
func (s *Service) Search(ctx context.Context, q string) ([]types.Listing, error) {
	var (
		ls  []types.Listing
		err error
	)
	if listings.ParseSearchQuery(q).NeedsAll() {
		ls, err = s.AllRestaurants(ctx)
	} else {
		ls, err = s.Restaurants(ctx)
	}
	if err != nil {
		return nil, err
	}
	return listings.Search(ls, q), nil
}

// Nearby filters open listings to those within radiusKm of (lat, lng)
func (s *Service) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]types.Listing, error) {
	open, err := s.Restaurants(ctx)
	if err != nil {
		return nil, err
	}
	return listings.Nearby(open, lat, lng, radiusKm), nil
}

// Snapshot is the pair of collections the aggregator works on
type Snapshot struct {
	Reviews  []*nostr.Event
	Receipts []*nostr.Event
}

// FetchSnapshot queries reviews and zap receipts for a listing reference
// in parallel under the configured timeout.
func (s *Service) FetchSnapshot(ctx context.Context, listingRef string) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	snapshot := &Snapshot{}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		events, err := s.querier.QueryEvents(groupCtx, nostr.Filter{
			Kinds: []int{types.KindReview},
			Tags:  nostr.TagMap{"a": []string{listingRef}},
			Limit: s.opts.ReviewLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to query reviews: %w", err)
		}
		snapshot.Reviews = events
		return nil
	})

	group.Go(func() error {
		events, err := s.querier.QueryEvents(groupCtx, nostr.Filter{
			Kinds: []int{types.KindZapReceipt},
			Tags:  nostr.TagMap{"a": []string{listingRef}},
			Limit: s.opts.ReceiptLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to query zap receipts: %w", err)
		}
		snapshot.Receipts = events
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	logging.Debug("Fetched review snapshot", map[string]interface{}{
		"listing":  listingRef,
		"reviews":  len(snapshot.Reviews),
		"receipts": len(snapshot.Receipts),
	})

	return snapshot, nil
}

// RestaurantReviews fetches and summarizes the reviews of a listing
func (s *Service) RestaurantReviews(ctx context.Context, listing *types.Listing) (*types.ReviewSummary, error) {
	if listing == nil {
		return nil, nil
	}

	ref := listings.Ref(*listing)
	snapshot, err := s.FetchSnapshot(ctx, ref)
	if err != nil {
		return nil, err
	}

	summary := s.aggregator.Summarize(ref, snapshot.Reviews, snapshot.Receipts)
	return &summary, nil
}

// UserReview returns the newest validated review pubkey wrote for listing
func (s *Service) UserReview(ctx context.Context, listing *types.Listing, pubkey string) (*types.Review, error) {
	summary, err := s.RestaurantReviews(ctx, listing)
	if err != nil || summary == nil {
		return nil, err
	}
	return reviews.LatestForAuthor(summary.Reviews, pubkey), nil
}
