// Package query fetches listing, review and zap receipt snapshots from a
// store or from relays and hands them to the read-model core.
package query

import (
	"context"
	"fmt"

	"github.com/nbd-wtf/go-nostr"
	"golang.org/x/sync/errgroup"

	"github.com/HORNET-Storage/nostreats/lib/logging"
	"github.com/HORNET-Storage/nostreats/lib/stores"
)

// Querier returns the events matching filter
type Querier interface {
	QueryEvents(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error)
}

type storeQuerier struct {
	store stores.Store
}

// FromStore adapts a Store to the Querier interface
func FromStore(store stores.Store) Querier {
	return &storeQuerier{store: store}
}

func (q *storeQuerier) QueryEvents(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return q.store.QueryEvents(filter)
}

// RelayQuerier queries every relay in parallel and merges the results,
// de-duplicated by event ID. Relays that fail are logged and skipped; the
// query only fails when every relay does.
type RelayQuerier struct {
	urls []string
}

func NewRelayQuerier(urls []string) *RelayQuerier {
	return &RelayQuerier{urls: urls}
}

func (q *RelayQuerier) QueryEvents(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error) {
	if len(q.urls) == 0 {
		return nil, fmt.Errorf("no relays configured")
	}

	results := make([][]*nostr.Event, len(q.urls))
	failures := make([]error, len(q.urls))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, url := range q.urls {
		group.Go(func() error {
			events, err := queryRelay(groupCtx, url, filter)
			if err != nil {
				logging.Warn("Relay query failed", map[string]interface{}{"relay": url, "error": err})
				failures[i] = err
				return nil
			}
			results[i] = events
			return nil
		})
	}
	group.Wait()

	var merged []*nostr.Event
	seen := make(map[string]struct{})
	succeeded := 0
	for i, events := range results {
		if failures[i] != nil {
			continue
		}
		succeeded++
		for _, event := range events {
			if _, ok := seen[event.ID]; ok {
				continue
			}
			seen[event.ID] = struct{}{}
			merged = append(merged, event)
		}
	}

	if succeeded == 0 {
		return nil, fmt.Errorf("all %d relays failed: %w", len(q.urls), failures[0])
	}

	return merged, nil
}

func queryRelay(ctx context.Context, url string, filter nostr.Filter) ([]*nostr.Event, error) {
	relay, err := nostr.RelayConnect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to relay %s: %w", url, err)
	}
	defer relay.Close()

	events, err := relay.QuerySync(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query relay %s: %w", url, err)
	}
	return events, nil
}
