package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/nbd-wtf/go-nostr"

	"github.com/HORNET-Storage/nostreats/lib/config"
	"github.com/HORNET-Storage/nostreats/lib/handlers/nostr/kind9735"
	"github.com/HORNET-Storage/nostreats/lib/logging"
	"github.com/HORNET-Storage/nostreats/lib/query"
	"github.com/HORNET-Storage/nostreats/lib/reviews"
	"github.com/HORNET-Storage/nostreats/lib/signing"
	"github.com/HORNET-Storage/nostreats/lib/stores/memory"
	"github.com/HORNET-Storage/nostreats/lib/types"
)

// loadEvents reads one JSON event per line into a memory store. Lines that
// do not decode, and with verify set lines whose signature fails, are skipped.
func loadEvents(r io.Reader, verify bool) (*memory.MemoryStore, error) {
	var json = jsoniter.ConfigCompatibleWithStandardLibrary

	store := memory.NewMemoryStore(types.KindListing)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var event nostr.Event
		if err := json.Unmarshal([]byte(text), &event); err != nil {
			logging.Warn("Skipping undecodable event", map[string]interface{}{"line": line, "error": err})
			continue
		}

		if verify {
			if err := signing.VerifyEvent(&event); err != nil {
				logging.Warn("Skipping event with bad signature", map[string]interface{}{"line": line, "id": event.ID, "error": err})
				continue
			}
		}

		if err := store.StoreEvent(&event); err != nil {
			logging.Warn("Skipping event", map[string]interface{}{"line": line, "error": err})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	logging.Debugf("Loaded %d events", store.Count())
	return store, nil
}

// buildService wires the query service from flags and config
func buildService(pickers reviews.PickerSource) (*query.Service, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}

	var querier query.Querier
	if eventsFile != "" {
		file, err := os.Open(eventsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", eventsFile, err)
		}
		defer file.Close()

		store, err := loadEvents(file, verify)
		if err != nil {
			return nil, err
		}
		querier = query.FromStore(store)
	} else {
		querier = query.NewRelayQuerier(cfg.Query.Relays)
	}

	platform := cfg.Platform.Pubkey
	if platform == "" {
		logging.Warn("platform.pubkey is not set; no review will validate")
	} else if platform, err = signing.NormalizePublicKey(platform); err != nil {
		return nil, fmt.Errorf("invalid platform.pubkey: %w", err)
	}

	validator := kind9735.NewValidator(platform, cfg.Platform.Amounts())
	aggregator := reviews.NewAggregator(validator, pickers)

	return query.NewService(querier, aggregator, query.OptionsFromConfig(cfg)), nil
}
