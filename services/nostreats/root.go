package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/HORNET-Storage/nostreats/lib/config"
	"github.com/HORNET-Storage/nostreats/lib/logging"
)

var (
	eventsFile string
	relayURLs  []string
	verify     bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "nostreats",
	Short: "Browse zap-backed restaurant reviews published on Nostr",
	Long: `nostreats builds a read model of restaurant listings and their reviews
from Nostr events. Only reviews backed by a zap to the platform count.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitConfig(); err != nil {
			return err
		}
		if len(relayURLs) > 0 {
			if err := config.UpdateConfig("query.relays", relayURLs); err != nil {
				return err
			}
		}

		if verbose {
			logging.SetLogger(logging.NewWriterLogger(os.Stderr, logging.DEBUG))
			return nil
		}
		return logging.InitLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&eventsFile, "file", "f", "", "read events from a JSON lines file instead of relays")
	rootCmd.PersistentFlags().StringSliceVar(&relayURLs, "relay", nil, "relay URLs to query (overrides query.relays)")
	rootCmd.PersistentFlags().BoolVar(&verify, "verify", false, "drop file events whose signature does not verify")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging on stderr")
}
