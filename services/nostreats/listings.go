package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/HORNET-Storage/nostreats/lib/listings"
	"github.com/HORNET-Storage/nostreats/lib/types"
)

var (
	searchQuery string
	near        string
	radiusKm    float64
	showAll     bool
	jsonOutput  bool
)

var listingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "List restaurants",
	Long:  `List open restaurants, newest first, optionally filtered by text or proximity.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := buildService(nil)
		if err != nil {
			return err
		}

		var ls []types.Listing
		if showAll || listings.ParseSearchQuery(searchQuery).NeedsAll() {
			ls, err = service.AllRestaurants(cmd.Context())
		} else {
			ls, err = service.Restaurants(cmd.Context())
		}
		if err != nil {
			return err
		}

		if searchQuery != "" {
			ls = listings.Search(ls, searchQuery)
		}
		if near != "" {
			lat, lng, err := parseLatLng(near)
			if err != nil {
				return err
			}
			ls = listings.Nearby(ls, lat, lng, radiusKm)
		}

		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), ls)
		}
		return writeListings(cmd.OutOrStdout(), ls)
	},
}

func init() {
	rootCmd.AddCommand(listingsCmd)
	listingsCmd.Flags().StringVarP(&searchQuery, "search", "s", "", "filter by name, address or description; accepts status: and claimed: filters")
	listingsCmd.Flags().StringVar(&near, "near", "", "reference point as lat,lng")
	listingsCmd.Flags().Float64Var(&radiusKm, "radius", 10, "radius in km used with --near")
	listingsCmd.Flags().BoolVar(&showAll, "all", false, "include closed and inactive listings")
	listingsCmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a table")
}

func parseLatLng(value string) (float64, float64, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid --near %q: expected lat,lng", value)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q: %w", parts[0], err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q: %w", parts[1], err)
	}
	return lat, lng, nil
}

func writeListings(w io.Writer, ls []types.Listing) error {
	if len(ls) == 0 {
		fmt.Fprintln(w, "No restaurants found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTATUS\tADDRESS\tLAT,LNG\tREF")
	for _, l := range ls {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.5f,%.5f\t%s\n", l.Name, l.Status, l.Address, l.Lat, l.Lng, listings.Ref(l))
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v interface{}) error {
	var json = jsoniter.ConfigCompatibleWithStandardLibrary

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

