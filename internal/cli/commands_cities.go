package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/culturamap/cultural-map-cli/internal/domain"
	"github.com/culturamap/cultural-map-cli/internal/model/explore"
	"github.com/culturamap/cultural-map-cli/internal/service/output"
)

func newCitiesCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var categories []string
	var query string
	var openNow bool
	var eventsMode bool
	var minCount int

	cmd := &cobra.Command{
		Use:   "cities",
		Short: "List cities with enough venues under the active filters.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			session, err := newSession(cmd, deps, flags, format)
			if err != nil {
				return err
			}

			state := domain.FilterState{
				ActiveCategories: domain.NewCategorySet(categories...),
				Query:            query,
				OpenNowMode:      openNow,
				Events14dMode:    eventsMode,
			}
			hoursFn := session.hoursFn()
			eventCountFn := session.eventCountFn(state.WindowDays())

			entries := explore.FilteredData(session.venues, state, hoursFn, eventCountFn)
			cities := explore.AvailableCities(entries, minCount)

			counts := map[string]int{}
			for _, entry := range entries {
				if entry.Venue.City != "" {
					counts[entry.Venue.City]++
				}
			}
			rows := make([]any, 0, len(cities))
			for _, city := range cities {
				rows = append(rows, map[string]any{
					"city":   city,
					"venues": counts[city],
				})
			}
			data := map[string]any{"items": rows, "count": len(rows)}

			if format == output.FormatTable {
				return writeTable(cmd, buildCitiesTable(data), flags.Output)
			}
			return writeMachinePayload(cmd, session.envelope(data, nil), format, flags.Output)
		},
	}

	cmd.Flags().StringArrayVar(&categories, "category", nil, "Category filter (repeatable).")
	cmd.Flags().StringVar(&query, "query", "", "Free-text match on name, city, description, or category.")
	cmd.Flags().BoolVar(&openNow, "open-now", false, "Exclude venues that are currently closed.")
	cmd.Flags().BoolVar(&eventsMode, "events", false, "Only venues with events in the rolling window.")
	cmd.Flags().IntVar(&minCount, "min-count", 0, "Minimum venues a city needs to be listed (default 5).")
	addGlobalFlags(cmd, &flags)

	return cmd
}

func buildCitiesTable(data map[string]any) string {
	headers := []string{"City", "Venues"}
	rows := [][]string{}
	for _, value := range asSlice(data["items"]) {
		item := asMap(value)
		rows = append(rows, []string{
			asString(item["city"]),
			strconv.Itoa(asInt(item["venues"])),
		})
	}
	return output.RenderTable("Cities", headers, rows)
}
