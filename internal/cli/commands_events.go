package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/culturamap/cultural-map-cli/internal/domain"
	"github.com/culturamap/cultural-map-cli/internal/model/events"
	"github.com/culturamap/cultural-map-cli/internal/service/output"
)

func newEventsCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var dateFilter string
	var category string
	var audience string
	var windowDays int
	var includeRecurring bool
	var limit int
	var limitSet bool
	var offset int
	var offsetSet bool
	var page int
	var pageSet bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List upcoming events across the county, recurring series collapsed.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			switch dateFilter {
			case "", domain.EventDateAll, domain.EventDateToday, domain.EventDateWeekend, domain.EventDateWindow:
			default:
				return fmt.Errorf("--date must be one of all, today, weekend, 14d; got %q", dateFilter)
			}
			session, err := newSession(cmd, deps, flags, format)
			if err != nil {
				return err
			}

			state := domain.FilterState{
				EventDateFilter:     dateFilter,
				EventCategoryFilter: category,
				EventAudienceFilter: audience,
				EventWindowDays:     windowDays,
			}
			filtered := events.FilteredEvents(session.index.Events, session.venues,
				events.OptionsFromState(state, !includeRecurring), session.now, session.loc)

			rows := make([]any, 0, len(filtered))
			for _, event := range filtered {
				row := map[string]any{
					"id":       event.ID,
					"title":    event.Title,
					"venue":    event.VenueName,
					"city":     event.VenueCity,
					"when":     events.FormatDateRange(event, session.loc),
					"mapped":   event.Mapped(),
					"audience": event.Audience,
				}
				if event.Mapped() {
					row["venue_idx"] = *event.MatchedAssetIndex
					row["match_method"] = event.MatchMethod
				}
				if event.SeriesCount > 1 {
					row["series_count"] = event.SeriesCount
				}
				rows = append(rows, row)
			}

			data := map[string]any{"items": rows}
			var limitPtr *int
			if limitSet {
				limitPtr = &limit
			}
			resolvedOffset, err := resolvePageOffset(limit, limitSet, offset, offsetSet, page, pageSet)
			if err != nil {
				return err
			}
			paginateItems(data, limitPtr, resolvedOffset)
			if pageSet {
				data["page"] = page
			}

			warnings := []string{}
			if unmatched := len(session.index.Unmatched); unmatched > 0 {
				warnings = append(warnings, fmt.Sprintf("%d events could not be matched to a venue", unmatched))
			}

			if format == output.FormatTable {
				return writeTable(cmd, buildEventsTable(data), flags.Output)
			}
			return writeMachinePayload(cmd, session.envelope(data, warnings), format, flags.Output)
		},
	}

	cmd.Flags().StringVar(&dateFilter, "date", domain.EventDateAll, "Date filter: all, today, weekend, or 14d.")
	cmd.Flags().StringVar(&category, "category", "", "Only events in this category (declared or inferred).")
	cmd.Flags().StringVar(&audience, "audience", "", "Only events for this audience.")
	cmd.Flags().IntVar(&windowDays, "window-days", 0, "Rolling window for the 14d date filter (default 14).")
	cmd.Flags().BoolVar(&includeRecurring, "include-recurring", false, "Show every occurrence instead of collapsing recurring series.")
	cmd.Flags().IntVar(&limit, "limit", 0, "Limit returned rows.")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset returned rows.")
	cmd.Flags().IntVar(&page, "page", 0, "1-based page number (requires --limit; cannot be combined with --offset).")
	addGlobalFlags(cmd, &flags)
	cmd.PreRun = func(cmd *cobra.Command, _ []string) {
		limitSet = cmd.Flags().Changed("limit")
		offsetSet = cmd.Flags().Changed("offset")
		pageSet = cmd.Flags().Changed("page")
	}

	return cmd
}

func buildEventsTable(data map[string]any) string {
	headers := []string{"Event", "When", "Venue", "City", "Audience", "Mapped", "Series"}
	rows := [][]string{}
	for _, value := range asSlice(data["items"]) {
		item := asMap(value)
		series := "-"
		if count := asInt(item["series_count"]); count > 1 {
			series = strconv.Itoa(count) + " dates"
		}
		rows = append(rows, []string{
			asString(item["title"]),
			asString(item["when"]),
			fallbackString(asString(item["venue"]), "-"),
			fallbackString(asString(item["city"]), "-"),
			fallbackString(asString(item["audience"]), "-"),
			boolToYesNo(asBool(item["mapped"])),
			series,
		})
	}
	return output.RenderTable(fmt.Sprintf("Events (%d)", asInt(data["count"])), headers, rows)
}
