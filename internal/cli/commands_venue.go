package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/culturamap/cultural-map-cli/internal/domain"
	"github.com/culturamap/cultural-map-cli/internal/model/events"
	"github.com/culturamap/cultural-map-cli/internal/model/geo"
	"github.com/culturamap/cultural-map-cli/internal/model/hours"
	"github.com/culturamap/cultural-map-cli/internal/service/output"
)

func newVenueCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var windowDays int
	var lat float64
	var latSet bool
	var lon float64
	var lonSet bool

	cmd := &cobra.Command{
		Use:   "venue <idx>",
		Short: "Show one venue: hours state, today's schedule, and upcoming events.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			session, err := newSession(cmd, deps, flags, format)
			if err != nil {
				return err
			}
			if latSet != lonSet {
				return fmt.Errorf("both --lat and --lon must be provided together")
			}

			idx, err := strconv.Atoi(args[0])
			if err != nil || idx < 0 {
				return fmt.Errorf("venue index must be a non-negative integer, got %q", args[0])
			}
			if idx >= len(session.venues) {
				return emitError(cmd, format, session.now, session.timezone, flags.Output,
					"MAP_NOT_FOUND", fmt.Sprintf("no venue at index %d (dataset has %d)", idx, len(session.venues)))
			}
			venue := session.venues[idx]

			if windowDays <= 0 {
				windowDays = domain.DefaultEventWindowDays
			}
			state := session.hoursFn()(venue)
			upcoming := events.UpcomingForVenue(session.index.Events, idx, windowDays, session.now, session.loc)

			eventRows := make([]any, 0, len(upcoming))
			for _, event := range upcoming {
				eventRows = append(eventRows, map[string]any{
					"id":    event.ID,
					"title": event.Title,
					"when":  events.FormatDateRange(event, session.loc),
				})
			}

			data := map[string]any{
				"idx":         idx,
				"name":        venue.Name,
				"category":    venue.Category,
				"city":        venue.FormatCity(),
				"address":     venue.Address,
				"description": venue.FormatDescription(),
				"phone":       venue.FormatPhone(),
				"website":     venue.Website,
				"state":       string(state),
				"today":       fallbackString(hours.TodayDisplay(venue.Hours, session.now, session.loc), "-"),
				"events":      eventRows,
				"event_count": len(upcoming),
			}
			if venue.OriginalCategory != "" {
				data["original_category"] = venue.OriginalCategory
			}
			if latSet && lonSet {
				origin := domain.Location{Lng: lon, Lat: lat}
				if coords, ok := venue.Coordinates(); ok {
					if miles, ok := geo.DistanceMiles(&origin, &coords); ok {
						data["distance"] = geo.FormatMiles(miles)
					}
				}
			}

			if format == output.FormatTable {
				return writeTable(cmd, buildVenueDetail(data, flags.NoColor), flags.Output)
			}
			return writeMachinePayload(cmd, session.envelope(data, nil), format, flags.Output)
		},
	}

	cmd.Flags().IntVar(&windowDays, "event-window-days", 0, "Rolling event window in days (default 14).")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude for distance display.")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude for distance display.")
	addGlobalFlags(cmd, &flags)
	cmd.PreRun = func(cmd *cobra.Command, _ []string) {
		latSet = cmd.Flags().Changed("lat")
		lonSet = cmd.Flags().Changed("lon")
	}

	return cmd
}

func buildVenueDetail(data map[string]any, noColor bool) string {
	lines := []string{
		fmt.Sprintf("%s (#%d)", asString(data["name"]), asInt(data["idx"])),
		"Category: " + asString(data["category"]),
		"City: " + fallbackString(asString(data["city"]), "-"),
		"Address: " + fallbackString(asString(data["address"]), "-"),
		"Hours: " + hoursCell(asString(data["state"]), noColor),
		"Today: " + asString(data["today"]),
	}
	if original := asString(data["original_category"]); original != "" {
		lines = append(lines, "Listed as: "+original)
	}
	if phone := asString(data["phone"]); phone != "" {
		lines = append(lines, "Phone: "+phone)
	}
	if website := asString(data["website"]); website != "" {
		lines = append(lines, "Website: "+website)
	}
	if distance := asString(data["distance"]); distance != "" {
		lines = append(lines, "Distance: "+distance)
	}
	if description := asString(data["description"]); description != "" {
		lines = append(lines, "", description)
	}

	text := ""
	for i, line := range lines {
		if i > 0 {
			text += "\n"
		}
		text += line
	}

	eventRows := asSlice(data["events"])
	if len(eventRows) == 0 {
		return text + "\n\nNo upcoming events in the window."
	}
	rows := [][]string{}
	for _, value := range eventRows {
		item := asMap(value)
		rows = append(rows, []string{asString(item["title"]), asString(item["when"])})
	}
	return text + "\n\n" + output.RenderTable(
		fmt.Sprintf("Upcoming events (%d)", len(eventRows)),
		[]string{"Event", "When"},
		rows,
	)
}
