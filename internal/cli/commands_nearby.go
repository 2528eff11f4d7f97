package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/culturamap/cultural-map-cli/internal/domain"
	"github.com/culturamap/cultural-map-cli/internal/model/geo"
	"github.com/culturamap/cultural-map-cli/internal/service/output"
)

func newNearbyCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var lat float64
	var lon float64
	var limit int
	var limitSet bool

	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List venues sorted by distance from a point.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
				return fmt.Errorf("%s", requiredArg("--lat/--lon"))
			}
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			session, err := newSession(cmd, deps, flags, format)
			if err != nil {
				return err
			}

			origin := domain.Location{Lng: lon, Lat: lat}
			type nearbyRow struct {
				idx      int
				venue    domain.Venue
				distance *float64
			}
			rows := make([]nearbyRow, 0, len(session.venues))
			for idx, venue := range session.venues {
				row := nearbyRow{idx: idx, venue: venue}
				if coords, ok := venue.Coordinates(); ok {
					if miles, ok := geo.DistanceMiles(&origin, &coords); ok {
						row.distance = &miles
					}
				}
				rows = append(rows, row)
			}
			// Venues without coordinates sort last, in dataset order.
			sort.SliceStable(rows, func(i, j int) bool {
				return geo.Compare(rows[i].distance, rows[j].distance) < 0
			})
			if limitSet && limit >= 0 && limit < len(rows) {
				rows = rows[:limit]
			}

			hoursFn := session.hoursFn()
			items := make([]any, 0, len(rows))
			for _, row := range rows {
				item := map[string]any{
					"idx":      row.idx,
					"name":     row.venue.Name,
					"category": row.venue.Category,
					"city":     row.venue.City,
					"state":    string(hoursFn(row.venue)),
				}
				if row.distance != nil {
					item["miles"] = *row.distance
					item["distance"] = geo.FormatMiles(*row.distance)
				}
				items = append(items, item)
			}
			data := map[string]any{"items": items, "count": len(items)}

			if format == output.FormatTable {
				return writeTable(cmd, buildNearbyTable(data, flags.NoColor), flags.Output)
			}
			return writeMachinePayload(cmd, session.envelope(data, nil), format, flags.Output)
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude of the origin point.")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude of the origin point.")
	cmd.Flags().IntVar(&limit, "limit", 0, "Limit returned rows.")
	addGlobalFlags(cmd, &flags)
	cmd.PreRun = func(cmd *cobra.Command, _ []string) {
		limitSet = cmd.Flags().Changed("limit")
	}

	return cmd
}

func buildNearbyTable(data map[string]any, noColor bool) string {
	headers := []string{"Idx", "Venue", "Category", "City", "Hours", "Distance"}
	rows := [][]string{}
	for _, value := range asSlice(data["items"]) {
		item := asMap(value)
		rows = append(rows, []string{
			strconv.Itoa(asInt(item["idx"])),
			asString(item["name"]),
			asString(item["category"]),
			asString(item["city"]),
			hoursCell(asString(item["state"]), noColor),
			fallbackString(asString(item["distance"]), "-"),
		})
	}
	return output.RenderTable("Nearby", headers, rows)
}
