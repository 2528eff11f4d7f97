package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/culturamap/cultural-map-cli/internal/domain"
	"github.com/culturamap/cultural-map-cli/internal/model/explore"
	"github.com/culturamap/cultural-map-cli/internal/model/filterstate"
	"github.com/culturamap/cultural-map-cli/internal/model/geo"
	"github.com/culturamap/cultural-map-cli/internal/model/mapfilter"
	"github.com/culturamap/cultural-map-cli/internal/service/output"
)

func newExploreCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var categories []string
	var city string
	var query string
	var openNow bool
	var eventsMode bool
	var experienceID string
	var windowDays int
	var sortByDistance bool
	var lat float64
	var latSet bool
	var lon float64
	var lonSet bool
	var limit int
	var limitSet bool
	var offset int
	var offsetSet bool
	var page int
	var pageSet bool
	var showMapFilter bool

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "List venues matching the active filters, with banner and overlay state.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			session, err := newSession(cmd, deps, flags, format)
			if err != nil {
				return err
			}
			if sortByDistance && (!latSet || !lonSet) {
				return fmt.Errorf("--sort-by-distance requires both --lat and --lon")
			}
			if latSet != lonSet {
				return fmt.Errorf("both --lat and --lon must be provided together")
			}

			state := domain.FilterState{
				ActiveCategories:   domain.NewCategorySet(categories...),
				Query:              query,
				CityFilter:         city,
				OpenNowMode:        openNow,
				Events14dMode:      eventsMode,
				EventWindowDays:    windowDays,
				ActiveExperienceID: experienceID,
			}
			hoursFn := session.hoursFn()
			eventCountFn := session.eventCountFn(state.WindowDays())

			entries := explore.FilteredData(session.venues, state, hoursFn, eventCountFn)

			var origin *domain.Location
			if latSet && lonSet {
				origin = &domain.Location{Lng: lon, Lat: lat}
			}
			if sortByDistance && origin != nil {
				sort.SliceStable(entries, func(i, j int) bool {
					return geo.Compare(entryDistance(entries[i], origin), entryDistance(entries[j], origin)) < 0
				})
			}

			rows := make([]any, 0, len(entries))
			for _, entry := range entries {
				row := map[string]any{
					"idx":       entry.Index,
					"name":      entry.Venue.Name,
					"category":  entry.Venue.Category,
					"city":      entry.Venue.City,
					"state":     string(hoursFn(entry.Venue)),
					"events":    eventCountFn(entry.Index),
					"has_hours": len(entry.Venue.Hours) > 0,
				}
				if miles := entryDistance(entry, origin); miles != nil {
					row["distance"] = geo.FormatMiles(*miles)
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

			banner := filterstate.BannerState(session.venues, state, hoursFn, eventCountFn)
			if banner != nil {
				data["banner"] = map[string]any{
					"count":     banner.Count,
					"label":     banner.Label,
					"dot_color": banner.DotColor,
				}
			}
			overlay := filterstate.ResultsOverlay(state.ActiveCategories, len(entries), false, state.ActiveExperienceID != "")
			if overlay != nil {
				data["overlay"] = map[string]any{
					"category": overlay.Category,
					"count":    overlay.Count,
				}
			}
			if showMapFilter {
				if predicate := mapfilter.Predicate(state.ActiveCategories, openNow, eventsMode); predicate != nil {
					data["map_filter"] = predicate
				}
				candidates := mapfilter.FitCandidates(session.venues, state.ActiveCategories, openNow, eventsMode, hoursFn, eventCountFn)
				if sw, ne, ok := mapfilter.Bounds(candidates); ok {
					data["fit_bounds"] = map[string]any{
						"sw": []float64{sw.Lng, sw.Lat},
						"ne": []float64{ne.Lng, ne.Lat},
					}
				}
			}

			if format == output.FormatTable {
				return writeTable(cmd, buildExploreTable(data, flags.NoColor), flags.Output)
			}
			return writeMachinePayload(cmd, session.envelope(data, nil), format, flags.Output)
		},
	}

	cmd.Flags().StringArrayVar(&categories, "category", nil, "Category filter (repeatable).")
	cmd.Flags().StringVar(&city, "city", "", "Only venues in this city.")
	cmd.Flags().StringVar(&query, "query", "", "Free-text match on name, city, description, or category.")
	cmd.Flags().BoolVar(&openNow, "open-now", false, "Exclude venues that are currently closed.")
	cmd.Flags().BoolVar(&eventsMode, "events", false, "Only venues with events in the rolling window, busiest first.")
	cmd.Flags().StringVar(&experienceID, "experience", "", "Active guided experience; suppresses the results overlay.")
	cmd.Flags().IntVar(&windowDays, "event-window-days", 0, "Rolling event window in days (default 14).")
	cmd.Flags().BoolVar(&sortByDistance, "sort-by-distance", false, "Sort by distance from --lat/--lon.")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude for distance display and sorting.")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude for distance display and sorting.")
	cmd.Flags().BoolVar(&showMapFilter, "map-filter", false, "Include the map-layer filter expression in machine output.")
	cmd.Flags().IntVar(&limit, "limit", 0, "Limit returned rows.")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset returned rows.")
	cmd.Flags().IntVar(&page, "page", 0, "1-based page number (requires --limit; cannot be combined with --offset).")
	addGlobalFlags(cmd, &flags)
	cmd.PreRun = func(cmd *cobra.Command, _ []string) {
		latSet = cmd.Flags().Changed("lat")
		lonSet = cmd.Flags().Changed("lon")
		limitSet = cmd.Flags().Changed("limit")
		offsetSet = cmd.Flags().Changed("offset")
		pageSet = cmd.Flags().Changed("page")
	}

	return cmd
}

func entryDistance(entry explore.Entry, origin *domain.Location) *float64 {
	if origin == nil {
		return nil
	}
	coords, ok := entry.Venue.Coordinates()
	if !ok {
		return nil
	}
	miles, ok := geo.DistanceMiles(origin, &coords)
	if !ok {
		return nil
	}
	return &miles
}

func buildExploreTable(data map[string]any, noColor bool) string {
	headers := []string{"Idx", "Venue", "Category", "City", "Hours", "Events", "Distance"}
	rows := [][]string{}
	for _, value := range asSlice(data["items"]) {
		item := asMap(value)
		distance := asString(item["distance"])
		if distance == "" {
			distance = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(asInt(item["idx"])),
			asString(item["name"]),
			asString(item["category"]),
			asString(item["city"]),
			hoursCell(asString(item["state"]), noColor),
			strconv.Itoa(asInt(item["events"])),
			distance,
		})
	}

	title := "Explore"
	if banner := asMap(data["banner"]); banner != nil {
		title = fmt.Sprintf("Explore: %s (%d)", asString(banner["label"]), asInt(banner["count"]))
	}
	table := output.RenderTable(title, headers, rows)
	if overlay := asMap(data["overlay"]); overlay != nil {
		table += fmt.Sprintf("\n\n%d places in %s", asInt(overlay["count"]), asString(overlay["category"]))
	}
	return table
}
