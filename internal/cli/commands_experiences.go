package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/culturamap/cultural-map-cli/internal/model/experience"
	"github.com/culturamap/cultural-map-cli/internal/service/output"
)

func newExperiencesCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "experiences [id]",
		Short: "List curated experiences, or resolve one experience's stops against the dataset.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			session, err := newSession(cmd, deps, flags, format)
			if err != nil {
				return err
			}
			experiences, err := session.provider.Experiences()
			if err != nil {
				return emitError(cmd, format, session.now, session.timezone, flags.Output,
					"MAP_DATASET_ERROR", err.Error())
			}

			if len(args) == 0 {
				rows := make([]any, 0, len(experiences))
				for _, exp := range experiences {
					rows = append(rows, map[string]any{
						"id":    exp.ID,
						"title": exp.Title,
						"stops": len(exp.Stops),
					})
				}
				data := map[string]any{"items": rows, "count": len(rows)}
				if format == output.FormatTable {
					return writeTable(cmd, buildExperiencesTable(data), flags.Output)
				}
				return writeMachinePayload(cmd, session.envelope(data, nil), format, flags.Output)
			}

			exp, ok := experience.ByID(experiences, args[0])
			if !ok {
				return emitError(cmd, format, session.now, session.timezone, flags.Output,
					"MAP_NOT_FOUND", fmt.Sprintf("no experience with id %q", args[0]))
			}
			resolved := experience.ResolveStops(exp, session.venues)

			hoursFn := session.hoursFn()
			stops := make([]any, 0, len(resolved))
			for _, stop := range resolved {
				stops = append(stops, map[string]any{
					"idx":   stop.Index,
					"venue": stop.Venue.Name,
					"city":  stop.Venue.City,
					"state": string(hoursFn(stop.Venue)),
					"note":  stop.Stop.Note,
				})
			}
			warnings := []string{}
			if dropped := len(exp.Stops) - len(resolved); dropped > 0 {
				warnings = append(warnings, fmt.Sprintf("%d stops could not be matched to a venue", dropped))
			}
			data := map[string]any{
				"id":          exp.ID,
				"title":       exp.Title,
				"description": exp.Description,
				"stops":       stops,
				"count":       len(stops),
			}

			if format == output.FormatTable {
				return writeTable(cmd, buildExperienceDetail(data, flags.NoColor), flags.Output)
			}
			return writeMachinePayload(cmd, session.envelope(data, warnings), format, flags.Output)
		},
	}

	addGlobalFlags(cmd, &flags)
	return cmd
}

func buildExperiencesTable(data map[string]any) string {
	headers := []string{"Id", "Title", "Stops"}
	rows := [][]string{}
	for _, value := range asSlice(data["items"]) {
		item := asMap(value)
		rows = append(rows, []string{
			asString(item["id"]),
			asString(item["title"]),
			strconv.Itoa(asInt(item["stops"])),
		})
	}
	return output.RenderTable("Experiences", headers, rows)
}

func buildExperienceDetail(data map[string]any, noColor bool) string {
	title := fmt.Sprintf("%s (%s)", asString(data["title"]), asString(data["id"]))
	headers := []string{"#", "Venue", "City", "Hours", "Note"}
	rows := [][]string{}
	for i, value := range asSlice(data["stops"]) {
		item := asMap(value)
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			asString(item["venue"]),
			asString(item["city"]),
			hoursCell(asString(item["state"]), noColor),
			fallbackString(asString(item["note"]), "-"),
		})
	}
	table := output.RenderTable(title, headers, rows)
	if description := asString(data["description"]); description != "" {
		return description + "\n\n" + table
	}
	return table
}
