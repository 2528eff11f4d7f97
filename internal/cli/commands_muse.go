package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/culturamap/cultural-map-cli/internal/service/output"
)

func newMuseCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "muse",
		Short: "List editorial issues with their deep links and pull quotes.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			session, err := newSession(cmd, deps, flags, format)
			if err != nil {
				return err
			}
			editorials, err := session.provider.Editorials()
			if err != nil {
				return emitError(cmd, format, session.now, session.timezone, flags.Output,
					"MAP_DATASET_ERROR", err.Error())
			}

			rows := make([]any, 0, len(editorials))
			for _, editorial := range editorials {
				links := make([]any, 0, len(editorial.DeepLinks))
				for _, link := range editorial.DeepLinks {
					links = append(links, map[string]any{
						"label": link.Label,
						"url":   link.URL,
					})
				}
				rows = append(rows, map[string]any{
					"id":     editorial.ID,
					"title":  editorial.Title,
					"reader": editorial.HeyzineURL,
					"links":  links,
					"quotes": len(editorial.Quotes),
				})
			}
			data := map[string]any{"items": rows, "count": len(rows)}

			if format == output.FormatTable {
				return writeTable(cmd, buildMuseTable(data), flags.Output)
			}
			return writeMachinePayload(cmd, session.envelope(data, nil), format, flags.Output)
		},
	}

	addGlobalFlags(cmd, &flags)
	return cmd
}

func buildMuseTable(data map[string]any) string {
	headers := []string{"Id", "Title", "Links", "Quotes", "Reader"}
	rows := [][]string{}
	for _, value := range asSlice(data["items"]) {
		item := asMap(value)
		rows = append(rows, []string{
			asString(item["id"]),
			asString(item["title"]),
			strconv.Itoa(len(asSlice(item["links"]))),
			strconv.Itoa(asInt(item["quotes"])),
			fallbackString(asString(item["reader"]), "-"),
		})
	}
	return output.RenderTable("Muse issues", headers, rows)
}
