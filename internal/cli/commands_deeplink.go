package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/culturamap/cultural-map-cli/internal/deeplink"
	"github.com/culturamap/cultural-map-cli/internal/service/output"
)

func newDeeplinkCommand(deps Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deeplink",
		Short: "Encode and decode shareable map URLs.",
	}
	cmd.AddCommand(newDeeplinkEncodeCommand(deps))
	cmd.AddCommand(newDeeplinkDecodeCommand(deps))
	return cmd
}

func newDeeplinkEncodeCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var state deeplink.State
	var idx int

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a shareable query string from filter and selection flags.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("idx") {
				if idx < 0 {
					return fmt.Errorf("--idx must be >= 0")
				}
				state.Idx = &idx
			}
			encoded := state.Encode()

			if format == output.FormatTable {
				return writeTable(cmd, encoded, flags.Output)
			}
			env := output.BuildEnvelope(deeplinkClock(deps), flags.Timezone, map[string]any{
				"query": encoded,
			}, nil, nil)
			return writeMachinePayload(cmd, env, format, flags.Output)
		},
	}

	cmd.Flags().StringArrayVar(&state.Cats, "category", nil, "Active category (repeatable).")
	cmd.Flags().StringVar(&state.Open, "open", "", "Open-now toggle value, usually 1.")
	cmd.Flags().StringVar(&state.Events14d, "events14d", "", "Events-window toggle value, usually 1.")
	cmd.Flags().StringVar(&state.Experience, "experience", "", "Active experience id.")
	cmd.Flags().StringVar(&state.Itinerary, "itinerary", "", "Itinerary id.")
	cmd.Flags().StringVar(&state.Muse, "muse", "", "Editorial issue id.")
	cmd.Flags().StringVar(&state.PID, "pid", "", "Stable venue place id.")
	cmd.Flags().StringVar(&state.Event, "event", "", "Selected event id.")
	cmd.Flags().StringVar(&state.EventDate, "event-date", "", "Event date filter: all, today, weekend, or 14d.")
	cmd.Flags().StringVar(&state.EventCat, "event-cat", "", "Event category filter.")
	cmd.Flags().StringVar(&state.EventAudience, "event-audience", "", "Event audience filter.")
	cmd.Flags().StringVar(&state.Trip, "trip", "", "Trip plan id.")
	cmd.Flags().IntVar(&idx, "idx", 0, "Selected venue dataset index.")
	addGlobalFlags(cmd, &flags)

	return cmd
}

func newDeeplinkDecodeCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "decode <query>",
		Short: "Parse a shareable query string back into its filter fields.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			state := deeplink.Decode(args[0])

			data := map[string]any{}
			if len(state.Cats) > 0 {
				data["cats"] = state.Cats
			}
			for key, value := range map[string]string{
				"open":          state.Open,
				"events14d":     state.Events14d,
				"experience":    state.Experience,
				"itinerary":     state.Itinerary,
				"muse":          state.Muse,
				"pid":           state.PID,
				"event":         state.Event,
				"eventDate":     state.EventDate,
				"eventCat":      state.EventCat,
				"eventAudience": state.EventAudience,
				"trip":          state.Trip,
			} {
				if value != "" {
					data[key] = value
				}
			}
			if state.Idx != nil {
				data["idx"] = *state.Idx
			}

			if format == output.FormatTable {
				return writeTable(cmd, buildDeeplinkTable(state), flags.Output)
			}
			env := output.BuildEnvelope(deeplinkClock(deps), flags.Timezone, data, nil, nil)
			return writeMachinePayload(cmd, env, format, flags.Output)
		},
	}

	addGlobalFlags(cmd, &flags)
	return cmd
}

func buildDeeplinkTable(state deeplink.State) string {
	rows := [][]string{}
	add := func(field, value string) {
		if value != "" {
			rows = append(rows, []string{field, value})
		}
	}
	add("cats", strings.Join(state.Cats, ", "))
	add("open", state.Open)
	add("events14d", state.Events14d)
	add("experience", state.Experience)
	add("itinerary", state.Itinerary)
	add("muse", state.Muse)
	add("pid", state.PID)
	add("event", state.Event)
	add("eventDate", state.EventDate)
	add("eventCat", state.EventCat)
	add("eventAudience", state.EventAudience)
	add("trip", state.Trip)
	if state.Idx != nil {
		add("idx", fmt.Sprintf("%d", *state.Idx))
	}
	if len(rows) == 0 {
		return "No recognized fields."
	}
	return output.RenderTable("Deep link", []string{"Field", "Value"}, rows)
}

// deeplinkClock keeps codec commands independent of the dataset session.
func deeplinkClock(deps Dependencies) time.Time {
	if deps.Now != nil {
		return deps.Now()
	}
	return time.Now()
}
