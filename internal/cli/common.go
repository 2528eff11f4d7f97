package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/culturamap/cultural-map-cli/internal/domain"
	"github.com/culturamap/cultural-map-cli/internal/model/events"
	"github.com/culturamap/cultural-map-cli/internal/model/hours"
	"github.com/culturamap/cultural-map-cli/internal/service/output"
)

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}

type globalFlags struct {
	Format      string
	Data        string
	EventsFile  string
	Editorials  string
	Experiences string
	Timezone    string
	Now         string
	Output      string
	NoColor     bool
	Verbose     bool
}

const sharedGlobalFlagAnnotation = "cultural_map_shared_global"

func addGlobalFlags(cmd *cobra.Command, flags *globalFlags) {
	addSharedGlobalFlag(cmd, "format", func() {
		cmd.Flags().StringVar(&flags.Format, "format", "table", "Output format: table, json, or yaml.")
	})
	addSharedGlobalFlag(cmd, "data", func() {
		cmd.Flags().StringVar(&flags.Data, "data", "", "Path to the venue dataset JSON file.")
	})
	addSharedGlobalFlag(cmd, "events-file", func() {
		cmd.Flags().StringVar(&flags.EventsFile, "events-file", "", "Path to the aggregated events JSON file.")
	})
	addSharedGlobalFlag(cmd, "editorials", func() {
		cmd.Flags().StringVar(&flags.Editorials, "editorials", "", "Path to the editorial (muse) JSON file.")
	})
	addSharedGlobalFlag(cmd, "experiences", func() {
		cmd.Flags().StringVar(&flags.Experiences, "experiences", "", "Path to the curated experiences JSON file.")
	})
	addSharedGlobalFlag(cmd, "timezone", func() {
		cmd.Flags().StringVar(&flags.Timezone, "timezone", hours.DefaultTimezone, "IANA timezone for hours and event-date evaluation.")
	})
	addSharedGlobalFlag(cmd, "now", func() {
		cmd.Flags().StringVar(&flags.Now, "now", "", "Evaluate open/upcoming state at this RFC3339 instant instead of the wall clock.")
	})
	addSharedGlobalFlag(cmd, "output", func() {
		cmd.Flags().StringVar(&flags.Output, "output", "", "Also write the rendered output to this file.")
	})
	addSharedGlobalFlag(cmd, "no-color", func() {
		cmd.Flags().BoolVar(&flags.NoColor, "no-color", false, "Disable ANSI color codes in table output.")
	})
	addSharedGlobalFlag(cmd, "verbose", func() {
		cmd.Flags().BoolVar(&flags.Verbose, "verbose", false, "Enable verbose output (prints dataset load and join diagnostics).")
	})
}

func addSharedGlobalFlag(cmd *cobra.Command, name string, register func()) {
	if cmd.Flags().Lookup(name) != nil {
		return
	}
	register()
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		return
	}
	if flag.Annotations == nil {
		flag.Annotations = map[string][]string{}
	}
	flag.Annotations[sharedGlobalFlagAnnotation] = []string{"true"}
}

func parseOutputFormat(format string) (output.Format, error) {
	return output.ParseFormat(format)
}

func writeTable(cmd *cobra.Command, text string, outputPath string) error {
	if err := output.WriteOutput(cmd.OutOrStdout(), text, outputPath); err != nil {
		return err
	}
	return nil
}

func writeMachinePayload(cmd *cobra.Command, env output.Envelope, format output.Format, outputPath string) error {
	rendered, err := output.RenderPayload(env, format)
	if err != nil {
		return err
	}
	if err := output.WriteOutput(cmd.OutOrStdout(), rendered, outputPath); err != nil {
		return err
	}
	return nil
}

func emitError(
	cmd *cobra.Command,
	format output.Format,
	asOf time.Time,
	timezone string,
	outputPath string,
	code string,
	message string,
) error {
	if format == output.FormatTable {
		if err := output.WriteOutput(cmd.OutOrStdout(), message, outputPath); err != nil {
			return err
		}
		return &exitError{code: 1}
	}
	env := output.BuildEnvelope(asOf, timezone, nil, []string{}, map[string]any{
		"code":    code,
		"message": message,
	})
	if err := writeMachinePayload(cmd, env, format, outputPath); err != nil {
		return err
	}
	return &exitError{code: 1}
}

// session carries the loaded dataset plus the resolved evaluation clock,
// shared by every command.
type session struct {
	venues   []domain.Venue
	index    events.Index
	now      time.Time
	loc      *time.Location
	timezone string
	provider DataProvider
}

func newSession(cmd *cobra.Command, deps Dependencies, flags globalFlags, format output.Format) (*session, error) {
	timezone := strings.TrimSpace(flags.Timezone)
	if timezone == "" {
		timezone = hours.DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, emitError(cmd, format, time.Now().UTC(), timezone, flags.Output,
			"MAP_INVALID_ARGUMENT", fmt.Sprintf("unknown timezone %q", timezone))
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	if raw := strings.TrimSpace(flags.Now); raw != "" {
		parsed, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			return nil, emitError(cmd, format, now.UTC(), timezone, flags.Output,
				"MAP_INVALID_ARGUMENT", fmt.Sprintf("--now must be RFC3339, got %q", raw))
		}
		now = parsed
	}
	now = now.In(loc)

	if deps.OpenData == nil {
		return nil, emitError(cmd, format, now, timezone, flags.Output,
			"MAP_DATASET_ERROR", "no dataset provider configured")
	}
	provider := deps.OpenData(flags.Data, flags.EventsFile, flags.Editorials, flags.Experiences)

	venues, err := provider.Venues()
	if err != nil {
		return nil, emitError(cmd, format, now, timezone, flags.Output, "MAP_DATASET_ERROR", err.Error())
	}
	allEvents, err := provider.Events()
	if err != nil {
		return nil, emitError(cmd, format, now, timezone, flags.Output, "MAP_DATASET_ERROR", err.Error())
	}
	index := events.BuildIndex(venues, allEvents, loc)

	if flags.Verbose {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[verbose] loaded %d venues, %d events (%d unmatched)\n",
			len(venues), len(index.Events), len(index.Unmatched))
	}

	return &session{
		venues:   venues,
		index:    index,
		now:      now,
		loc:      loc,
		timezone: timezone,
		provider: provider,
	}, nil
}

func (s *session) hoursFn() func(domain.Venue) hours.State {
	return func(v domain.Venue) hours.State {
		return hours.Resolve(v.Hours, s.now, s.loc)
	}
}

func (s *session) eventCountFn(windowDays int) func(int) int {
	return func(idx int) int {
		return events.CountForVenue(s.index.Events, idx, windowDays, s.now, s.loc)
	}
}

func (s *session) envelope(data any, warnings []string) output.Envelope {
	return output.BuildEnvelope(s.now, s.timezone, data, warnings, nil)
}

// ANSI styling for table output; suppressed by --no-color.
const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
)

func colorizeHoursLabel(state hours.State, noColor bool) string {
	label := hours.Label(state)
	if noColor {
		return label
	}
	switch state {
	case hours.StateOpen:
		return ansiGreen + label + ansiReset
	case hours.StateClosed:
		return ansiRed + label + ansiReset
	default:
		return ansiDim + label + ansiReset
	}
}

func hoursCell(state string, noColor bool) string {
	return colorizeHoursLabel(hours.State(state), noColor)
}

func requiredArg(name string) string {
	return fmt.Sprintf("%s is required", name)
}

func fallbackString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func boolToYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
