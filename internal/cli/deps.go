package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/culturamap/cultural-map-cli/internal/domain"
)

var unknownCommandPattern = regexp.MustCompile(`unknown command "([^"]+)"`)

// DataProvider loads the dataset files backing every command.
type DataProvider interface {
	Venues() ([]domain.Venue, error)
	Events() ([]domain.Event, error)
	Editorials() ([]domain.Editorial, error)
	Experiences() ([]domain.Experience, error)
}

// DataOpener builds a provider for the resolved file paths. Empty paths
// fall back to env vars and bundled defaults.
type DataOpener func(venues, events, editorials, experiences string) DataProvider

// Dependencies wires runtime services.
type Dependencies struct {
	OpenData DataOpener
	Version  string
	Now      func() time.Time
}

var errVersionShown = fmt.Errorf("version shown")

// Execute runs the CLI with injected dependencies.
func Execute(ctx context.Context, args []string, deps Dependencies, stdout io.Writer, stderr io.Writer) int {
	cmd := NewRootCommand(deps)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil || err == errVersionShown {
		return 0
	}
	var controlled *exitError
	if errors.As(err, &controlled) {
		return controlled.code
	}

	if matches := unknownCommandPattern.FindStringSubmatch(err.Error()); len(matches) > 1 {
		_, _ = fmt.Fprintf(stderr, "No such command '%s'\n", matches[1])
		return 2
	}

	if msg := err.Error(); msg != "" {
		_, _ = fmt.Fprintln(stderr, msg)
	}
	return 1
}
