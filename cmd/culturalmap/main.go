package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/culturamap/cultural-map-cli/internal/cli"
	"github.com/culturamap/cultural-map-cli/internal/dataset"
)

var version = "dev"

func main() {
	// Optional; CULTURALMAP_* path overrides may live in a local .env.
	_ = godotenv.Load()

	deps := cli.Dependencies{
		OpenData: func(venues, events, editorials, experiences string) cli.DataProvider {
			return dataset.NewStore(dataset.Paths{
				Venues:      venues,
				Events:      events,
				Editorials:  editorials,
				Experiences: experiences,
			})
		},
		Version: version,
		Now:     time.Now,
	}

	exitCode := cli.Execute(context.Background(), os.Args[1:], deps, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}
