package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/umilog/umiseed/internal/iofetch"
)

// getFetchCmd returns the fetch command with its source subcommands.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getFetchCmd() *cobra.Command {
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch seed data from public APIs",
		Long: `Scrape taxonomy and photo data from public marine APIs.

Fetchers are rate-limited (about one request per second by default)
and checkpointed: progress is appended to a log under the cache
directory after every record, so an interrupted run resumes where it
left off instead of refetching. Ctrl-C exits cleanly.

Sources:
  worms        family taxonomy from the World Register of Marine Species
  inaturalist  licensed species photos from iNaturalist observations
  wikimedia    fallback species photos from Wikimedia Commons`,
	}

	fetchCmd.AddCommand(
		getFetchWormsCmd(),
		getFetchINaturalistCmd(),
		getFetchWikimediaCmd(),
	)
	return fetchCmd
}

func getFetchWormsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worms",
		Short: "Fetch family taxonomy from WoRMS",
		Long: `Resolve the curated list of diving-relevant families against the
World Register of Marine Species and write families_catalog.json
into the seed data directory.

Families unknown to WoRMS are recorded as misses in the checkpoint
log so they are not retried on resume.

Examples:
  umiseed fetch worms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runFetch(func(ctx context.Context) error {
				return iofetch.NewWorms(cfg).Fetch(ctx)
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func getFetchINaturalistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inaturalist",
		Short: "Fetch licensed species photos from iNaturalist",
		Long: `Resolve each species of the catalog to an iNaturalist taxon and
collect Creative-Commons licensed photos from research-grade
observations. Writes species_images_inaturalist.json into the seed
data directory.

Only CC-licensed photos are kept; the number of photos per species
is capped by fetch.photos_per_species.

Examples:
  umiseed fetch inaturalist`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runFetch(func(ctx context.Context) error {
				return iofetch.NewINaturalist(cfg).Fetch(ctx)
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func getFetchWikimediaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wikimedia",
		Short: "Fetch fallback species photos from Wikimedia Commons",
		Long: `Search Wikimedia Commons for bitmap photos of each catalog species,
scientific name first and common name as fallback. Writes
species_images_wikimedia.json into the seed data directory.

Commons is the fallback image source: when both manifests exist the
build prefers iNaturalist photos.

Examples:
  umiseed fetch wikimedia`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runFetch(func(ctx context.Context) error {
				return iofetch.NewWikimedia(cfg).Fetch(ctx)
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func runFetch(fn func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := fn(ctx)
	if ctx.Err() != nil {
		gn.Warn("Interrupted. Progress is checkpointed, " +
			"rerun the command to resume.")
	}
	return err
}
