package cmd

import (
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/umilog/umiseed/internal/iovalidate"
)

// getValidateCmd returns the validate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getValidateCmd() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate [data-dir]",
		Short: "Validate the seed JSON documents",
		Long: `Check the seed JSON documents for consistency before a build.

Fatal problems (duplicate ids, out-of-range coordinates, missing
required fields) are reported as errors and make the command exit
non-zero. Dangling references (a site-species link naming an unknown
site or species) are warnings only, since the build drops them.

The data directory defaults to the configured one.

Examples:
  umiseed validate
  umiseed validate ./SeedData`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runValidate(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return validateCmd
}

func runValidate(_ *cobra.Command, args []string) error {
	dataDir := cfg.Paths.DataDir
	if len(args) > 0 {
		dataDir = args[0]
	}

	report, err := iovalidate.New().Validate(dataDir)
	if err != nil {
		return err
	}

	if report.Failed() {
		return iovalidate.FailedError(len(report.Errors))
	}

	gn.Info("Seed data is valid: <em>%d</em> sites, "+
		"<em>%d</em> species, <em>%d</em> links",
		report.Sites, report.Species, report.Links)
	return nil
}
