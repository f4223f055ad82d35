package cmd

import (
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/umilog/umiseed/internal/iomerge"
)

// getMergeCmd returns the merge command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getMergeCmd() *cobra.Command {
	mergeCmd := &cobra.Command{
		Use:   "merge <output.json> <input.json>...",
		Short: "Merge site datasets into one deduplicated file",
		Long: `Combine several site JSON files into a single deduplicated dataset.

Sites are considered duplicates when the lowercased name and the
coordinates rounded to 4 decimal places match. The first occurrence
wins; input order is preserved. Sites without an id get a
deterministic one derived from that key, so re-running the merge
yields identical output.

Missing input files are skipped with a warning.

Examples:
  umiseed merge sites.json curated.json osm_export.json wikidata.json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runMerge(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return mergeCmd
}

func runMerge(_ *cobra.Command, args []string) error {
	outPath := args[0]
	inPaths := args[1:]

	n, err := iomerge.New().Merge(outPath, inPaths)
	if err != nil {
		return err
	}

	gn.Info("Wrote <em>%d</em> unique sites to <em>%s</em>", n, outPath)
	return nil
}
