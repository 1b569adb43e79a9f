package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jsphweid/mthd/constants"
	"github.com/jsphweid/mthd/db"
	"github.com/jsphweid/mthd/midi"
	"github.com/jsphweid/mthd/model"
	"github.com/jsphweid/mthd/util"
	"github.com/spf13/cobra"
)

var (
	catalogMax    int
	catalogDryRun bool
)

func init() {
	catalogCmd.Flags().IntVar(&catalogMax, "max", 0, "stop after this many files, 0 for all")
	catalogCmd.Flags().BoolVar(&catalogDryRun, "dry-run", false, "print summaries instead of storing them")
	catalogCmd.AddCommand(catalogShowCmd)
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog [dir]",
	Short: "Stores the headers of every MIDI file under dir in DynamoDB",
	Long: `Stores the headers of every MIDI file under dir (default $MEDIA_PATH) in the
DynamoDB table $HEADER_TABLE, keyed by path relative to dir.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := constants.GetMediaDir()
		if len(args) == 1 {
			root = args[0]
		}
		summaries, err := summarizeDir(cmd.OutOrStdout(), root, catalogMax)
		if err != nil {
			return err
		}
		if catalogDryRun {
			for _, s := range summaries {
				if err := printSummary(cmd.OutOrStdout(), s, true); err != nil {
					return err
				}
			}
			return nil
		}
		catalog, err := db.NewCatalogFromEnv()
		if err != nil {
			return err
		}
		if err := catalog.PutHeaderSummaries(summaries); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %v headers\n", len(summaries))
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <path>...",
	Short: "Prints stored headers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := db.NewCatalogFromEnv()
		if err != nil {
			return err
		}
		found, err := catalog.GetHeaderSummaries(args)
		if err != nil {
			return err
		}
		for _, path := range util.GetKeys(found) {
			if err := printSummary(cmd.OutOrStdout(), found[path], false); err != nil {
				return err
			}
		}
		return nil
	},
}

// summarizeDir skips files whose header cannot be read.
func summarizeDir(w io.Writer, root string, maxNum int) ([]model.HeaderSummary, error) {
	paths, err := util.GatherAllMidiPaths(root, maxNum)
	if err != nil {
		return nil, err
	}
	var res []model.HeaderSummary
	for i, path := range paths {
		fmt.Fprintf(w, "Processing %v of %v midi files\n", i+1, len(paths))
		f, err := midi.Open(path)
		if err != nil {
			fmt.Fprintf(w, "Skipping %v because: %v\n", path, err)
			continue
		}
		s, err := f.Summary()
		if err != nil {
			fmt.Fprintf(w, "Skipping %v because: %v\n", path, err)
			continue
		}
		if rel, err := filepath.Rel(root, path); err == nil {
			s.Path = filepath.ToSlash(rel)
		}
		res = append(res, s)
	}
	return res, nil
}
