package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jsphweid/mthd/midi"
	"github.com/jsphweid/mthd/model"
	"github.com/spf13/cobra"
)

var inspectJSON bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print the header as JSON")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Prints the header of a MIDI file",
	Long:  `Prints format, track count, time division and tick resolution of a MIDI file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd.OutOrStdout(), args[0], inspectJSON)
	},
}

func inspect(w io.Writer, path string, asJSON bool) error {
	f, err := midi.Open(path)
	if err != nil {
		return err
	}
	s, err := f.Summary()
	if err != nil {
		return err
	}
	return printSummary(w, s, asJSON)
}

func printSummary(w io.Writer, s model.HeaderSummary, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	fmt.Fprintf(w, "path: %v\n", s.Path)
	fmt.Fprintf(w, "format: %v\n", s.Format)
	fmt.Fprintf(w, "tracks: %v\n", s.TrackCount)
	fmt.Fprintf(w, "division: %v\n", s.DivisionKind)
	if s.DivisionKind == "frames_per_second" {
		fmt.Fprintf(w, "frame rate: %v\n", s.FrameRate)
		fmt.Fprintf(w, "ticks per frame: %v\n", s.TicksPerFrame)
	} else {
		fmt.Fprintf(w, "ticks per beat: %v\n", s.TicksPerBeat)
	}
	fmt.Fprintf(w, "tick resolution: %v\n", s.TickResolution)
	return nil
}
