package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/mthd/midi"
	"github.com/spf13/cobra"
)

var resolutionTempo uint32

func init() {
	resolutionCmd.Flags().Uint32Var(&resolutionTempo, "tempo", 0, "microseconds per beat, 0 for the 120 bpm default")
	rootCmd.AddCommand(resolutionCmd)
}

var resolutionCmd = &cobra.Command{
	Use:   "resolution <file>",
	Short: "Prints the duration of one tick in microseconds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolution(cmd.OutOrStdout(), args[0], resolutionTempo)
	},
}

func resolution(w io.Writer, path string, tempo uint32) error {
	f, err := midi.Open(path)
	if err != nil {
		return err
	}
	res, err := f.Header.TickResolution(tempo)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v\n", res)
	return nil
}
