package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mthd",
	Short: "Reads and edits MIDI header chunks",
	Long: `mthd reads and edits the MThd chunk of standard MIDI files: format,
track count and time division (ticks per beat or SMPTE frames).`,
	SilenceUsage: true,
}

func Execute() {
	cobra.CheckErr(rootCmd.ExecuteContext(context.Background()))
}
