package cmd

import (
	"errors"
	"io"

	"github.com/jsphweid/mthd/midi"
	"github.com/jsphweid/mthd/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	setFormat        uint16
	setTracks        uint16
	setTicks         uint16
	setFrameRate     float64
	setTicksPerFrame uint16
	setJSON          bool
)

func addHeaderFlags(flags *pflag.FlagSet, format, tracks, ticks *uint16, frameRate *float64, ticksPerFrame *uint16) {
	flags.Uint16Var(format, "format", 1, "MIDI format: 0, 1 or 2")
	flags.Uint16Var(tracks, "tracks", 1, "number of tracks")
	flags.Uint16Var(ticks, "ticks", 480, "ticks per beat")
	flags.Float64Var(frameRate, "smpte-rate", 0, "SMPTE frame rate: 24, 25, 29, 29.97 or 30")
	flags.Uint16Var(ticksPerFrame, "ticks-per-frame", 0, "ticks per SMPTE frame, 0 to 255")
}

func init() {
	addHeaderFlags(setCmd.Flags(), &setFormat, &setTracks, &setTicks, &setFrameRate, &setTicksPerFrame)
	setCmd.Flags().BoolVar(&setJSON, "json", false, "print the new header as JSON")
	rootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set <file>",
	Short: "Edits the header of a MIDI file in place",
	Long: `Edits the header of a MIDI file in place. Only the flags given are changed.
--ticks and --smpte-rate/--ticks-per-frame switch the time division kind.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := editFromFlags(cmd.Flags())
		if e.IsEmpty() {
			return errors.New("nothing to set")
		}
		return set(cmd.OutOrStdout(), args[0], e, setJSON)
	},
}

func editFromFlags(flags *pflag.FlagSet) model.HeaderEdit {
	var e model.HeaderEdit
	if flags.Changed("format") {
		e.Format = &setFormat
	}
	if flags.Changed("tracks") {
		e.TrackCount = &setTracks
	}
	if flags.Changed("ticks") {
		e.TicksPerBeat = &setTicks
	}
	if flags.Changed("smpte-rate") {
		e.FrameRate = &setFrameRate
	}
	if flags.Changed("ticks-per-frame") {
		e.TicksPerFrame = &setTicksPerFrame
	}
	return e
}

func set(w io.Writer, path string, e model.HeaderEdit, asJSON bool) error {
	f, err := midi.Open(path)
	if err != nil {
		return err
	}
	if err := midi.ApplyEdit(f.Header, e); err != nil {
		return err
	}
	if err := f.Save(); err != nil {
		return err
	}
	s, err := f.Summary()
	if err != nil {
		return err
	}
	return printSummary(w, s, asJSON)
}
