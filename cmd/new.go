package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/mthd/header"
	"github.com/jsphweid/mthd/midi"
	"github.com/jsphweid/mthd/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	newFormat        uint16
	newTracks        uint16
	newTicks         uint16
	newFrameRate     float64
	newTicksPerFrame uint16
	newForce         bool
)

func init() {
	addHeaderFlags(newCmd.Flags(), &newFormat, &newTracks, &newTicks, &newFrameRate, &newTicksPerFrame)
	newCmd.Flags().BoolVar(&newForce, "force", false, "overwrite an existing file")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Creates a MIDI file with empty tracks",
	Long: `Creates a MIDI file with the given header and one empty track chunk per
declared track. SMPTE timing is used when --smpte-rate is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := divisionFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		return create(cmd.OutOrStdout(), args[0], newFormat, newTracks, d, newForce)
	},
}

func divisionFromFlags(flags *pflag.FlagSet) (header.Division, error) {
	smpte := flags.Changed("smpte-rate")
	if flags.Changed("ticks-per-frame") && !smpte {
		return header.Division{}, errors.New("--ticks-per-frame needs --smpte-rate")
	}
	if smpte && flags.Changed("ticks") {
		return header.Division{}, errors.New("--ticks and --smpte-rate are exclusive")
	}
	if !smpte {
		ticks, err := flags.GetUint16("ticks")
		return header.MetricDivision(ticks), err
	}
	rate, err := flags.GetFloat64("smpte-rate")
	if err != nil {
		return header.Division{}, err
	}
	tpf, err := flags.GetUint16("ticks-per-frame")
	if err != nil {
		return header.Division{}, err
	}
	if tpf > 0xFF {
		return header.Division{}, &header.InvalidTicksPerFrameError{Value: tpf}
	}
	return header.SMPTEDivision(rate, uint8(tpf)), nil
}

func create(w io.Writer, path string, format uint16, tracks uint16, d header.Division, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	data, err := midi.NewFile(format, tracks, d)
	if err != nil {
		return err
	}
	if err := util.WriteFileAtomic(path, data, 0644); err != nil {
		return err
	}
	fmt.Fprintf(w, "Created %v (%v bytes)\n", path, len(data))
	return nil
}
