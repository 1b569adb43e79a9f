package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/mthd/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Checks the header against a full parse of the file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return verify(cmd.OutOrStdout(), args[0])
	},
}

func verify(w io.Writer, path string) error {
	f, err := midi.Open(path)
	if err != nil {
		return err
	}
	if _, err := f.Summary(); err != nil {
		return err
	}
	if err := f.Verify(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%v: ok\n", path)
	return nil
}
