package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// sort and consensus are declared but not yet built; they print a notice
// and exit cleanly rather than failing.

func sortCommand(stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:     "sort",
		Aliases: []string{"so", "srt", "st"},
		Short:   "Trim and sort reads representing each amplicon into their own FASTQs",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stderr, "Sorting is not yet available, but it will be soon!")
			return nil
		},
	}
}

func consensusCommand(stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:     "consensus",
		Aliases: []string{"cons", "co", "consseq", "cseq"},
		Short:   "Call a consensus sequence for each amplicon's reads",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stderr, "Amplicon consensus calling is not yet available, but it will be soon!")
			return nil
		},
	}
}
