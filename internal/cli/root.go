// Package cli wires the amplicon-tk subcommands: index, extract, trim,
// sort, and consensus.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nrminor/amplicon-tk/internal/version"
)

const info = `
  ____  ___ ___  ____  _      ____   __   ___   ____          ______  __  _
 /    ||   |   ||    \| |    |    | /  ] /   \ |    \        |      ||  |/ ]
|  o  || _   _ ||  o  ) |     |  | /  / |     ||  _  | _____ |      ||  ' /
|     ||  \_/  ||   _/| |___  |  |/  /  |  O  ||  |  ||     ||_|  |_||    \
|  _  ||   |   ||  |  |     | |  /   \_ |     ||  |  ||_____|  |  |  |     \
|  |  ||   |   ||  |  |     | |  \     ||     ||  |  |         |  |  |  .  |
|__|__||___|___||__|  |_____||____\____| \___/ |__|__|         |__|  |__|\_|

amplicon-tk: amplicon-aware FASTQ operations
============================================

amplicon-tk implements a series of subcommands that, unlike many other
tools, are amplicon-aware. Any given read must contain both primers in at
least one amplicon, which ensures that every read in the resulting dataset
corresponds to one complete amplicon and that PCR chimeras and other
artifacts are removed.
`

// NewRootCommand builds the command tree. Output streams are injected so
// tests can drive the CLI with buffers.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "amplicon-tk",
		Short:         "amplicon-aware FASTQ trimming, sorting, and consensus calling",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(stdout, info)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(
		indexCommand(stdout, stderr),
		extractCommand(stdout, stderr),
		trimCommand(stdout, stderr),
		sortCommand(stderr),
		consensusCommand(stderr),
	)
	return root
}
