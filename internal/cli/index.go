package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nrminor/amplicon-tk/internal/index"
	"github.com/nrminor/amplicon-tk/internal/seqio"
)

func indexCommand(stdout, stderr io.Writer) *cobra.Command {
	var (
		inputFile   string
		bedFile     string
		fastaRef    string
		leftSuffix  string
		rightSuffix string
		quiet       bool
	)
	cmd := &cobra.Command{
		Use:     "index",
		Aliases: []string{"id", "ind", "idx", "ix"},
		Short:   "Index FASTQ records and record unique amplicon statistics",
		Long: `Index FASTQ records and record unique amplicon statistics. Indexing
implicitly finds and trims primers before identifying unique amplicon
sequences. The index is written to a sidecar file next to the input and is
consulted by later filtering runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := seqio.DetectFormat(inputFile)
			if err != nil {
				return err
			}
			if format == seqio.FormatBam {
				fmt.Fprintf(stderr, "%v\n", seqio.ErrBamUnsupported)
				return nil
			}

			scheme, err := loadScheme(bedFile, fastaRef, leftSuffix, rightSuffix, stderr)
			if err != nil {
				return err
			}

			ix, err := index.Build(cmd.Context(), inputFile, scheme, !quiet)
			if err != nil {
				return err
			}
			sidecar := index.SidecarPath(inputFile)
			if err := ix.Persist(sidecar); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "indexed %d unique amplicon sequences to %s\n", len(ix.UniqueSeqs), sidecar)
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputFile, "input-file", "i", "", "Input FASTQ file (optionally gzip-compressed)")
	cmd.Flags().StringVarP(&bedFile, "bed-file", "b", "", "Input BED file of primer coordinates")
	cmd.Flags().StringVarP(&fastaRef, "fasta-ref", "f", "", "Reference sequence in FASTA format")
	cmd.Flags().StringVarP(&leftSuffix, "left-suffix", "l", "_LEFT", "Suffix identifying forward primers in the BED file")
	cmd.Flags().StringVarP(&rightSuffix, "right-suffix", "r", "_RIGHT", "Suffix identifying reverse primers in the BED file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress the progress bar")
	_ = cmd.MarkFlagRequired("input-file")
	_ = cmd.MarkFlagRequired("bed-file")
	_ = cmd.MarkFlagRequired("fasta-ref")
	return cmd
}
