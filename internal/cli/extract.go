package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nrminor/amplicon-tk/internal/pipeline"
	"github.com/nrminor/amplicon-tk/internal/seqio"
)

func extractCommand(stdout, stderr io.Writer) *cobra.Command {
	var (
		inputFile   string
		bedFile     string
		fastaRef    string
		leftSuffix  string
		rightSuffix string
		output      string
		threads     int
	)
	cmd := &cobra.Command{
		Use:     "extract",
		Aliases: []string{"x", "xtr", "extra"},
		Short:   "Extract only those reads that represent complete amplicons",
		Long: `Extract only those reads that represent complete amplicons, without
trimming. Use this subcommand when you want to filter to amplicons while
keeping the read ends that contain primers or barcodes.`,
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

			outPath := output + format.Extension()
			sink, err := seqio.NewWriter(outPath, format)
			if err != nil {
				return err
			}

			cfg := pipeline.Config{Threads: threads, KeepPrimers: true}
			stats, runErr := pipeline.Run(cmd.Context(), cfg, inputFile, scheme, nil, sink, stderr)
			if err := sink.Close(); err != nil && runErr == nil {
				runErr = fmt.Errorf("finalizing %s: %w", outPath, err)
			}
			if runErr != nil {
				return runErr
			}

			fmt.Fprintf(stdout, "%d reads in, %d complete amplicons written to %s\n",
				stats.Total, stats.Written, outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputFile, "input-file", "i", "", "Input FASTQ file (optionally gzip-compressed)")
	cmd.Flags().StringVarP(&bedFile, "bed-file", "b", "", "Input BED file of primer coordinates")
	cmd.Flags().StringVarP(&fastaRef, "fasta-ref", "f", "", "Reference sequence in FASTA format")
	cmd.Flags().StringVarP(&leftSuffix, "left-suffix", "l", "_LEFT", "Suffix identifying forward primers in the BED file")
	cmd.Flags().StringVarP(&rightSuffix, "right-suffix", "r", "_RIGHT", "Suffix identifying reverse primers in the BED file")
	cmd.Flags().StringVarP(&output, "output", "o", "extracted_amplicons", "Output file name stem")
	cmd.Flags().IntVarP(&threads, "threads", "t", 0, "Number of worker threads (0 = all CPUs)")
	_ = cmd.MarkFlagRequired("input-file")
	_ = cmd.MarkFlagRequired("bed-file")
	_ = cmd.MarkFlagRequired("fasta-ref")
	return cmd
}
