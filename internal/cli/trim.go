package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nrminor/amplicon-tk/internal/cmdutil"
	"github.com/nrminor/amplicon-tk/internal/index"
	"github.com/nrminor/amplicon-tk/internal/pipeline"
	"github.com/nrminor/amplicon-tk/internal/seqio"
	"github.com/nrminor/amplicon-tk/internal/trim"
)

func trimCommand(stdout, stderr io.Writer) *cobra.Command {
	var (
		inputFile   string
		bedFile     string
		fastaRef    string
		keepMulti   bool
		leftSuffix  string
		rightSuffix string
		minFreq     float64
		expectedLen int
		output      string
		threads     int
		failFast    bool
	)
	cmd := &cobra.Command{
		Use:     "trim",
		Aliases: []string{"tr", "trm", "tri", "tm"},
		Short:   "Trim a set of reads down to only those that contain a complete amplicon",
		Long: `Trim a set of reads down to only those reads that contain a complete
amplicon, cutting each survivor to the region strictly between its primers.
If an index built with 'amplicon-tk index' is present next to the input,
the trimmed reads can additionally be filtered by prevalence and length.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := seqio.DetectFormat(inputFile)
			if err != nil {
				return err
			}
			if format == seqio.FormatBam {
				fmt.Fprintf(stderr, "%v\n", seqio.ErrBamUnsupported)
				return nil
			}
			if keepMulti {
				fmt.Fprintln(stderr, "--keep-multi is not yet supported; reads matching multiple amplicons are dropped")
			}

			scheme, err := loadScheme(bedFile, fastaRef, leftSuffix, rightSuffix, stderr)
			if err != nil {
				return err
			}

			// Thresholds only take effect when the flag was actually given.
			var minFreqPtr *float64
			var maxLenPtr *int
			if cmd.Flags().Changed("min-freq") {
				minFreqPtr = &minFreq
			}
			if cmd.Flags().Changed("expected-len") {
				maxLenPtr = &expectedLen
			}

			var filters *trim.Settings
			if minFreqPtr != nil || maxLenPtr != nil {
				ix, err := index.Load(index.SidecarPath(inputFile), scheme.Fingerprint(), stderr)
				if err != nil {
					return err
				}
				if ix == nil {
					cmdutil.Warnf(stderr, false,
						"no usable index found for %s; frequency/length filtering is disabled. Run `amplicon-tk index` first.",
						inputFile)
				} else {
					filters = trim.NewSettings(minFreqPtr, maxLenPtr, ix.UniqueSeqs)
				}
			}

			outPath := output + format.Extension()
			sink, err := seqio.NewWriter(outPath, format)
			if err != nil {
				return err
			}

			cfg := pipeline.Config{Threads: threads, FailFast: failFast}
			stats, runErr := pipeline.Run(cmd.Context(), cfg, inputFile, scheme, filters, sink, stderr)
			if err := sink.Close(); err != nil && runErr == nil {
				runErr = fmt.Errorf("finalizing %s: %w", outPath, err)
			}
			if runErr != nil {
				return runErr
			}

			fmt.Fprintf(stdout, "%d reads in, %d written to %s (%d without a unique amplicon, %d filtered, %d faulted)\n",
				stats.Total, stats.Written, outPath, stats.NoMatch, stats.Filtered, stats.Faulted)
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputFile, "input-file", "i", "", "Input FASTQ file (optionally gzip-compressed)")
	cmd.Flags().StringVarP(&bedFile, "bed-file", "b", "", "Input BED file of primer coordinates")
	cmd.Flags().StringVarP(&fastaRef, "fasta-ref", "f", "", "Reference sequence in FASTA format")
	cmd.Flags().BoolVarP(&keepMulti, "keep-multi", "k", false, "Keep reads that contain multiple pairs of primers")
	cmd.Flags().StringVarP(&leftSuffix, "left-suffix", "l", "_LEFT", "Suffix identifying forward primers in the BED file")
	cmd.Flags().StringVarP(&rightSuffix, "right-suffix", "r", "_RIGHT", "Suffix identifying reverse primers in the BED file")
	cmd.Flags().Float64VarP(&minFreq, "min-freq", "m", 0, "Minimum allowed frequency for amplicon variants")
	cmd.Flags().IntVarP(&expectedLen, "expected-len", "e", 0, "Expected maximum length for amplicons in this scheme")
	cmd.Flags().StringVarP(&output, "output", "o", "trimmed", "Output file name stem")
	cmd.Flags().IntVarP(&threads, "threads", "t", 0, "Number of worker threads (0 = all CPUs)")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Abort the whole run on a record-level fault")
	_ = cmd.MarkFlagRequired("input-file")
	_ = cmd.MarkFlagRequired("bed-file")
	_ = cmd.MarkFlagRequired("fasta-ref")
	return cmd
}
