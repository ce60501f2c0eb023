package pipeline

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/nrminor/amplicon-tk/internal/amplicon"
	"github.com/nrminor/amplicon-tk/internal/match"
	"github.com/nrminor/amplicon-tk/internal/seqio"
	"github.com/nrminor/amplicon-tk/internal/trim"
)

// Config controls the read-processing pipeline.
type Config struct {
	Threads     int  // worker goroutines; 0 = all CPUs
	FailFast    bool // abort the whole run on a record-level fault
	KeepPrimers bool // write matched reads unmodified instead of trimming
}

// Stats counts terminal states across one run. Fields are updated
// atomically by the workers.
type Stats struct {
	Total    int64 // records received from the source
	Written  int64 // records accepted and written to the sink
	NoMatch  int64 // no unique amplicon match
	Filtered int64 // trimmed but rejected by the frequency/length filter
	Faulted  int64 // record-level faults (isolated unless FailFast)
}

// Run streams reads from path through match, trim, and filter into sink.
//
// The scheme and filter are shared read-only across every worker; the sink
// serializes its own writes. Reads complete independently, so output order
// does not track input order. A record that fails the trim invariant is
// reported to warn and dropped without disturbing sibling records, unless
// FailFast is set.
func Run(ctx context.Context, cfg Config, path string, scheme *amplicon.Scheme, filters *trim.Settings, sink *seqio.Writer, warn io.Writer) (Stats, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		stats   Stats
		warnMu  sync.Mutex
		errMu   sync.Mutex
		runErr  error
		failRun = func(err error) {
			errMu.Lock()
			if runErr == nil {
				runErr = err
			}
			errMu.Unlock()
			cancel()
		}
	)

	jobs := make(chan seqio.Record, threads*2)
	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for rec := range jobs {
				bounds, ok := match.FindAmplicon(rec.Seq, scheme)
				if !ok {
					atomic.AddInt64(&stats.NoMatch, 1)
					continue
				}

				out := rec
				if !cfg.KeepPrimers {
					trimmed, err := trim.ToBounds(rec, bounds)
					if err != nil {
						atomic.AddInt64(&stats.Faulted, 1)
						if cfg.FailFast {
							failRun(err)
							return
						}
						warnMu.Lock()
						fmt.Fprintf(warn, "WARN: %v\n", err)
						warnMu.Unlock()
						continue
					}
					out = trimmed
				}

				if !filters.ShouldWrite(out.Seq) {
					atomic.AddInt64(&stats.Filtered, 1)
					continue
				}
				if err := sink.Write(out); err != nil {
					failRun(fmt.Errorf("writing record %q: %w", out.Name, err))
					return
				}
				atomic.AddInt64(&stats.Written, 1)
			}
		}()
	}

	feedErr := seqio.StreamReads(ctx, path, func(rec seqio.Record) error {
		atomic.AddInt64(&stats.Total, 1)
		select {
		case jobs <- rec:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	close(jobs)
	wg.Wait()

	errMu.Lock()
	defer errMu.Unlock()
	if runErr != nil {
		return stats, runErr
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, feedErr
}
