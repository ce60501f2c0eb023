package seqio

import (
	"bufio"
	"context"
	"fmt"
)

// StreamReads lazily parses FASTQ records from path (plain or gzipped) and
// hands each to emit. The stream is consumed once per run; parsing stops on
// the first malformed record, on an emit error, or when ctx is done.
func StreamReads(ctx context.Context, path string, emit func(Record) error) error {
	fh, err := openReader(path)
	if err != nil {
		return err
	}
	defer func() { _ = fh.Close() }()

	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	n := 0
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n++
		head := sc.Text()
		if head == "" {
			continue
		}
		if head[0] != '@' {
			return fmt.Errorf("%s: record %d: header %q does not start with '@'", path, n, head)
		}
		rec := Record{Name: head[1:]}
		if !sc.Scan() {
			return fmt.Errorf("%s: record %d: truncated after header", path, n)
		}
		rec.Seq = append([]byte(nil), sc.Bytes()...)
		if !sc.Scan() {
			return fmt.Errorf("%s: record %d: truncated before separator", path, n)
		}
		if sep := sc.Text(); sep == "" || sep[0] != '+' {
			return fmt.Errorf("%s: record %d: separator %q does not start with '+'", path, n, sep)
		}
		if !sc.Scan() {
			return fmt.Errorf("%s: record %d: truncated before quality", path, n)
		}
		rec.Qual = append([]byte(nil), sc.Bytes()...)
		if err := emit(rec); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%s: fastq scan: %w", path, err)
	}
	return nil
}

// CountReads reports the number of FASTQ records in path. Used for progress
// reporting ahead of a full pass.
func CountReads(path string) (int64, error) {
	fh, err := openReader(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = fh.Close() }()

	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	var lines int64
	for sc.Scan() {
		lines++
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	return lines / 4, nil
}
