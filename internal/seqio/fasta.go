package seqio

import (
	"bufio"
	"bytes"
	"fmt"
)

// ReadReferenceDict consumes a FASTA file into a name -> sequence mapping.
// Header lines are trimmed to the first whitespace-delimited token.
func ReadReferenceDict(path string) (map[string][]byte, error) {
	fh, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	sc := bufio.NewScanner(fh)
	const maxLine = 64 * 1024 * 1024 // references can be one very long line
	sc.Buffer(make([]byte, 64*1024), maxLine)

	dict := make(map[string][]byte)
	var (
		name string
		seq  []byte
	)
	flush := func() {
		if name != "" {
			dict[name] = seq
		}
	}
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			flush()
			name = parseHeaderID(line[1:])
			seq = make([]byte, 0, 1<<12)
			continue
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: fasta scan: %w", path, err)
	}
	flush()
	return dict, nil
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
