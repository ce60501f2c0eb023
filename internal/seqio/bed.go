package seqio

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/nrminor/amplicon-tk/internal/amplicon"
)

// ReadPrimerCoordinates parses BED-style primer rows: reference, half-open
// 0-based start and stop, and the primer label in the fourth column. Extra
// columns are ignored; blank lines, comments, and track/browser headers are
// skipped. The whole file is consumed before any read processing begins.
func ReadPrimerCoordinates(path string) ([]amplicon.Coordinate, error) {
	fh, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	var coords []amplicon.Coordinate
	sc := bufio.NewScanner(fh)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' ||
			strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 4 {
			return nil, fmt.Errorf("%s:%d: need at least 4 BED columns, got %d", path, ln, len(f))
		}
		start, err := strconv.Atoi(f[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad start position %q: %w", path, ln, f[1], err)
		}
		stop, err := strconv.Atoi(f[2])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad stop position %q: %w", path, ln, f[2], err)
		}
		coords = append(coords, amplicon.Coordinate{
			Ref:   f[0],
			Start: start,
			Stop:  stop,
			Label: f[3],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return coords, nil
}
