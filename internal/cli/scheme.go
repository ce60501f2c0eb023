package cli

import (
	"fmt"
	"io"

	"github.com/nrminor/amplicon-tk/internal/amplicon"
	"github.com/nrminor/amplicon-tk/internal/seqio"
)

// loadScheme reads primer coordinates and the reference, then resolves them
// into an amplicon scheme. Coordinate-level problems are diagnosed to warn
// and skipped; file-level problems abort.
func loadScheme(bedPath, refPath, leftSuffix, rightSuffix string, warn io.Writer) (*amplicon.Scheme, error) {
	coords, err := seqio.ReadPrimerCoordinates(bedPath)
	if err != nil {
		return nil, fmt.Errorf("reading primer coordinates: %w", err)
	}
	refs, err := seqio.ReadReferenceDict(refPath)
	if err != nil {
		return nil, fmt.Errorf("reading reference: %w", err)
	}
	scheme := amplicon.BuildScheme(coords, refs, leftSuffix, rightSuffix, warn)
	if len(scheme.Definitions) == 0 {
		return nil, fmt.Errorf("no amplicons could be resolved from %s and %s", bedPath, refPath)
	}
	return scheme, nil
}
