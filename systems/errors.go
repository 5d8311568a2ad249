// Package systems implements the procedural instance-attribute pipeline:
// noise sampling, proximity weighting, the attribute graph, and the
// instance lattice it runs over.
package systems

import "errors"

// ErrConfiguration reports an invalid construction parameter (grid counts,
// spacing, distances, octave counts). Construction fails; nothing degenerate
// is produced.
var ErrConfiguration = errors.New("configuration error")
