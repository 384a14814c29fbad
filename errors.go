package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownKind is returned when asking for an extractor kind that does not exist.
	ErrUnknownKind = errors.New("unknown extractor kind")
	// ErrUnknownEncoding is returned for an unsupported log file encoding.
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// OutOfOrder is the warning attached to a record whose end time is
// before its start time.
const OutOfOrder = "out-of-order timestamps"

// MissingCaptureError reports a line that contained a marker but not the
// value the marker promised. The log grammar is assumed to be wrong when
// it happens, so the scan stops.
type MissingCaptureError struct {
	Extractor string
	Marker    string
	Pattern   string
	LineNo    int
	Line      string
}

func (e *MissingCaptureError) Error() string {
	return fmt.Sprintf(
		"%s: line %d matched marker '%s' but not pattern '%s': %s",
		e.Extractor, e.LineNo, e.Marker, e.Pattern, e.Line,
	)
}
