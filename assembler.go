package parser

import (
	"bufio"
	"io"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

const maxLineBytes = 1024 * 1024

// Summary counts what a scan produced.
type Summary struct {
	Lines     int
	Records   map[string]int
	Discarded map[string]int
}

// Assembler feeds log lines to a set of extractors. It is not safe for
// concurrent use; give each scan its own assembler and extractors.
type Assembler struct {
	// Decoder, when set, converts every line before dispatch.
	Decoder *Decoder

	extractors []Extractor
	logger     log15.Logger
	lineNo     int
	pending    []Extractor
	discarded  map[string]int
}

// NewAssembler returns an assembler dispatching to extractors in the
// given order. logger may be nil.
func NewAssembler(logger log15.Logger, extractors ...Extractor) *Assembler {
	if logger == nil {
		logger = Options{}.logger()
	}
	return &Assembler{
		extractors: extractors,
		logger:     logger,
		discarded:  make(map[string]int),
	}
}

// Extractors returns the extractors in dispatch order.
func (a *Assembler) Extractors() []Extractor {
	return a.extractors
}

// Feed processes one line. Finalize requests are applied after every
// extractor saw the line. A *MissingCaptureError aborts the line and must
// abort the scan.
func (a *Assembler) Feed(line string) error {
	a.lineNo++
	a.pending = a.pending[:0]
	for _, e := range a.extractors {
		action, err := e.Registry().Dispatch(line)
		if err != nil {
			var mc *MissingCaptureError
			if errors.As(err, &mc) {
				mc.Extractor = e.Kind()
				mc.LineNo = a.lineNo
			}
			a.logger.Error("unexpected log line", "extractor", e.Kind(), "line_no", a.lineNo, "line", line)
			a.pending = a.pending[:0]
			return err
		}
		if action == FinalizeRecord {
			a.pending = append(a.pending, e)
		}
	}
	for _, e := range a.pending {
		e.Finalize()
	}
	a.pending = a.pending[:0]
	return nil
}

// Finish discards the records still in progress at the end of the log.
func (a *Assembler) Finish() {
	for _, e := range a.extractors {
		if !e.InProgress() {
			continue
		}
		a.logger.Warn("discarding unterminated record", "extractor", e.Kind(), "line_no", a.lineNo)
		a.discarded[e.Kind()]++
		e.Discard()
	}
}

// Scan feeds every line of r and then calls Finish. It stops at the first
// error.
func (a *Assembler) Scan(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, maxLineBytes)
	for scanner.Scan() {
		line := scanner.Text()
		if a.Decoder != nil {
			line = a.Decoder.Decode(line)
		}
		if err := a.Feed(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "reading line %d", a.lineNo+1)
	}
	a.Finish()
	return nil
}

// ScanFile opens fname and scans it.
func (a *Assembler) ScanFile(fname string) error {
	f, err := os.Open(fname)
	if err != nil {
		return errors.Wrapf(err, "opening '%s'", fname)
	}
	defer f.Close()
	return errors.WithMessage(a.Scan(f), fname)
}

// Summary returns the counters of the lines seen so far. Discarded holds
// both the records cut short by a new pallet or crate and those left
// unterminated at the end of the log.
func (a *Assembler) Summary() Summary {
	s := Summary{
		Lines:     a.lineNo,
		Records:   make(map[string]int, len(a.extractors)),
		Discarded: make(map[string]int, len(a.discarded)),
	}
	for _, e := range a.extractors {
		s.Records[e.Kind()] = len(e.Records())
	}
	for k, n := range a.discarded {
		s.Discarded[k] = n
	}
	for _, e := range a.extractors {
		if n := e.Abandoned(); n > 0 {
			s.Discarded[e.Kind()] += n
		}
	}
	return s
}
