package parser

import "github.com/mailru/easyjson/jwriter"

const (
	copyingMarker = "copying "
	copiedMarker  = "copy complete"
)

var copySchema = []Column{
	{"pallet", String},
	{"source", String},
	{"dest", String},
	{"start", Time},
	{"end", Time},
	{"duration", Int64},
	{"warning", String},
}

// CopyRecord is the copy of one crate from its source to its destination.
type CopyRecord struct {
	Pallet      Text
	Source      Text
	Destination Text
	Start       Clock
	End         Clock
}

func (r CopyRecord) Duration() (int, bool) {
	return Elapsed(r.Start, r.End)
}

func (r CopyRecord) Warning() string {
	return warning(r.Start, r.End)
}

func (r CopyRecord) Crate() (Text, Text) {
	return r.Pallet, r.Destination
}

// Values keeps source paths unescaped: a path containing a comma shifts
// the following columns.
func (r CopyRecord) Values() []string {
	return []string{
		r.Pallet.String(),
		r.Source.String(),
		r.Destination.String(),
		r.Start.String(),
		r.End.String(),
		durationString(r.Duration()),
		r.Warning(),
	}
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (r CopyRecord) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.RawString(`"pallet":`)
	writeText(w, r.Pallet)
	w.RawString(`,"source":`)
	writeText(w, r.Source)
	w.RawString(`,"dest":`)
	writeText(w, r.Destination)
	w.RawString(`,"start":`)
	writeClock(w, r.Start)
	w.RawString(`,"end":`)
	writeClock(w, r.End)
	d, ok := r.Duration()
	w.RawString(`,"duration":`)
	writeDuration(w, d, ok)
	writeWarning(w, r.Warning())
	w.RawByte('}')
}

// MarshalJSON implements json.Marshaler.
func (r CopyRecord) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	r.MarshalEasyJSON(&w)
	return w.Buffer.BuildBytes(), w.Error
}

// Copy times the copy of each crate from source to destination.
type Copy struct {
	base
	current CopyRecord
}

// NewCopy builds a Copy extractor.
func NewCopy(opts Options) *Copy {
	e := &Copy{base: newBase(KindCopy, copySchema, opts)}
	e.registry.Register(palletMarker, textSetter(palletMatcher, func(v Text) {
		e.abandon(e.InProgress(), "new pallet", e.current.Destination)
		e.current = CopyRecord{Pallet: v}
	}))
	e.registry.Register(destinationMarker, textSetter(destinationMatcher, func(v Text) {
		e.abandon(e.InProgress(), "new crate", e.current.Destination)
		e.current = CopyRecord{Pallet: e.current.Pallet, Destination: v}
	}))
	e.registry.Register(sourceMarker, textSetter(sourceMatcher, func(v Text) {
		e.current.Source = v
	}))
	e.registry.Register(copyingMarker, clockSetter(func(c Clock) {
		e.current.Start = c
	}, Continue))
	e.registry.Register(copiedMarker, clockSetter(func(c Clock) {
		e.current.End = c
	}, FinalizeRecord))
	return e
}

func (e *Copy) Current() CopyRecord {
	return e.current
}

func (e *Copy) InProgress() bool {
	return e.current.Start.Valid
}

func (e *Copy) Finalize() {
	e.store(e.current)
	next := CopyRecord{}
	if e.opts.KeepPallet {
		next.Pallet = e.current.Pallet
	}
	e.current = next
}

func (e *Copy) Discard() {
	e.current = CopyRecord{}
}
