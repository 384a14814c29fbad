package parser

import "github.com/mailru/easyjson/jwriter"

const (
	reprojectingMarker = "reprojecting"
	reprojectedMarker  = "reprojection complete"
)

var reprojectSchema = []Column{
	{"pallet", String},
	{"dest", String},
	{"dest_coord_sys", String},
	{"start", Time},
	{"end", Time},
	{"duration", Int64},
	{"warning", String},
}

// ReprojectRecord is the reprojection of one crate into its destination
// coordinate system.
type ReprojectRecord struct {
	Pallet      Text
	Destination Text
	CoordSys    Text
	Start       Clock
	End         Clock
}

func (r ReprojectRecord) Duration() (int, bool) {
	return Elapsed(r.Start, r.End)
}

func (r ReprojectRecord) Warning() string {
	return warning(r.Start, r.End)
}

func (r ReprojectRecord) Crate() (Text, Text) {
	return r.Pallet, r.Destination
}

func (r ReprojectRecord) Values() []string {
	return []string{
		r.Pallet.String(),
		r.Destination.String(),
		r.CoordSys.String(),
		r.Start.String(),
		r.End.String(),
		durationString(r.Duration()),
		r.Warning(),
	}
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (r ReprojectRecord) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.RawString(`"pallet":`)
	writeText(w, r.Pallet)
	w.RawString(`,"dest":`)
	writeText(w, r.Destination)
	w.RawString(`,"dest_coord_sys":`)
	writeText(w, r.CoordSys)
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
func (r ReprojectRecord) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	r.MarshalEasyJSON(&w)
	return w.Buffer.BuildBytes(), w.Error
}

// Reproject times the reprojection step of each crate.
type Reproject struct {
	base
	current ReprojectRecord
}

// NewReproject builds a Reproject extractor.
func NewReproject(opts Options) *Reproject {
	e := &Reproject{base: newBase(KindReproject, reprojectSchema, opts)}
	e.registry.Register(palletMarker, textSetter(palletMatcher, func(v Text) {
		e.abandon(e.InProgress(), "new pallet", e.current.Destination)
		e.current = ReprojectRecord{Pallet: v}
	}))
	e.registry.Register(destinationMarker, textSetter(destinationMatcher, func(v Text) {
		e.abandon(e.InProgress(), "new crate", e.current.Destination)
		e.current = ReprojectRecord{Pallet: e.current.Pallet, Destination: v}
	}))
	e.registry.Register(coordSysMarker, textSetter(coordSysMatcher, func(v Text) {
		e.current.CoordSys = v
	}))
	e.registry.Register(reprojectingMarker, clockSetter(func(c Clock) {
		e.current.Start = c
	}, Continue))
	e.registry.Register(reprojectedMarker, clockSetter(func(c Clock) {
		e.current.End = c
	}, FinalizeRecord))
	return e
}

func (e *Reproject) Current() ReprojectRecord {
	return e.current
}

func (e *Reproject) InProgress() bool {
	return e.current.Start.Valid
}

func (e *Reproject) Finalize() {
	e.store(e.current)
	next := ReprojectRecord{}
	if e.opts.KeepPallet {
		next.Pallet = e.current.Pallet
	}
	e.current = next
}

func (e *Reproject) Discard() {
	e.current = ReprojectRecord{}
}
