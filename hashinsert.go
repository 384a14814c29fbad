package parser

import (
	"regexp"
	"strconv"

	"github.com/mailru/easyjson/jwriter"
)

const (
	checkingMarker = "checking for changes"
	addsMarker     = "Number of rows to be added: "
)

var addsMatcher = regexp.MustCompile(`Number of rows to be added: (\d+)`)

var hashInsertSchema = []Column{
	{"pallet", String},
	{"dest", String},
	{"dest_coord_sys", String},
	{"start", Time},
	{"end", Time},
	{"duration", Int64},
	{"added", Int64},
	{"warning", String},
}

// HashInsertRecord is the load of the changed rows of one crate into its
// hash-insert temp table.
type HashInsertRecord struct {
	Pallet      Text
	Destination Text
	CoordSys    Text
	Start       Clock
	End         Clock
	Added       Count
}

// Duration is the elapsed seconds between Start and End.
func (r HashInsertRecord) Duration() (int, bool) {
	return Elapsed(r.Start, r.End)
}

func (r HashInsertRecord) Warning() string {
	return warning(r.Start, r.End)
}

func (r HashInsertRecord) Crate() (Text, Text) {
	return r.Pallet, r.Destination
}

func (r HashInsertRecord) Values() []string {
	return []string{
		r.Pallet.String(),
		r.Destination.String(),
		r.CoordSys.String(),
		r.Start.String(),
		r.End.String(),
		durationString(r.Duration()),
		r.Added.String(),
		r.Warning(),
	}
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (r HashInsertRecord) MarshalEasyJSON(w *jwriter.Writer) {
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
	w.RawString(`,"added":`)
	writeCount(w, r.Added)
	writeWarning(w, r.Warning())
	w.RawByte('}')
}

// MarshalJSON implements json.Marshaler.
func (r HashInsertRecord) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	r.MarshalEasyJSON(&w)
	return w.Buffer.BuildBytes(), w.Error
}

// HashInsertTemp follows the "checking for changes" step of each crate up
// to the count of rows to be added.
type HashInsertTemp struct {
	base
	current HashInsertRecord
}

// NewHashInsertTemp builds a HashInsertTemp extractor.
func NewHashInsertTemp(opts Options) *HashInsertTemp {
	e := &HashInsertTemp{base: newBase(KindHashInsert, hashInsertSchema, opts)}
	e.registry.Register(palletMarker, textSetter(palletMatcher, func(v Text) {
		e.abandon(e.InProgress(), "new pallet", e.current.Destination)
		e.current = HashInsertRecord{Pallet: v}
	}))
	e.registry.Register(destinationMarker, textSetter(destinationMatcher, func(v Text) {
		e.abandon(e.InProgress(), "new crate", e.current.Destination)
		e.current = HashInsertRecord{Pallet: e.current.Pallet, Destination: v}
	}))
	e.registry.Register(coordSysMarker, textSetter(coordSysMatcher, func(v Text) {
		e.current.CoordSys = v
	}))
	e.registry.Register(checkingMarker, clockSetter(func(c Clock) {
		e.current.Start = c
	}, Continue))
	e.registry.Register(addsMarker, e.setAdded)
	e.registry.Register(addsMarker, clockSetter(func(c Clock) {
		e.current.End = c
	}, FinalizeRecord))
	return e
}

func (e *HashInsertTemp) setAdded(line string) (Action, error) {
	v, err := capture(addsMatcher, line)
	if err != nil {
		return Continue, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return Continue, &MissingCaptureError{Pattern: addsMatcher.String()}
	}
	e.current.Added = Count{Value: n, Valid: true}
	return Continue, nil
}

// Current returns the in-progress record.
func (e *HashInsertTemp) Current() HashInsertRecord {
	return e.current
}

func (e *HashInsertTemp) InProgress() bool {
	return e.current.Start.Valid
}

func (e *HashInsertTemp) Finalize() {
	e.store(e.current)
	next := HashInsertRecord{}
	if e.opts.KeepPallet {
		next.Pallet = e.current.Pallet
	}
	e.current = next
}

func (e *HashInsertTemp) Discard() {
	e.current = HashInsertRecord{}
}
