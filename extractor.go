package parser

import (
	"regexp"

	"github.com/inconshreveable/log15"
	"github.com/mailru/easyjson"
)

// Markers shared by every extractor: the pallet announcement and the crate
// dictionary printed before each crate is processed.
const (
	palletMarker      = "processing crates for pallet: "
	destinationMarker = "'destination':"
	coordSysMarker    = "'destination_coordinate_system':"
	sourceMarker      = "'source':"
)

var (
	palletMatcher      = regexp.MustCompile(`processing crates for pallet: ([^\r\n]+)`)
	destinationMatcher = regexp.MustCompile(`'destination': u?'([^']+)`)
	coordSysMatcher    = regexp.MustCompile(`'destination_coordinate_system': u?'?([^',}]+)`)
	sourceMatcher      = regexp.MustCompile(`'source': u?'([^']+)`)
)

// Record is one finalized operation.
type Record interface {
	easyjson.Marshaler
	// Values returns the record in schema order, unset fields as "".
	Values() []string
	// Warning is empty unless the record carries a data-quality anomaly.
	Warning() string
	// Crate returns the pallet and destination the record belongs to.
	Crate() (pallet Text, destination Text)
}

// Extractor turns matched lines of one operation kind into records.
type Extractor interface {
	Kind() string
	Registry() *Registry
	Schema() []Column
	Header() []string
	// Finalize stores the in-progress record and resets the fields.
	Finalize()
	// InProgress reports whether a start marker was seen without its end marker.
	InProgress() bool
	// Discard drops the in-progress record.
	Discard()
	// Abandoned counts the in-progress records dropped because a new
	// pallet or crate started before their end marker.
	Abandoned() int
	Records() []Record
}

// Options configure extractors.
type Options struct {
	// KeepPallet keeps the pallet name across the crates of a pallet
	// instead of resetting it with the other fields.
	KeepPallet bool
	Logger     log15.Logger
}

func (o Options) logger() log15.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	l := log15.New()
	l.SetHandler(log15.DiscardHandler())
	return l
}

type base struct {
	kind     string
	schema   []Column
	registry Registry
	records  []Record
	opts     Options
	logger   log15.Logger

	abandoned int
}

func newBase(kind string, schema []Column, opts Options) base {
	return base{
		kind:   kind,
		schema: schema,
		opts:   opts,
		logger: opts.logger().New("extractor", kind),
	}
}

func (b *base) Kind() string {
	return b.kind
}

func (b *base) Registry() *Registry {
	return &b.registry
}

func (b *base) Schema() []Column {
	return append([]Column(nil), b.schema...)
}

func (b *base) Header() []string {
	return header(b.schema)
}

func (b *base) Records() []Record {
	return b.records
}

func (b *base) Abandoned() int {
	return b.abandoned
}

// abandon counts the record in progress, if any, as dropped by a reset.
func (b *base) abandon(inProgress bool, reason string, dest Text) {
	if !inProgress {
		return
	}
	b.abandoned++
	b.logger.Debug("abandoning unterminated record", "reason", reason, "dest", dest.String())
}

func (b *base) store(r Record) {
	b.records = append(b.records, r)
	if w := r.Warning(); w != "" {
		pallet, dest := r.Crate()
		b.logger.Warn("record stored with warning", "warning", w, "pallet", pallet.String(), "dest", dest.String())
		return
	}
	b.logger.Debug("record stored", "values", r.Values())
}

func warning(start, end Clock) string {
	if d, ok := Elapsed(start, end); ok && d < 0 {
		return OutOfOrder
	}
	return ""
}
