package parser

import "github.com/pkg/errors"

// Extractor kinds.
const (
	KindHashInsert = "hashinsert"
	KindReproject  = "reproject"
	KindCopy       = "copy"
)

var constructors = map[string]func(Options) Extractor{
	KindHashInsert: func(o Options) Extractor { return NewHashInsertTemp(o) },
	KindReproject:  func(o Options) Extractor { return NewReproject(o) },
	KindCopy:       func(o Options) Extractor { return NewCopy(o) },
}

// Kinds lists the available extractor kinds.
func Kinds() []string {
	return []string{KindHashInsert, KindReproject, KindCopy}
}

// New builds a fresh extractor of the given kind.
func New(kind string, opts Options) (Extractor, error) {
	ctor, ok := constructors[kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKind, "'%s'", kind)
	}
	return ctor(opts), nil
}

// NewSet builds one extractor per kind, in the given order. An empty
// list selects every kind.
func NewSet(kinds []string, opts Options) ([]Extractor, error) {
	if len(kinds) == 0 {
		kinds = Kinds()
	}
	extractors := make([]Extractor, 0, len(kinds))
	seen := make(map[string]bool, len(kinds))
	for _, kind := range kinds {
		if seen[kind] {
			continue
		}
		seen[kind] = true
		e, err := New(kind, opts)
		if err != nil {
			return nil, err
		}
		extractors = append(extractors, e)
	}
	return extractors, nil
}
