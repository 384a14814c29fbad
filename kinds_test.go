package parser

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestNewSet(t *testing.T) {
	extractors, err := NewSet(nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var kinds []string
	for _, e := range extractors {
		kinds = append(kinds, e.Kind())
	}
	if !reflect.DeepEqual(kinds, Kinds()) {
		t.Fatalf("Expected %v but got %v", Kinds(), kinds)
	}

	extractors, err = NewSet([]string{KindCopy, KindCopy, KindHashInsert}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(extractors) != 2 || extractors[0].Kind() != KindCopy {
		t.Fatalf("Expected copy then hashinsert but got %d extractors", len(extractors))
	}
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New("upload", Options{})
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("Expected ErrUnknownKind but got '%v'", err)
	}
}

func TestSchemaMatchesValues(t *testing.T) {
	for _, kind := range Kinds() {
		e, err := New(kind, Options{})
		if err != nil {
			t.Fatal(err)
		}
		e.Finalize()
		if got := len(e.Records()[0].Values()); got != len(e.Header()) {
			t.Errorf("%s: header has %d columns but records have %d", kind, len(e.Header()), got)
		}
	}
}
