package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

// operation describes the log lines of one crate operation of a kind.
type operation struct {
	start  func(i int) string
	end    func(i int) string
	marker string
}

var operations = map[string]operation{
	KindHashInsert: {
		start:  func(i int) string { return fmt.Sprintf("INFO    02-08 01:%02d:01       core:  237 checking for changes...", i) },
		end:    func(i int) string { return fmt.Sprintf("DEBUG   02-08 01:%02d:03       core:  147 Number of rows to be added: %d", i, i) },
		marker: checkingMarker,
	},
	KindReproject: {
		start:  func(i int) string { return fmt.Sprintf("INFO    02-08 01:%02d:01       core:  260 reprojecting to 3857", i) },
		end:    func(i int) string { return fmt.Sprintf("INFO    02-08 01:%02d:03       core:  271 reprojection complete", i) },
		marker: reprojectingMarker,
	},
	KindCopy: {
		start:  func(i int) string { return fmt.Sprintf("INFO    02-08 01:%02d:01       core:  101 copying S%d", i, i) },
		end:    func(i int) string { return fmt.Sprintf("INFO    02-08 01:%02d:03       core:  118 copy complete", i) },
		marker: copyingMarker,
	},
}

const palletLine = "INFO    02-08 01:00:00       lift:   39 processing crates for pallet: P1"

func crateLine(i int) string {
	return fmt.Sprintf("DEBUG   02-08 01:%02d:00       lift:   56 {   'destination': 'D%d', 'source': 'S%d'}", i, i, i)
}

// crates returns a pallet followed by n complete crate operations of kind.
func crates(kind string, n int) []string {
	op := operations[kind]
	lines := []string{palletLine}
	for i := 0; i < n; i++ {
		lines = append(lines, crateLine(i), op.start(i), op.end(i))
	}
	return lines
}

func newExtractor(t *testing.T, kind string, opts Options) Extractor {
	t.Helper()
	e, err := New(kind, opts)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestExtractors_RecordsInFileOrder(t *testing.T) {
	for _, kind := range Kinds() {
		for _, n := range []int{0, 1, 12} {
			t.Run(fmt.Sprintf("%s/%d", kind, n), func(t *testing.T) {
				e := newExtractor(t, kind, Options{})
				a := NewAssembler(nil, e)
				feedAll(t, a, crates(kind, n))

				if len(e.Records()) != n {
					t.Fatalf("Expected %d records but got %d", n, len(e.Records()))
				}
				for i, r := range e.Records() {
					_, dest := r.Crate()
					if dest.Value != fmt.Sprintf("D%d", i) {
						t.Fatalf("Record %d out of order: %v", i, r.Values())
					}
					if d, ok := Elapsed(clockOf(t, r, "start"), clockOf(t, r, "end")); !ok || d != 2 {
						t.Fatalf("Expected a 2s duration but got %d (%v)", d, ok)
					}
				}
				if n := a.Summary().Discarded[kind]; n != 0 {
					t.Fatalf("Expected no discarded record but got %d", n)
				}
			})
		}
	}
}

// clockOf reads the column name of r through the schema of its kind.
func clockOf(t *testing.T, r Record, name string) Clock {
	t.Helper()
	var schema []Column
	switch r.(type) {
	case HashInsertRecord:
		schema = hashInsertSchema
	case ReprojectRecord:
		schema = reprojectSchema
	case CopyRecord:
		schema = copySchema
	}
	for i, c := range schema {
		if c.Name == name {
			clock, err := ParseClock(r.Values()[i])
			if err != nil {
				t.Fatal(err)
			}
			return clock
		}
	}
	t.Fatalf("No column '%s'", name)
	return Clock{}
}

func TestExtractors_UnterminatedRecordIsDiscarded(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind, func(t *testing.T) {
			e := newExtractor(t, kind, Options{})
			a := NewAssembler(nil, e)
			lines := crates(kind, 1)
			feedAll(t, a, lines[:len(lines)-1])

			if len(e.Records()) != 0 {
				t.Fatalf("Expected no record but got %d", len(e.Records()))
			}
			if e.InProgress() {
				t.Fatal("Expected the unterminated record to be dropped")
			}
			if n := a.Summary().Discarded[kind]; n != 1 {
				t.Fatalf("Expected 1 discarded record but got %d", n)
			}
		})
	}
}

func TestExtractors_NewCrateAbandonsRecord(t *testing.T) {
	tests := map[string]string{
		"New crate":  crateLine(1),
		"New pallet": "INFO    02-08 01:00:09       lift:   39 processing crates for pallet: P2",
	}

	for _, kind := range Kinds() {
		for testName, reset := range tests {
			t.Run(kind+"/"+testName, func(t *testing.T) {
				e := newExtractor(t, kind, Options{})
				a := NewAssembler(nil, e)
				lines := crates(kind, 1)
				feedAll(t, a, append(lines[:len(lines)-1], reset))

				if len(e.Records()) != 0 || e.InProgress() {
					t.Fatalf("Expected the record to be dropped, got %d records", len(e.Records()))
				}
				if n := e.Abandoned(); n != 1 {
					t.Fatalf("Expected 1 abandoned record but got %d", n)
				}
				if n := a.Summary().Discarded[kind]; n != 1 {
					t.Fatalf("Expected 1 discarded record but got %d", n)
				}
			})
		}
	}
}

func TestExtractors_KeepPallet(t *testing.T) {
	tests := map[string]struct {
		keep   bool
		pallet string
	}{
		"Pallet is reset with the other fields": {keep: false, pallet: ""},
		"Pallet is kept for the next crate":     {keep: true, pallet: "P1"},
	}

	for _, kind := range Kinds() {
		for testName, test := range tests {
			t.Run(kind+"/"+testName, func(t *testing.T) {
				e := newExtractor(t, kind, Options{KeepPallet: test.keep})
				feedAll(t, NewAssembler(nil, e), crates(kind, 2))

				if len(e.Records()) != 2 {
					t.Fatalf("Expected 2 records but got %d", len(e.Records()))
				}
				if pallet, _ := e.Records()[0].Crate(); pallet.Value != "P1" {
					t.Fatalf("Expected pallet 'P1' on the first crate but got '%s'", pallet)
				}
				pallet, dest := e.Records()[1].Crate()
				if pallet.String() != test.pallet || dest.String() != "D1" {
					t.Fatalf("Expected pallet '%s' and dest 'D1' but got '%s' and '%s'", test.pallet, pallet, dest)
				}
			})
		}
	}
}

func TestExtractors_MissingStartTimestamp(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind, func(t *testing.T) {
			e := newExtractor(t, kind, Options{})
			op := operations[kind]
			line := op.start(0)[len("INFO    02-08 01:00:01       "):]
			err := NewAssembler(nil, e).Scan(strings.NewReader(palletLine + "\n" + crateLine(0) + "\n" + line + "\n"))

			var mc *MissingCaptureError
			if !errors.As(err, &mc) {
				t.Fatalf("Expected a MissingCaptureError but got '%v'", err)
			}
			if mc.Marker != op.marker || mc.LineNo != 3 || mc.Extractor != kind || mc.Line != line {
				t.Fatalf("Unexpected error details: %+v", mc)
			}
		})
	}
}

func TestCopy_NewCrateResetsSource(t *testing.T) {
	e := NewCopy(Options{})
	op := operations[KindCopy]
	feedAll(t, NewAssembler(nil, e), []string{
		palletLine,
		crateLine(0),
		op.start(0),
		op.end(0),
		"DEBUG   02-08 01:01:00       lift:   56 {   'destination': 'D1'",
		op.start(1),
		op.end(1),
	})

	if len(e.Records()) != 2 {
		t.Fatalf("Expected 2 records but got %d", len(e.Records()))
	}
	first, second := e.Records()[0].(CopyRecord), e.Records()[1].(CopyRecord)
	if first.Source.Value != "S0" {
		t.Fatalf("Expected source 'S0' but got '%s'", first.Source)
	}
	if second.Source.Valid || second.Destination.Value != "D1" {
		t.Fatalf("Expected an unset source for D1 but got %v", second.Values())
	}
}

func TestAssembler_AbortSkipsPendingFinalize(t *testing.T) {
	task := newTaskExtractor()
	hashInsert := NewHashInsertTemp(Options{})
	a := NewAssembler(nil, task, hashInsert)
	if err := a.Feed("01:00:00 BEGIN"); err != nil {
		t.Fatal(err)
	}

	// END asks task to finalize; the missing timestamp fails hashinsert.
	err := a.Feed("END checking for changes...")
	var mc *MissingCaptureError
	if !errors.As(err, &mc) || mc.Extractor != KindHashInsert {
		t.Fatalf("Expected a hashinsert MissingCaptureError but got '%v'", err)
	}
	if len(task.Records()) != 0 {
		t.Fatalf("Expected no task record but got %d", len(task.Records()))
	}
	if !task.InProgress() {
		t.Fatal("Expected the task record to stay in progress")
	}
}
