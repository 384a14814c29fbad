package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/mailru/easyjson/jwriter"
	"github.com/spaolacci/murmur3"
)

// WriteCSV writes the header of e and one comma separated row per record.
// Values are not escaped.
func WriteCSV(w io.Writer, e Extractor) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(e.Header(), ","))
	bw.WriteByte('\n')
	for _, r := range e.Records() {
		bw.WriteString(strings.Join(r.Values(), ","))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteJSONLines writes one JSON object per record. Unset fields are null.
func WriteJSONLines(w io.Writer, e Extractor) error {
	jw := &jwriter.Writer{}
	for _, r := range e.Records() {
		r.MarshalEasyJSON(jw)
		jw.RawByte('\n')
	}
	if jw.Error != nil {
		return jw.Error
	}
	_, err := jw.DumpTo(w)
	return err
}

// Fingerprint is a murmur3 digest of the CSV output of e.
func Fingerprint(e Extractor) []byte {
	h := murmur3.New128()
	// hash.Hash writes never fail.
	_ = WriteCSV(h, e)
	return h.Sum(nil)
}

// RecordHash identifies a record of the given kind by its values.
func RecordHash(kind string, r Record) []byte {
	h := murmur3.New128()
	h.Write([]byte(kind))
	for _, v := range r.Values() {
		h.Write([]byte{0})
		h.Write([]byte(v))
	}
	return h.Sum(nil)
}

func writeText(w *jwriter.Writer, t Text) {
	if !t.Valid {
		w.RawString("null")
		return
	}
	w.String(t.Value)
}

func writeClock(w *jwriter.Writer, c Clock) {
	if !c.Valid {
		w.RawString("null")
		return
	}
	w.String(c.String())
}

func writeCount(w *jwriter.Writer, c Count) {
	if !c.Valid {
		w.RawString("null")
		return
	}
	w.Int64(c.Value)
}

func writeDuration(w *jwriter.Writer, d int, ok bool) {
	if !ok {
		w.RawString("null")
		return
	}
	w.Int(d)
}

func writeWarning(w *jwriter.Writer, warning string) {
	if warning == "" {
		return
	}
	w.RawString(`,"warning":`)
	w.String(warning)
}
