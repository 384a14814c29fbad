package parser

import (
	"strings"
	"unicode/utf8"

	unidecode "github.com/mozillazg/go-unidecode"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const bom = "\ufeff"

var charmaps = map[string]*charmap.Charmap{
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"cp437":        charmap.CodePage437,
}

// Decoder turns raw log lines into UTF-8. Forklift writes its logs in the
// code page of the Windows host.
type Decoder struct {
	dec   *encoding.Decoder
	ascii bool
	first bool
}

// NewDecoder returns a decoder for the named encoding. "utf-8" and "" do
// not use a code page. When ascii is set, decoded lines are transliterated
// to ASCII.
func NewDecoder(name string, ascii bool) (*Decoder, error) {
	d := &Decoder{ascii: ascii, first: true}
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "utf-8", "utf8":
	default:
		cm, ok := charmaps[name]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownEncoding, "'%s'", name)
		}
		d.dec = cm.NewDecoder()
	}
	return d, nil
}

// Decode converts one line.
func (d *Decoder) Decode(line string) string {
	if d.first {
		d.first = false
		line = strings.TrimPrefix(line, bom)
	}
	line = d.decodeCharset(line)
	if d.ascii {
		return unidecode.Unidecode(line)
	}
	return line
}

func (d *Decoder) decodeCharset(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	if d.dec != nil {
		utf, err := d.dec.String(s)
		if err == nil {
			return utf
		}
	}
	return unidecode.Unidecode(strings.ToValidUTF8(s, "?"))
}
