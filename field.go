package parser

import "strconv"

// Kind is the data type of an output column.
type Kind int

const (
	String Kind = iota
	Time
	Int64
)

func (k Kind) String() string {
	switch k {
	case Time:
		return "time"
	case Int64:
		return "int64"
	default:
		return "string"
	}
}

// Column describes one field of an extractor's output schema.
type Column struct {
	Name string
	Kind Kind
}

func header(schema []Column) []string {
	names := make([]string, 0, len(schema))
	for _, c := range schema {
		names = append(names, c.Name)
	}
	return names
}

// Text is a string field that may be unset.
type Text struct {
	Value string
	Valid bool
}

// NewText returns a set Text.
func NewText(s string) Text {
	return Text{Value: s, Valid: true}
}

func (t Text) String() string {
	if !t.Valid {
		return ""
	}
	return t.Value
}

// Count is an integer field that may be unset.
type Count struct {
	Value int64
	Valid bool
}

func (c Count) String() string {
	if !c.Valid {
		return ""
	}
	return strconv.FormatInt(c.Value, 10)
}

func durationString(d int, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.Itoa(d)
}
