package parser

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

var timeMatcher = regexp.MustCompile(`(\d{2}):(\d{2}):(\d{2})`)

// referenceHour is subtracted from both ends of a duration. Records that
// cross midnight are not supported.
const referenceHour = 1

// Clock is a wall-clock HH:MM:SS time read from a log line. The zero
// value is unset.
type Clock struct {
	Hour   int
	Minute int
	Second int
	Valid  bool
}

// ParseClock parses an exact "HH:MM:SS" string.
func ParseClock(s string) (Clock, error) {
	m := timeMatcher.FindStringSubmatch(s)
	if m == nil || len(m[0]) != len(s) {
		return Clock{}, errors.Errorf("invalid clock value: '%s'", s)
	}
	return clockFromMatch(m)
}

func clockFromMatch(m []string) (Clock, error) {
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])
	if h > 23 || mi > 59 || sec > 59 {
		return Clock{}, errors.Errorf("clock value out of range: '%s'", m[0])
	}
	return Clock{Hour: h, Minute: mi, Second: sec, Valid: true}, nil
}

// clockIn returns the first timestamp found in line.
func clockIn(line string) (Clock, error) {
	m := timeMatcher.FindStringSubmatch(line)
	if m == nil {
		return Clock{}, &MissingCaptureError{Pattern: timeMatcher.String()}
	}
	c, err := clockFromMatch(m)
	if err != nil {
		return Clock{}, &MissingCaptureError{Pattern: timeMatcher.String()}
	}
	return c, nil
}

func (c Clock) String() string {
	if !c.Valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// seconds counts from the reference hour.
func (c Clock) seconds() int {
	return (c.Hour-referenceHour)*3600 + c.Minute*60 + c.Second
}

// Elapsed returns end - start in seconds. ok is false when either clock
// is unset. A negative result means the timestamps are out of order.
func Elapsed(start, end Clock) (d int, ok bool) {
	if !start.Valid || !end.Valid {
		return 0, false
	}
	return end.seconds() - start.seconds(), true
}
