package parser

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Action tells the dispatcher what to do after a setter ran.
type Action int

const (
	// Continue keeps the record open.
	Continue Action = iota
	// FinalizeRecord asks for the current record to be stored once every
	// setter of the line has run.
	FinalizeRecord
)

// Setter updates an extractor's in-progress record from a matched line.
type Setter func(line string) (Action, error)

// Registry maps marker substrings to the setters they trigger. Markers and
// the setters of each marker are kept in registration order.
type Registry struct {
	markers []string
	setters map[string][]Setter
}

// Register appends s to the setters of marker.
func (r *Registry) Register(marker string, s Setter) {
	if r.setters == nil {
		r.setters = make(map[string][]Setter)
	}
	if _, ok := r.setters[marker]; !ok {
		r.markers = append(r.markers, marker)
	}
	r.setters[marker] = append(r.setters[marker], s)
}

// Markers returns the registered markers in registration order.
func (r *Registry) Markers() []string {
	return append([]string(nil), r.markers...)
}

// Dispatch runs the setters of every marker contained in line. The
// returned action is FinalizeRecord if at least one setter asked for it.
func (r *Registry) Dispatch(line string) (Action, error) {
	result := Continue
	for _, marker := range r.markers {
		if !strings.Contains(line, marker) {
			continue
		}
		for _, s := range r.setters[marker] {
			action, err := s(line)
			if err != nil {
				var mc *MissingCaptureError
				if errors.As(err, &mc) {
					mc.Marker = marker
					mc.Line = line
				}
				return Continue, err
			}
			if action == FinalizeRecord {
				result = FinalizeRecord
			}
		}
	}
	return result, nil
}

// capture returns the first group of re in line.
func capture(re *regexp.Regexp, line string) (string, error) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", &MissingCaptureError{Pattern: re.String()}
	}
	return strings.TrimSpace(m[1]), nil
}

// textSetter captures re from the line and hands it to assign.
func textSetter(re *regexp.Regexp, assign func(Text)) Setter {
	return func(line string) (Action, error) {
		v, err := capture(re, line)
		if err != nil {
			return Continue, err
		}
		assign(NewText(v))
		return Continue, nil
	}
}

// clockSetter reads the line timestamp, hands it to assign and returns action.
func clockSetter(assign func(Clock), action Action) Setter {
	return func(line string) (Action, error) {
		c, err := clockIn(line)
		if err != nil {
			return Continue, err
		}
		assign(c)
		return action, nil
	}
}
