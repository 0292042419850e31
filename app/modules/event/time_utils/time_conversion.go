package eventtime

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ErrUnrecognized is returned when input is neither a known layout nor a
// natural-language date.
var ErrUnrecognized = errors.New("unrecognized date")

// Clock supplies the reference time relative dates are resolved against.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// AnchorClock always returns the same instant.
type AnchorClock struct {
	anchor time.Time
}

// NewAnchorClock creates a clock fixed at t.
func NewAnchorClock(t time.Time) AnchorClock { return AnchorClock{anchor: t} }

func (c AnchorClock) Now() time.Time { return c.anchor }

// Parser turns user date input into UTC instants.
type Parser interface {
	ParseDate(input string) (time.Time, error)
}

// TimeParser accepts fixed layouts first and falls back to natural language
// ("next friday at 9am", "tomorrow 18:00") resolved in Location.
type TimeParser struct {
	Location *time.Location
	clock    Clock
	when     *when.Parser
}

var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// "932am" becomes "9:32 am".
var compactTime = regexp.MustCompile(`\b(\d{1,2})(\d{2})(am|pm)\b`)

// NewTimeParser creates a parser resolving relative input against clock in loc.
// A nil loc means UTC.
func NewTimeParser(loc *time.Location, clock Clock) *TimeParser {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = SystemClock{}
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &TimeParser{Location: loc, clock: clock, when: w}
}

// ParseDate parses input and returns it in UTC.
func (p *TimeParser) ParseDate(input string) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty input: %w", ErrUnrecognized)
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, p.Location); err == nil {
			return t.UTC(), nil
		}
	}

	s = strings.ToLower(s)
	s = compactTime.ReplaceAllString(s, "$1:$2 $3")

	r, err := p.when.Parse(s, p.clock.Now().In(p.Location))
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%q: %w", input, ErrUnrecognized)
	}
	return r.Time.UTC(), nil
}
