package parser

import (
	"regexp"
	"strconv"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules"
	"github.com/olebedev/when/rules/en"
)

// DateMatch is a date expression found in a message: the exact source text
// and the instant it resolves to.
type DateMatch struct {
	Text string
	Time time.Time
}

// DateRecognizer finds the leftmost date expression in text. Fields the text
// leaves unspecified are taken from base.
type DateRecognizer interface {
	Recognize(text string, base time.Time) (DateMatch, bool)
}

// leadingPreposition is an "at" or "on" right in front of a date expression,
// as in "Meeting at 3pm" or "Pay rent on 11/01".
var leadingPreposition = regexp.MustCompile(`(?i)(?:^|\s)((?:at|on)\s+)$`)

type WhenRecognizer struct {
	parser *when.Parser
}

// NewWhenRecognizer recognizes English expressions and US numeric dates.
func NewWhenRecognizer() *WhenRecognizer {
	w := when.New(nil)
	for _, rule := range en.All {
		w.Add(wholeSeconds{rule})
	}
	w.Add(MonthDay())

	return &WhenRecognizer{parser: w}
}

// Recognize does its calendar arithmetic on the wall clock of base: across a
// daylight saving change "tomorrow" still lands on the clock time of base.
func (r *WhenRecognizer) Recognize(text string, base time.Time) (DateMatch, bool) {
	zone, offset := base.Zone()

	result, err := r.parser.Parse(text, base.In(time.FixedZone(zone, offset)))
	if err != nil || result == nil {
		return DateMatch{}, false
	}

	t := result.Time
	match := DateMatch{
		Text: result.Text,
		Time: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), base.Location()),
	}

	if loc := leadingPreposition.FindStringSubmatchIndex(text[:result.Index]); loc != nil {
		match.Text = text[loc[2] : result.Index+len(result.Text)]
	}

	return match, true
}

// wholeSeconds sets the seconds to zero whenever the wrapped rule names a
// clock time without them, so "noon" is 12:00:00.
type wholeSeconds struct {
	rules.Rule
}

func (r wholeSeconds) Find(text string) *rules.Match {
	m := r.Rule.Find(text)
	if m == nil {
		return nil
	}

	apply := m.Applier
	m.Applier = func(m *rules.Match, c *rules.Context, o *rules.Options, ref time.Time) (bool, error) {
		ok, err := apply(m, c, o, ref)
		if ok && c.Hour != nil && c.Second == nil {
			c.Second = pointer.ToInt(0)
		}
		return ok, err
	}

	return m
}

// MonthDay recognizes numeric dates written month first: 11/01, 3/7/2027.
// Without a year it picks the next occurrence of that day, today included.
func MonthDay() rules.Rule {
	return &rules.F{
		RegExp: regexp.MustCompile(`(?:\W|^)(0?[1-9]|1[0-2])[/\\](0?[1-9]|[12][0-9]|3[01])(?:[/\\]([12][0-9]{3}))?(?:\W|$)`),
		Applier: func(m *rules.Match, c *rules.Context, o *rules.Options, ref time.Time) (bool, error) {
			month, err := strconv.Atoi(m.Captures[0])
			if err != nil {
				return false, err
			}
			day, err := strconv.Atoi(m.Captures[1])
			if err != nil {
				return false, err
			}

			year := ref.Year()
			if m.Captures[2] != "" {
				if year, err = strconv.Atoi(m.Captures[2]); err != nil {
					return false, err
				}
			} else if time.Month(month) < ref.Month() || time.Month(month) == ref.Month() && day < ref.Day() {
				year++
			}

			if day > daysIn(time.Month(month), year) {
				return false, nil
			}

			// Moving by a duration rather than setting month then day keeps
			// the 31st of a month from overflowing into the next one.
			target := time.Date(year, time.Month(month), day, ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
			c.Duration = target.Sub(ref)

			return true, nil
		},
	}
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
