// Package parser turns the free text of an SMS into a model.Thought.
//
// A message is consumed in four passes, each removing what it matched before
// the next one runs: the first natural-language date expression becomes the
// due date, every #token becomes a tag, the first >token becomes the status,
// and whatever is left, trimmed and with runs of spaces collapsed, is the name.
//
//	"Team sync tomorrow at 3pm #work >todo"
//	=> Name: "Team sync", Tags: [work], Status: todo, DueDate: <tomorrow>T15:00:00
package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/CedricFinance/thought_catcher/model"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	dateTimeLayout = dateLayout + "T" + timeLayout
)

var (
	tagRegex        = regexp.MustCompile(`#(\S+)`)
	statusRegex     = regexp.MustCompile(`>(\S+)`)
	extraSpaceRegex = regexp.MustCompile(`  +`)
)

type Parser struct {
	dates    DateRecognizer
	now      func() time.Time
	location *time.Location
}

type Option func(*Parser)

func WithRecognizer(recognizer DateRecognizer) Option {
	return func(p *Parser) {
		p.dates = recognizer
	}
}

// WithClock replaces time.Now as the source of the parse instant.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// WithLocation sets the time zone due dates are expressed in. Defaults to
// time.Local.
func WithLocation(location *time.Location) Option {
	return func(p *Parser) {
		if location != nil {
			p.location = location
		}
	}
}

func New(opts ...Option) *Parser {
	p := &Parser{
		now:      time.Now,
		location: time.Local,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.dates == nil {
		p.dates = NewWhenRecognizer()
	}

	return p
}

var defaultParser = New()

// Parse parses message with a parser using the local time zone and the
// English date rules.
func Parse(message string) model.Thought {
	return defaultParser.Parse(message)
}

// Parse never fails: features missing from the message are left unset.
func (p *Parser) Parse(message string) model.Thought {
	now := p.now().In(p.location)

	var thought model.Thought

	if match, ok := p.dates.Recognize(message, now); ok {
		thought.DueDate = formatDueDate(match.Time.In(p.location), now)
		message = strings.Replace(message, match.Text, "", 1)
	}

	for _, submatch := range tagRegex.FindAllStringSubmatch(message, -1) {
		thought.Tags = append(thought.Tags, submatch[1])
	}
	message = tagRegex.ReplaceAllString(message, "")

	if loc := statusRegex.FindStringSubmatchIndex(message); loc != nil {
		thought.Status = message[loc[2]:loc[3]]
		message = message[:loc[0]] + message[loc[1]:]
	}

	thought.Name = NormalizeName(message)

	return thought
}

// formatDueDate drops the time of day when it is identical to the time of day
// of now. The recognizer fills unspecified clock fields from its base instant,
// so that equality is the only sign the message named a day but no time. A
// message naming the current time to the second is downgraded to a bare date.
func formatDueDate(due time.Time, now time.Time) string {
	if due.Format(timeLayout) == now.Format(timeLayout) {
		return due.Format(dateLayout)
	}
	return due.Format(dateTimeLayout)
}

// NormalizeName trims s and collapses runs of spaces into a single space.
func NormalizeName(s string) string {
	return extraSpaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}
