package model

import (
	"strings"
	"time"
)

type SMS struct {
	From string
	Body string
}

// Thought is the structured form of one inbound message. Optional fields are
// absent when empty: a parsed Status or DueDate is never the empty string and
// Tags is nil rather than empty.
type Thought struct {
	Name    string   `json:"name"`
	Tags    []string `json:"tags,omitempty"`
	Status  string   `json:"status,omitempty"`
	DueDate string   `json:"dueDate,omitempty"`
}

func (t Thought) HasDueDate() bool {
	return t.DueDate != ""
}

// DueDateHasTime reports whether DueDate carries a time of day
// (YYYY-MM-DDTHH:MM:SS) rather than a bare date.
func (t Thought) DueDateHasTime() bool {
	return strings.Contains(t.DueDate, "T")
}

type ThoughtRecord struct {
	Id        string
	Thought   Thought
	CreatedAt time.Time
}
