package convert

import (
	"fmt"
	"strings"
	"time"

	"github.com/koustreak/json2sqlite/internal/schema"
	"github.com/koustreak/json2sqlite/internal/shape"
)

// Status is the outcome of one table.
type Status string

const (
	StatusCreated Status = "created"
	StatusFailed  Status = "failed"
)

// TableOutcome records what happened to one planned table.
type TableOutcome struct {
	Name    string          `json:"name"`
	Status  Status          `json:"status"`
	Rows    int             `json:"rows"`
	Columns []schema.Column `json:"columns,omitempty"`
	Reason  string          `json:"reason,omitempty"`
}

// Report is the result of a conversion that got as far as writing.
// Per-table failures and skipped entries are recorded here rather than
// returned as errors.
type Report struct {
	ID         string          `json:"id"`
	Source     string          `json:"source"`
	Output     string          `json:"output"`
	SourceHash string          `json:"sourceHash"`
	Shape      shape.Kind      `json:"shape"`
	Tables     []TableOutcome  `json:"tables"`
	Warnings   []shape.Warning `json:"warnings"`
	StartedAt  time.Time       `json:"startedAt"`
	Duration   time.Duration   `json:"durationNs"`
}

// Created returns the number of tables written.
func (r *Report) Created() int {
	n := 0
	for _, t := range r.Tables {
		if t.Status == StatusCreated {
			n++
		}
	}
	return n
}

// Failed returns the number of tables that failed to persist.
func (r *Report) Failed() int {
	return len(r.Tables) - r.Created()
}

// OK reports whether every planned table was written.
func (r *Report) OK() bool {
	return r.Failed() == 0
}

// Summary is a one-line outcome.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d created, %d warned, %d failed", r.Created(), len(r.Warnings), r.Failed())
}

// Message renders the report for a person: the output path or the failure,
// followed by one line per warned and failed table.
func (r *Report) Message() string {
	var sb strings.Builder
	switch {
	case r.Created() == 0 && r.Failed() == 0:
		fmt.Fprintf(&sb, "No tables written from %s (%s)", r.Source, r.Summary())
	case r.OK():
		fmt.Fprintf(&sb, "Converted %s to %s (%s)", r.Source, r.Output, r.Summary())
	default:
		fmt.Fprintf(&sb, "Converted %s to %s with errors (%s)", r.Source, r.Output, r.Summary())
	}
	for _, t := range r.Tables {
		if t.Status == StatusCreated {
			fmt.Fprintf(&sb, "\n  created %s: %d rows", t.Name, t.Rows)
		}
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&sb, "\n  warning %s", w)
	}
	for _, t := range r.Tables {
		if t.Status == StatusFailed {
			fmt.Fprintf(&sb, "\n  failed %s: %s", t.Name, t.Reason)
		}
	}
	return sb.String()
}
