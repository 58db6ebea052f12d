// Package report renders a scan.Report into its two sibling artifacts:
// a machine-readable JSON document and a human-readable text document.
// Both are pure functions of the same Report, so they always describe the
// same issue set.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/scan"
)

// Document is the machine report contract. Field names and nesting are
// stable for downstream consumers; see schemas/report.schema.json.
type Document struct {
	Timestamp   string       `json:"timestamp"`
	ReturnCode  int          `json:"return_code"`
	TotalIssues int          `json:"total_issues"`
	Issues      []scan.Issue `json:"issues"`
	BySeverity  BySeverity   `json:"by_severity"`
}

// BySeverity carries the three recognized buckets. UNKNOWN appears only
// when an unrecognized severity was counted.
type BySeverity struct {
	High    int `json:"HIGH"`
	Medium  int `json:"MEDIUM"`
	Low     int `json:"LOW"`
	Unknown int `json:"UNKNOWN,omitempty"`
}

// Total sums every bucket, UNKNOWN included.
func (b BySeverity) Total() int {
	return b.High + b.Medium + b.Low + b.Unknown
}

// NewDocument flattens a Report into the machine document shape.
func NewDocument(rep scan.Report) Document {
	counts := scan.CountBySeverity(rep.Issues)
	issues := rep.Issues
	if issues == nil {
		issues = []scan.Issue{}
	}
	return Document{
		Timestamp:   rep.Timestamp.UTC().Format(time.RFC3339),
		ReturnCode:  rep.ReturnCode,
		TotalIssues: len(issues),
		Issues:      issues,
		BySeverity: BySeverity{
			High:    counts[scan.SeverityHigh],
			Medium:  counts[scan.SeverityMedium],
			Low:     counts[scan.SeverityLow],
			Unknown: counts[scan.SeverityUnknown],
		},
	}
}

// RenderJSON produces the machine artifact. Output is byte-stable for a
// given Report and timestamp. HTML escaping is off so fix hints like
// '>=6.0' stay readable in the artifact.
func RenderJSON(rep scan.Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(rep)); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseJSON reads a previously written machine artifact back into a
// Document, for consumers like the browse command.
func ParseJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse report: %w", err)
	}
	return doc, nil
}
