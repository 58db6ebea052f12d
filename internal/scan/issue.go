// Package scan is the log-diagnostic engine: a fixed table of signature
// detectors that turn raw CI log text into typed, contextualized issues.
package scan

// Severity ranks how blocking a detected issue is for the CI run.
// It is fixed per detector, never computed from the match.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"

	// SeverityUnknown is the counting bucket for severities outside the
	// recognized set. Detectors never emit it directly.
	SeverityUnknown Severity = "UNKNOWN"
)

// Issue is one detected occurrence of a known failure signature in log
// text. The kind-specific fields (Dependency, Marker, ImportedName,
// FromModule) are populated only by detectors that extract them.
// Issues are never merged or deduplicated: every occurrence matters for
// triage, so repeated matches produce repeated Issues.
type Issue struct {
	Type         string   `json:"type"`
	Severity     Severity `json:"severity"`
	Pattern      string   `json:"pattern,omitempty"`
	Dependency   string   `json:"dependency,omitempty"`
	Marker       string   `json:"marker,omitempty"`
	ImportedName string   `json:"imported_name,omitempty"`
	FromModule   string   `json:"from_module,omitempty"`
	Context      string   `json:"context"`
	Fix          string   `json:"fix"`
}

// Identifier returns the value shown in place of a display pattern for
// detectors that extract one instead: the imported symbol or the marker
// name. Empty when the issue carries neither.
func (i Issue) Identifier() string {
	if i.ImportedName != "" {
		return i.ImportedName
	}
	if i.Marker != "" {
		return i.Marker
	}
	return i.Dependency
}
