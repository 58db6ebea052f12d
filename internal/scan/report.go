package scan

import "time"

// Report is the complete, immutable aggregation of one scan. It is built
// once per invocation, serialized to the two report artifacts, and
// discarded; nothing persists across runs.
type Report struct {
	Timestamp  time.Time
	ReturnCode int
	Issues     []Issue
}

// NewReport builds a Report from the issues produced by Run. The issue
// slice is copied so later mutation by the caller cannot leak in.
func NewReport(ts time.Time, returnCode int, issues []Issue) Report {
	copied := make([]Issue, len(issues))
	copy(copied, issues)
	return Report{Timestamp: ts, ReturnCode: returnCode, Issues: copied}
}

// TotalIssues is the length of the issue sequence.
func (r Report) TotalIssues() int {
	return len(r.Issues)
}

// CountBySeverity counts issues into the three recognized buckets in a
// single pass. The HIGH, MEDIUM and LOW keys are always present, even at
// zero. A severity outside the recognized set is counted under UNKNOWN
// rather than silently dropped.
func CountBySeverity(issues []Issue) map[Severity]int {
	counts := map[Severity]int{
		SeverityHigh:   0,
		SeverityMedium: 0,
		SeverityLow:    0,
	}
	for _, iss := range issues {
		switch iss.Severity {
		case SeverityHigh, SeverityMedium, SeverityLow:
			counts[iss.Severity]++
		default:
			counts[SeverityUnknown]++
		}
	}
	return counts
}
