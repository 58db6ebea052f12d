package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/scan"
)

const (
	borderWidth = 70
	title       = "ULTIMA-PRIME CI DIAGNOSTIC REPORT"

	// contextLines caps how much stored context each issue block shows.
	contextLines = 5
)

var border = strings.Repeat("═", borderWidth)

// RenderText produces the human artifact: a bordered header, a severity
// summary, then one numbered block per issue. Output is byte-stable for a
// given Report and timestamp.
func RenderText(rep scan.Report) string {
	counts := scan.CountBySeverity(rep.Issues)

	lines := []string{
		border,
		title,
		"Time: " + rep.Timestamp.UTC().Format(time.RFC3339),
		fmt.Sprintf("Return code: %d", rep.ReturnCode),
		border,
		"",
		fmt.Sprintf("HIGH:     %d", counts[scan.SeverityHigh]),
		fmt.Sprintf("MEDIUM:   %d", counts[scan.SeverityMedium]),
		fmt.Sprintf("LOW:      %d", counts[scan.SeverityLow]),
		fmt.Sprintf("TOTAL:    %d", rep.TotalIssues()),
		"",
		border,
	}

	for i, iss := range rep.Issues {
		lines = append(lines,
			"",
			fmt.Sprintf("[%d] %s - %s", i+1, iss.Type, iss.Severity),
			"    Pattern: "+displayPattern(iss),
			"    Fix: "+displayFix(iss),
			"    Context:",
		)
		for _, ctx := range truncateContext(iss.Context) {
			lines = append(lines, "      "+ctx)
		}
	}

	return strings.Join(lines, "\n") + "\n"
}

func displayPattern(iss scan.Issue) string {
	if iss.Pattern != "" {
		return iss.Pattern
	}
	if id := iss.Identifier(); id != "" {
		return id
	}
	return "N/A"
}

func displayFix(iss scan.Issue) string {
	if iss.Fix != "" {
		return iss.Fix
	}
	return "Manual review needed"
}

func truncateContext(ctx string) []string {
	lines := strings.Split(ctx, "\n")
	if len(lines) > contextLines {
		lines = lines[:contextLines]
	}
	return lines
}
