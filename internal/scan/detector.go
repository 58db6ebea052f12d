package scan

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Detector pairs a text-matching rule with a fixed classification and a
// remediation hint. Detectors are independent: a match by one never
// suppresses or alters another's, and none of them mutate the log text.
type Detector struct {
	// Name is the issue kind reported for every match.
	Name string
	// Severity is fixed per detector.
	Severity Severity
	// Pattern is scanned for all non-overlapping matches.
	Pattern *regexp.Regexp
	// Display is the literal pattern shown in reports. Empty means the
	// report falls back to the identifier the detector extracts.
	Display string
	// Before and After bound the context window around each match.
	Before, After int
	// Extract, when set, populates kind-specific Issue fields from the
	// match's submatch groups.
	Extract func(groups []string, iss *Issue)
	// Hint is the remediation template. Placeholders like {dependency}
	// are filled from the extracted fields.
	Hint string
}

// DefaultDetectors returns the registered detector table in scan order.
// The returned slice is freshly allocated; callers may extend it without
// affecting other scans.
func DefaultDetectors() []Detector {
	return []Detector{
		{
			Name:     "MissingOptionalImport",
			Severity: SeverityHigh,
			Pattern:  regexp.MustCompile(`(?i)NameError: name 'Optional' is not defined.*?\n`),
			Display:  "NameError: name 'Optional' is not defined",
			Before:   300,
			After:    200,
			Hint:     "Add 'from typing import Optional' to the imports",
		},
		{
			Name:     "MissingDependency",
			Severity: SeverityHigh,
			Pattern:  regexp.MustCompile(`ModuleNotFoundError: No module named 'RestrictedPython'`),
			Display:  "ModuleNotFoundError: No module named 'RestrictedPython'",
			Before:   300,
			After:    200,
			Extract: func(groups []string, iss *Issue) {
				iss.Dependency = "RestrictedPython"
			},
			Hint: "Add '{dependency}>=6.0' to requirements.txt or pyproject.toml",
		},
		{
			Name:     "PydanticV2Migration",
			Severity: SeverityMedium,
			Pattern:  regexp.MustCompile(`Field\([^)]*regex=`),
			Display:  "Field(..., regex=...)",
			Before:   300,
			After:    200,
			Hint:     "Replace 'regex=' with 'pattern=' (Pydantic v2)",
		},
		{
			Name:     "UnknownPytestMarker",
			Severity: SeverityMedium,
			Pattern:  regexp.MustCompile(`ERROR.*[Uu]nknown pytest\.mark\.(\w+)`),
			Before:   200,
			After:    200,
			Extract: func(groups []string, iss *Issue) {
				iss.Marker = groups[1]
			},
			Hint: "Register the '{marker}' marker in pytest.ini or conftest.py",
		},
		{
			Name:     "ImportError",
			Severity: SeverityHigh,
			Pattern:  regexp.MustCompile(`ImportError: cannot import name '(\w+)' from '([^']+)'`),
			Before:   200,
			After:    200,
			Extract: func(groups []string, iss *Issue) {
				iss.ImportedName = groups[1]
				iss.FromModule = groups[2]
			},
			Hint: "Check that '{imported_name}' is exported from module '{from_module}'",
		},
	}
}

// Run scans text with every detector in order and returns the flattened
// issue list: detector order first, match order within each detector.
// A detector with zero matches contributes nothing; that is not an error.
func Run(detectors []Detector, text string) []Issue {
	issues := []Issue{}
	for _, d := range detectors {
		issues = append(issues, d.scan(text)...)
	}
	return issues
}

func (d Detector) scan(text string) []Issue {
	locs := d.Pattern.FindAllStringSubmatchIndex(text, -1)
	issues := make([]Issue, 0, len(locs))
	for _, loc := range locs {
		iss, err := d.buildIssue(text, loc)
		if err != nil {
			// A malformed extraction must not abort the whole scan.
			slog.Warn("detector failed on match, skipping", "detector", d.Name, "error", err)
			continue
		}
		issues = append(issues, iss)
	}
	return issues
}

func (d Detector) buildIssue(text string, loc []int) (iss Issue, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extraction failed: %v", r)
		}
	}()

	iss = Issue{
		Type:     d.Name,
		Severity: d.Severity,
		Pattern:  d.Display,
		Context:  Window(text, loc[0], loc[1], d.Before, d.After),
	}
	if d.Extract != nil {
		d.Extract(submatches(text, loc), &iss)
	}
	iss.Fix = renderHint(d.Hint, iss)
	return iss, nil
}

// submatches materializes the submatch groups for one FindAllStringSubmatchIndex
// entry. Group 0 is the full match; unmatched groups are empty strings.
func submatches(text string, loc []int) []string {
	groups := make([]string, 0, len(loc)/2)
	for i := 0; i+1 < len(loc); i += 2 {
		if loc[i] < 0 || loc[i+1] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, text[loc[i]:loc[i+1]])
	}
	return groups
}

func renderHint(hint string, iss Issue) string {
	out := hint
	out = strings.ReplaceAll(out, "{dependency}", iss.Dependency)
	out = strings.ReplaceAll(out, "{marker}", iss.Marker)
	out = strings.ReplaceAll(out, "{imported_name}", iss.ImportedName)
	out = strings.ReplaceAll(out, "{from_module}", iss.FromModule)
	return out
}
