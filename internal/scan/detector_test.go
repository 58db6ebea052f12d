package scan

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingDependencyDetection(t *testing.T) {
	text := "collecting ...\nModuleNotFoundError: No module named 'RestrictedPython'\n"
	issues := Run(DefaultDetectors(), text)

	require.Len(t, issues, 1)
	iss := issues[0]
	assert.Equal(t, "MissingDependency", iss.Type)
	assert.Equal(t, SeverityHigh, iss.Severity)
	assert.Equal(t, "RestrictedPython", iss.Dependency)
	assert.Equal(t, "Add 'RestrictedPython>=6.0' to requirements.txt or pyproject.toml", iss.Fix)
	assert.Contains(t, iss.Context, "ModuleNotFoundError")
}

func TestPydanticMigrationDetection(t *testing.T) {
	text := `name: str = Field(..., regex="^[a-z]+$")` + "\n"
	issues := Run(DefaultDetectors(), text)

	require.Len(t, issues, 1)
	assert.Equal(t, "PydanticV2Migration", issues[0].Type)
	assert.Equal(t, SeverityMedium, issues[0].Severity)
	assert.Equal(t, "Field(..., regex=...)", issues[0].Pattern)
}

func TestImportErrorExtraction(t *testing.T) {
	text := "ImportError: cannot import name 'Foo' from 'pkg.bar'\n"
	issues := Run(DefaultDetectors(), text)

	require.Len(t, issues, 1)
	iss := issues[0]
	assert.Equal(t, "ImportError", iss.Type)
	assert.Equal(t, "Foo", iss.ImportedName)
	assert.Equal(t, "pkg.bar", iss.FromModule)
	assert.Equal(t, "Check that 'Foo' is exported from module 'pkg.bar'", iss.Fix)
	assert.Empty(t, iss.Pattern)
	assert.Equal(t, "Foo", iss.Identifier())
}

func TestUnknownMarkerExtraction(t *testing.T) {
	text := "ERROR tests/test_slow.py - Unknown pytest.mark.integration\n"
	issues := Run(DefaultDetectors(), text)

	require.Len(t, issues, 1)
	iss := issues[0]
	assert.Equal(t, "UnknownPytestMarker", iss.Type)
	assert.Equal(t, "integration", iss.Marker)
	assert.Equal(t, "Register the 'integration' marker in pytest.ini or conftest.py", iss.Fix)
	assert.Equal(t, "integration", iss.Identifier())
}

func TestMissingOptionalDetection(t *testing.T) {
	text := "tests/test_models.py:12: NameError: name 'Optional' is not defined\n"
	issues := Run(DefaultDetectors(), text)

	require.Len(t, issues, 1)
	assert.Equal(t, "MissingOptionalImport", issues[0].Type)
	assert.Equal(t, SeverityHigh, issues[0].Severity)
}

func TestNoMatchesYieldsEmptyIssueList(t *testing.T) {
	issues := Run(DefaultDetectors(), "all 132 tests passed\n")
	require.NotNil(t, issues)
	assert.Empty(t, issues)
}

func TestRepeatedMatchesAreNotDeduplicated(t *testing.T) {
	text := "ModuleNotFoundError: No module named 'RestrictedPython'\n" +
		"retrying...\n" +
		"ModuleNotFoundError: No module named 'RestrictedPython'\n"
	issues := Run(DefaultDetectors(), text)

	require.Len(t, issues, 2)
	assert.Equal(t, issues[0].Type, issues[1].Type)
}

func TestIssueOrderFollowsDetectorRegistration(t *testing.T) {
	// The ImportError line comes first in the text, but MissingDependency
	// is registered earlier, so its issue must come first.
	text := "ImportError: cannot import name 'Foo' from 'pkg.bar'\n" +
		"ModuleNotFoundError: No module named 'RestrictedPython'\n"
	issues := Run(DefaultDetectors(), text)

	require.Len(t, issues, 2)
	assert.Equal(t, "MissingDependency", issues[0].Type)
	assert.Equal(t, "ImportError", issues[1].Type)
}

func TestScanIsDeterministic(t *testing.T) {
	text := "ModuleNotFoundError: No module named 'RestrictedPython'\n" +
		"ImportError: cannot import name 'Foo' from 'pkg.bar'\n" +
		`Field(..., regex="^x$")` + "\n"

	first := Run(DefaultDetectors(), text)
	second := Run(DefaultDetectors(), text)
	assert.Equal(t, first, second)
}

func TestFailingExtractionSkipsMatchOnly(t *testing.T) {
	bad := Detector{
		Name:     "Broken",
		Severity: SeverityLow,
		Pattern:  regexp.MustCompile(`broken`),
		Extract: func(groups []string, iss *Issue) {
			iss.Marker = groups[7] // out of range on purpose
		},
	}
	detectors := append([]Detector{bad}, DefaultDetectors()...)

	text := "broken\nModuleNotFoundError: No module named 'RestrictedPython'\n"
	issues := Run(detectors, text)

	require.Len(t, issues, 1)
	assert.Equal(t, "MissingDependency", issues[0].Type)
}
