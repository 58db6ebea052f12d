package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/scan"
)

func fixtureReport() scan.Report {
	issues := scan.Run(scan.DefaultDetectors(),
		"ModuleNotFoundError: No module named 'RestrictedPython'\n"+
			"ImportError: cannot import name 'Foo' from 'pkg.bar'\n")
	return scan.NewReport(time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC), 1, issues)
}

func schemaPath(t *testing.T) string {
	t.Helper()
	_, file, _, _ := runtime.Caller(0)
	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	return filepath.Join(root, "schemas", "report.schema.json")
}

func TestRenderJSONFields(t *testing.T) {
	data, err := RenderJSON(fixtureReport())
	require.NoError(t, err)

	doc, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-04T00:00:00Z", doc.Timestamp)
	assert.Equal(t, 1, doc.ReturnCode)
	assert.Equal(t, 2, doc.TotalIssues)
	require.Len(t, doc.Issues, 2)
	assert.Equal(t, 2, doc.BySeverity.High)
	assert.Zero(t, doc.BySeverity.Medium)
	assert.Zero(t, doc.BySeverity.Low)
}

func TestRenderJSONIsByteStable(t *testing.T) {
	first, err := RenderJSON(fixtureReport())
	require.NoError(t, err)
	second, err := RenderJSON(fixtureReport())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderJSONEmptyReport(t *testing.T) {
	rep := scan.NewReport(time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC), 0, nil)
	data, err := RenderJSON(rep)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"issues": []`)
	doc, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Zero(t, doc.TotalIssues)
	assert.Zero(t, doc.BySeverity.Total())
}

func TestRenderTextHeader(t *testing.T) {
	text := RenderText(fixtureReport())
	lines := strings.Split(text, "\n")

	require.Greater(t, len(lines), 12)
	assert.Equal(t, 70, utf8.RuneCountInString(lines[0]))
	assert.Equal(t, "ULTIMA-PRIME CI DIAGNOSTIC REPORT", lines[1])
	assert.Equal(t, "Time: 2026-02-04T00:00:00Z", lines[2])
	assert.Equal(t, "Return code: 1", lines[3])
}

func TestMachineAndHumanArtifactsAgree(t *testing.T) {
	rep := fixtureReport()
	data, err := RenderJSON(rep)
	require.NoError(t, err)
	doc, err := ParseJSON(data)
	require.NoError(t, err)

	text := RenderText(rep)
	assert.Contains(t, text, "HIGH:     2")
	assert.Contains(t, text, "MEDIUM:   0")
	assert.Contains(t, text, "LOW:      0")
	assert.Contains(t, text, "TOTAL:    2")
	assert.Equal(t, doc.TotalIssues, doc.BySeverity.Total())
	assert.Equal(t, doc.TotalIssues, strings.Count(text, "\n["))
}

func TestRenderTextTruncatesContext(t *testing.T) {
	rep := scan.NewReport(time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC), 0, []scan.Issue{{
		Type:     "MissingDependency",
		Severity: scan.SeverityHigh,
		Context:  "l1\nl2\nl3\nl4\nl5\nl6\nl7",
		Fix:      "none",
	}})
	text := RenderText(rep)
	assert.Contains(t, text, "      l5")
	assert.NotContains(t, text, "l6")
}

func TestRenderTextIdentifierFallback(t *testing.T) {
	rep := scan.NewReport(time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC), 0, []scan.Issue{{
		Type:         "ImportError",
		Severity:     scan.SeverityHigh,
		ImportedName: "Foo",
		FromModule:   "pkg.bar",
		Context:      "x",
		Fix:          "check it",
	}})
	assert.Contains(t, RenderText(rep), "    Pattern: Foo")
}

func TestValidateAgainstSchema(t *testing.T) {
	data, err := RenderJSON(fixtureReport())
	require.NoError(t, err)
	assert.NoError(t, Validate(data, schemaPath(t)))
}

func TestValidateRejectsMissingFields(t *testing.T) {
	broken, err := json.Marshal(map[string]any{"timestamp": "2026-02-04T00:00:00Z"})
	require.NoError(t, err)
	assert.Error(t, Validate(broken, schemaPath(t)))
}

func TestWriteBothArtifacts(t *testing.T) {
	dir := t.TempDir()
	rep := fixtureReport()

	jsonPath, txtPath, err := Write(dir, rep)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.json"), jsonPath)
	assert.Equal(t, filepath.Join(dir, "report.txt"), txtPath)

	jsonData, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	expected, err := RenderJSON(rep)
	require.NoError(t, err)
	assert.Equal(t, expected, jsonData)

	txtData, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	assert.Equal(t, RenderText(rep), string(txtData))
}
