// Package patch generates remediation artifacts for the failure kinds the
// scanner reports: patch instructions for missing dependencies and
// corrected-file patches for missing typing imports. It never edits the
// target tree in place; every fix is written under the patch directory for
// a human to review and apply.
package patch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SummaryFileName is the JSON summary written next to dependency patches.
const SummaryFileName = "DEPENDENCIES_PATCH_SUMMARY.json"

// DependencyPatch records one generated patch instruction.
type DependencyPatch struct {
	File       string `json:"file"`
	Dependency string `json:"dependency"`
	PatchFile  string `json:"patch_file"`
}

// DependencySummary lists every patch a run created.
type DependencySummary struct {
	TotalPatches int               `json:"total_patches"`
	Patches      []DependencyPatch `json:"patches"`
}

// GenerateDependencyPatches checks requirements.txt and pyproject.toml
// under root for each named dependency and writes a patch-instruction file
// per missing entry into patchDir, plus a JSON summary when any were
// created. Manifest files that do not exist are skipped, not errors.
func GenerateDependencyPatches(root string, deps []string, patchDir string) (DependencySummary, error) {
	if err := os.MkdirAll(patchDir, 0o755); err != nil {
		return DependencySummary{}, fmt.Errorf("failed to create patch dir: %w", err)
	}

	summary := DependencySummary{Patches: []DependencyPatch{}}
	for _, dep := range deps {
		dep = strings.TrimSpace(dep)
		if dep == "" {
			continue
		}

		if missingFrom(filepath.Join(root, "requirements.txt"), dep) {
			created, err := writePatch(patchDir, requirementsPatchName(dep), requirementsPatch(dep))
			if err != nil {
				return DependencySummary{}, err
			}
			summary.Patches = append(summary.Patches, DependencyPatch{
				File:       "requirements.txt",
				Dependency: dep,
				PatchFile:  created,
			})
		}

		if missingFrom(filepath.Join(root, "pyproject.toml"), dep) {
			created, err := writePatch(patchDir, pyprojectPatchName(dep), pyprojectPatch(dep))
			if err != nil {
				return DependencySummary{}, err
			}
			summary.Patches = append(summary.Patches, DependencyPatch{
				File:       "pyproject.toml",
				Dependency: dep,
				PatchFile:  created,
			})
		}
	}

	summary.TotalPatches = len(summary.Patches)
	if summary.TotalPatches > 0 {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return DependencySummary{}, fmt.Errorf("failed to encode patch summary: %w", err)
		}
		path := filepath.Join(patchDir, SummaryFileName)
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return DependencySummary{}, fmt.Errorf("failed to write patch summary: %w", err)
		}
	}
	return summary, nil
}

// missingFrom reports whether the manifest exists and lacks the dependency.
func missingFrom(manifest, dep string) bool {
	data, err := os.ReadFile(manifest)
	if err != nil {
		return false
	}
	return !strings.Contains(string(data), dep)
}

func writePatch(patchDir, name, content string) (string, error) {
	path := filepath.Join(patchDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write patch %s: %w", name, err)
	}
	return path, nil
}

func requirementsPatchName(dep string) string {
	return fmt.Sprintf("add_%s_to_requirements.txt", strings.ToLower(dep))
}

func pyprojectPatchName(dep string) string {
	return fmt.Sprintf("add_%s_to_pyproject.txt", strings.ToLower(dep))
}

func requirementsPatch(dep string) string {
	return fmt.Sprintf(`PATCH for requirements.txt:
Add the following line:

%s>=6.0

Run:
  echo "%s>=6.0" >> requirements.txt
`, dep, dep)
}

func pyprojectPatch(dep string) string {
	return fmt.Sprintf(`PATCH for pyproject.toml:
Add to [project] dependencies section:

  "%s>=6.0",

Or if using poetry:
  poetry add %s>=6.0
`, dep, dep)
}
