package patch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	optionalUse    = regexp.MustCompile(`Optional\s*\[`)
	optionalImport = regexp.MustCompile(`from\s+typing\s+import\s+.*\bOptional\b`)
	typingParen    = regexp.MustCompile(`from\s+typing\s+import\s*\(`)
	typingImport   = regexp.MustCompile(`^\s*from\s+typing\s+import`)
)

// Imports are only looked for near the top of the file.
const importScanLines = 50

// FixOptionalImports finds Python files under srcPath that use Optional[]
// without importing it and writes the corrected file content as a .patch
// file into patchDir. Sources are never modified in place. It returns the
// root-relative paths of the files that got a patch.
func FixOptionalImports(srcPath, patchDir string) ([]string, error) {
	if err := os.MkdirAll(patchDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create patch dir: %w", err)
	}

	patched := []string{}
	err := filepath.WalkDir(srcPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".py") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		text := string(data)
		if !optionalUse.MatchString(text) || hasOptionalImport(text) {
			return nil
		}

		fixed, ok := addOptionalImport(text)
		if !ok {
			return nil
		}

		rel, relErr := filepath.Rel(srcPath, path)
		if relErr != nil {
			rel = path
		}
		name := strings.ReplaceAll(filepath.ToSlash(rel), "/", "__")
		name = strings.TrimSuffix(name, ".py") + ".patch"
		if err := os.WriteFile(filepath.Join(patchDir, name), []byte(fixed), 0o644); err != nil {
			return fmt.Errorf("failed to write patch for %s: %w", rel, err)
		}
		patched = append(patched, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return patched, nil
}

func hasOptionalImport(text string) bool {
	return optionalImport.MatchString(text) || typingParen.MatchString(text)
}

// addOptionalImport returns the file content with Optional imported:
// extend an existing `from typing import` line (including the multi-line
// parenthesized form), or insert a fresh import after the leading import
// block.
func addOptionalImport(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	limit := min(importScanLines, len(lines))

	for i := 0; i < limit; i++ {
		line := lines[i]
		if !typingImport.MatchString(line) || strings.Contains(line, "Optional") {
			continue
		}
		if strings.Contains(line, "(") && !strings.Contains(line, ")") {
			for j := i + 1; j < len(lines); j++ {
				if idx := strings.Index(lines[j], ")"); idx >= 0 {
					lines[j] = lines[j][:idx] + ", Optional" + lines[j][idx:]
					return strings.Join(lines, "\n"), true
				}
			}
			return text, false
		}
		trimmed := strings.TrimRight(line, " \t")
		if strings.HasSuffix(trimmed, ")") {
			idx := strings.LastIndex(line, ")")
			lines[i] = line[:idx] + ", Optional" + line[idx:]
		} else {
			lines[i] = trimmed + ", Optional"
		}
		return strings.Join(lines, "\n"), true
	}

	insert := 0
scanLoop:
	for i := 0; i < limit; i++ {
		s := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(s, "import") || strings.HasPrefix(s, "from"):
			insert = i + 1
		case s == "" || strings.HasPrefix(s, "#"):
			continue
		default:
			break scanLoop
		}
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:insert]...)
	out = append(out, "from typing import Optional")
	out = append(out, lines[insert:]...)
	return strings.Join(out, "\n"), true
}
