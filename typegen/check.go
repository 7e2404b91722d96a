package typegen

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/stubgen/errors"
)

// CheckResult holds the result of an up-to-date check
type CheckResult struct {
	UpToDate bool
	// Differences lists files whose content differs, relative to the generated dir
	Differences []string
	// Missing lists generated files with no existing counterpart
	Missing []string
}

// CompareOutput compares freshly generated text with an existing file.
// With skipHeader the first line of each side is dropped, whatever it says.
// Lines starting with any of ignorePrefixes are ignored on both sides.
// Returns true when they differ.
func CompareOutput(generated string, existingPath string, skipHeader bool, ignorePrefixes ...string) (bool, error) {
	existing, err := os.ReadFile(existingPath)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", existingPath)
	}
	return contentDiffers([]byte(generated), existing, skipHeader, ignorePrefixes), nil
}

// CompareDirectories compares every file in generatedDir with the file of the
// same relative path in existingDir.
func CompareDirectories(generatedDir, existingDir string, skipHeader bool, ignorePrefixes []string) (*CheckResult, error) {
	result := &CheckResult{}

	err := filepath.Walk(generatedDir, func(genPath string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		relPath, err := filepath.Rel(generatedDir, genPath)
		if err != nil {
			return err
		}

		existingPath := filepath.Join(existingDir, relPath)
		if _, err := os.Stat(existingPath); os.IsNotExist(err) {
			result.Missing = append(result.Missing, relPath)
			return nil
		}

		different, err := filesAreDifferent(genPath, existingPath, skipHeader, ignorePrefixes)
		if err != nil {
			result.Differences = append(result.Differences, relPath+" (error: "+err.Error()+")")
		} else if different {
			result.Differences = append(result.Differences, relPath)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", generatedDir)
	}

	sort.Strings(result.Differences)
	sort.Strings(result.Missing)
	result.UpToDate = len(result.Differences) == 0 && len(result.Missing) == 0
	return result, nil
}

// filesAreDifferent compares two files the way CompareOutput does
func filesAreDifferent(file1, file2 string, skipHeader bool, ignorePrefixes []string) (bool, error) {
	content1, err := os.ReadFile(file1)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file1)
	}

	content2, err := os.ReadFile(file2)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file2)
	}

	return contentDiffers(content1, content2, skipHeader, ignorePrefixes), nil
}

func contentDiffers(a, b []byte, skipHeader bool, ignorePrefixes []string) bool {
	if !skipHeader && len(ignorePrefixes) == 0 {
		return !bytes.Equal(a, b)
	}
	return filterLines(a, skipHeader, ignorePrefixes) != filterLines(b, skipHeader, ignorePrefixes)
}

// filterLines drops the first line when skipHeader is set, then every line
// whose trimmed text starts with one of prefixes.
// Returns empty string if the scanner fails, which makes any comparison
// against real content report a difference.
func filterLines(content []byte, skipHeader bool, prefixes []string) string {
	var result strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(content))

	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if skipHeader {
				continue
			}
		}
		trimmed := strings.TrimSpace(line)

		skip := false
		for _, p := range prefixes {
			if p != "" && strings.HasPrefix(trimmed, p) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		result.WriteString(line)
		result.WriteString("\n")
	}

	if err := scanner.Err(); err != nil {
		return ""
	}

	return result.String()
}
