// Package corpus is the typed view over the raw test files: file, case and
// test structures plus the flattened views the auditors consume.
package corpus

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// Test is one (input value, expected outcome) pair under a Case's schema.
// Plain-suite tests carry Valid; output-suite tests carry Result instead.
type Test struct {
	Description string          `json:"description"`
	Comment     string          `json:"comment,omitempty"`
	Data        json.RawMessage `json:"data"`
	Valid       *bool           `json:"valid,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

// Case is a schema plus the named group of tests that share it.
type Case struct {
	Description string          `json:"description"`
	Comment     string          `json:"comment,omitempty"`
	Schema      json.RawMessage `json:"schema"`
	Tests       []Test          `json:"tests"`
}

// SchemaValue decodes the case schema into plain Go values
// (map[string]any, []any, bool, ...).
func (c *Case) SchemaValue() (any, error) {
	var v any
	if err := json.Unmarshal(c.Schema, &v); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return v, nil
}

// TestFile is one JSON document of the corpus. A parse failure does not abort
// the scan; it is carried in Err and reported by the conformance checker.
type TestFile struct {
	Path  string
	Raw   []byte
	Cases []Case
	Err   error
}

// OwnedCase is a case annotated with the path of its file.
type OwnedCase struct {
	Path string
	Case *Case
}

// OwnedTest is a test annotated with its owning case, so validation has
// schema, data and expectation together.
type OwnedTest struct {
	Path string
	Case *Case
	Test *Test
}

// LoadFile reads and decodes one test file. Decode failures are recorded in
// the returned TestFile, never returned as an error.
func LoadFile(path string) TestFile {
	raw, err := os.ReadFile(path)
	if err != nil {
		return TestFile{Path: path, Err: fmt.Errorf("read: %w", err)}
	}
	file := TestFile{Path: path, Raw: raw}
	if err := json.Unmarshal(raw, &file.Cases); err != nil {
		file.Cases = nil
		file.Err = fmt.Errorf("parse: %w", err)
	}
	return file
}

// Load discovers and decodes every test file under the given roots.
func Load(roots ...string) ([]TestFile, error) {
	paths, err := Discover(roots...)
	if err != nil {
		return nil, err
	}
	files := make([]TestFile, 0, len(paths))
	for _, path := range paths {
		files = append(files, LoadFile(path))
	}
	return files, nil
}

// AllCases flattens files into their cases, skipping unparseable files.
func AllCases(files []TestFile) []OwnedCase {
	var cases []OwnedCase
	for i := range files {
		for j := range files[i].Cases {
			cases = append(cases, OwnedCase{Path: files[i].Path, Case: &files[i].Cases[j]})
		}
	}
	return cases
}

// AllTests flattens files into their tests with case back-references.
func AllTests(files []TestFile) []OwnedTest {
	var tests []OwnedTest
	for i := range files {
		for j := range files[i].Cases {
			c := &files[i].Cases[j]
			for k := range c.Tests {
				tests = append(tests, OwnedTest{Path: files[i].Path, Case: c, Test: &c.Tests[k]})
			}
		}
	}
	return tests
}
