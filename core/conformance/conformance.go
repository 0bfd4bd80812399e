// Package conformance validates the corpus against its own schemas: every
// case schema against the structural metaschema for its draft, and every test
// file against the suite-shape meta-schema for its kind.
package conformance

import (
	"embed"
	"fmt"

	"github.com/kaptinlin/jsonschema"

	"github.com/arpitjain799/jsonschema/core/corpus"
	"github.com/arpitjain799/jsonschema/core/draft"
	"github.com/arpitjain799/jsonschema/internal/logging"
)

//go:embed metaschemas/*.json suite/*.json
var schemaFS embed.FS

// SuiteKind selects which suite-shape meta-schema applies to a file.
type SuiteKind string

const (
	PlainSuite  SuiteKind = "plain"
	OutputSuite SuiteKind = "output"
)

// Violation is one conformance finding. Kind is "malformed", "metaschema" or
// "suite-shape". Findings accumulate; none aborts the pass.
type Violation struct {
	Kind            string
	Draft           draft.Draft
	Path            string
	CaseDescription string
	Detail          string
}

func (v Violation) String() string {
	if v.CaseDescription != "" {
		return fmt.Sprintf("%s: %s: %q: %s", v.Kind, v.Path, v.CaseDescription, v.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", v.Kind, v.Path, v.Detail)
}

// The metaschema for latest is the newest stable one; latest tracks it until
// the next draft is cut.
var metaschemaFiles = map[draft.Draft]string{
	draft.Draft4:      "metaschemas/draft4.json",
	draft.Draft6:      "metaschemas/draft6.json",
	draft.Draft7:      "metaschemas/draft7.json",
	draft.Draft201909: "metaschemas/draft2019-09.json",
	draft.Draft202012: "metaschemas/draft2020-12.json",
	draft.Latest:      "metaschemas/draft2020-12.json",
}

// Checker holds the compiled metaschemas and suite meta-schemas. Drafts whose
// metaschema fails to compile lose their validation capability and are
// skipped with a notice, never failing the run.
type Checker struct {
	meta        map[draft.Draft]*jsonschema.Schema
	suiteShapes map[SuiteKind]*jsonschema.Schema
	missing     []draft.Draft
}

// NewChecker compiles every embedded schema it can and records the rest as
// missing capabilities.
func NewChecker() *Checker {
	log := logging.New("conformance")
	checker := &Checker{
		meta:        make(map[draft.Draft]*jsonschema.Schema),
		suiteShapes: make(map[SuiteKind]*jsonschema.Schema),
	}
	for _, d := range draft.All() {
		schema, err := compileEmbedded(metaschemaFiles[d])
		if err != nil {
			log.Warn("no validation capability", "draft", d.String(), "error", err.Error())
			checker.missing = append(checker.missing, d)
			continue
		}
		checker.meta[d] = schema
	}
	for kind, path := range map[SuiteKind]string{
		PlainSuite:  "suite/test-schema.json",
		OutputSuite: "suite/output-test-schema.json",
	} {
		schema, err := compileEmbedded(path)
		if err != nil {
			// Reference-resolution failures are a known limitation of the
			// output-suite meta-schema; shape checking degrades to a skip.
			if kind == OutputSuite {
				log.Warn("output suite meta-schema unavailable", "error", err.Error())
				continue
			}
			log.Error("plain suite meta-schema unavailable", "error", err.Error())
			continue
		}
		checker.suiteShapes[kind] = schema
	}
	return checker
}

func compileEmbedded(path string) (*jsonschema.Schema, error) {
	data, err := schemaFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(data)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return schema, nil
}

// Capable reports whether a metaschema check is available for the draft.
func (c *Checker) Capable(d draft.Draft) bool {
	_, ok := c.meta[d]
	return ok
}

// MissingCapabilities lists drafts the checker cannot validate.
func (c *Checker) MissingCapabilities() []draft.Draft {
	return c.missing
}

// CheckMetaschema validates every case schema in files against the draft's
// metaschema. Unparseable files are skipped here; CheckSuiteShape reports
// them once.
func (c *Checker) CheckMetaschema(d draft.Draft, files []corpus.TestFile) []Violation {
	schema, ok := c.meta[d]
	if !ok {
		return nil
	}
	var violations []Violation
	for _, oc := range corpus.AllCases(files) {
		result := schema.ValidateJSON(oc.Case.Schema)
		if result.IsValid() {
			continue
		}
		violations = append(violations, Violation{
			Kind:            "metaschema",
			Draft:           d,
			Path:            oc.Path,
			CaseDescription: oc.Case.Description,
			Detail:          fmt.Sprintf("schema does not conform to the %s metaschema: %v", d, result.Errors),
		})
	}
	return violations
}

// CheckSuiteShape validates each whole file against the suite meta-schema for
// kind, and reports unparseable files.
func (c *Checker) CheckSuiteShape(kind SuiteKind, files []corpus.TestFile) []Violation {
	var violations []Violation
	shape := c.suiteShapes[kind]
	for _, file := range files {
		if file.Err != nil {
			violations = append(violations, Violation{
				Kind:   "malformed",
				Path:   file.Path,
				Detail: file.Err.Error(),
			})
			continue
		}
		if shape == nil {
			continue
		}
		result := shape.ValidateJSON(file.Raw)
		if result.IsValid() {
			continue
		}
		violations = append(violations, Violation{
			Kind:   "suite-shape",
			Path:   file.Path,
			Detail: fmt.Sprintf("file does not match the %s-suite shape: %v", kind, result.Errors),
		})
	}
	return violations
}
