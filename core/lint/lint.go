// Package lint holds the structural rules every corpus file must satisfy:
// description length bounds, sibling uniqueness, and style.
package lint

import (
	"fmt"
	"regexp"

	"github.com/arpitjain799/jsonschema/core/corpus"
)

// Description bounds are strict: a case description must be shorter than 150
// characters and a test description shorter than 70.
const (
	MaxCaseDescription = 150
	MaxTestDescription = 70
)

// Violation is one (rule, file, description) finding. Rules accumulate every
// violation in their pass; nothing short-circuits.
type Violation struct {
	Rule        string
	Path        string
	Description string
	Detail      string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s: %q: %s", v.Rule, v.Path, v.Description, v.Detail)
}

// Descriptions must state what is true, not what should be tested.
var bannedPhrases = regexp.MustCompile(`(?i)\bshould\b|\btests? that\b`)

// All runs every lint rule and concatenates the findings.
func All(files []corpus.TestFile) []Violation {
	var violations []Violation
	violations = append(violations, CheckDescriptionLengths(files)...)
	violations = append(violations, CheckCaseUniqueness(files)...)
	violations = append(violations, CheckTestUniqueness(files)...)
	violations = append(violations, CheckStyle(files)...)
	return violations
}

// CheckDescriptionLengths enforces the case and test description bounds.
func CheckDescriptionLengths(files []corpus.TestFile) []Violation {
	var violations []Violation
	for _, oc := range corpus.AllCases(files) {
		if len(oc.Case.Description) >= MaxCaseDescription {
			violations = append(violations, Violation{
				Rule:        "length",
				Path:        oc.Path,
				Description: oc.Case.Description,
				Detail:      fmt.Sprintf("case description is %d characters, limit is %d", len(oc.Case.Description), MaxCaseDescription-1),
			})
		}
	}
	for _, ot := range corpus.AllTests(files) {
		if len(ot.Test.Description) >= MaxTestDescription {
			violations = append(violations, Violation{
				Rule:        "length",
				Path:        ot.Path,
				Description: ot.Test.Description,
				Detail:      fmt.Sprintf("test description is %d characters, limit is %d", len(ot.Test.Description), MaxTestDescription-1),
			})
		}
	}
	return violations
}

// CheckCaseUniqueness requires case descriptions to be pairwise distinct
// within one file.
func CheckCaseUniqueness(files []corpus.TestFile) []Violation {
	var violations []Violation
	for _, file := range files {
		seen := make(map[string]bool, len(file.Cases))
		for i := range file.Cases {
			description := file.Cases[i].Description
			if seen[description] {
				violations = append(violations, Violation{
					Rule:        "uniqueness",
					Path:        file.Path,
					Description: description,
					Detail:      "duplicate case description in file",
				})
				continue
			}
			seen[description] = true
		}
	}
	return violations
}

// CheckTestUniqueness requires test descriptions to be pairwise distinct
// within one case.
func CheckTestUniqueness(files []corpus.TestFile) []Violation {
	var violations []Violation
	for _, oc := range corpus.AllCases(files) {
		seen := make(map[string]bool, len(oc.Case.Tests))
		for i := range oc.Case.Tests {
			description := oc.Case.Tests[i].Description
			if seen[description] {
				violations = append(violations, Violation{
					Rule:        "uniqueness",
					Path:        oc.Path,
					Description: description,
					Detail:      fmt.Sprintf("duplicate test description in case %q", oc.Case.Description),
				})
				continue
			}
			seen[description] = true
		}
	}
	return violations
}

// CheckStyle rejects discouraged phrasing in case and test descriptions.
func CheckStyle(files []corpus.TestFile) []Violation {
	var violations []Violation
	for _, oc := range corpus.AllCases(files) {
		if match := bannedPhrases.FindString(oc.Case.Description); match != "" {
			violations = append(violations, styleViolation(oc.Path, oc.Case.Description, match))
		}
	}
	for _, ot := range corpus.AllTests(files) {
		if match := bannedPhrases.FindString(ot.Test.Description); match != "" {
			violations = append(violations, styleViolation(ot.Path, ot.Test.Description, match))
		}
	}
	return violations
}

func styleViolation(path, description, match string) Violation {
	return Violation{
		Rule:        "style",
		Path:        path,
		Description: description,
		Detail:      fmt.Sprintf("uses discouraged phrasing %q", match),
	}
}
