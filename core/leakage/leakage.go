// Package leakage audits every case schema against its draft's keyword
// ledger. A test that uses a keyword the draft never defined would pass by
// accident rather than by the intended mechanism; this audit is the only
// guard against that cross-contamination in a hand-maintained corpus.
//
// The auditor walks schemas itself instead of instrumenting a validator: it
// descends only through applicator positions, so data-carrying values such as
// enum, const and default are never mistaken for schema objects.
package leakage

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arpitjain799/jsonschema/core/corpus"
	"github.com/arpitjain799/jsonschema/core/draft"
)

// A case whose description contains this phrase exercises unknown-keyword
// behavior on purpose and is exempt from the audit.
const exemptionPhrase = "unknown keyword"

// Files dedicated to unknown-keyword behavior are exempt wholesale.
const exemptFileName = "unknownKeyword.json"

// Violation is one forbidden keyword use, keyed by draft, case and keyword.
type Violation struct {
	Draft           draft.Draft
	Path            string
	CaseDescription string
	Keyword         string
}

func (v Violation) String() string {
	return fmt.Sprintf("leakage: %s: %q: keyword %q is not defined in %s",
		v.Path, v.CaseDescription, v.Keyword, v.Draft)
}

// Audit checks every case schema in files against the ledger for d. Latest
// has no ledger and is never audited. Unparseable files are skipped; the
// conformance checker reports those.
func Audit(d draft.Draft, files []corpus.TestFile) []Violation {
	if !d.Audited() {
		return nil
	}
	var violations []Violation
	for _, file := range files {
		if file.Err != nil {
			continue
		}
		if filepath.Base(file.Path) == exemptFileName {
			continue
		}
		for i := range file.Cases {
			c := &file.Cases[i]
			if strings.Contains(c.Description, exemptionPhrase) {
				continue
			}
			schema, err := c.SchemaValue()
			if err != nil {
				continue
			}
			for _, keyword := range forbiddenKeywords(d, schema) {
				violations = append(violations, Violation{
					Draft:           d,
					Path:            file.Path,
					CaseDescription: c.Description,
					Keyword:         keyword,
				})
			}
		}
	}
	return violations
}

// forbiddenKeywords returns each out-of-ledger keyword found anywhere in the
// schema, once, in sorted order.
func forbiddenKeywords(d draft.Draft, schema any) []string {
	found := make(map[string]struct{})
	walk(d, schema, found)
	if len(found) == 0 {
		return nil
	}
	keywords := make([]string, 0, len(found))
	for keyword := range found {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)
	return keywords
}

// Applicator positions, by value shape. Anything not listed holds plain data
// and is not descended into.
var (
	schemaValued = map[string]bool{
		"additionalItems": true, "additionalProperties": true,
		"contains": true, "contentSchema": true,
		"else": true, "if": true, "not": true,
		"propertyNames": true, "then": true,
		"unevaluatedItems": true, "unevaluatedProperties": true,
	}
	schemaMapValued = map[string]bool{
		"$defs": true, "definitions": true, "dependentSchemas": true,
		"patternProperties": true, "properties": true,
	}
	schemaListValued = map[string]bool{
		"allOf": true, "anyOf": true, "oneOf": true, "prefixItems": true,
	}
)

func walk(d draft.Draft, schema any, found map[string]struct{}) {
	object, ok := schema.(map[string]any)
	if !ok {
		// Boolean schemas carry no keywords.
		return
	}
	for keyword, value := range object {
		if !d.Allows(keyword) {
			found[keyword] = struct{}{}
			continue
		}
		switch {
		case schemaValued[keyword]:
			walk(d, value, found)
		case schemaMapValued[keyword]:
			if m, ok := value.(map[string]any); ok {
				for _, sub := range m {
					walk(d, sub, found)
				}
			}
		case schemaListValued[keyword]:
			if list, ok := value.([]any); ok {
				for _, sub := range list {
					walk(d, sub, found)
				}
			}
		case keyword == "items":
			// Schema in every draft, list of schemas before 2020-12.
			if list, ok := value.([]any); ok {
				for _, sub := range list {
					walk(d, sub, found)
				}
				break
			}
			walk(d, value, found)
		case keyword == "dependencies":
			// Map values are either schemas or property-name arrays; only
			// the schema form is descended into.
			if m, ok := value.(map[string]any); ok {
				for _, sub := range m {
					if _, isList := sub.([]any); isList {
						continue
					}
					walk(d, sub, found)
				}
			}
		}
	}
}
