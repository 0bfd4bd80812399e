// Package draft enumerates the specification versions the suite covers and
// carries the hand-maintained keyword ledger for each one.
package draft

// Draft identifies one version of the specification under test. The set is
// closed and assembled once at startup; directory names in the corpus match
// the string value exactly.
type Draft string

const (
	Draft4      Draft = "draft4"
	Draft6      Draft = "draft6"
	Draft7      Draft = "draft7"
	Draft201909 Draft = "draft2019-09"
	Draft202012 Draft = "draft2020-12"
	// Latest tracks the most recent draft and is intentionally un-audited:
	// its keyword set is a moving target.
	Latest Draft = "latest"
)

// All returns every known draft, oldest first.
func All() []Draft {
	return []Draft{Draft4, Draft6, Draft7, Draft201909, Draft202012, Latest}
}

// FromDir maps a suite directory name to its draft.
func FromDir(name string) (Draft, bool) {
	for _, d := range All() {
		if string(d) == name {
			return d, true
		}
	}
	return "", false
}

func (d Draft) String() string { return string(d) }

// Audited reports whether the keyword leakage audit applies to this draft.
func (d Draft) Audited() bool { return d != Latest }

// Allows reports whether keyword is a member of this draft's allow-list.
// Latest has no ledger and allows everything.
func (d Draft) Allows(keyword string) bool {
	if d == Latest {
		return true
	}
	_, ok := keywordSets[d][keyword]
	return ok
}

// Keywords returns the ledger for this draft, nil for Latest.
func (d Draft) Keywords() []string {
	return keywordLists[d]
}

// The ledgers below are maintained by hand alongside the specification text,
// not derived from the metaschemas: test authors may deliberately exercise
// unknown-keyword behavior, so the audit needs an explicit source of truth.

var draft4Keywords = []string{
	"$ref", "$schema", "id",
	"additionalItems", "additionalProperties", "allOf", "anyOf",
	"default", "definitions", "dependencies", "description",
	"enum", "exclusiveMaximum", "exclusiveMinimum", "format",
	"items", "maxItems", "maxLength", "maxProperties", "maximum",
	"minItems", "minLength", "minProperties", "minimum", "multipleOf",
	"not", "oneOf", "pattern", "patternProperties", "properties",
	"required", "title", "type", "uniqueItems",
}

var draft6Keywords = []string{
	"$id", "$ref", "$schema",
	"additionalItems", "additionalProperties", "allOf", "anyOf",
	"const", "contains", "default", "definitions", "dependencies",
	"description", "enum", "examples", "exclusiveMaximum",
	"exclusiveMinimum", "format", "items", "maxItems", "maxLength",
	"maxProperties", "maximum", "minItems", "minLength", "minProperties",
	"minimum", "multipleOf", "not", "oneOf", "pattern",
	"patternProperties", "properties", "propertyNames", "required",
	"title", "type", "uniqueItems",
}

var draft7Keywords = append([]string{
	"$comment", "contentEncoding", "contentMediaType",
	"else", "if", "readOnly", "then", "writeOnly",
}, draft6Keywords...)

var draft201909Keywords = []string{
	"$anchor", "$comment", "$defs", "$id", "$recursiveAnchor",
	"$recursiveRef", "$ref", "$schema", "$vocabulary",
	"additionalItems", "additionalProperties", "allOf", "anyOf",
	"const", "contains", "contentEncoding", "contentMediaType",
	"contentSchema", "default", "definitions", "dependentRequired",
	"dependentSchemas", "deprecated", "description", "else", "enum",
	"examples", "exclusiveMaximum", "exclusiveMinimum", "format", "if",
	"items", "maxContains", "maxItems", "maxLength", "maxProperties",
	"maximum", "minContains", "minItems", "minLength", "minProperties",
	"minimum", "multipleOf", "not", "oneOf", "pattern",
	"patternProperties", "properties", "propertyNames",
	"readOnly", "required", "then", "title", "type", "unevaluatedItems",
	"unevaluatedProperties", "uniqueItems", "writeOnly",
}

var draft202012Keywords = []string{
	"$anchor", "$comment", "$defs", "$dynamicAnchor", "$dynamicRef",
	"$id", "$ref", "$schema", "$vocabulary",
	"additionalProperties", "allOf", "anyOf", "const", "contains",
	"contentEncoding", "contentMediaType", "contentSchema", "default",
	"definitions", "dependentRequired", "dependentSchemas", "deprecated",
	"description", "else", "enum", "examples", "exclusiveMaximum",
	"exclusiveMinimum", "format", "if", "items", "maxContains",
	"maxItems", "maxLength", "maxProperties", "maximum", "minContains",
	"minItems", "minLength", "minProperties", "minimum", "multipleOf",
	"not", "oneOf", "pattern", "patternProperties", "prefixItems",
	"properties", "propertyNames", "readOnly", "required", "then",
	"title", "type", "unevaluatedItems", "unevaluatedProperties",
	"uniqueItems", "writeOnly",
}

var keywordLists = map[Draft][]string{
	Draft4:      draft4Keywords,
	Draft6:      draft6Keywords,
	Draft7:      draft7Keywords,
	Draft201909: draft201909Keywords,
	Draft202012: draft202012Keywords,
}

var keywordSets = func() map[Draft]map[string]struct{} {
	sets := make(map[Draft]map[string]struct{}, len(keywordLists))
	for d, list := range keywordLists {
		set := make(map[string]struct{}, len(list))
		for _, keyword := range list {
			set[keyword] = struct{}{}
		}
		sets[d] = set
	}
	return sets
}()
