package main

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/arpitjain799/jsonschema/core/corpus"
	coreerrors "github.com/arpitjain799/jsonschema/core/errors"
	"github.com/arpitjain799/jsonschema/core/suiteconfig"
)

func testConfig(root string) suiteconfig.Config {
	cfg := suiteconfig.Default()
	cfg.TestsDir = root + "/tests"
	cfg.OutputTestsDir = root + "/output-tests"
	cfg.RemotesDir = root + "/remotes"
	return cfg
}

func TestExecuteChecksCleanCorpus(t *testing.T) {
	var out bytes.Buffer
	total := executeChecks(testConfig("testdata/corpus"), &out)
	if total != 0 {
		t.Fatalf("clean corpus reported %d violation(s):\n%s", total, out.String())
	}
}

func TestExecuteChecksReportsEveryViolation(t *testing.T) {
	var out bytes.Buffer
	total := executeChecks(testConfig("testdata/bad-corpus"), &out)
	if total != 2 {
		t.Fatalf("expected 2 violations, got %d:\n%s", total, out.String())
	}
	report := out.String()
	if !strings.Contains(report, "style") || !strings.Contains(report, "should") {
		t.Errorf("style violation missing from report:\n%s", report)
	}
	if !strings.Contains(report, "leakage") || !strings.Contains(report, `"const"`) {
		t.Errorf("leakage violation missing from report:\n%s", report)
	}
}

func TestFlattenDraftPreservesCases(t *testing.T) {
	cases, err := flattenDraft("testdata/corpus/tests", "draft7")
	if err != nil {
		t.Fatalf("flattenDraft: %v", err)
	}
	var descriptions []string
	for _, c := range cases {
		descriptions = append(descriptions, c.Description)
	}
	want := []string{
		"string type matches strings",
		"boolean schema true accepts everything",
		"integer type matches integers",
	}
	if diff := cmp.Diff(want, descriptions); diff != "" {
		t.Errorf("flatten mismatch:\n%s", diff)
	}
}

func TestFlattenDraftUnknownVersion(t *testing.T) {
	_, err := flattenDraft("testdata/corpus/tests", "draft5")
	if err == nil {
		t.Fatalf("expected error for unknown version")
	}
	if coreerrors.CategoryOf(err) != coreerrors.CategoryInvalidInput {
		t.Errorf("CategoryOf = %q", coreerrors.CategoryOf(err))
	}
}

func TestFlattenRoundTripsSchemas(t *testing.T) {
	cases, err := flattenDraft("testdata/corpus/tests", "draft7")
	if err != nil {
		t.Fatalf("flattenDraft: %v", err)
	}
	encoded, err := json.Marshal(cases)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded []corpus.Case
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != len(cases) {
		t.Fatalf("round trip changed case count")
	}
	if string(decoded[1].Schema) != "true" {
		t.Errorf("boolean schema did not survive the round trip: %s", decoded[1].Schema)
	}
	if decoded[0].Tests[1].Valid == nil || *decoded[0].Tests[1].Valid {
		t.Errorf("valid:false did not survive the round trip")
	}
}

func TestShuffleCasesPreservesMultiset(t *testing.T) {
	build := func() []corpus.Case {
		cases := make([]corpus.Case, 30)
		for i := range cases {
			cases[i] = corpus.Case{Description: fmt.Sprintf("case %02d", i)}
		}
		return cases
	}

	first := build()
	shuffleCases(first)
	second := build()
	shuffleCases(second)

	sorted := func(cases []corpus.Case) []string {
		var descriptions []string
		for _, c := range cases {
			descriptions = append(descriptions, c.Description)
		}
		sort.Strings(descriptions)
		return descriptions
	}
	if diff := cmp.Diff(sorted(build()), sorted(first)); diff != "" {
		t.Fatalf("shuffle changed the multiset:\n%s", diff)
	}

	// Two independent shuffles of 30 elements agreeing everywhere is
	// negligible; identical order means the shuffle did nothing.
	identical := true
	for i := range first {
		if first[i].Description != second[i].Description {
			identical = false
			break
		}
	}
	if identical {
		t.Fatalf("two shuffles produced identical order")
	}
}

func TestExitCodeMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, exitOK},
		{fmt.Errorf("3 violation(s): %w", errViolations), exitViolations},
		{coreerrors.New("bad flag", coreerrors.CategoryInvalidInput, ""), exitInvalidInput},
		{coreerrors.New("disk", coreerrors.CategoryIOFailure, ""), exitIOFailure},
		{coreerrors.New("no validator", coreerrors.CategoryDependencyMissing, ""), exitDependencyMissing},
		{coreerrors.New("target exists", coreerrors.CategoryConflict, ""), exitConflict},
		{errors.New("unclassified"), exitInvalidInput},
	}
	for _, tc := range cases {
		if got := exitCodeFor(tc.err); got != tc.want {
			t.Errorf("exitCodeFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
