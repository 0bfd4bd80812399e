package remotes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testRoot = "testdata/remotes"

func TestURLFor(t *testing.T) {
	path := filepath.Join(testRoot, "baseUriChange", "folderInteger.json")
	url, err := URLFor(DefaultBaseURL, testRoot, path)
	if err != nil {
		t.Fatalf("URLFor: %v", err)
	}
	// The URL uses forward slashes whatever the host separator is.
	want := "http://localhost:1234/baseUriChange/folderInteger.json"
	if url != want {
		t.Fatalf("URLFor = %q, want %q", url, want)
	}
}

func TestURLForRejectsEscapingPaths(t *testing.T) {
	if _, err := URLFor(DefaultBaseURL, testRoot, filepath.Join("testdata", "elsewhere.json")); err == nil {
		t.Fatalf("expected error for path outside root")
	}
}

func TestLoadMapping(t *testing.T) {
	mapping, problems, err := LoadMapping(DefaultBaseURL, testRoot)
	if err != nil {
		t.Fatalf("LoadMapping: %v", err)
	}
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	want := []string{
		"http://localhost:1234/baseUriChange/folderInteger.json",
		"http://localhost:1234/integer.json",
		"http://localhost:1234/name.json",
	}
	if diff := cmp.Diff(want, mapping.URLs()); diff != "" {
		t.Errorf("URLs mismatch:\n%s", diff)
	}
	doc, ok := mapping.Document("http://localhost:1234/integer.json")
	if !ok {
		t.Fatalf("integer.json missing from mapping")
	}
	if string(doc) == "" {
		t.Fatalf("empty document")
	}
}

func TestCollisionDetection(t *testing.T) {
	m := &Mapping{BaseURL: DefaultBaseURL, entries: map[string]*entry{}}
	m.add("http://localhost:1234/a/b.json", `a/b.json`, []byte(`{"type": "integer"}`))
	m.add("http://localhost:1234/a/b.json", `a\b.json`, []byte(`{ "type":"integer" }`))
	m.add("http://localhost:1234/c.json", "c.json", []byte(`{"type": "string"}`))

	collisions := m.Collisions()
	if len(collisions) != 1 {
		t.Fatalf("expected 1 collision, got %d: %v", len(collisions), collisions)
	}
	c := collisions[0]
	if c.URL != "http://localhost:1234/a/b.json" || len(c.Paths) != 2 {
		t.Errorf("unexpected collision: %+v", c)
	}
	// Formatting differs but the canonical content is identical.
	if !c.SameContent {
		t.Errorf("equivalent documents reported as differing content")
	}

	m.add("http://localhost:1234/c.json", "other/c.json", []byte(`{"type": "number"}`))
	collisions = m.Collisions()
	if len(collisions) != 2 {
		t.Fatalf("expected 2 collisions, got %d", len(collisions))
	}
	if collisions[1].SameContent {
		t.Errorf("differing documents reported as same content")
	}
}

func TestCanonicalJSONIsStable(t *testing.T) {
	mapping, _, err := LoadMapping(DefaultBaseURL, testRoot)
	if err != nil {
		t.Fatalf("LoadMapping: %v", err)
	}
	first, err := mapping.CanonicalJSON()
	if err != nil {
		t.Fatalf("CanonicalJSON: %v", err)
	}
	second, err := mapping.CanonicalJSON()
	if err != nil {
		t.Fatalf("CanonicalJSON: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("canonical output not stable across calls")
	}
}

func TestHandlerServesFixturesOnly(t *testing.T) {
	mapping, _, err := LoadMapping(DefaultBaseURL, testRoot)
	if err != nil {
		t.Fatalf("LoadMapping: %v", err)
	}
	server := httptest.NewServer(mapping.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/baseUriChange/folderInteger.json")
	if err != nil {
		t.Fatalf("get fixture: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("fixture route status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	missing, err := http.Get(server.URL + "/no-such-fixture.json")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	defer missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want 404", missing.StatusCode)
	}
}

func TestDumpRefusesNonEmptyTarget(t *testing.T) {
	outDir := t.TempDir()
	marker := filepath.Join(outDir, "precious.txt")
	if err := os.WriteFile(marker, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := Dump(testRoot, outDir, false); err == nil {
		t.Fatalf("expected refusal for non-empty target")
	}
	if _, err := os.Stat(marker); err != nil {
		t.Fatalf("refusal must not delete anything: %v", err)
	}
}

func TestDumpWithUpdateReplacesTarget(t *testing.T) {
	outDir := t.TempDir()
	stale := filepath.Join(outDir, "stale.json")
	if err := os.WriteFile(stale, []byte("{}"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := Dump(testRoot, outDir, true); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale content must be removed wholesale")
	}
	copied, err := os.ReadFile(filepath.Join(outDir, "baseUriChange", "folderInteger.json"))
	if err != nil {
		t.Fatalf("copied fixture missing: %v", err)
	}
	original, _ := os.ReadFile(filepath.Join(testRoot, "baseUriChange", "folderInteger.json"))
	if string(copied) != string(original) {
		t.Errorf("copied fixture differs from source")
	}
}

func TestDumpIntoFreshTarget(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "fresh")
	if err := Dump(testRoot, outDir, false); err != nil {
		t.Fatalf("Dump into fresh target: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "integer.json")); err != nil {
		t.Fatalf("fixture not dumped: %v", err)
	}
}
