// Package remotes maps the on-disk remote fixture tree to the canonical URLs
// that reference-resolution tests point at, and serves or dumps that mapping.
package remotes

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/gowebpki/jcs"
)

// DefaultBaseURL is the prefix test schemas use in their remote $refs.
const DefaultBaseURL = "http://localhost:1234/"

// URLFor derives the canonical URL for a fixture at path under root. Path
// separators are normalized to forward slashes regardless of host OS, so the
// same fixture yields the same URL everywhere.
func URLFor(baseURL, root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("relativize %s: %w", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("fixture %s is outside root %s", path, root)
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + filepath.ToSlash(rel), nil
}

// Problem is a remote fixture that could not be loaded.
type Problem struct {
	Path   string
	Detail string
}

// Collision is two or more fixture paths resolving to one URL. When the
// contents differ the mapping silently loses data, so collisions are treated
// as corpus defects rather than asserted away.
type Collision struct {
	URL         string
	Paths       []string
	SameContent bool
}

type entry struct {
	rel     string
	doc     json.RawMessage
	digests []string
	paths   []string
}

// Mapping is the eagerly materialized URL → document view of the fixture
// tree. It is immutable once loaded; the HTTP server reads it without
// synchronization.
type Mapping struct {
	BaseURL string
	entries map[string]*entry
}

// LoadMapping walks root and materializes every fixture. Unparseable
// fixtures are recorded as problems, not fatal errors; a missing root is.
func LoadMapping(baseURL, root string) (*Mapping, []Problem, error) {
	mapping := &Mapping{BaseURL: baseURL, entries: make(map[string]*entry)}
	var problems []Problem
	err := filepath.WalkDir(root, func(path string, dirEntry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if dirEntry.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			problems = append(problems, Problem{Path: path, Detail: err.Error()})
			return nil
		}
		url, err := URLFor(baseURL, root, path)
		if err != nil {
			problems = append(problems, Problem{Path: path, Detail: err.Error()})
			return nil
		}
		if !json.Valid(raw) {
			problems = append(problems, Problem{Path: path, Detail: "fixture is not valid JSON"})
			return nil
		}
		mapping.add(url, path, raw)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return mapping, problems, nil
}

func (m *Mapping) add(url, path string, doc json.RawMessage) {
	digest := contentDigest(doc)
	if existing, ok := m.entries[url]; ok {
		existing.paths = append(existing.paths, path)
		existing.digests = append(existing.digests, digest)
		return
	}
	rel := strings.TrimPrefix(url, strings.TrimSuffix(m.BaseURL, "/")+"/")
	m.entries[url] = &entry{rel: rel, doc: doc, digests: []string{digest}, paths: []string{path}}
}

// contentDigest hashes the JCS canonical form, so formatting differences
// neither mask nor fake a content mismatch.
func contentDigest(doc []byte) string {
	canonical, err := jcs.Transform(doc)
	if err != nil {
		canonical = doc
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}

// URLs returns every fixture URL in sorted order.
func (m *Mapping) URLs() []string {
	urls := make([]string, 0, len(m.entries))
	for url := range m.entries {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// Document returns the fixture document for url.
func (m *Mapping) Document(url string) (json.RawMessage, bool) {
	e, ok := m.entries[url]
	if !ok {
		return nil, false
	}
	return e.doc, true
}

// Len returns the number of distinct fixture URLs.
func (m *Mapping) Len() int { return len(m.entries) }

// Collisions lists every URL that more than one fixture path resolved to.
func (m *Mapping) Collisions() []Collision {
	var collisions []Collision
	for url, e := range m.entries {
		if len(e.paths) < 2 {
			continue
		}
		same := true
		for _, digest := range e.digests[1:] {
			if digest != e.digests[0] {
				same = false
				break
			}
		}
		paths := append([]string(nil), e.paths...)
		sort.Strings(paths)
		collisions = append(collisions, Collision{URL: url, Paths: paths, SameContent: same})
	}
	sort.Slice(collisions, func(i, j int) bool { return collisions[i].URL < collisions[j].URL })
	return collisions
}

// CanonicalJSON renders the whole mapping as one RFC 8785 canonical JSON
// object, for stable dumps and diffs.
func (m *Mapping) CanonicalJSON() ([]byte, error) {
	docs := make(map[string]json.RawMessage, len(m.entries))
	for url, e := range m.entries {
		docs[url] = e.doc
	}
	encoded, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encode mapping: %w", err)
	}
	canonical, err := jcs.Transform(encoded)
	if err != nil {
		return nil, fmt.Errorf("canonicalize mapping: %w", err)
	}
	return canonical, nil
}
