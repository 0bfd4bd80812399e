package remotes

import (
	"net/http"

	"github.com/arpitjain799/jsonschema/internal/logging"
)

// Handler serves exactly the materialized mapping: one route per fixture
// path, 404 for everything else. The mapping is immutable at serve time, so
// requests need no synchronization.
func (m *Mapping) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, url := range m.URLs() {
		e := m.entries[url]
		doc := e.doc
		mux.HandleFunc("/"+e.rel, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(doc)
		})
	}
	return mux
}

// Serve blocks serving the mapping on addr.
func Serve(addr string, m *Mapping) error {
	logging.New("remotes").Info("serving remote fixtures", "addr", addr, "fixtures", m.Len())
	return http.ListenAndServe(addr, m.Handler())
}
