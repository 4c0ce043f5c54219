package cli

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// sparqlServer answers every query with the same URI bindings.
type sparqlServer struct {
	*httptest.Server

	mu      sync.Mutex
	queries []string
	status  int
	uris    []string
}

func newSPARQLServer(t *testing.T, uris ...string) *sparqlServer {
	t.Helper()
	s := &sparqlServer{status: http.StatusOK, uris: uris}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.queries = append(s.queries, r.URL.Query().Get("query"))

		if s.status != http.StatusOK {
			http.Error(w, "Virtuoso 37000 Error SP030: SPARQL compiler", s.status)
			return
		}

		var b strings.Builder
		b.WriteString(`<?xml version="1.0"?><sparql xmlns="http://www.w3.org/2005/sparql-results#"><head><variable name="resource"/></head><results>`)
		for _, uri := range s.uris {
			fmt.Fprintf(&b, `<result><binding name="resource"><uri>%s</uri></binding></result>`, uri)
		}
		b.WriteString(`</results></sparql>`)
		w.Header().Set("Content-Type", "application/sparql-results+xml")
		_, _ = w.Write([]byte(b.String()))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *sparqlServer) failWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func (s *sparqlServer) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// writeKinds declares Band at endpointURL and returns the file path.
func writeKinds(t *testing.T, endpointURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kinds.yaml")
	body := fmt.Sprintf(`kinds:
  Band:
    prefix: http://dbpedia.org/ontology/
    label: Band
    endpoint:
      url: %s
`, endpointURL)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// runCLI executes the full CLI and returns stdout, stderr and the exit code.
func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}
