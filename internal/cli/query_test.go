package cli

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bandBase = "select ?resource where { ?resource a <http://dbpedia.org/ontology/Band> }"

func TestQueryCommand_PrintsSPARQL(t *testing.T) {
	kinds := writeKinds(t, "http://dbpedia.org/sparql")

	stdout, stderr, code := runCLI(t, "query", "Band", "--config", kinds,
		"--where", ":genre=<http://dbpedia.org/resource/Krautrock>")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t,
		"select ?resource where { ?resource a <http://dbpedia.org/ontology/Band> . ?resource <http://dbpedia.org/ontology/genre> <http://dbpedia.org/resource/Krautrock> }\n",
		stdout)
}

func TestQueryCommand_AllClauses(t *testing.T) {
	kinds := writeKinds(t, "http://dbpedia.org/sparql")

	stdout, stderr, code := runCLI(t, "query", "Band", "--config", kinds,
		"--optional", "<http://www.w3.org/2000/01/rdf-schema#label>=?label",
		"--distinct", "--order-by", "?label", "--slice", "10:20")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t,
		"select distinct ?resource where { ?resource a <http://dbpedia.org/ontology/Band> optional { ?resource <http://www.w3.org/2000/01/rdf-schema#label> ?label } } order by ?label offset 10 limit 10\n",
		stdout)
}

func TestQueryCommand_LintWarnings(t *testing.T) {
	kinds := writeKinds(t, "http://dbpedia.org/sparql")

	stdout, _, code := runCLI(t, "query", "Band", "--config", kinds, "--order-by", "?year", "--lint")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, bandBase+" order by ?year\n")
	assert.Contains(t, stdout, "# warning: order by variable ?year is not bound by any pattern")
}

func TestQueryCommand_JSON(t *testing.T) {
	kinds := writeKinds(t, "http://dbpedia.org/sparql")

	stdout, _, code := runCLI(t, "query", "Band", "--config", kinds, "--format", "json")
	require.Equal(t, ExitSuccess, code)

	var resp struct {
		Status string      `json:"status"`
		Data   QueryResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Band", resp.Data.Kind)
	assert.Equal(t, bandBase, resp.Data.Query)
}

func TestQueryCommand_RejectedSlices(t *testing.T) {
	kinds := writeKinds(t, "http://dbpedia.org/sparql")

	tests := []struct {
		slice string
		want  string
	}{
		{"0:5:2", "UNSUPPORTED_STEP"},
		{"3:1", "INVALID_RANGE"},
	}
	for _, tt := range tests {
		t.Run(tt.slice, func(t *testing.T) {
			_, stderr, code := runCLI(t, "query", "Band", "--config", kinds, "--slice", tt.slice)
			assert.Equal(t, ExitCommandError, code)
			assert.Contains(t, stderr, "Error ["+ErrCodeBuild+"]")
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestListCommand(t *testing.T) {
	srv := newSPARQLServer(t, "http://dbpedia.org/resource/Kraftwerk", "http://dbpedia.org/resource/Neu!")
	kinds := writeKinds(t, srv.URL)

	stdout, stderr, code := runCLI(t, "list", "Band", "--config", kinds,
		"--where", ":pastMembers=<http://dbpedia.org/resource/Michael_Rother>")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t, "http://dbpedia.org/resource/Kraftwerk\nhttp://dbpedia.org/resource/Neu!\n", stdout)
	assert.Equal(t, []string{
		"select ?resource where { ?resource a <http://dbpedia.org/ontology/Band> . ?resource <http://dbpedia.org/ontology/pastMembers> <http://dbpedia.org/resource/Michael_Rother> }",
	}, srv.Queries())
}

func TestListCommand_At(t *testing.T) {
	srv := newSPARQLServer(t, "http://dbpedia.org/resource/Can")
	kinds := writeKinds(t, srv.URL)

	stdout, _, code := runCLI(t, "list", "Band", "--config", kinds, "--at", "4")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "http://dbpedia.org/resource/Can\n", stdout)
	assert.Equal(t, []string{bandBase + " offset 4 limit 1"}, srv.Queries())
}

func TestListCommand_AtOutOfRange(t *testing.T) {
	srv := newSPARQLServer(t)
	kinds := writeKinds(t, srv.URL)

	_, stderr, code := runCLI(t, "list", "Band", "--config", kinds, "--at", "0")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "Error ["+ErrCodeNotFound+"]")
}

func TestListCommand_EndpointFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   string
	}{
		{"rejected query", http.StatusBadRequest, ErrCodeQuery},
		{"server error", http.StatusInternalServerError, ErrCodeTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newSPARQLServer(t, "http://x/1")
			srv.failWith(tt.status)
			kinds := writeKinds(t, srv.URL)

			stdout, stderr, code := runCLI(t, "list", "Band", "--config", kinds)
			assert.Equal(t, ExitFailure, code)
			assert.Empty(t, stdout, "no partial results")
			assert.Contains(t, stderr, "Error ["+tt.code+"]")
		})
	}
}

func TestListCommand_RecordsAndHistoryShows(t *testing.T) {
	srv := newSPARQLServer(t, "http://x/1", "http://x/2", "http://x/3")
	kinds := writeKinds(t, srv.URL)
	db := filepath.Join(t.TempDir(), "ontopy.db")

	_, stderr, code := runCLI(t, "list", "Band", "--config", kinds, "--db", db, "--slice", "0:3")
	require.Equal(t, ExitSuccess, code, stderr)

	srv.failWith(http.StatusBadRequest)
	_, _, code = runCLI(t, "list", "Band", "--config", kinds, "--db", db)
	require.Equal(t, ExitFailure, code)

	stdout, stderr, code := runCLI(t, "history", "--db", db, "--format", "json")
	require.Equal(t, ExitSuccess, code, stderr)

	var resp struct {
		Data HistoryResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Data.Executions, 2)

	newest, oldest := resp.Data.Executions[0], resp.Data.Executions[1]
	assert.Equal(t, bandBase, newest.Query)
	assert.Contains(t, newest.Error, "is not a valid SPARQL query")
	assert.Zero(t, newest.Rows)

	assert.Equal(t, bandBase+" limit 3", oldest.Query)
	assert.Equal(t, 3, oldest.Rows)
	assert.Equal(t, "Band", oldest.Kind)
	assert.Equal(t, srv.URL, oldest.Endpoint)
	assert.Empty(t, oldest.Error)

	text, _, code := runCLI(t, "history", "--db", db, "--kind", "Band", "--limit", "1")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, text, "STARTED")
	assert.Contains(t, text, "error: ")
	assert.NotContains(t, text, "3 rows")
}

func TestHistoryCommand_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ontopy.db")

	stdout, _, code := runCLI(t, "history", "--db", db)
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "No executions recorded\n", stdout)
}

func TestHistoryCommand_MissingDatabaseFlag(t *testing.T) {
	_, stderr, code := runCLI(t, "history")
	assert.NotEqual(t, ExitSuccess, code)
	assert.Contains(t, stderr, "required flag")
}

func TestHistoryCommand_NonExistentDatabase(t *testing.T) {
	_, stderr, code := runCLI(t, "history", "--db", "/nonexistent/path/test.db")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "failed to open database")
}
