package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afternoon/ontopy/internal/resource"
	"github.com/afternoon/ontopy/internal/sparql"
	"github.com/afternoon/ontopy/internal/testutil"
)

func testBand(t *testing.T) *resource.Kind {
	t.Helper()
	k, err := resource.NewKind(resource.KindConfig{
		Prefix:   "http://dbpedia.org/ontology/",
		Label:    "Band",
		Endpoint: resource.EndpointConfig{URL: "http://dbpedia.org/sparql"},
	}, testutil.NewFakeEndpoint(), testutil.NewFakeFetcher())
	require.NoError(t, err)
	return k
}

func TestParseTerm(t *testing.T) {
	band := testBand(t)

	tests := []struct {
		in   string
		want sparql.Term
	}{
		{":genre", sparql.IRI("http://dbpedia.org/ontology/genre")},
		{"<http://x/y>", sparql.IRI("http://x/y")},
		{"?label", sparql.Var("?label")},
		{"a", sparql.A},
		{`"Kraftwerk"@en`, sparql.LangLiteral{Value: "Kraftwerk", Lang: "en"}},
		{"Kraftwerk", sparql.Literal("Kraftwerk")},
		{":", sparql.Literal(":")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTerm(band, tt.in))
		})
	}
}

func TestParsePattern(t *testing.T) {
	band := testBand(t)

	p, o, err := parsePattern(band, ":genre=<http://dbpedia.org/resource/Krautrock>")
	require.NoError(t, err)
	assert.Equal(t, sparql.IRI("http://dbpedia.org/ontology/genre"), p)
	assert.Equal(t, sparql.IRI("http://dbpedia.org/resource/Krautrock"), o)

	// '=' inside an IRI predicate does not split.
	p, o, err = parsePattern(band, "<http://x/p?a=b>=?v")
	require.NoError(t, err)
	assert.Equal(t, sparql.IRI("http://x/p?a=b"), p)
	assert.Equal(t, sparql.Var("?v"), o)

	for _, bad := range []string{"genre", "=x", "genre="} {
		_, _, err := parsePattern(band, bad)
		assert.Error(t, err, bad)
		assert.Equal(t, ExitCommandError, GetExitCode(err), bad)
	}
}

func TestParsePredicate(t *testing.T) {
	band := testBand(t)
	assert.Equal(t, "http://dbpedia.org/ontology/genre", parsePredicate(band, ":genre"))
	assert.Equal(t, "http://www.w3.org/2000/01/rdf-schema#label", parsePredicate(band, "<http://www.w3.org/2000/01/rdf-schema#label>"))
	assert.Equal(t, "http://www.w3.org/2000/01/rdf-schema#label", parsePredicate(band, "http://www.w3.org/2000/01/rdf-schema#label"))
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in   string
		want sparql.Range
	}{
		{"1:3", sparql.Span(1, 3)},
		{":5", sparql.Span(0, 5)},
		{"4:", sparql.From(4)},
		{"0:5:2", sparql.Span(0, 5).By(2)},
		{"0:5:", sparql.Span(0, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseRange(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"3", "a:b", "1:2:3:4", "1:x"} {
		_, err := parseRange(bad)
		assert.Error(t, err, bad)
		assert.Equal(t, ExitCommandError, GetExitCode(err), bad)
	}
}
