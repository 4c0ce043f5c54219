package sparql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	testCases := []struct {
		name string
		term Term
		want string
	}{
		{name: "type marker", term: A, want: "a"},
		{name: "iri", term: IRI("http://dbpedia.org/ontology/Band"), want: "<http://dbpedia.org/ontology/Band>"},
		{name: "ref", term: Ref{URI: "http://dbpedia.org/resource/Michael_Rother"}, want: "<http://dbpedia.org/resource/Michael_Rother>"},
		{name: "var with prefix", term: Var("?resource"), want: "?resource"},
		{name: "var without prefix", term: Var("resource"), want: "?resource"},
		{name: "literal", term: Literal("Kraftwerk"), want: `"Kraftwerk"`},
		{name: "literal escapes quotes", term: Literal(`say "hi"`), want: `"say \"hi\""`},
		{name: "literal escapes backslash and newline", term: Literal("a\\b\nc"), want: `"a\\b\nc"`},
		{name: "lang literal", term: LangLiteral{Value: "Kraftwerk", Lang: "de"}, want: `"Kraftwerk"@de`},
		{name: "lang literal without tag", term: LangLiteral{Value: "x"}, want: `"x"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Format(tc.term)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormat_Nil(t *testing.T) {
	_, err := Format(nil)
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	// A token starting with "?" renders bare; anything else is quoted.
	s, err := Format(Token("?x"))
	require.NoError(t, err)
	assert.Equal(t, "?x", s)

	s, err = Format(Token("Kraftwerk"))
	require.NoError(t, err)
	assert.Equal(t, `"Kraftwerk"`, s)

	s, err = Format(Token(""))
	require.NoError(t, err)
	assert.Equal(t, `""`, s)
}

func TestFormatPattern(t *testing.T) {
	s, err := FormatPattern(Pattern{Subject: Var("resource"), Predicate: A, Object: IRI(bandURI)})
	require.NoError(t, err)
	assert.Equal(t, "?resource a <http://dbpedia.org/ontology/Band>", s)

	_, err = FormatPattern(Pattern{Subject: Var("resource"), Predicate: nil, Object: IRI(bandURI)})
	assert.Error(t, err)
}

func TestParseTerm(t *testing.T) {
	testCases := []struct {
		in   string
		want Term
	}{
		{in: "a", want: A},
		{in: "<http://x/y>", want: IRI("http://x/y")},
		{in: "?name", want: Var("?name")},
		{in: `"Kraftwerk"`, want: Literal("Kraftwerk")},
		{in: `"Kraftwerk"@de`, want: LangLiteral{Value: "Kraftwerk", Lang: "de"}},
		{in: "Kraftwerk", want: Literal("Kraftwerk")},
		{in: `"unterminated`, want: Literal(`"unterminated`)},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseTerm(tc.in))
		})
	}
}
