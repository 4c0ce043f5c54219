package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afternoon/ontopy/internal/resource"
)

func TestLoad_CUE(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "kinds.cue"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Band", "School"}, f.Names())

	band, err := f.Kind("Band")
	require.NoError(t, err)
	assert.Equal(t, resource.KindConfig{
		Name:     "Band",
		Prefix:   "http://dbpedia.org/ontology/",
		Label:    "Band",
		Endpoint: resource.EndpointConfig{URL: "http://dbpedia.org/sparql"},
		Language: "en",
	}, band)
	assert.Equal(t, "http://dbpedia.org/ontology/Band", band.ClassURI())

	school, err := f.Kind("School")
	require.NoError(t, err)
	assert.Equal(t, "en-GB", school.Language)
	assert.Equal(t, "reader", school.Endpoint.Username)
	assert.Equal(t, "secret", school.Endpoint.Password)
}

func TestLoad_YAMLKeepsDeclarationOrder(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "kinds.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"School", "Band"}, f.Names())

	band, err := f.Kind("Band")
	require.NoError(t, err)
	assert.Equal(t, resource.DefaultLanguage, band.Language)
	assert.Equal(t, "http://dbpedia.org/ontology/Band", band.ClassURI())
}

func TestLoad_CUESchemaViolations(t *testing.T) {
	testCases := []struct {
		name string
		file string
	}{
		{name: "endpoint scheme", file: "bad_endpoint.cue"},
		{name: "closed kind", file: "unknown_field.cue"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(filepath.Join("testdata", tc.file))
			require.Error(t, err)

			var ce *Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "cue", ce.Field)
		})
	}
}

func TestParseCUE_SyntaxErrorHasPosition(t *testing.T) {
	_, err := ParseCUE("broken.cue", []byte("kinds: Band: {\n\tlabel: \n"))
	require.Error(t, err)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.Pos.IsValid())
	assert.Contains(t, err.Error(), "broken.cue:")
}

func TestParse_Rejections(t *testing.T) {
	testCases := []struct {
		name  string
		parse func() (*File, error)
		field string
	}{
		{
			name:  "cue without kinds",
			parse: func() (*File, error) { return ParseCUE("x.cue", []byte(`other: 1`)) },
			field: "kinds",
		},
		{
			name:  "cue empty kinds",
			parse: func() (*File, error) { return ParseCUE("x.cue", []byte(`kinds: {}`)) },
			field: "kinds",
		},
		{
			name: "cue missing class",
			parse: func() (*File, error) {
				return ParseCUE("x.cue", []byte(`kinds: Thing: endpoint: url: "http://x/sparql"`))
			},
			field: "kinds.Thing",
		},
		{
			name:  "yaml kinds list",
			parse: func() (*File, error) { return ParseYAML("x.yaml", []byte("kinds:\n  - Band\n")) },
			field: "kinds",
		},
		{
			name:  "yaml unknown top-level key",
			parse: func() (*File, error) { return ParseYAML("x.yaml", []byte("kinds: {}\nextra: 1\n")) },
			field: "yaml",
		},
		{
			name: "yaml duplicate names",
			parse: func() (*File, error) {
				return ParseYAML("x.yaml", []byte(`kinds:
  A:
    name: Same
    type_uri: http://x/A
    endpoint: {url: "http://x/sparql"}
  B:
    name: Same
    type_uri: http://x/B
    endpoint: {url: "http://x/sparql"}
`))
			},
			field: "kinds.B",
		},
		{
			name: "yaml unknown kind field",
			parse: func() (*File, error) {
				return ParseYAML("x.yaml", []byte("kinds:\n  Band:\n    type_uri: http://x/Band\n    lang: de\n    endpoint: {url: http://x/sparql}\n"))
			},
			field: "kinds.Band",
		},
		{
			name: "yaml unknown endpoint field",
			parse: func() (*File, error) {
				return ParseYAML("x.yaml", []byte("kinds:\n  Band:\n    type_uri: http://x/Band\n    endpoint: {url: http://x/sparql, pasword: secret}\n"))
			},
			field: "kinds.Band",
		},
		{
			name: "yaml endpoint scheme",
			parse: func() (*File, error) {
				return ParseYAML("x.yaml", []byte("kinds:\n  Band:\n    type_uri: http://x/Band\n    endpoint: {url: ftp://x/sparql}\n"))
			},
			field: "kinds.Band",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := tc.parse()
			assert.Nil(t, f)

			var ce *Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tc.field, ce.Field)
		})
	}
}

func TestLoad_YAMLSchemaViolations(t *testing.T) {
	testCases := []struct {
		name string
		file string
		want string
	}{
		{name: "closed kind", file: "unknown_field.yaml", want: "lang"},
		{name: "endpoint scheme", file: "bad_endpoint.yaml", want: "http://"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Load(filepath.Join("testdata", tc.file))
			assert.Nil(t, f)

			var ce *Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "kinds.Band", ce.Field)
			assert.Contains(t, ce.Message, "line 3:")
			assert.Contains(t, ce.Message, tc.want)
		})
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinds.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

	_, err := Load(path)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "path", ce.Field)
}

func TestFile_UnknownKind(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "kinds.cue"))
	require.NoError(t, err)

	_, err = f.Kind("Album")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown kind "Album" (declared: Band, School)`)
}
