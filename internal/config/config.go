package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/afternoon/ontopy/internal/resource"
)

//go:embed schema.cue
var schemaCUE string

// File is a loaded set of kind declarations, in declaration order.
type File struct {
	Path  string
	Kinds []resource.KindConfig
}

// Kind returns the declaration with the given name.
func (f *File) Kind(name string) (resource.KindConfig, error) {
	for _, k := range f.Kinds {
		if k.Name == name {
			return k, nil
		}
	}
	return resource.KindConfig{}, &Error{
		Path:    f.Path,
		Field:   "kinds",
		Message: fmt.Sprintf("unknown kind %q (declared: %s)", name, strings.Join(f.Names(), ", ")),
	}
}

// Names returns the declared kind names.
func (f *File) Names() []string {
	names := make([]string, len(f.Kinds))
	for i, k := range f.Kinds {
		names[i] = k.Name
	}
	return names
}

// Error is a configuration error, positioned when the source format allows.
type Error struct {
	Path    string
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads kind declarations from a .cue, .yaml or .yml file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		return ParseCUE(path, data)
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	default:
		return nil, &Error{Path: path, Field: "path", Message: fmt.Sprintf("unsupported config format %q", ext)}
	}
}

// ParseCUE decodes kinds from CUE source, unifying each with #Kind.
func ParseCUE(filename string, data []byte) (*File, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile kind schema: %w", err)
	}
	kindSchema := schema.LookupPath(cue.ParsePath("#Kind"))

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, formatCUEError(filename, err)
	}

	kinds := value.LookupPath(cue.ParsePath("kinds"))
	if !kinds.Exists() {
		return nil, &Error{Path: filename, Field: "kinds", Message: "no kinds declared"}
	}

	iter, err := kinds.Fields()
	if err != nil {
		return nil, formatCUEError(filename, err)
	}

	file := &File{Path: filename}
	for iter.Next() {
		name := iter.Label()
		unified := kindSchema.Unify(iter.Value())
		if err := unified.Validate(cue.Concrete(true)); err != nil {
			return nil, formatCUEError(filename, err)
		}

		var cfg resource.KindConfig
		if err := unified.Decode(&cfg); err != nil {
			return nil, formatCUEError(filename, err)
		}
		if err := file.add(name, cfg); err != nil {
			return nil, err
		}
	}

	if err := file.check(); err != nil {
		return nil, err
	}
	return file, nil
}

// ParseYAML decodes kinds from YAML, keeping declaration order.
func ParseYAML(filename string, data []byte) (*File, error) {
	var doc struct {
		Kinds yaml.Node `yaml:"kinds"`
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &Error{Path: filename, Field: "yaml", Message: err.Error()}
	}
	if doc.Kinds.Kind == 0 {
		return nil, &Error{Path: filename, Field: "kinds", Message: "no kinds declared"}
	}
	if doc.Kinds.Kind != yaml.MappingNode {
		return nil, &Error{
			Path:    filename,
			Field:   "kinds",
			Message: fmt.Sprintf("line %d: kinds must be a mapping of name to kind", doc.Kinds.Line),
		}
	}

	file := &File{Path: filename}
	for i := 0; i+1 < len(doc.Kinds.Content); i += 2 {
		key, body := doc.Kinds.Content[i], doc.Kinds.Content[i+1]

		cfg, err := decodeKindYAML(body)
		if err != nil {
			return nil, &Error{
				Path:    filename,
				Field:   "kinds." + key.Value,
				Message: fmt.Sprintf("line %d: %v", body.Line, err),
			}
		}
		if cfg.Language == "" {
			cfg.Language = resource.DefaultLanguage
		}
		if err := file.add(key.Value, cfg); err != nil {
			return nil, err
		}
	}

	if err := file.check(); err != nil {
		return nil, err
	}
	return file, nil
}

// decodeKindYAML decodes one kind body with the same closed field set and
// endpoint URL scheme as the CUE #Kind schema. Node.Decode ignores
// KnownFields, so the body is re-encoded through a strict decoder.
func decodeKindYAML(body *yaml.Node) (resource.KindConfig, error) {
	var cfg resource.KindConfig
	raw, err := yaml.Marshal(body)
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, err
	}
	if u := cfg.Endpoint.URL; !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return cfg, fmt.Errorf("endpoint url %q must start with http:// or https://", u)
	}
	return cfg, nil
}

func (f *File) add(key string, cfg resource.KindConfig) error {
	if cfg.Name == "" {
		cfg.Name = key
	}
	if slices.Contains(f.Names(), cfg.Name) {
		return &Error{Path: f.Path, Field: "kinds." + key, Message: fmt.Sprintf("duplicate kind name %q", cfg.Name)}
	}
	if err := cfg.Validate(); err != nil {
		return &Error{Path: f.Path, Field: "kinds." + key, Message: err.Error()}
	}
	f.Kinds = append(f.Kinds, cfg)
	return nil
}

func (f *File) check() error {
	if len(f.Kinds) == 0 {
		return &Error{Path: f.Path, Field: "kinds", Message: "no kinds declared"}
	}
	return nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(path string, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &Error{Path: path, Field: "cue", Message: err.Error()}
	}

	first := errs[0]
	e := &Error{Path: path, Field: "cue", Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		e.Pos = positions[0]
	}
	return e
}
