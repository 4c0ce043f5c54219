package resource

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/afternoon/ontopy/internal/document"
	"github.com/afternoon/ontopy/internal/sparql"
)

// DefaultLanguage is the language tag used when a kind declares none.
const DefaultLanguage = "en"

// EndpointConfig locates the SPARQL endpoint of a kind.
type EndpointConfig struct {
	URL      string `json:"url" yaml:"url"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// KindConfig declares one resource kind.
//
// TypeURI names the RDF class. When it is empty the class is Prefix+Label,
// and Prefix also serves as the kind's namespace for NS.
type KindConfig struct {
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
	TypeURI  string         `json:"type_uri,omitempty" yaml:"type_uri,omitempty"`
	Prefix   string         `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Label    string         `json:"label,omitempty" yaml:"label,omitempty"`
	Endpoint EndpointConfig `json:"endpoint" yaml:"endpoint"`
	Language string         `json:"language,omitempty" yaml:"language,omitempty"`
}

// ClassURI returns TypeURI, or Prefix+Label when TypeURI is empty.
func (c KindConfig) ClassURI() string {
	if c.TypeURI != "" {
		return c.TypeURI
	}
	return c.Prefix + c.Label
}

// DisplayName returns Name, falling back to Label and then to the local part
// of the class URI.
func (c KindConfig) DisplayName() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.Label != "":
		return c.Label
	}
	uri := c.ClassURI()
	if i := strings.LastIndexAny(uri, "/#"); i >= 0 && i < len(uri)-1 {
		return uri[i+1:]
	}
	return uri
}

// Validate checks the declaration without contacting the endpoint.
func (c KindConfig) Validate() error {
	name := c.DisplayName()
	if c.ClassURI() == "" {
		return &ConfigError{Kind: name, Field: "type_uri", Message: "type_uri or prefix+label is required"}
	}
	if c.Endpoint.URL == "" {
		return &ConfigError{Kind: name, Field: "endpoint.url", Message: "endpoint url is required"}
	}
	if c.Language != "" {
		if _, err := language.Parse(c.Language); err != nil {
			return &ConfigError{Kind: name, Field: "language", Message: err.Error()}
		}
	}
	return nil
}

// Executor runs query text against an endpoint and returns the URIs bound to
// the query's projected variable.
type Executor interface {
	Execute(ctx context.Context, query string) ([]string, error)
}

// Fetcher dereferences a URI as an RDF document.
type Fetcher interface {
	FetchTriples(ctx context.Context, uri string) ([]document.Triple, error)
}

// Execution describes one terminal query run.
type Execution struct {
	ID        string
	Kind      string
	Endpoint  string
	Query     string
	Rows      int
	Err       string
	StartedAt time.Time
	Duration  time.Duration
}

// Recorder receives every terminal query run of a kind.
type Recorder interface {
	RecordExecution(ctx context.Context, e Execution) error
}

// Kind is a declared resource kind bound to its collaborators.
//
// Thread-safety: Kind is immutable after construction and safe for
// concurrent use.
type Kind struct {
	cfg      KindConfig
	classURI string
	lang     language.Tag
	exec     Executor
	fetch    Fetcher
	recorder Recorder
	logger   *slog.Logger
	newID    func() string
	now      func() time.Time
}

// KindOption configures a Kind.
type KindOption func(*Kind)

// WithLogger sets the logger for query execution and property fetches.
func WithLogger(logger *slog.Logger) KindOption {
	return func(k *Kind) { k.logger = logger }
}

// WithRecorder records every terminal query run.
func WithRecorder(r Recorder) KindOption {
	return func(k *Kind) { k.recorder = r }
}

// WithIDGenerator overrides the execution id generator (for testing).
func WithIDGenerator(gen func() string) KindOption {
	return func(k *Kind) { k.newID = gen }
}

// WithClock overrides the wall clock used for execution records (for testing).
func WithClock(now func() time.Time) KindOption {
	return func(k *Kind) { k.now = now }
}

// NewKind validates cfg and binds it to an executor and a fetcher.
func NewKind(cfg KindConfig, exec Executor, fetch Fetcher, opts ...KindOption) (*Kind, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	tag, err := language.Parse(cfg.Language)
	if err != nil {
		return nil, &ConfigError{Kind: cfg.DisplayName(), Field: "language", Message: err.Error()}
	}

	k := &Kind{
		cfg:      cfg,
		classURI: cfg.ClassURI(),
		lang:     tag,
		exec:     exec,
		fetch:    fetch,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:    func() string { return uuid.Must(uuid.NewV7()).String() },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// Name returns the kind's display name.
func (k *Kind) Name() string { return k.cfg.DisplayName() }

// TypeURI returns the RDF class URI.
func (k *Kind) TypeURI() string { return k.classURI }

// Language returns the canonical language tag used to filter literals.
func (k *Kind) Language() string { return k.lang.String() }

// Config returns the declaration the kind was built from.
func (k *Kind) Config() KindConfig { return k.cfg }

// NS returns the IRI of local within the kind's prefix namespace.
func (k *Kind) NS(local string) sparql.IRI {
	return sparql.IRI(k.cfg.Prefix + local)
}

// ByURI returns a handle for an explicitly known resource. No request is made.
func (k *Kind) ByURI(uri string) *Handle {
	return &Handle{kind: k, uri: uri}
}

// matchesLanguage reports whether a literal's language tag is kept: untagged
// literals always are, tagged ones only when they equal the kind's tag.
func (k *Kind) matchesLanguage(tag string) bool {
	if tag == "" {
		return true
	}
	t, err := language.Parse(tag)
	if err != nil {
		return false
	}
	return t.String() == k.lang.String()
}

// run serializes expr, executes it and records the outcome.
func (k *Kind) run(ctx context.Context, expr sparql.Expression) ([]string, error) {
	text, err := expr.Serialize()
	if err != nil {
		return nil, err
	}

	exec := Execution{
		ID:        k.newID(),
		Kind:      k.Name(),
		Endpoint:  k.cfg.Endpoint.URL,
		Query:     text,
		StartedAt: k.now(),
	}

	uris, err := k.exec.Execute(ctx, text)
	exec.Duration = k.now().Sub(exec.StartedAt)
	exec.Rows = len(uris)
	if err != nil {
		exec.Rows = 0
		exec.Err = err.Error()
	}

	k.logger.Debug("query executed",
		"kind", exec.Kind,
		"execution_id", exec.ID,
		"rows", exec.Rows,
		"duration", exec.Duration,
		"error", exec.Err,
	)

	if k.recorder != nil {
		if recErr := k.recorder.RecordExecution(ctx, exec); recErr != nil {
			k.logger.Warn("failed to record execution", "execution_id", exec.ID, "error", recErr)
		}
	}

	if err != nil {
		return nil, err
	}
	return uris, nil
}
