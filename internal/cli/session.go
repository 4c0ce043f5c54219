package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/afternoon/ontopy/internal/config"
	"github.com/afternoon/ontopy/internal/document"
	"github.com/afternoon/ontopy/internal/endpoint"
	"github.com/afternoon/ontopy/internal/resource"
	"github.com/afternoon/ontopy/internal/sparql"
)

// loadConfig reads the kinds file, with credentials from the environment.
// The dotenv file is loaded first so it can also name the kinds file.
func (o *RootOptions) loadConfig() (*config.File, error) {
	if err := config.LoadEnv(o.EnvFile); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load env file", err)
	}

	path := o.Config
	if path == "" {
		path = os.Getenv("ONTOPY_CONFIG")
	}
	if path == "" {
		return nil, NewExitError(ExitCommandError, "no kinds file: pass --config or set ONTOPY_CONFIG")
	}

	f, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	f.ApplyEnv(os.LookupEnv)
	o.Logger().Debug("kinds loaded", "path", path, "kinds", len(f.Kinds))
	return f, nil
}

// openKind binds a declared kind to its endpoint and a document fetcher.
// rec may be nil.
func (o *RootOptions) openKind(name string, rec resource.Recorder) (*resource.Kind, error) {
	f, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	cfg, err := f.Kind(name)
	if err != nil {
		return nil, err
	}

	hc := o.httpClient()
	client := endpoint.New(cfg.Endpoint.URL,
		endpoint.WithHTTPClient(hc),
		endpoint.WithLogger(o.Logger()),
		endpoint.WithBasicAuth(cfg.Endpoint.Username, cfg.Endpoint.Password),
	)
	fetcher := document.NewFetcher(hc, o.Logger())

	kindOpts := []resource.KindOption{resource.WithLogger(o.Logger())}
	if rec != nil {
		kindOpts = append(kindOpts, resource.WithRecorder(rec))
	}
	return resource.NewKind(cfg, client, fetcher, kindOpts...)
}

// parseTerm reads a command-line term. ":local" names a term in the kind's
// namespace; everything else follows sparql.ParseTerm.
func parseTerm(kind *resource.Kind, s string) sparql.Term {
	if local, ok := strings.CutPrefix(s, ":"); ok && local != "" {
		return kind.NS(local)
	}
	return sparql.ParseTerm(s)
}

// parsePattern splits "predicate=object". An IRI predicate may itself
// contain '=' inside its angle brackets.
func parsePattern(kind *resource.Kind, s string) (sparql.Term, sparql.Term, error) {
	split := strings.Index(s, "=")
	if strings.HasPrefix(s, "<") {
		if end := strings.Index(s, ">"); end > 0 && end+1 < len(s) && s[end+1] == '=' {
			split = end + 1
		}
	}
	if split <= 0 || split == len(s)-1 {
		return nil, nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid pattern %q: expected predicate=object", s))
	}
	return parseTerm(kind, s[:split]), parseTerm(kind, s[split+1:]), nil
}

// parsePredicate reads a property name for get: ":local", "<iri>" or a bare IRI.
func parsePredicate(kind *resource.Kind, s string) string {
	if iri, ok := parseTerm(kind, s).(sparql.IRI); ok {
		return string(iri)
	}
	return s
}

// parseRange reads "start:stop", "start:" or "start:stop:step".
func parseRange(s string) (sparql.Range, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return sparql.Range{}, NewExitError(ExitCommandError, fmt.Sprintf("invalid slice %q: expected start:stop", s))
	}

	num := func(p string) (int, error) {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, WrapExitError(ExitCommandError, fmt.Sprintf("invalid slice %q", s), err)
		}
		return n, nil
	}

	start := 0
	if parts[0] != "" {
		n, err := num(parts[0])
		if err != nil {
			return sparql.Range{}, err
		}
		start = n
	}

	r := sparql.From(start)
	if parts[1] != "" {
		stop, err := num(parts[1])
		if err != nil {
			return sparql.Range{}, err
		}
		r = sparql.Span(start, stop)
	}

	if len(parts) == 3 && parts[2] != "" {
		step, err := num(parts[2])
		if err != nil {
			return sparql.Range{}, err
		}
		r = r.By(step)
	}
	return r, nil
}
