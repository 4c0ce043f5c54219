// Package document dereferences resource URIs as RDF documents and flattens
// them into triples.
//
// Content negotiation asks for Turtle, N-Triples or RDF/XML; the response
// Content-Type (falling back to the URL extension) selects the parser.
package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/knakk/rdf"
	"golang.org/x/text/unicode/norm"
)

// Triple is one statement of a fetched document. Object holds the IRI, blank
// node label, or literal lexical form; Lang is set only for language-tagged
// literals.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
	Literal   bool
	Lang      string
	Datatype  string
}

// acceptHeader lists the formats the parser understands, most preferred first.
const acceptHeader = "text/turtle, application/n-triples;q=0.9, application/rdf+xml;q=0.8"

// Fetcher retrieves RDF documents over HTTP.
//
// Thread-safety: Fetcher is stateless after construction and safe for
// concurrent use.
type Fetcher struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewFetcher creates a Fetcher. A nil client uses http.DefaultClient; a nil
// logger uses slog.Default().
func NewFetcher(hc *http.Client, logger *slog.Logger) *Fetcher {
	if hc == nil {
		hc = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{httpClient: hc, logger: logger}
}

// FetchTriples dereferences uri and returns its triples in document order.
func (f *Fetcher) FetchTriples(ctx context.Context, uri string) ([]Triple, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", uri, err)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", uri, resp.StatusCode)
	}

	format := detectFormat(resp.Header.Get("Content-Type"), resp.Request.URL.Path)
	triples, err := Parse(resp.Body, format)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", uri, err)
	}

	f.logger.Debug("fetched document", "uri", uri, "triples", len(triples))
	return triples, nil
}

// Parse decodes an RDF document in the given format.
func Parse(r io.Reader, format rdf.Format) ([]Triple, error) {
	dec := rdf.NewTripleDecoder(r, format)

	var triples []Triple
	for {
		tr, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
		triples = append(triples, convert(tr))
	}
	return triples, nil
}

func convert(tr rdf.Triple) Triple {
	t := Triple{
		Subject:   tr.Subj.String(),
		Predicate: tr.Pred.String(),
		Object:    tr.Obj.String(),
	}
	if lit, ok := tr.Obj.(rdf.Literal); ok {
		t.Literal = true
		t.Object = norm.NFC.String(lit.String())
		t.Lang = lit.Lang()
		t.Datatype = lit.DataType.String()
	}
	return t
}

// detectFormat picks a parser from the media type, then the URL extension.
// RDF/XML is the fallback, matching what most linked-data servers return
// by default.
func detectFormat(contentType, urlPath string) rdf.Format {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "text/turtle", "application/x-turtle":
			return rdf.Turtle
		case "application/n-triples", "text/plain":
			return rdf.NTriples
		case "application/rdf+xml":
			return rdf.RDFXML
		}
	}

	switch strings.ToLower(path.Ext(urlPath)) {
	case ".ttl":
		return rdf.Turtle
	case ".nt":
		return rdf.NTriples
	default:
		return rdf.RDFXML
	}
}
