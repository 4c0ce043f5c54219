package sparql

import (
	"fmt"
	"strings"
)

// Term is one position of a triple pattern.
//
// This is a sealed interface - only types in this package implement it.
// Resource handles from other packages take part through Ref.
type Term interface {
	termNode() // Marker method - seals interface to this package
}

// Var is a query variable. The leading "?" is optional: Var("x") and
// Var("?x") both render as ?x.
type Var string

func (Var) termNode() {}

// Name returns the variable name including the leading "?".
func (v Var) Name() string {
	if strings.HasPrefix(string(v), "?") {
		return string(v)
	}
	return "?" + string(v)
}

// IRI is an absolute IRI, rendered as <iri>.
type IRI string

func (IRI) termNode() {}

// Literal is a plain string literal, rendered double-quoted.
type Literal string

func (Literal) termNode() {}

// LangLiteral is a language-tagged string literal, rendered as "text"@lang.
type LangLiteral struct {
	Value string
	Lang  string
}

func (LangLiteral) termNode() {}

// TypeMarker is the reserved predicate token standing for rdf:type.
type TypeMarker struct{}

func (TypeMarker) termNode() {}

// A is the rdf:type marker, rendered as the bare token a.
var A Term = TypeMarker{}

// Ref is a resource identified by URI, substituted as a term.
// It renders exactly like IRI.
type Ref struct {
	URI string
}

func (Ref) termNode() {}

// Token converts a loose string into a term: a token beginning with "?" is a
// variable, anything else is a literal.
func Token(s string) Term {
	if strings.HasPrefix(s, "?") {
		return Var(s)
	}
	return Literal(s)
}

// Format renders a single term in SPARQL syntax.
func Format(t Term) (string, error) {
	switch term := t.(type) {
	case Var:
		return term.Name(), nil
	case IRI:
		return "<" + string(term) + ">", nil
	case Ref:
		return "<" + term.URI + ">", nil
	case TypeMarker:
		return "a", nil
	case Literal:
		return quote(string(term)), nil
	case LangLiteral:
		if term.Lang == "" {
			return quote(term.Value), nil
		}
		return quote(term.Value) + "@" + term.Lang, nil
	case nil:
		return "", fmt.Errorf("cannot format nil term")
	default:
		return "", fmt.Errorf("unsupported term type: %T", t)
	}
}

// FormatPattern renders a triple pattern as "subject predicate object".
func FormatPattern(p Pattern) (string, error) {
	parts := make([]string, 0, 3)
	for _, t := range []Term{p.Subject, p.Predicate, p.Object} {
		s, err := Format(t)
		if err != nil {
			return "", fmt.Errorf("format pattern: %w", err)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " "), nil
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func quote(s string) string {
	return `"` + literalEscaper.Replace(s) + `"`
}

// ParseTerm reads the compact textual term syntax used on command lines:
//
//	<iri>          IRI
//	?name          variable
//	a              type marker
//	"text"         literal
//	"text"@en      language-tagged literal
//	anything else  literal
func ParseTerm(s string) Term {
	switch {
	case s == "a":
		return A
	case strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") && len(s) >= 2:
		return IRI(s[1 : len(s)-1])
	case strings.HasPrefix(s, "?"):
		return Var(s)
	case strings.HasPrefix(s, `"`):
		end := strings.LastIndex(s, `"`)
		if end > 0 {
			value := s[1:end]
			rest := s[end+1:]
			if strings.HasPrefix(rest, "@") && len(rest) > 1 {
				return LangLiteral{Value: value, Lang: rest[1:]}
			}
			if rest == "" {
				return Literal(value)
			}
		}
		return Literal(s)
	default:
		return Literal(s)
	}
}
