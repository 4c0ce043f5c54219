package endpoint

import (
	"encoding/xml"
	"fmt"
	"io"
)

// ResultsNamespace is the namespace of the SPARQL Query Results XML Format.
const ResultsNamespace = "http://www.w3.org/2005/sparql-results#"

// ValueKind says which kind of RDF term a binding holds.
type ValueKind string

const (
	KindURI     ValueKind = "uri"
	KindLiteral ValueKind = "literal"
	KindBNode   ValueKind = "bnode"
)

// Value is one bound RDF term.
type Value struct {
	Kind     ValueKind
	Value    string
	Lang     string // literals only
	Datatype string // literals only
}

// Binding maps variable names (without "?") to values for one result row.
// Unbound variables are absent.
type Binding map[string]Value

// Results is a parsed SELECT result set.
type Results struct {
	Vars     []string
	Bindings []Binding

	rows []orderedRow // bindings with their document order
}

// URIs returns every uri-valued binding in document order, across all rows
// and variables.
func (r *Results) URIs() []string {
	var uris []string
	for _, b := range r.rows {
		for _, name := range b.order {
			if v := b.values[name]; v.Kind == KindURI {
				uris = append(uris, v.Value)
			}
		}
	}
	return uris
}

type orderedRow struct {
	order  []string
	values Binding
}

// xmlResults mirrors the results document.
type xmlResults struct {
	XMLName   xml.Name    `xml:"sparql"`
	Variables []xmlVar    `xml:"head>variable"`
	Results   []xmlResult `xml:"results>result"`
}

type xmlVar struct {
	Name string `xml:"name,attr"`
}

type xmlResult struct {
	Bindings []xmlBinding `xml:"binding"`
}

type xmlBinding struct {
	Name    string      `xml:"name,attr"`
	URI     *string     `xml:"uri"`
	BNode   *string     `xml:"bnode"`
	Literal *xmlLiteral `xml:"literal"`
}

type xmlLiteral struct {
	Lang     string `xml:"lang,attr"`
	Datatype string `xml:"datatype,attr"`
	Value    string `xml:",chardata"`
}

// ParseResults reads a SPARQL XML results document.
func ParseResults(r io.Reader) (*Results, error) {
	var doc xmlResults
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}

	res := &Results{
		Vars:     make([]string, 0, len(doc.Variables)),
		Bindings: make([]Binding, 0, len(doc.Results)),
	}
	for _, v := range doc.Variables {
		res.Vars = append(res.Vars, v.Name)
	}

	for _, xr := range doc.Results {
		row := orderedRow{values: Binding{}}
		for _, xb := range xr.Bindings {
			var v Value
			switch {
			case xb.URI != nil:
				v = Value{Kind: KindURI, Value: *xb.URI}
			case xb.Literal != nil:
				v = Value{Kind: KindLiteral, Value: xb.Literal.Value, Lang: xb.Literal.Lang, Datatype: xb.Literal.Datatype}
			case xb.BNode != nil:
				v = Value{Kind: KindBNode, Value: *xb.BNode}
			default:
				continue
			}
			row.order = append(row.order, xb.Name)
			row.values[xb.Name] = v
		}
		res.rows = append(res.rows, row)
		res.Bindings = append(res.Bindings, row.values)
	}

	return res, nil
}
