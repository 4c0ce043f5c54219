// Package sparql provides an incremental, immutable builder for SPARQL 1.0
// SELECT queries.
//
// An Expression is a value: every builder method returns a new Expression
// that owns independent copies of its clause slices. Two expressions derived
// from the same base never observe each other's clauses.
//
//	base := sparql.New().
//	    WithSelect("?resource").
//	    WithWhere(sparql.Var("resource"), sparql.A, sparql.IRI("http://dbpedia.org/ontology/Band"))
//
//	text, err := base.Serialize()
//	// select ?resource where { ?resource a <http://dbpedia.org/ontology/Band> }
//
// SUPPORTED FRAGMENT:
//
//   - select list (or *), optional distinct
//   - flat triple patterns joined by " . "
//   - one optional { } block of flat triple patterns
//   - order by, offset, limit
//
// Joins beyond shared variables, unions, subqueries and aggregation are not
// representable.
//
// TERMS:
//
// Term is a sealed interface. Backends and callers can switch exhaustively:
//
//	switch t := term.(type) {
//	case Var:        // ?name
//	case IRI:        // <iri>
//	case Literal:    // "text"
//	case LangLiteral: // "text"@lang
//	case TypeMarker: // a
//	case Ref:        // <uri> of a resource handle
//	}
//
// Token applies the loose string rule used by callers that pass plain
// strings: a token starting with "?" is a variable, anything else a literal.
//
// SERIALIZATION ORDER:
//
//	select [distinct] <vars|*> where { <where> [optional { <optional> }] } [order by ..] [offset n] [limit n]
//
// Serialization is deterministic: the same Expression always yields the same
// text.
package sparql
