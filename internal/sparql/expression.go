package sparql

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Pattern is a (subject, predicate, object) clause of a where or optional
// block.
type Pattern struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// Expression is one SPARQL SELECT query.
//
// Expression is immutable: all builder methods return a new Expression and
// never modify the receiver. Each derived expression owns independent copies
// of its clause slices, so siblings derived from a shared base cannot alias.
//
// The zero value is an empty expression with no select list (rendered as *)
// and no where patterns (which cannot be serialized).
type Expression struct {
	selectVars []string
	distinct   bool
	where      []Pattern
	optional   []Pattern
	orderBy    []string
	limit      *int
	offset     *int
}

// New returns an empty expression.
func New() Expression {
	return Expression{}
}

// clone copies every clause slice so the result shares nothing mutable with e.
func (e Expression) clone() Expression {
	c := Expression{
		selectVars: slices.Clone(e.selectVars),
		distinct:   e.distinct,
		where:      slices.Clone(e.where),
		optional:   slices.Clone(e.optional),
		orderBy:    slices.Clone(e.orderBy),
	}
	if e.limit != nil {
		n := *e.limit
		c.limit = &n
	}
	if e.offset != nil {
		n := *e.offset
		c.offset = &n
	}
	return c
}

// WithSelect appends variables to the select list.
func (e Expression) WithSelect(vars ...string) Expression {
	c := e.clone()
	c.selectVars = append(c.selectVars, vars...)
	return c
}

// WithDistinct marks the query as select distinct.
func (e Expression) WithDistinct() Expression {
	c := e.clone()
	c.distinct = true
	return c
}

// WithWhere appends one required triple pattern.
func (e Expression) WithWhere(subject, predicate, object Term) Expression {
	c := e.clone()
	c.where = append(c.where, Pattern{Subject: subject, Predicate: predicate, Object: object})
	return c
}

// WithOptional appends one triple pattern to the optional block.
func (e Expression) WithOptional(subject, predicate, object Term) Expression {
	c := e.clone()
	c.optional = append(c.optional, Pattern{Subject: subject, Predicate: predicate, Object: object})
	return c
}

// WithOrderBy appends ordering keys. Keys are rendered verbatim, so both
// variables ("?name") and expressions ("desc(?name)") are accepted.
func (e Expression) WithOrderBy(keys ...string) Expression {
	c := e.clone()
	c.orderBy = append(c.orderBy, keys...)
	return c
}

// WithLimit sets the limit. Negative values are rejected.
func (e Expression) WithLimit(n int) (Expression, error) {
	if n < 0 {
		return Expression{}, newRangeError("limit must be non-negative, got %d", n)
	}
	c := e.clone()
	c.limit = &n
	return c, nil
}

// WithOffset sets the offset. Negative values are rejected.
func (e Expression) WithOffset(n int) (Expression, error) {
	if n < 0 {
		return Expression{}, newRangeError("offset must be non-negative, got %d", n)
	}
	c := e.clone()
	c.offset = &n
	return c, nil
}

// WithSlice restricts the rows returned to the half-open range r.
//
// The range is relative to any window the expression already has: slicing
// an expression with offset 10 limit 5 by Span(1, 3) yields offset 11
// limit 2. On an unsliced expression, Span(0, 5) yields limit 5 with no
// offset, Span(1, 6) yields offset 1 limit 5, and From(3) yields offset 3
// with no limit.
func (e Expression) WithSlice(r Range) (Expression, error) {
	if err := r.validate(); err != nil {
		return Expression{}, err
	}

	c := e.clone()

	base := 0
	if c.offset != nil {
		base = *c.offset
	}
	if offset := base + r.Start; offset > 0 {
		c.offset = &offset
	} else {
		c.offset = nil
	}

	var limit *int
	if !r.Open {
		n := r.Stop - r.Start
		limit = &n
	}
	if c.limit != nil {
		avail := max(*c.limit-r.Start, 0)
		if limit == nil || *limit > avail {
			limit = &avail
		}
	}
	c.limit = limit

	return c, nil
}

// Vars returns a copy of the select list.
func (e Expression) Vars() []string { return slices.Clone(e.selectVars) }

// Distinct reports whether the query is select distinct.
func (e Expression) Distinct() bool { return e.distinct }

// Patterns returns a copy of the required where patterns.
func (e Expression) Patterns() []Pattern { return slices.Clone(e.where) }

// Optionals returns a copy of the optional patterns.
func (e Expression) Optionals() []Pattern { return slices.Clone(e.optional) }

// Ordering returns a copy of the order by keys.
func (e Expression) Ordering() []string { return slices.Clone(e.orderBy) }

// Limit returns the limit and whether one is set.
func (e Expression) Limit() (int, bool) {
	if e.limit == nil {
		return 0, false
	}
	return *e.limit, true
}

// Offset returns the offset and whether one is set.
func (e Expression) Offset() (int, bool) {
	if e.offset == nil {
		return 0, false
	}
	return *e.offset, true
}

// Serialize renders the expression as SPARQL text.
//
// Clauses are emitted in a fixed order: select, where (with the nested
// optional block), order by, offset, limit. Returns ErrEmptyWhere if the
// expression has no where patterns.
func (e Expression) Serialize() (string, error) {
	if len(e.where) == 0 {
		return "", &BuildError{Code: ErrCodeEmptyWhere, Message: "missing where clause"}
	}

	q := []string{"select"}
	if e.distinct {
		q = append(q, "distinct")
	}
	if len(e.selectVars) > 0 {
		q = append(q, e.selectVars...)
	} else {
		q = append(q, "*")
	}

	where, err := joinPatterns(e.where)
	if err != nil {
		return "", fmt.Errorf("serialize where: %w", err)
	}
	q = append(q, "where", "{", where)

	if len(e.optional) > 0 {
		optional, err := joinPatterns(e.optional)
		if err != nil {
			return "", fmt.Errorf("serialize optional: %w", err)
		}
		q = append(q, "optional", "{", optional, "}")
	}
	q = append(q, "}")

	if len(e.orderBy) > 0 {
		q = append(q, "order by", strings.Join(e.orderBy, ", "))
	}
	if e.offset != nil {
		q = append(q, "offset", strconv.Itoa(*e.offset))
	}
	if e.limit != nil {
		q = append(q, "limit", strconv.Itoa(*e.limit))
	}

	return strings.Join(q, " "), nil
}

// String returns the serialized query, or a diagnostic placeholder if the
// expression cannot be serialized.
func (e Expression) String() string {
	s, err := e.Serialize()
	if err != nil {
		return fmt.Sprintf("<invalid query: %v>", err)
	}
	return s
}

func joinPatterns(patterns []Pattern) (string, error) {
	parts := make([]string, len(patterns))
	for i, p := range patterns {
		s, err := FormatPattern(p)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, " . "), nil
}
