package resource

import (
	"context"
	"fmt"
	"iter"
	"math"

	"github.com/afternoon/ontopy/internal/sparql"
)

// ResultVar is the variable every kind query projects and binds its
// resources to.
const ResultVar = "?resource"

// Query is a filtered view over the resources of one kind.
//
// Query is immutable: every builder method returns a new Query and the
// receiver keeps its expression. The zero value is not usable; obtain
// queries from Kind.Query.
type Query struct {
	kind *Kind
	expr sparql.Expression
}

// Query returns the unfiltered query selecting every resource of the kind.
func (k *Kind) Query() Query {
	expr := sparql.New().
		WithSelect(ResultVar).
		WithWhere(sparql.Var(ResultVar), sparql.A, sparql.IRI(k.classURI))
	return Query{kind: k, expr: expr}
}

// Resources iterates every resource of the kind.
func (k *Kind) Resources(ctx context.Context) iter.Seq2[*Handle, error] {
	return k.Query().Results(ctx)
}

// Kind returns the kind the query selects.
func (q Query) Kind() *Kind { return q.kind }

// Expression returns the wrapped expression.
func (q Query) Expression() sparql.Expression { return q.expr }

func (q Query) with(expr sparql.Expression) Query {
	return Query{kind: q.kind, expr: expr}
}

// Where requires the resource to have predicate with value object. The
// subject is always the query's result variable.
func (q Query) Where(predicate, object sparql.Term) Query {
	return q.with(q.expr.WithWhere(sparql.Var(ResultVar), predicate, object))
}

// Optional adds an optional pattern on the result variable.
func (q Query) Optional(predicate, object sparql.Term) Query {
	return q.with(q.expr.WithOptional(sparql.Var(ResultVar), predicate, object))
}

// Distinct removes duplicate resources from the results.
func (q Query) Distinct() Query {
	return q.with(q.expr.WithDistinct())
}

// OrderBy appends ordering keys.
func (q Query) OrderBy(keys ...string) Query {
	return q.with(q.expr.WithOrderBy(keys...))
}

// Limit caps the number of resources.
func (q Query) Limit(n int) (Query, error) {
	expr, err := q.expr.WithLimit(n)
	if err != nil {
		return Query{}, err
	}
	return q.with(expr), nil
}

// Offset skips resources.
func (q Query) Offset(n int) (Query, error) {
	expr, err := q.expr.WithOffset(n)
	if err != nil {
		return Query{}, err
	}
	return q.with(expr), nil
}

// Window restricts the query to the rows in r without executing it.
func (q Query) Window(r sparql.Range) (Query, error) {
	expr, err := q.expr.WithSlice(r)
	if err != nil {
		return Query{}, err
	}
	return q.with(expr), nil
}

// Serialize renders the query text.
func (q Query) Serialize() (string, error) {
	return q.expr.Serialize()
}

func (q Query) String() string {
	return q.expr.String()
}

// Results runs the query when iteration starts and yields one handle per
// returned URI. Each iteration issues a fresh request. On failure a single
// (nil, err) pair is yielded and no handles are.
func (q Query) Results(ctx context.Context) iter.Seq2[*Handle, error] {
	return func(yield func(*Handle, error) bool) {
		uris, err := q.kind.run(ctx, q.expr)
		if err != nil {
			yield(nil, err)
			return
		}
		for _, uri := range uris {
			if !yield(q.kind.ByURI(uri), nil) {
				return
			}
		}
	}
}

// List runs the query and returns every handle.
func (q Query) List(ctx context.Context) ([]*Handle, error) {
	uris, err := q.kind.run(ctx, q.expr)
	if err != nil {
		return nil, err
	}
	handles := make([]*Handle, len(uris))
	for i, uri := range uris {
		handles[i] = q.kind.ByURI(uri)
	}
	return handles, nil
}

// At returns the resource at index, or IndexOutOfRangeError if the endpoint
// has no row there.
func (q Query) At(ctx context.Context, index int) (*Handle, error) {
	if index == math.MaxInt {
		return nil, &sparql.BuildError{
			Code:    sparql.ErrCodeInvalidRange,
			Message: fmt.Sprintf("index %d has no following row", index),
		}
	}
	w, err := q.Window(sparql.At(index))
	if err != nil {
		return nil, err
	}
	handles, err := w.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(handles) == 0 {
		return nil, &IndexOutOfRangeError{Index: index}
	}
	return handles[0], nil
}

// Slice returns the resources in r.
func (q Query) Slice(ctx context.Context, r sparql.Range) ([]*Handle, error) {
	w, err := q.Window(r)
	if err != nil {
		return nil, err
	}
	return w.List(ctx)
}
