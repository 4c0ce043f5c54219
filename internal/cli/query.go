package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/afternoon/ontopy/internal/resource"
	"github.com/afternoon/ontopy/internal/sparql"
	"github.com/afternoon/ontopy/internal/store"
)

// QueryFlags holds the pattern flags shared by query and list.
type QueryFlags struct {
	Where    []string
	Optional []string
	Distinct bool
	OrderBy  []string
	Slice    string
}

func addQueryFlags(cmd *cobra.Command, qf *QueryFlags) {
	cmd.Flags().StringArrayVarP(&qf.Where, "where", "w", nil, "pattern predicate=object on ?resource (repeatable)")
	cmd.Flags().StringArrayVar(&qf.Optional, "optional", nil, "optional pattern predicate=object on ?resource (repeatable)")
	cmd.Flags().BoolVar(&qf.Distinct, "distinct", false, "select distinct")
	cmd.Flags().StringSliceVar(&qf.OrderBy, "order-by", nil, "order by keys, e.g. ?label or desc(?year)")
	cmd.Flags().StringVar(&qf.Slice, "slice", "", "row window start:stop or start:")
}

// build applies the flags to the kind's base query.
func (qf *QueryFlags) build(kind *resource.Kind) (resource.Query, error) {
	q := kind.Query()
	for _, w := range qf.Where {
		p, o, err := parsePattern(kind, w)
		if err != nil {
			return q, err
		}
		q = q.Where(p, o)
	}
	for _, w := range qf.Optional {
		p, o, err := parsePattern(kind, w)
		if err != nil {
			return q, err
		}
		q = q.Optional(p, o)
	}
	if qf.Distinct {
		q = q.Distinct()
	}
	if len(qf.OrderBy) > 0 {
		q = q.OrderBy(qf.OrderBy...)
	}
	return q, nil
}

func (qf *QueryFlags) window() (sparql.Range, bool, error) {
	if qf.Slice == "" {
		return sparql.Range{}, false, nil
	}
	r, err := parseRange(qf.Slice)
	return r, true, err
}

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	QueryFlags
	Lint bool
}

// QueryResult is the output of the query command.
type QueryResult struct {
	Kind     string   `json:"kind"`
	Query    string   `json:"query"`
	Warnings []string `json:"warnings,omitempty"`
}

// WriteText prints the query, followed by lint warnings as SPARQL comments.
func (r QueryResult) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, r.Query); err != nil {
		return err
	}
	for _, warning := range r.Warnings {
		if _, err := fmt.Fprintf(w, "# warning: %s\n", warning); err != nil {
			return err
		}
	}
	return nil
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <kind>",
		Short: "Print the SPARQL for a resource query",
		Long: `Build a query over a declared kind and print its SPARQL without
contacting the endpoint.

Terms: <iri> is an IRI, ?x a variable, a the type marker, :local a name in
the kind's namespace, "text"@en a tagged literal. Anything else is a literal.

Examples:
  ontopy query Band --where ':genre=<http://dbpedia.org/resource/Krautrock>'
  ontopy query Band --optional '<http://www.w3.org/2000/01/rdf-schema#label>=?label' --order-by ?label --slice 0:10
  ontopy query Band --where ':hometown=?town' --order-by ?year --lint`,
		Args:          commandArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	addQueryFlags(cmd, &opts.QueryFlags)
	cmd.Flags().BoolVar(&opts.Lint, "lint", false, "report unbound variables")

	return cmd
}

func runQuery(opts *QueryOptions, kindName string, cmd *cobra.Command) error {
	kind, err := opts.openKind(kindName, nil)
	if err != nil {
		return err
	}

	q, err := opts.build(kind)
	if err != nil {
		return err
	}
	if r, ok, err := opts.window(); err != nil {
		return err
	} else if ok {
		if q, err = q.Window(r); err != nil {
			return err
		}
	}

	text, err := q.Serialize()
	if err != nil {
		return err
	}

	result := QueryResult{Kind: kind.Name(), Query: text}
	if opts.Lint {
		result.Warnings = sparql.Validate(q.Expression()).Warnings
	}
	return opts.formatter(cmd).Success(result)
}

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	QueryFlags
	At       int
	Database string
}

// ListResult is the output of the list command.
type ListResult struct {
	Kind      string   `json:"kind"`
	Query     string   `json:"query"`
	Resources []string `json:"resources"`
}

// WriteText prints one URI per line.
func (r ListResult) WriteText(w io.Writer) error {
	for _, uri := range r.Resources {
		if _, err := fmt.Fprintln(w, uri); err != nil {
			return err
		}
	}
	return nil
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "Run a resource query and print matching URIs",
		Long: `Run a query over a declared kind against its endpoint and print the
URI of every matching resource, in endpoint order.

With --db every execution, successful or not, is appended to the
execution log at that path.

Examples:
  ontopy list Band --where ':pastMembers=<http://dbpedia.org/resource/Michael_Rother>'
  ontopy list Band --slice 10:20 --db ./ontopy.db
  ontopy list Band --at 3`,
		Args:          commandArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, args[0], cmd)
		},
	}

	addQueryFlags(cmd, &opts.QueryFlags)
	cmd.Flags().IntVar(&opts.At, "at", -1, "print only the resource at this index")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record executions in this SQLite database")
	cmd.MarkFlagsMutuallyExclusive("at", "slice")

	return cmd
}

func runList(opts *ListOptions, kindName string, cmd *cobra.Command) error {
	ctx := cmd.Context()

	var rec resource.Recorder
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()
		rec = st
	}

	kind, err := opts.openKind(kindName, rec)
	if err != nil {
		return err
	}
	q, err := opts.build(kind)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("at") {
		h, err := q.At(ctx, opts.At)
		if err != nil {
			return err
		}
		w, _ := q.Window(sparql.At(opts.At))
		return opts.formatter(cmd).Success(ListResult{
			Kind:      kind.Name(),
			Query:     w.String(),
			Resources: []string{h.URI()},
		})
	}

	r, ok, err := opts.window()
	if err != nil {
		return err
	}
	if ok {
		if q, err = q.Window(r); err != nil {
			return err
		}
	}

	result := ListResult{Kind: kind.Name(), Query: q.String(), Resources: []string{}}
	for h, err := range q.Results(ctx) {
		if err != nil {
			return err
		}
		result.Resources = append(result.Resources, h.URI())
	}
	opts.Logger().Debug("listed resources", "kind", kind.Name(), "count", len(result.Resources))

	return opts.formatter(cmd).Success(result)
}
