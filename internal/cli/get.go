package cli

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// GetResult is the output of the get command.
type GetResult struct {
	Resource   string            `json:"resource"`
	Kind       string            `json:"kind"`
	Predicate  string            `json:"predicate,omitempty"`
	Value      string            `json:"value,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// WriteText prints a single value, or every property sorted by predicate.
func (r GetResult) WriteText(w io.Writer) error {
	if r.Predicate != "" {
		_, err := fmt.Fprintln(w, r.Value)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	predicates := make([]string, 0, len(r.Properties))
	for p := range r.Properties {
		predicates = append(predicates, p)
	}
	slices.Sort(predicates)
	for _, p := range predicates {
		fmt.Fprintf(tw, "%s\t%s\n", p, r.Properties[p])
	}
	return tw.Flush()
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <kind> <uri> [predicate]",
		Short: "Dereference a resource and print its properties",
		Long: `Fetch the linked data document of a resource and print its properties.

Literals tagged in a language other than the kind's are skipped. When a
predicate repeats, the last value in the document wins.

Examples:
  ontopy get Band http://dbpedia.org/resource/Kraftwerk
  ontopy get Band http://dbpedia.org/resource/Kraftwerk :genre
  ontopy get Band http://dbpedia.org/resource/Kraftwerk '<http://www.w3.org/2000/01/rdf-schema#label>'`,
		Args:          commandArgs(cobra.RangeArgs(2, 3)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runGet(opts *RootOptions, args []string, cmd *cobra.Command) error {
	ctx := cmd.Context()

	kind, err := opts.openKind(args[0], nil)
	if err != nil {
		return err
	}
	h := kind.ByURI(args[1])
	result := GetResult{Resource: h.URI(), Kind: kind.Name()}

	if len(args) == 3 {
		result.Predicate = parsePredicate(kind, args[2])
		if result.Value, err = h.Get(ctx, result.Predicate); err != nil {
			return err
		}
		return opts.formatter(cmd).Success(result)
	}

	if result.Properties, err = h.Properties(ctx); err != nil {
		return err
	}
	return opts.formatter(cmd).Success(result)
}
