package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/afternoon/ontopy/internal/endpoint"
)

// DiscoverOptions holds flags for the classes and properties commands.
type DiscoverOptions struct {
	*RootOptions
	Endpoint string
	Username string
	Password string
}

// URIList is a list of URIs printed one per line.
type URIList []string

// WriteText prints one URI per line.
func (l URIList) WriteText(w io.Writer) error {
	for _, uri := range l {
		if _, err := fmt.Fprintln(w, uri); err != nil {
			return err
		}
	}
	return nil
}

func addEndpointFlags(cmd *cobra.Command, opts *DiscoverOptions) {
	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "SPARQL endpoint URL (required)")
	_ = cmd.MarkFlagRequired("endpoint")
	cmd.Flags().StringVar(&opts.Username, "username", "", "HTTP basic auth username")
	cmd.Flags().StringVar(&opts.Password, "password", "", "HTTP basic auth password")
}

func (o *DiscoverOptions) client() *endpoint.Client {
	return endpoint.New(o.Endpoint,
		endpoint.WithHTTPClient(o.httpClient()),
		endpoint.WithLogger(o.Logger()),
		endpoint.WithBasicAuth(o.Username, o.Password),
	)
}

// NewClassesCommand creates the classes command.
func NewClassesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DiscoverOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List the classes an endpoint has instances of",
		Long: `List every class used as an rdf:type at the endpoint.

Example:
  ontopy classes --endpoint http://dbpedia.org/sparql`,
		Args:          commandArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			classes, err := opts.client().Classes(cmd.Context())
			if err != nil {
				return err
			}
			return opts.formatter(cmd).Success(URIList(classes))
		},
	}

	addEndpointFlags(cmd, opts)
	return cmd
}

// NewPropertiesCommand creates the properties command.
func NewPropertiesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DiscoverOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "properties <class-uri>",
		Short: "List the properties used by instances of a class",
		Long: `List every predicate used on instances of the class at the endpoint.

Example:
  ontopy properties --endpoint http://dbpedia.org/sparql http://dbpedia.org/ontology/Band`,
		Args:          commandArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := opts.client().Properties(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return opts.formatter(cmd).Success(URIList(props))
		},
	}

	addEndpointFlags(cmd, opts)
	return cmd
}
