package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// KindSummary describes one declared kind. Credentials are never shown.
type KindSummary struct {
	Name     string `json:"name"`
	Class    string `json:"class"`
	Endpoint string `json:"endpoint"`
	Language string `json:"language"`
	Auth     bool   `json:"auth"`
}

// KindsResult is the output of the kinds command.
type KindsResult struct {
	Kinds []KindSummary `json:"kinds"`
}

// WriteText prints one kind per line.
func (r KindsResult) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCLASS\tENDPOINT\tLANGUAGE")
	for _, k := range r.Kinds {
		endpoint := k.Endpoint
		if k.Auth {
			endpoint += " (auth)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", k.Name, k.Class, endpoint, k.Language)
	}
	return tw.Flush()
}

// NewKindsCommand creates the kinds command.
func NewKindsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List declared resource kinds",
		Long: `List the kinds declared in the kinds file, in declaration order.

Example:
  ontopy kinds --config ./kinds.cue`,
		Args:          commandArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}

			result := KindsResult{Kinds: make([]KindSummary, len(f.Kinds))}
			for i, k := range f.Kinds {
				result.Kinds[i] = KindSummary{
					Name:     k.Name,
					Class:    k.ClassURI(),
					Endpoint: k.Endpoint.URL,
					Language: k.Language,
					Auth:     k.Endpoint.Username != "" && k.Endpoint.Password != "",
				}
			}
			return rootOpts.formatter(cmd).Success(result)
		},
	}

	return cmd
}
