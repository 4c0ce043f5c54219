package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/afternoon/ontopy/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Kind     string
	Limit    int
}

// HistoryEntry is one logged execution.
type HistoryEntry struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Endpoint   string    `json:"endpoint"`
	Query      string    `json:"query"`
	Rows       int       `json:"rows"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
}

// HistoryResult is the output of the history command.
type HistoryResult struct {
	Executions []HistoryEntry `json:"executions"`
}

// WriteText prints one execution per line, newest first.
func (r HistoryResult) WriteText(w io.Writer) error {
	if len(r.Executions) == 0 {
		_, err := fmt.Fprintln(w, "No executions recorded")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tKIND\tRESULT\tDURATION\tQUERY")
	for _, e := range r.Executions {
		outcome := fmt.Sprintf("%d rows", e.Rows)
		if e.Error != "" {
			outcome = "error: " + e.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%dms\t%s\n",
			e.StartedAt.Format(time.RFC3339), e.Kind, outcome, e.DurationMS, e.Query)
	}
	return tw.Flush()
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show logged query executions",
		Long: `Show the executions recorded by list --db, newest first.

Examples:
  ontopy history --db ./ontopy.db
  ontopy history --db ./ontopy.db --kind Band --limit 5 --format json`,
		Args:          commandArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "only show executions of this kind")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum executions to show (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	executions, err := st.ReadExecutions(cmd.Context(), opts.Kind, opts.Limit)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read executions", err)
	}

	result := HistoryResult{Executions: make([]HistoryEntry, len(executions))}
	for i, e := range executions {
		result.Executions[i] = HistoryEntry{
			ID:         e.ID,
			Kind:       e.Kind,
			Endpoint:   e.Endpoint,
			Query:      e.Query,
			Rows:       e.Rows,
			Error:      e.Err,
			StartedAt:  e.StartedAt,
			DurationMS: e.Duration.Milliseconds(),
		}
	}
	return opts.formatter(cmd).Success(result)
}
