package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/m04kA/gig-conflicts/internal/domain"
	"github.com/m04kA/gig-conflicts/pkg/logger"
)

func newConflictsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Inspect and resolve recorded conflicts",
	}
	cmd.AddCommand(newConflictsListCommand(opts), newConflictsResolveCommand(opts))
	return cmd
}

func newConflictsListCommand(opts *rootOptions) *cobra.Command {
	var ownerID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the unresolved conflicts of an owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openCLIApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.registry.ListActive(cmd.Context(), ownerID)
			if err != nil {
				return err
			}
			printConflicts(cmd.OutOrStdout(), records)
			return nil
		},
	}
	cmd.Flags().StringVar(&ownerID, "owner", "", "owner (performer) id")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func newConflictsResolveCommand(opts *rootOptions) *cobra.Command {
	var (
		id         int64
		resolution string
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Close a conflict with accepted, declined or rescheduled",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openCLIApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			var notesPtr *string
			if cmd.Flags().Changed("notes") {
				notesPtr = &notes
			}

			rec, err := a.registry.Resolve(cmd.Context(), id, domain.Resolution(resolution), notesPtr)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "conflict %d resolved as %s\n", rec.ID, *rec.Resolution)
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "conflict id")
	cmd.Flags().StringVar(&resolution, "resolution", "", "accepted | declined | rescheduled")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("resolution")
	return cmd
}

func openCLIApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := opts.load()
	if err != nil {
		return nil, err
	}
	log, err := logger.NewWithWriter(cmd.ErrOrStderr(), "warn")
	if err != nil {
		return nil, err
	}
	return newApp(cmd.Context(), cfg, log, false)
}

var severityColors = map[domain.Severity]*color.Color{
	domain.SeverityCritical:   color.New(color.FgRed, color.Bold),
	domain.SeverityWarning:    color.New(color.FgYellow),
	domain.SeverityManageable: color.New(color.FgGreen),
}

func severityLabel(s domain.Severity) string {
	label := strings.ToUpper(string(s))
	if c, ok := severityColors[s]; ok {
		return c.Sprint(label)
	}
	return label
}

func printConflicts(w io.Writer, records []*domain.ConflictRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "no unresolved conflicts")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSEVERITY\tPAIR\tREASON")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, severityLabel(r.Severity), r.PairKey, r.Reason)
		for _, rec := range r.Recommendations {
			fmt.Fprintf(tw, "\t\t\t- %s\n", rec)
		}
	}
	tw.Flush()

	if domain.BlocksConfirmation(records) {
		fmt.Fprintln(w, color.New(color.FgRed).Sprint("unresolved critical conflicts block confirmation"))
	}
}
