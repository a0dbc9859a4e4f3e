package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/internal/service/compliance"
)

// OverdueCmd prints pending compliance items past their due date on open cases.
func OverdueCmd(env *cmdEnv) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "Report overdue compliance items",
		Long: `Report pending compliance items whose due date has passed, across
every case that is not closed. Oldest due date first.

Examples:
  casectl overdue
  casectl overdue --limit 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b, _, err := env.backend(ctx, cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			items, err := b.Compliance.ListOverdue(ctx, limit)
			if err != nil {
				return err
			}
			printOverdue(cmd.OutOrStdout(), items, time.Now())
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", compliance.DefaultOverdueLimit, "maximum rows")
	return cmd
}

func printOverdue(w io.Writer, items []domain.OverdueItem, now time.Time) {
	if len(items) == 0 {
		fmt.Fprintln(w, color.New(color.FgGreen).Sprint("No overdue compliance items."))
		return
	}

	red := color.New(color.FgRed)
	bold := color.New(color.Bold)
	fmt.Fprintf(w, "%-10s  %-6s  %-9s  %-20s  %-12s  %s\n", "DUE", "LATE", "MANDATORY", "CASE TYPE", "JURISDICTION", "TITLE")
	for _, it := range items {
		var due string
		late := "-"
		if it.Item.DueAt != nil {
			due = it.Item.DueAt.Format(time.DateOnly)
			late = fmt.Sprintf("%dd", int(now.Sub(*it.Item.DueAt).Hours()/24))
		}
		mandatory := "no"
		if it.Item.Mandatory {
			mandatory = bold.Sprint("yes")
		}
		fmt.Fprintf(w, "%-10s  %-6s  %-9s  %-20s  %-12s  %s\n",
			due, red.Sprint(late), mandatory, it.CaseType, it.Jurisdiction, it.Item.Title)
	}
	fmt.Fprintf(w, "\n%d overdue item(s)\n", len(items))
}
