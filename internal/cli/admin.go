package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
)

func (c *CLI) newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administration screens",
	}
	cmd.AddCommand(c.newAdminOverviewCommand(), c.newAdminApproveCommand(), c.newAdminReportCommand())
	return cmd
}

func (c *CLI) newAdminOverviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show today's stats, pending requests and the weekly reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := c.guard(ctx, domain.RoleAdmin); err != nil {
				return err
			}
			overview, err := c.app.Admin.Overview(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Payments today:        %d\n", overview.Stats.TodayPayments)
			fmt.Fprintf(out, "Active subscriptions:  %d\n", overview.Stats.ActiveSubscriptions)
			fmt.Fprintf(out, "Unique students today: %d\n", overview.Stats.UniqueStudentsToday)
			fmt.Fprintf(out, "Meals issued today:    %d\n\n", overview.Stats.MealsIssuedToday)

			fmt.Fprintln(out, "Purchase requests:")
			if len(overview.PurchaseRequests) == 0 {
				fmt.Fprintln(out, "  none")
			} else {
				w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
				fmt.Fprintln(w, "  ID\tPRODUCT\tQTY\tBY\tSTATUS")
				for _, r := range overview.PurchaseRequests {
					fmt.Fprintf(w, "  %d\t%s\t%d %s\t%s\t%s\n",
						r.ID, r.ProductName, r.Quantity, r.Unit, r.CreatedByUsername, r.Status)
				}
				w.Flush()
			}

			fmt.Fprintln(out, "\nLast week:")
			w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "  DATE\tBREAKFAST\tLUNCH\tSUBS USED\tONE-TIME\tISSUED")
			for _, r := range overview.Reports {
				fmt.Fprintf(w, "  %s\t%d\t%d\t%d\t%d\t%d\n",
					r.Date, r.BreakfastCount, r.LunchCount, r.SubscriptionsUsed, r.OneTimePayments, r.MealsIssued)
			}
			return w.Flush()
		},
	}
}

func (c *CLI) newAdminApproveCommand() *cobra.Command {
	var reject bool

	cmd := &cobra.Command{
		Use:   "approve <request-id>",
		Short: "Approve or reject a purchase request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := c.guard(ctx, domain.RoleAdmin); err != nil {
				return err
			}
			requestID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid request id %q", args[0])
			}

			overview, err := c.app.Admin.Overview(ctx)
			if err != nil {
				return err
			}
			if err := c.app.Admin.Approve(ctx, overview, requestID, !reject); err != nil {
				return err
			}
			verdict := "approved"
			if reject {
				verdict = "rejected"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Request %d %s.\n", requestID, verdict)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reject, "reject", false, "reject instead of approve")
	return cmd
}

func (c *CLI) newAdminReportCommand() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the meal report for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := c.guard(ctx, domain.RoleAdmin); err != nil {
				return err
			}
			day, err := c.resolveDay(dateFlag)
			if err != nil {
				return err
			}
			report, err := c.app.Admin.Report(ctx, day.Format(domain.ISODate))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Report for %s\n", report.Date)
			fmt.Fprintf(out, "  Breakfasts paid:    %d\n", report.BreakfastCount)
			fmt.Fprintf(out, "  Lunches paid:       %d\n", report.LunchCount)
			fmt.Fprintf(out, "  Subscriptions used: %d\n", report.SubscriptionsUsed)
			fmt.Fprintf(out, "  One-time payments:  %d\n", report.OneTimePayments)
			fmt.Fprintf(out, "  Meals issued:       %d\n", report.MealsIssued)
			return nil
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "report date as YYYY-MM-DD (default today)")
	return cmd
}
