package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
)

func (c *CLI) newCookCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cook",
		Short: "Serving-line screens",
	}
	cmd.AddCommand(c.newCookDashboardCommand(), c.newCookIssueCommand(), c.newCookRequestCommand())
	return cmd
}

func (c *CLI) newCookDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's paid students and open purchase requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := c.guard(ctx, domain.RoleCook); err != nil {
				return err
			}
			dashboard, err := c.app.Cook.Dashboard(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Serving %s\n\n", dashboard.Date)

			printStudents(out, "Breakfast", dashboard.PaidBreakfast)
			printStudents(out, "Lunch", dashboard.PaidLunch)

			fmt.Fprintln(out, "Purchase requests:")
			if len(dashboard.PurchaseRequests) == 0 {
				fmt.Fprintln(out, "  none")
				return nil
			}
			w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "  ID\tPRODUCT\tQTY\tSTATUS")
			for _, r := range dashboard.PurchaseRequests {
				fmt.Fprintf(w, "  %d\t%s\t%d %s\t%s\n", r.ID, r.ProductName, r.Quantity, r.Unit, r.Status)
			}
			return w.Flush()
		},
	}
}

func printStudents(out io.Writer, title string, students []domain.PaidStudent) {
	fmt.Fprintf(out, "%s (%d paid):\n", title, len(students))
	if len(students) == 0 {
		fmt.Fprintln(out, "  none")
	}
	for _, s := range students {
		fmt.Fprintf(out, "  [%d] %s\n", s.ID, s.DisplayName())
	}
	fmt.Fprintln(out)
}

func (c *CLI) newCookIssueCommand() *cobra.Command {
	var studentID int
	var mealFlag string

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Hand a paid meal to a student",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := c.guard(ctx, domain.RoleCook); err != nil {
				return err
			}
			meal := domain.MealType(mealFlag)
			if meal != domain.MealBreakfast && meal != domain.MealLunch {
				return fmt.Errorf("unknown meal %q (breakfast or lunch)", mealFlag)
			}

			dashboard, err := c.app.Cook.Dashboard(ctx)
			if err != nil {
				return err
			}
			if err := c.app.Cook.IssueMeal(ctx, dashboard, studentID, meal); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Issued %s to student %d.\n", meal, studentID)
			return nil
		},
	}
	cmd.Flags().IntVar(&studentID, "student", 0, "student id from the dashboard list")
	cmd.Flags().StringVar(&mealFlag, "meal", string(domain.MealLunch), "meal to issue (breakfast or lunch)")
	cmd.MarkFlagRequired("student")
	return cmd
}

func (c *CLI) newCookRequestCommand() *cobra.Command {
	var product, unit string
	var quantity int

	cmd := &cobra.Command{
		Use:   "request",
		Short: "File a purchase request",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := c.guard(ctx, domain.RoleCook); err != nil {
				return err
			}
			requests, err := c.app.Cook.CreateRequest(ctx, product, quantity, unit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Request filed. %d request(s) on record.\n", len(requests))
			return nil
		},
	}
	cmd.Flags().StringVar(&product, "product", "", "product name")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "amount to order")
	cmd.Flags().StringVar(&unit, "unit", "kg", "unit of measure")
	cmd.MarkFlagRequired("product")
	cmd.MarkFlagRequired("quantity")
	return cmd
}
