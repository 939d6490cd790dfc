package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
)

func (c *CLI) newMenuCommand() *cobra.Command {
	var weekOffset int

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Show the weekly menu with your meal status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			role, err := c.guard(ctx)
			if err != nil {
				return err
			}

			reference := c.app.Clock.Now().AddDate(0, 0, 7*weekOffset)
			week, err := c.app.Menu.LoadWeek(ctx, reference)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DAY\tMEAL\tITEMS\tPRICE\tLEFT\tSTATUS")
			for i, day := range week.Days {
				marker := " "
				if i == week.Selected {
					marker = "*"
				}
				if day.Empty() {
					fmt.Fprintf(w, "%s %s\t-\tmenu not published\t\t\t\n", marker, day.ISO())
					continue
				}
				for _, meal := range []domain.MealType{domain.MealBreakfast, domain.MealLunch} {
					offer := day.Offer(meal)
					if offer == nil {
						continue
					}
					label := ""
					if role == domain.RoleStudent {
						status, err := c.app.Entitlements.Evaluate(ctx, day.ISO(), meal, offer.AvailableQuantity)
						if err != nil {
							return err
						}
						label = status.Label(meal)
					}
					fmt.Fprintf(w, "%s %s\t%s\t%s\t%.2f\t%d\t%s\n",
						marker, day.ISO(), meal, offer.Items, offer.Price, offer.AvailableQuantity, label)
				}
				if role == domain.RoleStudent && day.Breakfast != nil && day.Lunch != nil {
					status, err := c.app.Entitlements.EvaluateSet(ctx, day)
					if err != nil {
						return err
					}
					total := day.Breakfast.Price + day.Lunch.Price
					fmt.Fprintf(w, "%s %s\tset\tbreakfast + lunch\t%.2f\t\t%s\n",
						marker, day.ISO(), total, status.Label(domain.MealCombined))
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&weekOffset, "week", 0, "week offset from the current week (e.g. 1 for next week)")
	return cmd
}
