package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
)

func (c *CLI) newProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := c.guard(ctx); err != nil {
				return err
			}
			user, err := c.app.Account.Profile(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Username:  %s\n", user.Username)
			fmt.Fprintf(out, "Role:      %s\n", user.Role)
			allergies := user.Allergies
			if allergies == "" {
				allergies = "none recorded"
			}
			fmt.Fprintf(out, "Allergies: %s\n", allergies)
			return nil
		},
	}
	cmd.AddCommand(c.newAllergiesCommand())
	return cmd
}

func (c *CLI) newAllergiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "allergies [text]",
		Short: "Update your recorded allergies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := c.guard(ctx); err != nil {
				return err
			}
			text := strings.Join(args, " ")
			if err := c.app.Account.UpdateAllergies(ctx, text); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Allergies updated.")
			return nil
		},
	}
}

func (c *CLI) newReviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Rate today's meals",
	}
	cmd.AddCommand(c.newReviewListCommand(), c.newReviewAddCommand())
	return cmd
}

func (c *CLI) newReviewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show your past reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := c.guard(ctx); err != nil {
				return err
			}
			reviews, err := c.app.Account.Reviews(ctx)
			if err != nil {
				return err
			}
			if len(reviews) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reviews yet.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tMEAL\tRATING\tCOMMENT")
			for _, r := range reviews {
				fmt.Fprintf(w, "%s\t%s\t%d/5\t%s\n", r.Date, r.MealType, r.Rating, r.Comment)
			}
			return w.Flush()
		},
	}
}

func (c *CLI) newReviewAddCommand() *cobra.Command {
	var mealFlag, comment string
	var rating int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Review today's breakfast or lunch",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := c.guard(ctx, domain.RoleStudent); err != nil {
				return err
			}
			meal := domain.MealType(mealFlag)
			if meal != domain.MealBreakfast && meal != domain.MealLunch {
				return fmt.Errorf("unknown meal %q (breakfast or lunch)", mealFlag)
			}
			if err := c.app.Account.SendReview(ctx, meal, rating, comment); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Review sent.")
			return nil
		},
	}
	cmd.Flags().StringVar(&mealFlag, "meal", string(domain.MealLunch), "reviewed meal (breakfast or lunch)")
	cmd.Flags().IntVar(&rating, "rating", 0, "rating from 1 to 5")
	cmd.Flags().StringVar(&comment, "comment", "", "review text")
	cmd.MarkFlagRequired("rating")
	cmd.MarkFlagRequired("comment")
	return cmd
}
