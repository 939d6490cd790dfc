package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/services"
)

type cardFlags struct {
	number string
	expiry string
	cvc    string
}

func (f *cardFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.number, "card", "", "card number (16 digits, separators allowed)")
	cmd.Flags().StringVar(&f.expiry, "expiry", "", "card expiry as MM/YY")
	cmd.Flags().StringVar(&f.cvc, "cvc", "", "card CVC (3 digits)")
	cmd.MarkFlagRequired("card")
	cmd.MarkFlagRequired("expiry")
	cmd.MarkFlagRequired("cvc")
}

func (f *cardFlags) details() services.CardDetails {
	return services.CardDetails{Number: f.number, Expiry: f.expiry, CVC: f.cvc}
}

func (c *CLI) newPayCommand() *cobra.Command {
	var card cardFlags
	var dateFlag, mealFlag string

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Pay for a meal or the day's set",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := c.guard(ctx, domain.RoleStudent); err != nil {
				return err
			}

			day, err := c.resolveDay(dateFlag)
			if err != nil {
				return err
			}

			week, err := c.app.Menu.LoadWeek(ctx, day)
			if err != nil {
				return err
			}
			var menu *domain.DayMenu
			iso := day.Format(domain.ISODate)
			for i := range week.Days {
				if week.Days[i].ISO() == iso {
					menu = &week.Days[i]
					break
				}
			}
			if menu == nil || menu.Empty() {
				return fmt.Errorf("no menu published for %s", iso)
			}

			meals, err := resolveMeals(mealFlag, menu)
			if err != nil {
				return err
			}

			for _, meal := range meals {
				offer := menu.Offer(meal)
				status, err := c.app.Entitlements.Evaluate(ctx, iso, meal, offer.AvailableQuantity)
				if err != nil {
					return err
				}
				if !status.Actionable() {
					return fmt.Errorf("%s on %s is %s, nothing to pay", meal, iso, status)
				}
			}

			var total float64
			for _, meal := range meals {
				result, err := c.app.Payments.Pay(ctx, card.details(), day, meal, menu.Price(meal))
				if err != nil {
					if total > 0 {
						return fmt.Errorf("paid %.2f for %s but %s failed: %w", total, meals[0], meal, err)
					}
					return err
				}
				total += result.Amount
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Paid %.2f for %s on %s.\n", total, mealFlag, iso)
			c.holdSuccess()
			return nil
		},
	}
	card.register(cmd)
	cmd.Flags().StringVar(&dateFlag, "date", "", "meal date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&mealFlag, "meal", string(domain.MealLunch), "meal to pay (breakfast, lunch, set)")
	return cmd
}

func (c *CLI) newSubscribeCommand() *cobra.Command {
	var card cardFlags
	var startFlag string

	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: fmt.Sprintf("Buy a %d-day subscription", domain.SubscriptionDays),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := c.guard(ctx, domain.RoleStudent); err != nil {
				return err
			}

			start, err := c.resolveDay(startFlag)
			if err != nil {
				return err
			}

			result, err := c.app.Payments.Pay(ctx, card.details(), start, domain.MealLunch, domain.SubscriptionPrice)
			if err != nil {
				return err
			}
			end := start.AddDate(0, 0, domain.SubscriptionDays)
			fmt.Fprintf(cmd.OutOrStdout(), "Subscription active %s through %s (%.2f).\n",
				start.Format(domain.ISODate), end.Format(domain.ISODate), result.Amount)
			c.holdSuccess()
			return nil
		},
	}
	card.register(cmd)
	cmd.Flags().StringVar(&startFlag, "start", "", "subscription start date as YYYY-MM-DD (default today)")
	return cmd
}

// holdSuccess keeps the payment confirmation on screen for the fixed
// display window before handing the terminal back.
func (c *CLI) holdSuccess() {
	if c.app.Sleep != nil {
		c.app.Sleep(services.SuccessDisplayWindow)
	}
}

func (c *CLI) resolveDay(flag string) (time.Time, error) {
	if flag == "" {
		return c.app.Clock.Now(), nil
	}
	day, err := time.ParseInLocation(domain.ISODate, flag, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", flag)
	}
	return day, nil
}

// resolveMeals expands the --meal flag: "set" pays both meals of the day,
// breakfast first.
func resolveMeals(flag string, menu *domain.DayMenu) ([]domain.MealType, error) {
	switch flag {
	case "set", string(domain.MealCombined):
		if menu.Breakfast == nil || menu.Lunch == nil {
			return nil, fmt.Errorf("set meal needs both breakfast and lunch published on %s", menu.ISO())
		}
		return []domain.MealType{domain.MealBreakfast, domain.MealLunch}, nil
	case string(domain.MealBreakfast), string(domain.MealLunch):
		meal := domain.MealType(flag)
		if menu.Offer(meal) == nil {
			return nil, fmt.Errorf("no %s published on %s", meal, menu.ISO())
		}
		return []domain.MealType{meal}, nil
	}
	return nil, fmt.Errorf("unknown meal %q (breakfast, lunch or set)", flag)
}
