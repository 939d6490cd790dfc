package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
)

// CLI owns the command tree and the lazily built App shared by all commands.
type CLI struct {
	factory Factory
	app     *App
}

// Execute runs the root command and exits non-zero on failure.
func Execute(factory Factory, version string) {
	if err := NewRootCommand(factory, version).Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCommand(factory Factory, version string) *cobra.Command {
	c := &CLI{factory: factory}
	var verbose bool

	root := &cobra.Command{
		Use:           "cafeteria",
		Short:         "School cafeteria client",
		Long:          "Terminal client for the school cafeteria: weekly menu, meal payments, subscriptions, and the cook and admin screens.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.factory(verbose)
			if err != nil {
				return err
			}
			c.app = app
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.newLoginCommand(),
		c.newLogoutCommand(),
		c.newRegisterCommand(),
		c.newMenuCommand(),
		c.newPayCommand(),
		c.newSubscribeCommand(),
		c.newProfileCommand(),
		c.newReviewCommand(),
		c.newCookCommand(),
		c.newAdminCommand(),
	)
	return root
}

// guard runs the route guard for a command and translates a redirect
// decision into an error message naming where the caller belongs.
func (c *CLI) guard(ctx context.Context, allowedRoles ...domain.Role) (domain.Role, error) {
	decision := c.app.Guard.Authorize(ctx, allowedRoles...)
	if decision.Admit {
		return decision.Role, nil
	}
	switch decision.Redirect {
	case domain.RouteLogin:
		return "", errors.New(`not signed in, run "cafeteria login" first`)
	default:
		return "", fmt.Errorf("this screen is not available to role %q, your screen is %s", decision.Role, screenName(decision.Redirect))
	}
}

func screenName(route string) string {
	switch route {
	case domain.RouteAdmin:
		return `"cafeteria admin"`
	case domain.RouteCook:
		return `"cafeteria cook"`
	case domain.RouteHome:
		return `"cafeteria menu"`
	}
	return route
}
