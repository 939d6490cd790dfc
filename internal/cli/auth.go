package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/services"
)

func (c *CLI) newLoginCommand() *cobra.Command {
	var username, password, roleFlag string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			role := domain.Role(roleFlag)
			switch role {
			case domain.RoleStudent, domain.RoleCook, domain.RoleAdmin:
			default:
				return fmt.Errorf("unknown role %q (student, cook or admin)", roleFlag)
			}

			reader := bufio.NewReader(cmd.InOrStdin())
			if username == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Username: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				username = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimSpace(line)
			}

			user, err := c.app.Account.Login(cmd.Context(), username, password, role)
			if err != nil {
				if errors.Is(err, services.ErrRoleMismatch) {
					return fmt.Errorf("account %q does not hold the %s role", username, role)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s). Your screen: %s\n",
				user.Username, user.Role, screenName(domain.DefaultRoute(user.Role)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&roleFlag, "role", string(domain.RoleStudent), "sign in as role (student, cook, admin)")
	return cmd
}

func (c *CLI) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Account.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func (c *CLI) newRegisterCommand() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a student account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return errors.New("both --username and --password are required")
			}
			if err := c.app.Account.Register(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), `Account created. Sign in with "cafeteria login".`)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "desired username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "desired password")
	return cmd
}
