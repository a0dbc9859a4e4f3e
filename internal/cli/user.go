package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/internal/service/user"
)

// UserCmd manages the principal registry.
func UserCmd(env *cmdEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage registered principals",
	}
	cmd.AddCommand(userAddCmd(env), userListCmd(env))
	return cmd
}

func userAddCmd(env *cmdEnv) *cobra.Command {
	var input user.RegisterInput
	var role string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a principal",
		Long: `Register a principal so case history can name the actor.

Examples:
  casectl user add --name "Dana Reyes" --email dana@example.com --role manager`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b, _, err := env.backend(ctx, cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			input.Role = domain.Role(role)
			p, err := b.Users.Register(ctx, input)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s <%s> %s\n",
				color.New(color.FgGreen).Sprint("registered"), p.Name, p.Email, p.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "display name")
	cmd.Flags().StringVar(&input.Email, "email", "", "email address")
	cmd.Flags().StringVar(&role, "role", "staff", "role: admin, manager or staff")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func userListCmd(env *cmdEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered principals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b, _, err := env.backend(ctx, cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			list, err := b.Users.List(ctx)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-36s  %-8s  %s\n", "ID", "ROLE", "EMAIL")
			for _, p := range list {
				fmt.Fprintf(w, "%-36s  %-8s  %s\n", p.ID, p.Role, p.Email)
			}
			return nil
		},
	}
}
