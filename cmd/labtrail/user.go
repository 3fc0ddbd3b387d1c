// User commands: add, list.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	userAddRole     string
	userAddInactive bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage operator identities",
}

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Create an operator identity",
	Long: `Add creates a user for audit and custody attribution. Usernames are
unique; the role defaults to analyst.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		created, err := svc.CreateUser(cmd.Context(), flagActor, args[0], userAddRole, !userAddInactive)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(created)
		}
		fmt.Printf("Created user %s (%s)\n", created.Username, created.Role)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		users, err := svc.ListUsers(cmd.Context())
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(users)
		}
		for _, u := range users {
			state := "active"
			if !u.Active {
				state = "inactive"
			}
			fmt.Printf("%-6d  %-16s  %-8s  %s\n", u.ID, u.Username, u.Role, state)
		}
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVar(&userAddRole, "role", "", "user role (admin, analyst, guest; default analyst)")
	userAddCmd.Flags().BoolVar(&userAddInactive, "inactive", false, "create the user deactivated")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
}
