package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Anbokor/megastation/internal/output"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List store accounts (admin only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := apiClient.Users(cmd.Context())
		if err != nil {
			return err
		}
		if len(users) == 0 {
			printer.Info("no users")
			return nil
		}

		table := output.NewTableWithWriter(cmd.OutOrStdout(),
			[]string{"ID", "Username", "Email", "Role"})
		for _, u := range users {
			table.AddRow([]string{
				strconv.Itoa(u.ID),
				u.Username,
				u.Email,
				string(u.Role),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
}
