package cmd

import (
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Long:  `Discard the stored access token and forget the current user.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions.Logout()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
