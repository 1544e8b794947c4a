package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"me"},
	Short:   "Show the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sessions.FetchUser(cmd.Context()); err != nil {
			return err
		}
		profile := sessions.Current()

		printer.Header("Session")
		printer.Print("  Username: %s", printer.Bold(profile.Username))
		if profile.Email != "" {
			printer.Print("  Email:    %s", profile.Email)
		}
		printer.Print("  Role:     %s", profile.Role)
		if exp, ok := sessions.TokenExpiry(); ok {
			printer.Print("  Expires:  %s", exp.Local().Format(time.RFC1123))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
