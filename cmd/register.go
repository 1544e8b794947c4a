package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Anbokor/megastation/internal/api"
	"github.com/Anbokor/megastation/internal/domain"
	"github.com/Anbokor/megastation/internal/output"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a store account",
	Long: `Create a new account and log in with it in one step.

Examples:
  megastation register -u maria -e maria@example.com`,
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().StringP("username", "u", "", "username")
	registerCmd.Flags().StringP("email", "e", "", "email address")
	registerCmd.Flags().String("password", "", "password (prompted when omitted)")
}

func runRegister(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	var err error
	if username == "" {
		username, err = promptLine(cmd, "Username: ")
		if err != nil {
			return err
		}
	}
	if email == "" {
		email, err = promptLine(cmd, "Email: ")
		if err != nil {
			return err
		}
	}
	if password == "" {
		password, err = promptPassword(cmd, "Password: ")
		if err != nil {
			return err
		}
	}

	reg := domain.Registration{Username: username, Email: email, Password: password}
	if _, err := sessions.Register(cmd.Context(), reg); err != nil {
		return registerError(err)
	}

	printer.PrintHints("register")
	return nil
}

func registerError(err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return &output.CLIError{
			Summary:  verr.Error(),
			ExitCode: output.ExitUsageError,
		}
	}
	if api.IsKind(err, api.KindValidation) {
		return &output.CLIError{
			Summary:    "registration rejected",
			Detail:     err.Error(),
			Suggestion: "pick a different username or fix the listed fields",
			ExitCode:   output.ExitUsageError,
		}
	}
	if api.IsKind(err, api.KindNetwork) {
		return &output.CLIError{
			Summary:  "could not reach the store",
			Detail:   err.Error(),
			ExitCode: output.ExitNetwork,
		}
	}
	return &output.CLIError{
		Summary:  err.Error(),
		ExitCode: output.ExitGeneral,
	}
}
