package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Anbokor/megastation/internal/api"
	"github.com/Anbokor/megastation/internal/domain"
	"github.com/Anbokor/megastation/internal/localstore"
	"github.com/Anbokor/megastation/internal/output"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the store",
	Long: `Log in with a username and password. The access token is kept in the
local state directory and attached to subsequent requests until it expires
or you log out.

Examples:
  megastation login                     # Prompt for credentials
  megastation login -u maria            # Prompt for password only`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringP("username", "u", "", "username")
	loginCmd.Flags().String("password", "", "password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	var err error
	if username == "" {
		username, err = promptLine(cmd, "Username: ")
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

	creds := domain.Credentials{Username: username, Password: password}
	if err := sessions.Login(cmd.Context(), creds); err != nil {
		return loginError(err)
	}

	// Surface the destination the visitor was redirected away from, if any.
	if raw, ok := storage.Get(localstore.KeyReturnTo); ok {
		_ = storage.Delete(localstore.KeyReturnTo)
		target := strings.TrimSpace(string(raw))
		if target != "" {
			printer.Info("continue with: megastation %s", target)
		}
	}

	printer.PrintHints("login")
	return nil
}

// loginError converts a session login failure into a structured CLI error.
func loginError(err error) error {
	switch {
	case api.IsKind(err, api.KindNetwork):
		return &output.CLIError{
			Summary:    "could not reach the store",
			Detail:     err.Error(),
			Suggestion: "check api.base_url in your configuration",
			ExitCode:   output.ExitNetwork,
		}
	case api.IsKind(err, api.KindRateLimited):
		return &output.CLIError{
			Summary:  "too many login attempts, try again later",
			ExitCode: output.ExitAuth,
		}
	default:
		return &output.CLIError{
			Summary:  err.Error(),
			ExitCode: output.ExitAuth,
		}
	}
}

// promptLine reads one line from the command's input.
func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read otherwise (pipes, tests).
func promptPassword(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.OutOrStdout(), prompt)
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}
	return promptLine(cmd, prompt)
}
