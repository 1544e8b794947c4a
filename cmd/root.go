// Package cmd contains all CLI commands for megastation and the
// composition root that wires the stores together.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Anbokor/megastation/internal/api"
	"github.com/Anbokor/megastation/internal/cart"
	"github.com/Anbokor/megastation/internal/catalog"
	"github.com/Anbokor/megastation/internal/config"
	"github.com/Anbokor/megastation/internal/guard"
	"github.com/Anbokor/megastation/internal/localstore"
	"github.com/Anbokor/megastation/internal/logger"
	"github.com/Anbokor/megastation/internal/output"
	"github.com/Anbokor/megastation/internal/session"
)

var (
	cfgFile   string
	verbose   bool
	quiet     bool
	colorFlag string
	version   = "dev"

	cfg       *config.Config
	appLogger *slog.Logger
	printer   *output.Printer

	storage      *localstore.Store
	apiClient    *api.Client
	sessions     *session.Store
	cartStore    *cart.Store
	catalogStore *catalog.Store
	routeGuard   *guard.Guard
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "megastation",
	Short: "Megastation storefront client",
	Long: `megastation is a terminal client for the Megastation store.

Browse the catalog, manage a local cart, check out, and with a staff
account review orders, invoices, stock levels, and users.

Example usage:
  megastation catalog                  # Browse products
  megastation cart add 3               # Put product 3 in the cart
  megastation login                    # Authenticate
  megastation checkout                 # Turn the cart into an order
  megastation orders                   # List your orders`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initApp(); err != nil {
			return err
		}
		return guardNavigation(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if cliErr, ok := err.(*output.CLIError); ok {
			if printer == nil {
				printer = output.NewPrinter(false)
			}
			printer.FormatError(cliErr)
			os.Exit(cliErr.ExitCode)
		}
	}
	return err
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .megastation.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "color output: auto, always, never")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initApp loads configuration and wires the stores. The order is fixed and
// load-bearing: local storage first, then the API client, then the session
// store, then Bind. The client works unauthenticated until Bind, so no
// ordering mistake here can turn into a nil dereference at request time.
func initApp() error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	appLogger = logger.New(level, cfg.Logging.Format)

	mode, err := output.ParseColorMode(colorFlag)
	if err != nil {
		return &output.CLIError{
			Summary:  err.Error(),
			ExitCode: output.ExitUsageError,
		}
	}
	printer = output.NewPrinter(output.ResolveColors(mode, cfg.Output.Colors))
	printer.SetQuiet(quiet)

	storage = localstore.New(cfg.Storage.Dir)
	apiClient = api.New(cfg.API.BaseURL, cfg.API.Timeout, appLogger)
	sessions = session.NewStore(apiClient, storage, appLogger)
	sessions.SetNotifier(func(msg string) { printer.Success("%s", msg) })
	apiClient.Bind(sessions, onUnauthorized)

	cartStore = cart.NewStore(storage, appLogger)
	cartStore.SetNotifier(func(msg string) { printer.Success("%s", msg) })

	catalogStore = catalog.NewStore(apiClient, cfg.Catalog.CacheTTL, appLogger)
	routeGuard = guard.New(sessions, appLogger)

	appLogger.Debug("configuration loaded",
		"base_url", cfg.API.BaseURL,
		"state_dir", cfg.Storage.Dir,
	)

	return nil
}

// onUnauthorized reacts to a 401 on an authenticated request: the session
// is torn down and the user is pointed at login before the failed call
// returns to whichever command issued it.
func onUnauthorized() {
	sessions.Logout()
	printer.Warning("your session is no longer valid")
}

// guardNavigation evaluates the route guard for the invoked command.
// Commands without a route table entry (login, logout, version, help) are
// public and proceed unguarded.
func guardNavigation(cmd *cobra.Command) error {
	route, ok := routeForCommand(cmd)
	if !ok {
		return nil
	}

	decision := routeGuard.Resolve(cmd.Context(), route)
	switch decision.Outcome {
	case guard.RedirectLogin:
		if err := storage.Set(localstore.KeyReturnTo, []byte(commandPath(cmd))); err != nil {
			appLogger.Debug("could not record return destination", "error", err)
		}
		return &output.CLIError{
			Summary:    fmt.Sprintf("please log in to access %s", decision.Target),
			Suggestion: "megastation login",
			ExitCode:   output.ExitAuth,
		}

	case guard.RedirectHome:
		printer.Warning("%s", decision.Notice)
		return &output.CLIError{
			Summary:    "access denied",
			Detail:     decision.Notice,
			Suggestion: "megastation catalog",
			ExitCode:   output.ExitDenied,
		}
	}

	return nil
}
