package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Anbokor/megastation/internal/api"
	"github.com/Anbokor/megastation/internal/output"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Turn the cart into an order",
	Long: `Push the local cart to the store and create an order from it. The
local cart is emptied once the order is confirmed.`,
	RunE: runCheckout,
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	items := cartStore.Items()
	if len(items) == 0 {
		return &output.CLIError{
			Summary:    "the cart is empty",
			Suggestion: "megastation cart add <product-id>",
			ExitCode:   output.ExitUsageError,
		}
	}

	// The server keeps its own cart per user; push each line before asking
	// it to build the order. Quantities merge server side, so a retry after
	// a partial push does not lose items.
	for _, item := range items {
		if err := apiClient.PushCartItem(cmd.Context(), item.ProductID, item.Quantity); err != nil {
			return checkoutError(err)
		}
	}

	order, err := apiClient.CreateOrder(cmd.Context())
	if err != nil {
		return checkoutError(err)
	}

	if err := cartStore.Clear(); err != nil {
		appLogger.Warn("could not clear cart after checkout", "error", err)
	}

	printer.Success("order #%d created, total %s", order.ID, order.TotalPrice.String())
	printer.PrintHints("checkout")
	return nil
}

func checkoutError(err error) error {
	switch {
	case api.IsKind(err, api.KindValidation):
		return &output.CLIError{
			Summary:    "the store rejected the order",
			Detail:     err.Error(),
			Suggestion: "a product may be out of stock, check megastation catalog",
			ExitCode:   output.ExitGeneral,
		}
	case api.IsKind(err, api.KindNetwork):
		return &output.CLIError{
			Summary:  "could not reach the store",
			Detail:   err.Error(),
			ExitCode: output.ExitNetwork,
		}
	default:
		return &output.CLIError{
			Summary:  "checkout failed",
			Detail:   err.Error(),
			ExitCode: output.ExitGeneral,
		}
	}
}
