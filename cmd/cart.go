package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Anbokor/megastation/internal/domain"
	"github.com/Anbokor/megastation/internal/output"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the local cart",
	Long: `The cart lives on this machine until checkout. Items survive across
commands and across sessions; checkout sends them to the store.

Examples:
  megastation cart
  megastation cart add 42
  megastation cart add 42 -q 3
  megastation cart remove 42
  megastation cart clear`,
	RunE: runCartShow,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartAdd,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a product from the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartIncreaseCmd = &cobra.Command{
	Use:   "increase <product-id>",
	Short: "Add one more of a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartIncrease,
}

var cartDecreaseCmd = &cobra.Command{
	Use:   "decrease <product-id>",
	Short: "Take one of a product out, removing it at zero",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartDecrease,
}

var cartRemoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Show the server-side cart",
	Long: `Show the cart the server holds for your account. It only fills up
during checkout; a non-empty remote cart usually means a checkout was
interrupted before the order was created.`,
	RunE: runCartRemote,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cartStore.Clear(); err != nil {
			return err
		}
		printer.Success("cart cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartIncreaseCmd)
	cartCmd.AddCommand(cartDecreaseCmd)
	cartCmd.AddCommand(cartRemoteCmd)
	cartCmd.AddCommand(cartClearCmd)

	cartAddCmd.Flags().IntP("quantity", "q", 1, "how many to add")
}

func parseProductID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, &output.CLIError{
			Summary:  "product id must be a positive number",
			ExitCode: output.ExitUsageError,
		}
	}
	return id, nil
}

func runCartShow(cmd *cobra.Command, args []string) error {
	items := cartStore.Items()
	if len(items) == 0 {
		printer.Info("the cart is empty")
		printer.PrintHints("cart")
		return nil
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(),
		[]string{"ID", "Name", "Price", "Qty", "Subtotal"})
	for _, item := range items {
		subtotal := item.Price * domain.Money(item.Quantity)
		table.AddRow([]string{
			strconv.Itoa(item.ProductID),
			item.Name,
			item.Price.String(),
			strconv.Itoa(item.Quantity),
			subtotal.String(),
		})
	}
	table.Render()

	printer.Print("")
	printer.Print("  %d item(s), total %s",
		cartStore.TotalItems(), printer.Bold(cartStore.TotalPrice().String()))
	printer.PrintHints("cart")
	return nil
}

func runCartRemote(cmd *cobra.Command, args []string) error {
	items, err := apiClient.RemoteCart(cmd.Context())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		printer.Info("the server-side cart is empty")
		return nil
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(),
		[]string{"Product", "Qty", "Price"})
	for _, item := range items {
		table.AddRow([]string{
			strconv.Itoa(item.Product),
			strconv.Itoa(item.Quantity),
			item.Price.String(),
		})
	}
	table.Render()
	return nil
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	id, err := parseProductID(args[0])
	if err != nil {
		return err
	}
	quantity, _ := cmd.Flags().GetInt("quantity")
	if quantity < 1 {
		return &output.CLIError{
			Summary:  "quantity must be at least 1",
			ExitCode: output.ExitUsageError,
		}
	}

	product, err := apiClient.ProductByID(cmd.Context(), id)
	if err != nil {
		return catalogError(err)
	}

	for i := 0; i < quantity; i++ {
		if err := cartStore.Add(*product); err != nil {
			return err
		}
	}
	return nil
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	id, err := parseProductID(args[0])
	if err != nil {
		return err
	}
	return cartStore.Remove(id)
}

func runCartIncrease(cmd *cobra.Command, args []string) error {
	id, err := parseProductID(args[0])
	if err != nil {
		return err
	}
	return cartStore.IncreaseQuantity(id)
}

func runCartDecrease(cmd *cobra.Command, args []string) error {
	id, err := parseProductID(args[0])
	if err != nil {
		return err
	}
	return cartStore.DecreaseQuantity(id)
}
