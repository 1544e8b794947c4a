package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Anbokor/megastation/internal/output"
)

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return &output.CLIError{
				Summary:  "product id must be a number",
				ExitCode: output.ExitUsageError,
			}
		}

		product, err := apiClient.ProductByID(cmd.Context(), id)
		if err != nil {
			return catalogError(err)
		}

		printer.Header(product.Name)
		printer.Print("  ID:       %d", product.ID)
		printer.Print("  Category: %s", product.Category)
		printer.Print("  Price:    %s", printer.Bold(product.Price.String()))
		printer.Print("  Stock:    %d", product.Stock)
		if product.Barcode != "" {
			printer.Print("  Barcode:  %s", product.Barcode)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(productCmd)
}
