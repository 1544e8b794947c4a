package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Anbokor/megastation/internal/domain"
	"github.com/Anbokor/megastation/internal/output"
)

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Show stock levels (staff only)",
	RunE:  runStock,
}

var stockLowCmd = &cobra.Command{
	Use:   "low",
	Short: "Show only products at or under their low stock threshold",
	RunE:  runStockLow,
}

func init() {
	rootCmd.AddCommand(stockCmd)
	stockCmd.AddCommand(stockLowCmd)
}

func runStock(cmd *cobra.Command, args []string) error {
	levels, err := apiClient.Stock(cmd.Context())
	if err != nil {
		return err
	}
	renderStock(cmd, levels)
	return nil
}

func runStockLow(cmd *cobra.Command, args []string) error {
	levels, err := apiClient.LowStock(cmd.Context())
	if err != nil {
		return err
	}
	if len(levels) == 0 {
		printer.Success("no products below their low stock threshold")
		return nil
	}
	renderStock(cmd, levels)
	return nil
}

func renderStock(cmd *cobra.Command, levels []domain.StockLevel) {
	if len(levels) == 0 {
		printer.Info("no stock records")
		return
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(),
		[]string{"Product", "Category", "Qty", "Threshold", ""})
	for _, lvl := range levels {
		flag := ""
		if lvl.IsLowStock {
			flag = "LOW"
		}
		table.AddRow([]string{
			lvl.ProductName,
			lvl.CategoryName,
			strconv.Itoa(lvl.Quantity),
			strconv.Itoa(lvl.LowStockThreshold),
			flag,
		})
	}
	table.Render()
}
