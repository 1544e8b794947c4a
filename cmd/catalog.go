package cmd

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Anbokor/megastation/internal/api"
	"github.com/Anbokor/megastation/internal/domain"
	"github.com/Anbokor/megastation/internal/output"
)

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"products"},
	Short:   "Browse the product catalog",
	Long: `List products from the store. Results are cached briefly so repeated
listings do not hammer the server.

Examples:
  megastation catalog
  megastation catalog --search teclado
  megastation catalog --category Periféricos
  megastation catalog --json`,
	RunE: runCatalog,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List product categories",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(categoriesCmd)

	catalogCmd.Flags().StringP("search", "s", "", "filter by name or barcode")
	catalogCmd.Flags().StringP("category", "c", "", "filter by category name")
	catalogCmd.Flags().Bool("json", false, "print raw JSON")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	search, _ := cmd.Flags().GetString("search")
	category, _ := cmd.Flags().GetString("category")
	asJSON, _ := cmd.Flags().GetBool("json")

	var products []domain.Product

	// Explicit filters bypass the cache and push the query to the server.
	if search != "" || category != "" {
		var err error
		products, err = apiClient.Products(cmd.Context(), api.ProductFilter{
			Search:   search,
			Category: category,
		})
		if err != nil {
			return catalogError(err)
		}
	} else {
		snap, err := catalogStore.Load(cmd.Context())
		if err != nil {
			if len(snap.Products) == 0 {
				return catalogError(err)
			}
			printer.Warning("showing cached catalog from %s: %v",
				snap.FetchedAt.Local().Format("15:04:05"), err)
		}
		products = snap.Products
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(products)
	}

	if len(products) == 0 {
		printer.Info("no products found")
		return nil
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(),
		[]string{"ID", "Name", "Category", "Price", "Stock"})
	for _, p := range products {
		table.AddRow([]string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Category,
			p.Price.String(),
			strconv.Itoa(p.Stock),
		})
	}
	table.Render()

	printer.PrintHints("catalog")
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	snap, err := catalogStore.Load(cmd.Context())
	if err != nil && len(snap.Categories) == 0 {
		return catalogError(err)
	}

	if len(snap.Categories) == 0 {
		printer.Info("no categories found")
		return nil
	}

	names := make([]string, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		names = append(names, c.Name)
	}
	printer.Header("Categories")
	printer.Print("  %s", strings.Join(names, ", "))
	return nil
}

func catalogError(err error) error {
	if api.IsKind(err, api.KindNetwork) {
		return &output.CLIError{
			Summary:    "could not load the catalog",
			Detail:     err.Error(),
			Suggestion: "check api.base_url in your configuration",
			ExitCode:   output.ExitNetwork,
		}
	}
	return &output.CLIError{
		Summary:  "could not load the catalog",
		Detail:   err.Error(),
		ExitCode: output.ExitGeneral,
	}
}
