package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Anbokor/megastation/internal/domain"
	"github.com/Anbokor/megastation/internal/output"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "List supplier invoices (staff only)",
	RunE:  runInvoices,
}

var invoicesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one invoice with its lines",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesShow,
}

var invoicesStatusCmd = &cobra.Command{
	Use:   "status <id> <pendiente|procesada|anulada>",
	Short: "Change an invoice's status",
	Long: `Move an invoice through its lifecycle. Processing an invoice adds its
items to stock; annulling a processed invoice takes them back out.`,
	Args: cobra.ExactArgs(2),
	RunE: runInvoicesStatus,
}

func init() {
	rootCmd.AddCommand(invoicesCmd)
	invoicesCmd.AddCommand(invoicesShowCmd)
	invoicesCmd.AddCommand(invoicesStatusCmd)
}

func parseInvoiceID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, &output.CLIError{
			Summary:  "invoice id must be a positive number",
			ExitCode: output.ExitUsageError,
		}
	}
	return id, nil
}

func runInvoices(cmd *cobra.Command, args []string) error {
	invoices, err := apiClient.Invoices(cmd.Context())
	if err != nil {
		return err
	}
	if len(invoices) == 0 {
		printer.Info("no invoices")
		return nil
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(),
		[]string{"ID", "Number", "Supplier", "Status", "Total", "Created"})
	for _, inv := range invoices {
		table.AddRow([]string{
			strconv.Itoa(inv.ID),
			inv.InvoiceNumber,
			inv.Supplier,
			printer.StatusBadge(inv.Status),
			inv.TotalCost.String(),
			inv.CreatedAt.Local().Format("2006-01-02"),
		})
	}
	table.Render()
	return nil
}

func runInvoicesShow(cmd *cobra.Command, args []string) error {
	id, err := parseInvoiceID(args[0])
	if err != nil {
		return err
	}

	inv, err := apiClient.InvoiceByID(cmd.Context(), id)
	if err != nil {
		return err
	}

	printer.Header("Invoice " + inv.InvoiceNumber)
	printer.Print("  Supplier: %s", inv.Supplier)
	printer.Print("  Status:   %s", printer.StatusBadge(inv.Status))
	printer.Print("  Total:    %s", printer.Bold(inv.TotalCost.String()))
	printer.Print("")

	table := output.NewTableWithWriter(cmd.OutOrStdout(),
		[]string{"Product", "Qty", "Cost/Item"})
	for _, item := range inv.Items {
		table.AddRow([]string{
			item.ProductName,
			strconv.Itoa(item.Quantity),
			item.CostPerItem.String(),
		})
	}
	table.Render()
	return nil
}

func runInvoicesStatus(cmd *cobra.Command, args []string) error {
	id, err := parseInvoiceID(args[0])
	if err != nil {
		return err
	}

	status := args[1]
	switch status {
	case domain.InvoicePending, domain.InvoiceProcessed, domain.InvoiceVoided:
	default:
		return &output.CLIError{
			Summary:  "unknown status " + strconv.Quote(status),
			Detail:   "valid statuses: pendiente, procesada, anulada",
			ExitCode: output.ExitUsageError,
		}
	}

	inv, err := apiClient.UpdateInvoiceStatus(cmd.Context(), id, status)
	if err != nil {
		return err
	}
	printer.Success("invoice %s is now %s", inv.InvoiceNumber, inv.Status)
	return nil
}
