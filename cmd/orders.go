package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Anbokor/megastation/internal/domain"
	"github.com/Anbokor/megastation/internal/output"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your orders",
	RunE:  runOrders,
}

var ordersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one order with its lines",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersShow,
}

var ordersCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a pending order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersCancel,
}

var ordersStaffCmd = &cobra.Command{
	Use:   "staff [id]",
	Short: "List all orders across customers (staff only)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runOrdersStaff,
}

func init() {
	rootCmd.AddCommand(ordersCmd)
	ordersCmd.AddCommand(ordersShowCmd)
	ordersCmd.AddCommand(ordersCancelCmd)
	ordersCmd.AddCommand(ordersStaffCmd)
}

func parseOrderID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, &output.CLIError{
			Summary:  "order id must be a positive number",
			ExitCode: output.ExitUsageError,
		}
	}
	return id, nil
}

func runOrders(cmd *cobra.Command, args []string) error {
	orders, err := apiClient.Orders(cmd.Context())
	if err != nil {
		return err
	}
	renderOrders(cmd, orders)
	return nil
}

func runOrdersStaff(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		id, err := parseOrderID(args[0])
		if err != nil {
			return err
		}
		order, err := apiClient.StaffOrderByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		renderOrderDetail(cmd, order)
		return nil
	}

	orders, err := apiClient.StaffOrders(cmd.Context())
	if err != nil {
		return err
	}
	renderOrders(cmd, orders)
	return nil
}

func renderOrders(cmd *cobra.Command, orders []domain.Order) {
	if len(orders) == 0 {
		printer.Info("no orders yet")
		return
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(),
		[]string{"ID", "Status", "Total", "Created", "Lines"})
	for _, o := range orders {
		table.AddRow([]string{
			strconv.Itoa(o.ID),
			printer.StatusBadge(o.Status),
			o.TotalPrice.String(),
			o.CreatedAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(len(o.Items)),
		})
	}
	table.Render()
}

func runOrdersShow(cmd *cobra.Command, args []string) error {
	id, err := parseOrderID(args[0])
	if err != nil {
		return err
	}

	order, err := apiClient.OrderByID(cmd.Context(), id)
	if err != nil {
		return err
	}

	renderOrderDetail(cmd, order)
	return nil
}

func renderOrderDetail(cmd *cobra.Command, order *domain.Order) {
	printer.Header("Order #" + strconv.Itoa(order.ID))
	printer.Print("  Status:  %s", printer.StatusBadge(order.Status))
	printer.Print("  Created: %s", order.CreatedAt.Local().Format("2006-01-02 15:04"))
	printer.Print("  Total:   %s", printer.Bold(order.TotalPrice.String()))
	printer.Print("")

	table := output.NewTableWithWriter(cmd.OutOrStdout(),
		[]string{"Product", "Qty", "Price"})
	for _, item := range order.Items {
		table.AddRow([]string{
			strconv.Itoa(item.Product),
			strconv.Itoa(item.Quantity),
			item.Price.String(),
		})
	}
	table.Render()
}

func runOrdersCancel(cmd *cobra.Command, args []string) error {
	id, err := parseOrderID(args[0])
	if err != nil {
		return err
	}

	if err := apiClient.CancelOrder(cmd.Context(), id); err != nil {
		return err
	}
	printer.Success("order #%d cancelled", id)
	return nil
}
