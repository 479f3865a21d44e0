package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"example.com/depot/services/warehouse/internal/inventory"
	"example.com/depot/services/warehouse/internal/models"
)

var (
	inventorySearch   string
	inventoryCategory string

	itemName     string
	itemSKU      string
	itemBarcode  string
	itemDesc     string
	itemCategory string
	itemQuantity int
	itemMinStock int
	itemPrice    string
	itemLocation string

	exportPath string
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Browse and maintain warehouse inventory",
}

var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the inventory of the selected warehouse",
	RunE:  runInventoryList,
}

var inventoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an inventory item",
	RunE:  runInventoryAdd,
}

var inventoryUpdateCmd = &cobra.Command{
	Use:   "update <item-id>",
	Short: "Update an inventory item",
	Args:  cobra.ExactArgs(1),
	RunE:  runInventoryUpdate,
}

var inventoryDeleteCmd = &cobra.Command{
	Use:   "delete <item-id>",
	Short: "Delete an inventory item",
	Args:  cobra.ExactArgs(1),
	RunE:  runInventoryDelete,
}

var inventoryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the inventory as CSV with summary figures",
	RunE:  runInventoryExport,
}

func init() {
	inventoryListCmd.Flags().StringVar(&inventorySearch, "search", "", "filter by name, sku, barcode or category")
	inventoryListCmd.Flags().StringVar(&inventoryCategory, "category", "", "filter by exact category")

	for _, c := range []*cobra.Command{inventoryAddCmd, inventoryUpdateCmd} {
		c.Flags().StringVar(&itemName, "name", "", "item name")
		c.Flags().StringVar(&itemSKU, "sku", "", "stock keeping unit")
		c.Flags().StringVar(&itemBarcode, "barcode", "", "item barcode")
		c.Flags().StringVar(&itemDesc, "description", "", "item description")
		c.Flags().StringVar(&itemCategory, "item-category", "", "item category")
		c.Flags().IntVar(&itemQuantity, "quantity", 0, "stocked quantity")
		c.Flags().IntVar(&itemMinStock, "min-stock", 0, "low stock threshold")
		c.Flags().StringVar(&itemPrice, "unit-price", "0", "unit price")
		c.Flags().StringVar(&itemLocation, "location", "", "storage location")
	}

	inventoryExportCmd.Flags().StringVar(&exportPath, "out", "inventory.csv", "output CSV path")

	inventoryCmd.AddCommand(inventoryListCmd)
	inventoryCmd.AddCommand(inventoryAddCmd)
	inventoryCmd.AddCommand(inventoryUpdateCmd)
	inventoryCmd.AddCommand(inventoryDeleteCmd)
	inventoryCmd.AddCommand(inventoryExportCmd)
	rootCmd.AddCommand(inventoryCmd)
}

// newInventoryController builds the inventory controller for the configured
// warehouse
func newInventoryController(cmd *cobra.Command) (*inventory.Controller, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	warehouseID, warehouseName, err := selectedWarehouse(cfg)
	if err != nil {
		return nil, err
	}
	controller := inventory.NewController(newBackendClient(cfg), warehouseID, warehouseName, cfg.Warehouse.Limit)
	if err := controller.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return controller, nil
}

func runInventoryList(cmd *cobra.Command, args []string) error {
	controller, err := newInventoryController(cmd)
	if err != nil {
		return err
	}

	if inventoryCategory != "" {
		controller.SetCategory(inventoryCategory)
	}
	items := controller.Items()
	if inventorySearch != "" {
		items = filterImmediate(controller, inventorySearch)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SKU\tNAME\tCATEGORY\tQTY\tMIN\tPRICE\tSTATUS\tLOCATION")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			item.SKU, item.Name, item.Category, item.Quantity, item.MinStock,
			item.UnitPrice.StringFixed(2), item.StockStatus(), item.Location)
	}
	return w.Flush()
}

// filterImmediate applies a search term without waiting out the interactive
// debounce interval. One-shot commands have no keystroke stream to debounce.
func filterImmediate(controller *inventory.Controller, term string) []models.InventoryItem {
	matched := make([]models.InventoryItem, 0)
	for _, item := range controller.Items() {
		if inventory.Matches(item, term) {
			matched = append(matched, item)
		}
	}
	return matched
}

func itemFromFlags() (*models.InventoryItem, error) {
	price, err := decimal.NewFromString(itemPrice)
	if err != nil {
		return nil, errors.Wrap(err, "invalid unit price")
	}
	return &models.InventoryItem{
		Name:        itemName,
		SKU:         itemSKU,
		Barcode:     itemBarcode,
		Description: itemDesc,
		Category:    itemCategory,
		Quantity:    itemQuantity,
		MinStock:    itemMinStock,
		UnitPrice:   price,
		Location:    itemLocation,
	}, nil
}

func runInventoryAdd(cmd *cobra.Command, args []string) error {
	controller, err := newInventoryController(cmd)
	if err != nil {
		return err
	}
	item, err := itemFromFlags()
	if err != nil {
		return err
	}
	if item.Name == "" || item.SKU == "" {
		return errors.New("--name and --sku are required")
	}
	if err := controller.AddItem(cmd.Context(), item); err != nil {
		return err
	}
	fmt.Printf("Added %s (%s)\n", item.Name, item.SKU)
	return nil
}

func runInventoryUpdate(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return errors.Wrap(err, "invalid item id")
	}
	controller, err := newInventoryController(cmd)
	if err != nil {
		return err
	}
	item, err := itemFromFlags()
	if err != nil {
		return err
	}
	item.ID = id
	if err := controller.UpdateItem(cmd.Context(), item); err != nil {
		return err
	}
	fmt.Printf("Updated %s\n", id)
	return nil
}

func runInventoryDelete(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return errors.Wrap(err, "invalid item id")
	}
	controller, err := newInventoryController(cmd)
	if err != nil {
		return err
	}
	if err := controller.DeleteItem(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", id)
	return nil
}

func runInventoryExport(cmd *cobra.Command, args []string) error {
	controller, err := newInventoryController(cmd)
	if err != nil {
		return err
	}

	report := controller.Report()
	file, err := os.Create(exportPath)
	if err != nil {
		return errors.Wrap(err, "failed to create export file")
	}
	defer file.Close()

	if err := report.WriteCSV(file); err != nil {
		return err
	}

	fmt.Printf("Exported %d items to %s\n", len(report.Items), exportPath)
	fmt.Printf("Total value: %s  Low stock: %d  Out of stock: %d\n",
		report.TotalValue.StringFixed(2), report.LowStockCount, report.OutOfStockCnt)
	return nil
}
