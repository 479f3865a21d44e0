package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var warehousesCmd = &cobra.Command{
	Use:   "warehouses",
	Short: "List active warehouses",
	Long: `List the active warehouses known to the backend.

Set warehouse.id and warehouse.name in the configuration (or the
WAREHOUSE_WAREHOUSE_ID environment variable) to select the warehouse the
inventory commands operate on.`,
	RunE: runWarehouses,
}

func init() {
	rootCmd.AddCommand(warehousesCmd)
}

func runWarehouses(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newBackendClient(cfg)

	warehouses, err := client.ListActiveWarehouses(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tADDRESS")
	for _, warehouse := range warehouses {
		marker := ""
		if warehouse.ID.String() == cfg.Warehouse.ID {
			marker = " *"
		}
		fmt.Fprintf(w, "%s\t%s%s\t%s\n", warehouse.ID, warehouse.Name, marker, warehouse.Address)
	}
	return w.Flush()
}
