package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"example.com/depot/services/warehouse/internal/backend"
	"example.com/depot/services/warehouse/internal/models"
	"example.com/depot/services/warehouse/internal/shipments"
)

var (
	shipType        string
	shipDestination string
	shipInstruction string
	shipStrategy    string
	truckNumber     string
	driverName      string
	driverPhone     string
	courierName     string
	awbNumber       string
	contactPhone    string
	personName      string
	idProofNumber   string

	assumeYes bool
)

var shipmentsCmd = &cobra.Command{
	Use:   "shipments",
	Short: "Work with shipment orders",
}

var shipmentsDraftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "List draft shipments awaiting configuration",
	RunE:  runShipmentsDrafts,
}

var shipmentsPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List configured and dispatched shipments",
	RunE:  runShipmentsPending,
}

var shipmentsConfigureCmd = &cobra.Command{
	Use:   "configure <shipment-id>",
	Short: "Configure a draft shipment's delivery method",
	Long: `Configure a draft shipment for truck, courier or in-person delivery.

Each delivery method requires its own details:
  truck     --truck-number, --driver-name, --driver-phone, --strategy
  courier   --courier-name, --awb
  inPerson  --person-name, --phone, --id-proof`,
	Args: cobra.ExactArgs(1),
	RunE: runShipmentsConfigure,
}

var shipmentsConsolidateCmd = &cobra.Command{
	Use:   "consolidate <primary-id> <other-id>...",
	Short: "Merge draft shipments into one multi-customer shipment",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runShipmentsConsolidate,
}

var shipmentsLoadCmd = &cobra.Command{
	Use:   "load <shipment-id>",
	Short: "Start loading a configured shipment",
	Args:  cobra.ExactArgs(1),
	RunE:  runShipmentsLoad,
}

var shipmentsDeleteCmd = &cobra.Command{
	Use:   "delete <shipment-id>",
	Short: "Delete a draft shipment",
	Args:  cobra.ExactArgs(1),
	RunE:  runShipmentsDelete,
}

var shipmentsPurgeCmd = &cobra.Command{
	Use:   "purge <shipment-id>",
	Short: "Permanently delete a shipment and its cartons",
	Long: `Permanently delete a configured or dispatched shipment together with
its cartons. The full record summary is shown and must be confirmed; the
deletion cannot be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: runShipmentsPurge,
}

func init() {
	c := shipmentsConfigureCmd
	c.Flags().StringVar(&shipType, "type", "", "delivery method: truck, courier or inPerson")
	c.Flags().StringVar(&shipDestination, "destination", "", "delivery destination address")
	c.Flags().StringVar(&shipInstruction, "instructions", "", "special instructions")
	c.Flags().StringVar(&shipStrategy, "strategy", "lifo", "loading strategy for truck shipments: lifo or nonLifo")
	c.Flags().StringVar(&truckNumber, "truck-number", "", "truck registration number")
	c.Flags().StringVar(&driverName, "driver-name", "", "driver name")
	c.Flags().StringVar(&driverPhone, "driver-phone", "", "driver phone number")
	c.Flags().StringVar(&courierName, "courier-name", "", "courier company name")
	c.Flags().StringVar(&awbNumber, "awb", "", "air waybill number")
	c.Flags().StringVar(&contactPhone, "phone", "", "contact phone number")
	c.Flags().StringVar(&personName, "person-name", "", "pickup person name")
	c.Flags().StringVar(&idProofNumber, "id-proof", "", "pickup person ID proof number")

	shipmentsPurgeCmd.Flags().BoolVar(&assumeYes, "yes", false, "skip the confirmation prompt")

	shipmentsCmd.AddCommand(shipmentsDraftsCmd)
	shipmentsCmd.AddCommand(shipmentsPendingCmd)
	shipmentsCmd.AddCommand(shipmentsConfigureCmd)
	shipmentsCmd.AddCommand(shipmentsConsolidateCmd)
	shipmentsCmd.AddCommand(shipmentsLoadCmd)
	shipmentsCmd.AddCommand(shipmentsDeleteCmd)
	shipmentsCmd.AddCommand(shipmentsPurgeCmd)
	rootCmd.AddCommand(shipmentsCmd)
}

// newShipmentController builds the shipment controller acting as the
// configured user
func newShipmentController() (*shipments.Controller, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return shipments.NewController(newBackendClient(cfg), cfg.Backend.UserName), nil
}

func printShipments(orders []models.ShipmentOrder) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tCUSTOMER\tDESTINATION\tTYPE\tCARTONS\tSTATUS")
	for _, order := range orders {
		shipmentType := "-"
		if order.ShipmentType != nil {
			shipmentType = string(*order.ShipmentType)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			order.ID, order.ShipmentCode, order.CustomerName, order.Destination,
			shipmentType, order.TotalCartons, order.Status)
	}
	return w.Flush()
}

func runShipmentsDrafts(cmd *cobra.Command, args []string) error {
	controller, err := newShipmentController()
	if err != nil {
		return err
	}
	if err := controller.LoadDrafts(cmd.Context()); err != nil {
		return err
	}
	return printShipments(controller.Drafts())
}

func runShipmentsPending(cmd *cobra.Command, args []string) error {
	controller, err := newShipmentController()
	if err != nil {
		return err
	}
	if err := controller.LoadPending(cmd.Context()); err != nil {
		return err
	}
	return printShipments(controller.Pending())
}

// configureRequestFromFlags assembles the configuration request for the
// chosen delivery method
func configureRequestFromFlags() (backend.ConfigureShipmentRequest, error) {
	req := backend.ConfigureShipmentRequest{
		Type:                models.ShipmentType(shipType),
		Destination:         shipDestination,
		SpecialInstructions: shipInstruction,
	}
	if !req.Type.Valid() {
		return req, errors.Errorf("unknown delivery method %q", shipType)
	}

	switch req.Type {
	case models.ShipmentTypeTruck:
		req.LoadingStrategy = models.LoadingStrategy(shipStrategy)
		req.TruckDetails = &models.TruckDetails{
			TruckNumber: truckNumber,
			DriverName:  driverName,
			DriverPhone: driverPhone,
		}
	case models.ShipmentTypeCourier:
		req.CourierDetails = &models.CourierDetails{
			CourierName: courierName,
			AWBNumber:   awbNumber,
			Phone:       contactPhone,
		}
	case models.ShipmentTypeInPerson:
		req.InPersonDetails = &models.InPersonDetails{
			PersonName:    personName,
			Phone:         contactPhone,
			IDProofNumber: idProofNumber,
		}
	}
	return req, nil
}

func runShipmentsConfigure(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return errors.Wrap(err, "invalid shipment id")
	}
	req, err := configureRequestFromFlags()
	if err != nil {
		return err
	}

	controller, err := newShipmentController()
	if err != nil {
		return err
	}
	order, err := controller.Configure(cmd.Context(), id, req)
	if err != nil {
		if order != nil {
			// Configuration stood, only the QR step failed
			fmt.Printf("Configured %s, but: %v\n", order.ShipmentCode, err)
			return nil
		}
		return err
	}
	fmt.Printf("Configured %s for %s delivery\n", order.ShipmentCode, req.Type)
	return nil
}

func runShipmentsConsolidate(cmd *cobra.Command, args []string) error {
	controller, err := newShipmentController()
	if err != nil {
		return err
	}
	if err := controller.LoadDrafts(cmd.Context()); err != nil {
		return err
	}

	primaryID, err := uuid.Parse(args[0])
	if err != nil {
		return errors.Wrap(err, "invalid primary shipment id")
	}
	primary, ok := controller.Draft(primaryID)
	if !ok {
		return errors.Errorf("shipment %s is not in the draft list", primaryID)
	}

	selected := make([]models.ShipmentOrder, 0, len(args)-1)
	for _, arg := range args[1:] {
		id, err := uuid.Parse(arg)
		if err != nil {
			return errors.Wrapf(err, "invalid shipment id %q", arg)
		}
		order, ok := controller.Draft(id)
		if !ok {
			return errors.Errorf("shipment %s is not in the draft list", id)
		}
		selected = append(selected, order)
	}

	merged, err := controller.Consolidate(cmd.Context(), primary, selected)
	if err != nil {
		return err
	}
	fmt.Printf("Created multi-customer shipment %s with %d cartons\n",
		merged.ShipmentCode, merged.TotalCartons)
	return nil
}

func runShipmentsLoad(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return errors.Wrap(err, "invalid shipment id")
	}
	controller, err := newShipmentController()
	if err != nil {
		return err
	}
	if err := controller.LoadPending(cmd.Context()); err != nil {
		return err
	}

	var order models.ShipmentOrder
	found := false
	for _, pending := range controller.Pending() {
		if pending.ID == id {
			order = pending
			found = true
			break
		}
	}
	if !found {
		return errors.Errorf("shipment %s is not in the pending list", id)
	}

	snapshot, err := controller.StartLoading(cmd.Context(), order)
	if err != nil {
		return err
	}

	fmt.Printf("Loading %s", snapshot.ShipmentCode)
	if snapshot.TruckNumber != "" {
		fmt.Printf(" onto %s", snapshot.TruckNumber)
	}
	if snapshot.LoadingStrategy != "" {
		fmt.Printf(" (%s)", snapshot.LoadingStrategy)
	}
	fmt.Printf(": %d carton(s)\n", snapshot.CartonCount)
	for _, barcode := range snapshot.CartonBarcodes {
		fmt.Printf("  %s\n", barcode)
	}
	return nil
}

func runShipmentsDelete(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return errors.Wrap(err, "invalid shipment id")
	}
	controller, err := newShipmentController()
	if err != nil {
		return err
	}
	if err := controller.DeleteDraft(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("Deleted draft %s\n", id)
	return nil
}

func runShipmentsPurge(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return errors.Wrap(err, "invalid shipment id")
	}
	controller, err := newShipmentController()
	if err != nil {
		return err
	}
	if err := controller.LoadPending(cmd.Context()); err != nil {
		return err
	}

	var order models.ShipmentOrder
	found := false
	for _, pending := range controller.Pending() {
		if pending.ID == id {
			order = pending
			found = true
			break
		}
	}
	if !found {
		return errors.Errorf("shipment %s is not in the pending list", id)
	}

	summary, err := controller.PermanentDeletionSummary(cmd.Context(), order)
	if err != nil {
		return err
	}

	fmt.Printf("Shipment:    %s\n", summary.ShipmentCode)
	fmt.Printf("Customer:    %s\n", summary.CustomerName)
	fmt.Printf("Destination: %s\n", summary.Destination)
	fmt.Printf("Status:      %s\n", summary.Status)
	fmt.Printf("Cartons:     %d\n", summary.CartonCount)
	fmt.Println("This deletion is permanent and cannot be undone.")

	if !assumeYes && !confirm("Delete permanently? [y/N] ") {
		fmt.Println("Aborted")
		return nil
	}

	if err := controller.DeletePermanently(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("Permanently deleted %s\n", summary.ShipmentCode)
	return nil
}

// confirm reads a yes/no answer from stdin
func confirm(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
