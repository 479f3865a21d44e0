package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"example.com/depot/services/warehouse/internal/models"
	"example.com/depot/services/warehouse/internal/slips"
)

var slipOutPath string

var slipsCmd = &cobra.Command{
	Use:   "slips",
	Short: "Generate shipment slip PDFs",
}

var packingSlipCmd = &cobra.Command{
	Use:   "packing <shipment-id>",
	Short: "Generate the packing slip with per-carton QR labels",
	Args:  cobra.ExactArgs(1),
	RunE:  runSlip(slips.KindPacking),
}

var dispatchSlipCmd = &cobra.Command{
	Use:   "dispatch <shipment-id>",
	Short: "Generate the dispatch slip",
	Args:  cobra.ExactArgs(1),
	RunE:  runSlip(slips.KindDispatch),
}

var loadingSlipCmd = &cobra.Command{
	Use:   "loading <shipment-id>",
	Short: "Generate the loading slip",
	Args:  cobra.ExactArgs(1),
	RunE:  runSlip(slips.KindLoading),
}

func init() {
	slipsCmd.PersistentFlags().StringVar(&slipOutPath, "out", "", "output PDF path (default <kind>-<code>.pdf)")

	slipsCmd.AddCommand(packingSlipCmd)
	slipsCmd.AddCommand(dispatchSlipCmd)
	slipsCmd.AddCommand(loadingSlipCmd)
	rootCmd.AddCommand(slipsCmd)
}

// findOrder looks for the shipment in the draft and pending lists
func findOrder(ctx context.Context, id uuid.UUID) (models.ShipmentOrder, error) {
	controller, err := newShipmentController()
	if err != nil {
		return models.ShipmentOrder{}, err
	}
	if err := controller.LoadDrafts(ctx); err != nil {
		return models.ShipmentOrder{}, err
	}
	if err := controller.LoadPending(ctx); err != nil {
		return models.ShipmentOrder{}, err
	}
	for _, order := range append(controller.Drafts(), controller.Pending()...) {
		if order.ID == id {
			return order, nil
		}
	}
	return models.ShipmentOrder{}, errors.Errorf("shipment %s not found", id)
}

func runSlip(kind slips.SlipKind) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return errors.Wrap(err, "invalid shipment id")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		generator := slips.NewGenerator(newBackendClient(cfg))

		order, err := findOrder(cmd.Context(), id)
		if err != nil {
			return err
		}

		var doc *slips.Document
		switch kind {
		case slips.KindPacking:
			doc, err = generator.PackingSlip(cmd.Context(), order)
		case slips.KindDispatch:
			doc, err = generator.DispatchSlip(cmd.Context(), order)
		case slips.KindLoading:
			doc, err = generator.LoadingSlip(cmd.Context(), order)
		}
		if err != nil {
			return err
		}

		pdfBytes, err := slips.RenderPDF(doc)
		if err != nil {
			return err
		}

		out := slipOutPath
		if out == "" {
			out = fmt.Sprintf("%s-%s.pdf", kind, order.ShipmentCode)
		}
		if err := os.WriteFile(out, pdfBytes, 0o644); err != nil {
			return errors.Wrap(err, "failed to write slip PDF")
		}
		fmt.Printf("Wrote %s\n", out)
		return nil
	}
}
