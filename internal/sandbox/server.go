package sandbox

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/depot/services/warehouse/config"
	"example.com/depot/services/warehouse/internal/backend"
	"example.com/depot/services/warehouse/internal/models"
)

// Server serves the sandbox REST API
type Server struct {
	config     config.SandboxConfig
	router     *gin.Engine
	httpServer *http.Server
	repo       Repository
}

// NewServer creates a sandbox server around a repository
func NewServer(cfg config.SandboxConfig, repo Repository) *Server {
	server := &Server{
		config: cfg,
		repo:   repo,
	}

	router := server.setupRouter()
	server.router = router
	server.httpServer = &http.Server{
		Addr:    cfg.Address,
		Handler: router,
	}
	return server
}

// Router exposes the gin engine, used by tests to serve over httptest
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures the HTTP router
func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/warehouses", s.listWarehouses)
		v1.GET("/warehouses/:id/inventory", s.listInventory)

		v1.POST("/inventory", s.createItem)
		v1.PUT("/inventory/:id", s.updateItem)
		v1.DELETE("/inventory/:id", s.deleteItem)

		v1.GET("/shipments/drafts", s.listDrafts)
		v1.GET("/shipments/pending", s.listPending)
		v1.POST("/shipments/consolidate", s.consolidate)
		v1.DELETE("/shipments/:id", s.deleteDraft)
		v1.DELETE("/shipments/:id/permanent", s.deletePermanently)
		v1.POST("/shipments/:id/configure", s.configureShipment)
		v1.POST("/shipments/:id/qr", s.generateQR)
		v1.GET("/shipments/:id/cartons", s.listCartons)
		v1.GET("/shipments/:id/dispatch-slip", s.dispatchSlip)

		v1.GET("/cartons/:barcode/items", s.listCartonItems)
	}
	return router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Info().Str("address", s.config.Address).Msg("Starting sandbox backend")

	if err := s.httpServer.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "sandbox server error")
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down sandbox backend")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "sandbox server shutdown error")
	}
	return nil
}

// fail writes a failed envelope with the mapped status code
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrNotDraft),
		errors.Is(err, ErrNotConfigured),
		errors.Is(err, ErrConsolidationTooSmall):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"success": false, "message": err.Error()})
}

func failBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		failBadRequest(c, "invalid shipment or item id")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) listWarehouses(c *gin.Context) {
	warehouses, err := s.repo.ListActiveWarehouses(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "warehouses": warehouses})
}

func (s *Server) listInventory(c *gin.Context) {
	warehouseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		failBadRequest(c, "invalid warehouse id")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "1000"))

	items, err := s.repo.ListInventory(c.Request.Context(), warehouseID, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": items})
}

func (s *Server) createItem(c *gin.Context) {
	var item models.InventoryItem
	if err := json.NewDecoder(c.Request.Body).Decode(&item); err != nil {
		failBadRequest(c, "invalid item payload")
		return
	}
	if item.Name == "" || item.SKU == "" || item.WarehouseID == uuid.Nil {
		failBadRequest(c, "name, sku and warehouse_id are required")
		return
	}
	if err := s.repo.CreateInventoryItem(c.Request.Context(), &item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

func (s *Server) updateItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var item models.InventoryItem
	if err := json.NewDecoder(c.Request.Body).Decode(&item); err != nil {
		failBadRequest(c, "invalid item payload")
		return
	}
	item.ID = id
	if err := s.repo.UpdateInventoryItem(c.Request.Context(), &item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

func (s *Server) deleteItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.repo.DeleteInventoryItem(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) listDrafts(c *gin.Context) {
	shipments, err := s.repo.ListShipmentsByStatus(c.Request.Context(), models.ShipmentStatusDraft)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "shipments": shipments})
}

func (s *Server) listPending(c *gin.Context) {
	shipments, err := s.repo.ListShipmentsByStatus(c.Request.Context(),
		models.ShipmentStatusConfigured, models.ShipmentStatusDispatched)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "shipments": shipments})
}

func (s *Server) consolidate(c *gin.Context) {
	var req backend.ConsolidateRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		failBadRequest(c, "invalid consolidation payload")
		return
	}
	merged, err := s.repo.Consolidate(c.Request.Context(), req.ShipmentIDs, req.UserName)
	if err != nil {
		fail(c, err)
		return
	}
	log.Info().
		Str("shipment_code", merged.ShipmentCode).
		Int("sources", len(req.ShipmentIDs)).
		Str("user", req.UserName).
		Msg("Consolidated shipments")
	c.JSON(http.StatusOK, gin.H{"success": true, "shipment": merged})
}

func (s *Server) deleteDraft(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.repo.SoftDeleteDraft(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) deletePermanently(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.repo.HardDeleteShipment(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) configureShipment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req backend.ConfigureShipmentRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		failBadRequest(c, "invalid configuration payload")
		return
	}
	if !req.Type.Valid() {
		failBadRequest(c, "unknown shipment type")
		return
	}

	shipment, err := s.repo.ConfigureShipment(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "shipment": shipment})
}

func (s *Server) generateQR(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	shipment, err := s.repo.MarkQRGenerated(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	payload, err := json.Marshal(gin.H{
		"o":  shipment.ID.String(),
		"sc": shipment.ShipmentCode,
		"d":  time.Now().Format("2006-01-02"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "qr_payload": string(payload)})
}

func (s *Server) listCartons(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cartons, err := s.repo.ListCartons(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cartons": cartons})
}

func (s *Server) listCartonItems(c *gin.Context) {
	items, err := s.repo.ListCartonItems(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": items})
}

func (s *Server) dispatchSlip(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	data, err := s.repo.DispatchSlipData(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}
