package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/evseew/PEcoinDashboard-Backend/app"
	"github.com/evseew/PEcoinDashboard-Backend/indexing"
	"github.com/evseew/PEcoinDashboard-Backend/models"
	"github.com/evseew/PEcoinDashboard-Backend/solana"
	"github.com/evseew/PEcoinDashboard-Backend/webhook"
)

// Handler wires the HTTP routes to the mint, indexing and webhook
// components.
type Handler struct {
	minter   *solana.Minter
	monitor  *indexing.Monitor
	notifier *webhook.Notifier
	health   *app.HealthCheckRunner
	logger   *log.Entry
}

func NewHandler(minter *solana.Minter, monitor *indexing.Monitor, notifier *webhook.Notifier, health *app.HealthCheckRunner) *Handler {
	return &Handler{
		minter:   minter,
		monitor:  monitor,
		notifier: notifier,
		health:   health,
		logger:   log.WithField("module", "api"),
	}
}

func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.GetHealth)

	api := router.Group("/api")

	mint := api.Group("/mint")
	mint.Post("/single", h.MintSingle)
	mint.Post("/batch", h.MintBatch)
	mint.Get("/status/:operationId", h.GetMintStatus)
	mint.Get("/operations", h.ListOperations)

	idx := api.Group("/indexing")
	idx.Get("/status/:assetId", h.GetIndexingStatus)
	idx.Post("/recheck", h.RecheckIndexing)

	webhooks := api.Group("/webhooks")
	webhooks.Post("/", h.RegisterWebhook)
	webhooks.Get("/", h.ListWebhooks)
	webhooks.Delete("/:webhookId", h.UnregisterWebhook)
	webhooks.Post("/:webhookId/test", h.TestWebhook)

	monitoring := api.Group("/monitoring")
	monitoring.Get("/stats", h.GetMonitoringStats)
	monitoring.Get("/operations", h.GetActiveMonitoring)
	monitoring.Get("/operations/:operationId", h.GetMonitoringStatus)
	monitoring.Delete("/operations/:operationId", h.StopMonitoring)

	api.Get("/wallet/balance", h.GetWalletBalance)
}

func (h *Handler) GetHealth(c *fiber.Ctx) error {
	response := fiber.Map{
		"status": "ok",
		"signer": h.minter.SignerAddress(),
	}
	if h.health != nil {
		response["services"] = h.health.ServiceHealths()
	}
	return c.JSON(response)
}

// resolveCollection maps a configured collection id onto its on-chain
// addresses.
func resolveCollection(collectionId string) (models.CollectionConfig, error) {
	for _, collection := range app.Config.Collections {
		if collection.Id == collectionId {
			return collection, nil
		}
	}
	return models.CollectionConfig{}, fmt.Errorf("unknown collection %q", collectionId)
}
