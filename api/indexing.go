package api

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/evseew/PEcoinDashboard-Backend/app"
	"github.com/evseew/PEcoinDashboard-Backend/models"
)

type recheckRequest struct {
	AssetId     string `json:"assetId"`
	OperationId string `json:"operationId"`
	TreeAddress string `json:"treeAddress"`
}

// GetIndexingStatus probes the read index once for an asset.
func (h *Handler) GetIndexingStatus(c *fiber.Ctx) error {
	assetId := c.Params("assetId")
	diag := h.minter.DiagnoseIndexing(assetId, "")
	return c.JSON(fiber.Map{
		"success":         true,
		"assetId":         assetId,
		"indexed":         diag.Indexed,
		"phantomReady":    diag.PhantomReady,
		"recommendations": diag.Recommendations,
	})
}

// RecheckIndexing runs the full diagnostic pass. Callers may pass the
// asset id directly or reference a stored operation.
func (h *Handler) RecheckIndexing(c *fiber.Ctx) error {
	var body recheckRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if body.OperationId != "" {
		var operation models.MintOperation
		err := app.DB.FindOne(models.CollectionMintOperations, bson.M{"operation_id": body.OperationId}, &operation)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "operation not found")
		}
		if body.AssetId == "" && operation.Result != nil {
			body.AssetId = operation.Result.AssetId
		}
		if body.TreeAddress == "" {
			if collection, err := resolveCollection(operation.CollectionId); err == nil {
				body.TreeAddress = collection.TreeAddress
			}
		}
	}
	if body.AssetId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "assetId is required")
	}

	diag := h.minter.DiagnoseIndexing(body.AssetId, body.TreeAddress)
	return c.JSON(fiber.Map{"success": true, "diagnostics": diag})
}

// GetWalletBalance reports the signer balance with an affordability
// estimate for a prospective batch size.
func (h *Handler) GetWalletBalance(c *fiber.Ctx) error {
	items := c.QueryInt("items", 1)
	balance, err := h.minter.CheckWalletBalance(items)
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "wallet": balance})
}

// GetMonitoringStats exposes the monitor's aggregate counters.
func (h *Handler) GetMonitoringStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":  true,
		"stats":    h.monitor.GetStats(),
		"webhooks": h.notifier.GetStats(),
	})
}

func (h *Handler) GetActiveMonitoring(c *fiber.Ctx) error {
	operations := h.monitor.GetActiveOperations()
	return c.JSON(fiber.Map{"success": true, "operations": operations, "count": len(operations)})
}

func (h *Handler) GetMonitoringStatus(c *fiber.Ctx) error {
	snapshot, found := h.monitor.GetOperationStatus(c.Params("operationId"))
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "operation is not monitored")
	}
	return c.JSON(fiber.Map{"success": true, "operation": snapshot})
}

func (h *Handler) StopMonitoring(c *fiber.Ctx) error {
	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.BodyParser(&body)
	if body.Reason == "" {
		body.Reason = "manual"
	}
	stopped := h.monitor.StopMonitoring(c.Params("operationId"), body.Reason)
	if !stopped {
		return fiber.NewError(fiber.StatusNotFound, "operation is not monitored")
	}
	return c.JSON(fiber.Map{"success": true})
}
