package api

import (
	"fmt"
	"strings"
	"time"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/evseew/PEcoinDashboard-Backend/app"
	"github.com/evseew/PEcoinDashboard-Backend/indexing"
	"github.com/evseew/PEcoinDashboard-Backend/models"
	"github.com/evseew/PEcoinDashboard-Backend/solana"
)

type mintSingleRequest struct {
	CollectionId string             `json:"collectionId"`
	Recipient    string             `json:"recipient"`
	Metadata     models.NFTMetadata `json:"metadata"`
}

type mintBatchRequest struct {
	CollectionId string `json:"collectionId"`
	Items        []struct {
		Recipient string             `json:"recipient"`
		Metadata  models.NFTMetadata `json:"metadata"`
	} `json:"items"`
}

// buildMintRequest validates addresses and fills metadata defaults from
// the collection config.
func buildMintRequest(collection models.CollectionConfig, recipient string, metadata models.NFTMetadata) (solana.MintRequest, error) {
	if metadata.Name == "" || metadata.URI == "" {
		return solana.MintRequest{}, fmt.Errorf("metadata name and uri are required")
	}
	if recipient == "" {
		recipient = app.Config.Mint.DefaultRecipient
	}
	if recipient == "" {
		return solana.MintRequest{}, fmt.Errorf("recipient is required")
	}
	if metadata.Symbol == "" {
		metadata.Symbol = collection.Symbol
	}
	if metadata.SellerFeeBasisPoints == 0 {
		metadata.SellerFeeBasisPoints = collection.SellerFeeBasisPoints
	}

	tree, err := sol.PublicKeyFromBase58(collection.TreeAddress)
	if err != nil {
		return solana.MintRequest{}, fmt.Errorf("invalid tree address: %w", err)
	}
	collectionMint, err := sol.PublicKeyFromBase58(collection.CollectionAddress)
	if err != nil {
		return solana.MintRequest{}, fmt.Errorf("invalid collection address: %w", err)
	}
	recipientKey, err := sol.PublicKeyFromBase58(recipient)
	if err != nil {
		return solana.MintRequest{}, fmt.Errorf("invalid recipient address: %w", err)
	}

	return solana.MintRequest{
		Tree:       tree,
		Collection: collectionMint,
		Recipient:  recipientKey,
		Metadata:   metadata,
	}, nil
}

// MintSingle accepts one mint and processes it asynchronously. The
// response carries the operation id to poll.
func (h *Handler) MintSingle(c *fiber.Ctx) error {
	var body mintSingleRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	collection, err := resolveCollection(body.CollectionId)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	mintReq, err := buildMintRequest(collection, body.Recipient, body.Metadata)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	operation := models.MintOperation{
		OperationId:  uuid.NewString(),
		Type:         models.OperationTypeSingle,
		Status:       models.OperationStatusProcessing,
		CreatedAt:    time.Now(),
		CollectionId: collection.Id,
		Collection:   models.CollectionRef{Name: collection.Name, Symbol: collection.Symbol},
		Recipient:    mintReq.Recipient.String(),
		Metadata:     mintReq.Metadata,
	}
	if err := app.DB.InsertOne(models.CollectionMintOperations, operation); err != nil {
		h.logger.WithError(err).Error("[API] failed to store mint operation")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to store operation")
	}

	go h.processMint(operation.OperationId, mintReq, collection.Name)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success":     true,
		"operationId": operation.OperationId,
		"status":      operation.Status,
	})
}

// treeLockResource names the exclusive lock serializing mints against
// one tree, so concurrent requests append leaves one at a time.
func treeLockResource(tree string) string {
	return "mint-tree-" + tree
}

func (h *Handler) processMint(operationId string, mintReq solana.MintRequest, collectionName string) {
	lockId, err := app.DB.XLock(treeLockResource(mintReq.Tree.String()))
	if err != nil {
		h.logger.WithError(err).Error("[API] failed to lock tree for mint")
		h.updateOperation(operationId, bson.M{
			"status":       models.OperationStatusFailed,
			"error":        "failed to acquire mint lock",
			"completed_at": time.Now(),
		})
		return
	}
	defer func() {
		if err := app.DB.Unlock(lockId); err != nil {
			h.logger.WithError(err).Error("[API] failed to unlock tree after mint")
		}
	}()

	result, err := h.minter.MintAsset(mintReq)
	now := time.Now()
	if err != nil {
		h.updateOperation(operationId, bson.M{
			"status":       models.OperationStatusFailed,
			"error":        err.Error(),
			"completed_at": now,
		})
		return
	}
	h.updateOperation(operationId, bson.M{
		"status":       models.OperationStatusCompleted,
		"result":       result,
		"completed_at": now,
	})

	if app.Config.IndexingMonitor.Enabled && result.AssetId != "" && !solana.IsFallbackAssetId(result.AssetId) {
		h.monitor.StartMonitoring(operationId, result.AssetId, indexing.JobMetadata{
			TreeAddress:    mintReq.Tree.String(),
			LeafIndex:      result.LeafIndex,
			CollectionName: collectionName,
			Recipient:      mintReq.Recipient.String(),
		})
	}
}

// MintBatch accepts up to the configured limit of mints and processes
// them sequentially with a pause between items.
func (h *Handler) MintBatch(c *fiber.Ctx) error {
	var body mintBatchRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(body.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "batch is empty")
	}
	if int64(len(body.Items)) > app.Config.Mint.BatchLimit {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("batch exceeds limit of %d items", app.Config.Mint.BatchLimit))
	}
	collection, err := resolveCollection(body.CollectionId)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	items := make([]models.BatchItem, len(body.Items))
	for i, item := range body.Items {
		items[i] = models.BatchItem{
			Index:     int64(i),
			Recipient: item.Recipient,
			Metadata:  item.Metadata,
			Status:    models.OperationStatusProcessing,
		}
	}
	operation := models.BatchOperation{
		OperationId:  uuid.NewString(),
		Status:       models.OperationStatusProcessing,
		CreatedAt:    time.Now(),
		CollectionId: collection.Id,
		Collection:   models.CollectionRef{Name: collection.Name, Symbol: collection.Symbol},
		TotalItems:   int64(len(items)),
		Items:        items,
	}
	if err := app.DB.InsertOne(models.CollectionBatchOperations, operation); err != nil {
		h.logger.WithError(err).Error("[API] failed to store batch operation")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to store operation")
	}

	go h.processBatch(operation, collection)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success":     true,
		"operationId": operation.OperationId,
		"status":      operation.Status,
		"totalItems":  operation.TotalItems,
	})
}

func (h *Handler) processBatch(operation models.BatchOperation, collection models.CollectionConfig) {
	pause := time.Duration(app.Config.Mint.BatchPauseMillis) * time.Millisecond

	lockId, err := app.DB.XLock(treeLockResource(collection.TreeAddress))
	if err != nil {
		h.logger.WithError(err).Error("[API] failed to lock tree for batch mint")
		h.updateBatch(operation.OperationId, bson.M{
			"status":       models.OperationStatusFailed,
			"completed_at": time.Now(),
		})
		return
	}
	defer func() {
		if err := app.DB.Unlock(lockId); err != nil {
			h.logger.WithError(err).Error("[API] failed to unlock tree after batch mint")
		}
	}()

	for i := range operation.Items {
		if i > 0 {
			time.Sleep(pause)
		}
		item := &operation.Items[i]

		mintReq, err := buildMintRequest(collection, item.Recipient, item.Metadata)
		if err == nil {
			var result *models.MintResult
			result, err = h.minter.MintAsset(mintReq)
			if err == nil {
				item.Status = models.OperationStatusCompleted
				item.Result = result
				operation.SuccessfulItems++
				if app.Config.IndexingMonitor.Enabled && result.AssetId != "" && !solana.IsFallbackAssetId(result.AssetId) {
					h.monitor.StartMonitoring(
						fmt.Sprintf("%s:%d", operation.OperationId, item.Index),
						result.AssetId,
						indexing.JobMetadata{
							TreeAddress:    mintReq.Tree.String(),
							LeafIndex:      result.LeafIndex,
							CollectionName: collection.Name,
							Recipient:      mintReq.Recipient.String(),
						},
					)
				}
			}
		}
		if err != nil {
			item.Status = models.OperationStatusFailed
			item.Error = err.Error()
			operation.FailedItems++
		}
		operation.ProcessedItems++

		h.updateBatch(operation.OperationId, bson.M{
			"items":            operation.Items,
			"processed_items":  operation.ProcessedItems,
			"successful_items": operation.SuccessfulItems,
			"failed_items":     operation.FailedItems,
		})
	}

	status := models.OperationStatusCompleted
	if operation.SuccessfulItems == 0 {
		status = models.OperationStatusFailed
	}
	now := time.Now()
	h.updateBatch(operation.OperationId, bson.M{
		"status":       status,
		"completed_at": now,
	})
}

func (h *Handler) updateOperation(operationId string, fields bson.M) {
	err := app.DB.UpdateOne(models.CollectionMintOperations, bson.M{"operation_id": operationId}, bson.M{"$set": fields})
	if err != nil {
		h.logger.
			WithField("operation_id", operationId).
			WithError(err).
			Error("[API] failed to update mint operation")
	}
}

func (h *Handler) updateBatch(operationId string, fields bson.M) {
	err := app.DB.UpdateOne(models.CollectionBatchOperations, bson.M{"operation_id": operationId}, bson.M{"$set": fields})
	if err != nil {
		h.logger.
			WithField("operation_id", operationId).
			WithError(err).
			Error("[API] failed to update batch operation")
	}
}

// GetMintStatus returns the operation snapshot, looking at single
// operations first, then batches.
func (h *Handler) GetMintStatus(c *fiber.Ctx) error {
	operationId := c.Params("operationId")

	var operation models.MintOperation
	if err := app.DB.FindOne(models.CollectionMintOperations, bson.M{"operation_id": operationId}, &operation); err == nil {
		return c.JSON(fiber.Map{"success": true, "operation": operation})
	}

	var batch models.BatchOperation
	if err := app.DB.FindOne(models.CollectionBatchOperations, bson.M{"operation_id": operationId}, &batch); err == nil {
		return c.JSON(fiber.Map{"success": true, "operation": batch})
	}

	return fiber.NewError(fiber.StatusNotFound, "operation not found")
}

// ListOperations returns recent single-mint operations, optionally
// filtered by status.
func (h *Handler) ListOperations(c *fiber.Ctx) error {
	filter := bson.M{}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		filter["status"] = status
	}
	limit := c.QueryInt("limit", 50)

	var operations []models.MintOperation
	if err := app.DB.FindMany(models.CollectionMintOperations, filter, &operations); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list operations")
	}
	if limit > 0 && len(operations) > limit {
		operations = operations[len(operations)-limit:]
	}
	return c.JSON(fiber.Map{"success": true, "operations": operations, "count": len(operations)})
}
