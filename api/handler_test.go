package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/evseew/PEcoinDashboard-Backend/app"
	"github.com/evseew/PEcoinDashboard-Backend/app/mocks"
	"github.com/evseew/PEcoinDashboard-Backend/common"
	"github.com/evseew/PEcoinDashboard-Backend/indexing"
	"github.com/evseew/PEcoinDashboard-Backend/models"
	"github.com/evseew/PEcoinDashboard-Backend/solana"
	"github.com/evseew/PEcoinDashboard-Backend/solana/client"
	"github.com/evseew/PEcoinDashboard-Backend/webhook"
)

func init() {
	log.SetOutput(io.Discard)
}

func newTestApp(t *testing.T) (*fiber.App, *Handler, *client.MockSolanaClient, *client.MockDASClient) {
	app.Config.Collections = []models.CollectionConfig{{
		Id:                   "col-1",
		Name:                 "Test Collection",
		Symbol:               "TST",
		TreeAddress:          "So11111111111111111111111111111111111111112",
		CollectionAddress:    "SysvarC1ock11111111111111111111111111111111",
		SellerFeeBasisPoints: 500,
	}}
	app.Config.Mint.BatchLimit = 10
	app.Config.IndexingMonitor.Enabled = false

	mockClient := client.NewMockSolanaClient(t)
	mockDAS := client.NewMockDASClient(t)
	signer, err := common.NewSignerFromMnemonic("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about")
	assert.NoError(t, err)

	minter := solana.NewMinter(mockClient, mockDAS, signer, solana.MinterConfig{
		MaxAttempts:         1,
		ConfirmPollInterval: time.Millisecond,
		ConfirmPollAttempts: 1,
		TreeConfigOffsets:   []int64{80},
	})
	notifier := webhook.NewNotifier(webhook.NotifierConfig{RetryAttempts: 1, RetryDelay: time.Millisecond, Timeout: time.Second})
	monitor := indexing.NewMonitor(mockDAS, notifier, indexing.MonitorConfig{Interval: time.Hour, MaxRetries: 3, CompletedCacheSize: 10}, &sync.WaitGroup{})

	handler := NewHandler(minter, monitor, notifier, nil)
	fiberApp := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	handler.RegisterRoutes(fiberApp)
	return fiberApp, handler, mockClient, mockDAS
}

func jsonRequest(method string, target string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestResolveCollection(t *testing.T) {
	newTestApp(t)

	collection, err := resolveCollection("col-1")
	assert.NoError(t, err)
	assert.Equal(t, "Test Collection", collection.Name)

	_, err = resolveCollection("missing")
	assert.Error(t, err)
}

func TestBuildMintRequest(t *testing.T) {
	newTestApp(t)
	collection, _ := resolveCollection("col-1")

	t.Run("Defaults From Collection", func(t *testing.T) {
		mintReq, err := buildMintRequest(collection, "SysvarRent111111111111111111111111111111111", models.NFTMetadata{
			Name: "Test",
			URI:  "https://example.com/1.json",
		})
		assert.NoError(t, err)
		assert.Equal(t, "TST", mintReq.Metadata.Symbol)
		assert.Equal(t, int64(500), mintReq.Metadata.SellerFeeBasisPoints)
		assert.Equal(t, collection.TreeAddress, mintReq.Tree.String())
	})

	t.Run("Missing Metadata", func(t *testing.T) {
		_, err := buildMintRequest(collection, "SysvarRent111111111111111111111111111111111", models.NFTMetadata{})
		assert.Error(t, err)
	})

	t.Run("Missing Recipient", func(t *testing.T) {
		app.Config.Mint.DefaultRecipient = ""
		_, err := buildMintRequest(collection, "", models.NFTMetadata{Name: "Test", URI: "u"})
		assert.Error(t, err)
	})

	t.Run("Invalid Recipient", func(t *testing.T) {
		_, err := buildMintRequest(collection, "not-a-key", models.NFTMetadata{Name: "Test", URI: "u"})
		assert.Error(t, err)
	})
}

func TestMintSingleValidation(t *testing.T) {
	fiberApp, _, _, _ := newTestApp(t)

	t.Run("Unknown Collection", func(t *testing.T) {
		res, err := fiberApp.Test(jsonRequest("POST", "/api/mint/single", mintSingleRequest{
			CollectionId: "missing",
			Recipient:    "SysvarRent111111111111111111111111111111111",
			Metadata:     models.NFTMetadata{Name: "Test", URI: "u"},
		}))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	})

	t.Run("Missing Metadata", func(t *testing.T) {
		res, err := fiberApp.Test(jsonRequest("POST", "/api/mint/single", mintSingleRequest{
			CollectionId: "col-1",
			Recipient:    "SysvarRent111111111111111111111111111111111",
		}))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	})
}

func TestMintSingleAccepted(t *testing.T) {
	fiberApp, _, mockClient, _ := newTestApp(t)

	done := make(chan struct{})
	mockDB := mocks.NewMockDatabase(t)
	mockDB.EXPECT().InsertOne(models.CollectionMintOperations, mock.Anything).Return(nil).Once()
	mockDB.EXPECT().UpdateOne(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	mockDB.EXPECT().XLock(mock.Anything).Return("lock-1", nil).Once()
	mockDB.EXPECT().Unlock("lock-1").Run(func(lockId string) { close(done) }).Return(nil).Once()
	app.DB = mockDB

	// background mint fails fast
	mockClient.EXPECT().GetLatestBlockhash().Return(sol.Hash{}, nil).Once()
	mockClient.EXPECT().SendTransaction(mock.Anything).
		Return(sol.Signature{}, assert.AnError).Once()

	res, err := fiberApp.Test(jsonRequest("POST", "/api/mint/single", mintSingleRequest{
		CollectionId: "col-1",
		Recipient:    "SysvarRent111111111111111111111111111111111",
		Metadata:     models.NFTMetadata{Name: "Test", URI: "https://example.com/1.json"},
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, res.StatusCode)

	var body struct {
		Success     bool   `json:"success"`
		OperationId string `json:"operationId"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.OperationId)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for background mint to finish")
	}
}

func TestProcessMintLocksTree(t *testing.T) {
	_, handler, mockClient, _ := newTestApp(t)

	collection, _ := resolveCollection("col-1")
	mintReq, err := buildMintRequest(collection, "SysvarRent111111111111111111111111111111111", models.NFTMetadata{
		Name: "Test",
		URI:  "https://example.com/1.json",
	})
	assert.NoError(t, err)

	t.Run("Holds Lock Around Mint", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		mockDB.EXPECT().XLock("mint-tree-" + collection.TreeAddress).Return("lock-1", nil).Once()
		mockClient.EXPECT().GetLatestBlockhash().Return(sol.Hash{}, nil).Once()
		mockClient.EXPECT().SendTransaction(mock.Anything).Return(sol.Signature{}, assert.AnError).Once()
		mockDB.EXPECT().UpdateOne(models.CollectionMintOperations, mock.Anything, mock.Anything).Return(nil).Once()
		mockDB.EXPECT().Unlock("lock-1").Return(nil).Once()

		handler.processMint("op-lock", mintReq, collection.Name)
	})

	t.Run("Fails Operation When Lock Unavailable", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		mockDB.EXPECT().XLock("mint-tree-" + collection.TreeAddress).Return("", assert.AnError).Once()
		mockDB.EXPECT().UpdateOne(models.CollectionMintOperations, mock.Anything, mock.Anything).Return(nil).Once()

		handler.processMint("op-lock", mintReq, collection.Name)
	})
}

func TestMintBatchValidation(t *testing.T) {
	fiberApp, _, _, _ := newTestApp(t)

	t.Run("Empty Batch", func(t *testing.T) {
		res, err := fiberApp.Test(jsonRequest("POST", "/api/mint/batch", mintBatchRequest{CollectionId: "col-1"}))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	})

	t.Run("Over Limit", func(t *testing.T) {
		var body mintBatchRequest
		body.CollectionId = "col-1"
		for i := 0; i < 11; i++ {
			body.Items = append(body.Items, struct {
				Recipient string             `json:"recipient"`
				Metadata  models.NFTMetadata `json:"metadata"`
			}{Recipient: "SysvarRent111111111111111111111111111111111", Metadata: models.NFTMetadata{Name: "T", URI: "u"}})
		}
		res, err := fiberApp.Test(jsonRequest("POST", "/api/mint/batch", body))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	})
}

func TestWebhookRoutes(t *testing.T) {
	fiberApp, _, _, _ := newTestApp(t)

	res, err := fiberApp.Test(jsonRequest("POST", "/api/webhooks", registerWebhookRequest{
		URL:    "http://example.com/hook",
		Events: []string{models.EventIndexingCompleted},
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)

	var created struct {
		Webhook models.Webhook `json:"webhook"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	assert.NotEmpty(t, created.Webhook.WebhookId)
	assert.True(t, created.Webhook.Active)

	res, err = fiberApp.Test(httptest.NewRequest("GET", "/api/webhooks", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, err = fiberApp.Test(httptest.NewRequest("DELETE", "/api/webhooks/"+created.Webhook.WebhookId, nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, err = fiberApp.Test(httptest.NewRequest("DELETE", "/api/webhooks/"+created.Webhook.WebhookId, nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestMonitoringRoutes(t *testing.T) {
	fiberApp, handler, _, _ := newTestApp(t)

	mockDB := mocks.NewMockDatabase(t)
	mockDB.EXPECT().UpdateOne(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	app.DB = mockDB

	res, err := fiberApp.Test(httptest.NewRequest("GET", "/api/monitoring/stats", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, err = fiberApp.Test(httptest.NewRequest("GET", "/api/monitoring/operations/missing", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)

	assert.True(t, handler.monitor.StartMonitoring("op-1", "asset-1", indexing.JobMetadata{}))
	defer handler.monitor.Stop()

	res, err = fiberApp.Test(httptest.NewRequest("GET", "/api/monitoring/operations/op-1", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, err = fiberApp.Test(jsonRequest("DELETE", "/api/monitoring/operations/op-1", fiber.Map{}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, err = fiberApp.Test(jsonRequest("DELETE", "/api/monitoring/operations/op-1", fiber.Map{}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestIndexingStatusRoute(t *testing.T) {
	fiberApp, _, _, mockDAS := newTestApp(t)

	mockDAS.EXPECT().GetAsset("asset-1").Return(nil, client.ErrAssetNotFound).Once()

	res, err := fiberApp.Test(httptest.NewRequest("GET", "/api/indexing/status/asset-1", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	var body struct {
		Indexed      bool `json:"indexed"`
		PhantomReady bool `json:"phantomReady"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.False(t, body.Indexed)
	assert.False(t, body.PhantomReady)
}

func TestWalletBalanceRoute(t *testing.T) {
	fiberApp, _, mockClient, _ := newTestApp(t)

	mockClient.EXPECT().GetBalance(mock.Anything).Return(uint64(2_000_000_000), nil).Once()

	res, err := fiberApp.Test(httptest.NewRequest("GET", "/api/wallet/balance?items=3", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	var body struct {
		Wallet solana.WalletBalance `json:"wallet"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, 2.0, body.Wallet.Balance)
	assert.True(t, body.Wallet.CanAfford)
	assert.Equal(t, 3, body.Wallet.ForItemCount)
}

func TestHealthRoute(t *testing.T) {
	fiberApp, _, _, _ := newTestApp(t)

	res, err := fiberApp.Test(httptest.NewRequest("GET", "/health", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}
