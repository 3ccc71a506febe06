package indexing

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/evseew/PEcoinDashboard-Backend/app"
	"github.com/evseew/PEcoinDashboard-Backend/app/mocks"
	"github.com/evseew/PEcoinDashboard-Backend/models"
	"github.com/evseew/PEcoinDashboard-Backend/solana/client"
	"github.com/evseew/PEcoinDashboard-Backend/webhook"
)

func init() {
	log.SetOutput(io.Discard)
}

func testNotifier() *webhook.Notifier {
	return webhook.NewNotifier(webhook.NotifierConfig{
		RetryAttempts: 1,
		RetryDelay:    time.Millisecond,
		Timeout:       time.Second,
	})
}

func newTestMonitor(t *testing.T, config MonitorConfig) (*Monitor, *client.MockDASClient, *mocks.MockDatabase) {
	mockDB := mocks.NewMockDatabase(t)
	mockDB.EXPECT().UpdateOne(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	app.DB = mockDB

	mockDAS := client.NewMockDASClient(t)
	return NewMonitor(mockDAS, testNotifier(), config, &sync.WaitGroup{}), mockDAS, mockDB
}

func TestStartMonitoringAtMostOnePerOperation(t *testing.T) {
	monitor, _, _ := newTestMonitor(t, MonitorConfig{Interval: time.Hour, MaxRetries: 3, CompletedCacheSize: 10})
	defer monitor.Stop()

	assert.True(t, monitor.StartMonitoring("op-1", "asset-1", JobMetadata{}))
	assert.False(t, monitor.StartMonitoring("op-1", "asset-1", JobMetadata{}))

	stats := monitor.GetStats()
	assert.Equal(t, 1, stats.ActiveCount)
	assert.True(t, stats.LoopRunning)
}

func TestStartMonitoringRejectsEmptyIds(t *testing.T) {
	monitor, _, _ := newTestMonitor(t, MonitorConfig{Interval: time.Hour, MaxRetries: 3, CompletedCacheSize: 10})

	assert.False(t, monitor.StartMonitoring("", "asset-1", JobMetadata{}))
	assert.False(t, monitor.StartMonitoring("op-1", "", JobMetadata{}))
	assert.Equal(t, 0, monitor.GetStats().ActiveCount)
}

func TestMonitorIndexedFlow(t *testing.T) {
	monitor, mockDAS, _ := newTestMonitor(t, MonitorConfig{Interval: 10 * time.Millisecond, MaxRetries: 5, CompletedCacheSize: 10})

	mockDAS.EXPECT().GetAsset("asset-1").Return(&client.DASAsset{Id: "asset-1"}, nil).Once()

	assert.True(t, monitor.StartMonitoring("op-1", "asset-1", JobMetadata{CollectionName: "Test"}))

	assert.Eventually(t, func() bool {
		snapshot, found := monitor.GetOperationStatus("op-1")
		return found && snapshot.Status == models.IndexingStatusIndexed
	}, time.Second, 5*time.Millisecond)

	snapshot, _ := monitor.GetOperationStatus("op-1")
	assert.Equal(t, 1, snapshot.Attempts)
	assert.Len(t, snapshot.History, 1)
	assert.True(t, snapshot.History[0].Indexed)

	stats := monitor.GetStats()
	assert.Equal(t, int64(1), stats.IndexedTotal)
	assert.Equal(t, 0, stats.ActiveCount)
	assert.Equal(t, 1, stats.CompletedCount)

	// loop exits once the active set drains
	assert.Eventually(t, func() bool {
		return !monitor.GetStats().LoopRunning
	}, time.Second, 5*time.Millisecond)
}

func TestMonitorTimeoutAfterMaxRetries(t *testing.T) {
	monitor, mockDAS, _ := newTestMonitor(t, MonitorConfig{Interval: 10 * time.Millisecond, MaxRetries: 3, CompletedCacheSize: 10})

	events := make(chan string, 10)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var envelope webhook.Envelope
		_ = json.NewDecoder(r.Body).Decode(&envelope)
		events <- envelope.Event
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	_, err := monitor.notifier.Register(models.Webhook{
		URL:    server.URL,
		Events: []string{models.EventIndexingTimeout},
		Active: true,
	})
	assert.NoError(t, err)

	mockDAS.EXPECT().GetAsset("asset-1").Return(nil, client.ErrAssetNotFound).Times(3)

	assert.True(t, monitor.StartMonitoring("op-1", "asset-1", JobMetadata{}))

	assert.Eventually(t, func() bool {
		snapshot, found := monitor.GetOperationStatus("op-1")
		return found && snapshot.Status == models.IndexingStatusTimeout
	}, time.Second, 5*time.Millisecond)

	snapshot, _ := monitor.GetOperationStatus("op-1")
	assert.Equal(t, 3, snapshot.Attempts)
	assert.Len(t, snapshot.History, 3)
	assert.Equal(t, int64(1), monitor.GetStats().TimeoutTotal)

	// exactly one timeout event reaches the webhook
	select {
	case event := <-events:
		assert.Equal(t, models.EventIndexingTimeout, event)
	case <-time.After(time.Second):
		t.Fatal("expected a timeout event")
	}
	select {
	case event := <-events:
		t.Fatalf("unexpected extra event %q", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMonitorErrorTerminal(t *testing.T) {
	monitor, mockDAS, _ := newTestMonitor(t, MonitorConfig{Interval: 10 * time.Millisecond, MaxRetries: 2, CompletedCacheSize: 10})

	mockDAS.EXPECT().GetAsset("asset-1").Return(nil, errors.New("read index down")).Times(2)

	assert.True(t, monitor.StartMonitoring("op-1", "asset-1", JobMetadata{}))

	assert.Eventually(t, func() bool {
		snapshot, found := monitor.GetOperationStatus("op-1")
		return found && snapshot.Status == models.IndexingStatusError
	}, time.Second, 5*time.Millisecond)

	snapshot, _ := monitor.GetOperationStatus("op-1")
	assert.Equal(t, "read index down", snapshot.History[len(snapshot.History)-1].Error)
	assert.Equal(t, int64(1), monitor.GetStats().ErrorTotal)
}

func TestStopMonitoringBeforeFirstTick(t *testing.T) {
	// interval long enough that no probe happens before the stop
	monitor, _, _ := newTestMonitor(t, MonitorConfig{Interval: 200 * time.Millisecond, MaxRetries: 3, CompletedCacheSize: 10})
	defer monitor.Stop()

	assert.True(t, monitor.StartMonitoring("op-1", "asset-1", JobMetadata{}))
	assert.True(t, monitor.StopMonitoring("op-1", "manual"))
	assert.False(t, monitor.StopMonitoring("op-1", "manual"))

	snapshot, found := monitor.GetOperationStatus("op-1")
	assert.True(t, found)
	assert.Equal(t, models.IndexingStatusStopped, snapshot.Status)
	assert.Equal(t, "manual", snapshot.StopReason)
	assert.Equal(t, 0, snapshot.Attempts)
}

func TestCompletedCacheEviction(t *testing.T) {
	monitor, _, _ := newTestMonitor(t, MonitorConfig{Interval: time.Hour, MaxRetries: 3, CompletedCacheSize: 2})
	defer monitor.Stop()

	for _, operationId := range []string{"op-1", "op-2", "op-3"} {
		assert.True(t, monitor.StartMonitoring(operationId, "asset-"+operationId, JobMetadata{}))
		assert.True(t, monitor.StopMonitoring(operationId, "manual"))
	}

	assert.Equal(t, 2, monitor.GetStats().CompletedCount)
	_, found := monitor.GetOperationStatus("op-1")
	assert.False(t, found)
	_, found = monitor.GetOperationStatus("op-3")
	assert.True(t, found)
}

func TestMonitorServiceLifecycle(t *testing.T) {
	wg := &sync.WaitGroup{}

	mockDB := mocks.NewMockDatabase(t)
	mockDB.EXPECT().UpdateOne(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	app.DB = mockDB

	monitor := NewMonitor(client.NewMockDASClient(t), testNotifier(), MonitorConfig{Interval: time.Hour, MaxRetries: 3, CompletedCacheSize: 10}, wg)

	wg.Add(1)
	go monitor.Start()

	assert.True(t, monitor.StartMonitoring("op-1", "asset-1", JobMetadata{}))

	health := monitor.Health()
	assert.True(t, health.Healthy)
	assert.Equal(t, MonitorName, health.Name)
	assert.Equal(t, "1", health.ActiveJobs)

	monitor.Stop()
	wg.Wait()

	snapshot, found := monitor.GetOperationStatus("op-1")
	assert.True(t, found)
	assert.Equal(t, models.IndexingStatusStopped, snapshot.Status)
	assert.Equal(t, "shutdown", snapshot.StopReason)
}
