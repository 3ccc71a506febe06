package indexing

import (
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/evseew/PEcoinDashboard-Backend/app"
	"github.com/evseew/PEcoinDashboard-Backend/models"
	"github.com/evseew/PEcoinDashboard-Backend/solana/client"
	"github.com/evseew/PEcoinDashboard-Backend/webhook"
)

const MonitorName = "INDEXING MONITOR"

// MonitorConfig carries the poll cadence and retention knobs. Tests
// pass small values; production values come from MonitorConfigFromApp.
type MonitorConfig struct {
	Interval           time.Duration
	MaxRetries         int
	CompletedCacheSize int
}

func MonitorConfigFromApp() MonitorConfig {
	return MonitorConfig{
		Interval:           time.Duration(app.Config.IndexingMonitor.IntervalMillis) * time.Millisecond,
		MaxRetries:         int(app.Config.IndexingMonitor.MaxRetries),
		CompletedCacheSize: int(app.Config.IndexingMonitor.CompletedCacheSize),
	}
}

// JobMetadata is the mint context carried alongside a monitoring job,
// echoed back in events.
type JobMetadata struct {
	TreeAddress    string `json:"treeAddress,omitempty"`
	LeafIndex      *int64 `json:"leafIndex,omitempty"`
	CollectionName string `json:"collectionName,omitempty"`
	Recipient      string `json:"recipient,omitempty"`
}

type job struct {
	OperationId string
	AssetId     string
	Metadata    JobMetadata
	Status      string
	StartedAt   time.Time
	CompletedAt *time.Time
	Attempts    int
	History     []models.IndexingCheck
	StopReason  string
}

// JobSnapshot is the read-only view handed to callers.
type JobSnapshot struct {
	OperationId string                 `json:"operationId"`
	AssetId     string                 `json:"assetId"`
	Metadata    JobMetadata            `json:"metadata"`
	Status      string                 `json:"status"`
	StartedAt   time.Time              `json:"startedAt"`
	CompletedAt *time.Time             `json:"completedAt,omitempty"`
	Attempts    int                    `json:"attempts"`
	History     []models.IndexingCheck `json:"history"`
	StopReason  string                 `json:"stopReason,omitempty"`
}

// MonitorStats is the aggregate view over the monitor's lifetime.
type MonitorStats struct {
	ActiveCount         int     `json:"activeCount"`
	CompletedCount      int     `json:"completedCount"`
	LoopRunning         bool    `json:"loopRunning"`
	IndexedTotal        int64   `json:"indexedTotal"`
	TimeoutTotal        int64   `json:"timeoutTotal"`
	ErrorTotal          int64   `json:"errorTotal"`
	StoppedTotal        int64   `json:"stoppedTotal"`
	AverageIndexingSecs float64 `json:"averageIndexingSecs"`
}

// Monitor polls the read index for every active mint operation until
// the asset turns up, the attempt budget runs out, or the job is
// stopped. One shared loop serves all jobs; it starts with the first
// job and exits when the active set drains.
type Monitor struct {
	mu             sync.Mutex
	active         map[string]*job
	completed      map[string]*job
	completedOrder []string
	loopRunning    bool

	das      client.DASClient
	notifier *webhook.Notifier
	config   MonitorConfig

	indexedTotal      int64
	timeoutTotal      int64
	errorTotal        int64
	stoppedTotal      int64
	totalIndexingSecs float64

	stop     chan struct{}
	stopOnce sync.Once
	wg       *sync.WaitGroup
	logger   *log.Entry
}

func NewMonitor(dasClient client.DASClient, notifier *webhook.Notifier, config MonitorConfig, wg *sync.WaitGroup) *Monitor {
	return &Monitor{
		active:    map[string]*job{},
		completed: map[string]*job{},
		das:       dasClient,
		notifier:  notifier,
		config:    config,
		stop:      make(chan struct{}),
		wg:        wg,
		logger:    log.WithField("module", "indexing"),
	}
}

// StartMonitoring registers a job for an operation. At most one job per
// operation id: a second call while one is active is a logged no-op.
func (m *Monitor) StartMonitoring(operationId string, assetId string, metadata JobMetadata) bool {
	if operationId == "" || assetId == "" {
		return false
	}

	m.mu.Lock()
	if _, exists := m.active[operationId]; exists {
		m.mu.Unlock()
		m.logger.
			WithField("operation_id", operationId).
			Warn("[INDEXING MONITOR] operation is already being monitored")
		return false
	}
	m.active[operationId] = &job{
		OperationId: operationId,
		AssetId:     assetId,
		Metadata:    metadata,
		Status:      models.IndexingStatusPending,
		StartedAt:   time.Now(),
	}
	m.ensureLoopLocked()
	m.mu.Unlock()

	m.logger.
		WithField("operation_id", operationId).
		WithField("asset_id", assetId).
		Info("[INDEXING MONITOR] started monitoring")

	m.updateOperation(operationId, bson.M{"indexing_status": models.IndexingStatusPending})
	m.notifier.NotifyEvent(models.EventMonitoringStarted, map[string]interface{}{
		"operationId": operationId,
		"assetId":     assetId,
		"metadata":    metadata,
	})
	return true
}

// StopMonitoring cancels a job before its next tick. Idempotent; false
// when no active job exists for the operation.
func (m *Monitor) StopMonitoring(operationId string, reason string) bool {
	m.mu.Lock()
	active, ok := m.active[operationId]
	if !ok {
		m.mu.Unlock()
		return false
	}
	delete(m.active, operationId)
	now := time.Now()
	active.Status = models.IndexingStatusStopped
	active.StopReason = reason
	active.CompletedAt = &now
	m.retireLocked(active)
	m.stoppedTotal++
	m.mu.Unlock()

	m.logger.
		WithField("operation_id", operationId).
		WithField("reason", reason).
		Info("[INDEXING MONITOR] stopped monitoring")

	m.updateOperation(operationId, bson.M{"indexing_status": models.IndexingStatusStopped})
	m.notifier.NotifyEvent(models.EventMonitoringStopped, map[string]interface{}{
		"operationId": operationId,
		"assetId":     active.AssetId,
		"reason":      reason,
	})
	return true
}

// GetOperationStatus looks an operation up in the active set, then the
// completed cache.
func (m *Monitor) GetOperationStatus(operationId string) (JobSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if active, ok := m.active[operationId]; ok {
		return snapshotOf(active), true
	}
	if done, ok := m.completed[operationId]; ok {
		return snapshotOf(done), true
	}
	return JobSnapshot{}, false
}

func (m *Monitor) GetActiveOperations() []JobSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshots := make([]JobSnapshot, 0, len(m.active))
	for _, active := range m.active {
		snapshots = append(snapshots, snapshotOf(active))
	}
	return snapshots
}

func (m *Monitor) GetStats() MonitorStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := MonitorStats{
		ActiveCount:    len(m.active),
		CompletedCount: len(m.completed),
		LoopRunning:    m.loopRunning,
		IndexedTotal:   m.indexedTotal,
		TimeoutTotal:   m.timeoutTotal,
		ErrorTotal:     m.errorTotal,
		StoppedTotal:   m.stoppedTotal,
	}
	if m.indexedTotal > 0 {
		stats.AverageIndexingSecs = m.totalIndexingSecs / float64(m.indexedTotal)
	}
	return stats
}

// ensureLoopLocked starts the shared poll loop if it is not running.
// Caller holds m.mu.
func (m *Monitor) ensureLoopLocked() {
	if m.loopRunning {
		return
	}
	m.loopRunning = true
	go m.loop()
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			m.mu.Lock()
			m.loopRunning = false
			m.mu.Unlock()
			return
		case <-ticker.C:
			m.mu.Lock()
			if len(m.active) == 0 {
				m.loopRunning = false
				m.mu.Unlock()
				m.logger.Debug("[INDEXING MONITOR] no active jobs, poll loop exiting")
				return
			}
			batch := make([]*job, 0, len(m.active))
			for _, active := range m.active {
				batch = append(batch, active)
			}
			m.mu.Unlock()

			var probes sync.WaitGroup
			for _, active := range batch {
				probes.Add(1)
				go func(active *job) {
					defer probes.Done()
					m.checkJob(active)
				}(active)
			}
			probes.Wait()
		}
	}
}

// checkJob runs one probe for one job and applies the outcome, unless
// the job was stopped while the probe was in flight.
func (m *Monitor) checkJob(active *job) {
	probeStart := time.Now()
	asset, err := m.das.GetAsset(active.AssetId)
	responseMillis := time.Since(probeStart).Milliseconds()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active[active.OperationId] != active {
		// stopped mid-probe; discard
		return
	}

	active.Attempts++
	check := models.IndexingCheck{
		Attempt:        int64(active.Attempts),
		Timestamp:      time.Now(),
		ResponseMillis: responseMillis,
	}

	switch {
	case err == nil && asset != nil && asset.Id == active.AssetId:
		check.Indexed = true
		active.History = append(active.History, check)
		m.completeLocked(active, models.IndexingStatusIndexed)
	case err != nil && !errors.Is(err, client.ErrAssetNotFound):
		check.Error = err.Error()
		active.History = append(active.History, check)
		if active.Attempts >= m.config.MaxRetries {
			m.completeLocked(active, models.IndexingStatusError)
		}
	default:
		active.History = append(active.History, check)
		if active.Attempts >= m.config.MaxRetries {
			m.completeLocked(active, models.IndexingStatusTimeout)
		}
	}
}

// completeLocked moves a job to the completed cache and emits the
// terminal event. Caller holds m.mu.
func (m *Monitor) completeLocked(active *job, status string) {
	delete(m.active, active.OperationId)
	now := time.Now()
	active.Status = status
	active.CompletedAt = &now
	m.retireLocked(active)

	elapsed := now.Sub(active.StartedAt).Seconds()
	update := bson.M{
		"indexing_status":  status,
		"indexing_history": active.History,
	}
	payload := map[string]interface{}{
		"operationId": active.OperationId,
		"assetId":     active.AssetId,
		"attempts":    active.Attempts,
		"elapsedSecs": elapsed,
		"metadata":    active.Metadata,
	}

	var event string
	switch status {
	case models.IndexingStatusIndexed:
		m.indexedTotal++
		m.totalIndexingSecs += elapsed
		update["phantom_ready"] = true
		event = models.EventIndexingCompleted
		m.logger.
			WithField("operation_id", active.OperationId).
			Infof("[INDEXING MONITOR] asset indexed after %d attempts (%.0fs)", active.Attempts, elapsed)
	case models.IndexingStatusTimeout:
		m.timeoutTotal++
		payload["recommendation"] = "asset may still become visible later, check again in 15-30 minutes"
		event = models.EventIndexingTimeout
		m.logger.
			WithField("operation_id", active.OperationId).
			Warnf("[INDEXING MONITOR] gave up after %d attempts", active.Attempts)
	default:
		m.errorTotal++
		if len(active.History) > 0 {
			payload["lastError"] = active.History[len(active.History)-1].Error
		}
		event = models.EventIndexingError
		m.logger.
			WithField("operation_id", active.OperationId).
			Error("[INDEXING MONITOR] probing failed permanently")
	}

	m.updateOperation(active.OperationId, update)
	m.notifier.NotifyEvent(event, payload)
}

// retireLocked adds a job to the bounded completed cache, evicting the
// oldest entry when full. Caller holds m.mu.
func (m *Monitor) retireLocked(done *job) {
	if m.config.CompletedCacheSize <= 0 {
		return
	}
	if _, exists := m.completed[done.OperationId]; !exists {
		m.completedOrder = append(m.completedOrder, done.OperationId)
	}
	m.completed[done.OperationId] = done
	for len(m.completedOrder) > m.config.CompletedCacheSize {
		oldest := m.completedOrder[0]
		m.completedOrder = m.completedOrder[1:]
		delete(m.completed, oldest)
	}
}

// updateOperation mirrors a state change into the operation store.
// Fire-and-forget: persistence failures are logged, never propagated.
func (m *Monitor) updateOperation(operationId string, fields bson.M) {
	go func() {
		err := app.DB.UpdateOne(
			models.CollectionMintOperations,
			bson.M{"operation_id": operationId},
			bson.M{"$set": fields},
		)
		if err != nil {
			m.logger.
				WithField("operation_id", operationId).
				WithError(err).
				Error("[INDEXING MONITOR] failed to update operation")
		}
	}()
}

func snapshotOf(source *job) JobSnapshot {
	history := make([]models.IndexingCheck, len(source.History))
	copy(history, source.History)
	return JobSnapshot{
		OperationId: source.OperationId,
		AssetId:     source.AssetId,
		Metadata:    source.Metadata,
		Status:      source.Status,
		StartedAt:   source.StartedAt,
		CompletedAt: source.CompletedAt,
		Attempts:    source.Attempts,
		History:     history,
		StopReason:  source.StopReason,
	}
}
