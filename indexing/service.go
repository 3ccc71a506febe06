package indexing

import (
	"strconv"
	"time"

	"github.com/evseew/PEcoinDashboard-Backend/models"
)

// Start blocks until Stop so the monitor can be driven like the other
// services. The poll loop itself is lazy and owned by StartMonitoring.
func (m *Monitor) Start() {
	m.logger.Info("[INDEXING MONITOR] started")
	<-m.stop
	m.logger.Info("[INDEXING MONITOR] stopped")
	if m.wg != nil {
		m.wg.Done()
	}
}

func (m *Monitor) Health() models.ServiceHealth {
	stats := m.GetStats()
	return models.ServiceHealth{
		Name:         MonitorName,
		LastSyncTime: time.Now(),
		NextSyncTime: time.Now().Add(m.config.Interval),
		ActiveJobs:   strconv.Itoa(stats.ActiveCount),
		Healthy:      true,
	}
}

// Stop shuts the poll loop down and marks every remaining job stopped.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		m.mu.Lock()
		pending := make([]string, 0, len(m.active))
		for operationId := range m.active {
			pending = append(pending, operationId)
		}
		m.mu.Unlock()
		for _, operationId := range pending {
			m.StopMonitoring(operationId, "shutdown")
		}
		close(m.stop)
	})
}
