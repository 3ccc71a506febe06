package app

import (
	"sync"
	"time"

	"github.com/evseew/PEcoinDashboard-Backend/models"
	log "github.com/sirupsen/logrus"
)

type Service = models.Service

// Runner is the unit of work executed by a RunnerService on every tick.
type Runner interface {
	Run()
	Status() models.RunnerStatus
}

type RunnerService struct {
	wg       *sync.WaitGroup
	name     string
	runner   Runner
	interval time.Duration

	stop     chan struct{}
	stopOnce sync.Once

	healthMu     sync.RWMutex
	lastSyncTime time.Time
}

func (x *RunnerService) Start() {
	log.Infof("[%s] Starting service", x.name)
	stop := false
	for !stop {
		log.Infof("[%s] Starting run", x.name)

		x.healthMu.Lock()
		x.lastSyncTime = time.Now()
		x.healthMu.Unlock()

		x.runner.Run()

		log.Infof("[%s] Finished run, sleeping for %s", x.name, x.interval)

		select {
		case <-x.stop:
			stop = true
			log.Infof("[%s] Stopped service", x.name)
		case <-time.After(x.interval):
		}
	}
	x.wg.Done()
}

func (x *RunnerService) Health() models.ServiceHealth {
	x.healthMu.RLock()
	lastSyncTime := x.lastSyncTime
	x.healthMu.RUnlock()

	status := x.runner.Status()

	return models.ServiceHealth{
		Name:         x.name,
		LastSyncTime: lastSyncTime,
		NextSyncTime: lastSyncTime.Add(x.interval),
		BlockHeight:  status.BlockHeight,
		ActiveJobs:   status.ActiveJobs,
		Healthy:      true,
	}
}

func (x *RunnerService) Stop() {
	log.Debugf("[%s] Stopping service", x.name)
	x.stopOnce.Do(func() {
		close(x.stop)
	})
}

func NewRunnerService(name string, runner Runner, wg *sync.WaitGroup, interval time.Duration) *RunnerService {
	if name == "" || runner == nil || wg == nil || interval == 0 {
		log.Error("[RUNNER] Invalid parameters for runner service")
		return nil
	}

	return &RunnerService{
		wg:       wg,
		name:     name,
		runner:   runner,
		interval: interval,
		stop:     make(chan struct{}),
	}
}
