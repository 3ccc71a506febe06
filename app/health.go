package app

import (
	"os"
	"sync"
	"time"

	"github.com/evseew/PEcoinDashboard-Backend/models"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	HealthCheckName = "HEALTH CHECK"
)

type HealthCheckRunner struct {
	signerAddress string
	hostname      string
	services      []Service
}

func (x *HealthCheckRunner) Run() {
	x.PostHealth()
}

func (x *HealthCheckRunner) Status() models.RunnerStatus {
	return models.RunnerStatus{}
}

func (x *HealthCheckRunner) SetServices(services []Service) {
	x.services = services
}

func (x *HealthCheckRunner) FindLastHealth() (models.Health, error) {
	var health models.Health
	filter := bson.M{
		"signer_address": x.signerAddress,
		"hostname":       x.hostname,
	}
	err := DB.FindOne(models.CollectionHealthChecks, filter, &health)
	return health, err
}

func (x *HealthCheckRunner) ServiceHealths() []models.ServiceHealth {
	var serviceHealths []models.ServiceHealth
	for _, service := range x.services {
		health := service.Health()
		if health.Name == models.EmptyServiceName {
			continue
		}
		serviceHealths = append(serviceHealths, health)
	}
	return serviceHealths
}

func (x *HealthCheckRunner) PostHealth() bool {
	log.Debug("[HEALTH CHECK] Posting health")

	filter := bson.M{
		"signer_address": x.signerAddress,
		"hostname":       x.hostname,
	}

	onInsert := bson.M{
		"signer_address": x.signerAddress,
		"hostname":       x.hostname,
	}

	onUpdate := bson.M{
		"service_healths": x.ServiceHealths(),
		"created_at":      time.Now(),
	}

	update := bson.M{"$set": onUpdate, "$setOnInsert": onInsert}

	err := DB.UpsertOne(models.CollectionHealthChecks, filter, update)

	if err != nil {
		log.Error("[HEALTH CHECK] Error posting health: ", err)
		return false
	}

	log.Info("[HEALTH CHECK] Posted health")
	return true
}

func NewHealthCheck(signerAddress string, wg *sync.WaitGroup) (models.Service, *HealthCheckRunner) {
	log.Debug("[HEALTH CHECK] Initializing health check")

	hostname, err := os.Hostname()
	if err != nil {
		log.Fatal("[HEALTH CHECK] Error getting hostname: ", err)
	}

	x := &HealthCheckRunner{
		signerAddress: signerAddress,
		hostname:      hostname,
	}

	if Config.HealthCheck.ReadLastHealth {
		lastHealth, err := x.FindLastHealth()
		if err != nil {
			log.Info("[HEALTH CHECK] No previous health found for this signer and host")
		} else {
			log.Info("[HEALTH CHECK] Last health posted at: ", lastHealth.CreatedAt)
		}
	}

	log.Info("[HEALTH CHECK] Initialized health check")

	return NewRunnerService(HealthCheckName, x, wg, time.Duration(Config.HealthCheck.IntervalMillis)*time.Millisecond), x
}
