package app

import (
	"os"

	"github.com/evseew/PEcoinDashboard-Backend/models"
	log "github.com/sirupsen/logrus"

	"gopkg.in/yaml.v2"
)

var (
	Config models.Config
)

func InitConfig(configFile string, envFile string) {
	if configFile != "" {
		yamlFile, err := os.ReadFile(configFile)
		if err != nil {
			log.Fatalf("[CONFIG] Error reading config file %q: %s\n", configFile, err.Error())
		}
		err = yaml.Unmarshal(yamlFile, &Config)
		if err != nil {
			log.Fatalf("[CONFIG] Error unmarshalling config file %q: %s\n", configFile, err.Error())
		}
	}
	readConfigFromENV(envFile)
	readKeysFromGSM()
	applyDefaults()
	validateConfig()
}

func applyDefaults() {
	if Config.MongoDB.TimeoutMillis == 0 {
		Config.MongoDB.TimeoutMillis = 10000
	}
	if Config.Solana.RPCTimeoutMillis == 0 {
		Config.Solana.RPCTimeoutMillis = 10000
	}
	if Config.Solana.DASAPIURL == "" {
		Config.Solana.DASAPIURL = Config.Solana.RPCURL
	}
	if len(Config.Solana.TreeConfigOffsets) == 0 {
		// empirically observed num_minted offsets across TreeConfig
		// account layout versions
		Config.Solana.TreeConfigOffsets = []int64{80, 72, 88, 64}
	}
	if Config.Mint.MaxAttempts == 0 {
		Config.Mint.MaxAttempts = 3
	}
	if Config.Mint.ConfirmPollMillis == 0 {
		Config.Mint.ConfirmPollMillis = 3000
	}
	if Config.Mint.ConfirmPollAttempts == 0 {
		Config.Mint.ConfirmPollAttempts = 30
	}
	if Config.Mint.RetryDelayMillis == 0 {
		Config.Mint.RetryDelayMillis = 7000
	}
	if Config.Mint.StaleBlockhashDelayMillis == 0 {
		Config.Mint.StaleBlockhashDelayMillis = 1000
	}
	if Config.Mint.BatchLimit == 0 {
		Config.Mint.BatchLimit = 50
	}
	if Config.Mint.BatchPauseMillis == 0 {
		Config.Mint.BatchPauseMillis = 2000
	}
	if Config.IndexingMonitor.IntervalMillis == 0 {
		Config.IndexingMonitor.IntervalMillis = 30000
	}
	if Config.IndexingMonitor.MaxRetries == 0 {
		Config.IndexingMonitor.MaxRetries = 40
	}
	if Config.IndexingMonitor.ProbeTimeoutMillis == 0 {
		Config.IndexingMonitor.ProbeTimeoutMillis = 10000
	}
	if Config.IndexingMonitor.CompletedCacheSize == 0 {
		Config.IndexingMonitor.CompletedCacheSize = 256
	}
	if Config.Webhook.RetryAttempts == 0 {
		Config.Webhook.RetryAttempts = 3
	}
	if Config.Webhook.RetryDelayMillis == 0 {
		Config.Webhook.RetryDelayMillis = 1000
	}
	if Config.Webhook.TimeoutMillis == 0 {
		Config.Webhook.TimeoutMillis = 10000
	}
	if Config.HealthCheck.IntervalMillis == 0 {
		Config.HealthCheck.IntervalMillis = 60000
	}
	if Config.HTTPServer.Port == 0 {
		Config.HTTPServer.Port = 8080
	}
}

func validateConfig() {
	if Config.MongoDB.URI == "" {
		log.Fatal("[CONFIG] MongoDB.URI is required")
	}
	if Config.MongoDB.Database == "" {
		log.Fatal("[CONFIG] MongoDB.Database is required")
	}
	if Config.Solana.RPCURL == "" {
		log.Fatal("[CONFIG] Solana.RPCURL is required")
	}
	if Config.Solana.PrivateKey == "" && Config.Solana.Mnemonic == "" {
		log.Fatal("[CONFIG] One of Solana.PrivateKey or Solana.Mnemonic is required")
	}
}
