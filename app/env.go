package app

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func readConfigFromENV(envFile string) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil {
			log.Warn("[ENV] Error loading .env file: ", err.Error())
		}
	}

	if os.Getenv("MONGODB_URI") != "" {
		Config.MongoDB.URI = os.Getenv("MONGODB_URI")
	}
	if os.Getenv("MONGODB_DATABASE") != "" {
		Config.MongoDB.Database = os.Getenv("MONGODB_DATABASE")
	}
	if os.Getenv("MONGODB_TIMEOUT_MS") != "" {
		timeoutMillis, err := strconv.ParseInt(os.Getenv("MONGODB_TIMEOUT_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing MONGODB_TIMEOUT_MS: ", err.Error())
		} else {
			Config.MongoDB.TimeoutMillis = timeoutMillis
		}
	}

	// solana
	if os.Getenv("RPC_URL") != "" {
		Config.Solana.RPCURL = os.Getenv("RPC_URL")
	}
	if os.Getenv("BACKUP_RPC_URLS") != "" {
		Config.Solana.BackupRPCURLs = strings.Split(os.Getenv("BACKUP_RPC_URLS"), ",")
	}
	if os.Getenv("DAS_API_URL") != "" {
		Config.Solana.DASAPIURL = os.Getenv("DAS_API_URL")
	}
	if os.Getenv("PRIVATE_KEY") != "" {
		Config.Solana.PrivateKey = os.Getenv("PRIVATE_KEY")
	}
	if os.Getenv("SOLANA_MNEMONIC") != "" {
		Config.Solana.Mnemonic = os.Getenv("SOLANA_MNEMONIC")
	}
	if os.Getenv("SOLANA_RPC_TIMEOUT_MS") != "" {
		timeoutMillis, err := strconv.ParseInt(os.Getenv("SOLANA_RPC_TIMEOUT_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing SOLANA_RPC_TIMEOUT_MS: ", err.Error())
		} else {
			Config.Solana.RPCTimeoutMillis = timeoutMillis
		}
	}
	if os.Getenv("TREE_CONFIG_OFFSETS") != "" {
		var offsets []int64
		for _, field := range strings.Split(os.Getenv("TREE_CONFIG_OFFSETS"), ",") {
			offset, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
			if err != nil {
				log.Warn("[ENV] Error parsing TREE_CONFIG_OFFSETS: ", err.Error())
				offsets = nil
				break
			}
			offsets = append(offsets, offset)
		}
		if len(offsets) > 0 {
			Config.Solana.TreeConfigOffsets = offsets
		}
	}

	// mint
	if os.Getenv("MINT_MAX_ATTEMPTS") != "" {
		maxAttempts, err := strconv.ParseInt(os.Getenv("MINT_MAX_ATTEMPTS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing MINT_MAX_ATTEMPTS: ", err.Error())
		} else {
			Config.Mint.MaxAttempts = maxAttempts
		}
	}
	if os.Getenv("DEFAULT_RECIPIENT") != "" {
		Config.Mint.DefaultRecipient = os.Getenv("DEFAULT_RECIPIENT")
	}

	// indexing monitor
	if os.Getenv("INDEXING_MONITOR_ENABLED") != "" {
		enabled, err := strconv.ParseBool(os.Getenv("INDEXING_MONITOR_ENABLED"))
		if err != nil {
			log.Warn("[ENV] Error parsing INDEXING_MONITOR_ENABLED: ", err.Error())
		} else {
			Config.IndexingMonitor.Enabled = enabled
		}
	}
	if os.Getenv("INDEXING_MONITOR_INTERVAL_MS") != "" {
		intervalMillis, err := strconv.ParseInt(os.Getenv("INDEXING_MONITOR_INTERVAL_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing INDEXING_MONITOR_INTERVAL_MS: ", err.Error())
		} else {
			Config.IndexingMonitor.IntervalMillis = intervalMillis
		}
	}
	if os.Getenv("INDEXING_MONITOR_MAX_RETRIES") != "" {
		maxRetries, err := strconv.ParseInt(os.Getenv("INDEXING_MONITOR_MAX_RETRIES"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing INDEXING_MONITOR_MAX_RETRIES: ", err.Error())
		} else {
			Config.IndexingMonitor.MaxRetries = maxRetries
		}
	}

	// health check
	if os.Getenv("HEALTH_CHECK_INTERVAL_MS") != "" {
		intervalMillis, err := strconv.ParseInt(os.Getenv("HEALTH_CHECK_INTERVAL_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing HEALTH_CHECK_INTERVAL_MS: ", err.Error())
		} else {
			Config.HealthCheck.IntervalMillis = intervalMillis
		}
	}
	if os.Getenv("HEALTH_CHECK_READ_LAST_HEALTH") != "" {
		readLastHealth, err := strconv.ParseBool(os.Getenv("HEALTH_CHECK_READ_LAST_HEALTH"))
		if err != nil {
			log.Warn("[ENV] Error parsing HEALTH_CHECK_READ_LAST_HEALTH: ", err.Error())
		} else {
			Config.HealthCheck.ReadLastHealth = readLastHealth
		}
	}

	// http server
	if os.Getenv("HTTP_SERVER_ENABLED") != "" {
		enabled, err := strconv.ParseBool(os.Getenv("HTTP_SERVER_ENABLED"))
		if err != nil {
			log.Warn("[ENV] Error parsing HTTP_SERVER_ENABLED: ", err.Error())
		} else {
			Config.HTTPServer.Enabled = enabled
		}
	}
	if os.Getenv("PORT") != "" {
		port, err := strconv.ParseInt(os.Getenv("PORT"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing PORT: ", err.Error())
		} else {
			Config.HTTPServer.Port = port
		}
	}

	// logging
	if Config.Logger.Level == "" {
		logLevel := os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			log.Warn("[ENV] Setting LogLevel to info")
			Config.Logger.Level = "info"
		} else {
			Config.Logger.Level = logLevel
		}
	}

	// google secret manager
	if !Config.GoogleSecretManager.Enabled && os.Getenv("GOOGLE_SECRET_MANAGER_ENABLED") != "" {
		enabled, err := strconv.ParseBool(os.Getenv("GOOGLE_SECRET_MANAGER_ENABLED"))
		if err != nil {
			log.Warn("[ENV] Error parsing GOOGLE_SECRET_MANAGER_ENABLED: ", err.Error())
		} else {
			Config.GoogleSecretManager.Enabled = enabled
		}
	}
	if Config.GoogleSecretManager.ProjectId == "" {
		Config.GoogleSecretManager.ProjectId = os.Getenv("GOOGLE_PROJECT_ID")
	}
	if Config.GoogleSecretManager.SolanaSecretName == "" {
		Config.GoogleSecretManager.SolanaSecretName = os.Getenv("GOOGLE_SOLANA_SECRET_NAME")
	}
}
