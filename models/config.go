package models

type Config struct {
	GoogleSecretManager GoogleSecretManagerConfig `yaml:"google_secret_manager" json:"google_secret_manager"`
	HealthCheck         HealthCheckConfig         `yaml:"health_check" json:"health_check"`
	Logger              LoggerConfig              `yaml:"logger" json:"logger"`
	MongoDB             MongoConfig               `yaml:"mongodb" json:"mongo_db"`
	Solana              SolanaConfig              `yaml:"solana" json:"solana"`
	Mint                MintConfig                `yaml:"mint" json:"mint"`
	IndexingMonitor     IndexingMonitorConfig     `yaml:"indexing_monitor" json:"indexing_monitor"`
	Webhook             WebhookConfig             `yaml:"webhook" json:"webhook"`
	HTTPServer          HTTPServerConfig          `yaml:"http_server" json:"http_server"`
	Collections         []CollectionConfig        `yaml:"collections" json:"collections"`
}

type GoogleSecretManagerConfig struct {
	Enabled          bool   `yaml:"enabled" json:"enabled"`
	ProjectId        string `yaml:"project_id" json:"project_id"`
	SolanaSecretName string `yaml:"solana_secret_name" json:"solana_secret_name"`
}

type HealthCheckConfig struct {
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
	ReadLastHealth bool  `yaml:"read_last_health" json:"read_last_health"`
}

type LoggerConfig struct {
	Level string `yaml:"level" json:"level"`
}

type MongoConfig struct {
	URI           string `yaml:"uri" json:"uri"`
	Database      string `yaml:"database" json:"database"`
	TimeoutMillis int64  `yaml:"timeout_ms" json:"timeout_ms"`
}

type SolanaConfig struct {
	RPCURL            string   `yaml:"rpc_url" json:"rpcurl"`
	BackupRPCURLs     []string `yaml:"backup_rpc_urls" json:"backup_rpc_urls"`
	DASAPIURL         string   `yaml:"das_api_url" json:"das_api_url"`
	PrivateKey        string   `yaml:"private_key" json:"private_key"`
	Mnemonic          string   `yaml:"mnemonic" json:"mnemonic"`
	RPCTimeoutMillis  int64    `yaml:"rpc_timeout_ms" json:"rpc_timeout_ms"`

	// Candidate byte offsets of the num_minted counter inside a raw
	// TreeConfig account, tried in order. Layout varies across account
	// versions, so this is configuration rather than a constant.
	TreeConfigOffsets []int64 `yaml:"tree_config_offsets" json:"tree_config_offsets"`
}

type MintConfig struct {
	MaxAttempts               int64  `yaml:"max_attempts" json:"max_attempts"`
	ConfirmPollMillis         int64  `yaml:"confirm_poll_ms" json:"confirm_poll_ms"`
	ConfirmPollAttempts       int64  `yaml:"confirm_poll_attempts" json:"confirm_poll_attempts"`
	RetryDelayMillis          int64  `yaml:"retry_delay_ms" json:"retry_delay_ms"`
	StaleBlockhashDelayMillis int64  `yaml:"stale_blockhash_delay_ms" json:"stale_blockhash_delay_ms"`
	BatchLimit                int64  `yaml:"batch_limit" json:"batch_limit"`
	BatchPauseMillis          int64  `yaml:"batch_pause_ms" json:"batch_pause_ms"`
	DefaultRecipient          string `yaml:"default_recipient" json:"default_recipient"`
}

type IndexingMonitorConfig struct {
	Enabled            bool  `yaml:"enabled" json:"enabled"`
	IntervalMillis     int64 `yaml:"interval_ms" json:"interval_ms"`
	MaxRetries         int64 `yaml:"max_retries" json:"max_retries"`
	ProbeTimeoutMillis int64 `yaml:"probe_timeout_ms" json:"probe_timeout_ms"`
	CompletedCacheSize int64 `yaml:"completed_cache_size" json:"completed_cache_size"`
}

type WebhookConfig struct {
	RetryAttempts    int64 `yaml:"retry_attempts" json:"retry_attempts"`
	RetryDelayMillis int64 `yaml:"retry_delay_ms" json:"retry_delay_ms"`
	TimeoutMillis    int64 `yaml:"timeout_ms" json:"timeout_ms"`
}

type HTTPServerConfig struct {
	Enabled bool  `yaml:"enabled" json:"enabled"`
	Port    int64 `yaml:"port" json:"port"`
}

type CollectionConfig struct {
	Id                   string `yaml:"id" json:"id"`
	Name                 string `yaml:"name" json:"name"`
	Symbol               string `yaml:"symbol" json:"symbol"`
	TreeAddress          string `yaml:"tree_address" json:"tree_address"`
	CollectionAddress    string `yaml:"collection_address" json:"collection_address"`
	SellerFeeBasisPoints int64  `yaml:"seller_fee_basis_points" json:"seller_fee_basis_points"`
}
