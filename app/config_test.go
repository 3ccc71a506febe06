package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evseew/PEcoinDashboard-Backend/models"
)

func TestApplyDefaults(t *testing.T) {
	Config = models.Config{}
	Config.Solana.RPCURL = "https://rpc.example.com"

	applyDefaults()

	assert.Equal(t, int64(10000), Config.MongoDB.TimeoutMillis)
	assert.Equal(t, "https://rpc.example.com", Config.Solana.DASAPIURL)
	assert.Equal(t, []int64{80, 72, 88, 64}, Config.Solana.TreeConfigOffsets)
	assert.Equal(t, int64(3), Config.Mint.MaxAttempts)
	assert.Equal(t, int64(3000), Config.Mint.ConfirmPollMillis)
	assert.Equal(t, int64(30), Config.Mint.ConfirmPollAttempts)
	assert.Equal(t, int64(7000), Config.Mint.RetryDelayMillis)
	assert.Equal(t, int64(1000), Config.Mint.StaleBlockhashDelayMillis)
	assert.Equal(t, int64(30000), Config.IndexingMonitor.IntervalMillis)
	assert.Equal(t, int64(40), Config.IndexingMonitor.MaxRetries)
	assert.Equal(t, int64(3), Config.Webhook.RetryAttempts)
	assert.Equal(t, int64(1000), Config.Webhook.RetryDelayMillis)
	assert.Equal(t, int64(10000), Config.Webhook.TimeoutMillis)
	assert.Equal(t, int64(8080), Config.HTTPServer.Port)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	Config = models.Config{}
	Config.Solana.RPCURL = "https://rpc.example.com"
	Config.Solana.DASAPIURL = "https://das.example.com"
	Config.Solana.TreeConfigOffsets = []int64{16}
	Config.Mint.MaxAttempts = 5

	applyDefaults()

	assert.Equal(t, "https://das.example.com", Config.Solana.DASAPIURL)
	assert.Equal(t, []int64{16}, Config.Solana.TreeConfigOffsets)
	assert.Equal(t, int64(5), Config.Mint.MaxAttempts)
}
