package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HORNET-Storage/nostreats/lib/types"
)

func TestGetConfig_Defaults(t *testing.T) {
	viper.Reset()
	setDefaults()
	require.NoError(t, reloadConfigCache())

	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Platform.Pubkey)
	assert.Equal(t, types.DefaultZapAmounts, cfg.Platform.Amounts())
	assert.Equal(t, 500, cfg.Query.ListingLimit)
	assert.Equal(t, 200, cfg.Query.ReviewLimit)
	assert.Equal(t, 500, cfg.Query.ReceiptLimit)
	assert.Equal(t, 10, cfg.Query.TimeoutSeconds)
	assert.Equal(t, 5, cfg.Query.ListingTimeoutSeconds)
	assert.Equal(t, "data/logs", GetPath("logs"))
}

func TestUpdateConfig_RefreshesCache(t *testing.T) {
	viper.Reset()
	setDefaults()
	require.NoError(t, reloadConfigCache())

	require.NoError(t, UpdateConfig("platform.pubkey", "abc123"))
	require.NoError(t, UpdateConfig("query.timeout_seconds", 3))
	require.NoError(t, UpdateConfig("query.relays", []string{"wss://a.example", "wss://b.example"}))

	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.Platform.Pubkey)
	assert.Equal(t, 3, cfg.Query.TimeoutSeconds)
	assert.Equal(t, []string{"wss://a.example", "wss://b.example"}, cfg.Query.Relays)
}
