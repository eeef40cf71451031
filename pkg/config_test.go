package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("SERVER_CONFIG", filepath.Join(t.TempDir(), "does-not-exist.ini"))

	config := LoadConfig()
	assert.Equal(t, ":8080", config.ListenAddress)
	assert.Equal(t, ":8081", config.MetricsAddress)
	assert.Equal(t, "info", config.LogLevel)
	assert.False(t, config.AutoRequeueOnPartnerLeave)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.ini")
	contents := `[server]
listen_address = :9090
log_level = debug
auto_requeue_on_partner_leave = true
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	t.Setenv("SERVER_CONFIG", path)

	config := LoadConfig()
	assert.Equal(t, ":9090", config.ListenAddress)
	assert.Equal(t, ":8081", config.MetricsAddress, "Unset keys keep their defaults")
	assert.Equal(t, "debug", config.LogLevel)
	assert.True(t, config.AutoRequeueOnPartnerLeave)
}
