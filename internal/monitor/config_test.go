package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{MinPollInterval: 5 * time.Second, Port: 8000}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "dropbox", cfg.DropboxCmd, "empty command falls back to the default")
	assert.Equal(t, ":8000", cfg.Addr())
}

func TestConfig_ValidateRejectsBadValues(t *testing.T) {
	assert.Error(t, (&Config{MinPollInterval: -time.Second, Port: 8000}).Validate())
	assert.Error(t, (&Config{Port: 0}).Validate())
	assert.Error(t, (&Config{Port: 70000}).Validate())
}
