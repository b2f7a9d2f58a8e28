package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ModeAutomatic, cfg.Mode)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 30, cfg.TimerSeconds)
	assert.Equal(t, "recordings", cfg.VideoDir)
}

func TestSetupErrorWrapping(t *testing.T) {
	cause := errors.New("net::ERR_CONNECTION_REFUSED")
	err := &SetupError{Stage: "navigation", Err: cause}

	assert.Contains(t, err.Error(), "navigation")
	assert.ErrorIs(t, err, cause)
}
