// Package logg centralizes zap construction and the field keys shared
// across packages, so log output stays greppable.
package logg

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Shared structured field keys.
const (
	Operation = "op"
	Session   = "session"
	URL       = "url"
	Selector  = "selector"
	Question  = "question"
	Reason    = "reason"
)

// New builds the console logger the tool writes its human-readable trace
// with. Debug widens the level; output goes to standard streams.
func New(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return cfg.Build()
}
