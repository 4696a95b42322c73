package app

import (
	"os"

	"parts-dispatch/internal/config"
	"parts-dispatch/internal/logx"
)

// NewLogger returns the process JSON logger at the configured level.
func NewLogger(cfg *config.Config) logx.Logger {
	return logx.NewJSON(os.Stdout, cfg.LogLevel).With(logx.String("service", "parts-dispatch"))
}
