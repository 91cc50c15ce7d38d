package app

import (
	"io"
	"os"
	"time"

	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/config"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger: pretty console output in dev,
// JSON elsewhere.
func NewLogger(cfg config.AppConfig) zerolog.Logger {
	var w io.Writer = os.Stdout
	level := zerolog.InfoLevel

	if cfg.Env == "dev" {
		level = zerolog.DebugLevel
		console := zerolog.NewConsoleWriter()
		console.TimeFormat = time.DateTime
		console.Out = os.Stdout
		w = console
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("version", cfg.Version).
		Logger()
}
