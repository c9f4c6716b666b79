package observability

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/midi2/internal/logging"
)

// InitLogger installs the runtime logging profile at level as the global
// logger, tagging every event with app.
func InitLogger(app string, level zerolog.Level) zerolog.Logger {
	cfg := logging.Resolve(logging.ProfileRuntime)
	cfg.Level = level
	logging.Apply(cfg)
	logger := log.Logger.With().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
