package app

import (
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/sanjose-despensas/backend/internal/config"
	"github.com/sanjose-despensas/backend/internal/logger"
)

const (
	// ModeAll runs the API server and the queue worker in one process.
	ModeAll = "all"
	// ModeAPI runs only the HTTP API server.
	ModeAPI = "api"
	// ModeWorker runs only the asynq worker.
	ModeWorker = "worker"
)

// Options controls how the runner builds and supervises services.
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	return opts
}
