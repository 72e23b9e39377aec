package app

import (
	"context"
	"os/signal"
	"syscall"

	apperrors "github.com/agbru/fencecalc/internal/errors"
	"github.com/agbru/fencecalc/internal/logging"
	"github.com/agbru/fencecalc/internal/server"
)

// runServe starts the HTTP API server and blocks until shutdown.
func (a *Application) runServe(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	logger := logging.NewDefaultLogger()
	srv := server.NewServer(a.Config.ListenAddr, a.Factory, logger)

	if err := srv.Start(ctx); err != nil {
		logger.Error("server exited with error", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
