package bootstrap

import (
	"context"
	"log/slog"

	"github.com/lunefall/rewardengine/internal/server"
)

// GracefulShutdown stops the HTTP server, letting in-flight resolutions
// finish. Grant transactions commit or roll back atomically on their own, so
// no service-level draining is needed beyond the server stop.
func GracefulShutdown(ctx context.Context, srv *server.Server) {
	slog.Info(LogMsgShuttingDownServer)

	if err := srv.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
