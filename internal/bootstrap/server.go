package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/skylink/config"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const probeInterval = 10 * time.Second

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
	health     *health.Server
}

// Run starts the HTTP API and the gRPC health server and blocks until ctx is
// canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler, db Pinger, log logrus.FieldLogger) error {
	s := newServers(cfg, handler)

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	go func() {
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	probeCtx, stopProbe := context.WithCancel(ctx)
	defer stopProbe()
	go s.probe(probeCtx, db, log)

	log.WithFields(logrus.Fields{"http": cfg.HTTP.Address, "grpc": cfg.GRPC.Address}).Info("servers started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.health.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, handler http.Handler) *Servers {
	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		health: healthSrv,
	}
}

// probe keeps the overall health status in line with database reachability.
func (s *Servers) probe(ctx context.Context, db Pinger, log logrus.FieldLogger) {
	ticker := time.NewTicker(probeInterval)
	defer ticker.Stop()

	last := healthpb.HealthCheckResponse_UNKNOWN
	for {
		status := healthpb.HealthCheckResponse_SERVING
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := db.Ping(pingCtx); err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
			if ctx.Err() == nil {
				log.WithError(err).Warn("database ping failed")
			}
		}
		cancel()

		if status != last {
			s.health.SetServingStatus("", status)
			last = status
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
