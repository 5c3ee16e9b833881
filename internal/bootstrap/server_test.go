package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/skylink/config"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestProbe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want healthpb.HealthCheckResponse_ServingStatus
	}{
		{"reachable", nil, healthpb.HealthCheckResponse_SERVING},
		{"down", errors.New("connection refused"), healthpb.HealthCheckResponse_NOT_SERVING},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()
			s := newServers(&config.Config{}, nil)

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})
			go func() {
				s.probe(ctx, stubPinger{err: tt.err}, logger)
				close(done)
			}()

			assert.Eventually(t, func() bool {
				resp, err := s.health.Check(context.Background(), &healthpb.HealthCheckRequest{})
				return err == nil && resp.Status == tt.want
			}, time.Second, 10*time.Millisecond)

			cancel()
			<-done
		})
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "127.0.0.1:0"}, GRPC: config.GRPCConfig{Address: "127.0.0.1:0"}}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- Run(ctx, cfg, nil, stubPinger{}, logger) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
