package app

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"parts-dispatch/internal/logx"
	testlog "parts-dispatch/internal/testutil"
)

func TestGracefulShutdown_SkipsNilServers(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	srv := &http.Server{Addr: "127.0.0.1:0"}
	require.NotPanics(t, func() {
		gracefulShutdown(rec.Logger(), time.Second, srv, nil)
	})
	require.Empty(t, rec.Entries())
}

func TestStartServer_ReportsListenError(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	rec := testlog.New()
	errCh := make(chan error, 1)
	startServer(&http.Server{Addr: ln.Addr().String()}, "api", rec.Logger(), errCh)

	select {
	case err := <-errCh:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("expected listen error on a busy port")
	}
	require.True(t, rec.Has("listening"))
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cfg := testConfig()
	cfg.Port = freePort(t)

	b := testBuilder(t, cfg).WithDBConnect(nilPoolConnect)
	c, err := b.build(ctx)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- run(c) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(20 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func nilPoolConnect(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error) {
	return nil, nil
}
