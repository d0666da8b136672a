package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServeWithShutdownStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}

	done := make(chan error, 1)
	go func() {
		done <- serveWithShutdown(ctx, srv, time.Second, zap.NewNop())
	}()

	// Give the listener a moment, then signal shutdown.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not drain and stop after context cancellation")
	}
}

func TestServeWithShutdownReturnsListenError(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:-1"}

	err := serveWithShutdown(context.Background(), srv, time.Second, zap.NewNop())
	require.Error(t, err)
}
