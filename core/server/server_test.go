package server_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fanout/core/server"
)

func getFreePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func waitForServer(t *testing.T, srv *server.Server) string {
	t.Helper()
	var url string
	require.Eventually(t, func() bool {
		url = "http://" + srv.Addr()
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)
	return url
}

func TestServer_RunServesAndStops(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0", server.WithShutdownTimeout(time.Second))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx, handler)() }()

	url := waitForServer(t, srv)
	resp, err := http.Get(url)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_StartTwice(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = srv.Start(ctx, http.NotFoundHandler()) }()
	waitForServer(t, srv)

	err := srv.Start(ctx, http.NotFoundHandler())
	assert.ErrorIs(t, err, server.ErrServerAlreadyRunning)
	require.NoError(t, srv.Stop())
}

func TestServer_StartInvalidAddress(t *testing.T) {
	t.Parallel()

	port := getFreePort(t)
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	require.NoError(t, err)
	defer ln.Close()

	srv := server.New(fmt.Sprintf("127.0.0.1:%d", port))
	err = srv.Start(context.Background(), http.NotFoundHandler())
	assert.ErrorIs(t, err, server.ErrHTTPServer)
}

func TestServer_StopWhenNotRunning(t *testing.T) {
	t.Parallel()

	srv := server.New(":0")
	assert.NoError(t, srv.Stop())
	assert.Equal(t, ":0", srv.Addr())
}

func TestServer_OnShutdownEndsStreams(t *testing.T) {
	t.Parallel()

	stop := make(chan struct{})
	var hooked atomic.Bool
	srv := server.New("127.0.0.1:0",
		server.WithShutdownTimeout(2*time.Second),
		server.WithOnShutdown(func() {
			hooked.Store(true)
			close(stop)
		}),
		server.WithOnShutdown(nil),
	)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stream" {
			return
		}
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		<-stop
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx, handler)() }()

	url := waitForServer(t, srv)
	resp, err := http.Get(url + "/stream")
	require.NoError(t, err)
	defer resp.Body.Close()

	start := time.Now()
	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, hooked.Load())
	assert.Less(t, time.Since(start), 2*time.Second, "shutdown must not wait for the stream timeout")
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("creates server from config with defaults", func(t *testing.T) {
		srv, err := server.NewFromConfig(server.DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("allows overriding config values with options", func(t *testing.T) {
		cfg := server.Config{Addr: ":8080", ShutdownTimeout: 30 * time.Second}
		srv, err := server.NewFromConfig(cfg, server.WithShutdownTimeout(10*time.Second))
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("fails without address", func(t *testing.T) {
		srv, err := server.NewFromConfig(server.Config{ReadTimeout: 10 * time.Second})
		assert.ErrorIs(t, err, server.ErrMissingAddress)
		assert.Nil(t, srv)
	})

	t.Run("skips TLS if cert or key missing", func(t *testing.T) {
		srv, err := server.NewFromConfig(server.Config{Addr: ":8443", TLSCertFile: "/tmp/cert.pem"})
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("fails on unreadable TLS files", func(t *testing.T) {
		srv, err := server.NewFromConfig(server.Config{
			Addr:        ":8443",
			TLSCertFile: "/nonexistent/cert.pem",
			TLSKeyFile:  "/nonexistent/key.pem",
		})
		assert.ErrorIs(t, err, server.ErrFailedLoadCert)
		assert.Nil(t, srv)
	})
}
