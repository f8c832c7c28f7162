// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/diffeo/go-clams/config"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() config.Config {
	cfg := config.Default()
	cfg.Bind = "127.0.0.1:0"
	cfg.ShutdownTimeout = config.Duration(5 * time.Second)
	return cfg
}

func TestServeListener(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	logger, _ := logtest.NewNullLogger()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ServeListener(ctx, listener, testApp{}, defaultConfig(), logger)
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/")
	if assert.NoError(t, err) {
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeBadConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.LogFormat = "xml"
	err := Serve(context.Background(), testApp{}, cfg, nil)
	assert.Error(t, err)
}
