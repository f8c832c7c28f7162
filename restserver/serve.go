// Copyright 2017-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/diffeo/go-clams/clams"
	"github.com/diffeo/go-clams/config"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
	"golang.org/x/sync/errgroup"
)

// NewHandler builds the complete HTTP handler Serve uses: the app
// routes, /metrics if enabled, and negroni middleware for panic
// recovery and access logging.
func NewHandler(app clams.App, cfg config.Config, logger *logrus.Logger) http.Handler {
	r := mux.NewRouter()
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}
	PopulateRouterWithOptions(r, app, Options{
		Logger:        logger,
		RequestLogger: cfg.RequestLogger(logger),
	})

	n := negroni.New()
	recovery := negroni.NewRecovery()
	recovery.Logger = logger
	recovery.PrintStack = false
	n.Use(recovery)
	n.Use(accessLog(logger))
	n.UseHandler(r)
	return n
}

// accessLog returns negroni middleware that logs one info-level entry
// per request.
func accessLog(logger *logrus.Logger) negroni.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
		start := time.Now()
		next(rw, req)
		entry := logger.WithFields(logrus.Fields{
			"method":   req.Method,
			"path":     req.URL.Path,
			"remote":   req.RemoteAddr,
			"duration": time.Since(start).String(),
		})
		if res, ok := rw.(negroni.ResponseWriter); ok {
			entry = entry.WithFields(logrus.Fields{
				"status": res.Status(),
				"bytes":  res.Size(),
			})
		}
		entry.Info("request")
	}
}

// Serve runs an HTTP server for app until ctx is canceled or the
// server fails.  On cancellation, in-flight requests get up to
// cfg.ShutdownTimeout to finish.
func Serve(ctx context.Context, app clams.App, cfg config.Config, logger *logrus.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	listener, err := net.Listen("tcp", cfg.Bind)
	if err != nil {
		return err
	}
	return ServeListener(ctx, listener, app, cfg, logger)
}

// ServeListener is Serve on an already-open listener, which it takes
// ownership of.
func ServeListener(ctx context.Context, listener net.Listener, app clams.App, cfg config.Config, logger *logrus.Logger) error {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	srv := &http.Server{
		Handler:      NewHandler(app, cfg, logger),
		ReadTimeout:  time.Duration(cfg.ReadTimeout),
		WriteTimeout: time.Duration(cfg.WriteTimeout),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("addr", listener.Addr().String()).Info("serving app")
		err := srv.Serve(listener)
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout))
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
