// Copyright 2016-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package demoapp provides a complete demonstration CLAMS app served
// over HTTP.  The app splits each video and audio document into a
// fixed number of equal-length TimeFrames, and records the size of
// each readable image as a BoundingBox.
//
//     demoapp --config demoapp.yaml --bind :5000
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/diffeo/go-clams/config"
	"github.com/diffeo/go-clams/restserver"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "demoapp"
	app.Usage = "serve the fixed segmenter CLAMS app"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "YAML or TOML configuration file",
		},
		cli.StringFlag{
			Name:  "bind",
			Usage: "[ip]:port for HTTP REST interface",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "logrus level name",
		},
		cli.StringFlag{
			Name:  "log-format",
			Usage: "text or json",
		},
		cli.BoolFlag{
			Name:  "log-requests",
			Usage: "log all requests",
		},
		cli.BoolTFlag{
			Name:  "metrics",
			Usage: "serve Prometheus metrics at /metrics",
		},
		cli.DurationFlag{
			Name:  "shutdown-timeout",
			Usage: "time to wait for requests on shutdown",
		},
	}
	app.Action = func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		logger, err := cfg.Logger()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return restserver.Serve(ctx, newSegmenter(logger), cfg, logger)
	}
	return app
}

// loadConfig reads the --config file, if any, and applies the flags
// that were given explicitly on top of it.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return cfg, err
		}
	}
	if c.IsSet("bind") {
		cfg.Bind = c.String("bind")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	if c.IsSet("log-requests") {
		cfg.LogRequests = c.Bool("log-requests")
	}
	if c.IsSet("metrics") {
		cfg.Metrics = c.BoolT("metrics")
	}
	if c.IsSet("shutdown-timeout") {
		cfg.ShutdownTimeout = config.Duration(c.Duration("shutdown-timeout"))
	}
	return cfg, cfg.Validate()
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("demoapp failed")
	}
}
