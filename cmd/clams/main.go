// Copyright 2016-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package clams provides a command-line tool for working with CLAMS
// apps and MMIF files.
//
//     clams source video:/data/a.mp4 /data/b.txt > in.mmif
//     clams schema --pretty
//     clams metadata --url http://localhost:5000/
//     clams annotate --url http://localhost:5000/ --in in.mmif -p threshold=0.8
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "clams"
	app.Usage = "work with CLAMS apps and MMIF files"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "log-level",
			Value: "warning",
			Usage: "logrus level for diagnostics",
		},
	}
	app.Commands = []cli.Command{
		sourceCommand,
		schemaCommand,
		metadataCommand,
		annotateCommand,
	}
	app.Before = func(c *cli.Context) error {
		level, err := logrus.ParseLevel(c.String("log-level"))
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		return nil
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("clams failed")
	}
}
