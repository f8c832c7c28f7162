// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/url"
	"os"
	"strings"

	"github.com/diffeo/go-clams/appmetadata"
	"github.com/diffeo/go-clams/mmif"
	"github.com/diffeo/go-clams/restclient"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var prettyFlag = cli.BoolFlag{
	Name:  "pretty",
	Usage: "indent JSON output",
}

var urlFlag = cli.StringFlag{
	Name:  "url",
	Value: "http://localhost:5000/",
	Usage: "base URL of the app service",
}

var sourceCommand = cli.Command{
	Name:      "source",
	Usage:     "print a new MMIF container holding the named documents",
	ArgsUsage: "[type:]path...",
	Flags:     []cli.Flag{prettyFlag},
	Action: func(c *cli.Context) error {
		return writeSource(c.App.Writer, c.Args(), c.Bool("pretty"))
	},
}

var schemaCommand = cli.Command{
	Name:  "schema",
	Usage: "print the JSON schema for app metadata",
	Flags: []cli.Flag{prettyFlag},
	Action: func(c *cli.Context) error {
		b, err := appmetadata.SchemaJSON(c.Bool("pretty"))
		if err != nil {
			return err
		}
		return writeLine(c.App.Writer, b)
	},
}

var metadataCommand = cli.Command{
	Name:  "metadata",
	Usage: "print the metadata of a running app",
	Flags: []cli.Flag{urlFlag, prettyFlag},
	Action: func(c *cli.Context) error {
		client, err := restclient.New(c.String("url"))
		if err != nil {
			return err
		}
		b, err := client.MetadataJSON(context.Background(), c.Bool("pretty"))
		if err != nil {
			return err
		}
		return writeLine(c.App.Writer, b)
	},
}

var annotateCommand = cli.Command{
	Name:  "annotate",
	Usage: "run a running app over an MMIF file",
	Flags: []cli.Flag{
		urlFlag,
		prettyFlag,
		cli.StringFlag{
			Name:  "in",
			Value: "-",
			Usage: "MMIF input file, or - for stdin",
		},
		cli.StringSliceFlag{
			Name:  "param, p",
			Usage: "name=value runtime parameter (may be repeated)",
		},
	},
	Action: func(c *cli.Context) error {
		params, err := parseParams(c.StringSlice("param"))
		if err != nil {
			return err
		}
		in, err := readInput(c.String("in"))
		if err != nil {
			return err
		}
		client, err := restclient.New(c.String("url"))
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"url":    c.String("url"),
			"params": params.Encode(),
		}).Debug("annotating")
		out, err := client.AnnotateJSON(context.Background(), in, params, c.Bool("pretty"))
		if err != nil {
			return err
		}
		return writeLine(c.App.Writer, out)
	},
}

// writeSource builds a container from document arguments, numbering
// the documents d1, d2, ... in order.
func writeSource(w io.Writer, sources []string, pretty bool) error {
	if len(sources) == 0 {
		return fmt.Errorf("no documents given")
	}
	m := mmif.New()
	for i, source := range sources {
		doc, err := mmif.NewDocumentFromFile(fmt.Sprintf("d%d", i+1), source)
		if err != nil {
			return err
		}
		if err = m.AddDocument(doc); err != nil {
			return err
		}
	}
	b, err := m.Serialize(pretty)
	if err != nil {
		return err
	}
	return writeLine(w, b)
}

// parseParams turns name=value strings into query parameters.
func parseParams(args []string) (url.Values, error) {
	params := make(url.Values)
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("parameter %q is not name=value", arg)
		}
		params.Add(parts[0], parts[1])
	}
	return params, nil
}

// readInput reads and checks an MMIF file, returning it
// re-serialized.
func readInput(path string) ([]byte, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m, err := mmif.FromBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%v: %v", path, err)
	}
	return m.Serialize(false)
}

func writeLine(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
