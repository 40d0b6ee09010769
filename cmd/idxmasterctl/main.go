// Package main is idxmasterctl, a thin urfave/cli client for the
// index-master daemon's two client-facing operations: create-index and
// destroy-index. Grounded on the reference architecture's cmd/cli, which
// is likewise a small urfave/cli wrapper over its cluster's HTTP API —
// command set trimmed to what this core actually exposes.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package main

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	flagServer   = "server"
	flagSettings = "settings"
	flagMappings = "mappings"
	flagTimeout  = "timeout"
	flagCause    = "cause"
)

var serverFlag = cli.StringFlag{
	Name:   flagServer,
	Usage:  "index-master base URL, e.g. http://localhost:51080",
	Value:  "http://localhost:51080",
	EnvVar: "IDXMASTER_URL",
}

func main() {
	app := cli.NewApp()
	app.Name = "idxmasterctl"
	app.Usage = "create and destroy indices against an idxmasterd cluster"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{serverFlag}
	app.Commands = []cli.Command{
		createIndexCommand,
		destroyIndexCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

var createIndexCommand = cli.Command{
	Name:      "create-index",
	Usage:     "create a new index",
	ArgsUsage: "INDEX_NAME",
	Flags: []cli.Flag{
		cli.StringFlag{Name: flagCause, Usage: "human-readable reason for the request", Value: "idxmasterctl"},
		cli.StringSliceFlag{Name: flagSettings, Usage: "key=value settings, e.g. index.number_of_shards=3"},
		cli.StringSliceFlag{Name: flagMappings, Usage: "type=source mapping pairs"},
		cli.DurationFlag{Name: flagTimeout, Usage: "peer acknowledgment deadline", Value: 5 * time.Second},
	},
	Action: createIndexHandler,
}

var destroyIndexCommand = cli.Command{
	Name:      "destroy-index",
	Usage:     "destroy an existing index",
	ArgsUsage: "INDEX_NAME",
	Action:    destroyIndexHandler,
}

func createIndexHandler(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return cli.NewExitError("missing INDEX_NAME argument", 1)
	}

	payload := map[string]interface{}{
		"cause":    c.String(flagCause),
		"index":    name,
		"settings": toMap(c.StringSlice(flagSettings)),
		"mappings": toMap(c.StringSlice(flagMappings)),
		"timeout":  c.Duration(flagTimeout).String(),
	}
	return post(c, "/v1/indices", payload)
}

func destroyIndexHandler(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return cli.NewExitError("missing INDEX_NAME argument", 1)
	}
	return post(c, "/v1/indices/"+name+"/destroy", nil)
}

func post(c *cli.Context, path string, payload interface{}) error {
	server := strings.TrimRight(c.GlobalString(flagServer), "/")
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := http.Post(server+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Fprintf(c.App.Writer, "%s %d\n", color.GreenString("status"), resp.StatusCode)
		return nil
	}
	fmt.Fprintf(c.App.Writer, "%v\n", out)
	return nil
}

func toMap(pairs []string) map[string]string {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		out[kv[0]] = kv[1]
	}
	return out
}
