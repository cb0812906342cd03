// Copyright 2026 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/urfave/cli"

	dconfig "github.com/mendersoftware/attendancegw/config"
	"github.com/mendersoftware/attendancegw/server"
	store "github.com/mendersoftware/attendancegw/store/mongo"
	"github.com/mendersoftware/attendancegw/store/redis"
)

var Version string = "unknown"

// EnvPrefix is the prefix of environment variables overriding settings
const EnvPrefix = "ATTENDANCEGW"

func main() {
	doMain(os.Args)
}

func doMain(args []string) {
	err := newCLIApp().Run(args)
	if err != nil {
		log.Fatal(err)
	}
}

func newCLIApp() *cli.App {
	var configPath string

	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name: "config",
				Usage: "Configuration `FILE`. " +
					"Supports JSON, TOML, YAML and HCL " +
					"formatted configs.",
				Value:       "config.yaml",
				Destination: &configPath,
			},
		},
		Commands: []cli.Command{
			{
				Name:   "server",
				Usage:  "Run the HTTP API server",
				Action: cmdServer,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "automigrate",
						Usage: "Run database migrations before starting.",
					},
				},
			},
			{
				Name:   "migrate",
				Usage:  "Run the migrations",
				Action: cmdMigrate,
			},
		},
	}
	app.Usage = "Attendance device gateway"
	app.Version = Version
	app.Action = cmdServer

	app.Before = func(args *cli.Context) error {
		err := config.FromConfigFile(configPath, dconfig.Defaults)
		if err != nil {
			return cli.NewExitError(
				fmt.Sprintf("error loading configuration: %s", err),
				1)
		}

		// Enable setting config values by environment variables
		config.Config.SetEnvPrefix(EnvPrefix)
		config.Config.AutomaticEnv()
		config.Config.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

		return nil
	}
	return app
}

func cmdServer(args *cli.Context) error {
	dataStore, err := store.SetupDataStore(args.Bool("automigrate"))
	if err != nil {
		return err
	}
	defer dataStore.Close()

	redisClient, err := redis.NewClient(context.Background(), config.Config)
	if err != nil {
		return err
	}
	defer redisClient.Close()
	slot := redis.NewCommandSlot(redisClient,
		config.Config.GetString(dconfig.SettingLegacySlotKey))

	return server.InitAndRun(config.Config, dataStore, slot)
}

func cmdMigrate(args *cli.Context) error {
	dataStore, err := store.SetupDataStore(true)
	if err != nil {
		return err
	}
	return dataStore.Close()
}
