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

package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/mendersoftware/go-lib-micro/log"

	api "github.com/mendersoftware/attendancegw/api/http"
	"github.com/mendersoftware/attendancegw/app"
	"github.com/mendersoftware/attendancegw/client/nats"
	"github.com/mendersoftware/attendancegw/client/probe"
	"github.com/mendersoftware/attendancegw/client/trigger"
	"github.com/mendersoftware/attendancegw/client/zkteco"
	dconfig "github.com/mendersoftware/attendancegw/config"
	"github.com/mendersoftware/attendancegw/store"
	"github.com/mendersoftware/attendancegw/utils"
)

const shutdownTimeout = 5 * time.Second

// InitAndRun initializes the server and runs it
func InitAndRun(
	conf config.Reader,
	dataStore store.DataStore,
	slot store.CommandSlot,
) error {
	ctx := context.Background()

	log.Setup(conf.GetBool(dconfig.SettingDebugLog))
	l := log.FromContext(ctx)

	clients, err := NewClients(conf)
	if err != nil {
		return err
	}
	if clients.Events != nil {
		defer clients.Events.Close()
	}
	appConfig, err := NewAppConfig(conf)
	if err != nil {
		return err
	}
	gatewayApp := app.New(dataStore, slot, app.NewCommandQueue(), clients, appConfig)

	var listen = conf.GetString(dconfig.SettingListen)
	router, err := api.NewRouter(gatewayApp, api.RouterConfig{
		Production:      conf.GetBool(dconfig.SettingProduction),
		AcceptedOrigins: conf.GetStringSlice(dconfig.SettingAcceptedOrigins),
	})
	if err != nil {
		l.Fatal(err)
	}
	srv := &http.Server{
		Addr:    listen,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, unix.SIGINT, unix.SIGTERM)
	<-quit

	l.Info("Shutdown Server ...")

	go gatewayApp.Shutdown(shutdownTimeout / 2)
	ctxWithTimeout, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctxWithTimeout); err != nil {
		l.Fatal("Server Shutdown: ", err)
	}
	gatewayApp.ShutdownDone()

	return nil
}

// NewClients builds the outbound device clients and, when a nats uri is
// configured, the event bus client
func NewClients(conf config.Reader) (app.Clients, error) {
	clients := app.Clients{
		Trigger: trigger.NewClient(
			time.Duration(conf.GetInt(dconfig.SettingTriggerTimeout)) * time.Second,
		),
		Prober: probe.NewProber(
			time.Duration(conf.GetInt(dconfig.SettingProbeTimeout)) * time.Millisecond,
		),
	}
	loc, err := deviceLocation(conf)
	if err != nil {
		return clients, err
	}
	clients.Terminal = zkteco.NewClient(loc)

	if uri := conf.GetString(dconfig.SettingNatsURI); uri != "" {
		clients.Events, err = nats.NewClientWithDefaults(uri)
		if err != nil {
			return clients, err
		}
	}
	return clients, nil
}

// NewAppConfig reads the app settings from conf
func NewAppConfig(conf config.Reader) (app.Config, error) {
	loc, err := deviceLocation(conf)
	if err != nil {
		return app.Config{}, err
	}
	return app.Config{
		Clock:         utils.RealClock{},
		Location:      loc,
		SubjectPrefix: conf.GetString(dconfig.SettingNatsSubjectPrefix),
		PullTimeout: time.Duration(
			conf.GetInt(dconfig.SettingPullTimeout),
		) * time.Second,
	}, nil
}

func deviceLocation(conf config.Reader) (*time.Location, error) {
	name := conf.GetString(dconfig.SettingDeviceTimezone)
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s %q",
			dconfig.SettingDeviceTimezone, name)
	}
	return loc, nil
}
