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

package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mendersoftware/go-lib-micro/accesslog"
	"github.com/mendersoftware/go-lib-micro/requestid"

	"github.com/mendersoftware/attendancegw/app"
)

// API URL used by the HTTP router
const (
	APIURLInternal   = "/api/internal/v1/attendance"
	APIURLManagement = "/api/management/v1/attendance"

	// Device protocol routes; paths are fixed by the terminal firmware
	APIURLDeviceCheckin  = "/checkin"
	APIURLDevicePush     = "/push"
	APIURLDeviceAnnounce = "/announce"
	APIURLDeviceFetch    = "/fetch"
	APIURLIClockRequest  = "/iclock/getrequest"
	APIURLIClockData     = "/iclock/cdata"

	APIURLInternalAlive    = APIURLInternal + "/alive"
	APIURLInternalHealth   = APIURLInternal + "/health"
	APIURLInternalDevices  = APIURLInternal + "/devices"
	APIURLInternalDeviceID = APIURLInternal + "/devices/:serial"

	APIURLManagementDevice         = APIURLManagement + "/devices/:serial"
	APIURLManagementDeviceCommands = APIURLManagement + "/devices/:serial/commands"
	APIURLManagementLegacyCommand  = APIURLManagement + "/legacy/command"
	APIURLManagementSyncTrigger    = APIURLManagement + "/sync/trigger"
	APIURLManagementSyncPull       = APIURLManagement + "/sync/pull"
	APIURLManagementProbe          = APIURLManagement + "/probe"
)

// RouterConfig holds the options of the HTTP API
type RouterConfig struct {
	// Production hides error details from operator responses
	Production bool
	// AcceptedOrigins restricts cross-origin operator requests; empty
	// accepts any origin
	AcceptedOrigins []string
}

// NewRouter returns the gin router
func NewRouter(
	app app.App,
	config ...RouterConfig,
) (*gin.Engine, error) {
	conf := RouterConfig{}
	for _, cfgIn := range config {
		if cfgIn.Production {
			conf.Production = true
		}
		conf.AcceptedOrigins = append(conf.AcceptedOrigins, cfgIn.AcceptedOrigins...)
	}

	gin.SetMode(gin.ReleaseMode)
	gin.DisableConsoleColor()

	router := gin.New()
	router.Use(accesslog.Middleware())
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware())
	router.Use(cors.New(NewCORSConfig(conf.AcceptedOrigins)))

	status := NewStatusController(app)
	router.GET(APIURLInternalAlive, status.Alive)
	router.GET(APIURLInternalHealth, status.Health)

	internal := NewInternalController(app)
	router.POST(APIURLInternalDevices, internal.RegisterDevice)
	router.DELETE(APIURLInternalDeviceID, internal.DeleteDevice)

	device := NewDeviceController(app)
	router.GET(APIURLDeviceCheckin, device.Checkin)
	router.GET(APIURLIClockRequest, device.Checkin)
	router.POST(APIURLDevicePush, device.Push)
	router.POST(APIURLIClockData, device.Push)
	router.GET(APIURLDeviceAnnounce, device.Announce)
	router.GET(APIURLDeviceFetch, device.Fetch)

	management := NewManagementController(app, conf.Production)
	router.GET(APIURLManagementDevice, management.GetDevice)
	router.POST(APIURLManagementDeviceCommands, management.EnqueueCommand)
	router.PUT(APIURLManagementLegacyCommand, management.SetLegacyCommand)
	router.POST(APIURLManagementSyncTrigger, management.TriggerSync)
	router.POST(APIURLManagementSyncPull, management.PullFetch)
	router.GET(APIURLManagementProbe, management.Probe)

	return router, nil
}
