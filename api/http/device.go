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
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mendersoftware/go-lib-micro/log"

	"github.com/mendersoftware/attendancegw/app"
	"github.com/mendersoftware/attendancegw/model"
)

// Query parameters of the device protocol
const (
	ParamSerial = "SN"
	ParamTable  = "table"
)

// MaxPushBodySize bounds the body of a device push
const MaxPushBodySize = 8 * 1024 * 1024

const errMsgMissingSerial = "missing serial number"

// DeviceController serves the plain text protocol spoken by the
// attendance terminals
type DeviceController struct {
	app app.App
}

// NewDeviceController returns a new DeviceController
func NewDeviceController(app app.App) *DeviceController {
	return &DeviceController{app: app}
}

// Checkin responds to GET /checkin
func (h DeviceController) Checkin(c *gin.Context) {
	serial := c.Query(ParamSerial)
	if serial == "" {
		c.String(http.StatusBadRequest, errMsgMissingSerial)
		return
	}
	res, err := h.app.Checkin(c.Request.Context(), serial)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	c.String(http.StatusOK, res)
}

// Push responds to POST /push. The device always gets OK: it has no way
// to act on a processing failure.
func (h DeviceController) Push(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	serial := c.Query(ParamSerial)
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxPushBodySize))
	if err != nil {
		l.Warnf("failed to read push body from device %s, batch ignored: %s", serial, err)
		c.String(http.StatusOK, model.ResponseOK)
		return
	}
	res := h.app.IngestPush(ctx, serial, c.Query(ParamTable), body)
	if res.Format != app.IngestFormatSkipped {
		l.Debugf("push from device %s: format=%s events=%d dropped=%d",
			serial, res.Format, len(res.Events), res.Dropped)
	}
	c.String(http.StatusOK, model.ResponseOK)
}

// Announce responds to GET /announce
func (h DeviceController) Announce(c *gin.Context) {
	c.String(http.StatusOK, h.app.Announce(c.Request.Context(), c.Query(ParamSerial)))
}

// Fetch responds to GET /fetch
func (h DeviceController) Fetch(c *gin.Context) {
	c.String(http.StatusOK, h.app.FetchLegacy(c.Request.Context()))
}
