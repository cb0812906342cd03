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
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pkg/errors"

	"github.com/mendersoftware/attendancegw/app"
	"github.com/mendersoftware/attendancegw/model"
)

// HTTP errors
var (
	ErrMalformedBody = errors.New("malformed request body")
	ErrInvalidPort   = errors.New("port: must be an integer between 1 and 65535")
)

// Query parameters of the probe end-point
const (
	ParamProbeHost = "host"
	ParamProbePort = "port"
)

// ManagementController container for operator end-points
type ManagementController struct {
	app        app.App
	production bool
}

// NewManagementController returns a new ManagementController
func NewManagementController(
	app app.App,
	production bool,
) *ManagementController {
	return &ManagementController{
		app:        app,
		production: production,
	}
}

// GetDevice returns a device
func (h ManagementController) GetDevice(c *gin.Context) {
	ctx := c.Request.Context()

	device, err := h.app.GetDevice(ctx, c.Param("serial"))
	if err == app.ErrDeviceNotFound {
		abortWithError(c, http.StatusNotFound, err, h.production)
		return
	} else if err != nil {
		abortWithError(c, http.StatusInternalServerError, err, h.production)
		return
	}

	c.JSON(http.StatusOK, device)
}

// EnqueueCommand queues a command for the next poll of the device
func (h ManagementController) EnqueueCommand(c *gin.Context) {
	ctx := c.Request.Context()

	var cmd model.Command
	if err := c.ShouldBindJSON(&cmd); err != nil {
		abortWithError(c, http.StatusBadRequest,
			errors.Wrap(ErrMalformedBody, err.Error()), h.production)
		return
	}
	if err := cmd.Validate(); err != nil {
		abortWithError(c, http.StatusBadRequest, err, h.production)
		return
	}

	if err := h.app.EnqueueCommand(ctx, c.Param("serial"), cmd); err != nil {
		abortWithError(c, http.StatusBadRequest, err, h.production)
		return
	}
	c.Status(http.StatusAccepted)
}

// SetLegacyCommand replaces the command of the legacy channel
func (h ManagementController) SetLegacyCommand(c *gin.Context) {
	ctx := c.Request.Context()

	var cmd model.LegacyCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		abortWithError(c, http.StatusBadRequest,
			errors.Wrap(ErrMalformedBody, err.Error()), h.production)
		return
	}
	if err := cmd.Validate(); err != nil {
		abortWithError(c, http.StatusBadRequest, err, h.production)
		return
	}

	stored, err := h.app.SetLegacyCommand(ctx, cmd)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err, h.production)
		return
	}
	c.JSON(http.StatusAccepted, stored)
}

// TriggerSync asks a device to push its buffer to a target endpoint
func (h ManagementController) TriggerSync(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest,
			errors.Wrap(ErrMalformedBody, err.Error()), h.production)
		return
	}
	if err := req.Validate(); err != nil {
		abortWithError(c, http.StatusBadRequest, err, h.production)
		return
	}

	res, err := h.app.TriggerSync(ctx, req)
	if err != nil {
		abortWithError(c, syncErrorStatus(err), err, h.production)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PullFetch reads the attendance buffer of a terminal
func (h ManagementController) PullFetch(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.PullRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest,
			errors.Wrap(ErrMalformedBody, err.Error()), h.production)
		return
	}
	if err := req.Validate(); err != nil {
		abortWithError(c, http.StatusBadRequest, err, h.production)
		return
	}

	res, err := h.app.PullFetch(ctx, req)
	if err != nil {
		abortWithError(c, syncErrorStatus(err), err, h.production)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Probe reports whether a TCP port accepts connections
func (h ManagementController) Probe(c *gin.Context) {
	ctx := c.Request.Context()

	host := c.Query(ParamProbeHost)
	if err := validation.Validate(host, validation.Required, is.Host); err != nil {
		abortWithError(c, http.StatusBadRequest,
			errors.WithMessage(err, ParamProbeHost), h.production)
		return
	}
	port, err := strconv.Atoi(c.Query(ParamProbePort))
	if err != nil || port < 1 || port > 65535 {
		abortWithError(c, http.StatusBadRequest, ErrInvalidPort, h.production)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reachable": h.app.ProbePort(ctx, host, port),
	})
}

func syncErrorStatus(err error) int {
	switch {
	case errors.Is(err, app.ErrDeviceUnreachable):
		return http.StatusServiceUnavailable
	case app.IsTimeout(err):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
