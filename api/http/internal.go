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

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/mendersoftware/attendancegw/app"
	"github.com/mendersoftware/attendancegw/model"
)

// InternalController contains the registry end-points used by other
// services
type InternalController struct {
	app app.App
}

// NewInternalController returns a new InternalController
func NewInternalController(app app.App) *InternalController {
	return &InternalController{app: app}
}

// RegisterDevice responds to POST /devices
func (h InternalController) RegisterDevice(c *gin.Context) {
	ctx := c.Request.Context()

	reg := model.DeviceRegistration{}
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": errors.Wrap(err, "malformed request body").Error(),
		})
		return
	}
	if err := reg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if err := h.app.RegisterDevice(ctx, reg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.Status(http.StatusCreated)
}

// DeleteDevice responds to DELETE /devices/:serial
func (h InternalController) DeleteDevice(c *gin.Context) {
	ctx := c.Request.Context()

	err := h.app.DeleteDevice(ctx, c.Param("serial"))
	if err == app.ErrDeviceNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.Status(http.StatusNoContent)
}
