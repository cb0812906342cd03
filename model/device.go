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

package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Values for the device status attribute
const (
	DeviceStatusOnline  = "online"
	DeviceStatusOffline = "offline"
	DeviceStatusUnknown = "unknown"
)

// Device represents a registered attendance terminal and its last known status
type Device struct {
	Serial       string    `json:"serial" bson:"_id"`
	PropertyCode string    `json:"property_code,omitempty" bson:"property_code,omitempty"`
	Status       string    `json:"status" bson:"status"`
	LastSeen     time.Time `json:"last_seen,omitempty" bson:"last_seen,omitempty"`
	CreatedTs    time.Time `json:"created_ts" bson:"created_ts,omitempty"`
	UpdatedTs    time.Time `json:"updated_ts" bson:"updated_ts,omitempty"`

	// PendingCommands is the number of queued commands not yet polled
	PendingCommands int `json:"pending_commands" bson:"-"`
}

// Registered reports whether the device resolves to a property
func (d Device) Registered() bool {
	return d.PropertyCode != ""
}

// DeviceRegistration is the payload used to add a device to the registry
type DeviceRegistration struct {
	Serial       string `json:"serial"`
	PropertyCode string `json:"property_code"`
}

func (r DeviceRegistration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Serial, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.PropertyCode, validation.Required, validation.Length(1, 64)),
	)
}
