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
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// TriggerStatusNoBody is the result of an active trigger when the device
// accepted the command without echoing a confirmation
const TriggerStatusNoBody = "Command sent, no response body."

var portRule = validation.Min(1)

// TriggerRequest asks a device to push its buffer to a target endpoint
type TriggerRequest struct {
	DeviceIP   string `json:"device_ip"`
	DevicePort int    `json:"device_port"`
	TargetIP   string `json:"target_ip"`
	TargetPort int    `json:"target_port"`
	// Serial optionally names the device so its status can be updated
	Serial string `json:"serial,omitempty"`
}

func (r TriggerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DeviceIP, validation.Required, is.Host),
		validation.Field(&r.DevicePort, validation.Required, portRule, validation.Max(65535)),
		validation.Field(&r.TargetIP, validation.Required, is.Host),
		validation.Field(&r.TargetPort, validation.Required, portRule, validation.Max(65535)),
	)
}

// TriggerCommand is the JSON message written to the device socket
type TriggerCommand struct {
	TargetIP   string `json:"target_ip"`
	TargetPort int    `json:"target_port"`
	Command    string `json:"command"`
}

// PullRequest asks the gateway to fetch the attendance buffer of a device
type PullRequest struct {
	IP        string `json:"ip"`
	Port      int    `json:"port"`
	TimeoutMs int    `json:"timeout_ms,omitempty"`
	// Serial optionally names the device so the pulled records can be
	// stored and its status updated
	Serial string `json:"serial,omitempty"`
}

func (r PullRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IP, validation.Required, is.Host),
		validation.Field(&r.Port, validation.Required, portRule, validation.Max(65535)),
		validation.Field(&r.TimeoutMs, validation.Min(0), validation.Max(600000)),
	)
}

// Timeout returns the requested timeout or def when none was given
func (r PullRequest) Timeout(def time.Duration) time.Duration {
	if r.TimeoutMs > 0 {
		return time.Duration(r.TimeoutMs) * time.Millisecond
	}
	return def
}

// PullResult is the outcome of a pull-fetch
type PullResult struct {
	Events []TerminalRecord `json:"events"`
	Count  int              `json:"count"`
	// Stored is the number of events handed to the log store
	Stored int `json:"stored"`
}
