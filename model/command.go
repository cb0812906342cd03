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
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Device wire protocol tokens
const (
	// ResponseOK is the acknowledgement sent when nothing else is due
	ResponseOK = "OK"

	// LegacyFetchInstruction is the announce answer sent while the legacy
	// command slot is occupied
	LegacyFetchInstruction = "C:0:DEVICECMD\n"
)

// CommandEnvelope formats a command for delivery to a device
func CommandEnvelope(id, command string) string {
	return fmt.Sprintf("C:%s:%s", id, command)
}

var commandRule = validation.By(func(v interface{}) error {
	s, _ := v.(string)
	if strings.ContainsAny(s, "\r\n") {
		return validation.NewError(
			"validation_is_single_line",
			"must be a single line",
		)
	}
	return nil
})

// Command is a queued textual command for a device
type Command struct {
	Command string `json:"command"`
}

func (c Command) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Command, validation.Required, commandRule),
	)
}

// LegacyCommand is the value held by the legacy single command slot. An
// empty ID is filled in when the command is stored.
type LegacyCommand struct {
	ID      string `json:"id"`
	Command string `json:"command"`
}

func (c LegacyCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.By(func(v interface{}) error {
			s, _ := v.(string)
			if strings.ContainsAny(s, ":\r\n") {
				return validation.NewError(
					"validation_legacy_id",
					"must not contain ':' or line breaks",
				)
			}
			return nil
		})),
		validation.Field(&c.Command, validation.Required, commandRule),
	)
}

// Envelope formats the slot content as returned by the fetch endpoint
func (c LegacyCommand) Envelope() string {
	return CommandEnvelope(c.ID, c.Command) + "\n"
}
