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

package store

import (
	"context"
	"errors"
	"time"

	"github.com/mendersoftware/attendancegw/model"
)

// DataStore interface for DataStore services
//
//nolint:lll - skip line length check for interface declaration.
//go:generate ../utils/mockgen.sh
type DataStore interface {
	Ping(ctx context.Context) error
	RegisterDevice(ctx context.Context, serial, propertyCode string) error
	DeleteDevice(ctx context.Context, serial string) error
	GetDevice(ctx context.Context, serial string) (*model.Device, error)
	LookupDevice(ctx context.Context, serial string) (string, error)
	SetDeviceStatus(ctx context.Context, serial, status string, at time.Time) error
	AppendAttendance(ctx context.Context, propertyCode, serial string, events []model.AttendanceEvent) error
	Close() error
}

// CommandSlot holds the single pending command of the legacy command channel
//
//go:generate ../utils/mockgen.sh
type CommandSlot interface {
	// Put replaces the slot content
	Put(ctx context.Context, cmd model.LegacyCommand) error
	// Occupied reports whether a command is pending
	Occupied(ctx context.Context) (bool, error)
	// Take atomically reads and clears the slot. It returns nil and no
	// error when the slot is empty.
	Take(ctx context.Context) (*model.LegacyCommand, error)
}

var (
	ErrDeviceNotFound = errors.New("store: device not found")
)
