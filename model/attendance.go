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
	"strings"
	"time"
)

// AttendanceTableTag is the ADMS table name carrying attendance punches
const AttendanceTableTag = "ATTLOG"

// IsAttendanceTable reports whether a push for the given table tag
// carries attendance logs. An empty tag is treated as attendance.
func IsAttendanceTable(tag string) bool {
	return tag == "" || strings.EqualFold(tag, AttendanceTableTag)
}

// AttendanceEvent is a normalized punch extracted from a device payload
type AttendanceEvent struct {
	UserID         string    `json:"user_id" bson:"user_id" msgpack:"user_id"`
	AttendanceTime time.Time `json:"attendance_time" bson:"attendance_time" msgpack:"attendance_time"`
}

// AttendanceRecord is an attendance event as persisted by the log store
type AttendanceRecord struct {
	AttendanceEvent `bson:",inline"`
	Serial          string    `json:"serial" bson:"serial"`
	PropertyCode    string    `json:"property_code" bson:"property_code"`
	ReceivedTs      time.Time `json:"received_ts" bson:"received_ts"`
}

// AttendanceBatch is the message published on the event bus after a batch
// has been accepted by the log store
type AttendanceBatch struct {
	Serial       string            `msgpack:"serial"`
	PropertyCode string            `msgpack:"property_code"`
	Source       string            `msgpack:"source"`
	Events       []AttendanceEvent `msgpack:"events"`
}

// Sources of an attendance batch
const (
	AttendanceSourcePush = "push"
	AttendanceSourcePull = "pull"
)

// GetAttendanceSubject returns the event bus subject for a property
func GetAttendanceSubject(prefix, propertyCode string) string {
	return strings.Join([]string{prefix, propertyCode}, ".")
}

// TerminalRecord is a raw attendance log entry read from a terminal
// through the vendor protocol
type TerminalRecord struct {
	UserSN       uint16    `json:"user_sn"`
	DeviceUserID string    `json:"device_user_id"`
	RecordTime   time.Time `json:"record_time"`
	IP           string    `json:"ip"`
}

// Event normalizes the record into an attendance event
func (r TerminalRecord) Event() AttendanceEvent {
	return AttendanceEvent{
		UserID:         r.DeviceUserID,
		AttendanceTime: r.RecordTime,
	}
}
