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

package app

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mendersoftware/attendancegw/model"
)

// Formats recognized by the push ingestion parser
const (
	IngestFormatJSON    = "json"
	IngestFormatText    = "text"
	IngestFormatSkipped = "skipped"
)

// Reasons for skipping a push body
const (
	SkipMissingSerial = "missing serial"
	SkipUnknownDevice = "unknown device"
	SkipRegistryError = "registry error"
	SkipNotAttendance = "not an attendance table"
)

// IngestResult describes what happened to a push body. The device always
// gets the same acknowledgement; the result is for logs and tests.
type IngestResult struct {
	Format       string
	SkipReason   string
	PropertyCode string
	Events       []model.AttendanceEvent
	// Dropped counts entries rejected by the parser
	Dropped int
	// Err is set when the accepted events could not be stored or
	// published
	Err error
}

// Accepted field names, in priority order
var (
	UserIDKeys    = []string{"PIN", "userId", "user_id", "pin"}
	TimestampKeys = []string{"AttTime", "attTime", "timestamp"}
)

// TimestampLayouts are tried in order; layouts without a zone are
// interpreted in the device time zone
var TimestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02",
}

var (
	lineSplitter  = regexp.MustCompile(`\r?\n`)
	tokenSplitter = regexp.MustCompile(`\s*,\s*|\s+`)
)

// values above this are unix milliseconds
const unixMillisThreshold = 1e12

// ParseAttendance extracts attendance events from a push body. A JSON array
// of objects is read entry by entry; anything else is read as delimited
// text, one punch per line. Invalid entries are counted and skipped.
func ParseAttendance(
	body []byte,
	loc *time.Location,
) (events []model.AttendanceEvent, format string, dropped int) {
	if loc == nil {
		loc = time.UTC
	}
	if entries, ok := decodeJSONArray(body); ok {
		events = make([]model.AttendanceEvent, 0, len(entries))
		for _, entry := range entries {
			event, ok := eventFromObject(entry, loc)
			if !ok {
				dropped++
				continue
			}
			events = append(events, event)
		}
		return events, IngestFormatJSON, dropped
	}

	events = []model.AttendanceEvent{}
	for _, line := range lineSplitter.Split(string(body), -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		event, ok := eventFromLine(line, loc)
		if !ok {
			dropped++
			continue
		}
		events = append(events, event)
	}
	return events, IngestFormatText, dropped
}

func decodeJSONArray(body []byte) ([]interface{}, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' || !json.Valid(trimmed) {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var entries []interface{}
	if err := dec.Decode(&entries); err != nil {
		return nil, false
	}
	return entries, true
}

func eventFromObject(entry interface{}, loc *time.Location) (model.AttendanceEvent, bool) {
	obj, ok := entry.(map[string]interface{})
	if !ok {
		return model.AttendanceEvent{}, false
	}
	userID, ok := lookupUserID(obj)
	if !ok {
		return model.AttendanceEvent{}, false
	}
	ts, ok := lookupTimestamp(obj, loc)
	if !ok {
		return model.AttendanceEvent{}, false
	}
	return model.AttendanceEvent{UserID: userID, AttendanceTime: ts}, true
}

// lookupUserID returns the first alias holding a non-empty string or a
// number
func lookupUserID(obj map[string]interface{}) (string, bool) {
	for _, key := range UserIDKeys {
		switch v := obj[key].(type) {
		case string:
			if v = strings.TrimSpace(v); v != "" {
				return v, true
			}
		case json.Number:
			return v.String(), true
		}
	}
	return "", false
}

// lookupTimestamp parses the first alias holding a string or a number
func lookupTimestamp(obj map[string]interface{}, loc *time.Location) (time.Time, bool) {
	for _, key := range TimestampKeys {
		switch v := obj[key].(type) {
		case string:
			return ParseTimestamp(v, loc)
		case json.Number:
			return parseUnix(v.String())
		}
	}
	return time.Time{}, false
}

func eventFromLine(line string, loc *time.Location) (model.AttendanceEvent, bool) {
	tokens := tokenSplitter.Split(line, -1)
	if len(tokens) < 2 || tokens[0] == "" || tokens[1] == "" {
		return model.AttendanceEvent{}, false
	}
	event := model.AttendanceEvent{UserID: tokens[0]}
	if len(tokens) > 2 {
		if ts, ok := ParseTimestamp(tokens[1]+" "+tokens[2], loc); ok {
			event.AttendanceTime = ts
			return event, true
		}
	}
	ts, ok := ParseTimestamp(tokens[1], loc)
	if !ok {
		return model.AttendanceEvent{}, false
	}
	event.AttendanceTime = ts
	return event, true
}

// ParseTimestamp parses a device timestamp given as one of the
// TimestampLayouts or as unix seconds or milliseconds
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range TimestampLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, true
		}
	}
	return parseUnix(s)
}

func parseUnix(s string) (time.Time, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return time.Time{}, false
	}
	if n >= unixMillisThreshold {
		return time.UnixMilli(n).UTC(), true
	}
	return time.Unix(n, 0).UTC(), true
}
