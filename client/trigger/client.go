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

package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"time"

	"github.com/pkg/errors"

	"github.com/mendersoftware/attendancegw/model"
)

// DefaultTimeout bounds the whole trigger exchange
const DefaultTimeout = 15 * time.Second

const (
	commandSync   = "sync"
	readChunkSize = 4096
)

var (
	ErrTimeout         = errors.New("trigger: timed out waiting for the device")
	ErrInvalidResponse = errors.New("trigger: invalid response from device")
)

// Client asks a device to push its attendance buffer to a target endpoint
//
//go:generate ../../utils/mockgen.sh
type Client interface {
	Trigger(ctx context.Context, deviceAddr, targetIP string, targetPort int) (interface{}, error)
}

type client struct {
	timeout time.Duration
}

// NewClient returns a trigger client; timeout bounds connect, write and
// read together
func NewClient(timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &client{timeout: timeout}
}

// Trigger sends a single sync command to deviceAddr and returns the decoded
// JSON answer of the device. A device closing the connection without
// answering yields a neutral status object.
func (c *client) Trigger(
	ctx context.Context,
	deviceAddr string,
	targetIP string,
	targetPort int,
) (interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	deadline, _ := ctx.Deadline()

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", deviceAddr)
	if err != nil {
		return nil, ioError(ctx, err, "failed to connect to device")
	}
	defer conn.Close()
	_ = conn.SetDeadline(deadline)

	// Unblock pending I/O if the caller gives up first.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	payload, _ := json.Marshal(model.TriggerCommand{
		TargetIP:   targetIP,
		TargetPort: targetPort,
		Command:    commandSync,
	})
	if _, err = conn.Write(payload); err != nil {
		return nil, ioError(ctx, err, "failed to send command")
	}

	var (
		buf   bytes.Buffer
		chunk = make([]byte, readChunkSize)
	)
	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if res, ok := decode(buf.Bytes()); ok {
				return res, nil
			}
		}
		if err == io.EOF {
			if buf.Len() == 0 {
				return map[string]interface{}{
					"status": model.TriggerStatusNoBody,
				}, nil
			}
			return nil, errors.Wrapf(ErrInvalidResponse,
				"%d bytes received", buf.Len())
		} else if err != nil {
			return nil, ioError(ctx, err, "failed to read response")
		}
	}
}

func decode(b []byte) (interface{}, bool) {
	if !json.Valid(b) {
		return nil, false
	}
	var res interface{}
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, false
	}
	return res, true
}

func ioError(ctx context.Context, err error, msg string) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() ||
		ctx.Err() == context.DeadlineExceeded {
		return errors.Wrap(ErrTimeout, msg)
	}
	return errors.Wrap(err, "trigger: "+msg)
}
