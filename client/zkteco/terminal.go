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

package zkteco

import (
	"context"
	"encoding/binary"
	"net"
	"strconv"
	"time"

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/mendersoftware/attendancegw/model"
)

var (
	ErrTimeout      = errors.New("zkteco: timed out talking to the device")
	ErrNotConnected = errors.New("zkteco: not connected")
)

// Terminal is a session with an attendance terminal
//
//go:generate ../../utils/mockgen.sh
type Terminal interface {
	Connect(ctx context.Context) error
	GetAttendance(ctx context.Context) ([]model.TerminalRecord, error)
	Disconnect() error
}

type terminal struct {
	ip      string
	addr    string
	timeout time.Duration
	loc     *time.Location

	conn      net.Conn
	sessionID uint16
	replyID   uint16
}

// NewTerminal returns an unconnected session with the terminal at ip:port.
// The timeout bounds the whole session; record times are interpreted in loc.
func NewTerminal(ip string, port int, timeout time.Duration, loc *time.Location) Terminal {
	if loc == nil {
		loc = time.UTC
	}
	return &terminal{
		ip:      ip,
		addr:    net.JoinHostPort(ip, strconv.Itoa(port)),
		timeout: timeout,
		loc:     loc,
	}
}

func (t *terminal) Connect(ctx context.Context) error {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return wrapIOError(err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	t.conn = conn
	t.sessionID = 0
	t.replyID = 0

	rsp, err := t.send(cmdConnect, nil)
	if err != nil {
		return err
	}
	switch rsp.command {
	case cmdAckOK:
		t.sessionID = rsp.sessionID
		return nil
	case cmdAckUnauth:
		return ErrUnauthorized
	default:
		return errors.Errorf("zkteco: unexpected reply %d to connect", rsp.command)
	}
}

func (t *terminal) GetAttendance(ctx context.Context) ([]model.TerminalRecord, error) {
	if t.conn == nil {
		return nil, ErrNotConnected
	}
	l := log.FromContext(ctx)

	req := make([]byte, 11)
	req[0] = 1
	binary.LittleEndian.PutUint16(req[1:3], tableAttLog)
	rsp, err := t.send(cmdDataWRRQ, req)
	if err != nil {
		return nil, err
	}

	var buf []byte
	switch rsp.command {
	case cmdData:
		buf = rsp.data
	case cmdAckOK:
		if len(rsp.data) < 5 {
			return nil, errors.New("zkteco: short buffer announcement")
		}
		size := binary.LittleEndian.Uint32(rsp.data[1:5])
		if size > maxBufferSize {
			return nil, errors.Wrapf(ErrBadLength,
				"attendance buffer of %d bytes", size)
		}
		buf, err = t.readBuffer(size)
		if err != nil {
			return nil, err
		}
		if err = t.freeData(); err != nil {
			l.Warnf("zkteco: failed to free device buffer: %s", err)
		}
	default:
		return nil, errors.Errorf(
			"zkteco: unexpected reply %d to attendance request", rsp.command)
	}
	records := decodeAttendance(buf, t.ip, t.loc)
	l.Debugf("zkteco: read %d attendance records from %s", len(records), t.addr)
	return records, nil
}

// Disconnect ends the session and closes the socket. It is safe to call on
// a terminal which never connected.
func (t *terminal) Disconnect() error {
	if t.conn == nil {
		return nil
	}
	_, exitErr := t.send(cmdExit, nil)
	closeErr := t.conn.Close()
	t.conn = nil
	if exitErr != nil {
		return exitErr
	}
	return errors.Wrap(closeErr, "zkteco: failed to close connection")
}

func (t *terminal) readBuffer(size uint32) ([]byte, error) {
	var buf []byte
	for start := 0; start < int(size); start += maxChunk {
		n := int(size) - start
		if n > maxChunk {
			n = maxChunk
		}
		chunk, err := t.readChunk(start, n)
		if err != nil {
			return nil, err
		}
		buf = append(buf, chunk...)
	}
	return buf, nil
}

func (t *terminal) readChunk(start, size int) ([]byte, error) {
	req := make([]byte, 8)
	binary.LittleEndian.PutUint32(req[0:4], uint32(start))
	binary.LittleEndian.PutUint32(req[4:8], uint32(size))
	rsp, err := t.send(cmdDataRdy, req)
	if err != nil {
		return nil, err
	}
	switch rsp.command {
	case cmdData:
		return rsp.data, nil
	case cmdPrepareData:
	default:
		return nil, errors.Errorf(
			"zkteco: unexpected reply %d to chunk request", rsp.command)
	}

	chunk := make([]byte, 0, size)
	for {
		rsp, err = t.receive()
		if err != nil {
			return nil, err
		}
		switch rsp.command {
		case cmdData:
			chunk = append(chunk, rsp.data...)
			if len(chunk) > size {
				return nil, errors.Wrapf(ErrBadLength,
					"chunk of %d bytes, requested %d", len(chunk), size)
			}
		case cmdAckOK:
			if len(chunk) < size {
				return nil, errors.Errorf(
					"zkteco: short chunk: %d of %d bytes", len(chunk), size)
			}
			return chunk, nil
		default:
			return nil, errors.Errorf(
				"zkteco: unexpected packet %d in chunk transfer", rsp.command)
		}
	}
}

func (t *terminal) freeData() error {
	rsp, err := t.send(cmdFreeData, nil)
	if err != nil {
		return err
	} else if rsp.command != cmdAckOK {
		return errors.Errorf("zkteco: unexpected reply %d to free data", rsp.command)
	}
	return nil
}

func (t *terminal) send(command uint16, data []byte) (*packet, error) {
	if command != cmdConnect {
		t.replyID = uint16((uint32(t.replyID) + 1) % ushrtMax)
	}
	p := packet{
		command:   command,
		sessionID: t.sessionID,
		replyID:   t.replyID,
		data:      data,
	}
	if _, err := t.conn.Write(p.encode()); err != nil {
		return nil, wrapIOError(err)
	}
	return t.receive()
}

func (t *terminal) receive() (*packet, error) {
	p, err := readPacket(t.conn)
	if err != nil {
		return nil, wrapIOError(err)
	}
	return p, nil
}

func wrapIOError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrap(ErrTimeout, err.Error())
	} else if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(ErrTimeout, err.Error())
	}
	return errors.Wrap(err, "zkteco")
}
