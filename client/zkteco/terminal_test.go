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
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/mendersoftware/attendancegw/model"
)

const testSessionID = 0x1234

func encodeTime(ts time.Time) uint32 {
	return uint32(((ts.Year()%100)*12*31+(int(ts.Month())-1)*31+ts.Day()-1)*
		(24*60*60) + (ts.Hour()*60+ts.Minute())*60 + ts.Second())
}

func makeAttendanceBuffer(records ...model.TerminalRecord) []byte {
	body := make([]byte, 0, len(records)*recordSize)
	for _, r := range records {
		rec := make([]byte, recordSize)
		binary.LittleEndian.PutUint16(rec[0:2], r.UserSN)
		copy(rec[2:26], r.DeviceUserID)
		rec[26] = 1
		binary.LittleEndian.PutUint32(rec[27:31], encodeTime(r.RecordTime))
		body = append(body, rec...)
	}
	buf := make([]byte, 4, 4+len(body))
	binary.LittleEndian.PutUint32(buf, uint32(len(body)))
	return append(buf, body...)
}

type testDevice struct {
	buffer   []byte
	buffered bool
	unauth   bool
	stall    bool
	// overrides the announced buffer size when set
	announce uint32
	overrun  bool

	exits int32
}

func (d *testDevice) serve(t *testing.T) (string, int) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go d.handle(conn)
		}
	}()
	addr := ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port
}

func (d *testDevice) reply(conn net.Conn, req *packet, command uint16, data []byte) {
	_, _ = conn.Write(packet{
		command:   command,
		sessionID: testSessionID,
		replyID:   req.replyID,
		data:      data,
	}.encode())
}

func (d *testDevice) handle(conn net.Conn) {
	defer conn.Close()
	for {
		req, err := readPacket(conn)
		if err != nil {
			return
		}
		switch req.command {
		case cmdConnect:
			if d.unauth {
				d.reply(conn, req, cmdAckUnauth, nil)
			} else {
				d.reply(conn, req, cmdAckOK, nil)
			}
		case cmdDataWRRQ:
			if d.stall {
				continue
			}
			if !d.buffered {
				d.reply(conn, req, cmdData, d.buffer)
				continue
			}
			ann := make([]byte, 5)
			binary.LittleEndian.PutUint32(ann[1:5], uint32(len(d.buffer)))
			if d.announce > 0 {
				binary.LittleEndian.PutUint32(ann[1:5], d.announce)
			}
			d.reply(conn, req, cmdAckOK, ann)
		case cmdDataRdy:
			start := binary.LittleEndian.Uint32(req.data[0:4])
			size := binary.LittleEndian.Uint32(req.data[4:8])
			if int(start+size) > len(d.buffer) {
				d.reply(conn, req, cmdAckError, nil)
				continue
			}
			chunk := d.buffer[start : start+size]
			prep := make([]byte, 8)
			binary.LittleEndian.PutUint32(prep[0:4], size)
			d.reply(conn, req, cmdPrepareData, prep)
			half := len(chunk) / 2
			d.reply(conn, req, cmdData, chunk[:half])
			d.reply(conn, req, cmdData, chunk[half:])
			if d.overrun {
				d.reply(conn, req, cmdData, chunk)
			}
			d.reply(conn, req, cmdAckOK, nil)
		case cmdFreeData:
			d.reply(conn, req, cmdAckOK, nil)
		case cmdExit:
			atomic.AddInt32(&d.exits, 1)
			d.reply(conn, req, cmdAckOK, nil)
			return
		default:
			d.reply(conn, req, cmdAckError, nil)
		}
	}
}

func TestChecksum(t *testing.T) {
	hdr := make([]byte, headerSize)
	binary.LittleEndian.PutUint16(hdr[0:2], cmdConnect)
	// 1000 words sum to 1000, inverted within the 16 bit range
	assert.Equal(t, uint16(ushrtMax-1000-1), checksum(hdr))

	odd := []byte{0x01, 0x00, 0x05}
	assert.Equal(t, uint16(ushrtMax-6-1), checksum(odd))
}

func TestPacketRoundTrip(t *testing.T) {
	p := packet{command: cmdDataRdy, sessionID: 7, replyID: 3, data: []byte{1, 2, 3}}
	raw := p.encode()
	assert.Equal(t, tcpMagic[:], raw[0:4])

	r, w := net.Pipe()
	go func() {
		w.Write(raw)
		w.Close()
	}()
	got, err := readPacket(r)
	if assert.NoError(t, err) {
		assert.Equal(t, p.command, got.command)
		assert.Equal(t, p.sessionID, got.sessionID)
		assert.Equal(t, p.replyID, got.replyID)
		assert.Equal(t, p.data, got.data)

		hdr := append([]byte{}, raw[tcpPrefixSize:]...)
		hdr[2], hdr[3] = 0, 0
		assert.Equal(t, checksum(hdr), got.checksum)
	}
}

func TestReadPacketBadMagic(t *testing.T) {
	r, w := net.Pipe()
	go func() {
		w.Write([]byte{0, 1, 2, 3, 8, 0, 0, 0})
		w.Close()
	}()
	_, err := readPacket(r)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestDecodeTime(t *testing.T) {
	ts := time.Date(2024, time.May, 23, 9, 5, 7, 0, time.UTC)
	assert.Equal(t, ts, decodeTime(encodeTime(ts), time.UTC))

	loc := time.FixedZone("UTC+7", 7*3600)
	assert.Equal(t,
		time.Date(2024, time.May, 23, 9, 5, 7, 0, loc),
		decodeTime(encodeTime(ts), loc),
	)
}

func TestDecodeAttendance(t *testing.T) {
	ts := time.Date(2024, time.May, 23, 9, 5, 0, 0, time.UTC)
	buf := makeAttendanceBuffer(
		model.TerminalRecord{UserSN: 1, DeviceUserID: "emp1", RecordTime: ts},
		model.TerminalRecord{UserSN: 2, DeviceUserID: "emp2", RecordTime: ts.Add(2 * time.Minute)},
	)
	// trailing garbage beyond the announced size is ignored
	buf = append(buf, 0xff, 0xff)

	records := decodeAttendance(buf, "10.0.0.5", time.UTC)
	assert.Equal(t, []model.TerminalRecord{
		{UserSN: 1, DeviceUserID: "emp1", RecordTime: ts, IP: "10.0.0.5"},
		{UserSN: 2, DeviceUserID: "emp2", RecordTime: ts.Add(2 * time.Minute), IP: "10.0.0.5"},
	}, records)

	assert.Empty(t, decodeAttendance(nil, "", time.UTC))
	assert.Empty(t, decodeAttendance([]byte{0, 0, 0, 0}, "", time.UTC))
}

func TestTerminal(t *testing.T) {
	ts := time.Date(2024, time.May, 23, 9, 5, 0, 0, time.UTC)
	records := []model.TerminalRecord{
		{UserSN: 1, DeviceUserID: "emp1", RecordTime: ts},
		{UserSN: 2, DeviceUserID: "emp2", RecordTime: ts.Add(time.Minute)},
		{UserSN: 3, DeviceUserID: "emp3", RecordTime: ts.Add(2 * time.Minute)},
	}

	testCases := []struct {
		Name string

		Device *testDevice
		Count  int
		Error  error
	}{{
		Name: "ok, inline data",

		Device: &testDevice{buffer: makeAttendanceBuffer(records...)},
		Count:  3,
	}, {
		Name: "ok, buffered data",

		Device: &testDevice{
			buffer:   makeAttendanceBuffer(records...),
			buffered: true,
		},
		Count: 3,
	}, {
		Name: "ok, empty log",

		Device: &testDevice{buffer: makeAttendanceBuffer()},
	}, {
		Name: "error, unauthorized",

		Device: &testDevice{unauth: true},
		Error:  ErrUnauthorized,
	}, {
		Name: "error, oversized buffer announcement",

		Device: &testDevice{
			buffer:   makeAttendanceBuffer(records...),
			buffered: true,
			announce: 0xFFFFFFF0,
		},
		Error: ErrBadLength,
	}, {
		Name: "error, chunk larger than requested",

		Device: &testDevice{
			buffer:   makeAttendanceBuffer(records...),
			buffered: true,
			overrun:  true,
		},
		Error: ErrBadLength,
	}, {
		Name: "error, timeout",

		Device: &testDevice{stall: true},
		Error:  ErrTimeout,
	}}

	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			ip, port := tc.Device.serve(t)
			term := NewTerminal(ip, port, 500*time.Millisecond, time.UTC)

			res, err := Pull(context.Background(), term)
			if tc.Error != nil {
				assert.True(t, errors.Is(err, tc.Error), "%v", err)
				assert.Nil(t, res)
			} else if assert.NoError(t, err) {
				assert.Len(t, res, tc.Count)
				for i, rec := range res {
					assert.Equal(t, records[i].DeviceUserID, rec.DeviceUserID)
					assert.Equal(t, records[i].RecordTime, rec.RecordTime)
					assert.Equal(t, ip, rec.IP)
				}
			}
		})
	}
}

func TestTerminalExitsSession(t *testing.T) {
	dev := &testDevice{buffer: makeAttendanceBuffer()}
	ip, port := dev.serve(t)
	term := NewTerminal(ip, port, time.Second, time.UTC)

	_, err := Pull(context.Background(), term)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&dev.exits))

	// the session is gone: a second disconnect is a no-op
	assert.NoError(t, term.Disconnect())
}

func TestTerminalNotConnected(t *testing.T) {
	term := NewTerminal("127.0.0.1", 1, time.Second, nil)
	_, err := term.GetAttendance(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.NoError(t, term.Disconnect())
}
