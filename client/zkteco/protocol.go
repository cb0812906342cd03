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
	"bytes"
	"encoding/binary"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mendersoftware/attendancegw/model"
)

// Protocol command and reply codes
const (
	cmdConnect     uint16 = 1000
	cmdExit        uint16 = 1001
	cmdPrepareData uint16 = 1500
	cmdData        uint16 = 1501
	cmdFreeData    uint16 = 1502
	cmdDataWRRQ    uint16 = 1503
	cmdDataRdy     uint16 = 1504
	cmdAckOK       uint16 = 2000
	cmdAckError    uint16 = 2001
	cmdAckData     uint16 = 2002
	cmdAckUnauth   uint16 = 2005

	// attendance log table requested through cmdDataWRRQ
	tableAttLog = 13
)

const (
	ushrtMax = 65535

	headerSize    = 8
	tcpPrefixSize = 8
	// largest chunk requested with cmdDataRdy
	maxChunk = 0xFFC0
	// packets larger than this are rejected as corrupt
	maxPacketSize = 16 * 1024 * 1024
	// attendance buffers announced above this are rejected
	maxBufferSize = 64 * 1024 * 1024

	recordSize = 40
)

var tcpMagic = [4]byte{0x50, 0x50, 0x82, 0x7d}

var (
	ErrBadMagic     = errors.New("zkteco: bad packet magic")
	ErrBadLength    = errors.New("zkteco: bad packet length")
	ErrUnauthorized = errors.New("zkteco: device requires a communication key")
)

type packet struct {
	command   uint16
	checksum  uint16
	sessionID uint16
	replyID   uint16
	data      []byte
}

func checksum(buf []byte) uint16 {
	var sum uint32
	for i := 0; i < len(buf); i += 2 {
		if i == len(buf)-1 {
			sum += uint32(buf[i])
		} else {
			sum += uint32(binary.LittleEndian.Uint16(buf[i:]))
		}
		sum %= ushrtMax
	}
	return uint16(ushrtMax - sum - 1)
}

// encode frames a command for the TCP transport
func (p packet) encode() []byte {
	buf := make([]byte, tcpPrefixSize+headerSize+len(p.data))
	copy(buf[0:4], tcpMagic[:])
	binary.LittleEndian.PutUint32(buf[4:8], uint32(headerSize+len(p.data)))

	hdr := buf[tcpPrefixSize:]
	binary.LittleEndian.PutUint16(hdr[0:2], p.command)
	binary.LittleEndian.PutUint16(hdr[2:4], 0)
	binary.LittleEndian.PutUint16(hdr[4:6], p.sessionID)
	binary.LittleEndian.PutUint16(hdr[6:8], p.replyID)
	copy(hdr[headerSize:], p.data)
	binary.LittleEndian.PutUint16(hdr[2:4], checksum(hdr))
	return buf
}

func readPacket(r io.Reader) (*packet, error) {
	var prefix [tcpPrefixSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, err
	}
	if prefix[0] != tcpMagic[0] || prefix[1] != tcpMagic[1] ||
		prefix[2] != tcpMagic[2] || prefix[3] != tcpMagic[3] {
		return nil, ErrBadMagic
	}
	size := binary.LittleEndian.Uint32(prefix[4:8])
	if size < headerSize || size > maxPacketSize {
		return nil, errors.Wrapf(ErrBadLength, "%d bytes", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return &packet{
		command:   binary.LittleEndian.Uint16(buf[0:2]),
		checksum:  binary.LittleEndian.Uint16(buf[2:4]),
		sessionID: binary.LittleEndian.Uint16(buf[4:6]),
		replyID:   binary.LittleEndian.Uint16(buf[6:8]),
		data:      buf[headerSize:],
	}, nil
}

// decodeTime converts the packed terminal time representation
func decodeTime(t uint32, loc *time.Location) time.Time {
	second := int(t % 60)
	t /= 60
	minute := int(t % 60)
	t /= 60
	hour := int(t % 24)
	t /= 24
	day := int(t%31) + 1
	t /= 31
	month := time.Month(t%12) + 1
	t /= 12
	year := int(t) + 2000
	return time.Date(year, month, day, hour, minute, second, 0, loc)
}

// decodeAttendance parses an attendance log buffer: a little-endian total
// size followed by fixed size records.
func decodeAttendance(buf []byte, ip string, loc *time.Location) []model.TerminalRecord {
	if len(buf) < 4 {
		return nil
	}
	body := buf[4:]
	if total := int(binary.LittleEndian.Uint32(buf[0:4])); total < len(body) {
		body = body[:total]
	}
	records := make([]model.TerminalRecord, 0, len(body)/recordSize)
	for off := 0; off+recordSize <= len(body); off += recordSize {
		rec := body[off : off+recordSize]
		records = append(records, model.TerminalRecord{
			UserSN:       binary.LittleEndian.Uint16(rec[0:2]),
			DeviceUserID: cString(rec[2:26]),
			RecordTime:   decodeTime(binary.LittleEndian.Uint32(rec[27:31]), loc),
			IP:           ip,
		})
	}
	return records
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimSpace(string(b))
}
