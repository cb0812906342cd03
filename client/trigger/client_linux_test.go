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

//go:build linux

package trigger

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

// newUnacceptingListener returns the address of a socket listening with a
// zero backlog which is never accepted from. Once its queue is filled,
// further SYNs are dropped and connecting hangs.
func newUnacceptingListener(t *testing.T) string {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { unix.Close(fd) })
	err = unix.Bind(fd, &unix.SockaddrInet4{Addr: [4]byte{127, 0, 0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if err = unix.Listen(fd, 0); err != nil {
		t.Fatal(err)
	}
	sa, err := unix.Getsockname(fd)
	if err != nil {
		t.Fatal(err)
	}
	addr := net.JoinHostPort("127.0.0.1",
		strconv.Itoa(sa.(*unix.SockaddrInet4).Port))

	for i := 0; i < 8; i++ {
		conn, err := net.DialTimeout("tcp", addr, 200*time.Millisecond)
		if err != nil {
			return addr
		}
		t.Cleanup(func() { conn.Close() })
	}
	t.Skip("accept queue never filled up")
	return ""
}

func TestTriggerConnectTimeout(t *testing.T) {
	addr := newUnacceptingListener(t)
	client := NewClient(300 * time.Millisecond)

	start := time.Now()
	res, err := client.Trigger(context.Background(), addr, "10.0.0.1", 8080)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), "failed to connect to device")
	assert.Nil(t, res)
	assert.Less(t, time.Since(start), 2*time.Second)
}
