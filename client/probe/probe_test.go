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

package probe

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func listen(t *testing.T) (host string, port int, closeFn func()) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()
	addr := ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port, func() { ln.Close() }
}

func TestProbe(t *testing.T) {
	host, port, closeFn := listen(t)

	p := NewProber(time.Second)
	assert.True(t, p.Probe(context.Background(), host, port))

	closeFn()
	assert.False(t, p.Probe(context.Background(), host, port))
}

func TestProbeInvalidHost(t *testing.T) {
	p := NewProber(100 * time.Millisecond)
	assert.False(t, p.Probe(context.Background(), "invalid host name", 80))
}

func TestProbeCancelled(t *testing.T) {
	host, port, closeFn := listen(t)
	defer closeFn()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewProber(0)
	assert.False(t, p.Probe(ctx, host, port))
}
