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
	"strconv"
	"time"

	"github.com/mendersoftware/go-lib-micro/log"
)

// DefaultTimeout is the connect timeout of a probe
const DefaultTimeout = time.Second

// Prober checks whether a TCP port accepts connections
//
//go:generate ../../utils/mockgen.sh
type Prober interface {
	Probe(ctx context.Context, host string, port int) bool
}

type prober struct {
	timeout time.Duration
}

// NewProber returns a Prober using the given connect timeout
func NewProber(timeout time.Duration) Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &prober{timeout: timeout}
}

// Probe returns true if a TCP connection to host:port could be opened
// within the timeout. It never fails.
func (p *prober) Probe(ctx context.Context, host string, port int) bool {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	dialer := net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		log.FromContext(ctx).Debugf("probe %s: %s", addr, err)
		return false
	}
	_ = conn.Close()
	return true
}
