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
	"time"

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/mendersoftware/attendancegw/model"
)

// Client pulls attendance logs from terminals
//
//go:generate ../../utils/mockgen.sh
type Client interface {
	FetchAttendance(
		ctx context.Context,
		ip string,
		port int,
		timeout time.Duration,
	) ([]model.TerminalRecord, error)
}

// TerminalFactory opens terminal sessions
type TerminalFactory func(ip string, port int, timeout time.Duration) Terminal

type client struct {
	newTerminal TerminalFactory
}

// NewClient returns a Client which interprets terminal time in loc
func NewClient(loc *time.Location) Client {
	return NewClientWithFactory(func(ip string, port int, timeout time.Duration) Terminal {
		return NewTerminal(ip, port, timeout, loc)
	})
}

// NewClientWithFactory returns a Client using factory for every session
func NewClientWithFactory(factory TerminalFactory) Client {
	return &client{newTerminal: factory}
}

func (c *client) FetchAttendance(
	ctx context.Context,
	ip string,
	port int,
	timeout time.Duration,
) ([]model.TerminalRecord, error) {
	return Pull(ctx, c.newTerminal(ip, port, timeout))
}

// Pull connects t and reads its attendance log. t is disconnected exactly
// once whatever the outcome; a failing disconnect is logged and never
// replaces the result.
func Pull(ctx context.Context, t Terminal) (records []model.TerminalRecord, err error) {
	l := log.FromContext(ctx)
	defer func() {
		if derr := t.Disconnect(); derr != nil {
			l.Warnf("zkteco: disconnect failed: %s", derr)
		}
	}()

	if err = t.Connect(ctx); err != nil {
		return nil, errors.WithMessage(err, "failed to connect to terminal")
	}
	records, err = t.GetAttendance(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to read attendance")
	}
	return records, nil
}
