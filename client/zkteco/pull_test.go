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

package zkteco_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mendersoftware/attendancegw/client/zkteco"
	"github.com/mendersoftware/attendancegw/client/zkteco/mocks"
	"github.com/mendersoftware/attendancegw/model"
)

func TestPull(t *testing.T) {
	t.Parallel()
	records := []model.TerminalRecord{{
		UserSN:       1,
		DeviceUserID: "emp1",
		RecordTime:   time.Date(2024, 5, 23, 9, 5, 0, 0, time.UTC),
	}}

	testCases := []struct {
		Name string

		ConnectError    error
		FetchError      error
		DisconnectError error
		FetchCalled     bool

		Records []model.TerminalRecord
		Error   error
	}{{
		Name: "ok",

		FetchCalled: true,
		Records:     records,
	}, {
		Name: "ok, disconnect error is swallowed",

		FetchCalled:     true,
		DisconnectError: errors.New("broken pipe"),
		Records:         records,
	}, {
		Name: "error, connect",

		ConnectError: errors.New("connection refused"),
		Error:        errors.New("failed to connect to terminal: connection refused"),
	}, {
		Name: "error, fetch",

		FetchCalled: true,
		FetchError:  errors.New("unexpected reply"),
		Error:       errors.New("failed to read attendance: unexpected reply"),
	}, {
		Name: "error, fetch and disconnect",

		FetchCalled:     true,
		FetchError:      errors.New("unexpected reply"),
		DisconnectError: errors.New("broken pipe"),
		Error:           errors.New("failed to read attendance: unexpected reply"),
	}}

	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			term := mocks.NewTerminal(t)
			term.On("Connect", mock.Anything).Return(tc.ConnectError).Once()
			if tc.FetchCalled {
				var res []model.TerminalRecord
				if tc.FetchError == nil {
					res = records
				}
				term.On("GetAttendance", mock.Anything).
					Return(res, tc.FetchError).
					Once()
			}
			term.On("Disconnect").Return(tc.DisconnectError).Once()

			res, err := zkteco.Pull(context.Background(), term)
			if tc.Error != nil {
				assert.EqualError(t, err, tc.Error.Error())
				assert.Nil(t, res)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.Records, res)
			}
			term.AssertNumberOfCalls(t, "Disconnect", 1)
		})
	}
}

func TestClientUsesFactory(t *testing.T) {
	term := mocks.NewTerminal(t)
	term.On("Connect", mock.Anything).Return(nil).Once()
	term.On("GetAttendance", mock.Anything).
		Return([]model.TerminalRecord{}, nil).
		Once()
	term.On("Disconnect").Return(nil).Once()

	var (
		gotIP      string
		gotPort    int
		gotTimeout time.Duration
	)
	client := zkteco.NewClientWithFactory(
		func(ip string, port int, timeout time.Duration) zkteco.Terminal {
			gotIP, gotPort, gotTimeout = ip, port, timeout
			return term
		})
	res, err := client.FetchAttendance(context.Background(), "10.0.0.5", 4370, 3*time.Second)
	assert.NoError(t, err)
	assert.Empty(t, res)
	assert.Equal(t, "10.0.0.5", gotIP)
	assert.Equal(t, 4370, gotPort)
	assert.Equal(t, 3*time.Second, gotTimeout)
}
