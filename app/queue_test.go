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
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandQueue(t *testing.T) {
	q := NewCommandQueue()

	_, ok := q.DequeueOne("SN1")
	assert.False(t, ok)

	q.Enqueue("SN1", "reboot")
	q.Enqueue("SN1", "sync")
	q.Enqueue("SN2", "clear")
	assert.Equal(t, 2, q.Len("SN1"))
	assert.Equal(t, 1, q.Len("SN2"))

	cmd, ok := q.DequeueOne("SN1")
	assert.True(t, ok)
	assert.Equal(t, "reboot", cmd)

	cmd, ok = q.DequeueOne("SN2")
	assert.True(t, ok)
	assert.Equal(t, "clear", cmd)

	cmd, ok = q.DequeueOne("SN1")
	assert.True(t, ok)
	assert.Equal(t, "sync", cmd)

	_, ok = q.DequeueOne("SN1")
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len("SN1"))
}

func TestCommandQueueConcurrent(t *testing.T) {
	const (
		devices  = 8
		commands = 100
	)
	q := NewCommandQueue()

	var wg sync.WaitGroup
	for d := 0; d < devices; d++ {
		wg.Add(1)
		go func(serial string) {
			defer wg.Done()
			for i := 0; i < commands; i++ {
				q.Enqueue(serial, fmt.Sprintf("cmd-%d", i))
			}
		}(fmt.Sprintf("SN%d", d))
	}
	wg.Wait()

	for d := 0; d < devices; d++ {
		wg.Add(1)
		go func(serial string) {
			defer wg.Done()
			for i := 0; i < commands; i++ {
				cmd, ok := q.DequeueOne(serial)
				assert.True(t, ok)
				assert.Equal(t, fmt.Sprintf("cmd-%d", i), cmd)
			}
			_, ok := q.DequeueOne(serial)
			assert.False(t, ok)
		}(fmt.Sprintf("SN%d", d))
	}
	wg.Wait()
}
