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
	"sync"
)

// CommandQueue holds the pending commands of every device. Commands are
// delivered in the order they were enqueued, per device.
//
//go:generate ../utils/mockgen.sh
type CommandQueue interface {
	Enqueue(serial, command string)
	// DequeueOne pops the oldest command for serial; ok is false when
	// nothing is pending
	DequeueOne(serial string) (command string, ok bool)
	Len(serial string) int
}

type memoryQueue struct {
	mu     sync.Mutex
	queues map[string][]string
}

// NewCommandQueue returns an empty in-memory command queue. Its content
// does not survive a restart.
func NewCommandQueue() CommandQueue {
	return &memoryQueue{
		queues: make(map[string][]string),
	}
}

func (q *memoryQueue) Enqueue(serial, command string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queues[serial] = append(q.queues[serial], command)
}

func (q *memoryQueue) DequeueOne(serial string) (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	pending := q.queues[serial]
	if len(pending) == 0 {
		return "", false
	}
	command := pending[0]
	if len(pending) == 1 {
		delete(q.queues, serial)
	} else {
		pending[0] = ""
		q.queues[serial] = pending[1:]
	}
	return command, true
}

func (q *memoryQueue) Len(serial string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queues[serial])
}
