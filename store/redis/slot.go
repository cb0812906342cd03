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

package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	dconfig "github.com/mendersoftware/attendancegw/config"
	"github.com/mendersoftware/attendancegw/model"
	"github.com/mendersoftware/attendancegw/store"
)

const connectTimeout = 5 * time.Second

// NewClient returns a redis client configured from c and verifies the
// server is reachable
func NewClient(ctx context.Context, c config.Reader) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     c.GetString(dconfig.SettingRedisAddr),
		Password: c.GetString(dconfig.SettingRedisPassword),
		DB:       c.GetInt(dconfig.SettingRedisDB),
	})
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "redis: failed to reach server")
	}
	return client, nil
}

// CommandSlot is a store.CommandSlot kept in a single redis key shared by
// all devices
type CommandSlot struct {
	client redis.Cmdable
	key    string
}

var _ store.CommandSlot = &CommandSlot{}

// NewCommandSlot returns the legacy command slot stored under key
func NewCommandSlot(client redis.Cmdable, key string) *CommandSlot {
	return &CommandSlot{
		client: client,
		key:    key,
	}
}

func (s *CommandSlot) Put(ctx context.Context, cmd model.LegacyCommand) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return errors.Wrap(err, "redis: failed to encode command")
	}
	err = s.client.Set(ctx, s.key, data, 0).Err()
	return errors.Wrap(err, "redis: failed to store command")
}

func (s *CommandSlot) Occupied(ctx context.Context) (bool, error) {
	n, err := s.client.Exists(ctx, s.key).Result()
	if err != nil {
		return false, errors.Wrap(err, "redis: failed to check command slot")
	}
	return n > 0, nil
}

func (s *CommandSlot) Take(ctx context.Context) (*model.LegacyCommand, error) {
	data, err := s.client.GetDel(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "redis: failed to take command")
	}
	cmd := new(model.LegacyCommand)
	if err := json.Unmarshal(data, cmd); err != nil {
		return nil, errors.Wrap(err, "redis: malformed command in slot")
	}
	return cmd, nil
}
