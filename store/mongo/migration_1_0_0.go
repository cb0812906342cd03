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

package mongo

import (
	"context"

	"github.com/mendersoftware/go-lib-micro/mongo/migrate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
)

const (
	IndexNameDevicesProperty    = dbFieldPropertyCode
	IndexNameAttendanceByTime   = dbFieldPropertyCode + "_" + dbFieldAttTime
	IndexNameAttendanceBySerial = dbFieldSerial + "_" + dbFieldAttTime
)

type migration_1_0_0 struct {
	client *mongo.Client
	db     string
}

// Up creates the registry and attendance indexes
func (m *migration_1_0_0) Up(from migrate.Version) error {
	ctx := context.Background()
	database := m.client.Database(m.db)

	collections := map[string][]mongo.IndexModel{
		DevicesCollectionName: {
			{
				Keys:    bson.D{{Key: dbFieldPropertyCode, Value: 1}},
				Options: mopts.Index().SetName(IndexNameDevicesProperty),
			},
		},
		AttendanceCollectionName: {
			{
				Keys: bson.D{
					{Key: dbFieldPropertyCode, Value: 1},
					{Key: dbFieldAttTime, Value: 1},
				},
				Options: mopts.Index().SetName(IndexNameAttendanceByTime),
			},
			{
				Keys: bson.D{
					{Key: dbFieldSerial, Value: 1},
					{Key: dbFieldAttTime, Value: 1},
				},
				Options: mopts.Index().SetName(IndexNameAttendanceBySerial),
			},
		},
	}

	for name, indexes := range collections {
		if len(indexes) == 0 {
			continue
		}
		_, err := database.Collection(name).
			Indexes().
			CreateMany(ctx, indexes)
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *migration_1_0_0) Version() migrate.Version {
	return migrate.MakeVersion(1, 0, 0)
}
