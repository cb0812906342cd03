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
	"crypto/tls"
	"strings"
	"time"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	dconfig "github.com/mendersoftware/attendancegw/config"
	"github.com/mendersoftware/attendancegw/model"
	"github.com/mendersoftware/attendancegw/store"
)

const (
	// DevicesCollectionName refers to the name of the collection of
	// registered devices and their status
	DevicesCollectionName = "devices"

	// AttendanceCollectionName refers to the name of the collection of
	// attendance records
	AttendanceCollectionName = "attendance"
)

const (
	dbFieldID           = "_id"
	dbFieldPropertyCode = "property_code"
	dbFieldStatus       = "status"
	dbFieldLastSeen     = "last_seen"
	dbFieldCreatedTs    = "created_ts"
	dbFieldUpdatedTs    = "updated_ts"
	dbFieldSerial       = "serial"
	dbFieldAttTime      = "attendance_time"
)

// SetupDataStore returns the mongo data store and optionally runs migrations
func SetupDataStore(automigrate bool) (*DataStoreMongo, error) {
	ctx := context.Background()
	dbClient, err := NewClient(ctx, config.Config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to db")
	}
	dbName := config.Config.GetString(dconfig.SettingDbName)
	err = Migrate(ctx, dbName, DbVersion, dbClient, automigrate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to run migrations")
	}
	dataStore := NewDataStoreWithClient(dbClient, config.Config)
	return dataStore, nil
}

// NewClient returns a mongo client
func NewClient(ctx context.Context, c config.Reader) (*mongo.Client, error) {
	clientOptions := mopts.Client()
	mongoURL := c.GetString(dconfig.SettingMongo)
	if !strings.Contains(mongoURL, "://") {
		return nil, errors.Errorf("Invalid mongoURL %q: missing schema.",
			mongoURL)
	}
	clientOptions.ApplyURI(mongoURL)

	username := c.GetString(dconfig.SettingDbUsername)
	if username != "" {
		credentials := mopts.Credential{
			Username: c.GetString(dconfig.SettingDbUsername),
		}
		password := c.GetString(dconfig.SettingDbPassword)
		if password != "" {
			credentials.Password = password
			credentials.PasswordSet = true
		}
		clientOptions.SetAuth(credentials)
	}

	if c.GetBool(dconfig.SettingDbSSL) {
		tlsConfig := &tls.Config{}
		tlsConfig.InsecureSkipVerify = c.GetBool(dconfig.SettingDbSSLSkipVerify)
		clientOptions.SetTLSConfig(tlsConfig)
	}

	// Acknowledge writes once they are journaled on the primary.
	clientOptions.SetWriteConcern(writeconcern.New(
		writeconcern.W(1),
		writeconcern.J(true),
	))

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to connect to mongo server")
	}

	// Validate connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "Error reaching mongo server")
	}

	return client, nil
}

// DataStoreMongo is the data storage service
type DataStoreMongo struct {
	// client holds the reference to the client used to communicate with the
	// mongodb server.
	client *mongo.Client
	// dbName contains the name of the gateway database.
	dbName string
}

// NewDataStoreWithClient initializes a DataStore object
func NewDataStoreWithClient(client *mongo.Client, c config.Reader) *DataStoreMongo {
	dbName := c.GetString(dconfig.SettingDbName)
	if dbName == "" {
		dbName = DbName
	}

	return &DataStoreMongo{
		client: client,
		dbName: dbName,
	}
}

func (db *DataStoreMongo) collection(name string) *mongo.Collection {
	return db.client.Database(db.dbName).Collection(name)
}

// Ping verifies the connection to the database
func (db *DataStoreMongo) Ping(ctx context.Context) error {
	res := db.client.Database(db.dbName).RunCommand(ctx, bson.M{"ping": 1})
	return res.Err()
}

// RegisterDevice adds a device to the registry or moves it to another property
func (db *DataStoreMongo) RegisterDevice(
	ctx context.Context,
	serial string,
	propertyCode string,
) error {
	now := time.Now().UTC()
	_, err := db.collection(DevicesCollectionName).UpdateOne(ctx,
		bson.D{{Key: dbFieldID, Value: serial}},
		bson.M{
			"$set": bson.M{
				dbFieldPropertyCode: propertyCode,
				dbFieldUpdatedTs:    now,
			},
			"$setOnInsert": bson.M{
				dbFieldStatus:    model.DeviceStatusUnknown,
				dbFieldCreatedTs: now,
			},
		},
		mopts.Update().SetUpsert(true),
	)
	return errors.Wrap(err, "mongo: failed to register device")
}

// DeleteDevice removes a device from the registry
func (db *DataStoreMongo) DeleteDevice(ctx context.Context, serial string) error {
	res, err := db.collection(DevicesCollectionName).
		DeleteOne(ctx, bson.D{{Key: dbFieldID, Value: serial}})
	if err != nil {
		return errors.Wrap(err, "mongo: failed to delete device")
	} else if res.DeletedCount == 0 {
		return store.ErrDeviceNotFound
	}
	return nil
}

// GetDevice returns a device, or store.ErrDeviceNotFound if it does not exist
func (db *DataStoreMongo) GetDevice(ctx context.Context, serial string) (*model.Device, error) {
	res := db.collection(DevicesCollectionName).
		FindOne(ctx, bson.D{{Key: dbFieldID, Value: serial}})

	device := &model.Device{}
	if err := res.Decode(device); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrDeviceNotFound
		}
		return nil, errors.Wrap(err, "mongo: failed to get device")
	}
	return device, nil
}

// LookupDevice resolves the property code of a registered device
func (db *DataStoreMongo) LookupDevice(ctx context.Context, serial string) (string, error) {
	var device model.Device
	err := db.collection(DevicesCollectionName).FindOne(ctx,
		bson.D{{Key: dbFieldID, Value: serial}},
		mopts.FindOne().SetProjection(bson.M{dbFieldPropertyCode: 1}),
	).Decode(&device)
	if err == mongo.ErrNoDocuments {
		return "", store.ErrDeviceNotFound
	} else if err != nil {
		return "", errors.Wrap(err, "mongo: failed to look up device")
	} else if !device.Registered() {
		// Devices which only ever polled have a status but no property.
		return "", store.ErrDeviceNotFound
	}
	return device.PropertyCode, nil
}

// SetDeviceStatus records the status of a device and when it was observed
func (db *DataStoreMongo) SetDeviceStatus(
	ctx context.Context,
	serial string,
	status string,
	at time.Time,
) error {
	now := time.Now().UTC()
	_, err := db.collection(DevicesCollectionName).UpdateOne(ctx,
		bson.D{{Key: dbFieldID, Value: serial}},
		bson.M{
			"$set": bson.M{
				dbFieldStatus:    status,
				dbFieldLastSeen:  at.UTC(),
				dbFieldUpdatedTs: now,
			},
			"$setOnInsert": bson.M{
				dbFieldCreatedTs: now,
			},
		},
		mopts.Update().SetUpsert(true),
	)
	return errors.Wrap(err, "mongo: failed to update device status")
}

// AppendAttendance stores a batch of attendance events
func (db *DataStoreMongo) AppendAttendance(
	ctx context.Context,
	propertyCode string,
	serial string,
	events []model.AttendanceEvent,
) error {
	if len(events) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, len(events))
	for i, event := range events {
		docs[i] = model.AttendanceRecord{
			AttendanceEvent: event,
			Serial:          serial,
			PropertyCode:    propertyCode,
			ReceivedTs:      now,
		}
	}
	_, err := db.collection(AttendanceCollectionName).
		InsertMany(ctx, docs, mopts.InsertMany().SetOrdered(false))
	return errors.Wrap(err, "mongo: failed to store attendance")
}

// Close disconnects the client
func (db *DataStoreMongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return db.client.Disconnect(ctx)
}

//nolint:unused
func (db *DataStoreMongo) dropDatabase(ctx context.Context) error {
	return db.client.Database(db.dbName).Drop(ctx)
}
