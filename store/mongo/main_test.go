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
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
)

// Set ATTENDANCEGW_TEST_MONGO to a mongo URL to run the datastore tests.
const envTestMongo = "ATTENDANCEGW_TEST_MONGO"

var (
	testClient *mongo.Client
	testDBSeq  int32
)

func TestMain(m *testing.M) {
	flag.Parse()
	if url := os.Getenv(envTestMongo); url != "" && !testing.Short() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := mongo.Connect(ctx, mopts.Client().ApplyURI(url))
		if err == nil {
			err = client.Ping(ctx, nil)
		}
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect to %s: %s\n", url, err)
			os.Exit(1)
		}
		testClient = client
	}
	code := m.Run()
	if testClient != nil {
		_ = testClient.Disconnect(context.Background())
	}
	os.Exit(code)
}

func newTestDataStore(t *testing.T) *DataStoreMongo {
	if testClient == nil {
		t.Skipf("%s not set or running in short mode", envTestMongo)
	}
	seq := atomic.AddInt32(&testDBSeq, 1)
	ds := &DataStoreMongo{
		client: testClient,
		dbName: fmt.Sprintf("%s_test_%d_%d", DbName, os.Getpid(), seq),
	}
	t.Cleanup(func() {
		_ = ds.dropDatabase(context.Background())
	})
	return ds
}
