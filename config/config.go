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

package config

import (
	"github.com/mendersoftware/go-lib-micro/config"
)

const (
	// SettingListen is the config key for the listen address
	SettingListen = "listen"
	// SettingListenDefault is the default value for the listen address
	SettingListenDefault = ":8080"

	// SettingMongo is the config key for the mongo URL
	SettingMongo = "mongo_url"
	// SettingMongoDefault is the default value for the mongo URL
	SettingMongoDefault = "mongodb://mongo:27017"

	// SettingDbName is the config key for the mongo database name
	SettingDbName = "mongo_dbname"
	// SettingDbNameDefault is the default value for the mongo database name
	SettingDbNameDefault = "attendancegw"

	// SettingDbSSL is the config key for the mongo SSL setting
	SettingDbSSL = "mongo_ssl"
	// SettingDbSSLDefault is the default value for the mongo SSL setting
	SettingDbSSLDefault = false

	// SettingDbSSLSkipVerify is the config key for the mongo SSL skip verify setting
	SettingDbSSLSkipVerify = "mongo_ssl_skipverify"
	// SettingDbSSLSkipVerifyDefault is the default value for the mongo SSL skip verify setting
	SettingDbSSLSkipVerifyDefault = false

	// SettingDbUsername is the config key for the mongo username
	SettingDbUsername = "mongo_username"

	// SettingDbPassword is the config key for the mongo password
	SettingDbPassword = "mongo_password"

	// SettingRedisAddr is the config key for the redis address
	SettingRedisAddr = "redis_addr"
	// SettingRedisAddrDefault is the default value for the redis address
	SettingRedisAddrDefault = "redis:6379"

	// SettingRedisDB is the config key for the redis database index
	SettingRedisDB = "redis_db"
	// SettingRedisDBDefault is the default value for the redis database index
	SettingRedisDBDefault = 0

	// SettingRedisPassword is the config key for the redis password
	SettingRedisPassword = "redis_password"

	// SettingLegacySlotKey is the config key for the redis key holding the
	// legacy command slot
	SettingLegacySlotKey = "legacy_slot_key"
	// SettingLegacySlotKeyDefault is the default value for the legacy slot key
	SettingLegacySlotKeyDefault = "attendancegw:legacy_command"

	// SettingNatsURI is the config key for the nats uri; leave empty to
	// disable publishing attendance batches
	SettingNatsURI = "nats_uri"
	// SettingNatsURIDefault is the default value for the nats uri
	SettingNatsURIDefault = ""

	// SettingNatsSubjectPrefix is the config key for the subject prefix of
	// published attendance batches
	SettingNatsSubjectPrefix = "nats_subject_prefix"
	// SettingNatsSubjectPrefixDefault is the default subject prefix
	SettingNatsSubjectPrefixDefault = "attendance"

	// SettingAcceptedOrigins is the config key for the origins accepted by
	// the operator API; an empty list accepts every origin
	SettingAcceptedOrigins = "accepted_origins"

	// SettingDebugLog is the config key for the turning on the debug log
	SettingDebugLog = "debug_log"
	// SettingDebugLogDefault is the default value for the debug log enabling
	SettingDebugLogDefault = false

	// SettingProduction is the config key hiding error details from
	// operator API responses
	SettingProduction = "production"
	// SettingProductionDefault is the default value for the production flag
	SettingProductionDefault = true

	// SettingDeviceTimezone is the config key for the time zone used to
	// interpret device timestamps without an offset
	SettingDeviceTimezone = "device_timezone"
	// SettingDeviceTimezoneDefault is the default device time zone
	SettingDeviceTimezoneDefault = "UTC"

	// SettingTriggerTimeout is the config key for the active trigger
	// exchange timeout in seconds
	SettingTriggerTimeout = "trigger_timeout_seconds"
	// SettingTriggerTimeoutDefault is the default active trigger timeout
	SettingTriggerTimeoutDefault = 15

	// SettingProbeTimeout is the config key for the port probe timeout in
	// milliseconds
	SettingProbeTimeout = "probe_timeout_ms"
	// SettingProbeTimeoutDefault is the default port probe timeout
	SettingProbeTimeoutDefault = 1000

	// SettingPullTimeout is the config key for the default pull-fetch
	// timeout in seconds
	SettingPullTimeout = "pull_timeout_seconds"
	// SettingPullTimeoutDefault is the default pull-fetch timeout
	SettingPullTimeoutDefault = 10
)

var (
	// Defaults are the default configuration settings
	Defaults = []config.Default{
		{Key: SettingListen, Value: SettingListenDefault},
		{Key: SettingMongo, Value: SettingMongoDefault},
		{Key: SettingDbName, Value: SettingDbNameDefault},
		{Key: SettingDbSSL, Value: SettingDbSSLDefault},
		{Key: SettingDbSSLSkipVerify, Value: SettingDbSSLSkipVerifyDefault},
		{Key: SettingRedisAddr, Value: SettingRedisAddrDefault},
		{Key: SettingRedisDB, Value: SettingRedisDBDefault},
		{Key: SettingLegacySlotKey, Value: SettingLegacySlotKeyDefault},
		{Key: SettingNatsURI, Value: SettingNatsURIDefault},
		{Key: SettingNatsSubjectPrefix, Value: SettingNatsSubjectPrefixDefault},
		{Key: SettingAcceptedOrigins, Value: []string{}},
		{Key: SettingDebugLog, Value: SettingDebugLogDefault},
		{Key: SettingProduction, Value: SettingProductionDefault},
		{Key: SettingDeviceTimezone, Value: SettingDeviceTimezoneDefault},
		{Key: SettingTriggerTimeout, Value: SettingTriggerTimeoutDefault},
		{Key: SettingProbeTimeout, Value: SettingProbeTimeoutDefault},
		{Key: SettingPullTimeout, Value: SettingPullTimeoutDefault},
	}
)
