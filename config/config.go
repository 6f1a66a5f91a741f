// Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package config

// Config holds all configuration for the application
type Config struct {
	PackageVersion      string
	ServerHost          string
	ServerPort          int
	AuthHeader          string
	AutoMaxProcsEnabled bool
	LogLevel            string
	POSTGRESQL          POSTGRESQL
	// HTTP Server timeout configurations
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
	IdleTimeoutSeconds  int
	MaxHeaderBytes      int
	// Database operation timeout configuration
	DbOperationTimeoutSeconds int

	// CORSAllowedOrigin is the single allowed origin for CORS; use "*" to allow all
	CORSAllowedOrigin string

	KeyManagerConfigurations KeyManagerConfigurations

	// Object storage holding bundles and assets
	ObjectStore ObjectStoreConfig

	// Publishing defaults
	Rollout RolloutConfig

	// Preflight thresholds
	Preflight PreflightConfig
}

type KeyManagerConfigurations struct {
	Issuer   []string
	Audience []string
	JWKSUrl  string
}

type POSTGRESQL struct {
	Host     string
	Port     int
	User     string
	DBName   string
	Password string `json:"-"`
	SSLMode  string
	DbConfigs
}

type DbConfigs struct {
	// gorm configs
	SlowThresholdMilliseconds int64
	SkipDefaultTransaction    bool

	// go sql configs
	MaxIdleCount       *int64 // zero means defaultMaxIdleConns (2); negative means 0
	MaxOpenCount       *int64 // <= 0 means unlimited
	MaxLifetimeSeconds *int64 // maximum amount of time a connection may be reused
	MaxIdleTimeSeconds *int64
}

// ObjectStoreConfig holds the S3 (or S3-compatible) bucket settings
type ObjectStoreConfig struct {
	Bucket string
	Region string
	// Endpoint is set for S3-compatible stores (MinIO, R2, ...). Empty means AWS.
	Endpoint        string
	UsePathStyle    bool
	AccessKeyID     string
	SecretAccessKey string `json:"-"`
	// Lifetime of presigned GET URLs handed to clients in manifests
	DownloadURLExpirySeconds int
	// Lifetime of presigned PUT URLs handed to publishers
	UploadURLExpirySeconds int
}

// RolloutConfig holds defaults applied when a caller omits a rollout percentage
type RolloutConfig struct {
	DefaultPercent float64
}

type PreflightConfig struct {
	LargeBundleBytes int64
}
