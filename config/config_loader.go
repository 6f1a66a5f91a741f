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

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

const (
	DefaultRolloutPercent   = 100
	DefaultLargeBundleBytes = 20 * 1024 * 1024
)

var (
	config     *Config
	configOnce sync.Once
)

// GetConfig returns the process configuration, loading it from the environment on first use
func GetConfig() *Config {
	configOnce.Do(loadEnvs)
	return config
}

func loadEnvs() {
	config = &Config{}

	envFilePath := os.Getenv("ENV_FILE_PATH")
	if envFilePath != "" {
		err := godotenv.Load(envFilePath)
		if err != nil {
			panic(err)
		}
	}

	r := &configReader{}
	config.ServerHost = r.readOptionalString("SERVER_HOST", "")
	config.ServerPort = int(r.readOptionalInt64("SERVER_PORT", 8080))
	config.AuthHeader = r.readOptionalString("AUTH_HEADER", "Authorization")
	config.AutoMaxProcsEnabled = r.readOptionalBool("AUTO_MAX_PROCS_ENABLED", true)
	config.CORSAllowedOrigin = r.readOptionalString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	// Logging configuration
	config.LogLevel = r.readOptionalString("LOG_LEVEL", "INFO")

	// read database configs
	config.POSTGRESQL = POSTGRESQL{
		Host:     r.readRequiredString("DB_HOST"),
		Port:     int(r.readOptionalInt64("DB_PORT", 5432)),
		User:     r.readRequiredString("DB_USER"),
		Password: r.readRequiredString("DB_PASSWORD"),
		DBName:   r.readRequiredString("DB_NAME"),
		SSLMode:  r.readOptionalString("DB_SSL_MODE", "disable"),
	}
	config.POSTGRESQL.DbConfigs = DbConfigs{
		// gorm configs
		SkipDefaultTransaction:    r.readOptionalBool("GORM_SKIP_DEFAULT_TRANSACTION", true),
		SlowThresholdMilliseconds: r.readOptionalInt64("GORM_SLOW_THRESHOLD_MILLISECONDS", 200),

		// sql.DB configs
		MaxIdleCount:       r.readNullableInt64("DB_MAX_IDLE_COUNT"),
		MaxOpenCount:       r.readNullableInt64("DB_MAX_OPEN_COUNT"),
		MaxIdleTimeSeconds: r.readNullableInt64("DB_MAX_IDLE_TIME_SECONDS"),
		MaxLifetimeSeconds: r.readNullableInt64("DB_MAX_LIFETIME_SECONDS"),
	}

	// HTTP Server timeout configurations
	config.ReadTimeoutSeconds = int(r.readOptionalInt64("HTTP_READ_TIMEOUT_SECONDS", 10))
	config.WriteTimeoutSeconds = int(r.readOptionalInt64("HTTP_WRITE_TIMEOUT_SECONDS", 60))
	config.IdleTimeoutSeconds = int(r.readOptionalInt64("HTTP_IDLE_TIMEOUT_SECONDS", 60))
	config.MaxHeaderBytes = int(r.readOptionalInt64("HTTP_MAX_HEADER_BYTES", 65536)) // 1024 * 64

	config.DbOperationTimeoutSeconds = int(r.readOptionalInt64("DB_OPERATION_TIMEOUT_SECONDS", 10))

	config.PackageVersion = r.readOptionalString("OTA_SERVICE_VERSION", Version)

	config.KeyManagerConfigurations = KeyManagerConfigurations{
		// Comma-separated list of allowed issuers and audiences
		Issuer:   r.readOptionalStringList("KEY_MANAGER_ISSUER", "ota-update-service"),
		Audience: r.readOptionalStringList("KEY_MANAGER_AUDIENCE", "ota-admin"),
		JWKSUrl:  r.readOptionalString("KEY_MANAGER_JWKS_URL", ""),
	}

	config.ObjectStore = ObjectStoreConfig{
		Bucket:                   r.readRequiredString("S3_BUCKET"),
		Region:                   r.readOptionalString("S3_REGION", "us-east-1"),
		Endpoint:                 r.readOptionalString("S3_ENDPOINT", ""),
		UsePathStyle:             r.readOptionalBool("S3_USE_PATH_STYLE", false),
		AccessKeyID:              r.readOptionalString("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey:          r.readOptionalString("S3_SECRET_ACCESS_KEY", ""),
		DownloadURLExpirySeconds: int(r.readOptionalInt64("PRESIGNED_URL_EXPIRY_SECONDS", 600)),
		UploadURLExpirySeconds:   int(r.readOptionalInt64("UPLOAD_URL_EXPIRY_SECONDS", 900)),
	}

	config.Rollout = RolloutConfig{
		DefaultPercent: r.readOptionalFloat64("DEFAULT_ROLLOUT_PERCENT", DefaultRolloutPercent),
	}
	config.Preflight = PreflightConfig{
		LargeBundleBytes: r.readOptionalInt64("PREFLIGHT_LARGE_BUNDLE_BYTES", DefaultLargeBundleBytes),
	}

	validateHTTPServerConfigs(config, r)
	validatePublishingConfigs(config, r)

	r.logAndExitIfErrorsFound()

	slog.Info("configReader: configs loaded")
}

func validateHTTPServerConfigs(cfg *Config, r *configReader) {
	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		r.errors = append(r.errors, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort))
	}
	if cfg.ReadTimeoutSeconds <= 0 {
		r.errors = append(r.errors, fmt.Errorf("HTTP_READ_TIMEOUT_SECONDS must be greater than 0, got %d", cfg.ReadTimeoutSeconds))
	}
	if cfg.WriteTimeoutSeconds <= 0 {
		r.errors = append(r.errors, fmt.Errorf("HTTP_WRITE_TIMEOUT_SECONDS must be greater than 0, got %d", cfg.WriteTimeoutSeconds))
	}
	if cfg.ReadTimeoutSeconds >= cfg.WriteTimeoutSeconds {
		r.errors = append(r.errors, fmt.Errorf("HTTP_READ_TIMEOUT_SECONDS (%d) must be < HTTP_WRITE_TIMEOUT_SECONDS (%d)",
			cfg.ReadTimeoutSeconds, cfg.WriteTimeoutSeconds))
	}
	if cfg.IdleTimeoutSeconds <= 0 {
		r.errors = append(r.errors, fmt.Errorf("HTTP_IDLE_TIMEOUT_SECONDS must be greater than 0, got %d", cfg.IdleTimeoutSeconds))
	}
	if cfg.MaxHeaderBytes < 1024 || cfg.MaxHeaderBytes > 1048576 { // 1KB to 1MB
		r.errors = append(r.errors, fmt.Errorf("HTTP_MAX_HEADER_BYTES must be between 1024 and 1048576, got %d", cfg.MaxHeaderBytes))
	}
}

func validatePublishingConfigs(cfg *Config, r *configReader) {
	if cfg.Rollout.DefaultPercent < 0 || cfg.Rollout.DefaultPercent > 100 {
		r.errors = append(r.errors, fmt.Errorf("DEFAULT_ROLLOUT_PERCENT must be between 0 and 100, got %v", cfg.Rollout.DefaultPercent))
	}
	if cfg.Preflight.LargeBundleBytes <= 0 {
		r.errors = append(r.errors, fmt.Errorf("PREFLIGHT_LARGE_BUNDLE_BYTES must be greater than 0, got %d", cfg.Preflight.LargeBundleBytes))
	}
	if cfg.ObjectStore.DownloadURLExpirySeconds <= 0 || cfg.ObjectStore.UploadURLExpirySeconds <= 0 {
		r.errors = append(r.errors, fmt.Errorf("presigned URL expiries must be greater than 0"))
	}
	if (cfg.ObjectStore.AccessKeyID == "") != (cfg.ObjectStore.SecretAccessKey == "") {
		r.errors = append(r.errors, fmt.Errorf("S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY must be set together"))
	}
}
