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
	"strconv"
	"strings"
)

// Version is overridden at build time with -ldflags "-X .../config.Version=..."
var Version = "dev"

type configReader struct {
	errors []error
}

func (r *configReader) readRequiredString(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		r.errors = append(r.errors, fmt.Errorf("environment variable %s is required", key))
	}
	return value
}

func (r *configReader) readOptionalString(key string, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return strings.TrimSpace(value)
}

func (r *configReader) readOptionalStringList(key string, defaultValue string) []string {
	raw := r.readOptionalString(key, defaultValue)
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func (r *configReader) readOptionalInt64(key string, defaultValue int64) int64 {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		r.errors = append(r.errors, fmt.Errorf("environment variable %s must be an integer: %w", key, err))
		return defaultValue
	}
	return value
}

func (r *configReader) readNullableInt64(key string) *int64 {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		r.errors = append(r.errors, fmt.Errorf("environment variable %s must be an integer: %w", key, err))
		return nil
	}
	return &value
}

func (r *configReader) readOptionalFloat64(key string, defaultValue float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		r.errors = append(r.errors, fmt.Errorf("environment variable %s must be a number: %w", key, err))
		return defaultValue
	}
	return value
}

func (r *configReader) readOptionalBool(key string, defaultValue bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		r.errors = append(r.errors, fmt.Errorf("environment variable %s must be a boolean: %w", key, err))
		return defaultValue
	}
	return value
}

func (r *configReader) logAndExitIfErrorsFound() {
	if len(r.errors) == 0 {
		return
	}
	for _, err := range r.errors {
		slog.Error("configReader: invalid configuration", "error", err)
	}
	os.Exit(1)
}
