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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigReader(t *testing.T) {
	t.Run("required string missing records an error", func(t *testing.T) {
		t.Setenv("OTA_TEST_REQUIRED", "  ")
		r := &configReader{}
		assert.Equal(t, "", r.readRequiredString("OTA_TEST_REQUIRED"))
		require.Len(t, r.errors, 1)
		assert.Contains(t, r.errors[0].Error(), "OTA_TEST_REQUIRED")
	})

	t.Run("optional values fall back to defaults", func(t *testing.T) {
		r := &configReader{}
		assert.Equal(t, "fallback", r.readOptionalString("OTA_TEST_UNSET_STRING", "fallback"))
		assert.Equal(t, int64(7), r.readOptionalInt64("OTA_TEST_UNSET_INT", 7))
		assert.Equal(t, 12.5, r.readOptionalFloat64("OTA_TEST_UNSET_FLOAT", 12.5))
		assert.True(t, r.readOptionalBool("OTA_TEST_UNSET_BOOL", true))
		assert.Nil(t, r.readNullableInt64("OTA_TEST_UNSET_INT"))
		assert.Empty(t, r.errors)
	})

	t.Run("set values are parsed", func(t *testing.T) {
		t.Setenv("OTA_TEST_INT", " 42 ")
		t.Setenv("OTA_TEST_FLOAT", "33.3")
		t.Setenv("OTA_TEST_BOOL", "false")
		t.Setenv("OTA_TEST_LIST", "a, b,,c ")
		r := &configReader{}
		assert.Equal(t, int64(42), r.readOptionalInt64("OTA_TEST_INT", 0))
		assert.Equal(t, 33.3, r.readOptionalFloat64("OTA_TEST_FLOAT", 0))
		assert.False(t, r.readOptionalBool("OTA_TEST_BOOL", true))
		assert.Equal(t, []string{"a", "b", "c"}, r.readOptionalStringList("OTA_TEST_LIST", ""))
		nullable := r.readNullableInt64("OTA_TEST_INT")
		require.NotNil(t, nullable)
		assert.Equal(t, int64(42), *nullable)
		assert.Empty(t, r.errors)
	})

	t.Run("malformed values record errors", func(t *testing.T) {
		t.Setenv("OTA_TEST_BAD_INT", "ten")
		t.Setenv("OTA_TEST_BAD_FLOAT", "half")
		t.Setenv("OTA_TEST_BAD_BOOL", "maybe")
		r := &configReader{}
		assert.Equal(t, int64(3), r.readOptionalInt64("OTA_TEST_BAD_INT", 3))
		assert.Equal(t, 1.0, r.readOptionalFloat64("OTA_TEST_BAD_FLOAT", 1))
		assert.True(t, r.readOptionalBool("OTA_TEST_BAD_BOOL", true))
		assert.Len(t, r.errors, 3)
	})
}

func TestValidatePublishingConfigs(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Rollout:   RolloutConfig{DefaultPercent: DefaultRolloutPercent},
			Preflight: PreflightConfig{LargeBundleBytes: DefaultLargeBundleBytes},
			ObjectStore: ObjectStoreConfig{
				DownloadURLExpirySeconds: 600,
				UploadURLExpirySeconds:   900,
			},
		}
	}

	r := &configReader{}
	validatePublishingConfigs(valid(), r)
	assert.Empty(t, r.errors)

	cfg := valid()
	cfg.Rollout.DefaultPercent = 150
	cfg.Preflight.LargeBundleBytes = 0
	cfg.ObjectStore.AccessKeyID = "only-the-id"
	r = &configReader{}
	validatePublishingConfigs(cfg, r)
	assert.Len(t, r.errors, 3)
}

func TestValidateHTTPServerConfigs(t *testing.T) {
	cfg := &Config{
		ServerPort:          8080,
		ReadTimeoutSeconds:  10,
		WriteTimeoutSeconds: 60,
		IdleTimeoutSeconds:  60,
		MaxHeaderBytes:      65536,
	}
	r := &configReader{}
	validateHTTPServerConfigs(cfg, r)
	assert.Empty(t, r.errors)

	cfg.ReadTimeoutSeconds = 60
	cfg.ServerPort = 0
	r = &configReader{}
	validateHTTPServerConfigs(cfg, r)
	assert.Len(t, r.errors, 2)
}
