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

package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otaforge/ota-update-service/middleware/jwtassertion"
	"github.com/otaforge/ota-update-service/models"
	"github.com/otaforge/ota-update-service/spec"
	"github.com/otaforge/ota-update-service/tests/apitestutils"
	"github.com/otaforge/ota-update-service/utils"
	"github.com/otaforge/ota-update-service/wiring"
)

func TestManifest_ServesLiveUpdate(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	app := apitestutils.CreateApp(t, gormDB, "demo")
	production := apitestutils.GetChannel(t, gormDB, app.ID, models.ChannelProduction)
	update := apitestutils.CreateUpdate(t, gormDB, app, "1.0.0", models.PlatformIOS)
	apitestutils.AssignUpdate(t, gormDB, production, update, 100)
	handler := apitestutils.MakeAppClient(t, gormDB)

	t.Run("protocol 1 returns manifest and extensions", func(t *testing.T) {
		rec := requestManifest(t, handler, "demo", manifestCall{
			platform:       models.PlatformIOS,
			runtimeVersion: "1.0.0",
			protocol:       "1",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "1", rec.Header().Get(utils.HeaderProtocolVersion))
		assert.Equal(t, "0", rec.Header().Get(utils.HeaderSFVVersion))
		assert.Equal(t, utils.ManifestCacheControl, rec.Header().Get(utils.HeaderCacheControl))

		parts := readParts(t, rec)
		manifest := manifestFromParts(t, parts)
		assert.Equal(t, update.ID, manifest.Id)
		assert.Equal(t, "1.0.0", manifest.RuntimeVersion)
		assert.Equal(t, models.ChannelProduction, manifest.Metadata.BranchName)
		assert.Equal(t, "bundle", manifest.LaunchAsset.Key)
		assert.Equal(t, ".bundle", manifest.LaunchAsset.FileExtension)
		assert.Equal(t, "application/javascript", manifest.LaunchAsset.ContentType)
		assert.Equal(t, "3q2-7w", manifest.LaunchAsset.Hash)
		assert.Equal(t, apitestutils.DownloadURLPrefix+update.BundleKey, manifest.LaunchAsset.Url)
		require.Len(t, manifest.Assets, 1)
		assert.Equal(t, "yv66vg", manifest.Assets[0].Hash)
		assert.Equal(t, "logo", manifest.Assets[0].Key)
		assert.Equal(t, models.DefaultAssetContentType, manifest.Assets[0].ContentType)

		var extensions spec.ManifestExtensions
		require.NoError(t, json.Unmarshal(parts[utils.PartExtensions], &extensions))
		assert.Contains(t, extensions.AssetRequestHeaders, "bundle")
		assert.Contains(t, extensions.AssetRequestHeaders, "logo")
	})

	t.Run("protocol 0 without multipart accept returns json", func(t *testing.T) {
		rec := requestManifest(t, handler, "demo", manifestCall{
			platform:       models.PlatformIOS,
			runtimeVersion: "1.0.0",
			accept:         "application/json",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "0", rec.Header().Get(utils.HeaderProtocolVersion))
		manifest := decodeBody[spec.Manifest](t, rec)
		assert.Equal(t, update.ID, manifest.Id)
	})

	t.Run("protocol 0 with multipart accept returns multipart", func(t *testing.T) {
		rec := requestManifest(t, handler, "demo", manifestCall{
			platform:       models.PlatformIOS,
			runtimeVersion: "1.0.0",
			accept:         "multipart/mixed",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, update.ID, manifestFromParts(t, readParts(t, rec)).Id)
	})

	t.Run("already running the update", func(t *testing.T) {
		rec := requestManifest(t, handler, "demo", manifestCall{
			platform:        models.PlatformIOS,
			runtimeVersion:  "1.0.0",
			currentUpdateID: update.ID,
		})
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("post is accepted", func(t *testing.T) {
		rec := requestManifest(t, handler, "demo", manifestCall{
			method:         http.MethodPost,
			platform:       models.PlatformIOS,
			runtimeVersion: "1.0.0",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestManifest_NoUpdate(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	app := apitestutils.CreateApp(t, gormDB, "demo")
	production := apitestutils.GetChannel(t, gormDB, app.ID, models.ChannelProduction)
	staging := apitestutils.GetChannel(t, gormDB, app.ID, models.ChannelStaging)
	iosUpdate := apitestutils.CreateUpdate(t, gormDB, app, "1.0.0", models.PlatformIOS)
	disabled := apitestutils.CreateUpdate(t, gormDB, app, "1.0.0", models.PlatformAndroid, apitestutils.Disabled())
	apitestutils.AssignUpdate(t, gormDB, production, iosUpdate, 100)
	apitestutils.AssignUpdate(t, gormDB, production, disabled, 100)
	badHash := apitestutils.CreateUpdate(t, gormDB, app, "1.0.0", models.PlatformIOS, apitestutils.WithBundleHash("zz-not-hex"))
	apitestutils.AssignUpdate(t, gormDB, staging, badHash, 100)
	handler := apitestutils.MakeAppClient(t, gormDB)

	tests := []struct {
		name string
		call manifestCall
	}{
		{name: "unknown channel", call: manifestCall{platform: models.PlatformIOS, runtimeVersion: "1.0.0", channel: "beta"}},
		{name: "no assignment for runtime", call: manifestCall{platform: models.PlatformIOS, runtimeVersion: "9.9.9"}},
		{name: "disabled update", call: manifestCall{platform: models.PlatformAndroid, runtimeVersion: "1.0.0"}},
		{name: "unconvertible hash", call: manifestCall{platform: models.PlatformIOS, runtimeVersion: "1.0.0", channel: models.ChannelStaging}},
	}
	for _, tt := range tests {
		t.Run(tt.name+" protocol 0", func(t *testing.T) {
			rec := requestManifest(t, handler, "demo", tt.call)
			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Empty(t, rec.Body.String())
		})
		t.Run(tt.name+" protocol 1", func(t *testing.T) {
			call := tt.call
			call.protocol = "1"
			rec := requestManifest(t, handler, "demo", call)
			require.Equal(t, http.StatusOK, rec.Code)
			parts := readParts(t, rec)
			require.Len(t, parts, 1)
			var directive spec.ManifestDirective
			require.NoError(t, json.Unmarshal(parts[utils.PartDirective], &directive))
			assert.Equal(t, "noUpdateAvailable", directive.Type)
		})
	}
}

func TestManifest_RolloutBuckets(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	app := apitestutils.CreateApp(t, gormDB, "demo")
	production := apitestutils.GetChannel(t, gormDB, app.ID, models.ChannelProduction)
	update := apitestutils.CreateUpdate(t, gormDB, app, "1.0.0", models.PlatformIOS)
	apitestutils.AssignUpdate(t, gormDB, production, update, 50)
	handler := apitestutils.MakeAppClient(t, gormDB)

	// device-1 hashes to bucket 0, device-0 to bucket 75
	inside := requestManifest(t, handler, "demo", manifestCall{platform: models.PlatformIOS, runtimeVersion: "1.0.0", clientID: "device-1"})
	assert.Equal(t, http.StatusOK, inside.Code)

	outside := requestManifest(t, handler, "demo", manifestCall{platform: models.PlatformIOS, runtimeVersion: "1.0.0", clientID: "device-0"})
	assert.Equal(t, http.StatusNoContent, outside.Code)

	anonymous := requestManifest(t, handler, "demo", manifestCall{platform: models.PlatformIOS, runtimeVersion: "1.0.0"})
	assert.Equal(t, http.StatusNoContent, anonymous.Code)
}

func TestManifest_RequestErrors(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	apitestutils.CreateApp(t, gormDB, "demo")
	handler := apitestutils.MakeAppClient(t, gormDB)

	tests := []struct {
		name       string
		appKey     string
		call       manifestCall
		wantStatus int
	}{
		{name: "missing platform", appKey: "demo", call: manifestCall{runtimeVersion: "1.0.0"}, wantStatus: http.StatusBadRequest},
		{name: "unknown platform", appKey: "demo", call: manifestCall{platform: "web", runtimeVersion: "1.0.0"}, wantStatus: http.StatusBadRequest},
		{name: "missing runtime", appKey: "demo", call: manifestCall{platform: models.PlatformIOS}, wantStatus: http.StatusBadRequest},
		{name: "unsupported protocol", appKey: "demo", call: manifestCall{platform: models.PlatformIOS, runtimeVersion: "1.0.0", protocol: "2"}, wantStatus: http.StatusBadRequest},
		{name: "unknown app", appKey: "ghost", call: manifestCall{platform: models.PlatformIOS, runtimeVersion: "1.0.0"}, wantStatus: http.StatusNotFound},
		{name: "malformed app key", appKey: "Bad_Key", call: manifestCall{platform: models.PlatformIOS, runtimeVersion: "1.0.0"}, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := requestManifest(t, handler, tt.appKey, tt.call)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestManifest_StorageUnavailable(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	app := apitestutils.CreateApp(t, gormDB, "demo")
	production := apitestutils.GetChannel(t, gormDB, app.ID, models.ChannelProduction)
	update := apitestutils.CreateUpdate(t, gormDB, app, "1.0.0", models.PlatformIOS)
	apitestutils.AssignUpdate(t, gormDB, production, update, 100)

	handler := apitestutils.MakeAppClientWithDeps(t, gormDB, wiring.TestClients{
		ObjectStoreClient: apitestutils.CreateFailingObjectStoreClient(),
	}, jwtassertion.NewMockMiddleware(apitestutils.TestCaller))

	rec := requestManifest(t, handler, "demo", manifestCall{platform: models.PlatformIOS, runtimeVersion: "1.0.0"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
