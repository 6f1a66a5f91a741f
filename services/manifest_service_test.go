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

package services_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otaforge/ota-update-service/models"
	"github.com/otaforge/ota-update-service/repositories"
	"github.com/otaforge/ota-update-service/services"
	"github.com/otaforge/ota-update-service/tests/apitestutils"
	"github.com/otaforge/ota-update-service/utils"
)

func TestManifestService_ExitSteps(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	app := apitestutils.CreateApp(t, gormDB, "demo")
	production := apitestutils.GetChannel(t, gormDB, app.ID, models.ChannelProduction)
	staging := apitestutils.GetChannel(t, gormDB, app.ID, models.ChannelStaging)

	live := apitestutils.CreateUpdate(t, gormDB, app, "1.0.0", models.PlatformIOS)
	apitestutils.AssignUpdate(t, gormDB, production, live, 100)
	partial := apitestutils.CreateUpdate(t, gormDB, app, "2.0.0", models.PlatformIOS)
	apitestutils.AssignUpdate(t, gormDB, production, partial, 50)
	off := apitestutils.CreateUpdate(t, gormDB, app, "1.0.0", models.PlatformAndroid, apitestutils.Disabled())
	apitestutils.AssignUpdate(t, gormDB, production, off, 100)
	broken := apitestutils.CreateUpdate(t, gormDB, app, "1.0.0", models.PlatformIOS, apitestutils.WithBundleHash("not-hex"))
	apitestutils.AssignUpdate(t, gormDB, staging, broken, 100)

	svc := services.NewManifestService(
		slog.Default(),
		repositories.NewAppRepo(gormDB),
		repositories.NewChannelRepo(gormDB),
		repositories.NewUpdateRepo(gormDB),
		repositories.NewAssignmentRepo(gormDB),
		apitestutils.CreateMockObjectStoreClient(),
	)

	request := func(mutate func(*models.ManifestRequest)) *models.ManifestRequest {
		req := &models.ManifestRequest{
			AppKey:         "demo",
			Platform:       models.PlatformIOS,
			RuntimeVersion: "1.0.0",
			ChannelName:    models.ChannelProduction,
		}
		if mutate != nil {
			mutate(req)
		}
		return req
	}

	tests := []struct {
		name      string
		req       *models.ManifestRequest
		wantStep  string
		wantServe bool
	}{
		{name: "served", req: request(nil), wantStep: services.StepManifest, wantServe: true},
		{name: "unknown channel", req: request(func(r *models.ManifestRequest) { r.ChannelName = "beta" }), wantStep: services.StepChannel},
		{name: "empty slot", req: request(func(r *models.ManifestRequest) { r.RuntimeVersion = "3.0.0" }), wantStep: services.StepAssignment},
		{name: "outside rollout", req: request(func(r *models.ManifestRequest) {
			r.RuntimeVersion = "2.0.0"
			r.ClientID, r.HasClientID = "device-0", true
		}), wantStep: services.StepRollout},
		{name: "inside rollout", req: request(func(r *models.ManifestRequest) {
			r.RuntimeVersion = "2.0.0"
			r.ClientID, r.HasClientID = "device-1", true
		}), wantStep: services.StepManifest, wantServe: true},
		{name: "disabled update", req: request(func(r *models.ManifestRequest) { r.Platform = models.PlatformAndroid }), wantStep: services.StepUpdate},
		{name: "already current", req: request(func(r *models.ManifestRequest) { r.ClientCurrentUpdateID = live.ID }), wantStep: services.StepAlreadyCurrent},
		{name: "bad stored hash", req: request(func(r *models.ManifestRequest) { r.ChannelName = models.ChannelStaging }), wantStep: services.StepHashes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolution, err := svc.Resolve(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStep, resolution.ExitStep)
			assert.Equal(t, tt.wantServe, resolution.HasUpdate())
		})
	}

	t.Run("unknown app", func(t *testing.T) {
		_, err := svc.Resolve(context.Background(), request(func(r *models.ManifestRequest) { r.AppKey = "ghost" }))
		assert.ErrorIs(t, err, utils.ErrAppNotFound)
	})

	t.Run("manifest contents", func(t *testing.T) {
		resolution, err := svc.Resolve(context.Background(), request(nil))
		require.NoError(t, err)
		m := resolution.Manifest
		assert.Equal(t, live.ID, m.ID)
		assert.Equal(t, live.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"), m.CreatedAt)
		assert.Equal(t, models.ChannelProduction, m.BranchName)
		assert.Equal(t, apitestutils.DownloadURLPrefix+live.BundleKey, m.LaunchAsset.URL)
	})
}

func TestManifestService_StorageFailure(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	app := apitestutils.CreateApp(t, gormDB, "demo")
	update := apitestutils.CreateUpdate(t, gormDB, app, "1.0.0", models.PlatformIOS)
	apitestutils.AssignUpdate(t, gormDB, apitestutils.GetChannel(t, gormDB, app.ID, models.ChannelProduction), update, 100)

	svc := services.NewManifestService(
		slog.Default(),
		repositories.NewAppRepo(gormDB),
		repositories.NewChannelRepo(gormDB),
		repositories.NewUpdateRepo(gormDB),
		repositories.NewAssignmentRepo(gormDB),
		apitestutils.CreateFailingObjectStoreClient(),
	)
	_, err := svc.Resolve(context.Background(), &models.ManifestRequest{
		AppKey:         "demo",
		Platform:       models.PlatformIOS,
		RuntimeVersion: "1.0.0",
		ChannelName:    models.ChannelProduction,
	})
	assert.ErrorIs(t, err, utils.ErrStorageUnavailable)
}
