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

func TestApps_CreateGetList(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	handler := apitestutils.MakeAppClient(t, gormDB)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/apps", spec.CreateAppRequest{AppKey: "demo", Name: "Demo"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[spec.AppResponse](t, rec)
	assert.Equal(t, "demo", created.AppKey)
	assert.Equal(t, "Demo", created.Name)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/apps", spec.CreateAppRequest{AppKey: "demo", Name: "Again"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, utils.CodeConflict, decodeBody[spec.ErrorResponse](t, rec).Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/apps", spec.CreateAppRequest{AppKey: "Not Valid", Name: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/apps", spec.CreateAppRequest{AppKey: "noname", Name: "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/apps/demo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.Id, decodeBody[spec.AppResponse](t, rec).Id)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/apps/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, utils.CodeNotFound, decodeBody[spec.ErrorResponse](t, rec).Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/apps?limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[spec.AppListResponse](t, rec)
	require.Len(t, list.Apps, 1)
	assert.Equal(t, int32(10), list.Limit)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/apps/demo/channels", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	channels := decodeBody[spec.ChannelListResponse](t, rec)
	names := make([]string, 0, len(channels.Channels))
	for _, ch := range channels.Channels {
		names = append(names, ch.Name)
		assert.Empty(t, ch.Assignments)
	}
	assert.ElementsMatch(t, models.DefaultChannels, names)
}

func TestApps_Delete(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	app := apitestutils.CreateApp(t, gormDB, "demo")
	update := apitestutils.CreateUpdate(t, gormDB, app, "1.0.0", models.PlatformIOS)
	apitestutils.AssignUpdate(t, gormDB, apitestutils.GetChannel(t, gormDB, app.ID, models.ChannelProduction), update, 100)

	store := apitestutils.CreateMockObjectStoreClient()
	handler := apitestutils.MakeAppClientWithDeps(t, gormDB, wiring.TestClients{ObjectStoreClient: store},
		jwtassertion.NewMockMiddleware(apitestutils.TestCaller))

	rec := doJSON(t, handler, http.MethodDelete, "/api/v1/apps/demo?purgeObjects=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/apps/demo?purgeObjects=true", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decodeBody[spec.DeleteAppResponse](t, rec)
	assert.True(t, result.Deleted)
	assert.Equal(t, 2, result.PurgedObjects)

	calls := store.DeleteManyCalls()
	require.Len(t, calls, 1)
	assert.ElementsMatch(t, []string{update.BundleKey, "ota/demo/1.0.0/" + update.UpdateGroupID + "/assets/logo.png"}, calls[0].Keys)

	for _, model := range []any{&models.App{}, &models.Channel{}, &models.Update{}, &models.Asset{}, &models.ChannelAssignment{}} {
		assert.Equal(t, int64(0), apitestutils.CountRows(t, gormDB, model))
	}

	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/apps/demo", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApps_DeleteWithoutPurgeKeepsObjects(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	app := apitestutils.CreateApp(t, gormDB, "demo")
	apitestutils.CreateUpdate(t, gormDB, app, "1.0.0", models.PlatformIOS)

	store := apitestutils.CreateMockObjectStoreClient()
	handler := apitestutils.MakeAppClientWithDeps(t, gormDB, wiring.TestClients{ObjectStoreClient: store},
		jwtassertion.NewMockMiddleware(apitestutils.TestCaller))

	rec := doJSON(t, handler, http.MethodDelete, "/api/v1/apps/demo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decodeBody[spec.DeleteAppResponse](t, rec).PurgedObjects)
	assert.Empty(t, store.DeleteManyCalls())
	assert.Equal(t, int64(0), apitestutils.CountRows(t, gormDB, &models.App{}))
}

func TestHealth(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	handler := apitestutils.MakeAppClient(t, gormDB)

	rec := doJSON(t, handler, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody[spec.HealthResponse](t, rec).Status)
}
