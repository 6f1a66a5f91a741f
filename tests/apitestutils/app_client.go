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

package apitestutils

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/otaforge/ota-update-service/api"
	"github.com/otaforge/ota-update-service/config"
	"github.com/otaforge/ota-update-service/middleware/jwtassertion"
	"github.com/otaforge/ota-update-service/models"
	"github.com/otaforge/ota-update-service/wiring"
)

var TestCaller = models.Caller{Subject: "test-admin", Scopes: []string{"ota:admin"}}

// NewTestConfig returns the configuration used by API tests
func NewTestConfig() *config.Config {
	return &config.Config{
		AuthHeader:        "Authorization",
		CORSAllowedOrigin: "*",
		Rollout:           config.RolloutConfig{DefaultPercent: config.DefaultRolloutPercent},
		Preflight:         config.PreflightConfig{LargeBundleBytes: config.DefaultLargeBundleBytes},
	}
}

// MakeAppClientWithDeps wires the full HTTP handler over gormDB and the given mocks
func MakeAppClientWithDeps(t *testing.T, gormDB *gorm.DB, testClients wiring.TestClients, authMiddleware jwtassertion.Middleware) http.Handler {
	t.Helper()
	params, err := wiring.InitializeTestAppParamsWithClientMocks(NewTestConfig(), gormDB, authMiddleware, testClients)
	require.NoError(t, err)
	return api.MakeHTTPHandler(params)
}

// MakeAppClient wires the handler with a permissive object store and a fixed caller
func MakeAppClient(t *testing.T, gormDB *gorm.DB) http.Handler {
	t.Helper()
	return MakeAppClientWithDeps(t, gormDB, wiring.TestClients{
		ObjectStoreClient: CreateMockObjectStoreClient(),
	}, jwtassertion.NewMockMiddleware(TestCaller))
}
