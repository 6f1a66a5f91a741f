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

//go:build wireinject
// +build wireinject

package wiring

import (
	"log/slog"

	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/otaforge/ota-update-service/clients/objectstore"
	"github.com/otaforge/ota-update-service/config"
	"github.com/otaforge/ota-update-service/controllers"
	"github.com/otaforge/ota-update-service/db"
	"github.com/otaforge/ota-update-service/middleware/jwtassertion"
	"github.com/otaforge/ota-update-service/repositories"
	"github.com/otaforge/ota-update-service/services"
)

var configProviderSet = wire.NewSet(
	ProvideConfigFromPtr,
	ProvideRolloutConfig,
	ProvidePreflightConfig,
)

var clientProviderSet = wire.NewSet(
	ProvideObjectStoreClient,
)

var repositoryProviderSet = wire.NewSet(
	db.NewTransactionManager,
	repositories.NewAppRepo,
	repositories.NewChannelRepo,
	repositories.NewUpdateRepo,
	repositories.NewAssignmentRepo,
	repositories.NewRollbackHistoryRepo,
)

var serviceProviderSet = wire.NewSet(
	services.NewAppService,
	services.NewChannelService,
	services.NewUpdateService,
	services.NewPublishService,
	services.NewPreflightService,
	services.NewManifestService,
)

var controllerProviderSet = wire.NewSet(
	controllers.NewAppController,
	controllers.NewChannelController,
	controllers.NewUpdateController,
	controllers.NewUploadController,
	controllers.NewManifestController,
)

var testClientProviderSet = wire.NewSet(
	ProvideTestObjectStoreClient,
)

// ProvideLogger provides the configured slog.Logger instance
func ProvideLogger() *slog.Logger {
	return slog.Default()
}

var loggerProviderSet = wire.NewSet(
	ProvideLogger,
)

// ProvideTestObjectStoreClient extracts the ObjectStoreClient from TestClients
func ProvideTestObjectStoreClient(testClients TestClients) objectstore.ObjectStoreClient {
	return testClients.ObjectStoreClient
}

func InitializeAppParams(cfg *config.Config, gormDB *gorm.DB) (*AppParams, error) {
	wire.Build(
		configProviderSet,
		clientProviderSet,
		loggerProviderSet,
		repositoryProviderSet,
		serviceProviderSet,
		controllerProviderSet,
		ProvideAuthMiddleware, wire.Struct(new(AppParams), "*"),
	)
	return &AppParams{}, nil
}

func InitializeTestAppParamsWithClientMocks(cfg *config.Config, gormDB *gorm.DB, authMiddleware jwtassertion.Middleware, testClients TestClients) (*AppParams, error) {
	wire.Build(
		testClientProviderSet,
		loggerProviderSet,
		repositoryProviderSet,
		serviceProviderSet,
		controllerProviderSet, configProviderSet,
		wire.Struct(new(AppParams), "*"),
	)
	return &AppParams{}, nil
}
