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

package wiring

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/otaforge/ota-update-service/clients/objectstore"
	"github.com/otaforge/ota-update-service/config"
	"github.com/otaforge/ota-update-service/controllers"
	"github.com/otaforge/ota-update-service/middleware/jwtassertion"
)

// AppParams contains all wired application dependencies
type AppParams struct {
	// Middleware
	AuthMiddleware jwtassertion.Middleware
	Logger         *slog.Logger

	// Controllers
	AppController      controllers.AppController
	ChannelController  controllers.ChannelController
	UpdateController   controllers.UpdateController
	UploadController   controllers.UploadController
	ManifestController controllers.ManifestController

	Config config.Config

	// Database
	DB *gorm.DB
}

// TestClients contains all mock clients needed for testing
type TestClients struct {
	ObjectStoreClient objectstore.ObjectStoreClient
}

func ProvideConfigFromPtr(config *config.Config) config.Config {
	return *config
}

func ProvideAuthMiddleware(config config.Config) jwtassertion.Middleware {
	return jwtassertion.JWTAuthMiddleware(config.AuthHeader, jwtassertion.NewValidator(config.KeyManagerConfigurations))
}

func ProvideRolloutConfig(config config.Config) config.RolloutConfig {
	return config.Rollout
}

func ProvidePreflightConfig(config config.Config) config.PreflightConfig {
	return config.Preflight
}

// ProvideObjectStoreClient creates the S3 backed object store client
func ProvideObjectStoreClient(config config.Config) (objectstore.ObjectStoreClient, error) {
	return objectstore.NewObjectStoreClient(context.Background(), config.ObjectStore)
}
