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

package api

import (
	"net/http"

	"github.com/otaforge/ota-update-service/controllers"
	"github.com/otaforge/ota-update-service/middleware"
	"github.com/otaforge/ota-update-service/middleware/logger"
	"github.com/otaforge/ota-update-service/wiring"
)

// MakeHTTPHandler creates a new HTTP handler with middleware and routes
func MakeHTTPHandler(params *wiring.AppParams) http.Handler {
	mux := http.NewServeMux()

	// Register health check
	registerHealthCheck(mux)

	// Client update protocol, unauthenticated
	manifestMux := http.NewServeMux()
	registerManifestRoutes(manifestMux, params.ManifestController)
	mux.Handle("/api/manifest/", withRequestMiddleware(manifestMux, params.Config.CORSAllowedOrigin))

	// Create a sub-mux for API v1 routes
	apiMux := http.NewServeMux()
	registerAppRoutes(apiMux, params.AppController)
	registerChannelRoutes(apiMux, params.ChannelController)
	registerUpdateRoutes(apiMux, params.UpdateController)
	registerUploadRoutes(apiMux, params.UploadController)

	// Apply middleware in reverse order (last middleware is applied first)
	apiHandler := http.Handler(apiMux)
	apiHandler = params.AuthMiddleware(apiHandler)
	apiHandler = withRequestMiddleware(apiHandler, params.Config.CORSAllowedOrigin)

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiHandler))

	return mux
}

func withRequestMiddleware(handler http.Handler, corsAllowedOrigin string) http.Handler {
	handler = logger.RequestLogger()(handler)
	handler = middleware.AddCorrelationID()(handler)
	handler = middleware.CORS(corsAllowedOrigin)(handler)
	handler = middleware.RecovererOnPanic()(handler)
	return handler
}

func registerHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", controllers.HealthCheck)
}
