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
)

func registerAppRoutes(mux *http.ServeMux, ctrl controllers.AppController) {
	// GET /apps - List apps
	mux.HandleFunc("GET /apps", ctrl.ListApps)

	// POST /apps - Create an app with its default channels
	mux.HandleFunc("POST /apps", ctrl.CreateApp)

	middleware.HandleFuncWithValidation(mux, "GET /apps/{appKey}", ctrl.GetApp)

	// DELETE /apps/{appKey}?purgeObjects=true - Delete an app, optionally purging stored objects
	middleware.HandleFuncWithValidation(mux, "DELETE /apps/{appKey}", ctrl.DeleteApp)
}

func registerChannelRoutes(mux *http.ServeMux, ctrl controllers.ChannelController) {
	middleware.HandleFuncWithValidation(mux, "GET /apps/{appKey}/channels", ctrl.ListChannels)
	middleware.HandleFuncWithValidation(mux, "PATCH /apps/{appKey}/channels/{channelId}/rollout", ctrl.UpdateRollout)
}
