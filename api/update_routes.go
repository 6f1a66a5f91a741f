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

func registerUpdateRoutes(mux *http.ServeMux, ctrl controllers.UpdateController) {
	middleware.HandleFuncWithValidation(mux, "GET /apps/{appKey}/updates", ctrl.ListUpdates)
	middleware.HandleFuncWithValidation(mux, "GET /apps/{appKey}/updates/{updateId}", ctrl.GetUpdate)
	middleware.HandleFuncWithValidation(mux, "POST /apps/{appKey}/updates/{updateId}/toggle", ctrl.ToggleUpdate)

	// POST /apps/{appKey}/updates/{updateId}/promote - Copy a live update onto another channel
	middleware.HandleFuncWithValidation(mux, "POST /apps/{appKey}/updates/{updateId}/promote", ctrl.PromoteUpdate)

	// POST /apps/{appKey}/updates/{updateId}/rollback - Point a channel back at this update
	middleware.HandleFuncWithValidation(mux, "POST /apps/{appKey}/updates/{updateId}/rollback", ctrl.RollbackUpdate)

	middleware.HandleFuncWithValidation(mux, "GET /apps/{appKey}/rollbacks", ctrl.ListRollbacks)
}

func registerUploadRoutes(mux *http.ServeMux, ctrl controllers.UploadController) {
	middleware.HandleFuncWithValidation(mux, "POST /apps/{appKey}/uploads/presign", ctrl.PresignUpload)
	middleware.HandleFuncWithValidation(mux, "POST /apps/{appKey}/uploads/preflight", ctrl.PreflightUpload)
	middleware.HandleFuncWithValidation(mux, "POST /apps/{appKey}/uploads/commit", ctrl.CommitUpload)
}
