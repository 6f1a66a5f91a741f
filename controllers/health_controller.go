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

package controllers

import (
	"net/http"

	"github.com/otaforge/ota-update-service/config"
	"github.com/otaforge/ota-update-service/spec"
	"github.com/otaforge/ota-update-service/utils"
)

// HealthCheck reports liveness without touching the database or object store
func HealthCheck(w http.ResponseWriter, _ *http.Request) {
	utils.WriteSuccessResponse(w, http.StatusOK, spec.HealthResponse{
		Status:  "ok",
		Version: config.Version,
	})
}
