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

package middleware

import (
	"net/http"
	"strings"

	"github.com/otaforge/ota-update-service/utils"
)

// HandleFuncWithValidation registers handler behind a check of the app key path
// parameter, so handlers only ever see well formed keys
func HandleFuncWithValidation(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	validateAppKey := strings.Contains(pattern, "{"+utils.PathParamAppKey+"}")
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		if validateAppKey {
			if err := utils.ValidateAppKey(r.PathValue(utils.PathParamAppKey)); err != nil {
				utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		handler(w, r)
	})
}
