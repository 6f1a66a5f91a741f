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
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/otaforge/ota-update-service/utils"
)

func getIntQueryParam(r *http.Request, key string, defaultValue int) int {
	if val := r.URL.Query().Get(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getPaginationParams reads limit and offset, clamping the limit to the allowed page size
func getPaginationParams(r *http.Request) (int, int, error) {
	limit := utils.ClampLimit(getIntQueryParam(r, utils.QueryParamLimit, utils.DefaultLimit))
	offset := getIntQueryParam(r, utils.QueryParamOffset, 0)
	if offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter")
	}
	return limit, offset, nil
}

func decodeJSONBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// handleServiceError writes the status matching err's kind. Client errors carry the
// error text; server errors carry fallbackMsg only.
func handleServiceError(w http.ResponseWriter, err error, fallbackMsg string) {
	status, code := utils.ClassifyError(err)
	switch status {
	case http.StatusInternalServerError:
		utils.WriteErrorResponseWithCode(w, status, code, fallbackMsg)
	case http.StatusServiceUnavailable:
		utils.WriteErrorResponseWithCode(w, status, code, "Object storage is unavailable")
	default:
		utils.WriteErrorResponseWithCode(w, status, code, err.Error())
	}
}
