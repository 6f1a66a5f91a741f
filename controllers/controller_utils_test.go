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
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otaforge/ota-update-service/spec"
	"github.com/otaforge/ota-update-service/utils"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "not found keeps the error text",
			err:         utils.ErrUpdateNotFound,
			wantStatus:  http.StatusNotFound,
			wantCode:    utils.CodeNotFound,
			wantMessage: utils.ErrUpdateNotFound.Error(),
		},
		{
			name:        "precondition failed",
			err:         fmt.Errorf("promote: %w", utils.ErrUpdateNotLiveOnChannel),
			wantStatus:  http.StatusPreconditionFailed,
			wantCode:    utils.CodePreconditionFailed,
			wantMessage: "promote: " + utils.ErrUpdateNotLiveOnChannel.Error(),
		},
		{
			name:        "storage outage hides the cause",
			err:         fmt.Errorf("%w: connection reset", utils.ErrStorageUnavailable),
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    utils.CodeUpstreamUnavailable,
			wantMessage: "Object storage is unavailable",
		},
		{
			name:        "internal error uses the fallback message",
			err:         errors.New("pq: relation does not exist"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    utils.CodeInternalError,
			wantMessage: "Failed to load update",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, tt.err, "Failed to load update")

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body spec.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}
