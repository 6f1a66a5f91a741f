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

	"github.com/otaforge/ota-update-service/middleware/jwtassertion"
	"github.com/otaforge/ota-update-service/middleware/logger"
	"github.com/otaforge/ota-update-service/services"
	"github.com/otaforge/ota-update-service/spec"
	"github.com/otaforge/ota-update-service/utils"
)

// UploadController defines the interface for publishing HTTP handlers
type UploadController interface {
	PresignUpload(w http.ResponseWriter, r *http.Request)
	PreflightUpload(w http.ResponseWriter, r *http.Request)
	CommitUpload(w http.ResponseWriter, r *http.Request)
}

type uploadController struct {
	publishService   services.PublishService
	preflightService services.PreflightService
}

// NewUploadController creates a new upload controller
func NewUploadController(publishService services.PublishService, preflightService services.PreflightService) UploadController {
	return &uploadController{
		publishService:   publishService,
		preflightService: preflightService,
	}
}

func (c *uploadController) PresignUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	appKey := r.PathValue(utils.PathParamAppKey)

	var req spec.PresignUploadRequest
	if err := decodeJSONBody(r, &req); err != nil {
		log.Error("PresignUpload: failed to decode request", "error", err)
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := c.publishService.Presign(ctx, appKey, utils.ConvertSpecToModelPresignRequest(&req))
	if err != nil {
		log.Error("PresignUpload: failed to presign upload", "appKey", appKey, "error", err)
		handleServiceError(w, err, "Failed to presign upload")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, utils.ConvertToPresignUploadResponse(result))
}

func (c *uploadController) PreflightUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	appKey := r.PathValue(utils.PathParamAppKey)

	var req spec.PreflightRequest
	if err := decodeJSONBody(r, &req); err != nil {
		log.Error("PreflightUpload: failed to decode request", "error", err)
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := c.preflightService.Preflight(ctx, appKey, utils.ConvertSpecToModelPreflightRequest(&req))
	if err != nil {
		log.Error("PreflightUpload: failed to run preflight", "appKey", appKey, "error", err)
		handleServiceError(w, err, "Failed to run preflight")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, utils.ConvertToPreflightResponse(report))
}

func (c *uploadController) CommitUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	appKey := r.PathValue(utils.PathParamAppKey)

	var req spec.CommitUploadRequest
	if err := decodeJSONBody(r, &req); err != nil {
		log.Error("CommitUpload: failed to decode request", "error", err)
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := c.publishService.Commit(ctx, jwtassertion.GetCaller(ctx), appKey, utils.ConvertSpecToModelCommitRequest(&req))
	if err != nil {
		log.Error("CommitUpload: failed to commit upload", "appKey", appKey, "error", err)
		handleServiceError(w, err, "Failed to commit upload")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusCreated, utils.ConvertToCommitUploadResponse(result))
}
