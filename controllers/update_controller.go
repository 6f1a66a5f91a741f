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
	"github.com/otaforge/ota-update-service/models"
	"github.com/otaforge/ota-update-service/repositories"
	"github.com/otaforge/ota-update-service/services"
	"github.com/otaforge/ota-update-service/spec"
	"github.com/otaforge/ota-update-service/utils"
)

// UpdateController defines the interface for update HTTP handlers
type UpdateController interface {
	ListUpdates(w http.ResponseWriter, r *http.Request)
	GetUpdate(w http.ResponseWriter, r *http.Request)
	ToggleUpdate(w http.ResponseWriter, r *http.Request)
	PromoteUpdate(w http.ResponseWriter, r *http.Request)
	RollbackUpdate(w http.ResponseWriter, r *http.Request)
	ListRollbacks(w http.ResponseWriter, r *http.Request)
}

type updateController struct {
	updateService services.UpdateService
}

// NewUpdateController creates a new update controller
func NewUpdateController(updateService services.UpdateService) UpdateController {
	return &updateController{
		updateService: updateService,
	}
}

func (c *updateController) ListUpdates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	appKey := r.PathValue(utils.PathParamAppKey)
	limit, offset, err := getPaginationParams(r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	query := r.URL.Query()

	updates, err := c.updateService.ListUpdates(ctx, appKey, repositories.UpdateFilter{
		RuntimeVersion: query.Get(utils.QueryParamRuntime),
		Platform:       models.Platform(query.Get(utils.QueryParamPlatform)),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		log.Error("ListUpdates: failed to list updates", "appKey", appKey, "error", err)
		handleServiceError(w, err, "Failed to list updates")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, utils.ConvertToUpdateListResponse(updates))
}

func (c *updateController) GetUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	appKey := r.PathValue(utils.PathParamAppKey)
	updateID := r.PathValue(utils.PathParamUpdateID)

	details, err := c.updateService.GetUpdate(ctx, appKey, updateID)
	if err != nil {
		log.Error("GetUpdate: failed to get update", "appKey", appKey, "updateId", updateID, "error", err)
		handleServiceError(w, err, "Failed to get update")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, utils.ConvertToUpdateDetailsResponse(details))
}

func (c *updateController) ToggleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	appKey := r.PathValue(utils.PathParamAppKey)
	updateID := r.PathValue(utils.PathParamUpdateID)

	update, err := c.updateService.ToggleUpdate(ctx, jwtassertion.GetCaller(ctx), appKey, updateID)
	if err != nil {
		log.Error("ToggleUpdate: failed to toggle update", "appKey", appKey, "updateId", updateID, "error", err)
		handleServiceError(w, err, "Failed to toggle update")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, utils.ConvertToToggleUpdateResponse(update))
}

func (c *updateController) PromoteUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	appKey := r.PathValue(utils.PathParamAppKey)
	updateID := r.PathValue(utils.PathParamUpdateID)

	var req spec.PromoteUpdateRequest
	if err := decodeJSONBody(r, &req); err != nil {
		log.Error("PromoteUpdate: failed to decode request", "error", err)
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := c.updateService.Promote(ctx, jwtassertion.GetCaller(ctx), appKey, utils.ConvertSpecToModelPromoteRequest(updateID, &req))
	if err != nil {
		log.Error("PromoteUpdate: failed to promote update", "appKey", appKey, "updateId", updateID, "error", err)
		handleServiceError(w, err, "Failed to promote update")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, utils.ConvertToPromoteUpdateResponse(result))
}

func (c *updateController) RollbackUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	appKey := r.PathValue(utils.PathParamAppKey)
	updateID := r.PathValue(utils.PathParamUpdateID)

	var req spec.RollbackUpdateRequest
	if err := decodeJSONBody(r, &req); err != nil {
		log.Error("RollbackUpdate: failed to decode request", "error", err)
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := c.updateService.Rollback(ctx, jwtassertion.GetCaller(ctx), appKey, utils.ConvertSpecToModelRollbackRequest(updateID, &req))
	if err != nil {
		log.Error("RollbackUpdate: failed to roll back", "appKey", appKey, "updateId", updateID, "error", err)
		handleServiceError(w, err, "Failed to roll back update")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, utils.ConvertToRollbackUpdateResponse(result))
}

func (c *updateController) ListRollbacks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	appKey := r.PathValue(utils.PathParamAppKey)
	limit, offset, err := getPaginationParams(r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := c.updateService.ListRollbacks(ctx, appKey, limit, offset)
	if err != nil {
		log.Error("ListRollbacks: failed to list rollbacks", "appKey", appKey, "error", err)
		handleServiceError(w, err, "Failed to list rollbacks")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, utils.ConvertToRollbackHistoryListResponse(entries))
}
