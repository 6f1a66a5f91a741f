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
	"strconv"

	"github.com/otaforge/ota-update-service/middleware/jwtassertion"
	"github.com/otaforge/ota-update-service/middleware/logger"
	"github.com/otaforge/ota-update-service/services"
	"github.com/otaforge/ota-update-service/spec"
	"github.com/otaforge/ota-update-service/utils"
)

// AppController defines the interface for app HTTP handlers
type AppController interface {
	CreateApp(w http.ResponseWriter, r *http.Request)
	GetApp(w http.ResponseWriter, r *http.Request)
	ListApps(w http.ResponseWriter, r *http.Request)
	DeleteApp(w http.ResponseWriter, r *http.Request)
}

type appController struct {
	appService services.AppService
}

// NewAppController creates a new app controller
func NewAppController(appService services.AppService) AppController {
	return &appController{
		appService: appService,
	}
}

func (c *appController) CreateApp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var req spec.CreateAppRequest
	if err := decodeJSONBody(r, &req); err != nil {
		log.Error("CreateApp: failed to decode request", "error", err)
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, err := c.appService.CreateApp(ctx, jwtassertion.GetCaller(ctx), utils.ConvertSpecToModelCreateAppRequest(&req))
	if err != nil {
		log.Error("CreateApp: failed to create app", "error", err)
		handleServiceError(w, err, "Failed to create app")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusCreated, utils.ConvertToAppResponse(app))
}

func (c *appController) GetApp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	appKey := r.PathValue(utils.PathParamAppKey)

	app, err := c.appService.GetApp(ctx, appKey)
	if err != nil {
		log.Error("GetApp: failed to get app", "appKey", appKey, "error", err)
		handleServiceError(w, err, "Failed to get app")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, utils.ConvertToAppResponse(app))
}

func (c *appController) ListApps(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	limit, offset, err := getPaginationParams(r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	apps, err := c.appService.ListApps(ctx, limit, offset)
	if err != nil {
		log.Error("ListApps: failed to list apps", "error", err)
		handleServiceError(w, err, "Failed to list apps")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, utils.ConvertToAppListResponse(apps, limit, offset))
}

func (c *appController) DeleteApp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	appKey := r.PathValue(utils.PathParamAppKey)
	purgeObjects := false
	if val := r.URL.Query().Get(utils.QueryParamPurgeObject); val != "" {
		parsed, err := strconv.ParseBool(val)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid purgeObjects parameter")
			return
		}
		purgeObjects = parsed
	}

	result, err := c.appService.DeleteApp(ctx, jwtassertion.GetCaller(ctx), appKey, purgeObjects)
	if err != nil {
		log.Error("DeleteApp: failed to delete app", "appKey", appKey, "error", err)
		handleServiceError(w, err, "Failed to delete app")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, utils.ConvertToDeleteAppResponse(result))
}
