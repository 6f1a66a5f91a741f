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
	"github.com/otaforge/ota-update-service/services"
	"github.com/otaforge/ota-update-service/spec"
	"github.com/otaforge/ota-update-service/utils"
)

// ChannelController defines the interface for channel HTTP handlers
type ChannelController interface {
	ListChannels(w http.ResponseWriter, r *http.Request)
	UpdateRollout(w http.ResponseWriter, r *http.Request)
}

type channelController struct {
	channelService services.ChannelService
}

// NewChannelController creates a new channel controller
func NewChannelController(channelService services.ChannelService) ChannelController {
	return &channelController{
		channelService: channelService,
	}
}

func (c *channelController) ListChannels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	appKey := r.PathValue(utils.PathParamAppKey)

	channels, err := c.channelService.ListChannels(ctx, appKey)
	if err != nil {
		log.Error("ListChannels: failed to list channels", "appKey", appKey, "error", err)
		handleServiceError(w, err, "Failed to list channels")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, utils.ConvertToChannelListResponse(channels))
}

func (c *channelController) UpdateRollout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	appKey := r.PathValue(utils.PathParamAppKey)
	channelID := r.PathValue(utils.PathParamChannelID)

	var req spec.UpdateRolloutRequest
	if err := decodeJSONBody(r, &req); err != nil {
		log.Error("UpdateRollout: failed to decode request", "error", err)
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RolloutPercent == nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "rolloutPercent is required")
		return
	}

	assignment, err := c.channelService.SetRollout(ctx, jwtassertion.GetCaller(ctx), appKey, &models.SetRolloutRequest{
		ChannelID:      channelID,
		AssignmentID:   req.AssignmentId,
		RolloutPercent: *req.RolloutPercent,
	})
	if err != nil {
		log.Error("UpdateRollout: failed to set rollout", "appKey", appKey, "channelId", channelID, "error", err)
		handleServiceError(w, err, "Failed to update rollout")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, utils.ConvertToUpdateRolloutResponse(assignment))
}
