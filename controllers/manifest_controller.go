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
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/otaforge/ota-update-service/middleware/logger"
	"github.com/otaforge/ota-update-service/models"
	"github.com/otaforge/ota-update-service/services"
	"github.com/otaforge/ota-update-service/spec"
	"github.com/otaforge/ota-update-service/utils"
)

const directiveNoUpdateAvailable = "noUpdateAvailable"

// ManifestController serves the client update protocol
type ManifestController interface {
	GetManifest(w http.ResponseWriter, r *http.Request)
}

type manifestController struct {
	manifestService services.ManifestService
}

// NewManifestController creates a new manifest controller
func NewManifestController(manifestService services.ManifestService) ManifestController {
	return &manifestController{
		manifestService: manifestService,
	}
}

func (c *manifestController) GetManifest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	req, err := parseManifestRequest(r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteManifestHeaders(w, req.ProtocolVersion)

	resolution, err := c.manifestService.Resolve(ctx, req)
	if err != nil {
		log.Error("GetManifest: failed to resolve manifest", "appKey", req.AppKey, "error", err)
		handleServiceError(w, err, "Failed to resolve manifest")
		return
	}

	if !resolution.HasUpdate() {
		if req.ProtocolVersion == models.ProtocolVersion0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		c.writeMultipart(w, log, []utils.MultipartPart{
			{Name: utils.PartDirective, Body: spec.ManifestDirective{Type: directiveNoUpdateAvailable}},
		})
		return
	}

	manifest := utils.ConvertToManifest(resolution.Manifest)
	if req.ProtocolVersion == models.ProtocolVersion0 && !utils.AcceptsMultipart(r.Header.Get(utils.HeaderAccept)) {
		utils.WriteSuccessResponse(w, http.StatusOK, manifest)
		return
	}
	c.writeMultipart(w, log, []utils.MultipartPart{
		{Name: utils.PartManifest, Body: manifest},
		{Name: utils.PartExtensions, Body: utils.ConvertToManifestExtensions(resolution.Manifest)},
	})
}

func (c *manifestController) writeMultipart(w http.ResponseWriter, log *slog.Logger, parts []utils.MultipartPart) {
	if err := utils.WriteMultipartResponse(w, parts); err != nil {
		log.Error("GetManifest: failed to write multipart response", "error", err)
	}
}

// parseManifestRequest reads the update protocol headers
func parseManifestRequest(r *http.Request) (*models.ManifestRequest, error) {
	platform := models.Platform(strings.TrimSpace(r.Header.Get(utils.HeaderPlatform)))
	if !platform.IsValid() {
		return nil, utils.ErrInvalidPlatform
	}
	runtimeVersion := strings.TrimSpace(r.Header.Get(utils.HeaderRuntimeVersion))
	if runtimeVersion == "" {
		return nil, utils.ErrMissingRuntimeVersion
	}

	protocolVersion := models.ProtocolVersion0
	if raw := strings.TrimSpace(r.Header.Get(utils.HeaderProtocolVersion)); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || (v != models.ProtocolVersion0 && v != models.ProtocolVersion1) {
			return nil, utils.ErrUnsupportedProtocol
		}
		protocolVersion = v
	}

	channelName := strings.TrimSpace(r.Header.Get(utils.HeaderChannelName))
	if channelName == "" {
		channelName = models.ChannelProduction
	}
	clientID := strings.TrimSpace(r.Header.Get(utils.HeaderClientID))

	return &models.ManifestRequest{
		AppKey:                r.PathValue(utils.PathParamAppKey),
		Platform:              platform,
		RuntimeVersion:        runtimeVersion,
		ChannelName:           channelName,
		ClientID:              clientID,
		HasClientID:           clientID != "",
		ClientCurrentUpdateID: strings.TrimSpace(r.Header.Get(utils.HeaderCurrentUpdateID)),
		ProtocolVersion:       protocolVersion,
	}, nil
}
