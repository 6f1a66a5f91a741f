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

package utils

import (
	"strings"

	"github.com/otaforge/ota-update-service/models"
	"github.com/otaforge/ota-update-service/spec"
)

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// GetOrDefault returns the pointed to value or defaultVal when nil
func GetOrDefault(ptr *string, defaultVal string) string {
	if ptr == nil {
		return defaultVal
	}
	return *ptr
}

func ConvertSpecToModelCommitRequest(req *spec.CommitUploadRequest) *models.CommitRequest {
	assets := make([]models.CommitAsset, len(req.Assets))
	for i, a := range req.Assets {
		assets[i] = models.CommitAsset{
			ObjectKey:     strings.TrimSpace(a.ObjectKey),
			Hash:          strings.TrimSpace(a.Hash),
			LogicalKey:    strings.TrimSpace(a.Key),
			FileExtension: strings.TrimSpace(a.FileExtension),
			ContentType:   trimmedPtr(a.ContentType),
			Size:          a.Size,
		}
	}
	return &models.CommitRequest{
		UpdateGroupID:  strings.TrimSpace(req.UpdateGroupId),
		RuntimeVersion: strings.TrimSpace(req.RuntimeVersion),
		Platform:       models.Platform(strings.TrimSpace(req.Platform)),
		ChannelName:    trimmedPtr(req.ChannelName),
		RolloutPercent: req.RolloutPercent,
		Bundle: models.CommitBundle{
			ObjectKey: strings.TrimSpace(req.Bundle.ObjectKey),
			Hash:      strings.TrimSpace(req.Bundle.Hash),
			Size:      req.Bundle.Size,
		},
		Assets: assets,
	}
}

func ConvertSpecToModelPromoteRequest(updateID string, req *spec.PromoteUpdateRequest) *models.PromoteRequest {
	return &models.PromoteRequest{
		UpdateID:       updateID,
		FromChannel:    strings.TrimSpace(req.FromChannel),
		ToChannel:      strings.TrimSpace(req.ToChannel),
		RolloutPercent: req.RolloutPercent,
	}
}

func ConvertSpecToModelRollbackRequest(updateID string, req *spec.RollbackUpdateRequest) *models.RollbackRequest {
	return &models.RollbackRequest{
		TargetUpdateID: updateID,
		ChannelName:    strings.TrimSpace(req.ChannelName),
		Reason:         trimmedPtr(req.Reason),
	}
}

func ConvertSpecToModelPresignRequest(req *spec.PresignUploadRequest) *models.PresignRequest {
	assets := make([]models.PresignAsset, len(req.Assets))
	for i, a := range req.Assets {
		assets[i] = models.PresignAsset{
			Filename:    strings.TrimSpace(a.Filename),
			ContentType: trimmedPtr(a.ContentType),
		}
	}
	return &models.PresignRequest{
		RuntimeVersion: strings.TrimSpace(req.RuntimeVersion),
		Platform:       models.Platform(strings.TrimSpace(req.Platform)),
		BundleFilename: strings.TrimSpace(req.BundleFilename),
		Assets:         assets,
	}
}

func ConvertSpecToModelPreflightRequest(req *spec.PreflightRequest) *models.PreflightRequest {
	return &models.PreflightRequest{
		Platform:       models.Platform(strings.TrimSpace(req.Platform)),
		RuntimeVersion: trimmedPtr(req.RuntimeVersion),
		ChannelName:    trimmedPtr(req.ChannelName),
		BundleFilename: trimmedPtr(req.BundleFilename),
		BundleSize:     req.BundleSize,
	}
}

func ConvertSpecToModelCreateAppRequest(req *spec.CreateAppRequest) *models.CreateAppRequest {
	return &models.CreateAppRequest{
		AppKey: strings.TrimSpace(req.AppKey),
		Name:   strings.TrimSpace(req.Name),
	}
}
