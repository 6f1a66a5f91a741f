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
	"github.com/otaforge/ota-update-service/models"
	"github.com/otaforge/ota-update-service/spec"
)

func ConvertToAppResponse(app *models.App) spec.AppResponse {
	if app == nil {
		return spec.AppResponse{}
	}
	return spec.AppResponse{
		Id:        app.ID,
		AppKey:    app.AppKey,
		Name:      app.Name,
		CreatedAt: app.CreatedAt,
	}
}

func ConvertToAppListResponse(apps []*models.App, limit, offset int) spec.AppListResponse {
	responses := make([]spec.AppResponse, len(apps))
	for i, app := range apps {
		responses[i] = ConvertToAppResponse(app)
	}
	return spec.AppListResponse{
		Apps:   responses,
		Limit:  int32(limit),
		Offset: int32(offset),
	}
}

func ConvertToChannelListResponse(channels []*models.ChannelWithAssignments) spec.ChannelListResponse {
	responses := make([]spec.ChannelResponse, len(channels))
	for i, ch := range channels {
		assignments := make([]spec.ChannelAssignmentResponse, len(ch.Assignments))
		for j, a := range ch.Assignments {
			assignments[j] = spec.ChannelAssignmentResponse{
				Id:             a.ID,
				RuntimeVersion: a.RuntimeVersion,
				Platform:       string(a.Platform),
				UpdateId:       a.UpdateID,
				RolloutPercent: a.RolloutPercent,
				UpdatedAt:      a.UpdatedAt,
			}
		}
		responses[i] = spec.ChannelResponse{
			Id:          ch.ID,
			Name:        ch.Name,
			CreatedAt:   ch.CreatedAt,
			Assignments: assignments,
		}
	}
	return spec.ChannelListResponse{Channels: responses}
}

func ConvertToUpdateResponse(update *models.Update) spec.UpdateResponse {
	if update == nil {
		return spec.UpdateResponse{}
	}
	return spec.UpdateResponse{
		Id:             update.ID,
		UpdateGroupId:  update.UpdateGroupID,
		RuntimeVersion: update.RuntimeVersion,
		Platform:       string(update.Platform),
		BundleKey:      update.BundleKey,
		BundleHash:     update.BundleHash,
		BundleSize:     update.BundleSize,
		Enabled:        update.Enabled,
		CreatedAt:      update.CreatedAt,
	}
}

func ConvertToUpdateListResponse(updates []*models.Update) spec.UpdateListResponse {
	responses := make([]spec.UpdateResponse, len(updates))
	for i, update := range updates {
		responses[i] = ConvertToUpdateResponse(update)
	}
	return spec.UpdateListResponse{Updates: responses}
}

func ConvertToUpdateDetailsResponse(details *models.UpdateDetails) spec.UpdateDetailsResponse {
	assets := make([]spec.AssetResponse, len(details.Assets))
	for i, a := range details.Assets {
		assets[i] = spec.AssetResponse{
			Id:            a.ID,
			ObjectKey:     a.ObjectKey,
			Hash:          a.Hash,
			Key:           a.LogicalKey,
			FileExtension: a.FileExtension,
			ContentType:   a.ContentType,
			Size:          a.Size,
		}
	}
	live := make([]spec.LiveChannelResponse, len(details.LiveOn))
	for i, l := range details.LiveOn {
		live[i] = spec.LiveChannelResponse{
			AssignmentId:   l.AssignmentID,
			ChannelId:      l.ChannelID,
			ChannelName:    l.ChannelName,
			RolloutPercent: l.RolloutPercent,
			UpdatedAt:      l.UpdatedAt,
		}
	}
	return spec.UpdateDetailsResponse{
		UpdateResponse: ConvertToUpdateResponse(&details.Update),
		Assets:         assets,
		LiveOn:         live,
	}
}

func ConvertToRollbackHistoryListResponse(entries []*models.RollbackHistoryEntry) spec.RollbackHistoryListResponse {
	responses := make([]spec.RollbackHistoryResponse, len(entries))
	for i, e := range entries {
		responses[i] = spec.RollbackHistoryResponse{
			Id:           e.ID,
			ChannelId:    e.ChannelID,
			ChannelName:  e.ChannelName,
			FromUpdateId: e.FromUpdateID,
			ToUpdateId:   e.ToUpdateID,
			Reason:       e.Reason,
			CreatedAt:    e.CreatedAt,
		}
	}
	return spec.RollbackHistoryListResponse{Rollbacks: responses}
}

func ConvertToPresignUploadResponse(result *models.PresignResult) spec.PresignUploadResponse {
	assets := make([]spec.PresignedObject, len(result.Assets))
	for i, a := range result.Assets {
		assets[i] = convertToPresignedObject(a)
	}
	return spec.PresignUploadResponse{
		UpdateGroupId: result.UpdateGroupID,
		Bundle:        convertToPresignedObject(result.Bundle),
		Assets:        assets,
	}
}

func convertToPresignedObject(obj models.PresignedObject) spec.PresignedObject {
	return spec.PresignedObject{
		Filename:  obj.Filename,
		ObjectKey: obj.ObjectKey,
		UploadUrl: obj.UploadURL,
	}
}

func ConvertToPreflightResponse(report *models.PreflightReport) spec.PreflightResponse {
	checks := make([]spec.PreflightCheck, len(report.Checks))
	for i, c := range report.Checks {
		checks[i] = spec.PreflightCheck{
			Id:      c.ID,
			Status:  string(c.Status),
			Message: c.Message,
		}
	}
	return spec.PreflightResponse{
		Ok: report.OK,
		Suggested: spec.PreflightSuggestion{
			Platform:       string(report.Suggested.Platform),
			RuntimeVersion: report.Suggested.RuntimeVersion,
			ChannelName:    report.Suggested.ChannelName,
		},
		AvailableChannels:    nonNilStrings(report.AvailableChannels),
		KnownRuntimeVersions: nonNilStrings(report.KnownRuntimeVersions),
		Checks:               checks,
	}
}

// ConvertToManifest renders a resolved manifest in its wire form
func ConvertToManifest(m *models.ResolvedManifest) spec.Manifest {
	assets := make([]spec.ManifestAsset, len(m.Assets))
	for i, a := range m.Assets {
		assets[i] = convertToManifestAsset(a)
	}
	return spec.Manifest{
		Id:             m.ID,
		CreatedAt:      m.CreatedAt,
		RuntimeVersion: m.RuntimeVersion,
		LaunchAsset:    convertToManifestAsset(m.LaunchAsset),
		Assets:         assets,
		Metadata:       spec.ManifestMetadata{BranchName: m.BranchName},
		Extra:          map[string]any{},
	}
}

// ConvertToManifestExtensions lists every asset key, launch asset included, with no extra request headers
func ConvertToManifestExtensions(m *models.ResolvedManifest) spec.ManifestExtensions {
	headers := make(map[string]map[string]string, len(m.Assets)+1)
	headers[m.LaunchAsset.Key] = map[string]string{}
	for _, a := range m.Assets {
		headers[a.Key] = map[string]string{}
	}
	return spec.ManifestExtensions{AssetRequestHeaders: headers}
}

func convertToManifestAsset(a models.ManifestAsset) spec.ManifestAsset {
	return spec.ManifestAsset{
		Hash:          a.Hash,
		Key:           a.Key,
		FileExtension: a.FileExtension,
		ContentType:   a.ContentType,
		Url:           a.URL,
	}
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func ConvertToToggleUpdateResponse(update *models.Update) spec.ToggleUpdateResponse {
	return spec.ToggleUpdateResponse{
		Id:      update.ID,
		Enabled: update.Enabled,
	}
}

func ConvertToUpdateRolloutResponse(assignment *models.ChannelAssignment) spec.UpdateRolloutResponse {
	return spec.UpdateRolloutResponse{
		Id:             assignment.ID,
		RolloutPercent: assignment.RolloutPercent,
	}
}

func ConvertToCommitUploadResponse(result *models.CommitResult) spec.CommitUploadResponse {
	return spec.CommitUploadResponse{
		UpdateId:      result.UpdateID,
		UpdateGroupId: result.UpdateGroupID,
		ChannelName:   result.ChannelName,
	}
}

func ConvertToPromoteUpdateResponse(result *models.PromoteResult) spec.PromoteUpdateResponse {
	return spec.PromoteUpdateResponse{
		Promoted:       true,
		UpdateId:       result.UpdateID,
		FromChannel:    result.FromChannel,
		ToChannel:      result.ToChannel,
		RuntimeVersion: result.RuntimeVersion,
		Platform:       string(result.Platform),
		RolloutPercent: result.RolloutPercent,
	}
}

func ConvertToRollbackUpdateResponse(result *models.RollbackResult) spec.RollbackUpdateResponse {
	return spec.RollbackUpdateResponse{
		RolledBack:     true,
		FromUpdateId:   result.FromUpdateID,
		ToUpdateId:     result.ToUpdateID,
		ChannelName:    result.ChannelName,
		RuntimeVersion: result.RuntimeVersion,
		Platform:       string(result.Platform),
	}
}

func ConvertToDeleteAppResponse(result *models.DeleteAppResult) spec.DeleteAppResponse {
	return spec.DeleteAppResponse{
		Deleted:       true,
		PurgedObjects: result.PurgedObjects,
	}
}
