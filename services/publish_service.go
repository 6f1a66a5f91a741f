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

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/otaforge/ota-update-service/clients/objectstore"
	"github.com/otaforge/ota-update-service/config"
	"github.com/otaforge/ota-update-service/db"
	"github.com/otaforge/ota-update-service/models"
	"github.com/otaforge/ota-update-service/repositories"
	"github.com/otaforge/ota-update-service/utils"
)

const bundleUploadContentType = "application/javascript"

// PublishService issues upload URLs and commits uploaded bundles as updates
type PublishService interface {
	Presign(ctx context.Context, appKey string, req *models.PresignRequest) (*models.PresignResult, error)
	Commit(ctx context.Context, caller models.Caller, appKey string, req *models.CommitRequest) (*models.CommitResult, error)
}

type publishService struct {
	logger         *slog.Logger
	txManager      db.TransactionManager
	appRepo        repositories.AppRepository
	channelRepo    repositories.ChannelRepository
	updateRepo     repositories.UpdateRepository
	assignmentRepo repositories.AssignmentRepository
	objectStore    objectstore.ObjectStoreClient
	rolloutConfig  config.RolloutConfig
}

// NewPublishService creates a new publish service
func NewPublishService(
	logger *slog.Logger,
	txManager db.TransactionManager,
	appRepo repositories.AppRepository,
	channelRepo repositories.ChannelRepository,
	updateRepo repositories.UpdateRepository,
	assignmentRepo repositories.AssignmentRepository,
	objectStore objectstore.ObjectStoreClient,
	rolloutConfig config.RolloutConfig,
) PublishService {
	return &publishService{
		logger:         logger,
		txManager:      txManager,
		appRepo:        appRepo,
		channelRepo:    channelRepo,
		updateRepo:     updateRepo,
		assignmentRepo: assignmentRepo,
		objectStore:    objectStore,
		rolloutConfig:  rolloutConfig,
	}
}

// Presign allocates a new update group and returns upload URLs for its bundle and assets
func (s *publishService) Presign(ctx context.Context, appKey string, req *models.PresignRequest) (*models.PresignResult, error) {
	if err := validateUploadTarget(req.RuntimeVersion, req.Platform); err != nil {
		return nil, err
	}
	if !utils.IsSafePathSegment(req.BundleFilename) {
		return nil, utils.NewValidationError("invalid bundle filename %q", req.BundleFilename)
	}
	for _, asset := range req.Assets {
		if !utils.IsSafePathSegment(asset.Filename) {
			return nil, utils.NewValidationError("invalid asset filename %q", asset.Filename)
		}
	}
	if _, err := lookupApp(ctx, s.appRepo, appKey); err != nil {
		return nil, err
	}

	groupID := uuid.NewString()
	prefix := utils.BuildUploadPrefix(appKey, req.RuntimeVersion, groupID)

	bundleKey := utils.BuildBundleObjectKey(prefix, string(req.Platform), req.BundleFilename)
	bundleURL, err := s.objectStore.PutURL(ctx, bundleKey, bundleUploadContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to presign bundle upload: %w: %w", utils.ErrStorageUnavailable, err)
	}

	result := &models.PresignResult{
		UpdateGroupID: groupID,
		Bundle: models.PresignedObject{
			Filename:  req.BundleFilename,
			ObjectKey: bundleKey,
			UploadURL: bundleURL,
		},
		Assets: make([]models.PresignedObject, 0, len(req.Assets)),
	}
	for _, asset := range req.Assets {
		key := utils.BuildAssetObjectKey(prefix, asset.Filename)
		contentType := models.DefaultAssetContentType
		if asset.ContentType != nil && *asset.ContentType != "" {
			contentType = *asset.ContentType
		}
		url, err := s.objectStore.PutURL(ctx, key, contentType)
		if err != nil {
			return nil, fmt.Errorf("failed to presign asset upload: %w: %w", utils.ErrStorageUnavailable, err)
		}
		result.Assets = append(result.Assets, models.PresignedObject{
			Filename:  asset.Filename,
			ObjectKey: key,
			UploadURL: url,
		})
	}

	s.logger.Debug("Upload presigned", "appKey", appKey, "updateGroupId", groupID, "assetCount", len(result.Assets))
	return result, nil
}

// Commit records an uploaded update and makes it live on the target channel.
// Every referenced object must already exist in storage.
func (s *publishService) Commit(ctx context.Context, caller models.Caller, appKey string, req *models.CommitRequest) (*models.CommitResult, error) {
	if err := s.validateCommit(appKey, req); err != nil {
		return nil, err
	}
	channelName := models.ChannelStaging
	if req.ChannelName != nil {
		channelName = *req.ChannelName
	}
	percent := s.rolloutConfig.DefaultPercent
	if req.RolloutPercent != nil {
		percent = *req.RolloutPercent
	}
	if !models.IsValidRolloutPercent(percent) {
		return nil, utils.ErrInvalidRolloutPercent
	}

	app, err := lookupApp(ctx, s.appRepo, appKey)
	if err != nil {
		return nil, err
	}
	if err := s.ensureObjectsExist(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	update := &models.Update{
		ID:             uuid.NewString(),
		AppID:          app.ID,
		UpdateGroupID:  req.UpdateGroupID,
		RuntimeVersion: req.RuntimeVersion,
		Platform:       req.Platform,
		BundleKey:      req.Bundle.ObjectKey,
		BundleHash:     req.Bundle.Hash,
		BundleSize:     req.Bundle.Size,
		Enabled:        true,
		CreatedAt:      now,
	}
	assets := make([]*models.Asset, len(req.Assets))
	for i, a := range req.Assets {
		assets[i] = &models.Asset{
			ID:            uuid.NewString(),
			UpdateID:      update.ID,
			ObjectKey:     a.ObjectKey,
			Hash:          a.Hash,
			LogicalKey:    a.LogicalKey,
			FileExtension: a.FileExtension,
			ContentType:   a.ContentType,
			Size:          a.Size,
		}
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.updateRepo.CreateUpdate(ctx, update); err != nil {
			return fmt.Errorf("failed to create update: %w", err)
		}
		if err := s.updateRepo.CreateAssets(ctx, assets); err != nil {
			return fmt.Errorf("failed to create assets: %w", err)
		}
		channel, err := s.channelRepo.GetOrCreateChannel(ctx, app.ID, channelName)
		if err != nil {
			return fmt.Errorf("failed to get or create channel: %w", err)
		}
		_, err = s.assignmentRepo.UpsertAssignment(ctx, models.AssignmentKey{
			AppID:          app.ID,
			ChannelID:      channel.ID,
			RuntimeVersion: update.RuntimeVersion,
			Platform:       update.Platform,
		}, update.ID, percent)
		if err != nil {
			return fmt.Errorf("failed to upsert assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update committed",
		"appKey", appKey, "updateId", update.ID, "channel", channelName,
		"runtimeVersion", update.RuntimeVersion, "platform", update.Platform,
		"rolloutPercent", percent, "caller", caller.String())
	return &models.CommitResult{
		UpdateID:      update.ID,
		UpdateGroupID: update.UpdateGroupID,
		ChannelName:   channelName,
	}, nil
}

func (s *publishService) validateCommit(appKey string, req *models.CommitRequest) error {
	if err := validateUploadTarget(req.RuntimeVersion, req.Platform); err != nil {
		return err
	}
	if !utils.IsSafePathSegment(req.UpdateGroupID) {
		return utils.NewValidationError("invalid update group id %q", req.UpdateGroupID)
	}
	if req.ChannelName != nil {
		if err := utils.ValidateChannelName(*req.ChannelName); err != nil {
			return err
		}
	}

	prefix := utils.BuildUploadPrefix(appKey, req.RuntimeVersion, req.UpdateGroupID)
	if !utils.IsHexDigest(req.Bundle.Hash) {
		return fmt.Errorf("bundle: %w", utils.ErrInvalidHash)
	}
	if !utils.IsBundleKeyInScope(req.Bundle.ObjectKey, prefix, string(req.Platform)) {
		return fmt.Errorf("bundle %q: %w", req.Bundle.ObjectKey, utils.ErrObjectKeyOutsidePrefix)
	}
	for _, a := range req.Assets {
		if a.LogicalKey == "" {
			return utils.NewValidationError("asset %q is missing its key", a.ObjectKey)
		}
		if !utils.IsHexDigest(a.Hash) {
			return fmt.Errorf("asset %q: %w", a.LogicalKey, utils.ErrInvalidHash)
		}
		if !utils.IsAssetKeyInScope(a.ObjectKey, prefix) {
			return fmt.Errorf("asset %q: %w", a.ObjectKey, utils.ErrObjectKeyOutsidePrefix)
		}
	}
	return nil
}

func (s *publishService) ensureObjectsExist(ctx context.Context, req *models.CommitRequest) error {
	keys := make([]string, 0, len(req.Assets)+1)
	keys = append(keys, req.Bundle.ObjectKey)
	for _, a := range req.Assets {
		keys = append(keys, a.ObjectKey)
	}
	for _, key := range keys {
		exists, err := s.objectStore.Exists(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to check object %q: %w: %w", key, utils.ErrStorageUnavailable, err)
		}
		if !exists {
			return fmt.Errorf("%q: %w", key, utils.ErrObjectNotFound)
		}
	}
	return nil
}

func validateUploadTarget(runtimeVersion string, platform models.Platform) error {
	if runtimeVersion == "" {
		return utils.ErrMissingRuntimeVersion
	}
	if !utils.IsSafePathSegment(runtimeVersion) {
		return utils.NewValidationError("invalid runtime version %q", runtimeVersion)
	}
	if !platform.IsValid() {
		return utils.ErrInvalidPlatform
	}
	return nil
}
