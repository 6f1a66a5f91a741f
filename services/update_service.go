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

	"github.com/otaforge/ota-update-service/db"
	"github.com/otaforge/ota-update-service/models"
	"github.com/otaforge/ota-update-service/repositories"
	"github.com/otaforge/ota-update-service/utils"
)

// UpdateService defines the interface for update administration and channel moves
type UpdateService interface {
	ListUpdates(ctx context.Context, appKey string, filter repositories.UpdateFilter) ([]*models.Update, error)
	GetUpdate(ctx context.Context, appKey, updateID string) (*models.UpdateDetails, error)
	ToggleUpdate(ctx context.Context, caller models.Caller, appKey, updateID string) (*models.Update, error)
	Promote(ctx context.Context, caller models.Caller, appKey string, req *models.PromoteRequest) (*models.PromoteResult, error)
	Rollback(ctx context.Context, caller models.Caller, appKey string, req *models.RollbackRequest) (*models.RollbackResult, error)
	ListRollbacks(ctx context.Context, appKey string, limit, offset int) ([]*models.RollbackHistoryEntry, error)
}

type updateService struct {
	logger         *slog.Logger
	txManager      db.TransactionManager
	appRepo        repositories.AppRepository
	channelRepo    repositories.ChannelRepository
	updateRepo     repositories.UpdateRepository
	assignmentRepo repositories.AssignmentRepository
	rollbackRepo   repositories.RollbackHistoryRepository
}

// NewUpdateService creates a new update service
func NewUpdateService(
	logger *slog.Logger,
	txManager db.TransactionManager,
	appRepo repositories.AppRepository,
	channelRepo repositories.ChannelRepository,
	updateRepo repositories.UpdateRepository,
	assignmentRepo repositories.AssignmentRepository,
	rollbackRepo repositories.RollbackHistoryRepository,
) UpdateService {
	return &updateService{
		logger:         logger,
		txManager:      txManager,
		appRepo:        appRepo,
		channelRepo:    channelRepo,
		updateRepo:     updateRepo,
		assignmentRepo: assignmentRepo,
		rollbackRepo:   rollbackRepo,
	}
}

func (s *updateService) ListUpdates(ctx context.Context, appKey string, filter repositories.UpdateFilter) ([]*models.Update, error) {
	if filter.Platform != "" && !filter.Platform.IsValid() {
		return nil, utils.ErrInvalidPlatform
	}
	app, err := lookupApp(ctx, s.appRepo, appKey)
	if err != nil {
		return nil, err
	}
	updates, err := s.updateRepo.ListUpdates(ctx, app.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list updates: %w", err)
	}
	return updates, nil
}

func (s *updateService) GetUpdate(ctx context.Context, appKey, updateID string) (*models.UpdateDetails, error) {
	app, err := lookupApp(ctx, s.appRepo, appKey)
	if err != nil {
		return nil, err
	}
	update, err := s.getUpdate(ctx, app.ID, updateID)
	if err != nil {
		return nil, err
	}
	assets, err := s.updateRepo.ListAssets(ctx, update.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	liveOn, err := s.assignmentRepo.ListLiveAssignments(ctx, update.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list live assignments: %w", err)
	}
	return &models.UpdateDetails{
		Update: *update,
		Assets: assets,
		LiveOn: liveOn,
	}, nil
}

// ToggleUpdate flips the enabled flag in a single statement and returns the stored row
func (s *updateService) ToggleUpdate(ctx context.Context, caller models.Caller, appKey, updateID string) (*models.Update, error) {
	app, err := lookupApp(ctx, s.appRepo, appKey)
	if err != nil {
		return nil, err
	}

	var toggled *models.Update
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		update, err := s.getUpdate(ctx, app.ID, updateID)
		if err != nil {
			return err
		}
		if err := s.updateRepo.ToggleEnabled(ctx, update.ID); err != nil {
			return fmt.Errorf("failed to toggle update: %w", err)
		}
		toggled, err = s.getUpdate(ctx, app.ID, update.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update toggled", "appKey", appKey, "updateId", toggled.ID, "enabled", toggled.Enabled, "caller", caller.String())
	return toggled, nil
}

// Promote copies the assignment of a live update from one channel onto another.
// The source check and the target write happen in one transaction.
func (s *updateService) Promote(ctx context.Context, caller models.Caller, appKey string, req *models.PromoteRequest) (*models.PromoteResult, error) {
	if req.FromChannel == req.ToChannel {
		return nil, utils.ErrSameChannelPromotion
	}
	if err := utils.ValidateChannelName(req.ToChannel); err != nil {
		return nil, err
	}
	percent := float64(models.MaxRolloutPercent)
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
	update, err := s.getUpdate(ctx, app.ID, req.UpdateID)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		source, err := s.channelRepo.GetChannelByName(ctx, app.ID, req.FromChannel)
		if err != nil {
			return fmt.Errorf("failed to get source channel: %w", err)
		}
		if source == nil {
			return utils.ErrChannelNotFound
		}
		live, err := s.assignmentRepo.GetAssignment(ctx, models.AssignmentKey{
			AppID:          app.ID,
			ChannelID:      source.ID,
			RuntimeVersion: update.RuntimeVersion,
			Platform:       update.Platform,
		})
		if err != nil {
			return fmt.Errorf("failed to get source assignment: %w", err)
		}
		if live == nil || live.UpdateID != update.ID {
			return utils.ErrUpdateNotLiveOnChannel
		}

		target, err := s.channelRepo.GetOrCreateChannel(ctx, app.ID, req.ToChannel)
		if err != nil {
			return fmt.Errorf("failed to get or create target channel: %w", err)
		}
		_, err = s.assignmentRepo.UpsertAssignment(ctx, models.AssignmentKey{
			AppID:          app.ID,
			ChannelID:      target.ID,
			RuntimeVersion: update.RuntimeVersion,
			Platform:       update.Platform,
		}, update.ID, percent)
		if err != nil {
			return fmt.Errorf("failed to upsert target assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update promoted",
		"appKey", appKey, "updateId", update.ID, "from", req.FromChannel, "to", req.ToChannel,
		"rolloutPercent", percent, "caller", caller.String())
	return &models.PromoteResult{
		UpdateID:       update.ID,
		FromChannel:    req.FromChannel,
		ToChannel:      req.ToChannel,
		RuntimeVersion: update.RuntimeVersion,
		Platform:       update.Platform,
		RolloutPercent: percent,
	}, nil
}

// Rollback points the channel's assignment for the target's runtime version and
// platform back at the target update and records the move. The rollout
// percentage of the assignment is kept.
func (s *updateService) Rollback(ctx context.Context, caller models.Caller, appKey string, req *models.RollbackRequest) (*models.RollbackResult, error) {
	if err := utils.ValidateChannelName(req.ChannelName); err != nil {
		return nil, err
	}
	app, err := lookupApp(ctx, s.appRepo, appKey)
	if err != nil {
		return nil, err
	}
	target, err := s.getUpdate(ctx, app.ID, req.TargetUpdateID)
	if err != nil {
		return nil, err
	}

	var result *models.RollbackResult
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		channel, err := s.channelRepo.GetChannelByName(ctx, app.ID, req.ChannelName)
		if err != nil {
			return fmt.Errorf("failed to get channel: %w", err)
		}
		if channel == nil {
			return utils.ErrChannelNotFound
		}
		current, err := s.assignmentRepo.GetAssignment(ctx, models.AssignmentKey{
			AppID:          app.ID,
			ChannelID:      channel.ID,
			RuntimeVersion: target.RuntimeVersion,
			Platform:       target.Platform,
		})
		if err != nil {
			return fmt.Errorf("failed to get channel assignment: %w", err)
		}
		if current == nil {
			return utils.ErrAssignmentNotFound
		}
		if current.UpdateID == target.ID {
			return utils.ErrAlreadyLive
		}

		if err := s.assignmentRepo.RepointAssignment(ctx, current.ID, target.ID); err != nil {
			return fmt.Errorf("failed to repoint assignment: %w", err)
		}
		if err := s.rollbackRepo.AppendRollback(ctx, &models.RollbackHistory{
			ID:           uuid.NewString(),
			AppID:        app.ID,
			ChannelID:    channel.ID,
			FromUpdateID: current.UpdateID,
			ToUpdateID:   target.ID,
			Reason:       req.Reason,
			CreatedAt:    time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("failed to record rollback: %w", err)
		}
		result = &models.RollbackResult{
			FromUpdateID:   current.UpdateID,
			ToUpdateID:     target.ID,
			ChannelName:    channel.Name,
			RuntimeVersion: target.RuntimeVersion,
			Platform:       target.Platform,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update rolled back",
		"appKey", appKey, "channel", result.ChannelName, "from", result.FromUpdateID,
		"to", result.ToUpdateID, "caller", caller.String())
	return result, nil
}

func (s *updateService) ListRollbacks(ctx context.Context, appKey string, limit, offset int) ([]*models.RollbackHistoryEntry, error) {
	app, err := lookupApp(ctx, s.appRepo, appKey)
	if err != nil {
		return nil, err
	}
	entries, err := s.rollbackRepo.ListRollbacks(ctx, app.ID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list rollbacks: %w", err)
	}
	return entries, nil
}

func (s *updateService) getUpdate(ctx context.Context, appID, updateID string) (*models.Update, error) {
	update, err := s.updateRepo.GetUpdateByID(ctx, appID, updateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get update %q: %w", updateID, err)
	}
	if update == nil {
		return nil, utils.ErrUpdateNotFound
	}
	return update, nil
}
