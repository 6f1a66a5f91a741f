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

	"github.com/otaforge/ota-update-service/models"
	"github.com/otaforge/ota-update-service/repositories"
	"github.com/otaforge/ota-update-service/utils"
)

// ChannelService defines the interface for channel listing and rollout edits
type ChannelService interface {
	ListChannels(ctx context.Context, appKey string) ([]*models.ChannelWithAssignments, error)
	SetRollout(ctx context.Context, caller models.Caller, appKey string, req *models.SetRolloutRequest) (*models.ChannelAssignment, error)
}

type channelService struct {
	logger         *slog.Logger
	appRepo        repositories.AppRepository
	channelRepo    repositories.ChannelRepository
	assignmentRepo repositories.AssignmentRepository
}

// NewChannelService creates a new channel service
func NewChannelService(
	logger *slog.Logger,
	appRepo repositories.AppRepository,
	channelRepo repositories.ChannelRepository,
	assignmentRepo repositories.AssignmentRepository,
) ChannelService {
	return &channelService{
		logger:         logger,
		appRepo:        appRepo,
		channelRepo:    channelRepo,
		assignmentRepo: assignmentRepo,
	}
}

func (s *channelService) ListChannels(ctx context.Context, appKey string) ([]*models.ChannelWithAssignments, error) {
	app, err := lookupApp(ctx, s.appRepo, appKey)
	if err != nil {
		return nil, err
	}
	channels, err := s.channelRepo.ListChannels(ctx, app.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}

	channelIDs := make([]string, len(channels))
	for i, ch := range channels {
		channelIDs[i] = ch.ID
	}
	assignments, err := s.assignmentRepo.ListAssignmentsByChannels(ctx, channelIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel assignments: %w", err)
	}
	byChannel := make(map[string][]*models.ChannelAssignment, len(channels))
	for _, a := range assignments {
		byChannel[a.ChannelID] = append(byChannel[a.ChannelID], a)
	}

	result := make([]*models.ChannelWithAssignments, len(channels))
	for i, ch := range channels {
		result[i] = &models.ChannelWithAssignments{
			Channel:     *ch,
			Assignments: byChannel[ch.ID],
		}
	}
	return result, nil
}

// SetRollout edits the rollout percentage of one assignment of a channel
func (s *channelService) SetRollout(ctx context.Context, caller models.Caller, appKey string, req *models.SetRolloutRequest) (*models.ChannelAssignment, error) {
	if !models.IsValidRolloutPercent(req.RolloutPercent) {
		return nil, utils.ErrInvalidRolloutPercent
	}
	if req.AssignmentID == "" {
		return nil, utils.NewValidationError("assignment id is required")
	}

	app, err := lookupApp(ctx, s.appRepo, appKey)
	if err != nil {
		return nil, err
	}
	channel, err := s.channelRepo.GetChannelByID(ctx, app.ID, req.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	if channel == nil {
		return nil, utils.ErrChannelNotFound
	}
	assignment, err := s.assignmentRepo.GetAssignmentByID(ctx, channel.ID, req.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel assignment: %w", err)
	}
	if assignment == nil {
		return nil, utils.ErrAssignmentNotFound
	}

	if err := s.assignmentRepo.SetRolloutPercent(ctx, assignment.ID, req.RolloutPercent); err != nil {
		return nil, fmt.Errorf("failed to set rollout percent: %w", err)
	}
	s.logger.Info("Rollout updated",
		"appKey", appKey, "channel", channel.Name, "assignmentId", assignment.ID,
		"from", assignment.RolloutPercent, "to", req.RolloutPercent, "caller", caller.String())

	assignment.RolloutPercent = req.RolloutPercent
	return assignment, nil
}
