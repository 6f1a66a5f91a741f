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
	"slices"

	"github.com/otaforge/ota-update-service/config"
	"github.com/otaforge/ota-update-service/models"
	"github.com/otaforge/ota-update-service/repositories"
	"github.com/otaforge/ota-update-service/utils"
)

var validBundleExtensions = []string{".js", ".bundle", ".hbc"}

const bytesPerMB = 1024 * 1024

// PreflightService reports what a commit with the given parameters would do.
// It never writes.
type PreflightService interface {
	Preflight(ctx context.Context, appKey string, req *models.PreflightRequest) (*models.PreflightReport, error)
}

type preflightService struct {
	logger          *slog.Logger
	appRepo         repositories.AppRepository
	channelRepo     repositories.ChannelRepository
	updateRepo      repositories.UpdateRepository
	assignmentRepo  repositories.AssignmentRepository
	preflightConfig config.PreflightConfig
}

// NewPreflightService creates a new preflight service
func NewPreflightService(
	logger *slog.Logger,
	appRepo repositories.AppRepository,
	channelRepo repositories.ChannelRepository,
	updateRepo repositories.UpdateRepository,
	assignmentRepo repositories.AssignmentRepository,
	preflightConfig config.PreflightConfig,
) PreflightService {
	return &preflightService{
		logger:          logger,
		appRepo:         appRepo,
		channelRepo:     channelRepo,
		updateRepo:      updateRepo,
		assignmentRepo:  assignmentRepo,
		preflightConfig: preflightConfig,
	}
}

func (s *preflightService) Preflight(ctx context.Context, appKey string, req *models.PreflightRequest) (*models.PreflightReport, error) {
	if !req.Platform.IsValid() {
		return nil, utils.ErrInvalidPlatform
	}
	if req.BundleSize != nil && *req.BundleSize < 0 {
		return nil, utils.NewValidationError("bundle size cannot be negative")
	}

	app, err := lookupApp(ctx, s.appRepo, appKey)
	if err != nil {
		return nil, err
	}
	channels, err := s.channelRepo.ListChannels(ctx, app.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	channelNames := make([]string, len(channels))
	for i, ch := range channels {
		channelNames[i] = ch.Name
	}
	runtimeVersions, err := s.updateRepo.ListRuntimeVersions(ctx, app.ID, req.Platform)
	if err != nil {
		return nil, fmt.Errorf("failed to list runtime versions: %w", err)
	}
	knownRuntimeVersions := utils.SortVersionsDesc(runtimeVersions)

	suggestedRuntime, err := s.suggestRuntimeVersion(ctx, app.ID, req.Platform)
	if err != nil {
		return nil, err
	}

	report := &models.PreflightReport{
		Suggested: models.PreflightSuggestion{
			Platform:       req.Platform,
			RuntimeVersion: suggestedRuntime,
			ChannelName:    suggestChannel(channelNames),
		},
		AvailableChannels:    channelNames,
		KnownRuntimeVersions: knownRuntimeVersions,
		Checks:               []models.PreflightCheck{},
	}

	if req.HasValidationIntent() {
		checks, err := s.runChecks(ctx, app.ID, req, channels, knownRuntimeVersions)
		if err != nil {
			return nil, err
		}
		report.Checks = checks
	}

	report.OK = !slices.ContainsFunc(report.Checks, func(c models.PreflightCheck) bool {
		return c.Status == models.CheckFail
	})
	return report, nil
}

func (s *preflightService) runChecks(
	ctx context.Context,
	appID string,
	req *models.PreflightRequest,
	channels []*models.Channel,
	knownRuntimeVersions []string,
) ([]models.PreflightCheck, error) {
	var checks []models.PreflightCheck
	add := func(id string, status models.CheckStatus, format string, args ...any) {
		checks = append(checks, models.PreflightCheck{ID: id, Status: status, Message: fmt.Sprintf(format, args...)})
	}

	runtimeVersion := derefString(req.RuntimeVersion)
	switch {
	case runtimeVersion == "":
		add("runtime-required", models.CheckFail, "Runtime version is required.")
	case slices.Contains(knownRuntimeVersions, runtimeVersion):
		add("runtime-known", models.CheckPass, "Runtime %s is already used for %s.", runtimeVersion, req.Platform)
	default:
		add("runtime-new", models.CheckWarn, "Runtime %s is new for %s. Only clients on this runtime will receive it.", runtimeVersion, req.Platform)
	}

	var selected *models.Channel
	channelName := derefString(req.ChannelName)
	if channelName == "" {
		add("channel-required", models.CheckFail, "Channel is required.")
	} else {
		for _, ch := range channels {
			if ch.Name == channelName {
				selected = ch
				break
			}
		}
		if selected != nil {
			add("channel-existing", models.CheckPass, "Channel '%s' exists.", channelName)
		} else {
			add("channel-new", models.CheckWarn, "Channel '%s' does not exist and will be created on commit.", channelName)
		}
	}

	if runtimeVersion != "" && selected != nil {
		existing, err := s.assignmentRepo.GetAssignment(ctx, models.AssignmentKey{
			AppID:          appID,
			ChannelID:      selected.ID,
			RuntimeVersion: runtimeVersion,
			Platform:       req.Platform,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get channel assignment: %w", err)
		}
		if existing != nil {
			add("assignment-replace", models.CheckWarn, "Existing assignment %s... will be replaced.", shortID(existing.UpdateID))
		} else {
			add("assignment-new", models.CheckPass, "No existing assignment for this channel/runtime/platform.")
		}
	}

	bundleFilename := derefString(req.BundleFilename)
	if bundleFilename == "" {
		add("bundle-required", models.CheckFail, "Bundle file is required.")
	} else {
		ext := utils.FileExtension(bundleFilename)
		if slices.Contains(validBundleExtensions, ext) {
			add("bundle-extension-ok", models.CheckPass, "Bundle extension %s looks valid.", ext)
		} else {
			shown := ext
			if shown == "" {
				shown = "(none)"
			}
			add("bundle-extension-warn", models.CheckWarn, "Bundle extension '%s' is unusual. Recommended: .js, .bundle, .hbc.", shown)
		}
	}

	switch {
	case req.BundleSize == nil:
		add("bundle-size-required", models.CheckFail, "Bundle size is required.")
	case *req.BundleSize == 0:
		add("bundle-size-empty", models.CheckFail, "Bundle file is empty.")
	case *req.BundleSize > s.preflightConfig.LargeBundleBytes:
		add("bundle-size-large", models.CheckWarn, "Bundle is larger than %dMB. Consider splitting to reduce OTA risk.",
			s.preflightConfig.LargeBundleBytes/bytesPerMB)
	default:
		add("bundle-size-ok", models.CheckPass, "Bundle size looks reasonable.")
	}

	return checks, nil
}

// suggestRuntimeVersion picks the runtime of the newest update for the platform,
// then of the newest update overall
func (s *preflightService) suggestRuntimeVersion(ctx context.Context, appID string, platform models.Platform) (string, error) {
	for _, filter := range []repositories.UpdateFilter{
		{Platform: platform, Limit: 1},
		{Limit: 1},
	} {
		latest, err := s.updateRepo.ListUpdates(ctx, appID, filter)
		if err != nil {
			return "", fmt.Errorf("failed to get latest update: %w", err)
		}
		if len(latest) > 0 {
			return latest[0].RuntimeVersion, nil
		}
	}
	return utils.DefaultRuntimeVersion, nil
}

func suggestChannel(channelNames []string) string {
	switch {
	case slices.Contains(channelNames, models.ChannelStaging):
		return models.ChannelStaging
	case slices.Contains(channelNames, models.ChannelProduction):
		return models.ChannelProduction
	case len(channelNames) > 0:
		return channelNames[0]
	default:
		return models.ChannelStaging
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
