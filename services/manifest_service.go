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

	"github.com/otaforge/ota-update-service/clients/objectstore"
	"github.com/otaforge/ota-update-service/models"
	"github.com/otaforge/ota-update-service/repositories"
	"github.com/otaforge/ota-update-service/utils"
)

const (
	launchAssetKey          = "bundle"
	launchAssetExtension    = ".bundle"
	launchAssetContentType  = "application/javascript"
	manifestCreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Resolution step names, reported as the exit step of a resolution
const (
	StepApp            = "app"
	StepChannel        = "channel"
	StepAssignment     = "assignment"
	StepRollout        = "rollout"
	StepUpdate         = "update"
	StepAlreadyCurrent = "already-current"
	StepHashes         = "hashes"
	StepURLs           = "urls"
	StepManifest       = "manifest"
)

// ManifestService decides which update, if any, a client should launch
type ManifestService interface {
	Resolve(ctx context.Context, req *models.ManifestRequest) (*models.ManifestResolution, error)
}

type manifestService struct {
	logger         *slog.Logger
	appRepo        repositories.AppRepository
	channelRepo    repositories.ChannelRepository
	updateRepo     repositories.UpdateRepository
	assignmentRepo repositories.AssignmentRepository
	objectStore    objectstore.ObjectStoreClient
	steps          []resolutionStep
}

// NewManifestService creates a new manifest service
func NewManifestService(
	logger *slog.Logger,
	appRepo repositories.AppRepository,
	channelRepo repositories.ChannelRepository,
	updateRepo repositories.UpdateRepository,
	assignmentRepo repositories.AssignmentRepository,
	objectStore objectstore.ObjectStoreClient,
) ManifestService {
	s := &manifestService{
		logger:         logger,
		appRepo:        appRepo,
		channelRepo:    channelRepo,
		updateRepo:     updateRepo,
		assignmentRepo: assignmentRepo,
		objectStore:    objectStore,
	}
	s.steps = []resolutionStep{
		{name: StepApp, run: s.resolveApp},
		{name: StepChannel, run: s.resolveChannel},
		{name: StepAssignment, run: s.resolveAssignment},
		{name: StepRollout, run: s.checkRollout},
		{name: StepUpdate, run: s.resolveUpdate},
		{name: StepAlreadyCurrent, run: s.checkAlreadyCurrent},
		{name: StepHashes, run: s.convertHashes},
		{name: StepURLs, run: s.signURLs},
		{name: StepManifest, run: s.buildManifest},
	}
	return s
}

type stepOutcome int

const (
	proceed stepOutcome = iota
	noUpdate
)

// resolutionStep is one link of the exit chain. A step either lets the chain
// proceed, ends it with no update, or fails it with an error.
type resolutionStep struct {
	name string
	run  func(ctx context.Context, st *resolutionState) (stepOutcome, error)
}

// resolutionState accumulates what earlier steps looked up
type resolutionState struct {
	req         *models.ManifestRequest
	app         *models.App
	channel     *models.Channel
	assignment  *models.ChannelAssignment
	update      *models.Update
	assets      []*models.Asset
	bundleHash  string
	assetHashes []string
	bundleURL   string
	assetURLs   []string
	manifest    *models.ResolvedManifest
}

// Resolve runs the resolution chain. Errors are reserved for an unknown app and
// storage failures; every other early exit is a resolution without a manifest.
func (s *manifestService) Resolve(ctx context.Context, req *models.ManifestRequest) (*models.ManifestResolution, error) {
	st := &resolutionState{req: req}
	for _, step := range s.steps {
		outcome, err := step.run(ctx, st)
		if err != nil {
			return nil, err
		}
		if outcome == noUpdate {
			s.logger.Debug("No update for client",
				"appKey", req.AppKey, "platform", req.Platform, "runtimeVersion", req.RuntimeVersion,
				"channel", req.ChannelName, "exitStep", step.name)
			return &models.ManifestResolution{ExitStep: step.name}, nil
		}
	}
	s.logger.Debug("Serving update",
		"appKey", req.AppKey, "channel", req.ChannelName, "updateId", st.manifest.ID)
	return &models.ManifestResolution{Manifest: st.manifest, ExitStep: StepManifest}, nil
}

func (s *manifestService) resolveApp(ctx context.Context, st *resolutionState) (stepOutcome, error) {
	app, err := lookupApp(ctx, s.appRepo, st.req.AppKey)
	if err != nil {
		return noUpdate, err
	}
	st.app = app
	return proceed, nil
}

func (s *manifestService) resolveChannel(ctx context.Context, st *resolutionState) (stepOutcome, error) {
	channel, err := s.channelRepo.GetChannelByName(ctx, st.app.ID, st.req.ChannelName)
	if err != nil {
		return noUpdate, fmt.Errorf("failed to get channel: %w", err)
	}
	if channel == nil {
		return noUpdate, nil
	}
	st.channel = channel
	return proceed, nil
}

func (s *manifestService) resolveAssignment(ctx context.Context, st *resolutionState) (stepOutcome, error) {
	assignment, err := s.assignmentRepo.GetAssignment(ctx, models.AssignmentKey{
		AppID:          st.app.ID,
		ChannelID:      st.channel.ID,
		RuntimeVersion: st.req.RuntimeVersion,
		Platform:       st.req.Platform,
	})
	if err != nil {
		return noUpdate, fmt.Errorf("failed to get channel assignment: %w", err)
	}
	if assignment == nil {
		return noUpdate, nil
	}
	st.assignment = assignment
	return proceed, nil
}

func (s *manifestService) checkRollout(_ context.Context, st *resolutionState) (stepOutcome, error) {
	if !utils.ShouldDeliver(st.req.ClientID, st.req.HasClientID, st.assignment.RolloutPercent) {
		return noUpdate, nil
	}
	return proceed, nil
}

func (s *manifestService) resolveUpdate(ctx context.Context, st *resolutionState) (stepOutcome, error) {
	update, err := s.updateRepo.GetUpdateByID(ctx, st.app.ID, st.assignment.UpdateID)
	if err != nil {
		return noUpdate, fmt.Errorf("failed to get update: %w", err)
	}
	if update == nil || update.Platform != st.req.Platform || !update.Enabled {
		return noUpdate, nil
	}
	st.update = update
	return proceed, nil
}

func (s *manifestService) checkAlreadyCurrent(_ context.Context, st *resolutionState) (stepOutcome, error) {
	if st.req.ClientCurrentUpdateID != "" && st.req.ClientCurrentUpdateID == st.update.ID {
		return noUpdate, nil
	}
	return proceed, nil
}

func (s *manifestService) convertHashes(ctx context.Context, st *resolutionState) (stepOutcome, error) {
	assets, err := s.updateRepo.ListAssets(ctx, st.update.ID)
	if err != nil {
		return noUpdate, fmt.Errorf("failed to list assets: %w", err)
	}
	bundleHash, err := utils.HexToBase64URL(st.update.BundleHash)
	if err != nil {
		s.logger.Warn("Stored bundle hash is not hex", "updateId", st.update.ID, "error", err)
		return noUpdate, nil
	}
	hashes := make([]string, len(assets))
	for i, a := range assets {
		hashes[i], err = utils.HexToBase64URL(a.Hash)
		if err != nil {
			s.logger.Warn("Stored asset hash is not hex", "updateId", st.update.ID, "assetKey", a.LogicalKey, "error", err)
			return noUpdate, nil
		}
	}
	st.assets = assets
	st.bundleHash = bundleHash
	st.assetHashes = hashes
	return proceed, nil
}

func (s *manifestService) signURLs(ctx context.Context, st *resolutionState) (stepOutcome, error) {
	bundleURL, err := s.objectStore.RetrieveURL(ctx, st.update.BundleKey)
	if err != nil {
		return noUpdate, fmt.Errorf("failed to sign bundle url: %w: %w", utils.ErrStorageUnavailable, err)
	}
	urls := make([]string, len(st.assets))
	for i, a := range st.assets {
		urls[i], err = s.objectStore.RetrieveURL(ctx, a.ObjectKey)
		if err != nil {
			return noUpdate, fmt.Errorf("failed to sign asset url: %w: %w", utils.ErrStorageUnavailable, err)
		}
	}
	st.bundleURL = bundleURL
	st.assetURLs = urls
	return proceed, nil
}

func (s *manifestService) buildManifest(_ context.Context, st *resolutionState) (stepOutcome, error) {
	assets := make([]models.ManifestAsset, len(st.assets))
	for i, a := range st.assets {
		assets[i] = models.ManifestAsset{
			Hash:          st.assetHashes[i],
			Key:           a.LogicalKey,
			FileExtension: a.FileExtension,
			ContentType:   a.ResolvedContentType(),
			URL:           st.assetURLs[i],
		}
	}
	st.manifest = &models.ResolvedManifest{
		ID:             st.update.ID,
		CreatedAt:      st.update.CreatedAt.UTC().Format(manifestCreatedAtLayout),
		RuntimeVersion: st.update.RuntimeVersion,
		LaunchAsset: models.ManifestAsset{
			Hash:          st.bundleHash,
			Key:           launchAssetKey,
			FileExtension: launchAssetExtension,
			ContentType:   launchAssetContentType,
			URL:           st.bundleURL,
		},
		Assets:     assets,
		BranchName: st.channel.Name,
	}
	return proceed, nil
}
