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
	"github.com/otaforge/ota-update-service/db"
	"github.com/otaforge/ota-update-service/models"
	"github.com/otaforge/ota-update-service/repositories"
	"github.com/otaforge/ota-update-service/utils"
)

// AppService defines the interface for app administration
type AppService interface {
	CreateApp(ctx context.Context, caller models.Caller, req *models.CreateAppRequest) (*models.App, error)
	GetApp(ctx context.Context, appKey string) (*models.App, error)
	ListApps(ctx context.Context, limit, offset int) ([]*models.App, error)
	DeleteApp(ctx context.Context, caller models.Caller, appKey string, purgeObjects bool) (*models.DeleteAppResult, error)
}

type appService struct {
	logger      *slog.Logger
	txManager   db.TransactionManager
	appRepo     repositories.AppRepository
	channelRepo repositories.ChannelRepository
	updateRepo  repositories.UpdateRepository
	objectStore objectstore.ObjectStoreClient
}

// NewAppService creates a new app service
func NewAppService(
	logger *slog.Logger,
	txManager db.TransactionManager,
	appRepo repositories.AppRepository,
	channelRepo repositories.ChannelRepository,
	updateRepo repositories.UpdateRepository,
	objectStore objectstore.ObjectStoreClient,
) AppService {
	return &appService{
		logger:      logger,
		txManager:   txManager,
		appRepo:     appRepo,
		channelRepo: channelRepo,
		updateRepo:  updateRepo,
		objectStore: objectStore,
	}
}

// lookupApp resolves an app key, mapping absence to ErrAppNotFound
func lookupApp(ctx context.Context, appRepo repositories.AppRepository, appKey string) (*models.App, error) {
	app, err := appRepo.GetAppByKey(ctx, appKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get app %q: %w", appKey, err)
	}
	if app == nil {
		return nil, utils.ErrAppNotFound
	}
	return app, nil
}

// CreateApp creates the app together with its default channels
func (s *appService) CreateApp(ctx context.Context, caller models.Caller, req *models.CreateAppRequest) (*models.App, error) {
	if err := utils.ValidateAppKey(req.AppKey); err != nil {
		return nil, err
	}
	if err := utils.ValidateResourceDisplayName(req.Name, "app"); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	app := &models.App{
		ID:        uuid.NewString(),
		AppKey:    req.AppKey,
		Name:      req.Name,
		CreatedAt: now,
	}

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.appRepo.GetAppByKey(ctx, req.AppKey)
		if err != nil {
			return err
		}
		if existing != nil {
			return utils.ErrAppAlreadyExists
		}
		if err := s.appRepo.CreateApp(ctx, app); err != nil {
			if db.IsUniqueViolation(err) {
				return utils.ErrAppAlreadyExists
			}
			return err
		}
		for _, name := range models.DefaultChannels {
			if err := s.channelRepo.CreateChannel(ctx, &models.Channel{AppID: app.ID, Name: name, CreatedAt: now}); err != nil {
				return fmt.Errorf("failed to create channel %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("App created", "appKey", app.AppKey, "appId", app.ID, "caller", caller.String())
	return app, nil
}

func (s *appService) GetApp(ctx context.Context, appKey string) (*models.App, error) {
	return lookupApp(ctx, s.appRepo, appKey)
}

func (s *appService) ListApps(ctx context.Context, limit, offset int) ([]*models.App, error) {
	apps, err := s.appRepo.ListApps(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}
	return apps, nil
}

// DeleteApp removes the app and everything it owns in one transaction. With
// purgeObjects the stored bundles and assets are deleted after the commit; a
// storage failure at that point leaves the database delete in place.
func (s *appService) DeleteApp(ctx context.Context, caller models.Caller, appKey string, purgeObjects bool) (*models.DeleteAppResult, error) {
	app, err := lookupApp(ctx, s.appRepo, appKey)
	if err != nil {
		return nil, err
	}

	var objectKeys []string
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if purgeObjects {
			keys, err := s.updateRepo.ListObjectKeys(ctx, app.ID)
			if err != nil {
				return fmt.Errorf("failed to list object keys: %w", err)
			}
			objectKeys = keys
		}
		return s.appRepo.DeleteAppCascade(ctx, app.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete app %q: %w", appKey, err)
	}
	s.logger.Info("App deleted", "appKey", appKey, "appId", app.ID, "caller", caller.String())

	result := &models.DeleteAppResult{}
	if !purgeObjects || len(objectKeys) == 0 {
		return result, nil
	}
	if err := s.objectStore.DeleteMany(ctx, objectKeys); err != nil {
		s.logger.Error("Failed to purge app objects", "appKey", appKey, "objectCount", len(objectKeys), "error", err)
		return nil, fmt.Errorf("app deleted but objects were not purged: %w: %w", utils.ErrStorageUnavailable, err)
	}
	result.PurgedObjects = len(objectKeys)
	return result, nil
}
