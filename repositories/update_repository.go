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

package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/otaforge/ota-update-service/db"
	"github.com/otaforge/ota-update-service/models"
)

// UpdateFilter narrows an update listing; zero values match everything
type UpdateFilter struct {
	RuntimeVersion string
	Platform       models.Platform
	Limit          int
	Offset         int
}

// UpdateRepository defines the interface for update and asset data access
type UpdateRepository interface {
	CreateUpdate(ctx context.Context, update *models.Update) error
	CreateAssets(ctx context.Context, assets []*models.Asset) error
	GetUpdateByID(ctx context.Context, appID, updateID string) (*models.Update, error)
	ListUpdates(ctx context.Context, appID string, filter UpdateFilter) ([]*models.Update, error)
	ListAssets(ctx context.Context, updateID string) ([]*models.Asset, error)
	// ToggleEnabled flips the enabled flag in a single statement
	ToggleEnabled(ctx context.Context, updateID string) error
	ListRuntimeVersions(ctx context.Context, appID string, platform models.Platform) ([]string, error)
	ListObjectKeys(ctx context.Context, appID string) ([]string, error)
}

// UpdateRepo implements UpdateRepository using GORM
type UpdateRepo struct {
	db *gorm.DB
}

// NewUpdateRepo creates a new update repository
func NewUpdateRepo(db *gorm.DB) UpdateRepository {
	return &UpdateRepo{db: db}
}

func (r *UpdateRepo) CreateUpdate(ctx context.Context, update *models.Update) error {
	return db.Conn(ctx, r.db).Create(update).Error
}

func (r *UpdateRepo) CreateAssets(ctx context.Context, assets []*models.Asset) error {
	if len(assets) == 0 {
		return nil
	}
	return db.Conn(ctx, r.db).CreateInBatches(assets, 100).Error
}

// GetUpdateByID returns nil when the update does not exist in the app
func (r *UpdateRepo) GetUpdateByID(ctx context.Context, appID, updateID string) (*models.Update, error) {
	var update models.Update
	err := db.Conn(ctx, r.db).Where("app_id = ? AND id = ?", appID, updateID).First(&update).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &update, nil
}

// ListUpdates returns the app's updates newest first
func (r *UpdateRepo) ListUpdates(ctx context.Context, appID string, filter UpdateFilter) ([]*models.Update, error) {
	query := db.Conn(ctx, r.db).Where("app_id = ?", appID)
	if filter.RuntimeVersion != "" {
		query = query.Where("runtime_version = ?", filter.RuntimeVersion)
	}
	if filter.Platform != "" {
		query = query.Where("platform = ?", filter.Platform)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var updates []*models.Update
	err := query.Order("created_at DESC, id DESC").Find(&updates).Error
	return updates, err
}

func (r *UpdateRepo) ListAssets(ctx context.Context, updateID string) ([]*models.Asset, error) {
	var assets []*models.Asset
	err := db.Conn(ctx, r.db).
		Where("update_id = ?", updateID).
		Order("logical_key ASC").
		Find(&assets).Error
	return assets, err
}

func (r *UpdateRepo) ToggleEnabled(ctx context.Context, updateID string) error {
	return db.Conn(ctx, r.db).Model(&models.Update{}).
		Where("id = ?", updateID).
		Update("enabled", gorm.Expr("NOT enabled")).Error
}

// ListRuntimeVersions returns the distinct runtime versions published for the app.
// An empty platform matches every platform.
func (r *UpdateRepo) ListRuntimeVersions(ctx context.Context, appID string, platform models.Platform) ([]string, error) {
	query := db.Conn(ctx, r.db).Model(&models.Update{}).Where("app_id = ?", appID)
	if platform != "" {
		query = query.Where("platform = ?", platform)
	}
	var versions []string
	err := query.Distinct().Pluck("runtime_version", &versions).Error
	return versions, err
}

// ListObjectKeys returns every bundle and asset object key the app references
func (r *UpdateRepo) ListObjectKeys(ctx context.Context, appID string) ([]string, error) {
	conn := db.Conn(ctx, r.db)

	var bundleKeys []string
	if err := conn.Model(&models.Update{}).Where("app_id = ?", appID).Pluck("bundle_key", &bundleKeys).Error; err != nil {
		return nil, err
	}
	var assetKeys []string
	err := conn.Model(&models.Asset{}).
		Joins("JOIN updates ON updates.id = assets.update_id").
		Where("updates.app_id = ?", appID).
		Pluck("assets.object_key", &assetKeys).Error
	if err != nil {
		return nil, err
	}
	return append(bundleKeys, assetKeys...), nil
}
