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

// AppRepository defines the interface for app data access
type AppRepository interface {
	CreateApp(ctx context.Context, app *models.App) error
	GetAppByID(ctx context.Context, appID string) (*models.App, error)
	GetAppByKey(ctx context.Context, appKey string) (*models.App, error)
	ListApps(ctx context.Context, limit, offset int) ([]*models.App, error)
	// DeleteAppCascade removes the app and every row it owns. Callers wrap it in a transaction.
	DeleteAppCascade(ctx context.Context, appID string) error
}

// AppRepo implements AppRepository using GORM
type AppRepo struct {
	db *gorm.DB
}

// NewAppRepo creates a new app repository
func NewAppRepo(db *gorm.DB) AppRepository {
	return &AppRepo{db: db}
}

func (r *AppRepo) CreateApp(ctx context.Context, app *models.App) error {
	return db.Conn(ctx, r.db).Create(app).Error
}

// GetAppByID returns nil when the app does not exist
func (r *AppRepo) GetAppByID(ctx context.Context, appID string) (*models.App, error) {
	var app models.App
	err := db.Conn(ctx, r.db).Where("id = ?", appID).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

// GetAppByKey returns nil when no app carries appKey
func (r *AppRepo) GetAppByKey(ctx context.Context, appKey string) (*models.App, error) {
	var app models.App
	err := db.Conn(ctx, r.db).Where("app_key = ?", appKey).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

func (r *AppRepo) ListApps(ctx context.Context, limit, offset int) ([]*models.App, error) {
	query := db.Conn(ctx, r.db).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var apps []*models.App
	err := query.Find(&apps).Error
	return apps, err
}

func (r *AppRepo) DeleteAppCascade(ctx context.Context, appID string) error {
	conn := db.Conn(ctx, r.db)
	updateIDs := conn.Model(&models.Update{}).Select("id").Where("app_id = ?", appID)

	steps := []func() error{
		func() error { return conn.Where("app_id = ?", appID).Delete(&models.RollbackHistory{}).Error },
		func() error { return conn.Where("app_id = ?", appID).Delete(&models.ChannelAssignment{}).Error },
		func() error { return conn.Where("update_id IN (?)", updateIDs).Delete(&models.Asset{}).Error },
		func() error { return conn.Where("app_id = ?", appID).Delete(&models.Update{}).Error },
		func() error { return conn.Where("app_id = ?", appID).Delete(&models.Channel{}).Error },
		func() error { return conn.Where("id = ?", appID).Delete(&models.App{}).Error },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
