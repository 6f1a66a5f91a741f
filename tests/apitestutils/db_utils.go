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

package apitestutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbmigrations "github.com/otaforge/ota-update-service/db_migrations"
	"github.com/otaforge/ota-update-service/models"
)

// NewTestDB opens a private in-memory database with every migration applied
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	// a single connection keeps the shared memory database alive and serialises writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbmigrations.Migrate(gormDB))
	return gormDB
}

// CreateApp inserts an app with the default channels
func CreateApp(t *testing.T, gormDB *gorm.DB, appKey string) *models.App {
	t.Helper()
	now := time.Now().UTC()
	app := &models.App{ID: uuid.NewString(), AppKey: appKey, Name: appKey, CreatedAt: now}
	require.NoError(t, gormDB.Create(app).Error)
	for _, name := range models.DefaultChannels {
		require.NoError(t, gormDB.Create(&models.Channel{ID: uuid.NewString(), AppID: app.ID, Name: name, CreatedAt: now}).Error)
	}
	return app
}

func GetChannel(t *testing.T, gormDB *gorm.DB, appID, name string) *models.Channel {
	t.Helper()
	var channel models.Channel
	require.NoError(t, gormDB.Where("app_id = ? AND name = ?", appID, name).First(&channel).Error)
	return &channel
}

// UpdateOption tweaks a seeded update before it is stored
type UpdateOption func(*models.Update)

func WithCreatedAt(createdAt time.Time) UpdateOption {
	return func(u *models.Update) { u.CreatedAt = createdAt }
}

func WithBundleHash(hash string) UpdateOption {
	return func(u *models.Update) { u.BundleHash = hash }
}

func Disabled() UpdateOption {
	return func(u *models.Update) { u.Enabled = false }
}

// CreateUpdate inserts an enabled update with one png asset
func CreateUpdate(t *testing.T, gormDB *gorm.DB, app *models.App, runtimeVersion string, platform models.Platform, opts ...UpdateOption) *models.Update {
	t.Helper()
	groupID := uuid.NewString()
	prefix := fmt.Sprintf("ota/%s/%s/%s", app.AppKey, runtimeVersion, groupID)
	update := &models.Update{
		ID:             uuid.NewString(),
		AppID:          app.ID,
		UpdateGroupID:  groupID,
		RuntimeVersion: runtimeVersion,
		Platform:       platform,
		BundleKey:      fmt.Sprintf("%s/bundles/%s/index.bundle", prefix, platform),
		BundleHash:     "deadbeef",
		Enabled:        true,
		CreatedAt:      time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(update)
	}
	require.NoError(t, gormDB.Create(update).Error)
	if !update.Enabled {
		require.NoError(t, gormDB.Model(&models.Update{}).Where("id = ?", update.ID).Update("enabled", false).Error)
	}

	require.NoError(t, gormDB.Create(&models.Asset{
		ID:            uuid.NewString(),
		UpdateID:      update.ID,
		ObjectKey:     prefix + "/assets/logo.png",
		Hash:          "cafebabe",
		LogicalKey:    "logo",
		FileExtension: ".png",
	}).Error)
	return update
}

// AssignUpdate points the channel slot for the update's runtime and platform at it
func AssignUpdate(t *testing.T, gormDB *gorm.DB, channel *models.Channel, update *models.Update, rolloutPercent float64) *models.ChannelAssignment {
	t.Helper()
	assignment := &models.ChannelAssignment{
		ID:             uuid.NewString(),
		AppID:          update.AppID,
		ChannelID:      channel.ID,
		UpdateID:       update.ID,
		RuntimeVersion: update.RuntimeVersion,
		Platform:       update.Platform,
		RolloutPercent: rolloutPercent,
		UpdatedAt:      time.Now().UTC(),
	}
	require.NoError(t, gormDB.Create(assignment).Error)
	return assignment
}

func GetAssignment(t *testing.T, gormDB *gorm.DB, channelID, runtimeVersion string, platform models.Platform) *models.ChannelAssignment {
	t.Helper()
	var assignments []models.ChannelAssignment
	require.NoError(t, gormDB.
		Where("channel_id = ? AND runtime_version = ? AND platform = ?", channelID, runtimeVersion, platform).
		Find(&assignments).Error)
	if len(assignments) == 0 {
		return nil
	}
	require.Len(t, assignments, 1)
	return &assignments[0]
}

func CountRows(t *testing.T, gormDB *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, gormDB.WithContext(context.Background()).Model(model).Count(&count).Error)
	return count
}

// CountRowsWhere counts rows of model matching the given condition
func CountRowsWhere(t *testing.T, gormDB *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, gormDB.WithContext(context.Background()).Model(model).Where(query, args...).Count(&count).Error)
	return count
}

// DeleteChannel removes a seeded channel so tests can start from an app without it
func DeleteChannel(t *testing.T, gormDB *gorm.DB, appID, name string) {
	t.Helper()
	res := gormDB.WithContext(context.Background()).
		Where("app_id = ? AND name = ?", appID, name).
		Delete(&models.Channel{})
	require.NoError(t, res.Error)
	require.Equal(t, int64(1), res.RowsAffected)
}
