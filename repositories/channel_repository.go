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
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/otaforge/ota-update-service/db"
	"github.com/otaforge/ota-update-service/models"
)

// ChannelRepository defines the interface for channel data access
type ChannelRepository interface {
	CreateChannel(ctx context.Context, channel *models.Channel) error
	GetChannelByID(ctx context.Context, appID, channelID string) (*models.Channel, error)
	GetChannelByName(ctx context.Context, appID, name string) (*models.Channel, error)
	GetOrCreateChannel(ctx context.Context, appID, name string) (*models.Channel, error)
	ListChannels(ctx context.Context, appID string) ([]*models.Channel, error)
}

// ChannelRepo implements ChannelRepository using GORM
type ChannelRepo struct {
	db *gorm.DB
}

// NewChannelRepo creates a new channel repository
func NewChannelRepo(db *gorm.DB) ChannelRepository {
	return &ChannelRepo{db: db}
}

func (r *ChannelRepo) CreateChannel(ctx context.Context, channel *models.Channel) error {
	if channel.ID == "" {
		channel.ID = uuid.NewString()
	}
	if channel.CreatedAt.IsZero() {
		channel.CreatedAt = time.Now().UTC()
	}
	return db.Conn(ctx, r.db).Create(channel).Error
}

// GetChannelByID returns nil when the channel does not exist in the app
func (r *ChannelRepo) GetChannelByID(ctx context.Context, appID, channelID string) (*models.Channel, error) {
	var channel models.Channel
	err := db.Conn(ctx, r.db).Where("app_id = ? AND id = ?", appID, channelID).First(&channel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &channel, nil
}

// GetChannelByName returns nil when the app has no channel called name
func (r *ChannelRepo) GetChannelByName(ctx context.Context, appID, name string) (*models.Channel, error) {
	var channel models.Channel
	err := db.Conn(ctx, r.db).Where("app_id = ? AND name = ?", appID, name).First(&channel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &channel, nil
}

// GetOrCreateChannel returns the named channel, creating it when missing.
// The insert runs under a savepoint so losing a creation race to a concurrent
// transaction leaves the caller's transaction usable for the re-read.
func (r *ChannelRepo) GetOrCreateChannel(ctx context.Context, appID, name string) (*models.Channel, error) {
	existing, err := r.GetChannelByName(ctx, appID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	channel := &models.Channel{
		ID:        uuid.NewString(),
		AppID:     appID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	err = db.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return tx.Create(channel).Error
	})
	if err == nil {
		return channel, nil
	}
	if !db.IsUniqueViolation(err) {
		return nil, err
	}

	winner, readErr := r.GetChannelByName(ctx, appID, name)
	if readErr != nil {
		return nil, readErr
	}
	if winner == nil {
		return nil, fmt.Errorf("channel %q vanished after concurrent create: %w", name, err)
	}
	return winner, nil
}

func (r *ChannelRepo) ListChannels(ctx context.Context, appID string) ([]*models.Channel, error) {
	var channels []*models.Channel
	err := db.Conn(ctx, r.db).
		Where("app_id = ?", appID).
		Order("created_at ASC, name ASC").
		Find(&channels).Error
	return channels, err
}
