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
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/otaforge/ota-update-service/db"
	"github.com/otaforge/ota-update-service/models"
)

// AssignmentRepository defines the interface for channel assignment data access
type AssignmentRepository interface {
	// UpsertAssignment points the assignment slot of key at updateID, creating the row when absent
	UpsertAssignment(ctx context.Context, key models.AssignmentKey, updateID string, rolloutPercent float64) (*models.ChannelAssignment, error)
	GetAssignment(ctx context.Context, key models.AssignmentKey) (*models.ChannelAssignment, error)
	GetAssignmentByID(ctx context.Context, channelID, assignmentID string) (*models.ChannelAssignment, error)
	ListAssignmentsByChannels(ctx context.Context, channelIDs []string) ([]*models.ChannelAssignment, error)
	ListLiveAssignments(ctx context.Context, updateID string) ([]*models.LiveAssignment, error)
	RepointAssignment(ctx context.Context, assignmentID, updateID string) error
	SetRolloutPercent(ctx context.Context, assignmentID string, rolloutPercent float64) error
}

// AssignmentRepo implements AssignmentRepository using GORM
type AssignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo creates a new assignment repository
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &AssignmentRepo{db: db}
}

func (r *AssignmentRepo) UpsertAssignment(ctx context.Context, key models.AssignmentKey, updateID string, rolloutPercent float64) (*models.ChannelAssignment, error) {
	assignment := &models.ChannelAssignment{
		ID:             uuid.NewString(),
		AppID:          key.AppID,
		ChannelID:      key.ChannelID,
		UpdateID:       updateID,
		RuntimeVersion: key.RuntimeVersion,
		Platform:       key.Platform,
		RolloutPercent: rolloutPercent,
		UpdatedAt:      time.Now().UTC(),
	}
	err := db.Conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "app_id"}, {Name: "channel_id"}, {Name: "runtime_version"}, {Name: "platform"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"update_id", "rollout_percent", "updated_at"}),
	}).Create(assignment).Error
	if err != nil {
		return nil, err
	}
	// on conflict the stored row keeps its original id
	return r.GetAssignment(ctx, key)
}

// GetAssignment returns nil when the slot is empty
func (r *AssignmentRepo) GetAssignment(ctx context.Context, key models.AssignmentKey) (*models.ChannelAssignment, error) {
	var assignment models.ChannelAssignment
	err := db.Conn(ctx, r.db).
		Where("app_id = ? AND channel_id = ? AND runtime_version = ? AND platform = ?",
			key.AppID, key.ChannelID, key.RuntimeVersion, key.Platform).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

// GetAssignmentByID returns nil when the assignment does not belong to the channel
func (r *AssignmentRepo) GetAssignmentByID(ctx context.Context, channelID, assignmentID string) (*models.ChannelAssignment, error) {
	var assignment models.ChannelAssignment
	err := db.Conn(ctx, r.db).Where("channel_id = ? AND id = ?", channelID, assignmentID).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepo) ListAssignmentsByChannels(ctx context.Context, channelIDs []string) ([]*models.ChannelAssignment, error) {
	var assignments []*models.ChannelAssignment
	if len(channelIDs) == 0 {
		return assignments, nil
	}
	err := db.Conn(ctx, r.db).
		Where("channel_id IN ?", channelIDs).
		Order("runtime_version DESC, platform ASC").
		Find(&assignments).Error
	return assignments, err
}

// ListLiveAssignments returns the channels whose assignment currently points at updateID
func (r *AssignmentRepo) ListLiveAssignments(ctx context.Context, updateID string) ([]*models.LiveAssignment, error) {
	var live []*models.LiveAssignment
	err := db.Conn(ctx, r.db).
		Table("channel_assignments").
		Select("channel_assignments.id AS assignment_id, channels.id AS channel_id, channels.name AS channel_name, "+
			"channel_assignments.rollout_percent AS rollout_percent, channel_assignments.updated_at AS updated_at").
		Joins("JOIN channels ON channels.id = channel_assignments.channel_id").
		Where("channel_assignments.update_id = ?", updateID).
		Order("channels.name ASC").
		Scan(&live).Error
	return live, err
}

func (r *AssignmentRepo) RepointAssignment(ctx context.Context, assignmentID, updateID string) error {
	return db.Conn(ctx, r.db).Model(&models.ChannelAssignment{}).
		Where("id = ?", assignmentID).
		Updates(map[string]interface{}{
			"update_id":  updateID,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *AssignmentRepo) SetRolloutPercent(ctx context.Context, assignmentID string, rolloutPercent float64) error {
	return db.Conn(ctx, r.db).Model(&models.ChannelAssignment{}).
		Where("id = ?", assignmentID).
		Updates(map[string]interface{}{
			"rollout_percent": rolloutPercent,
			"updated_at":      time.Now().UTC(),
		}).Error
}
