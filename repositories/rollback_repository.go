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

	"gorm.io/gorm"

	"github.com/otaforge/ota-update-service/db"
	"github.com/otaforge/ota-update-service/models"
)

// RollbackHistoryRepository defines the interface for the append-only rollback log
type RollbackHistoryRepository interface {
	AppendRollback(ctx context.Context, entry *models.RollbackHistory) error
	ListRollbacks(ctx context.Context, appID string, limit, offset int) ([]*models.RollbackHistoryEntry, error)
}

// RollbackHistoryRepo implements RollbackHistoryRepository using GORM
type RollbackHistoryRepo struct {
	db *gorm.DB
}

// NewRollbackHistoryRepo creates a new rollback history repository
func NewRollbackHistoryRepo(db *gorm.DB) RollbackHistoryRepository {
	return &RollbackHistoryRepo{db: db}
}

func (r *RollbackHistoryRepo) AppendRollback(ctx context.Context, entry *models.RollbackHistory) error {
	return db.Conn(ctx, r.db).Create(entry).Error
}

// ListRollbacks returns the app's rollbacks newest first, joined with channel names
func (r *RollbackHistoryRepo) ListRollbacks(ctx context.Context, appID string, limit, offset int) ([]*models.RollbackHistoryEntry, error) {
	query := db.Conn(ctx, r.db).
		Table("rollback_history").
		Select("rollback_history.*, channels.name AS channel_name").
		Joins("LEFT JOIN channels ON channels.id = rollback_history.channel_id").
		Where("rollback_history.app_id = ?", appID).
		Order("rollback_history.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var entries []*models.RollbackHistoryEntry
	err := query.Scan(&entries).Error
	return entries, err
}
