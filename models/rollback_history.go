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

package models

import "time"

// RollbackHistory is an append-only audit row written by every rollback
type RollbackHistory struct {
	ID           string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	AppID        string    `gorm:"column:app_id;type:varchar(36);not null;index:idx_rollback_history_app_created,priority:1"`
	ChannelID    string    `gorm:"column:channel_id;type:varchar(36);not null"`
	FromUpdateID string    `gorm:"column:from_update_id;type:varchar(36);not null"`
	ToUpdateID   string    `gorm:"column:to_update_id;type:varchar(36);not null"`
	Reason       *string   `gorm:"column:reason;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;index:idx_rollback_history_app_created,priority:2"`
}

func (RollbackHistory) TableName() string {
	return "rollback_history"
}

// RollbackHistoryEntry is a history row joined with its channel name
type RollbackHistoryEntry struct {
	RollbackHistory
	ChannelName string `gorm:"column:channel_name"`
}
