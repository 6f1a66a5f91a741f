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

package dbmigrations

import (
	"time"

	"gorm.io/gorm"
)

type channelAssignment003 struct {
	ID             string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	AppID          string    `gorm:"column:app_id;type:varchar(36);not null;uniqueIndex:uq_assignment_tuple,priority:1"`
	ChannelID      string    `gorm:"column:channel_id;type:varchar(36);not null;uniqueIndex:uq_assignment_tuple,priority:2"`
	UpdateID       string    `gorm:"column:update_id;type:varchar(36);not null;index:idx_assignments_update_id"`
	RuntimeVersion string    `gorm:"column:runtime_version;type:varchar(100);not null;uniqueIndex:uq_assignment_tuple,priority:3"`
	Platform       string    `gorm:"column:platform;type:varchar(20);not null;uniqueIndex:uq_assignment_tuple,priority:4"`
	RolloutPercent float64   `gorm:"column:rollout_percent;not null"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null"`
}

func (channelAssignment003) TableName() string { return "channel_assignments" }

// One live pointer per (app, channel, runtime version, platform)
var migration003 = migration{
	ID: 3,
	Migrate: func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Migrator().CreateTable(&channelAssignment003{}); err != nil {
				return err
			}
			if isPostgres(tx) {
				return runSQL(tx, `ALTER TABLE channel_assignments
					ADD CONSTRAINT chk_assignment_rollout_percent
					CHECK (rollout_percent >= 0 AND rollout_percent <= 100)`)
			}
			return nil
		})
	},
	Rollback: func(db *gorm.DB) error {
		return db.Migrator().DropTable("channel_assignments")
	},
}
