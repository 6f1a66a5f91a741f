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

type update002 struct {
	ID             string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	AppID          string    `gorm:"column:app_id;type:varchar(36);not null;index:idx_updates_app_rv_platform_created,priority:1"`
	UpdateGroupID  string    `gorm:"column:update_group_id;type:varchar(36);not null;index:idx_updates_update_group_id"`
	RuntimeVersion string    `gorm:"column:runtime_version;type:varchar(100);not null;index:idx_updates_app_rv_platform_created,priority:2"`
	Platform       string    `gorm:"column:platform;type:varchar(20);not null;index:idx_updates_app_rv_platform_created,priority:3"`
	BundleKey      string    `gorm:"column:bundle_key;type:varchar(1024);not null"`
	BundleHash     string    `gorm:"column:bundle_hash;type:varchar(128);not null"`
	BundleSize     *int64    `gorm:"column:bundle_size"`
	Enabled        bool      `gorm:"column:enabled;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;index:idx_updates_app_rv_platform_created,priority:4"`
}

func (update002) TableName() string { return "updates" }

type asset002 struct {
	ID            string  `gorm:"column:id;primaryKey;type:varchar(36)"`
	UpdateID      string  `gorm:"column:update_id;type:varchar(36);not null;index:idx_assets_update_id"`
	ObjectKey     string  `gorm:"column:object_key;type:varchar(1024);not null"`
	Hash          string  `gorm:"column:hash;type:varchar(128);not null"`
	LogicalKey    string  `gorm:"column:logical_key;type:varchar(255);not null"`
	FileExtension string  `gorm:"column:file_extension;type:varchar(32);not null"`
	ContentType   *string `gorm:"column:content_type;type:varchar(255)"`
	Size          *int64  `gorm:"column:size"`
}

func (asset002) TableName() string { return "assets" }

// Updates are immutable apart from the enabled flag. The composite index serves
// the newest-first scan used when resolving a manifest.
var migration002 = migration{
	ID: 2,
	Migrate: func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&update002{}, &asset002{})
		})
	},
	Rollback: func(db *gorm.DB) error {
		return db.Migrator().DropTable("assets", "updates")
	},
}
