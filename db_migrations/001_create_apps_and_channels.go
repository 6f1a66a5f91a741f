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

type app001 struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	AppKey    string    `gorm:"column:app_key;type:varchar(100);not null;uniqueIndex:uq_apps_app_key"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (app001) TableName() string { return "apps" }

type channel001 struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	AppID     string    `gorm:"column:app_id;type:varchar(36);not null;uniqueIndex:uq_channels_app_name,priority:1"`
	Name      string    `gorm:"column:name;type:varchar(100);not null;uniqueIndex:uq_channels_app_name,priority:2"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (channel001) TableName() string { return "channels" }

// Apps are keyed by a URL safe app_key; channel names are unique per app
var migration001 = migration{
	ID: 1,
	Migrate: func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&app001{}, &channel001{})
		})
	},
	Rollback: func(db *gorm.DB) error {
		return db.Migrator().DropTable("channels", "apps")
	},
}
