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

type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// IsValid reports whether p is one of the supported client platforms
func (p Platform) IsValid() bool {
	return p == PlatformIOS || p == PlatformAndroid
}

// Update is one published bundle for a single platform and runtime version.
// Every field except Enabled is fixed once the row is written.
type Update struct {
	ID             string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	AppID          string    `gorm:"column:app_id;type:varchar(36);not null;index:idx_updates_app_rv_platform_created,priority:1"`
	UpdateGroupID  string    `gorm:"column:update_group_id;type:varchar(36);not null;index:idx_updates_update_group_id"`
	RuntimeVersion string    `gorm:"column:runtime_version;type:varchar(100);not null;index:idx_updates_app_rv_platform_created,priority:2"`
	Platform       Platform  `gorm:"column:platform;type:varchar(20);not null;index:idx_updates_app_rv_platform_created,priority:3"`
	BundleKey      string    `gorm:"column:bundle_key;type:varchar(1024);not null"`
	BundleHash     string    `gorm:"column:bundle_hash;type:varchar(128);not null"`
	BundleSize     *int64    `gorm:"column:bundle_size"`
	Enabled        bool      `gorm:"column:enabled;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;index:idx_updates_app_rv_platform_created,priority:4"`
}

func (Update) TableName() string {
	return "updates"
}

// UpdateDetails is an update with its assets and the channels it is currently live on
type UpdateDetails struct {
	Update
	Assets []*Asset
	LiveOn []*LiveAssignment
}

// LiveAssignment names a channel whose assignment currently points at an update
type LiveAssignment struct {
	AssignmentID   string
	ChannelID      string
	ChannelName    string
	RolloutPercent float64
	UpdatedAt      time.Time
}

