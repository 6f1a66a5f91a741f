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

const (
	MinRolloutPercent = 0
	MaxRolloutPercent = 100
)

// ChannelAssignment is the live pointer from (channel, runtime version, platform) to an update.
// The unique index is what serialises concurrent publishes onto the same tuple.
type ChannelAssignment struct {
	ID             string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	AppID          string    `gorm:"column:app_id;type:varchar(36);not null;uniqueIndex:uq_assignment_tuple,priority:1"`
	ChannelID      string    `gorm:"column:channel_id;type:varchar(36);not null;uniqueIndex:uq_assignment_tuple,priority:2"`
	UpdateID       string    `gorm:"column:update_id;type:varchar(36);not null;index:idx_assignments_update_id"`
	RuntimeVersion string    `gorm:"column:runtime_version;type:varchar(100);not null;uniqueIndex:uq_assignment_tuple,priority:3"`
	Platform       Platform  `gorm:"column:platform;type:varchar(20);not null;uniqueIndex:uq_assignment_tuple,priority:4"`
	RolloutPercent float64   `gorm:"column:rollout_percent;not null"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null"`
}

func (ChannelAssignment) TableName() string {
	return "channel_assignments"
}

// AssignmentKey identifies the single assignment slot of a channel
type AssignmentKey struct {
	AppID          string
	ChannelID      string
	RuntimeVersion string
	Platform       Platform
}

// IsValidRolloutPercent reports whether p lies in [0,100]
func IsValidRolloutPercent(p float64) bool {
	return p >= MinRolloutPercent && p <= MaxRolloutPercent
}

// SetRolloutRequest edits the rollout percentage of an existing assignment
type SetRolloutRequest struct {
	ChannelID      string
	AssignmentID   string
	RolloutPercent float64
}
