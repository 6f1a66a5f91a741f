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
	ChannelProduction = "production"
	ChannelStaging    = "staging"
)

// DefaultChannels are provisioned together with every new app
var DefaultChannels = []string{ChannelProduction, ChannelStaging}

// Channel is a named routing target within an app
type Channel struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	AppID     string    `gorm:"column:app_id;type:varchar(36);not null;uniqueIndex:uq_channels_app_name,priority:1"`
	Name      string    `gorm:"column:name;type:varchar(100);not null;uniqueIndex:uq_channels_app_name,priority:2"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (Channel) TableName() string {
	return "channels"
}

// ChannelWithAssignments is a channel together with its live routing pointers
type ChannelWithAssignments struct {
	Channel
	Assignments []*ChannelAssignment
}
