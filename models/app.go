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

// App is the root entity every other row hangs off
type App struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	AppKey    string    `gorm:"column:app_key;type:varchar(100);not null;uniqueIndex:uq_apps_app_key"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (App) TableName() string {
	return "apps"
}

// CreateAppRequest is the service-level input for creating an app
type CreateAppRequest struct {
	AppKey string
	Name   string
}
