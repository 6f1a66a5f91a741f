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

// DefaultAssetContentType is served for assets published without a content type
const DefaultAssetContentType = "application/octet-stream"

// Asset is a file owned by exactly one update
type Asset struct {
	ID            string  `gorm:"column:id;primaryKey;type:varchar(36)"`
	UpdateID      string  `gorm:"column:update_id;type:varchar(36);not null;index:idx_assets_update_id"`
	ObjectKey     string  `gorm:"column:object_key;type:varchar(1024);not null"`
	Hash          string  `gorm:"column:hash;type:varchar(128);not null"`
	LogicalKey    string  `gorm:"column:logical_key;type:varchar(255);not null"`
	FileExtension string  `gorm:"column:file_extension;type:varchar(32);not null"`
	ContentType   *string `gorm:"column:content_type;type:varchar(255)"`
	Size          *int64  `gorm:"column:size"`
}

func (Asset) TableName() string {
	return "assets"
}

// ResolvedContentType returns the stored content type or the generic fallback
func (a *Asset) ResolvedContentType() string {
	if a.ContentType == nil || *a.ContentType == "" {
		return DefaultAssetContentType
	}
	return *a.ContentType
}
