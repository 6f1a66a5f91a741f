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

package spec

import "time"

type AssetResponse struct {
	Id            string  `json:"id"`
	ObjectKey     string  `json:"objectKey"`
	Hash          string  `json:"hash"`
	Key           string  `json:"key"`
	FileExtension string  `json:"fileExtension"`
	ContentType   *string `json:"contentType,omitempty"`
	Size          *int64  `json:"size,omitempty"`
}

type LiveChannelResponse struct {
	AssignmentId   string    `json:"assignmentId"`
	ChannelId      string    `json:"channelId"`
	ChannelName    string    `json:"channelName"`
	RolloutPercent float64   `json:"rolloutPercent"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type UpdateResponse struct {
	Id             string    `json:"id"`
	UpdateGroupId  string    `json:"updateGroupId"`
	RuntimeVersion string    `json:"runtimeVersion"`
	Platform       string    `json:"platform"`
	BundleKey      string    `json:"bundleKey"`
	BundleHash     string    `json:"bundleHash"`
	BundleSize     *int64    `json:"bundleSize,omitempty"`
	Enabled        bool      `json:"enabled"`
	CreatedAt      time.Time `json:"createdAt"`
}

type UpdateDetailsResponse struct {
	UpdateResponse
	Assets []AssetResponse       `json:"assets"`
	LiveOn []LiveChannelResponse `json:"liveOn"`
}

type UpdateListResponse struct {
	Updates []UpdateResponse `json:"updates"`
}

type ToggleUpdateResponse struct {
	Id      string `json:"id"`
	Enabled bool   `json:"enabled"`
}

type PromoteUpdateRequest struct {
	FromChannel    string   `json:"fromChannel"`
	ToChannel      string   `json:"toChannel"`
	RolloutPercent *float64 `json:"rolloutPercent,omitempty"`
}

type PromoteUpdateResponse struct {
	Promoted       bool    `json:"promoted"`
	UpdateId       string  `json:"updateId"`
	FromChannel    string  `json:"fromChannel"`
	ToChannel      string  `json:"toChannel"`
	RuntimeVersion string  `json:"runtimeVersion"`
	Platform       string  `json:"platform"`
	RolloutPercent float64 `json:"rolloutPercent"`
}

type RollbackUpdateRequest struct {
	ChannelName string  `json:"channelName"`
	Reason      *string `json:"reason,omitempty"`
}

type RollbackUpdateResponse struct {
	RolledBack     bool   `json:"rolledBack"`
	FromUpdateId   string `json:"fromUpdateId"`
	ToUpdateId     string `json:"toUpdateId"`
	ChannelName    string `json:"channelName"`
	RuntimeVersion string `json:"runtimeVersion"`
	Platform       string `json:"platform"`
}

type RollbackHistoryResponse struct {
	Id           string    `json:"id"`
	ChannelId    string    `json:"channelId"`
	ChannelName  string    `json:"channelName"`
	FromUpdateId string    `json:"fromUpdateId"`
	ToUpdateId   string    `json:"toUpdateId"`
	Reason       *string   `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RollbackHistoryListResponse struct {
	Rollbacks []RollbackHistoryResponse `json:"rollbacks"`
}
