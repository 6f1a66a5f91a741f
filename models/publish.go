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

// CommitBundle references an uploaded launch bundle
type CommitBundle struct {
	ObjectKey string
	Hash      string
	Size      *int64
}

// CommitAsset references one uploaded asset
type CommitAsset struct {
	ObjectKey     string
	Hash          string
	LogicalKey    string
	FileExtension string
	ContentType   *string
	Size          *int64
}

// CommitRequest publishes an uploaded update group onto a channel
type CommitRequest struct {
	UpdateGroupID  string
	RuntimeVersion string
	Platform       Platform
	ChannelName    *string
	RolloutPercent *float64
	Bundle         CommitBundle
	Assets         []CommitAsset
}

type CommitResult struct {
	UpdateID      string
	UpdateGroupID string
	ChannelName   string
}

// PromoteRequest copies a live update from one channel onto another
type PromoteRequest struct {
	UpdateID       string
	FromChannel    string
	ToChannel      string
	RolloutPercent *float64
}

type PromoteResult struct {
	UpdateID       string
	FromChannel    string
	ToChannel      string
	RuntimeVersion string
	Platform       Platform
	RolloutPercent float64
}

// RollbackRequest repoints a channel back at an earlier update
type RollbackRequest struct {
	TargetUpdateID string
	ChannelName    string
	Reason         *string
}

type RollbackResult struct {
	FromUpdateID   string
	ToUpdateID     string
	ChannelName    string
	RuntimeVersion string
	Platform       Platform
}

type PresignAsset struct {
	Filename    string
	ContentType *string
}

// PresignRequest asks for upload URLs for a new update group
type PresignRequest struct {
	RuntimeVersion string
	Platform       Platform
	BundleFilename string
	Assets         []PresignAsset
}

type PresignedObject struct {
	Filename  string
	ObjectKey string
	UploadURL string
}

type PresignResult struct {
	UpdateGroupID string
	Bundle        PresignedObject
	Assets        []PresignedObject
}

// DeleteAppResult reports the outcome of an app deletion
type DeleteAppResult struct {
	PurgedObjects int
}
