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

type PresignAssetRequest struct {
	Filename    string  `json:"filename"`
	ContentType *string `json:"contentType,omitempty"`
}

type PresignUploadRequest struct {
	RuntimeVersion string                `json:"runtimeVersion"`
	Platform       string                `json:"platform"`
	BundleFilename string                `json:"bundleFilename"`
	Assets         []PresignAssetRequest `json:"assets"`
}

type PresignedObject struct {
	Filename  string `json:"filename,omitempty"`
	ObjectKey string `json:"objectKey"`
	UploadUrl string `json:"uploadUrl"`
}

type PresignUploadResponse struct {
	UpdateGroupId string            `json:"updateGroupId"`
	Bundle        PresignedObject   `json:"bundle"`
	Assets        []PresignedObject `json:"assets"`
}

type CommitBundle struct {
	ObjectKey string `json:"objectKey"`
	Hash      string `json:"hash"`
	Size      *int64 `json:"size,omitempty"`
}

type CommitAsset struct {
	ObjectKey     string  `json:"objectKey"`
	Hash          string  `json:"hash"`
	Key           string  `json:"key"`
	FileExtension string  `json:"fileExtension"`
	ContentType   *string `json:"contentType,omitempty"`
	Size          *int64  `json:"size,omitempty"`
}

type CommitUploadRequest struct {
	UpdateGroupId  string        `json:"updateGroupId"`
	RuntimeVersion string        `json:"runtimeVersion"`
	Platform       string        `json:"platform"`
	ChannelName    *string       `json:"channelName,omitempty"`
	RolloutPercent *float64      `json:"rolloutPercent,omitempty"`
	Bundle         CommitBundle  `json:"bundle"`
	Assets         []CommitAsset `json:"assets"`
}

type CommitUploadResponse struct {
	UpdateId      string `json:"updateId"`
	UpdateGroupId string `json:"updateGroupId"`
	ChannelName   string `json:"channelName"`
}

type PreflightRequest struct {
	Platform       string  `json:"platform"`
	RuntimeVersion *string `json:"runtimeVersion,omitempty"`
	ChannelName    *string `json:"channelName,omitempty"`
	BundleFilename *string `json:"bundleFilename,omitempty"`
	BundleSize     *int64  `json:"bundleSize,omitempty"`
}

type PreflightSuggestion struct {
	Platform       string `json:"platform"`
	RuntimeVersion string `json:"runtimeVersion"`
	ChannelName    string `json:"channelName"`
}

type PreflightCheck struct {
	Id      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type PreflightResponse struct {
	Ok                   bool                `json:"ok"`
	Suggested            PreflightSuggestion `json:"suggested"`
	AvailableChannels    []string            `json:"availableChannels"`
	KnownRuntimeVersions []string            `json:"knownRuntimeVersions"`
	Checks               []PreflightCheck    `json:"checks"`
}
