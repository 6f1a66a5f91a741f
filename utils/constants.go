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

package utils

// Path parameters
const (
	PathParamAppKey       = "appKey"
	PathParamChannelID    = "channelId"
	PathParamUpdateID     = "updateId"
	QueryParamLimit       = "limit"
	QueryParamOffset      = "offset"
	QueryParamPlatform    = "platform"
	QueryParamRuntime     = "runtimeVersion"
	QueryParamPurgeObject = "purgeObjects"
)

// Pagination
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Update protocol request headers
const (
	HeaderPlatform        = "expo-platform"
	HeaderRuntimeVersion  = "expo-runtime-version"
	HeaderChannelName     = "expo-channel-name"
	HeaderClientID        = "eas-client-id"
	HeaderCurrentUpdateID = "expo-current-update-id"
	HeaderAccept          = "accept"
)

const (
	MaxAppKeyLength       = 100
	MaxChannelNameLength  = 100
	DefaultRuntimeVersion = "1.0.0"
)
