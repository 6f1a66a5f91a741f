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

const (
	ProtocolVersion0 = 0
	ProtocolVersion1 = 1
)

// ManifestRequest is a client's update check, decoded from the protocol headers
type ManifestRequest struct {
	AppKey                string
	Platform              Platform
	RuntimeVersion        string
	ChannelName           string
	ClientID              string
	HasClientID           bool
	ClientCurrentUpdateID string
	ProtocolVersion       int
}

// ManifestAsset is a resolved, signed asset reference
type ManifestAsset struct {
	Hash          string
	Key           string
	FileExtension string
	ContentType   string
	URL           string
}

// ResolvedManifest is the update a client should install
type ResolvedManifest struct {
	ID             string
	CreatedAt      string
	RuntimeVersion string
	LaunchAsset    ManifestAsset
	Assets         []ManifestAsset
	BranchName     string
}

// ManifestResolution is the outcome of resolving a ManifestRequest.
// Manifest is nil when there is no update for the client.
type ManifestResolution struct {
	Manifest *ResolvedManifest
	// ExitStep names the resolution step that ended the chain
	ExitStep string
}

// HasUpdate reports whether the resolution carries a manifest
func (r *ManifestResolution) HasUpdate() bool {
	return r != nil && r.Manifest != nil
}
