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

// ManifestAsset describes one downloadable file of a manifest
type ManifestAsset struct {
	Hash          string `json:"hash"`
	Key           string `json:"key"`
	FileExtension string `json:"fileExtension"`
	ContentType   string `json:"contentType"`
	Url           string `json:"url"`
}

type ManifestMetadata struct {
	BranchName string `json:"branchName"`
}

// Manifest is the document a client receives when an update is available
type Manifest struct {
	Id             string           `json:"id"`
	CreatedAt      string           `json:"createdAt"`
	RuntimeVersion string           `json:"runtimeVersion"`
	LaunchAsset    ManifestAsset    `json:"launchAsset"`
	Assets         []ManifestAsset  `json:"assets"`
	Metadata       ManifestMetadata `json:"metadata"`
	Extra          map[string]any   `json:"extra"`
}

// ManifestExtensions tells the client which extra headers to send per asset
type ManifestExtensions struct {
	AssetRequestHeaders map[string]map[string]string `json:"assetRequestHeaders"`
}

// ManifestDirective is sent instead of a manifest when there is nothing to install
type ManifestDirective struct {
	Type string `json:"type"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
