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

type CheckStatus string

const (
	CheckPass CheckStatus = "pass"
	CheckWarn CheckStatus = "warn"
	CheckFail CheckStatus = "fail"
)

// PreflightRequest describes a publish the caller is about to make.
// Nil fields were not supplied.
type PreflightRequest struct {
	Platform       Platform
	RuntimeVersion *string
	ChannelName    *string
	BundleFilename *string
	BundleSize     *int64
}

// HasValidationIntent reports whether any optional field was supplied
func (r *PreflightRequest) HasValidationIntent() bool {
	return r.RuntimeVersion != nil || r.ChannelName != nil || r.BundleFilename != nil || r.BundleSize != nil
}

type PreflightCheck struct {
	ID      string
	Status  CheckStatus
	Message string
}

type PreflightSuggestion struct {
	Platform       Platform
	RuntimeVersion string
	ChannelName    string
}

type PreflightReport struct {
	OK                   bool
	Suggested            PreflightSuggestion
	AvailableChannels    []string
	KnownRuntimeVersions []string
	Checks               []PreflightCheck
}
