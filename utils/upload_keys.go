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

import (
	"fmt"
	"strings"
)

// BuildUploadPrefix returns the object key prefix owned by one update group
func BuildUploadPrefix(appKey, runtimeVersion, updateGroupID string) string {
	return fmt.Sprintf("ota/%s/%s/%s", appKey, runtimeVersion, updateGroupID)
}

func BuildBundleObjectKey(prefix, platform, bundleFilename string) string {
	return fmt.Sprintf("%s/bundles/%s/%s", prefix, platform, bundleFilename)
}

func BuildAssetObjectKey(prefix, filename string) string {
	return fmt.Sprintf("%s/assets/%s", prefix, filename)
}

// IsBundleKeyInScope reports whether key names a file below the platform bundle directory of prefix
func IsBundleKeyInScope(key, prefix, platform string) bool {
	return hasNonEmptySuffixAfter(key, fmt.Sprintf("%s/bundles/%s/", prefix, platform))
}

// IsAssetKeyInScope reports whether key names a file below the asset directory of prefix
func IsAssetKeyInScope(key, prefix string) bool {
	return hasNonEmptySuffixAfter(key, prefix+"/assets/")
}

func hasNonEmptySuffixAfter(key, expectedPrefix string) bool {
	return strings.HasPrefix(key, expectedPrefix) && len(key) > len(expectedPrefix)
}

// IsSafePathSegment rejects values that would escape their slot in an object key
func IsSafePathSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\\")
}
