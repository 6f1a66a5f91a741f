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
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAppKey(t *testing.T) {
	tests := []struct {
		name    string
		appKey  string
		wantErr bool
	}{
		{name: "lowercase with hyphen", appKey: "my-app-1"},
		{name: "empty", appKey: "", wantErr: true},
		{name: "uppercase", appKey: "MyApp", wantErr: true},
		{name: "slash", appKey: "a/b", wantErr: true},
		{name: "too long", appKey: string(make([]byte, MaxAppKeyLength+1)), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAppKey(tt.appKey)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSortVersionsDesc(t *testing.T) {
	got := SortVersionsDesc([]string{"1.9.0", "1.10.0", "1.0.0", "1.9.0", "2.0.0-beta", "2.0.0"})
	assert.Equal(t, []string{"2.0.0-beta", "2.0.0", "1.10.0", "1.9.0", "1.0.0"}, got)
	assert.Empty(t, SortVersionsDesc(nil))
}

func TestHexToBase64URL(t *testing.T) {
	got, err := HexToBase64URL("deadbeef")
	require.NoError(t, err)
	assert.Equal(t, "3q2-7w", got)

	got, err = HexToBase64URL("FBFF")
	require.NoError(t, err)
	assert.Equal(t, "-_8", got)

	_, err = HexToBase64URL("not-hex")
	assert.ErrorIs(t, err, ErrInvalidHash)
	_, err = HexToBase64URL("  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUploadKeys(t *testing.T) {
	prefix := BuildUploadPrefix("demo", "1.0.0", "group-1")
	assert.Equal(t, "ota/demo/1.0.0/group-1", prefix)

	bundleKey := BuildBundleObjectKey(prefix, "ios", "index.bundle")
	assert.Equal(t, "ota/demo/1.0.0/group-1/bundles/ios/index.bundle", bundleKey)
	assert.True(t, IsBundleKeyInScope(bundleKey, prefix, "ios"))
	assert.False(t, IsBundleKeyInScope(bundleKey, prefix, "android"))
	assert.False(t, IsBundleKeyInScope(prefix+"/bundles/ios/", prefix, "ios"))
	assert.False(t, IsBundleKeyInScope("ota/demo/1.0.0/group-2/bundles/ios/index.bundle", prefix, "ios"))

	assetKey := BuildAssetObjectKey(prefix, "logo.png")
	assert.True(t, IsAssetKeyInScope(assetKey, prefix))
	assert.False(t, IsAssetKeyInScope(bundleKey, prefix))

	assert.True(t, IsSafePathSegment("index.bundle"))
	for _, bad := range []string{"", ".", "..", "a/b", "a\\b"} {
		assert.False(t, IsSafePathSegment(bad), bad)
	}
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, ".hbc", FileExtension("main.HBC"))
	assert.Equal(t, "", FileExtension("bundle"))
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{err: ErrAppNotFound, wantStatus: http.StatusNotFound, wantCode: CodeNotFound},
		{err: ErrAppAlreadyExists, wantStatus: http.StatusConflict, wantCode: CodeConflict},
		{err: ErrUpdateNotLiveOnChannel, wantStatus: http.StatusPreconditionFailed, wantCode: CodePreconditionFailed},
		{err: ErrAlreadyLive, wantStatus: http.StatusBadRequest, wantCode: CodeInvalidRequest},
		{err: NewValidationError("bad %s", "thing"), wantStatus: http.StatusBadRequest, wantCode: CodeInvalidRequest},
		{err: ErrStorageUnavailable, wantStatus: http.StatusServiceUnavailable, wantCode: CodeUpstreamUnavailable},
		{err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, code := ClassifyError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-3))
	assert.Equal(t, 10, ClampLimit(10))
	assert.Equal(t, MaxLimit, ClampLimit(MaxLimit+1))
}
