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
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptsMultipart(t *testing.T) {
	assert.True(t, AcceptsMultipart("multipart/mixed"))
	assert.True(t, AcceptsMultipart("application/expo+json;q=0.9, Multipart/Mixed;q=1"))
	assert.False(t, AcceptsMultipart("application/json"))
	assert.False(t, AcceptsMultipart(""))
}

func TestWriteMultipartResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	err := WriteMultipartResponse(rec, []MultipartPart{
		{Name: PartManifest, Body: map[string]string{"id": "u1"}},
		{Name: PartExtensions, Body: map[string]any{"assetRequestHeaders": map[string]any{}}},
	})
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)

	mediaType, params, err := mime.ParseMediaType(rec.Header().Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	reader := multipart.NewReader(rec.Body, params["boundary"])
	var names []string
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		names = append(names, part.FormName())
		assert.True(t, strings.HasPrefix(part.Header.Get("Content-Type"), "application/json"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(part).Decode(&body))
	}
	assert.Equal(t, []string{PartManifest, PartExtensions}, names)
}

func TestWriteManifestHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteManifestHeaders(rec, 1)
	assert.Equal(t, "1", rec.Header().Get(HeaderProtocolVersion))
	assert.Equal(t, "0", rec.Header().Get(HeaderSFVVersion))
	assert.Equal(t, ManifestCacheControl, rec.Header().Get(HeaderCacheControl))
}
