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

package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/otaforge/ota-update-service/models"
	"github.com/otaforge/ota-update-service/spec"
	"github.com/otaforge/ota-update-service/utils"
)

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type manifestCall struct {
	method          string
	platform        models.Platform
	runtimeVersion  string
	channel         string
	clientID        string
	currentUpdateID string
	protocol        string
	accept          string
}

func requestManifest(t *testing.T, handler http.Handler, appKey string, call manifestCall) *httptest.ResponseRecorder {
	t.Helper()
	method := call.method
	if method == "" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, "/api/manifest/"+appKey, nil)
	set := func(key, value string) {
		if value != "" {
			req.Header.Set(key, value)
		}
	}
	set(utils.HeaderPlatform, string(call.platform))
	set(utils.HeaderRuntimeVersion, call.runtimeVersion)
	set(utils.HeaderChannelName, call.channel)
	set(utils.HeaderClientID, call.clientID)
	set(utils.HeaderCurrentUpdateID, call.currentUpdateID)
	set(utils.HeaderProtocolVersion, call.protocol)
	set(utils.HeaderAccept, call.accept)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// readParts splits a multipart/mixed manifest response into its raw named parts
func readParts(t *testing.T, rec *httptest.ResponseRecorder) map[string][]byte {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(rec.Header().Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/mixed", mediaType)

	parts := map[string][]byte{}
	reader := multipart.NewReader(rec.Body, params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		raw, err := io.ReadAll(part)
		require.NoError(t, err)
		parts[part.FormName()] = raw
	}
	return parts
}

func manifestFromParts(t *testing.T, parts map[string][]byte) spec.Manifest {
	t.Helper()
	raw, ok := parts[utils.PartManifest]
	require.True(t, ok, "manifest part missing")
	var manifest spec.Manifest
	require.NoError(t, json.Unmarshal(raw, &manifest))
	return manifest
}

func ptr[T any](v T) *T {
	return &v
}
