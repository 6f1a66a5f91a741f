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
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
)

// Update protocol response headers
const (
	HeaderProtocolVersion = "expo-protocol-version"
	HeaderSFVVersion      = "expo-sfv-version"
	HeaderCacheControl    = "cache-control"

	ManifestCacheControl = "private, max-age=0"
	partContentType      = "application/json; charset=utf-8"
)

// Multipart part names
const (
	PartManifest   = "manifest"
	PartExtensions = "extensions"
	PartDirective  = "directive"
)

// MultipartPart is one named JSON section of a multipart/mixed manifest response
type MultipartPart struct {
	Name string
	Body any
}

// EncodeMultipartMixed renders parts as a multipart/mixed body and returns it
// together with the content type carrying the generated boundary
func EncodeMultipartMixed(parts []MultipartPart) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, part := range parts {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf("form-data; name=%q", part.Name))
		header.Set("Content-Type", partContentType)
		pw, err := mw.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create %s part: %w", part.Name, err)
		}
		body, err := json.Marshal(part.Body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode %s part: %w", part.Name, err)
		}
		if _, err := pw.Write(body); err != nil {
			return nil, "", fmt.Errorf("failed to write %s part: %w", part.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return buf.Bytes(), "multipart/mixed; boundary=" + mw.Boundary(), nil
}

// WriteManifestHeaders sets the headers every update protocol response carries
func WriteManifestHeaders(w http.ResponseWriter, protocolVersion int) {
	w.Header().Set(HeaderProtocolVersion, strconv.Itoa(protocolVersion))
	w.Header().Set(HeaderSFVVersion, "0")
	w.Header().Set(HeaderCacheControl, ManifestCacheControl)
}

// WriteMultipartResponse writes parts as a 200 multipart/mixed response
func WriteMultipartResponse(w http.ResponseWriter, parts []MultipartPart) error {
	body, contentType, err := EncodeMultipartMixed(parts)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(body)
	return err
}

// AcceptsMultipart reports whether an accept header asks for multipart/mixed
func AcceptsMultipart(accept string) bool {
	for _, mediaRange := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(strings.SplitN(mediaRange, ";", 2)[0])
		if strings.EqualFold(mediaType, "multipart/mixed") {
			return true
		}
	}
	return false
}
