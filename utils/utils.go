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
	"net/http"
	"path"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/otaforge/ota-update-service/spec"
)

var appKeyPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidateAppKey checks that an app key is usable as a URL path segment and object key prefix
func ValidateAppKey(appKey string) error {
	if appKey == "" {
		return NewValidationError("app key cannot be empty")
	}
	if len(appKey) > MaxAppKeyLength {
		return NewValidationError("app key must be at most %d characters, got %d", MaxAppKeyLength, len(appKey))
	}
	if !appKeyPattern.MatchString(appKey) {
		return NewValidationError("app key must contain only lowercase letters, numbers, and hyphens")
	}
	return nil
}

func ValidateResourceDisplayName(displayName string, resourceType string) error {
	if strings.TrimSpace(displayName) == "" {
		return NewValidationError("%s name cannot be empty", resourceType)
	}
	return nil
}

// ValidateChannelName rejects empty names and names that cannot be stored
func ValidateChannelName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("channel name cannot be empty")
	}
	if len(name) > MaxChannelNameLength {
		return NewValidationError("channel name must be at most %d characters, got %d", MaxChannelNameLength, len(name))
	}
	return nil
}

// FileExtension returns the lower-cased extension of filename including the dot, or ""
func FileExtension(filename string) string {
	return strings.ToLower(path.Ext(filename))
}

// SortVersionsDesc de-duplicates versions and orders them newest first, comparing
// digit runs numerically so 1.10.0 sorts above 1.9.0
func SortVersionsDesc(versions []string) []string {
	seen := make(map[string]struct{}, len(versions))
	unique := make([]string, 0, len(versions))
	for _, v := range versions {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	sort.SliceStable(unique, func(i, j int) bool {
		return naturalCompare(unique[i], unique[j]) > 0
	})
	return unique
}

// naturalCompare orders strings chunk by chunk, numeric chunks by value
func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		ca, restA := nextChunk(a)
		cb, restB := nextChunk(b)
		if c := compareChunks(ca, cb); c != 0 {
			return c
		}
		a, b = restA, restB
	}
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

func nextChunk(s string) (string, string) {
	digit := unicode.IsDigit(rune(s[0]))
	i := 1
	for i < len(s) && unicode.IsDigit(rune(s[i])) == digit {
		i++
	}
	return s[:i], s[i:]
}

func compareChunks(a, b string) int {
	aNum := unicode.IsDigit(rune(a[0]))
	bNum := unicode.IsDigit(rune(b[0]))
	if aNum && bNum {
		ta := strings.TrimLeft(a, "0")
		tb := strings.TrimLeft(b, "0")
		if len(ta) != len(tb) {
			if len(ta) < len(tb) {
				return -1
			}
			return 1
		}
		return strings.Compare(ta, tb)
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// WriteSuccessResponse writes a successful API response
func WriteSuccessResponse[T any](w http.ResponseWriter, statusCode int, data T) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if statusCode == http.StatusNoContent {
		return
	}
	_ = json.NewEncoder(w).Encode(data) // Ignore encoding errors for response
}

// WriteErrorResponse writes an error API response
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	WriteErrorResponseWithCode(w, statusCode, codeForStatus(statusCode), message)
}

// WriteErrorResponseWithCode writes an error body carrying an explicit API error code
func WriteErrorResponseWithCode(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	errPayload := &spec.ErrorResponse{
		Code:    code,
		Message: message,
	}
	_ = json.NewEncoder(w).Encode(errPayload) // Ignore encoding errors for response
}

func codeForStatus(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return CodeInvalidRequest
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusPreconditionFailed:
		return CodePreconditionFailed
	case http.StatusServiceUnavailable:
		return CodeUpstreamUnavailable
	default:
		return CodeInternalError
	}
}

// ClampLimit applies the default and maximum page sizes
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}
