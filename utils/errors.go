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
	"fmt"
	"net/http"
)

// Error kinds. Every specific error below wraps exactly one kind so callers can
// branch on either level with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrPreconditionFailed  = errors.New("precondition failed")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

var (
	// Resource not found errors
	ErrAppNotFound        = fmt.Errorf("app %w", ErrNotFound)
	ErrChannelNotFound    = fmt.Errorf("channel %w", ErrNotFound)
	ErrUpdateNotFound     = fmt.Errorf("update %w", ErrNotFound)
	ErrAssignmentNotFound = fmt.Errorf("channel assignment %w", ErrNotFound)

	// Conflicts
	ErrAppAlreadyExists = fmt.Errorf("app already exists: %w", ErrConflict)

	// Preconditions
	ErrUpdateNotLiveOnChannel = fmt.Errorf("update is not live on the source channel: %w", ErrPreconditionFailed)

	// Validation errors
	ErrObjectNotFound         = fmt.Errorf("object not found in storage: %w", ErrInvalidInput)
	ErrObjectKeyOutsidePrefix = fmt.Errorf("object key outside the upload prefix: %w", ErrInvalidInput)
	ErrInvalidRolloutPercent  = fmt.Errorf("rollout percent must be between 0 and 100: %w", ErrInvalidInput)
	ErrInvalidPlatform        = fmt.Errorf("platform must be ios or android: %w", ErrInvalidInput)
	ErrSameChannelPromotion   = fmt.Errorf("source and target channel must differ: %w", ErrInvalidInput)
	ErrAlreadyLive            = fmt.Errorf("update is already live on the channel: %w", ErrInvalidInput)
	ErrUnsupportedProtocol    = fmt.Errorf("unsupported protocol version: %w", ErrInvalidInput)
	ErrMissingRuntimeVersion  = fmt.Errorf("runtime version is required: %w", ErrInvalidInput)
	ErrInvalidHash            = fmt.Errorf("hash is not valid hex: %w", ErrInvalidInput)
	ErrStorageUnavailable     = fmt.Errorf("object storage %w", ErrUpstreamUnavailable)
)

// Error codes returned in the admin API error body
const (
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodePreconditionFailed  = "PRECONDITION_FAILED"
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeInternalError       = "INTERNAL_ERROR"
)

// ClassifyError maps an error to its HTTP status and API error code
func ClassifyError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, ErrPreconditionFailed):
		return http.StatusPreconditionFailed, CodePreconditionFailed
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable, CodeUpstreamUnavailable
	default:
		return http.StatusInternalServerError, CodeInternalError
	}
}

// NewValidationError wraps a caller supplied message as an invalid input error
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}
