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

package apitestutils

import (
	"context"
	"errors"
	"sync"

	"github.com/otaforge/ota-update-service/clients/clientmocks"
)

const (
	DownloadURLPrefix = "https://cdn.test/"
	UploadURLPrefix   = "https://upload.test/"
)

var ErrStoreDown = errors.New("object store down")

// CreateMockObjectStoreClient creates an object store mock in which every object
// exists and every URL is derived from the key
func CreateMockObjectStoreClient() *clientmocks.ObjectStoreClientMock {
	return &clientmocks.ObjectStoreClientMock{
		ExistsFunc: func(ctx context.Context, key string) (bool, error) {
			return true, nil
		},
		RetrieveURLFunc: func(ctx context.Context, key string) (string, error) {
			return DownloadURLPrefix + key, nil
		},
		PutURLFunc: func(ctx context.Context, key string, contentType string) (string, error) {
			return UploadURLPrefix + key, nil
		},
		DeleteManyFunc: func(ctx context.Context, keys []string) error {
			return nil
		},
	}
}

// CreateMockObjectStoreWithMissing reports the given keys as absent
func CreateMockObjectStoreWithMissing(missing ...string) *clientmocks.ObjectStoreClientMock {
	var mu sync.Mutex
	absent := make(map[string]struct{}, len(missing))
	for _, k := range missing {
		absent[k] = struct{}{}
	}
	mock := CreateMockObjectStoreClient()
	mock.ExistsFunc = func(ctx context.Context, key string) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		_, gone := absent[key]
		return !gone, nil
	}
	return mock
}

// CreateFailingObjectStoreClient fails every call
func CreateFailingObjectStoreClient() *clientmocks.ObjectStoreClientMock {
	return &clientmocks.ObjectStoreClientMock{
		ExistsFunc: func(ctx context.Context, key string) (bool, error) {
			return false, ErrStoreDown
		},
		RetrieveURLFunc: func(ctx context.Context, key string) (string, error) {
			return "", ErrStoreDown
		},
		PutURLFunc: func(ctx context.Context, key string, contentType string) (string, error) {
			return "", ErrStoreDown
		},
		DeleteManyFunc: func(ctx context.Context, keys []string) error {
			return ErrStoreDown
		},
	}
}
