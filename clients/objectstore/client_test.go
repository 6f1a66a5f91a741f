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

package objectstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otaforge/ota-update-service/config"
)

const testBucket = "ota-bundles"

// fakeS3 answers the handful of path-style S3 calls the client makes
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]bool
	deleted []string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.TrimPrefix(r.URL.Path, "/"+testBucket+"/")
	switch {
	case r.Method == http.MethodHead:
		if f.objects[key] {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodPost && r.URL.Query().Has("delete"):
		body, _ := io.ReadAll(r.Body)
		for _, part := range strings.Split(string(body), "<Key>")[1:] {
			f.deleted = append(f.deleted, strings.SplitN(part, "</Key>", 2)[0])
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><DeleteResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/"></DeleteResult>`)
	default:
		w.WriteHeader(http.StatusForbidden)
	}
}

func newTestClient(t *testing.T, endpoint string) ObjectStoreClient {
	t.Helper()
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	client, err := NewObjectStoreClient(context.Background(), config.ObjectStoreConfig{
		Bucket:                   testBucket,
		Region:                   "us-east-1",
		Endpoint:                 endpoint,
		UsePathStyle:             true,
		AccessKeyID:              "test-key",
		SecretAccessKey:          "test-secret",
		DownloadURLExpirySeconds: 600,
		UploadURLExpirySeconds:   900,
	})
	require.NoError(t, err)
	return client
}

func TestS3Client_Exists(t *testing.T) {
	fake := &fakeS3{objects: map[string]bool{"ota/demo/1.0.0/g/bundles/ios/index.bundle": true}}
	srv := httptest.NewServer(fake)
	defer srv.Close()
	client := newTestClient(t, srv.URL)

	exists, err := client.Exists(context.Background(), "ota/demo/1.0.0/g/bundles/ios/index.bundle")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.Exists(context.Background(), "ota/demo/1.0.0/g/bundles/ios/missing.bundle")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestS3Client_PresignedURLs(t *testing.T) {
	client := newTestClient(t, "http://minio.test:9000")
	key := "ota/demo/1.0.0/g/assets/logo.png"

	getURL, err := client.RetrieveURL(context.Background(), key)
	require.NoError(t, err)
	parsed, err := url.Parse(getURL)
	require.NoError(t, err)
	assert.Equal(t, "minio.test:9000", parsed.Host)
	assert.Equal(t, "/"+testBucket+"/"+key, parsed.Path)
	assert.Equal(t, "600", parsed.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, parsed.Query().Get("X-Amz-Signature"))

	putURL, err := client.PutURL(context.Background(), key, "image/png")
	require.NoError(t, err)
	parsed, err = url.Parse(putURL)
	require.NoError(t, err)
	assert.Equal(t, "900", parsed.Query().Get("X-Amz-Expires"))
	assert.Contains(t, parsed.Query().Get("X-Amz-SignedHeaders"), "content-type")
}

func TestS3Client_DeleteMany(t *testing.T) {
	fake := &fakeS3{}
	srv := httptest.NewServer(fake)
	defer srv.Close()
	client := newTestClient(t, srv.URL)

	require.NoError(t, client.DeleteMany(context.Background(), nil))

	keys := []string{"ota/demo/a.bundle", "ota/demo/b.png"}
	require.NoError(t, client.DeleteMany(context.Background(), keys))
	assert.Equal(t, keys, fake.deleted)
}
