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
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/otaforge/ota-update-service/config"
)

// maxDeleteBatch is the S3 DeleteObjects per-request limit
const maxDeleteBatch = 1000

//go:generate moq -rm -fmt goimports -skip-ensure -pkg clientmocks -out ../clientmocks/objectstore_client_fake.go . ObjectStoreClient:ObjectStoreClientMock

// ObjectStoreClient is the object storage collaborator holding bundles and assets.
// Byte transfer never passes through the service; clients use the URLs it issues.
type ObjectStoreClient interface {
	Exists(ctx context.Context, key string) (bool, error)
	RetrieveURL(ctx context.Context, key string) (string, error)
	PutURL(ctx context.Context, key string, contentType string) (string, error)
	DeleteMany(ctx context.Context, keys []string) error
}

type s3Client struct {
	client         *s3.Client
	presigner      *s3.PresignClient
	bucket         string
	downloadExpiry time.Duration
	uploadExpiry   time.Duration
}

// NewObjectStoreClient builds an S3 client from the object store configuration.
// A custom endpoint switches the client to an S3 compatible store.
func NewObjectStoreClient(ctx context.Context, cfg config.ObjectStoreConfig) (ObjectStoreClient, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("objectstore.NewObjectStoreClient: failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &s3Client{
		client:         client,
		presigner:      s3.NewPresignClient(client),
		bucket:         cfg.Bucket,
		downloadExpiry: time.Duration(cfg.DownloadURLExpirySeconds) * time.Second,
		uploadExpiry:   time.Duration(cfg.UploadURLExpirySeconds) * time.Second,
	}, nil
}

// Exists issues a HEAD request; a missing object is (false, nil)
func (c *s3Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("objectstore.Exists: %w", err)
}

func (c *s3Client) RetrieveURL(ctx context.Context, key string) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(c.downloadExpiry))
	if err != nil {
		return "", fmt.Errorf("objectstore.RetrieveURL: %w", err)
	}
	return req.URL, nil
}

func (c *s3Client) PutURL(ctx context.Context, key string, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	req, err := c.presigner.PresignPutObject(ctx, input, s3.WithPresignExpires(c.uploadExpiry))
	if err != nil {
		return "", fmt.Errorf("objectstore.PutURL: %w", err)
	}
	return req.URL, nil
}

// DeleteMany removes keys in batches; objects that are already gone are not an error
func (c *s3Client) DeleteMany(ctx context.Context, keys []string) error {
	for start := 0; start < len(keys); start += maxDeleteBatch {
		end := min(start+maxDeleteBatch, len(keys))

		objects := make([]types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
		}
		out, err := c.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(c.bucket),
			Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("objectstore.DeleteMany: %w", err)
		}
		if len(out.Errors) > 0 {
			first := out.Errors[0]
			return fmt.Errorf("objectstore.DeleteMany: %d objects not deleted, first %s: %s",
				len(out.Errors), aws.ToString(first.Key), aws.ToString(first.Message))
		}
	}
	return nil
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	var respErr interface{ HTTPStatusCode() int }
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound {
		return true
	}
	return false
}
