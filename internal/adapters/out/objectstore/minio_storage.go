// Package objectstore keeps load documents and chat attachments in an
// S3-compatible bucket.
package objectstore

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// Prefix is prepended to every object key, e.g. "freight".
	Prefix string
}

func (c Config) Validate() error {
	var errList []error
	if strings.TrimSpace(c.Endpoint) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("minio_endpoint"))
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		errList = append(errList, errs.NewValueIsRequiredError("minio_credentials"))
	}
	if strings.TrimSpace(c.Bucket) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("minio_bucket"))
	}
	return errors.Join(errList...)
}

// MinioStorage is safe for concurrent use.
type MinioStorage struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinioStorage connects to the endpoint and creates the bucket when it is
// missing.
func NewMinioStorage(ctx context.Context, cfg Config) (*MinioStorage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errs.NewUpstreamError("create minio client", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errs.NewUpstreamError("check bucket", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errs.NewUpstreamError("create bucket", err)
		}
	}

	return &MinioStorage{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// Upload streams r into a fresh object. The key is a time-ordered id plus the
// lower-cased extension of name; the original name travels in the FileRef.
func (s *MinioStorage) Upload(ctx context.Context, name, contentType string, r io.Reader, size int64) (kernel.FileRef, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := s.key(kernel.NewOrderedUUID().String() + strings.ToLower(path.Ext(name)))

	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"original-name": name},
	})
	if err != nil {
		return kernel.FileRef{}, errs.NewUpstreamError("upload file", err)
	}
	return kernel.NewFileRef(key, name, contentType, info.Size)
}

func (s *MinioStorage) Download(ctx context.Context, ref kernel.FileRef) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, ref.Key(), minio.GetObjectOptions{})
	if err != nil {
		return nil, errs.NewUpstreamError("download file", err)
	}
	// GetObject is lazy; Stat surfaces a missing key before the caller reads.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if isNoSuchKey(err) {
			return nil, errs.NewObjectNotFoundErrorWithCause("file", ref.Key(), err)
		}
		return nil, errs.NewUpstreamError("download file", err)
	}
	return obj, nil
}

func (s *MinioStorage) Delete(ctx context.Context, ref kernel.FileRef) error {
	err := s.client.RemoveObject(ctx, s.bucket, ref.Key(), minio.RemoveObjectOptions{})
	if err != nil && !isNoSuchKey(err) {
		return errs.NewUpstreamError("delete file", err)
	}
	return nil
}

func (s *MinioStorage) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}
