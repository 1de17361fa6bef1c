package storage

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/code-with-geo/kain-lasalle-backend/config"
)

// ObjectStore holds binary objects (store images) addressable by the URL
// returned from Upload.
type ObjectStore interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
	Remove(ctx context.Context, ref string) error
}

var unsafeChars = regexp.MustCompile(`[^\w\d\-_\.]`)

// MinioStore keeps objects in a single bucket on an S3-compatible server.
type MinioStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

func NewMinioStore(cfg config.MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %v", err)
	}
	return &MinioStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

func (s *MinioStore) Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	cleanName := unsafeChars.ReplaceAllString(filename, "_")
	objectName := fmt.Sprintf("stores/%d_%s", time.Now().Unix(), cleanName)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %v", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, objectName), nil
}

func (s *MinioStore) Remove(ctx context.Context, ref string) error {
	prefix := fmt.Sprintf("%s/%s/", s.publicBaseURL, s.bucket)
	objectName := strings.TrimPrefix(ref, prefix)
	if objectName == ref || objectName == "" {
		return fmt.Errorf("object reference %q does not belong to this store", ref)
	}
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}
