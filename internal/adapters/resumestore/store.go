// Package resumestore archives uploaded resumes in S3-compatible object storage.
package resumestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Sakshamyadav19/HireMe-Backend/config"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
)

// ObjectPutter is the subset of *minio.Client used for archiving.
type ObjectPutter interface {
	PutObject(
		ctx context.Context,
		bucketName, objectName string,
		reader io.Reader,
		objectSize int64,
		opts minio.PutObjectOptions,
	) (minio.UploadInfo, error)
}

// MinioStore writes each resume to <bucket>/<userID>/<jobID>-<filename>.
type MinioStore struct {
	client ObjectPutter
	bucket string
	logger *slog.Logger
}

var (
	_ core.ResumeStore = (*MinioStore)(nil)
	_ core.ResumeStore = NopStore{}
)

// NewMinioStore wraps an existing client.
func NewMinioStore(client ObjectPutter, bucket string, logger *slog.Logger) (*MinioStore, error) {
	if client == nil {
		return nil, errors.New("object storage client is required")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("bucket is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MinioStore{client: client, bucket: bucket, logger: logger.With("component", "resume_store")}, nil
}

// Connect dials the configured endpoint and creates the bucket when it is missing.
func Connect(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.Bucket, err)
		}
	}
	return NewMinioStore(client, cfg.Bucket, logger)
}

// Put uploads obj.Content.
func (s *MinioStore) Put(ctx context.Context, obj core.ResumeObject) error {
	name := ObjectName(obj.UserID, obj.JobID, obj.Filename)
	contentType := obj.ContentType
	if contentType == "" {
		contentType = ContentType(obj.Filename)
	}

	info, err := s.client.PutObject(ctx, s.bucket, name,
		bytes.NewReader(obj.Content), int64(len(obj.Content)),
		minio.PutObjectOptions{
			ContentType:  contentType,
			UserMetadata: map[string]string{"job-id": obj.JobID},
		},
	)
	if err != nil {
		return fmt.Errorf("put object %s: %w", name, err)
	}
	s.logger.DebugContext(ctx, "resume archived", "object", name, "size", info.Size)
	return nil
}

// ObjectName builds the archive key. The filename is reduced to its base name.
func ObjectName(userID, jobID, filename string) string {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "resume"
	}
	return path.Join(userID, jobID+"-"+base)
}

// ContentType maps a resume filename to its MIME type.
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// NopStore discards every resume. It is used when archiving is disabled.
type NopStore struct{}

// Put implements core.ResumeStore.
func (NopStore) Put(context.Context, core.ResumeObject) error { return nil }
