package reporting

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/seceng-tools/access-review/internal/config"
)

// Uploader delivers report artifacts to an S3-compatible bucket.
type Uploader struct {
	client   *minio.Client
	bucket   string
	region   string
	logger   *zap.Logger
	initOnce sync.Once
	initErr  error
}

// NewUploader builds an Uploader from the S3 configuration. The bucket is
// created on first use if it does not exist.
func NewUploader(cfg config.S3Config, logger *zap.Logger) (*Uploader, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	if strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init s3 client: %w", err)
	}

	return &Uploader{
		client: client,
		bucket: bucket,
		region: region,
		logger: logger.Named("s3_uploader"),
	}, nil
}

func (u *Uploader) ensureBucket(ctx context.Context) error {
	u.initOnce.Do(func() {
		exists, err := u.client.BucketExists(ctx, u.bucket)
		if err != nil {
			u.initErr = err
			return
		}
		if exists {
			return
		}
		u.initErr = u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{Region: u.region})
	})
	return u.initErr
}

// PutReport uploads one report artifact under key and returns its s3:// URL.
func (u *Uploader) PutReport(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("object key is required")
	}
	if err := u.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("failed to ensure bucket %s: %w", u.bucket, err)
	}

	u.logger.Info("Uploading report artifact.",
		zap.String("bucket", u.bucket), zap.String("key", key), zap.Int("bytes", len(content)))

	_, err := u.client.PutObject(ctx, u.bucket, key, bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	location := fmt.Sprintf("s3://%s/%s", u.bucket, key)
	u.logger.Info("Report artifact uploaded.", zap.String("location", location))
	return location, nil
}

// ReportKey builds the object key for a report artifact: the configured
// prefix, the run ID, and the artifact filename.
func ReportKey(prefix, runID, filename string) string {
	parts := make([]string, 0, 3)
	if p := strings.Trim(prefix, "/"); p != "" {
		parts = append(parts, p)
	}
	if runID != "" {
		parts = append(parts, runID)
	}
	parts = append(parts, filename)
	return path.Join(parts...)
}
