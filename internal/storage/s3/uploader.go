// Package s3 publishes finished output files to an S3 compatible bucket.
package s3

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"liquidationScope/internal/config"
)

const csvContentType = "text/csv"

// Uploader puts local files into one bucket.
type Uploader struct {
	client *awss3.Client
	bucket string
	logger *zap.Logger
}

func NewUploader(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (*Uploader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})

	return &Uploader{client: client, bucket: bucket, logger: logger}, nil
}

// ObjectKey returns key, or the base name of localPath when key is empty.
func ObjectKey(key, localPath string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key != "" {
		return key
	}
	return filepath.Base(localPath)
}

// UploadFile puts the file at localPath under key.
func (u *Uploader) UploadFile(ctx context.Context, localPath, key string, metadata map[string]string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat upload: %w", err)
	}

	input := &awss3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(info.Size()),
		Metadata:      metadata,
	}
	if strings.EqualFold(filepath.Ext(localPath), ".csv") {
		input.ContentType = aws.String(csvContentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", u.bucket, key, err)
	}

	u.logger.Info("output uploaded",
		zap.String("bucket", u.bucket),
		zap.String("key", key),
		zap.Int64("bytes", info.Size()),
	)
	return nil
}
