package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const checksumMetaKey = "sha256"

// objectAPI is the subset of the S3 client the mirror needs
type objectAPI interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config holds S3-compatible bucket settings (AWS, R2, MinIO)
type S3Config struct {
	Endpoint        string // empty for AWS
	Region          string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Prefix          string
}

// S3Mirror copies originals to an S3-compatible bucket
type S3Mirror struct {
	client objectAPI
	bucket string
	prefix string
}

// NewS3Mirror creates a mirror backed by an S3-compatible bucket
func NewS3Mirror(ctx context.Context, cfg S3Config) (*S3Mirror, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("mirror bucket is required")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.AccessKeySecret,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // Required for MinIO
		}
	})

	return newS3Mirror(client, cfg.Bucket, cfg.Prefix), nil
}

func newS3Mirror(client objectAPI, bucket, prefix string) *S3Mirror {
	return &S3Mirror{client: client, bucket: bucket, prefix: prefix}
}

// Put uploads the object unless the stored sha256 metadata already matches checksum
func (m *S3Mirror) Put(ctx context.Context, key string, reader io.Reader, contentType, checksum string) error {
	objectKey := m.objectKey(key)

	if checksum != "" {
		head, err := m.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(m.bucket),
			Key:    aws.String(objectKey),
		})
		switch {
		case err == nil:
			if head.Metadata[checksumMetaKey] == checksum {
				return nil
			}
		case !isNotFound(err):
			return fmt.Errorf("failed to check mirrored object: %w", err)
		}
	}

	// S3 SDK needs a seekable body for content length
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}
	if checksum != "" {
		input.Metadata = map[string]string{checksumMetaKey: checksum}
	}

	if _, err := m.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

func (m *S3Mirror) objectKey(key string) string {
	if m.prefix == "" {
		return key
	}
	return path.Join(m.prefix, key)
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}
