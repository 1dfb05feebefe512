package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"github.com/digitalaadhti/digital-aadhti-official/config"
)

// UploadSink receives the bytes of an accepted upload.
type UploadSink interface {
	Name() string
	Save(ctx context.Context, key, contentType string, data []byte) error
}

// NewUploadSink builds the sink selected by UPLOAD_SINK: discard (default), disk, s3 or minio.
func NewUploadSink(ctx context.Context, cfg map[string]string) (UploadSink, error) {
	kind := strings.ToLower(config.GetString(cfg, "UPLOAD_SINK", "discard"))
	switch kind {
	case "discard":
		return DiscardSink{}, nil
	case "disk":
		return NewDiskSink(config.GetString(cfg, "UPLOAD_DIR", "uploads"))
	case "s3":
		bucket := config.GetString(cfg, "UPLOAD_BUCKET", "")
		if bucket == "" {
			return nil, fmt.Errorf("UPLOAD_BUCKET is required for the s3 upload sink")
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return NewS3Sink(s3.NewFromConfig(awsCfg), bucket, config.GetString(cfg, "UPLOAD_PREFIX", "")), nil
	case "minio":
		bucket := config.GetString(cfg, "UPLOAD_BUCKET", "")
		if bucket == "" {
			return nil, fmt.Errorf("UPLOAD_BUCKET is required for the minio upload sink")
		}
		client, err := minio.New(config.GetString(cfg, "MINIO_ENDPOINT", "localhost:9000"), &minio.Options{
			Creds: credentials.NewStaticV4(
				config.GetString(cfg, "MINIO_ACCESS_KEY", ""),
				config.GetString(cfg, "MINIO_SECRET_KEY", ""),
				"",
			),
			Secure: config.GetBool(cfg, "MINIO_USE_SSL", false),
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return NewMinioSink(ctx, client, bucket)
	default:
		return nil, fmt.Errorf("unsupported UPLOAD_SINK %q", kind)
	}
}

// GenerateFilename returns a random 32-hex-digit name that keeps a sanitized copy of
// the original file extension.
func GenerateFilename(originalName string) string {
	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	return name + safeExtension(originalName)
}

func safeExtension(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') {
			return ""
		}
	}
	return ext
}

// DiscardSink accepts uploads and keeps nothing.
type DiscardSink struct{}

func (DiscardSink) Name() string { return "discard" }

func (DiscardSink) Save(context.Context, string, string, []byte) error { return nil }

// DiskSink writes uploads into a local directory.
type DiskSink struct {
	dir string
}

func NewDiskSink(dir string) (*DiskSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &DiskSink{dir: dir}, nil
}

func (s *DiskSink) Name() string { return "disk" }

func (s *DiskSink) Save(_ context.Context, key, _ string, data []byte) error {
	if key != filepath.Base(key) || key == "." || key == ".." {
		return fmt.Errorf("invalid upload key %q", key)
	}
	return os.WriteFile(filepath.Join(s.dir, key), data, 0o644)
}

// S3PutObjectAPI is the part of the S3 client the sink needs.
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink stores uploads as objects in an S3 bucket.
type S3Sink struct {
	client S3PutObjectAPI
	bucket string
	prefix string
}

func NewS3Sink(client S3PutObjectAPI, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (s *S3Sink) Name() string { return "s3" }

func (s *S3Sink) Save(ctx context.Context, key, contentType string, data []byte) error {
	objectKey := key
	if s.prefix != "" {
		objectKey = s.prefix + "/" + key
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put object %s/%s: %w", s.bucket, objectKey, err)
	}
	return nil
}

// MinioAPI is the part of the MinIO client the sink needs.
type MinioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioSink stores uploads in an S3-compatible bucket through MinIO.
type MinioSink struct {
	client MinioAPI
	bucket string
}

// NewMinioSink makes sure the bucket exists before returning the sink.
func NewMinioSink(ctx context.Context, client MinioAPI, bucket string) (*MinioSink, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
		log.Info().Str("bucket", bucket).Msg("created upload bucket")
	}
	return &MinioSink{client: client, bucket: bucket}, nil
}

func (s *MinioSink) Name() string { return "minio" }

func (s *MinioSink) Save(ctx context.Context, key, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("minio put object %s/%s: %w", s.bucket, key, err)
	}
	return nil
}
