package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// PresignedUpload is everything a browser needs to PUT one object directly
// into the resource bucket.
type PresignedUpload struct {
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// ObjectStore is the resource-bucket surface the service consumes.
type ObjectStore interface {
	PresignUpload(ctx context.Context, key string, resourceID string) (PresignedUpload, error)
	DeleteImage(ctx context.Context, key string) error
}

type Config struct {
	Region        string
	Bucket        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	UsePathStyle  bool
	UploadExpiry  time.Duration
	MaxUploadSize int64
}

// S3Store talks to S3 (or MinIO through the endpoint override).
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	cfg     Config
}

func NewS3Store(ctx context.Context, cfg Config) (*S3Store, error) {
	if cfg.UploadExpiry <= 0 {
		cfg.UploadExpiry = time.Minute
	}

	var awsCfg aws.Config
	var err error
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
			),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	}
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		cfg:     cfg,
	}, nil
}

// PresignUpload signs a short-lived PUT for the given key, tagging the
// object with the resource id so bucket-side processing can find its row.
func (s *S3Store) PresignUpload(ctx context.Context, key string, resourceID string) (PresignedUpload, error) {
	out, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Metadata: map[string]string{
			"resourceid": resourceID,
		},
	}, s3.WithPresignExpires(s.cfg.UploadExpiry))
	if err != nil {
		return PresignedUpload{}, fmt.Errorf("presign upload: %w", err)
	}

	headers := make(map[string]string, len(out.SignedHeader))
	for name, values := range out.SignedHeader {
		headers[name] = strings.Join(values, ",")
	}

	return PresignedUpload{
		URL:       out.URL,
		Method:    out.Method,
		Headers:   headers,
		ExpiresAt: time.Now().Add(s.cfg.UploadExpiry),
	}, nil
}

// DeleteImage removes the original object and every resized rendition the
// bucket pipeline derives from it.
func (s *S3Store) DeleteImage(ctx context.Context, key string) error {
	base := key
	if idx := strings.LastIndex(key, "."); idx > 0 {
		base = key[:idx]
	}

	keys := []string{
		key,
		"resized/" + base + ".webp",
		"resized/" + base + "_100x100.webp",
		"resized/" + base + "_500x500.webp",
		"resized/" + base + "_1000x1000.webp",
	}

	objects := make([]types.ObjectIdentifier, 0, len(keys))
	for _, k := range keys {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(k)})
	}

	_, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.cfg.Bucket),
		Delete: &types.Delete{
			Objects: objects,
			Quiet:   aws.Bool(true),
		},
	})
	if err != nil {
		return fmt.Errorf("delete image objects: %w", err)
	}

	return nil
}
