package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"catalog/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
)

// ProductImagePrefix is the key prefix every product image is stored under.
const ProductImagePrefix = "products/"

var ErrDisabled = errors.New("image storage is not configured")

type ImageStore interface {
	Put(ctx context.Context, key string, body io.ReadSeeker, contentType string) error
	URL(key string) string
}

// NewImageKey returns a fresh object key for an uploaded file, keeping its
// extension.
func NewImageKey(filename string) string {
	return ProductImagePrefix + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}

type S3ImageStore struct {
	client   s3iface.S3API
	bucket   string
	endpoint string
}

func NewS3ImageStore(cfg config.S3Config) (*S3ImageStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.Region),
		Endpoint:         aws.String(cfg.Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init s3 session: %w", err)
	}
	return NewS3ImageStoreWithClient(s3.New(sess), cfg.Bucket, cfg.Endpoint), nil
}

func NewS3ImageStoreWithClient(client s3iface.S3API, bucket, endpoint string) *S3ImageStore {
	return &S3ImageStore{
		client:   client,
		bucket:   bucket,
		endpoint: strings.TrimRight(endpoint, "/"),
	}
}

func (s *S3ImageStore) Put(ctx context.Context, key string, body io.ReadSeeker, contentType string) error {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

func (s *S3ImageStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
}

// Disabled rejects uploads; it is used when no bucket is configured.
type Disabled struct{}

func (Disabled) Put(context.Context, string, io.ReadSeeker, string) error {
	return ErrDisabled
}

func (Disabled) URL(string) string {
	return ""
}

// New picks the S3 store when the configuration allows it.
func New(cfg config.S3Config) (ImageStore, error) {
	if !cfg.Enabled() {
		return Disabled{}, nil
	}
	store, err := NewS3ImageStore(cfg)
	if err != nil {
		return nil, err
	}
	return store, nil
}
