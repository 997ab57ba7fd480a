package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"jbfsport-backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Storage stores product images in a Cloudflare R2 (S3-compatible) bucket.
type R2Storage struct {
	client        *s3.Client
	bucketName    string
	publicURL     string
	uploadTimeout time.Duration
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	BucketName      string
	PublicURL       string
	UploadTimeout   time.Duration
}

func NewR2Storage(ctx context.Context, c R2Config) (*R2Storage, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.AccessKeySecret, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID))
		o.UsePathStyle = true
	})

	return &R2Storage{
		client:        client,
		bucketName:    c.BucketName,
		publicURL:     strings.TrimSuffix(c.PublicURL, "/"),
		uploadTimeout: c.UploadTimeout,
	}, nil
}

// ImageKey is the object key of a new product image: products/<uuid><ext>.
func ImageKey(ext string) string {
	return "products/" + utils.GenerateUUID() + strings.ToLower(ext)
}

// UploadImage writes body under a fresh product key and returns its public URL.
func (s *R2Storage) UploadImage(ctx context.Context, body io.Reader, contentType, ext string) (string, error) {
	key := ImageKey(ext)

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	_, err := s.client.PutObject(uploadCtx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucketName),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}

	return s.publicURL + "/" + key, nil
}
