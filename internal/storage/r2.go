package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"datenight/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	ErrNotConfigured = errors.New("R2 storage is not configured")
	// The S3 endpoint is not browser-facing, so mirrored photos need a
	// public base URL (custom domain or r2.dev).
	ErrNoPublicURL = errors.New("R2_PUBLIC_BASE_URL is required to serve mirrored photos")
)

// R2Client stores mirrored restaurant photos in a Cloudflare R2 bucket
// through the S3 API.
type R2Client struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewR2Client(ctx context.Context, cfg config.R2) (*R2Client, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(cfg.PublicBaseURL) == "" {
		return nil, ErrNoPublicURL
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &R2Client{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload puts body under key and returns its public URL. body should be
// seekable (bytes.Reader) so the request can be signed.
func (r *R2Client) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := r.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return PublicURL(r.baseURL, key), nil
}
