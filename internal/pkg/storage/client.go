package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
)

// Uploader is the narrow storage contract the rest of the application
// depends on.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string, upsert bool) error
	PublicURL(key string) string
}

// Client wraps the S3 client for document storage
type Client struct {
	s3Client *s3.Client
	config   *Config
}

// NewClient creates a new document storage client
func NewClient(cfg *Config) (*Client, error) {
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			// S3-compatible services need path-style URLs
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	client := &Client{
		s3Client: s3Client,
		config:   cfg,
	}

	log.Infof("[Storage] Initialized S3 client for bucket: %s", cfg.BucketName)
	return client, nil
}

// Upload stores the bytes under the given object key. With upsert=false
// an existing object is preserved (If-None-Match conditional write).
func (c *Client) Upload(ctx context.Context, key string, data []byte, contentType string, upsert bool) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(c.config.BucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if !upsert {
		input.IfNoneMatch = aws.String("*")
	}

	if _, err := c.s3Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Debugf("[Storage] Uploaded %s (%d bytes)", key, len(data))
	return nil
}

// PublicURL returns the public URL an uploaded object is served from.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", c.config.PublicBaseURL, key)
}
