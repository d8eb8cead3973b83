package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sintechbr/sst/internal/pkg/env"
)

// Config holds document storage configuration
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	PublicBaseURL   string // Base URL documents are served from
}

// LoadConfig loads storage configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "us-east-1"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		PublicBaseURL:   env.GetEnv("S3_PUBLIC_BASE_URL", ""),
	}

	if config.AccessKeyID == "" {
		return nil, errors.New("S3_ACCESS_KEY_ID is required")
	}
	if config.SecretAccessKey == "" {
		return nil, errors.New("S3_SECRET_ACCESS_KEY is required")
	}
	if config.BucketName == "" {
		return nil, errors.New("S3_BUCKET_NAME is required")
	}

	if config.PublicBaseURL == "" {
		if config.EndpointURL != "" {
			config.PublicBaseURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(config.EndpointURL, "/"), config.BucketName)
		} else {
			config.PublicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", config.BucketName, config.Region)
		}
	}
	config.PublicBaseURL = strings.TrimSuffix(config.PublicBaseURL, "/")

	return config, nil
}
