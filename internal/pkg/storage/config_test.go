package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("S3_ACCESS_KEY_ID", "key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")
	t.Setenv("S3_BUCKET_NAME", "sintech-docs")
}

func TestLoadConfigRequiredFields(t *testing.T) {
	t.Setenv("S3_ACCESS_KEY_ID", "")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")
	t.Setenv("S3_BUCKET_NAME", "sintech-docs")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_ACCESS_KEY_ID")

	t.Setenv("S3_ACCESS_KEY_ID", "key")
	t.Setenv("S3_BUCKET_NAME", "")
	_, err = LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_BUCKET_NAME")
}

func TestLoadConfigDerivesPublicBaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("S3_REGION", "sa-east-1")
	t.Setenv("S3_ENDPOINT_URL", "")
	t.Setenv("S3_PUBLIC_BASE_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://sintech-docs.s3.sa-east-1.amazonaws.com", cfg.PublicBaseURL)
}

func TestLoadConfigCustomEndpoint(t *testing.T) {
	setRequired(t)
	t.Setenv("S3_ENDPOINT_URL", "https://minio.interno:9000/")
	t.Setenv("S3_PUBLIC_BASE_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://minio.interno:9000/sintech-docs", cfg.PublicBaseURL)
}

func TestLoadConfigExplicitPublicBaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("S3_PUBLIC_BASE_URL", "https://docs.sintech.com.br/")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://docs.sintech.com.br", cfg.PublicBaseURL)
}
