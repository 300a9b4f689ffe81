package bootstrap

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"gellies-store/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenUploads_Local(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	cfg := &config.Config{Upload: config.UploadConfig{
		Driver:    config.UploadLocal,
		Dir:       dir,
		URLPrefix: "/uploads",
	}}

	uploads, err := OpenUploads(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, dir, uploads.ServeDir)

	ref, err := uploads.Save(context.Background(), "a.png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/"))
}

func TestOpenUploads_S3(t *testing.T) {
	cfg := &config.Config{
		Upload: config.UploadConfig{Driver: config.UploadS3, Dir: t.TempDir(), URLPrefix: "/uploads"},
		S3: config.S3Config{
			Bucket:          "gellies",
			Region:          "us-east-1",
			Prefix:          "uploads/",
			Endpoint:        "http://localhost:9000",
			AccessKeyID:     "minio",
			SecretAccessKey: "minio123",
		},
	}

	uploads, err := OpenUploads(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	// objects are not served from local disk
	assert.Empty(t, uploads.ServeDir)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "sqlite"}}

	_, err := OpenStore(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store driver")
}
