package s3_test

import (
	"testing"
	"time"

	"escolta/internal/config"
	"escolta/internal/storage"
	"escolta/internal/storage/s3"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromURL_VirtualHostedStyle(t *testing.T) {
	v := s3.NewURLValidator("escolta-media", "us-east-1")

	key, err := v.KeyFromURL("https://escolta-media.s3.us-east-1.amazonaws.com/shields/abc123.jpg")
	require.NoError(t, err)
	assert.Equal(t, "shields/abc123.jpg", key)
}

func TestKeyFromURL_PathStyle(t *testing.T) {
	v := s3.NewURLValidator("escolta-media", "us-east-1")

	key, err := v.KeyFromURL("https://s3.us-east-1.amazonaws.com/escolta-media/gallery/xyz.png")
	require.NoError(t, err)
	assert.Equal(t, "gallery/xyz.png", key)
}

func TestKeyFromURL_Rejections(t *testing.T) {
	v := s3.NewURLValidator("escolta-media", "us-east-1")

	tests := []struct {
		name string
		url  string
	}{
		{"http scheme", "http://escolta-media.s3.us-east-1.amazonaws.com/shields/a.jpg"},
		{"foreign bucket", "https://other-bucket.s3.us-east-1.amazonaws.com/shields/a.jpg"},
		{"foreign region", "https://escolta-media.s3.eu-west-1.amazonaws.com/shields/a.jpg"},
		{"path style wrong bucket", "https://s3.us-east-1.amazonaws.com/other-bucket/a.jpg"},
		{"unrelated host", "https://evil.example.com/escolta-media/a.jpg"},
		{"traversal segment", "https://escolta-media.s3.us-east-1.amazonaws.com/shields/../secrets"},
		{"empty key", "https://escolta-media.s3.us-east-1.amazonaws.com/"},
		{"leading slash key", "https://escolta-media.s3.us-east-1.amazonaws.com//etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.KeyFromURL(tt.url)
			require.Error(t, err)
			assert.ErrorIs(t, err, storage.ErrUntrustedURL)
		})
	}
}

func TestKeyFromURL_RoundTripWithPublicURL(t *testing.T) {
	client, err := s3.New(config.S3Config{
		Bucket:          "escolta-media",
		Region:          "us-east-1",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		UploadExpiry:    5 * time.Minute,
		DownloadExpiry:  time.Hour,
	})
	require.NoError(t, err)

	v := s3.NewURLValidator(client.Bucket(), client.Region())

	url := client.PublicURL("leadership/1a2b3c.webp")
	key, err := v.KeyFromURL(url)
	require.NoError(t, err)
	assert.Equal(t, "leadership/1a2b3c.webp", key)
}
