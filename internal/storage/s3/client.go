package s3

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"

	"escolta/internal/config"
)

// deleteBatchLimit is the per-request cap of the DeleteObjects API.
const deleteBatchLimit = 1000

type Object struct {
	Key          string
	LastModified time.Time
}

// Client wraps the subset of the S3 API the service relies on: public-read
// uploads, deletes, bucket listing and presigned PUT/GET issuance.
type Client struct {
	api            *awss3.S3
	bucket         string
	region         string
	uploadExpiry   time.Duration
	downloadExpiry time.Duration
}

func New(cfg config.S3Config) (*Client, error) {
	const op = "storage.s3.New"

	awsCfg := aws.NewConfig().WithRegion(cfg.Region)
	if cfg.AccessKeyID != "" {
		awsCfg = awsCfg.WithCredentials(
			credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		)
	}
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Client{
		api:            awss3.New(sess),
		bucket:         cfg.Bucket,
		region:         cfg.Region,
		uploadExpiry:   cfg.UploadExpiry,
		downloadExpiry: cfg.DownloadExpiry,
	}, nil
}

func (c *Client) Bucket() string { return c.bucket }
func (c *Client) Region() string { return c.region }

// Upload writes body under key with a public-read ACL and returns the
// public URL.
func (c *Client) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	const op = "storage.s3.Upload"

	_, err := c.api.PutObjectWithContext(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         aws.String(awss3.ObjectCannedACLPublicRead),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return c.PublicURL(key), nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	const op = "storage.s3.Delete"

	_, err := c.api.DeleteObjectWithContext(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteBatch removes keys in chunks of at most 1000 objects per request.
func (c *Client) DeleteBatch(ctx context.Context, keys []string) error {
	const op = "storage.s3.DeleteBatch"

	for len(keys) > 0 {
		n := len(keys)
		if n > deleteBatchLimit {
			n = deleteBatchLimit
		}

		objects := make([]*awss3.ObjectIdentifier, 0, n)
		for _, key := range keys[:n] {
			objects = append(objects, &awss3.ObjectIdentifier{Key: aws.String(key)})
		}

		_, err := c.api.DeleteObjectsWithContext(ctx, &awss3.DeleteObjectsInput{
			Bucket: aws.String(c.bucket),
			Delete: &awss3.Delete{
				Objects: objects,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		keys = keys[n:]
	}

	return nil
}

// ListAll walks the whole bucket and returns every object key with its
// last-modified timestamp.
func (c *Client) ListAll(ctx context.Context) ([]Object, error) {
	const op = "storage.s3.ListAll"

	var objects []Object
	err := c.api.ListObjectsV2PagesWithContext(ctx, &awss3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
	}, func(page *awss3.ListObjectsV2Output, lastPage bool) bool {
		for _, obj := range page.Contents {
			objects = append(objects, Object{
				Key:          aws.StringValue(obj.Key),
				LastModified: aws.TimeValue(obj.LastModified),
			})
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return objects, nil
}

// PresignPut issues a time-boxed signed PUT URL for a direct client upload.
func (c *Client) PresignPut(key, contentType string) (string, error) {
	const op = "storage.s3.PresignPut"

	req, _ := c.api.PutObjectRequest(&awss3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})

	url, err := req.Presign(c.uploadExpiry)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return url, nil
}

// PresignGet issues a signed download URL, expiring after the configured
// download window.
func (c *Client) PresignGet(key string) (string, error) {
	const op = "storage.s3.PresignGet"

	req, _ := c.api.GetObjectRequest(&awss3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(c.downloadExpiry)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return url, nil
}

// PublicURL builds the virtual-hosted-style URL for a key.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}
