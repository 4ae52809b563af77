package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client talks to an S3-compatible endpoint (Cloudflare R2).
// Two logical buckets: one for images, one for documents (menu PDFs).
type Client struct {
	client  *s3.Client
	baseURL string

	ImageBucket    string
	DocumentBucket string
}

func NewR2Client(ctx context.Context) (*Client, error) {
	endpoint := os.Getenv("R2_ENDPOINT")
	accessKey := os.Getenv("R2_ACCESS_KEY")
	secretKey := os.Getenv("R2_SECRET_KEY")
	baseURL := os.Getenv("R2_PUBLIC_BASE_URL")

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				accessKey,
				secretKey,
				"",
			),
		),
		config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(
				func(service, region string, options ...interface{}) (aws.Endpoint, error) {
					if service == s3.ServiceID {
						return aws.Endpoint{
							URL:           endpoint,
							SigningRegion: "auto",
						}, nil
					}
					return aws.Endpoint{}, &aws.EndpointNotFoundError{}
				},
			),
		),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		client:         s3.NewFromConfig(cfg),
		baseURL:        baseURL,
		ImageBucket:    os.Getenv("R2_IMAGE_BUCKET"),
		DocumentBucket: os.Getenv("R2_DOCUMENT_BUCKET"),
	}, nil
}

// Upload stores body under bucket/key and returns the public URL.
func (c *Client) Upload(
	ctx context.Context,
	bucket string,
	key string,
	body io.Reader,
	contentType string,
) (string, error) {

	input := &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = &contentType
	}

	if _, err := c.client.PutObject(ctx, input); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", c.baseURL, bucket, key), nil
}

// Delete removes an object. Used by the orphan cleanup worker after
// a failed persist left staged uploads behind.
func (c *Client) Delete(ctx context.Context, bucket, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	return err
}
