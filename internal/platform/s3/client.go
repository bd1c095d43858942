// Package s3 provides a client for S3-compatible object storage, where the
// deployment manager keeps rendered configuration artifacts.
package s3

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client wraps an S3 bucket holding rendered artifacts.
type Client struct {
	s3     *s3.Client
	bucket string
}

// NewClient creates a client for the given bucket on an S3-compatible
// endpoint.
func NewClient(endpoint, region, accessKey, secretKey, bucket string) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &Client{s3: client, bucket: bucket}, nil
}

// DeleteAll removes every object under prefix. Listing failures abort; a
// failed single-object delete is logged and the sweep continues, then the
// count of failures is reported as one error.
func (c *Client) DeleteAll(ctx context.Context, prefix string) error {
	paginator := s3.NewListObjectsV2Paginator(c.s3, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix),
	})

	failed := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list objects under %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(c.bucket),
				Key:    obj.Key,
			})
			if err != nil {
				log.Printf("[Blobstore] Warning: failed to delete %s: %v", aws.ToString(obj.Key), err)
				failed++
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to delete %d objects under %s", failed, prefix)
	}
	return nil
}
