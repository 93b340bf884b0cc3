package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client is the S3 surface the publisher uses. *s3.Client satisfies it.
type Client interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Publisher uploads a site to an S3 bucket and prunes objects under
// its prefix that are no longer part of the published set.
type S3Publisher struct {
	client Client
	bucket string
	prefix string
	logger *slog.Logger
}

// NewS3Publisher creates a publisher over an existing client. The prefix
// scopes both uploads and pruning; empty publishes at the bucket root.
func NewS3Publisher(client Client, bucket, prefix string, logger *slog.Logger) (*S3Publisher, error) {
	if client == nil {
		return nil, errors.New("publish: nil s3 client")
	}
	if bucket == "" {
		return nil, errors.New("publish: empty bucket")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		prefix += "/"
	}
	return &S3Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger.With("component", "publish"),
	}, nil
}

// NewS3PublisherFromEnv builds the client from the region and static
// environment credentials. It avoids the SDK's config loader module;
// the two SDK modules already present cover everything the publisher
// needs.
func NewS3PublisherFromEnv(bucket, prefix, region string, logger *slog.Logger) (*S3Publisher, error) {
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		return nil, errors.New("publish: no region configured and AWS_REGION not set")
	}

	client := s3.New(s3.Options{
		Region:      region,
		Credentials: envCredentials(),
	})
	return NewS3Publisher(client, bucket, prefix, logger)
}

// envCredentials resolves static credentials from the environment at
// request time, so a publisher can be constructed before they are set.
func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		id := os.Getenv("AWS_ACCESS_KEY_ID")
		secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
		if id == "" || secret == "" {
			return aws.Credentials{}, errors.New("publish: AWS credentials not set in environment")
		}
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "environment",
		}, nil
	})
}

// Publish uploads every item, then prunes stale objects under the
// prefix.
func (p *S3Publisher) Publish(ctx context.Context, items []Item) error {
	keep := make(map[string]bool, len(items))
	for _, item := range items {
		key := p.prefix + item.Path
		_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(p.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(item.Body),
			ContentType: aws.String(item.ContentType),
		})
		if err != nil {
			return fmt.Errorf("publish: put %s: %w", key, err)
		}
		keep[key] = true
		p.logger.Debug("uploaded object", "key", key, "bytes", len(item.Body))
	}

	pruned, err := p.pruneStale(ctx, keep)
	if err != nil {
		return err
	}
	p.logger.Info("site published", "bucket", p.bucket, "objects", len(items), "pruned", pruned)
	return nil
}

// pruneStale lists everything under the prefix and deletes keys that are
// not part of the current set.
func (p *S3Publisher) pruneStale(ctx context.Context, keep map[string]bool) (int, error) {
	paginator := s3.NewListObjectsV2Paginator(p.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(p.bucket),
		Prefix: aws.String(p.prefix),
	})

	var stale []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("publish: list objects: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil || keep[*obj.Key] {
				continue
			}
			stale = append(stale, *obj.Key)
		}
	}

	for _, key := range stale {
		_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(p.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return 0, fmt.Errorf("publish: delete %s: %w", key, err)
		}
	}
	return len(stale), nil
}
