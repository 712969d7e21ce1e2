package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrInvalidS3URI = errors.New("invalid s3 uri")

// ObjectGetter is the subset of *s3.Client used here.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Options selects the S3 store behind s3:// image URIs.
type S3Options struct {
	Region   string
	Endpoint string
	// AccessKey and SecretKey, when both set, replace the default AWS
	// credential chain (MinIO root user and password, for example).
	AccessKey string
	SecretKey string
}

// NewS3Factory returns an S3Factory for opts. A non-empty Endpoint targets
// an S3-compatible store with path-style addressing.
func NewS3Factory(opts S3Options) S3Factory {
	return func(ctx context.Context) (ObjectGetter, error) {
		load := []func(*config.LoadOptions) error{}
		if opts.Region != "" {
			load = append(load, config.WithRegion(opts.Region))
		}
		if opts.AccessKey != "" && opts.SecretKey != "" {
			load = append(load, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
			))
		}
		cfg, err := config.LoadDefaultConfig(ctx, load...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return s3.NewFromConfig(cfg, func(o *s3.Options) {
			if opts.Endpoint != "" {
				o.BaseEndpoint = aws.String(opts.Endpoint)
				o.UsePathStyle = true
			}
		}), nil
	}
}

// ParseS3URI splits s3://bucket/key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil || !strings.EqualFold(u.Scheme, "s3") {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidS3URI, uri)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidS3URI, uri)
	}
	return bucket, key, nil
}

// GetS3Object returns the body of bucket/key.
func GetS3Object(ctx context.Context, g ObjectGetter, bucket, key string) (io.ReadCloser, error) {
	out, err := g.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	return out.Body, nil
}
