package publish

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"loadmaster/internal/render"
	"loadmaster/internal/services"
	"loadmaster/internal/textutil"
)

const defaultRegion = "us-east-1"

// S3Options configures the s3 driver. Empty keys fall back to the default
// AWS credential chain.
type S3Options struct {
	Bucket          string
	Region          string
	Endpoint        string
	Prefix          string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
	HTTPClient      *http.Client
}

// S3Sink uploads artifacts to a single bucket.
type S3Sink struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Sink loads AWS configuration and builds the client.
func NewS3Sink(ctx context.Context, opts S3Options) (*S3Sink, error) {
	bucket := strings.TrimSpace(opts.Bucket)
	if bucket == "" {
		return nil, services.Wrap(services.ErrConfiguration, "publish", "s3", "bucket required", nil)
	}
	region := strings.TrimSpace(opts.Region)
	if region == "" {
		region = defaultRegion
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "publish", "s3", "load aws config", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = opts.PathStyle
		if endpoint := strings.TrimSpace(opts.Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		if opts.HTTPClient != nil {
			o.HTTPClient = opts.HTTPClient
		}
		// MinIO and other S3-compatible stores reject streaming checksum trailers.
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})
	return &S3Sink{client: client, bucket: bucket, prefix: strings.Trim(opts.Prefix, "/")}, nil
}

func (s *S3Sink) Driver() string { return DriverS3 }

// Key returns the object key used for an artifact name.
func (s *S3Sink) Key(name string) string {
	name = textutil.SanitizeFileName(name)
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Put uploads the artifact and returns its s3:// location.
func (s *S3Sink) Put(ctx context.Context, artifact render.Artifact) (string, error) {
	key := s.Key(artifact.Name)
	if key == "" {
		return "", services.Wrap(services.ErrValidation, "publish", "s3", "artifact name is empty", nil)
	}
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(artifact.Data),
		ContentLength: aws.Int64(int64(len(artifact.Data))),
	}
	if artifact.ContentType != "" {
		input.ContentType = aws.String(artifact.ContentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", services.Wrap(services.ErrExternalService, "publish", "s3", fmt.Sprintf("put %s", key), err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
