package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/aither64/haveup"
)

// DefaultRegion is used when neither the profile nor the environment sets one.
const DefaultRegion = "us-east-1"

// PutObjectAPI is the subset of the S3 client used for uploads.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 uploads to s3://bucket/key destinations.
type S3 struct {
	client PutObjectAPI
}

// NewS3WithClient returns an S3 transport using client.
func NewS3WithClient(client PutObjectAPI) *S3 {
	return &S3{client: client}
}

// NewS3 builds an S3 client from the default AWS configuration chain,
// overridden by the region, endpoint and static keys in cfg when set.
// A custom endpoint switches to path-style addressing.
func NewS3(ctx context.Context, cfg Config) (*S3, error) {
	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if awsCfg.Region == "" {
		awsCfg.Region = DefaultRegion
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3WithClient(client), nil
}

// Transfer uploads localPath to destination.
func (t *S3) Transfer(ctx context.Context, localPath, destination string) error {
	bucket, key, err := ParseS3(destination)
	if err != nil {
		return err
	}

	file, err := os.Open(localPath) //#nosec G304 -- path is user-provided input
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	contentType, err := detectContentType(localPath)
	if err != nil {
		return err
	}

	_, err = t.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		if isS3AuthError(err) {
			return fmt.Errorf("%w: put s3://%s/%s: %w", haveup.ErrAuthentication, bucket, key, err)
		}
		return fmt.Errorf("put s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// ParseS3 splits s3://bucket/key into bucket and key.
func ParseS3(destination string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(destination, "s3://")
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidDestination, destination)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	key = strings.TrimPrefix(key, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidDestination, destination)
	}
	return bucket, key, nil
}

func isS3AuthError(err error) bool {
	var re *awshttp.ResponseError
	if !errors.As(err, &re) {
		return false
	}
	code := re.HTTPStatusCode()
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}
