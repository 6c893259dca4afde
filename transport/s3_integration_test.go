package transport_test

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/localstack"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aither64/haveup/transport"
)

func startLocalStack(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping LocalStack integration test in short mode")
	}

	ctx := context.Background()
	container, err := localstack.Run(ctx,
		"localstack/localstack:latest",
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/_localstack/health").
				WithPort("4566").
				WithStartupTimeout(2*time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate localstack: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "4566")
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, port.Port())
}

func TestS3_LocalStack(t *testing.T) {
	endpoint := startLocalStack(t)
	ctx := context.Background()

	cfg := transport.Config{
		AccessKey: "test",
		SecretKey: "test",
		Region:    "us-east-1",
		Endpoint:  endpoint,
	}

	setup := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: aws.String(endpoint),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	})
	_, err := setup.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String("media")})
	require.NoError(t, err)

	up, err := transport.NewS3(ctx, cfg)
	require.NoError(t, err)
	r := transport.New(cfg, nil, nil)
	file := writeFile(t, "cat.png", "meow")

	require.NoError(t, up.Transfer(ctx, file, "s3://media/img/cat.png"))
	require.NoError(t, r.Transfer(ctx, file, "s3://media/img/cat.png.md5sum"))

	for _, key := range []string{"img/cat.png", "img/cat.png.md5sum"} {
		out, err := setup.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String("media"), Key: aws.String(key)})
		require.NoError(t, err)
		body, err := io.ReadAll(out.Body)
		_ = out.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, "meow", string(body))
	}
}
