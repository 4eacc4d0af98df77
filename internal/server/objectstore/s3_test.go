package objectstore

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubAWS(t *testing.T) *s3.Options {
	t.Helper()

	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	origPut, origPresign := putObject, presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew
		putObject, presignGetObject = origPut, origPresign
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-central-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		return aws.Config{Region: lo.Region, Credentials: lo.Credentials}, nil
	}

	captured := &s3.Options{}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(captured)
		}
		return s3.NewFromConfig(cfg, optFns...)
	}
	return captured
}

func newStore(t *testing.T, endpoint string) *S3Store {
	t.Helper()
	s, err := NewS3Store(context.Background(), Options{
		Region:       "eu-central-1",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		Bucket:       "exports",
		BaseEndpoint: endpoint,
	})
	require.NoError(t, err)
	return s
}

func TestNewS3Store_PathStyleForCustomEndpoint(t *testing.T) {
	opts := stubAWS(t)
	newStore(t, "http://127.0.0.1:9000")

	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestNewS3Store_DefaultEndpoint(t *testing.T) {
	opts := stubAWS(t)
	newStore(t, "")

	assert.Nil(t, opts.BaseEndpoint)
	assert.False(t, opts.UsePathStyle)
}

func TestNewS3Store_LoadError(t *testing.T) {
	stubAWS(t)
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, err := NewS3Store(context.Background(), Options{Region: "eu-central-1"})
	require.EqualError(t, err, "load-fail")
}

func TestPut(t *testing.T) {
	stubAWS(t)
	s := newStore(t, "http://127.0.0.1:9000")

	var got *s3.PutObjectInput
	var body []byte
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		got = in
		b, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		body = b
		return &s3.PutObjectOutput{}, nil
	}

	require.NoError(t, s.Put(context.Background(), "exports/u1/x.json", "application/json", []byte(`{"a":1}`)))

	assert.Equal(t, "exports", aws.ToString(got.Bucket))
	assert.Equal(t, "exports/u1/x.json", aws.ToString(got.Key))
	assert.Equal(t, "application/json", aws.ToString(got.ContentType))
	assert.Equal(t, int64(7), aws.ToInt64(got.ContentLength))
	assert.Equal(t, `{"a":1}`, string(body))

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("denied")
	}
	err := s.Put(context.Background(), "k", "application/json", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied")
}

func TestPresignGet(t *testing.T) {
	stubAWS(t)
	s := newStore(t, "http://127.0.0.1:9000")

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		assert.Equal(t, 15*time.Minute, po.Expires)
		assert.Equal(t, "exports", aws.ToString(in.Bucket))
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/exports/" + aws.ToString(in.Key) + "?X-Amz-Signature=abc"}, nil
	}

	url, err := s.PresignGet(context.Background(), "k.json", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/exports/k.json?X-Amz-Signature=abc", url)

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-fail")
	}
	_, err = s.PresignGet(context.Background(), "k.json", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "presign-fail")
}

func TestPresignGet_RealSigner(t *testing.T) {
	stubAWS(t)
	s := newStore(t, "http://127.0.0.1:9000")

	url, err := s.PresignGet(context.Background(), "exports/u1/2025/01/02/a.json", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "http://127.0.0.1:9000/exports/exports/u1/2025/01/02/a.json")
	assert.Contains(t, url, "X-Amz-Expires=900")
}
