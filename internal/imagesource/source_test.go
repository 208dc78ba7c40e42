package imagesource

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophtimecard/internal/rotation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

type fakeGetter struct {
	bucket, key string
	body        []byte
	contentType string
	err         error
}

func (f *fakeGetter) GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket, f.key = aws.ToString(in.Bucket), aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(bytes.NewReader(f.body)),
		ContentType: aws.String(f.contentType),
	}, nil
}

func TestOpen_LocalFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "week1.png")
	require.NoError(t, os.WriteFile(p, pngBytes(t, 5, 3), 0o600))

	img, err := New(S3Config{}).Open(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "week1.png", img.Filename)
	assert.Equal(t, rotation.MIMEPNG, img.MIMEType)
	assert.Equal(t, 5, img.Width)
	assert.Equal(t, 3, img.Height)
}

func TestOpen_LocalErrors(t *testing.T) {
	src := New(S3Config{})

	_, err := src.Open(context.Background(), " ")
	require.ErrorIs(t, err, ErrInvalidRef)

	_, err = src.Open(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)

	p := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(p, []byte("not an image"), 0o600))
	_, err = src.Open(context.Background(), p)
	var de *rotation.DecodeError
	require.ErrorAs(t, err, &de)
}

func TestParseS3Ref(t *testing.T) {
	b, k, err := ParseS3Ref("s3://cards/2024/week 1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "cards", b)
	assert.Equal(t, "2024/week 1.jpg", k)

	for _, bad := range []string{"s3://", "s3://bucket", "s3://bucket/", "s3:///key", "http://x/y"} {
		_, _, err := ParseS3Ref(bad)
		require.ErrorIs(t, err, ErrInvalidRef, bad)
	}
}

func TestOpen_S3(t *testing.T) {
	fg := &fakeGetter{body: pngBytes(t, 2, 7), contentType: "image/png"}
	src := New(S3Config{Region: "us-east-1"})
	src.getter = fg

	img, err := src.Open(context.Background(), "s3://cards/scans/week1.png")
	require.NoError(t, err)
	assert.Equal(t, "cards", fg.bucket)
	assert.Equal(t, "scans/week1.png", fg.key)
	assert.Equal(t, "week1.png", img.Filename)
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 7, img.Height)
}

func TestOpen_S3GetError(t *testing.T) {
	src := New(S3Config{Region: "us-east-1"})
	src.getter = &fakeGetter{err: errors.New("NoSuchKey")}

	_, err := src.Open(context.Background(), "s3://cards/missing.png")
	require.ErrorContains(t, err, "NoSuchKey")
}

func TestOpen_S3NotConfigured(t *testing.T) {
	_, err := New(S3Config{}).Open(context.Background(), "s3://cards/a.png")
	require.ErrorIs(t, err, ErrS3NotConfig)
}

func TestNewS3Client_AppliesOptions(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	var lo awsconfig.LoadOptions
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	c, err := newS3Client(context.Background(), S3Config{
		Region:       "eu-central-1",
		BaseEndpoint: "http://127.0.0.1:9000",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
	})
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, "eu-central-1", lo.Region)
	assert.NotNil(t, lo.Credentials)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}
	_, err = newS3Client(context.Background(), S3Config{Region: "us-east-1"})
	require.ErrorContains(t, err, "load-fail")
}

func TestReadLimited(t *testing.T) {
	_, err := readLimited(bytes.NewReader(make([]byte, MaxImageBytes+1)))
	require.ErrorIs(t, err, ErrTooLarge)

	data, err := readLimited(bytes.NewReader([]byte("abc")))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)
}
