// Package imagesource reads the timecard image the user selects, either from
// the local filesystem or from an S3-compatible bucket (s3://bucket/key).
package imagesource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophtimecard/internal/rotation"
)

// MaxImageBytes bounds what Open will read.
const MaxImageBytes = 20 << 20

var (
	ErrTooLarge    = errors.New("image exceeds size limit")
	ErrInvalidRef  = errors.New("invalid image reference")
	ErrS3NotConfig = errors.New("s3 is not configured")
)

// S3Config holds settings for the S3-compatible backend. An empty
// BaseEndpoint uses AWS; set it for MinIO and similar stores.
type S3Config struct {
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// test seams
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
)

// Source opens images by reference.
type Source struct {
	cfg S3Config

	once   sync.Once
	getter objectGetter
	err    error
}

func New(cfg S3Config) *Source {
	return &Source{cfg: cfg}
}

// Open loads the image named by ref: a filesystem path or s3://bucket/key.
func (s *Source) Open(ctx context.Context, ref string) (rotation.Image, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return rotation.Image{}, fmt.Errorf("%w: empty", ErrInvalidRef)
	}
	if strings.HasPrefix(ref, "s3://") {
		return s.openS3(ctx, ref)
	}
	return openFile(ref)
}

func openFile(p string) (rotation.Image, error) {
	f, err := os.Open(p)
	if err != nil {
		return rotation.Image{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	data, err := readLimited(f)
	if err != nil {
		return rotation.Image{}, fmt.Errorf("read %s: %w", p, err)
	}
	return rotation.Load(filepath.Base(p), data)
}

// ParseS3Ref splits s3://bucket/key.
func ParseS3Ref(ref string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(ref, "s3://")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return bucket, key, nil
}

func (s *Source) openS3(ctx context.Context, ref string) (rotation.Image, error) {
	bucket, key, err := ParseS3Ref(ref)
	if err != nil {
		return rotation.Image{}, err
	}

	getter, err := s.s3Client(ctx)
	if err != nil {
		return rotation.Image{}, err
	}

	out, err := getter.GetObject(ctx, &s3.GetObjectInput{Bucket: &bucket, Key: &key})
	if err != nil {
		return rotation.Image{}, fmt.Errorf("get %s: %w", ref, err)
	}
	defer out.Body.Close()

	data, err := readLimited(out.Body)
	if err != nil {
		return rotation.Image{}, fmt.Errorf("read %s: %w", ref, err)
	}

	img, err := rotation.Load(path.Base(key), data)
	if err != nil {
		return rotation.Image{}, err
	}
	if ct := aws.ToString(out.ContentType); img.MIMEType == "" && strings.HasPrefix(ct, "image/") {
		img.MIMEType = ct
	}
	return img, nil
}

func (s *Source) s3Client(ctx context.Context) (objectGetter, error) {
	s.once.Do(func() {
		if s.getter != nil {
			return
		}
		s.getter, s.err = newS3Client(ctx, s.cfg)
	})
	return s.getter, s.err
}

func newS3Client(ctx context.Context, c S3Config) (*s3.Client, error) {
	if c.Region == "" {
		return nil, ErrS3NotConfig
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(c.Region)}
	if c.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxImageBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}
