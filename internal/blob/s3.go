package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophcloud/internal/config"
	"github.com/dmitrijs2005/gophcloud/internal/logging"
)

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Provider uploads content to an S3-compatible bucket and hands out
// presigned GET URLs as references.
type S3Provider struct {
	bucket    string
	ttl       time.Duration
	objects   objectAPI
	presigner presignAPI
	logger    logging.Logger
	now       func() time.Time
}

func NewS3Provider(ctx context.Context, cfg *config.Config, logger logging.Logger) (*S3Provider, error) {
	bucket := strings.TrimSpace(cfg.S3Bucket)
	if bucket == "" {
		return nil, errors.New("s3 bucket is not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.S3Region)}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Provider(bucket, cfg.S3PresignTTL, client, s3.NewPresignClient(client), logger), nil
}

func newS3Provider(bucket string, ttl time.Duration, objects objectAPI, presigner presignAPI, logger logging.Logger) *S3Provider {
	return &S3Provider{
		bucket:    bucket,
		ttl:       ttl,
		objects:   objects,
		presigner: presigner,
		logger:    logger.With("module", "blob-s3"),
		now:       time.Now,
	}
}

func (s *S3Provider) storageKey(name string) string {
	d := s.now().UTC()
	return fmt.Sprintf("media/%d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), strings.ToLower(filepath.Ext(name)))
}

func (s *S3Provider) CreateReference(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := s.storageKey(name)

	_, err := s.objects.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) { o.Expires = s.ttl })
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}

	s.logger.Debug(ctx, "object stored", "key", key, "bytes", len(data))
	return req.URL, nil
}

// keyFromRef extracts the object key from a presigned URL in either
// path-style or virtual-hosted form. The bucket segment is only part of
// the path when the host does not carry the bucket.
func (s *S3Provider) keyFromRef(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") {
		return "", ErrUnsupported
	}

	p := strings.TrimPrefix(u.Path, "/")
	if !strings.HasPrefix(u.Hostname(), s.bucket+".") {
		p = strings.TrimPrefix(p, s.bucket+"/")
	}
	if p == "" {
		return "", ErrUnsupported
	}
	return p, nil
}

func (s *S3Provider) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	key, err := s.keyFromRef(ref)
	if err != nil {
		return nil, err
	}

	out, err := s.objects.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get object: %w", err)
	}
	return out.Body, nil
}
