package blob

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultBucket = "audio-uploads"
	noSuchKeyCode = "NoSuchKey"
)

// ErrObjectExists is returned when the key is already taken. Objects are never overwritten.
var ErrObjectExists = errors.New("object already exists")

type MinioOpts func(c *minioConfig)

type minioConfig struct {
	endpoint        string
	bucket          string
	accessKey       string
	secretAccessKey string
	publicURL       string
	useSSL          bool
}

func newConfig(opts ...MinioOpts) *minioConfig {
	cfg := &minioConfig{
		bucket: defaultBucket,
	}

	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// MinioStore writes audio objects to an S3 compatible bucket and hands out
// their public URL.
type MinioStore struct {
	cfg    *minioConfig
	client *minio.Client
}

func NewMinioStore(opts ...MinioOpts) (*MinioStore, error) {
	cfg := newConfig(opts...)

	client, err := minio.New(cfg.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.accessKey, cfg.secretAccessKey, ""),
		Secure: cfg.useSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating minio client")
	}

	if cfg.publicURL == "" {
		scheme := "http"
		if cfg.useSSL {
			scheme = "https"
		}
		cfg.publicURL = scheme + "://" + cfg.endpoint
	}

	return &MinioStore{cfg: cfg, client: client}, nil
}

// Put uploads the object under key and returns the URL it can be fetched from.
func (s *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if _, err := s.client.StatObject(ctx, s.cfg.bucket, key, minio.StatObjectOptions{}); err == nil {
		return "", errors.Wrapf(ErrObjectExists, "key %s", key)
	} else if minio.ToErrorResponse(err).Code != noSuchKeyCode {
		return "", errors.Wrapf(err, "checking object %s", key)
	}

	info, err := s.client.PutObject(ctx, s.cfg.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrapf(err, "uploading object %s", key)
	}
	zap.S().Named("blob").Debugw("object uploaded", "bucket", info.Bucket, "key", info.Key, "size", info.Size)

	return s.PublicURL(key)
}

// PublicURL returns the URL of key under the configured public base.
func (s *MinioStore) PublicURL(key string) (string, error) {
	u, err := url.JoinPath(strings.TrimRight(s.cfg.publicURL, "/"), s.cfg.bucket, key)
	if err != nil {
		return "", errors.Wrap(err, "building public url")
	}
	return u, nil
}

func (s *MinioStore) Type() string {
	return "minio"
}

func WithEndpoint(endpoint string) MinioOpts {
	return func(c *minioConfig) {
		c.endpoint = endpoint
	}
}

func WithBucket(bucket string) MinioOpts {
	return func(c *minioConfig) {
		if bucket != "" {
			c.bucket = bucket
		}
	}
}

func WithAccessKey(accessKey string) MinioOpts {
	return func(c *minioConfig) {
		c.accessKey = accessKey
	}
}

func WithSecretKey(secretKey string) MinioOpts {
	return func(c *minioConfig) {
		c.secretAccessKey = secretKey
	}
}

func WithSSL(useSSL bool) MinioOpts {
	return func(c *minioConfig) {
		c.useSSL = useSSL
	}
}

func WithPublicURL(publicURL string) MinioOpts {
	return func(c *minioConfig) {
		c.publicURL = publicURL
	}
}
