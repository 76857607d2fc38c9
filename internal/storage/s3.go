package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/templui/agencysite/internal/config"
)

// Storage resolves and stores the site's image assets (team photos, client logos).
type Storage interface {
	// Save stores a file at the given path
	Save(ctx context.Context, path string, file io.Reader, contentType string) error

	// URL returns the URL a browser loads the file from
	URL(path string) string
}

// New returns S3 storage when a bucket is configured, otherwise the embedded assets.
func New(c *cfg.Config) (Storage, error) {
	if c.S3Bucket == "" {
		return NewEmbedded("/assets"), nil
	}

	slog.Info("initializing S3 asset storage",
		"bucket", c.S3Bucket,
		"region", c.S3Region,
		"endpoint", c.S3Endpoint,
	)
	return NewS3Storage(context.Background(), S3Config{
		Region:              c.S3Region,
		Bucket:              c.S3Bucket,
		AccessKey:           c.S3AccessKey,
		SecretKey:           c.S3SecretKey,
		Endpoint:            c.S3Endpoint,
		PresignExpiryPublic: c.S3PresignExpiryPublic,
	})
}

// S3Storage implements Storage for S3-compatible storage
// Works with AWS S3, MinIO, DigitalOcean Spaces, Cloudflare R2, etc.
type S3Storage struct {
	client              *s3.Client
	presignClient       *s3.PresignClient
	bucket              string
	publicURL           string
	presignExpiryPublic time.Duration
}

// S3Config holds configuration for S3 storage
type S3Config struct {
	Region              string
	Bucket              string
	AccessKey           string
	SecretKey           string
	Endpoint            string // Optional: for S3-compatible services
	PresignExpiryPublic time.Duration
}

// NewS3Storage creates a new S3 storage instance and makes sure the bucket exists
func NewS3Storage(ctx context.Context, c S3Config) (*S3Storage, error) {
	s, err := newS3Client(ctx, c)
	if err != nil {
		return nil, err
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return s, nil
}

func newS3Client(ctx context.Context, c S3Config) (*S3Storage, error) {
	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(c.Region))

	// Add static credentials if provided
	if c.AccessKey != "" && c.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	publicURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
	if c.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true // Required for MinIO and some S3-compatible services
		})
		publicURL = strings.TrimSuffix(c.Endpoint, "/") + "/" + c.Bucket
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	expiry := c.PresignExpiryPublic
	if expiry <= 0 {
		expiry = 7 * 24 * time.Hour
	}

	return &S3Storage{
		client:              client,
		presignClient:       s3.NewPresignClient(client),
		bucket:              c.Bucket,
		publicURL:           publicURL,
		presignExpiryPublic: expiry,
	}, nil
}

// ensureBucket checks if bucket exists, creates it if not
func (s *S3Storage) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %q does not exist and could not be created: %w", s.bucket, err)
	}

	slog.Info("created S3 bucket", "bucket", s.bucket)
	return nil
}

// Save stores a file in S3
func (s *S3Storage) Save(ctx context.Context, path string, file io.Reader, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(path),
		Body:         file,
		CacheControl: aws.String("public, max-age=86400"),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	_, err := s.client.PutObject(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	return nil
}

// URL returns a presigned GET URL with the public expiry.
// Falls back to the direct object URL if presigning fails.
func (s *S3Storage) URL(path string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.presignExpiryPublic
	})
	if err != nil {
		slog.Warn("presign failed, using direct URL", "path", path, "error", err)
		return s.publicURL + "/" + path
	}
	return req.URL
}
