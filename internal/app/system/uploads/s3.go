// internal/app/system/uploads/s3.go

// Package uploads stores content attachments in object storage. The
// workflow depends only on the Uploader interface; S3 is the production
// implementation.
package uploads

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Uploader stores one file and returns its public URL. Failures surface
// to callers as a generic upload error; the cause is logged server-side.
type Uploader interface {
	Upload(ctx context.Context, filename, mimetype, contextTag string, body io.Reader) (string, error)
}

// S3Config holds S3 client configuration.
type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
}

// S3 uploads files to a bucket using the concurrent multipart manager.
type S3 struct {
	uploader *manager.Uploader
	cfg      S3Config
	log      *zap.Logger
}

// NewS3 creates the S3 uploader. Explicit credentials take precedence;
// otherwise the default provider chain applies.
func NewS3(ctx context.Context, cfg S3Config, logger *zap.Logger) (*S3, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	} else {
		logger.Warn("S3 uploader using default credential chain")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	return &S3{
		uploader: manager.NewUploader(client),
		cfg:      cfg,
		log:      logger,
	}, nil
}

// Upload stores the file under a generated key and returns its URL.
// The key embeds the context tag (club/node id or kind), the date, and a
// random component so names never collide.
func (s *S3) Upload(ctx context.Context, filename, mimetype, contextTag string, body io.Reader) (string, error) {
	key := path.Join(s.cfg.Prefix, contextTag,
		time.Now().UTC().Format("2006/01/02"),
		uuid.New().String()+path.Ext(filename))

	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(mimetype),
	})
	if err != nil {
		s.log.Error("s3 upload failed",
			zap.String("key", key),
			zap.String("filename", filename),
			zap.Error(err))
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	return out.Location, nil
}
