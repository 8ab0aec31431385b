package backup

import (
	"context"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"roadworthy/internal/config"
)

// Remote mirrors a finished backup directory to an external target.
// Failures are reported to the caller, which treats them as non-fatal.
type Remote interface {
	// Mirror uploads every regular file in localDir under keyPrefix.
	Mirror(ctx context.Context, localDir, keyPrefix string) error
}

// S3Remote загружает бэкап в S3-совместимое хранилище (MinIO и т.п.).
type S3Remote struct {
	client *s3.Client
	bucket string
}

// NewS3Remote builds the uploader from config, or returns nil when the
// remote target is not configured. A nil *S3Remote is a valid "disabled"
// uploader for the service.
func NewS3Remote(ctx context.Context, cfg *config.Config) (*S3Remote, error) {
	if cfg.S3BaseEndpoint == "" || cfg.S3Bucket == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Remote{client: client, bucket: cfg.S3Bucket}, nil
}

func (r *S3Remote) Mirror(ctx context.Context, localDir, keyPrefix string) error {
	entries, err := os.ReadDir(localDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		f, err := os.Open(filepath.Join(localDir, e.Name()))
		if err != nil {
			return err
		}
		_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(r.bucket),
			Key:    aws.String(keyPrefix + "/" + e.Name()),
			Body:   f,
		})
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
