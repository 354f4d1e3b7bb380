package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// ResultSink uploads compressed outputs to an S3 bucket. Large PDFs go
// through the multipart upload manager.
type ResultSink struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// NewResultSink creates an S3-backed result sink using the default AWS
// credential chain.
func NewResultSink(ctx context.Context, bucket, prefix string) (*ResultSink, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	cli := s3.NewFromConfig(cfg)
	return &ResultSink{
		uploader: manager.NewUploader(cli),
		bucket:   bucket,
		prefix:   prefix,
	}, nil
}

// Upload stores the file at localPath under <prefix>/<basename> and returns
// the object URL.
func (s *ResultSink) Upload(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	key := path.Join(s.prefix, filepath.Base(localPath))
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	url := fmt.Sprintf("s3://%s/%s", s.bucket, key)
	log.Info().Str("file", localPath).Str("url", url).Msg("uploaded compressed output")
	return url, nil
}
