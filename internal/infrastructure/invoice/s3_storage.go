package invoice

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradelink/backend/internal/infrastructure/config"
)

// S3Store keeps invoice PDFs in an S3 bucket. It works with any
// S3-compatible backend when an endpoint is configured.
type S3Store struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// NewS3Store builds an S3-backed artifact store from configuration.
// Credentials come from the default AWS provider chain.
func NewS3Store(cfg config.InvoiceConfig, logger *zap.Logger) (*S3Store, error) {
	if cfg.S3Bucket == "" {
		return nil, NewRenderError(ErrCodeStorageFailed, "s3 bucket is required", nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to load AWS configuration", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client: client,
		bucket: cfg.S3Bucket,
		logger: logger,
	}, nil
}

func (s *S3Store) Store(ctx context.Context, sellerID, orderID uuid.UUID, pdfData []byte) (string, error) {
	if sellerID == uuid.Nil || orderID == uuid.Nil {
		return "", NewRenderError(ErrCodeStorageFailed, "seller and order IDs are required", nil)
	}
	if len(pdfData) == 0 {
		return "", NewRenderError(ErrCodeStorageFailed, "PDF data is empty", nil)
	}

	key := path.Join(
		"invoices",
		sellerID.String(),
		fmt.Sprintf("%d", time.Now().Year()),
		orderID.String()+".pdf",
	)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdfData),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to upload invoice to S3", err)
	}

	s.logger.Debug("invoice uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(pdfData)),
	)
	return key, nil
}

func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to fetch invoice from S3", err)
	}
	return out.Body, nil
}

var _ ArtifactStore = (*S3Store)(nil)
