package connectors

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/configs"
)

// StorageConnector abstracts the blob store holding recorded audio. The
// production implementation targets any S3-compatible endpoint.
type StorageConnector interface {
	Upload(ctx context.Context, path string, body []byte, contentType string) error
	Download(ctx context.Context, path string) ([]byte, error)
	PublicURL(path string) string
	SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
	Remove(ctx context.Context, path string) error
}

type s3Connector struct {
	client       *s3.Client
	uploader     *manager.Uploader
	downloader   *manager.Downloader
	presigner    *s3.PresignClient
	bucket       string
	publicPrefix string
	logger       commons.Logger
}

// NewStorageConnector builds an S3-backed storage connector from cfg.
func NewStorageConnector(ctx context.Context, cfg configs.AssetStoreConfig, logger commons.Logger) (StorageConnector, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage credentials: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicPrefix := cfg.PublicPrefix
	if publicPrefix == "" {
		publicPrefix = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	logger.Infof("storage connector ready: bucket=%s region=%s", cfg.Bucket, cfg.Region)
	return &s3Connector{
		client:       client,
		uploader:     manager.NewUploader(client),
		downloader:   manager.NewDownloader(client),
		presigner:    s3.NewPresignClient(client),
		bucket:       cfg.Bucket,
		publicPrefix: strings.TrimSuffix(publicPrefix, "/"),
		logger:       logger,
	}, nil
}

func (s *s3Connector) Upload(ctx context.Context, path string, body []byte, contentType string) error {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return nil
}

func (s *s3Connector) Download(ctx context.Context, path string) ([]byte, error) {
	buf := manager.NewWriteAtBuffer(nil)
	_, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", path, err)
	}
	return buf.Bytes(), nil
}

func (s *s3Connector) PublicURL(path string) string {
	return s.publicPrefix + "/" + strings.TrimPrefix(path, "/")
}

func (s *s3Connector) SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to sign url for %s: %w", path, err)
	}
	return req.URL, nil
}

func (s *s3Connector) Remove(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
