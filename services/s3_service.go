package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/ningi265/quickspin/config"
)

// S3Interface defines the QR archive operations
type S3Interface interface {
	UploadQRImage(key string, png []byte) error
	GetPresignedURL(key string) (string, error)
}

// S3Service archives generated QR code images in S3 so operators can
// re-print a pickup code without regenerating it
type S3Service struct {
	client *s3.Client
	bucket string
}

var s3ServiceInstance S3Interface

// InitS3Service initializes the S3 service with AWS credentials.
// Returns nil without error when no bucket is configured; the QR archive is
// optional and orders work without it.
func InitS3Service() (S3Interface, error) {
	cfg := appConfig.GetConfig()
	if cfg.AWSS3Bucket == "" {
		return nil, nil
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig)

	s3ServiceInstance = &S3Service{
		client: client,
		bucket: cfg.AWSS3Bucket,
	}
	return s3ServiceInstance, nil
}

// GetS3Service returns the active S3 service, or nil when not configured
func GetS3Service() S3Interface {
	return s3ServiceInstance
}

// SetS3Service replaces the active S3 service (used by tests)
func SetS3Service(service S3Interface) {
	s3ServiceInstance = service
}

// UploadQRImage stores a QR PNG under the given key
func (s *S3Service) UploadQRImage(key string, png []byte) error {
	_, err := s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(png),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload QR image to S3: %w", err)
	}
	return nil
}

// GetPresignedURL generates a temporary download URL for an archived QR image
func (s *S3Service) GetPresignedURL(key string) (string, error) {
	presigner := s3.NewPresignClient(s.client)
	req, err := presigner.PresignGetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", fmt.Errorf("failed to presign QR image URL: %w", err)
	}
	return req.URL, nil
}
