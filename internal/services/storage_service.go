// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/sirupsen/logrus"

	"github.com/packscan/packscan-backend/internal/config"
	"github.com/packscan/packscan-backend/internal/extraction"
	"github.com/packscan/packscan-backend/internal/utils"
)

// PhotoStore persists captured photos and returns the references stored on the entry.
type PhotoStore interface {
	StorePhotos(ctx context.Context, photos []string) ([]string, error)
	DeletePhotos(ctx context.Context, photos []string) error
}

type StorageService struct {
	s3Client s3iface.S3API
	config   config.AWSConfig
	now      func() time.Time
}

func NewStorageService(cfg config.AWSConfig) (*StorageService, error) {
	if cfg.AccessKeyID == "" {
		// Photos stay inline on the entry
		return &StorageService{config: cfg, now: time.Now}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return NewStorageServiceWithClient(s3.New(sess), cfg), nil
}

func NewStorageServiceWithClient(client s3iface.S3API, cfg config.AWSConfig) *StorageService {
	return &StorageService{s3Client: client, config: cfg, now: time.Now}
}

// StorePhotos uploads data-URL photos and replaces them with their object URL. Photos that
// are already URLs are kept, and without S3 every photo is kept inline.
func (s *StorageService) StorePhotos(ctx context.Context, photos []string) ([]string, error) {
	stored := make([]string, 0, len(photos))
	for _, photo := range photos {
		if s.s3Client == nil || !strings.HasPrefix(photo, "data:") {
			stored = append(stored, photo)
			continue
		}

		url, err := s.uploadDataURL(ctx, photo)
		if err != nil {
			return nil, err
		}
		stored = append(stored, url)
	}
	return stored, nil
}

func (s *StorageService) uploadDataURL(ctx context.Context, photo string) (string, error) {
	image := extraction.SplitDataURL(photo)
	body, err := base64.StdEncoding.DecodeString(image.Data)
	if err != nil {
		return "", fmt.Errorf("failed to decode photo: %w", err)
	}

	key := s.objectKey(image)
	_, err = s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(image.MimeType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	logrus.WithFields(logrus.Fields{"key": key, "size": len(body)}).Debug("Photo uploaded")
	return s.getS3URL(key), nil
}

// objectKey is content addressed so a retried upload overwrites the same object.
func (s *StorageService) objectKey(image extraction.InlineImage) string {
	return fmt.Sprintf("entries/%s_%s.%s",
		s.now().Format("20060102"),
		utils.HashString(image.Data)[:16],
		extraction.Extension(image.MimeType),
	)
}

func (s *StorageService) DeleteFile(ctx context.Context, key string) error {
	if s.s3Client == nil {
		return nil
	}

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// DeletePhotos removes the objects behind stored photo URLs; inline photos are skipped.
func (s *StorageService) DeletePhotos(ctx context.Context, photos []string) error {
	prefix := s.getS3URL("")
	for _, photo := range photos {
		if !strings.HasPrefix(photo, prefix) {
			continue
		}
		if err := s.DeleteFile(ctx, strings.TrimPrefix(photo, prefix)); err != nil {
			return err
		}
	}
	return nil
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.config.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.S3Bucket, s.config.Region, key)
}
