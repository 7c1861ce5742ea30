// internal/services/storage_service_test.go
package services

import (
	"context"
	"encoding/base64"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packscan/packscan-backend/internal/config"
)

type fakeS3 struct {
	s3iface.S3API
	puts    []*s3.PutObjectInput
	bodies  [][]byte
	deletes []string
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.puts = append(f.puts, input)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjectWithContext(ctx aws.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, aws.StringValue(input.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestStorePhotosInlineWithoutS3(t *testing.T) {
	storage, err := NewStorageService(config.AWSConfig{})
	require.NoError(t, err)

	photos := []string{"data:image/png;base64,AAAA", "https://cdn.example.com/a.jpg"}
	stored, err := storage.StorePhotos(context.Background(), photos)

	require.NoError(t, err)
	assert.Equal(t, photos, stored)
	assert.NoError(t, storage.DeletePhotos(context.Background(), stored))
}

func TestStorePhotosUploadsDataURLs(t *testing.T) {
	client := &fakeS3{}
	storage := NewStorageServiceWithClient(client, config.AWSConfig{Region: "sa-east-1", S3Bucket: "packscan-photos"})
	storage.now = func() time.Time { return time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC) }

	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	stored, err := storage.StorePhotos(context.Background(), []string{
		"data:image/png;base64," + payload,
		"https://cdn.example.com/kept.jpg",
	})

	require.NoError(t, err)
	require.Len(t, client.puts, 1)
	put := client.puts[0]
	assert.Equal(t, "packscan-photos", aws.StringValue(put.Bucket))
	assert.Equal(t, "image/png", aws.StringValue(put.ContentType))
	assert.Regexp(t, `^entries/20260307_[0-9a-f]{16}\.png$`, aws.StringValue(put.Key))
	assert.Equal(t, []byte("png-bytes"), client.bodies[0])

	require.Len(t, stored, 2)
	assert.Equal(t, "https://packscan-photos.s3.sa-east-1.amazonaws.com/"+aws.StringValue(put.Key), stored[0])
	assert.Equal(t, "https://cdn.example.com/kept.jpg", stored[1])

	require.NoError(t, storage.DeletePhotos(context.Background(), stored))
	assert.Equal(t, []string{aws.StringValue(put.Key)}, client.deletes)
}

func TestStorePhotosRejectsBadPayload(t *testing.T) {
	storage := NewStorageServiceWithClient(&fakeS3{}, config.AWSConfig{S3Bucket: "b"})

	_, err := storage.StorePhotos(context.Background(), []string{"data:image/jpeg;base64,%%%"})
	assert.Error(t, err)
}

func TestObjectURLUsesCloudFront(t *testing.T) {
	storage := NewStorageServiceWithClient(&fakeS3{}, config.AWSConfig{CloudFrontURL: "https://cdn.packscan.pro/"})
	assert.Equal(t, "https://cdn.packscan.pro/entries/a.jpg", storage.getS3URL("entries/a.jpg"))
}
