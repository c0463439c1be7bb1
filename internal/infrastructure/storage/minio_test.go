package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"

	"github.com/sanjeetk-dev/videograb-server/internal/domain/repository"
)

// mockMinioClient provides a configurable mock for minioClient.
type mockMinioClient struct {
	bucketExistsFn func(ctx context.Context, bucketName string) (bool, error)
	putObjectFn    func(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

func (m *mockMinioClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	if m.bucketExistsFn != nil {
		return m.bucketExistsFn(ctx, bucketName)
	}
	return true, nil
}

func (m *mockMinioClient) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if m.putObjectFn != nil {
		return m.putObjectFn(ctx, bucketName, objectName, reader, objectSize, opts)
	}
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
}

func TestNewClient_BucketMissing(t *testing.T) {
	mock := &mockMinioClient{
		bucketExistsFn: func(ctx context.Context, bucketName string) (bool, error) {
			return false, nil
		},
	}

	_, err := newClientWithMinioClient(context.Background(), mock, "thumbnails", "https://cdn.example.com/thumbnails")
	if err == nil {
		t.Fatal("expected error for missing bucket")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("error = %v, want bucket existence failure", err)
	}
}

func TestClient_Publish(t *testing.T) {
	var gotKey string
	var gotContentType string
	var gotSize int64

	mock := &mockMinioClient{
		putObjectFn: func(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
			gotKey = objectName
			gotContentType = opts.ContentType
			gotSize = objectSize
			return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
		},
	}

	client, err := newClientWithMinioClient(context.Background(), mock, "thumbnails", "https://cdn.example.com/thumbnails")
	if err != nil {
		t.Fatalf("newClientWithMinioClient failed: %v", err)
	}

	data := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	url, err := client.Publish(context.Background(), "abc.jpg", data, "image/jpeg")
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if url != "https://cdn.example.com/thumbnails/abc.jpg" {
		t.Errorf("url = %v, want https://cdn.example.com/thumbnails/abc.jpg", url)
	}
	if gotKey != "abc.jpg" {
		t.Errorf("key = %v, want abc.jpg", gotKey)
	}
	if gotContentType != "image/jpeg" {
		t.Errorf("content type = %v, want image/jpeg", gotContentType)
	}
	if gotSize != int64(len(data)) {
		t.Errorf("size = %d, want %d", gotSize, len(data))
	}
}

func TestClient_Publish_HostFailure(t *testing.T) {
	mock := &mockMinioClient{
		putObjectFn: func(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
			return minio.UploadInfo{}, errors.New("access denied")
		},
	}

	client, err := newClientWithMinioClient(context.Background(), mock, "thumbnails", "https://cdn.example.com/thumbnails")
	if err != nil {
		t.Fatalf("newClientWithMinioClient failed: %v", err)
	}

	_, err = client.Publish(context.Background(), "abc.jpg", []byte{1}, "image/jpeg")
	if !errors.Is(err, repository.ErrPublishFailed) {
		t.Errorf("Publish error = %v, want ErrPublishFailed", err)
	}
}
