package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/lifetrack/lifetrack-be/internal/config"
	"github.com/lifetrack/lifetrack-be/internal/models"
)

// ErrObjectNotFound is returned when a named object is absent from the
// user's bucket.
var ErrObjectNotFound = errors.New("object not found")

// Client proxies file operations to an external S3-compatible object store.
// Each account gets its own bucket, created on first use. The proxy does no
// validation of file size or content type.
type Client struct {
	mc *minio.Client
}

// New connects to the object store described by cfg.
func New(cfg config.StorageConfig) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &Client{mc: mc}, nil
}

// BucketName derives the per-account bucket name.
func BucketName(userID int64) string {
	return fmt.Sprintf("user-%d", userID)
}

// EnsureBucket creates the account's bucket if it does not exist yet, and
// returns its name.
func (c *Client) EnsureBucket(ctx context.Context, userID int64) (string, error) {
	bucket := BucketName(userID)
	exists, err := c.mc.BucketExists(ctx, bucket)
	if err != nil {
		return "", err
	}
	if !exists {
		if err := c.mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return "", err
		}
	}
	return bucket, nil
}

// Upload streams a file into the account's bucket.
func (c *Client) Upload(ctx context.Context, userID int64, filename string, r io.Reader, size int64, contentType string) error {
	bucket, err := c.EnsureBucket(ctx, userID)
	if err != nil {
		return err
	}
	_, err = c.mc.PutObject(ctx, bucket, filename, r, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

// List returns the objects in the account's bucket.
func (c *Client) List(ctx context.Context, userID int64) ([]models.StoredFile, error) {
	bucket, err := c.EnsureBucket(ctx, userID)
	if err != nil {
		return nil, err
	}

	var files []models.StoredFile
	for obj := range c.mc.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		files = append(files, models.StoredFile{
			Name:         obj.Key,
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			LastModified: obj.LastModified,
		})
	}
	return files, nil
}

// Delete removes one object from the account's bucket. Deleting an absent
// object reports ErrObjectNotFound.
func (c *Client) Delete(ctx context.Context, userID int64, filename string) error {
	bucket := BucketName(userID)
	if _, err := c.mc.StatObject(ctx, bucket, filename, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" || minio.ToErrorResponse(err).Code == "NoSuchBucket" {
			return ErrObjectNotFound
		}
		return err
	}
	return c.mc.RemoveObject(ctx, bucket, filename, minio.RemoveObjectOptions{})
}

// Download opens one object for reading and returns its metadata. The caller
// must close the reader.
func (c *Client) Download(ctx context.Context, userID int64, filename string) (io.ReadCloser, models.StoredFile, error) {
	bucket := BucketName(userID)
	obj, err := c.mc.GetObject(ctx, bucket, filename, minio.GetObjectOptions{})
	if err != nil {
		return nil, models.StoredFile{}, err
	}
	// GetObject is lazy; Stat performs the request and surfaces NoSuchKey.
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" || minio.ToErrorResponse(err).Code == "NoSuchBucket" {
			return nil, models.StoredFile{}, ErrObjectNotFound
		}
		return nil, models.StoredFile{}, err
	}
	return obj, models.StoredFile{
		Name:         info.Key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
	}, nil
}

// SignedURL produces a presigned GET URL for one object.
func (c *Client) SignedURL(ctx context.Context, userID int64, filename string, expiry time.Duration) (string, error) {
	bucket := BucketName(userID)
	u, err := c.mc.PresignedGetObject(ctx, bucket, filename, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
