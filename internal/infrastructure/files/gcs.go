package files

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"dastarkhan/internal/domain/images"
)

var _ images.Store = (*GCSStore)(nil)

// GCSStore keeps files as objects of one bucket, named by their reference.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore creates a client. With an empty credentialsFile the default
// application credentials are used.
func NewGCSStore(ctx context.Context, bucket, credentialsFile string) (*GCSStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("GCS bucket is not set")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

// Save uploads data to the object named ref.
func (s *GCSStore) Save(ctx context.Context, ref string, data []byte) error {
	name, err := cleanRef(ref)
	if err != nil {
		return err
	}

	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = http.DetectContentType(data)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("upload %s: %w", ref, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", ref, err)
	}
	return nil
}

// Delete removes the object named ref. A missing object is not an error.
func (s *GCSStore) Delete(ctx context.Context, ref string) error {
	name, err := cleanRef(ref)
	if err != nil {
		return err
	}
	if err := s.client.Bucket(s.bucket).Object(name).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete %s: %w", ref, err)
	}
	return nil
}

// URL returns the public address of ref.
func (s *GCSStore) URL(ref string) string {
	if ref == "" {
		return ""
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, ref)
}

// Close releases the client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
