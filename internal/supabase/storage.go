package supabase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/Dafin1723/fikri-production/internal/uploads"
	storage "github.com/supabase-community/storage-go"
)

// StorageClient is an uploads.Sink backed by a Supabase Storage bucket.
// Files live under prefix inside the bucket, e.g. "orders/" or "posters/".
type StorageClient struct {
	client *storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

var _ uploads.Sink = (*StorageClient)(nil)

func NewStorageClient(supabaseURL, serviceRoleKey, bucket, prefix string) *StorageClient {
	baseURL := strings.TrimRight(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

func (s *StorageClient) objectPath(storedName string) string {
	if s.prefix == "" {
		return storedName
	}
	return s.prefix + "/" + storedName
}

func (s *StorageClient) Store(ctx context.Context, r io.Reader, originalName string) (string, error) {
	// storage-go takes no context; read the body up front so a cancelled
	// request stops before anything reaches the bucket.
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", originalName, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	storedName := uploads.StoredName(s.now(), originalName)
	contentType := mime.TypeByExtension(path.Ext(storedName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upsert := false

	_, err = s.client.UploadFile(s.bucket, s.objectPath(storedName), bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return storedName, nil
}

// Delete removes the object. The storage API reports success for paths
// that do not exist, which matches the Sink contract.
func (s *StorageClient) Delete(_ context.Context, storedName string) error {
	if err := uploads.ValidateStoredName(storedName); err != nil {
		return err
	}
	if _, err := s.client.RemoveFile(s.bucket, []string{s.objectPath(storedName)}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *StorageClient) Open(_ context.Context, storedName string) (io.ReadCloser, error) {
	if err := uploads.ValidateStoredName(storedName); err != nil {
		return nil, err
	}
	data, err := s.client.DownloadFile(s.bucket, s.objectPath(storedName))
	if isNotFound(err) {
		return nil, fmt.Errorf("%s: %w", storedName, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// isNotFound reports whether err is the storage API's answer for a missing
// object. Depending on the deployment that is a 404 status or a 400 whose
// message reads "Object not found".
func isNotFound(err error) bool {
	var sErr *storage.StorageError
	if !errors.As(err, &sErr) {
		return false
	}
	return sErr.Status == http.StatusNotFound ||
		strings.Contains(strings.ToLower(sErr.Message), "not found")
}
