package blobstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Options configures the S3-compatible backend.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	UseSSL    bool
}

// MinioStore implements Store against any S3-compatible object store.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinio creates an S3-compatible blob store client. Credentials are
// static; they are read once at process start and never rotated.
func NewMinio(opts Options) (*MinioStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Region: opts.Region,
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client: %w", err)
	}
	return &MinioStore{client: client, bucket: opts.Bucket}, nil
}

// Get retrieves and validates a stored JSON document.
func (s *MinioStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.getError(err, key)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.getError(err, key)
	}
	if !json.Valid(data) {
		return nil, &StoreError{
			Message: "could not retrieve and/or parse document: not valid JSON",
			Bucket:  s.bucket,
			Key:     key,
		}
	}
	return json.RawMessage(data), nil
}

func (s *MinioStore) getError(err error, key string) *StoreError {
	return &StoreError{
		Message: fmt.Sprintf("could not retrieve and/or parse document: %v", err),
		Bucket:  s.bucket,
		Key:     key,
	}
}

// Put stores a document as application/json. Failures propagate.
func (s *MinioStore) Put(ctx context.Context, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document for %s: %w", key, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return &StoreError{
			Message: fmt.Sprintf("could not save document: %v", err),
			Bucket:  s.bucket,
			Key:     key,
		}
	}
	return nil
}

// List returns all object keys under the prefix.
func (s *MinioStore) List(ctx context.Context, prefix string) (*Listing, error) {
	listing := &Listing{Entries: []Entry{}}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, &StoreError{
				Message: fmt.Sprintf("could not retrieve document list: %v", obj.Err),
				Bucket:  s.bucket,
				Key:     prefix,
			}
		}
		listing.Entries = append(listing.Entries, Entry{Key: obj.Key})
	}
	listing.MatchCount = len(listing.Entries)
	return listing, nil
}
