package repository

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/shinyyama/message-board/internal/model"
)

type gcsRepository struct {
	client *storage.Client
	bucket string
	object string
}

// NewGCSRepository stores the collection as one JSON object in a bucket.
func NewGCSRepository(client *storage.Client, bucket, object string) MessageRepository {
	return &gcsRepository{client: client, bucket: bucket, object: object}
}

func (r *gcsRepository) LoadAll(ctx context.Context) ([]model.Message, error) {
	rc, err := r.client.Bucket(r.bucket).Object(r.object).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		if err := r.SaveAll(ctx, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open gs://%s/%s: %w", r.bucket, r.object, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read gs://%s/%s: %w", r.bucket, r.object, err)
	}
	msgs, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("decode gs://%s/%s: %w", r.bucket, r.object, err)
	}
	return msgs, nil
}

func (r *gcsRepository) SaveAll(ctx context.Context, msgs []model.Message) error {
	data, err := encodeDocument(msgs)
	if err != nil {
		return err
	}
	w := r.client.Bucket(r.bucket).Object(r.object).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write gs://%s/%s: %w", r.bucket, r.object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close gs://%s/%s: %w", r.bucket, r.object, err)
	}
	return nil
}
