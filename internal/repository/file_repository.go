package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shinyyama/message-board/internal/model"
)

type fileRepository struct {
	path string
}

// NewFileRepository stores the collection as one JSON document at path.
func NewFileRepository(path string) MessageRepository {
	return &fileRepository{path: path}
}

func (r *fileRepository) LoadAll(ctx context.Context) ([]model.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := r.SaveAll(ctx, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	msgs, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return msgs, nil
}

func (r *fileRepository) SaveAll(ctx context.Context, msgs []model.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeDocument(msgs)
	if err != nil {
		return err
	}
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".messages-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}
