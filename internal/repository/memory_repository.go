package repository

import (
	"context"
	"sync"

	"github.com/shinyyama/message-board/internal/model"
)

type memoryRepository struct {
	mu   sync.RWMutex
	msgs []model.Message
}

func NewMemoryRepository(seed ...model.Message) MessageRepository {
	return &memoryRepository{msgs: cloneMessages(seed)}
}

func (r *memoryRepository) LoadAll(ctx context.Context) ([]model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneMessages(r.msgs), nil
}

func (r *memoryRepository) SaveAll(ctx context.Context, msgs []model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = cloneMessages(msgs)
	return nil
}
