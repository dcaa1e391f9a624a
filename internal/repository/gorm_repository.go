package repository

import (
	"context"

	"github.com/shinyyama/message-board/internal/model"
	"gorm.io/gorm"
)

type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository keeps the collection in the messages table. SaveAll
// replaces the table contents inside a single transaction.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Migrate() error {
	return r.db.AutoMigrate(&model.Message{})
}

func (r *GormRepository) LoadAll(ctx context.Context) ([]model.Message, error) {
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *GormRepository) SaveAll(ctx context.Context, msgs []model.Message) error {
	rows := cloneMessages(msgs)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Message{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(&rows, 100).Error
	})
}
