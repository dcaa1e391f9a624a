package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type Message struct {
	ID        int64      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Nickname  string     `gorm:"size:64;not null" json:"nickname"`
	Title     string     `gorm:"size:120;not null" json:"title"`
	Email     *string    `gorm:"size:255" json:"email,omitempty"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Likes     int        `gorm:"not null;default:0" json:"likes"`
	Reply     Replies    `gorm:"type:json" json:"reply,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime:false;index" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
	RepliedAt *time.Time `json:"repliedAt,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

// HasReply reports whether an admin has replied at least once.
func (m *Message) HasReply() bool {
	return len(m.Reply) > 0
}

// Replies is the ordered list of admin replies on a message.
// Older documents stored a single string; both shapes decode.
type Replies []string

func (r *Replies) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*r = nil
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*r = nil
		} else {
			*r = Replies{single}
		}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("reply must be a string or a list of strings: %w", err)
	}
	if len(list) == 0 {
		*r = nil
		return nil
	}
	*r = list
	return nil
}

// Value stores replies as a JSON array column.
func (r Replies) Value() (driver.Value, error) {
	if len(r) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]string(r))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *Replies) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*r = nil
		return nil
	case []byte:
		return r.UnmarshalJSON(v)
	case string:
		return r.UnmarshalJSON([]byte(v))
	default:
		return errors.New("unsupported type for replies")
	}
}
