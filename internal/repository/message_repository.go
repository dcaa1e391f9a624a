package repository

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/shinyyama/message-board/internal/model"
)

// MessageRepository owns the canonical message collection. There are no
// partial updates: callers load everything, mutate in memory and save
// everything back.
type MessageRepository interface {
	LoadAll(ctx context.Context) ([]model.Message, error)
	SaveAll(ctx context.Context, msgs []model.Message) error
}

type document struct {
	Messages []model.Message `json:"messages"`
}

// decodeDocument accepts both the {"messages": [...]} wrapper and a bare array.
func decodeDocument(data []byte) ([]model.Message, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var msgs []model.Message
		if err := json.Unmarshal(data, &msgs); err != nil {
			return nil, err
		}
		return msgs, nil
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Messages, nil
}

func encodeDocument(msgs []model.Message) ([]byte, error) {
	if msgs == nil {
		msgs = []model.Message{}
	}
	return json.MarshalIndent(document{Messages: msgs}, "", "  ")
}

func cloneMessages(msgs []model.Message) []model.Message {
	if msgs == nil {
		return nil
	}
	out := make([]model.Message, len(msgs))
	for i, m := range msgs {
		if m.Reply != nil {
			m.Reply = append(model.Replies(nil), m.Reply...)
		}
		out[i] = m
	}
	return out
}
