package store

import (
	"github.com/saadjs/fitlog/internal/codec"
	"github.com/saadjs/fitlog/internal/model"
)

var conversations = collection[model.AIConversation]{
	slot:   SlotConversations,
	decode: codec.DecodeConversations,
	encode: codec.EncodeConversations,
	id:     func(c model.AIConversation) string { return c.ID },
}

func (s *Store) Conversations() ([]model.AIConversation, error) {
	return conversations.all(s)
}

func (s *Store) Conversation(id string) (model.AIConversation, error) {
	return conversations.find(s, id)
}

func (s *Store) UpsertConversation(c model.AIConversation) error {
	return conversations.upsert(s, c)
}

func (s *Store) DeleteConversation(id string) error {
	return conversations.remove(s, id)
}
