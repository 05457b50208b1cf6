package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

var chatRoles = map[string]bool{"user": true, "assistant": true, "system": true}

var chatContexts = map[string]bool{"general": true, "workout": true, "nutrition": true, "progress": true}

func StartConversation(s *store.Store, context string) (model.AIConversation, error) {
	ctx := normalizeName(context)
	if ctx == "" {
		ctx = "general"
	}
	if !chatContexts[ctx] {
		return model.AIConversation{}, fmt.Errorf("invalid conversation context %q (use general, workout, nutrition or progress)", context)
	}
	now := s.Now()
	c := model.AIConversation{ID: s.NewID(), Context: ctx, Messages: []model.Message{}, CreatedAt: now, UpdatedAt: now}
	if err := s.UpsertConversation(c); err != nil {
		return model.AIConversation{}, fmt.Errorf("start conversation: %w", err)
	}
	return c, nil
}

// AppendMessage records one turn. Replies are written by whoever produced
// them; nothing here calls a model.
func AppendMessage(s *store.Store, conversationID, role, content string) (model.AIConversation, error) {
	r := normalizeName(role)
	if !chatRoles[r] {
		return model.AIConversation{}, fmt.Errorf("invalid role %q (use user, assistant or system)", role)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return model.AIConversation{}, fmt.Errorf("message content is required")
	}
	c, err := s.Conversation(conversationID)
	if err != nil {
		return model.AIConversation{}, err
	}
	now := s.Now()
	c.Messages = append(c.Messages, model.Message{Role: r, Content: content, Timestamp: now})
	c.UpdatedAt = now
	if err := s.UpsertConversation(c); err != nil {
		return model.AIConversation{}, fmt.Errorf("append message: %w", err)
	}
	return c, nil
}

// ListConversations returns conversations most recently updated first.
func ListConversations(s *store.Store) ([]model.AIConversation, error) {
	items, err := s.Conversations()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
	return items, nil
}

func DeleteConversation(s *store.Store, id string) error {
	if _, err := s.Conversation(id); err != nil {
		return err
	}
	return s.DeleteConversation(id)
}
