package service

import (
	"fmt"
	"strings"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

var activityLevels = map[string]bool{
	"sedentary":   true,
	"light":       true,
	"moderate":    true,
	"active":      true,
	"very_active": true,
}

type ProfileInput struct {
	Username      string
	FirstName     string
	LastName      string
	Goal          string
	ActivityLevel string
}

// SetProfile creates or replaces the profile, keeping the original
// creation time.
func SetProfile(s *store.Store, in ProfileInput) (model.UserProfile, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return model.UserProfile{}, fmt.Errorf("username is required")
	}
	level := normalizeName(in.ActivityLevel)
	if level != "" && !activityLevels[level] {
		return model.UserProfile{}, fmt.Errorf("invalid activity level %q (use sedentary, light, moderate, active or very_active)", in.ActivityLevel)
	}

	now := s.Now()
	profile := model.UserProfile{
		Username:      username,
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Goal:          strings.TrimSpace(in.Goal),
		ActivityLevel: level,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	existing, err := s.User()
	if err != nil {
		return model.UserProfile{}, err
	}
	if existing != nil && !existing.CreatedAt.IsZero() {
		profile.CreatedAt = existing.CreatedAt
	}
	if err := s.SetUser(profile); err != nil {
		return model.UserProfile{}, err
	}
	return profile, nil
}
