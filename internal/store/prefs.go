package store

import "strings"

func (s *Store) prefKey(name string) string {
	return s.prefix + ":pref:" + strings.TrimSpace(name)
}

// SetPreference stores a non-critical value. A storage failure is logged
// and otherwise ignored.
func (s *Store) SetPreference(name, value string) {
	if err := s.backend.Set(s.prefKey(name), value); err != nil {
		s.logger.Warn("preference not saved", "name", name, "err", err)
	}
}

// Preference reports false when the value is unset or unreadable.
func (s *Store) Preference(name string) (string, bool) {
	value, ok, err := s.backend.Get(s.prefKey(name))
	if err != nil {
		s.logger.Warn("preference not read", "name", name, "err", err)
		return "", false
	}
	return value, ok
}
