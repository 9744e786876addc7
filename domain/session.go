package domain

import "time"

// Session is the derived authentication state reconstructed from the
// individually stored session keys. It is never persisted as one record.
type Session struct {
	User      SafeUser  `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}
