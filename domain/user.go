package domain

// User represents an account in the seeded user directory.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash []byte `json:"-"`
}

// SafeUser is the sanitized projection persisted for an active session.
// It never carries credentials.
type SafeUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Sanitized() SafeUser {
	if u == nil {
		return SafeUser{}
	}
	return SafeUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
