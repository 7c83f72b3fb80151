package domain

// User is the profile returned by the auth API for the current session.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Image string `json:"image,omitempty"`
}

// DisplayName returns the name, or the email when the name is blank.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
