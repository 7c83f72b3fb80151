package domain

import "testing"

func TestUser_DisplayName(t *testing.T) {
	t.Parallel()

	u := &User{Name: "Lan", Email: "lan@example.com"}
	if got := u.DisplayName(); got != "Lan" {
		t.Errorf("DisplayName() = %q, want Lan", got)
	}

	u.Name = ""
	if got := u.DisplayName(); got != "lan@example.com" {
		t.Errorf("DisplayName() = %q, want email", got)
	}
}
