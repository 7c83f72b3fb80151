package auth

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

// Message keys for field errors, resolved by the i18n catalog.
const (
	MsgEmailRequired    = "auth.validation.emailRequired"
	MsgEmailInvalid     = "auth.validation.emailInvalid"
	MsgPasswordRequired = "auth.validation.passwordRequired"
	MsgPasswordMin      = "auth.validation.passwordMin"
	MsgPasswordWeak     = "auth.validation.passwordWeak"
	MsgNameRequired     = "auth.validation.nameRequired"
	MsgNameMin          = "auth.validation.nameMin"
	MsgConfirmRequired  = "auth.validation.confirmRequired"
	MsgConfirmMismatch  = "auth.validation.confirmMismatch"
)

const (
	minPasswordLen = 6
	minNameLen     = 2
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginInput holds the login form.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks all fields and collects all errors, one per field.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if msg := checkEmail(i.Email); msg != "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: msg})
	}

	switch {
	case i.Password == "":
		errs = append(errs, domain.FieldError{Field: "password", Message: MsgPasswordRequired})
	case len([]rune(i.Password)) < minPasswordLen:
		errs = append(errs, domain.FieldError{Field: "password", Message: MsgPasswordMin})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RegisterInput holds the registration form.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
}

// Validate checks all fields and collects all errors, one per field.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	switch {
	case name == "":
		errs = append(errs, domain.FieldError{Field: "name", Message: MsgNameRequired})
	case len([]rune(name)) < minNameLen:
		errs = append(errs, domain.FieldError{Field: "name", Message: MsgNameMin})
	}

	if msg := checkEmail(i.Email); msg != "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: msg})
	}

	switch {
	case i.Password == "":
		errs = append(errs, domain.FieldError{Field: "password", Message: MsgPasswordRequired})
	case len([]rune(i.Password)) < minPasswordLen:
		errs = append(errs, domain.FieldError{Field: "password", Message: MsgPasswordMin})
	case !strongPassword(i.Password):
		errs = append(errs, domain.FieldError{Field: "password", Message: MsgPasswordWeak})
	}

	switch {
	case i.ConfirmPassword == "":
		errs = append(errs, domain.FieldError{Field: "confirmPassword", Message: MsgConfirmRequired})
	case i.ConfirmPassword != i.Password:
		errs = append(errs, domain.FieldError{Field: "confirmPassword", Message: MsgConfirmMismatch})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func checkEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return MsgEmailRequired
	}
	if !emailRe.MatchString(email) {
		return MsgEmailInvalid
	}
	return ""
}

// strongPassword requires at least one lowercase letter, one uppercase
// letter and one digit.
func strongPassword(p string) bool {
	var lower, upper, digit bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}
