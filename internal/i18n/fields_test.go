package i18n

import (
	"errors"
	"fmt"
	"testing"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

func TestCatalog_FieldErrors(t *testing.T) {
	t.Parallel()

	c := MustLoad()
	err := fmt.Errorf("auth.Register: %w", &domain.ValidationError{Errors: []domain.FieldError{
		{Field: "email", Message: "auth.validation.emailRequired"},
		{Field: "email", Message: "auth.validation.emailInvalid"},
		{Field: "json", Message: "roadmap.validation.invalidJSON", Detail: "unexpected end of JSON input"},
	}})

	got := c.FieldErrors(domain.LocaleEN, err)
	if got["email"] != "Email is required" {
		t.Errorf("email = %q, want first message", got["email"])
	}
	if got["json"] != "Invalid JSON: unexpected end of JSON input" {
		t.Errorf("json = %q", got["json"])
	}

	if c.FieldErrors(domain.LocaleEN, errors.New("plain")) != nil {
		t.Error("non-validation error must yield nil")
	}
}
