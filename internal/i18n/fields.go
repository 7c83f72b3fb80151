package i18n

import (
	"errors"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

// FieldMessage resolves a field error's message key and appends its detail.
func (c *Catalog) FieldMessage(locale domain.Locale, fe domain.FieldError) string {
	return c.T(locale, fe.Message) + fe.Detail
}

// FieldErrors resolves the field errors carried by err, keyed by field name.
// The first error recorded for a field wins. It returns nil when err is not
// a *domain.ValidationError.
func (c *Catalog) FieldErrors(locale domain.Locale, err error) map[string]string {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve.Errors))
	for _, fe := range ve.Errors {
		if _, dup := out[fe.Field]; dup {
			continue
		}
		out[fe.Field] = c.FieldMessage(locale, fe)
	}
	return out
}
