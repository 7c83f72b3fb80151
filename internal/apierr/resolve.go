package apierr

import (
	"errors"
	"strconv"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

// UnknownMessage is used when even the catalog has no unknown-error entry.
const UnknownMessage = "An unknown error occurred"

// Translator looks up flattened message keys such as "errors.400.GENERAL".
type Translator interface {
	Lookup(locale domain.Locale, key string) (string, bool)
}

// Resolve returns the user-facing message for err in locale.
//
// For a normalized error the order is: errors.<status>.<errorCode> (when a
// code is present), errors.<status>.GENERAL (statuses with nested tables),
// errors.<status>, the original server message, then errors.UNKNOWN_ERROR.
// Any other error resolves to its own text.
func Resolve(tr Translator, locale domain.Locale, err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return resolveAPIError(tr, locale, apiErr)
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return unknown(tr, locale)
}

func resolveAPIError(tr Translator, locale domain.Locale, e *Error) string {
	prefix := "errors." + strconv.Itoa(e.StatusCode)

	if code, ok := e.Code(); ok {
		if msg, ok := tr.Lookup(locale, prefix+"."+strconv.Itoa(code)); ok {
			return msg
		}
	}
	if msg, ok := tr.Lookup(locale, prefix+".GENERAL"); ok {
		return msg
	}
	if msg, ok := tr.Lookup(locale, prefix); ok {
		return msg
	}
	if len(e.OriginalMessage) > 0 && e.OriginalMessage[0] != "" {
		return e.OriginalMessage[0]
	}
	if e.Message != "" {
		return e.Message
	}
	return unknown(tr, locale)
}

func unknown(tr Translator, locale domain.Locale) string {
	if msg, ok := tr.Lookup(locale, "errors.UNKNOWN_ERROR"); ok {
		return msg
	}
	return UnknownMessage
}
