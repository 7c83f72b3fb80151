package i18n

import (
	"golang.org/x/text/language"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

// supported is ordered like domain.Locales; the first tag is the matcher's
// fallback.
var supported = []language.Tag{language.Vietnamese, language.English}

var matcher = language.NewMatcher(supported)

// Negotiate picks the locale for a request without a locale prefix.
// A valid preferred locale (usually from the locale cookie) wins; otherwise
// the Accept-Language header is matched; otherwise the default locale is used.
func Negotiate(preferred, acceptLanguage string) domain.Locale {
	return NegotiateOr(preferred, acceptLanguage, domain.DefaultLocale)
}

// NegotiateOr is Negotiate with a configurable fallback. An invalid
// fallback is replaced by the default locale.
func NegotiateOr(preferred, acceptLanguage string, fallback domain.Locale) domain.Locale {
	if !fallback.IsValid() {
		fallback = domain.DefaultLocale
	}
	if l, ok := domain.ParseLocale(preferred); ok {
		return l
	}
	if acceptLanguage == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return domain.Locales[idx]
}

// SwitchPath rewrites path so it carries the target locale prefix, keeping
// the rest of the path. Paths without a prefix get one added.
func SwitchPath(path string, target domain.Locale) string {
	if !target.IsValid() {
		target = domain.DefaultLocale
	}
	_, rest := domain.SplitLocalePath(path)
	if rest == "" || rest == "/" {
		return "/" + string(target)
	}
	if rest[0] != '/' {
		rest = "/" + rest
	}
	return "/" + string(target) + rest
}
