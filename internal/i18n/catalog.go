// Package i18n loads the vi/en message bundles and resolves dotted message keys.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

//go:embed locales
var bundles embed.FS

// Catalog resolves messages through a go-i18n bundle whose default language
// is domain.DefaultLocale. It is read-only after loading and safe for
// concurrent use.
type Catalog struct {
	bundle     *goi18n.Bundle
	localizers map[domain.Locale]*goi18n.Localizer
	keys       map[domain.Locale]map[string]struct{}
}

// Load builds a Catalog from the embedded bundles.
func Load() (*Catalog, error) {
	sub, err := fs.Sub(bundles, "locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: %w", err)
	}
	return LoadFS(sub)
}

// MustLoad is Load for package-level and test setup. It panics on a broken bundle.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFS reads <module>/<locale>.json files from fsys. Every module directory is
// merged into one flat table per locale; a later module overrides an earlier
// one on key collision. Nested objects become dotted message IDs and arrays
// use their index as the last segment.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	flat := make(map[domain.Locale]map[string]string, len(domain.Locales))
	for _, l := range domain.Locales {
		flat[l] = make(map[string]string)
	}

	modules, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("i18n: read bundles: %w", err)
	}

	for _, m := range modules {
		if !m.IsDir() {
			continue
		}
		for _, l := range domain.Locales {
			file := path.Join(m.Name(), string(l)+".json")
			raw, err := fs.ReadFile(fsys, file)
			if err != nil {
				return nil, fmt.Errorf("i18n: read %s: %w", file, err)
			}

			var tree map[string]any
			if err := json.Unmarshal(raw, &tree); err != nil {
				return nil, fmt.Errorf("i18n: parse %s: %w", file, err)
			}
			flatten(flat[l], "", tree)
		}
	}

	c := &Catalog{
		bundle:     goi18n.NewBundle(language.Make(string(domain.DefaultLocale))),
		localizers: make(map[domain.Locale]*goi18n.Localizer, len(domain.Locales)),
		keys:       make(map[domain.Locale]map[string]struct{}, len(domain.Locales)),
	}
	for _, l := range domain.Locales {
		msgs := make([]*goi18n.Message, 0, len(flat[l]))
		keys := make(map[string]struct{}, len(flat[l]))
		for id, text := range flat[l] {
			msgs = append(msgs, &goi18n.Message{ID: id, Other: text})
			keys[id] = struct{}{}
		}
		if err := c.bundle.AddMessages(language.Make(string(l)), msgs...); err != nil {
			return nil, fmt.Errorf("i18n: add %s messages: %w", l, err)
		}
		c.keys[l] = keys
		c.localizers[l] = goi18n.NewLocalizer(c.bundle, string(l))
	}

	return c, nil
}

// flatten writes nested objects as dotted keys; arrays use their index as the
// key segment.
func flatten(dst map[string]string, prefix string, node any) {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}

	switch v := node.(type) {
	case string:
		dst[prefix] = v
	case map[string]any:
		for k, child := range v {
			flatten(dst, join(k), child)
		}
	case []any:
		for i, child := range v {
			flatten(dst, join(strconv.Itoa(i)), child)
		}
	}
}

// Lookup returns the message for key in locale, falling back to the default
// locale. It reports false when neither has the key.
func (c *Catalog) Lookup(locale domain.Locale, key string) (string, bool) {
	if !locale.IsValid() {
		locale = domain.DefaultLocale
	}
	msg, err := c.localizers[locale].Localize(&goi18n.LocalizeConfig{MessageID: key})
	if err != nil {
		var notFound *goi18n.MessageNotFoundErr
		if errors.As(err, &notFound) && msg != "" {
			return msg, true
		}
		return "", false
	}
	return msg, true
}

// T returns the message for key, or the key itself when it is missing.
func (c *Catalog) T(locale domain.Locale, key string) string {
	if msg, ok := c.Lookup(locale, key); ok {
		return msg
	}
	return key
}

// Format is T with {name} placeholders replaced from pairs of (name, value).
func (c *Catalog) Format(locale domain.Locale, key string, pairs ...string) string {
	msg := c.T(locale, key)
	if len(pairs) < 2 {
		return msg
	}
	oldnew := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		oldnew = append(oldnew, "{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(oldnew...).Replace(msg)
}

// List returns the elements of an array message (key.0, key.1, ...) in order.
func (c *Catalog) List(locale domain.Locale, key string) []string {
	var out []string
	for i := 0; ; i++ {
		msg, ok := c.Lookup(locale, key+"."+strconv.Itoa(i))
		if !ok {
			return out
		}
		out = append(out, msg)
	}
}

// Messages returns every key under prefix for locale, with the default
// locale filling gaps.
func (c *Catalog) Messages(locale domain.Locale, prefix string) map[string]string {
	if !locale.IsValid() {
		locale = domain.DefaultLocale
	}
	out := make(map[string]string)
	for _, l := range []domain.Locale{domain.DefaultLocale, locale} {
		for k := range c.keys[l] {
			if prefix != "" && k != prefix && !strings.HasPrefix(k, prefix+".") {
				continue
			}
			if msg, ok := c.Lookup(locale, k); ok {
				out[k] = msg
			}
		}
	}
	return out
}
