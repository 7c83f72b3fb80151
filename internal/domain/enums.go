package domain

import (
	"strings"
	"time"
)

// Locale is a supported UI language tag.
type Locale string

const (
	LocaleVI Locale = "vi"
	LocaleEN Locale = "en"

	// DefaultLocale is used when the request carries no valid locale.
	DefaultLocale = LocaleVI
)

// Locales lists supported locales in routing order.
var Locales = []Locale{LocaleVI, LocaleEN}

func (l Locale) String() string { return string(l) }

func (l Locale) IsValid() bool {
	switch l {
	case LocaleVI, LocaleEN:
		return true
	}
	return false
}

// ParseLocale reports whether s is one of the supported locales.
func ParseLocale(s string) (Locale, bool) {
	l := Locale(s)
	return l, l.IsValid()
}

// LocaleOrDefault returns the parsed locale, or DefaultLocale when s is
// absent or unsupported.
func LocaleOrDefault(s string) Locale {
	if l, ok := ParseLocale(s); ok {
		return l
	}
	return DefaultLocale
}

// SplitLocalePath separates a leading "/vi" or "/en" segment from path.
// The segment must be the whole path or be followed by "/". When no locale
// prefix is present the locale is empty and rest is path unchanged; an exact
// "/vi" yields rest "/".
func SplitLocalePath(path string) (locale Locale, rest string) {
	for _, l := range Locales {
		prefix := "/" + string(l)
		if path == prefix {
			return l, "/"
		}
		if strings.HasPrefix(path, prefix+"/") {
			return l, path[len(prefix):]
		}
	}
	return "", path
}

// Weekday is a short English weekday name used in routine schedules.
type Weekday string

const (
	WeekdayMon Weekday = "Mon"
	WeekdayTue Weekday = "Tue"
	WeekdayWed Weekday = "Wed"
	WeekdayThu Weekday = "Thu"
	WeekdayFri Weekday = "Fri"
	WeekdaySat Weekday = "Sat"
	WeekdaySun Weekday = "Sun"
)

// Weekdays lists weekdays Monday first, matching the routine editor.
var Weekdays = []Weekday{WeekdayMon, WeekdayTue, WeekdayWed, WeekdayThu, WeekdayFri, WeekdaySat, WeekdaySun}

func (w Weekday) String() string { return string(w) }

func (w Weekday) IsValid() bool {
	switch w {
	case WeekdayMon, WeekdayTue, WeekdayWed, WeekdayThu, WeekdayFri, WeekdaySat, WeekdaySun:
		return true
	}
	return false
}

// WeekdayOf converts a time.Weekday into its short name.
func WeekdayOf(d time.Weekday) Weekday {
	switch d {
	case time.Monday:
		return WeekdayMon
	case time.Tuesday:
		return WeekdayTue
	case time.Wednesday:
		return WeekdayWed
	case time.Thursday:
		return WeekdayThu
	case time.Friday:
		return WeekdayFri
	case time.Saturday:
		return WeekdaySat
	default:
		return WeekdaySun
	}
}
