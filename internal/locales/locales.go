// Package locales carries the embedded message catalogs for every language
// the questionnaire speaks. Lookups fall back to English, and unknown keys
// come back verbatim so a missing translation is visible instead of silent.
package locales

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ketravel/travelbot/core/logger"
	"log/slog"

	"gopkg.in/yaml.v3"
)

//go:embed en.yaml ru.yaml de.yaml
var files embed.FS

// Default is the language used when a user has no stored preference.
const Default = "en"

type catalog struct {
	Texts    map[string]string `yaml:"texts"`
	Months   []string          `yaml:"months"`
	Weekdays []string          `yaml:"weekdays"`
}

var catalogs = mustLoad()

func mustLoad() map[string]catalog {
	entries, err := files.ReadDir(".")
	if err != nil {
		panic(fmt.Sprintf("locales: read embedded dir: %v", err))
	}
	out := make(map[string]catalog, len(entries))
	for _, e := range entries {
		raw, err := files.ReadFile(e.Name())
		if err != nil {
			panic(fmt.Sprintf("locales: read %s: %v", e.Name(), err))
		}
		var c catalog
		if err := yaml.Unmarshal(raw, &c); err != nil {
			panic(fmt.Sprintf("locales: parse %s: %v", e.Name(), err))
		}
		if len(c.Months) != 12 || len(c.Weekdays) != 7 {
			panic(fmt.Sprintf("locales: %s has incomplete month/weekday tables", e.Name()))
		}
		code := strings.TrimSuffix(e.Name(), ".yaml")
		out[code] = c
	}
	if _, ok := out[Default]; !ok {
		panic("locales: default catalog missing")
	}
	return out
}

// Supported returns the language codes with an embedded catalog, sorted.
func Supported() []string {
	codes := make([]string, 0, len(catalogs))
	for code := range catalogs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// IsSupported reports whether a catalog exists for the given code.
func IsSupported(code string) bool {
	_, ok := catalogs[code]
	return ok
}

// Get returns the text for key in the given language, falling back to the
// default catalog and finally to the key itself.
func Get(lang, key string) string {
	if c, ok := catalogs[lang]; ok {
		if s, ok := c.Texts[key]; ok {
			return s
		}
	}
	if lang != Default {
		if s, ok := catalogs[Default].Texts[key]; ok {
			logger.L.LogAttrs(context.Background(), slog.LevelDebug, "locale.fallback",
				slog.String("lang", lang),
				slog.String("key", key),
			)
			return s
		}
	}
	return key
}

// GetF returns the text for key with {placeholder} tokens substituted.
func GetF(lang, key string, args map[string]string) string {
	s := Get(lang, key)
	for name, value := range args {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}
	return s
}

// MonthName returns the localized month name.
func MonthName(lang string, m time.Month) string {
	c, ok := catalogs[lang]
	if !ok {
		c = catalogs[Default]
	}
	if m < time.January || m > time.December {
		return ""
	}
	return c.Months[int(m)-1]
}

// WeekdayShort returns the localized short weekday name for a Monday-first
// index in [0, 6].
func WeekdayShort(lang string, i int) string {
	c, ok := catalogs[lang]
	if !ok {
		c = catalogs[Default]
	}
	if i < 0 || i > 6 {
		return ""
	}
	return c.Weekdays[i]
}

// FormatDate renders an ISO date as a localized "January 2, 2006" style
// string. Invalid input comes back unchanged.
func FormatDate(lang, isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return fmt.Sprintf("%s %d, %d", MonthName(lang, t.Month()), t.Day(), t.Year())
}
