package form

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ValidationError carries the locale key of the message to show the user.
type ValidationError struct {
	Key string
}

func (e *ValidationError) Error() string {
	return "form: invalid input: " + e.Key
}

func invalid(key string) error {
	return &ValidationError{Key: key}
}

var phoneRe = regexp.MustCompile(`^\+[1-9][0-9]{0,15}$`)

// NormalizePhone strips formatting from a phone number and enforces a
// leading country code. Contact shares and typed numbers go through the
// same path.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	phone := "+" + digits.String()
	if !phoneRe.MatchString(phone) {
		return "", invalid("invalid_phone")
	}
	return phone, nil
}

// ValidateCity checks a typed city name.
func ValidateCity(raw string) (string, error) {
	city := strings.TrimSpace(raw)
	if utf8.RuneCountInString(city) < 2 {
		return "", invalid("invalid_city")
	}
	return city, nil
}

// LocationCity renders a shared location as the current-city answer.
func LocationCity(lat, lon float32) string {
	return fmt.Sprintf("Lat: %v, Lon: %v", lat, lon)
}

// ValidateDays parses a custom trip length.
func ValidateDays(raw string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return "", invalid("invalid_number")
	}
	return strconv.Itoa(n), nil
}

// ValidatePeople parses a custom group size. The buttons cover 1 through 4,
// so typed values start at 5.
func ValidatePeople(raw string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 5 {
		return "", invalid("invalid_number_5_or_more")
	}
	return strconv.Itoa(n), nil
}

// ValidateLanguage checks a typed translator language.
func ValidateLanguage(raw string) (string, error) {
	lang := strings.TrimSpace(raw)
	if lang == "" {
		return "", invalid("invalid_language")
	}
	return lang, nil
}

// ValidateReferral checks the free-text referral answer.
func ValidateReferral(raw string) (string, error) {
	ref := strings.TrimSpace(raw)
	if ref == "" {
		return "", invalid("enter_other_referral")
	}
	return ref, nil
}
