package locales

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedLanguages(t *testing.T) {
	require.Equal(t, []string{"de", "en", "ru"}, Supported())
	assert.True(t, IsSupported("en"))
	assert.False(t, IsSupported("fr"))
}

func TestGetFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, Get("en", "thank_you"), Get("fr", "thank_you"))
}

func TestGetUnknownKeyReturnsKey(t *testing.T) {
	assert.Equal(t, "no_such_key", Get("en", "no_such_key"))
}

func TestGetFSubstitutesPlaceholders(t *testing.T) {
	got := GetF("en", "welcome", map[string]string{"first_name": "Amina"})
	assert.Contains(t, got, "Amina")
	assert.NotContains(t, got, "{first_name}")
}

func TestEveryCatalogCoversEnglishKeys(t *testing.T) {
	en := catalogs["en"]
	for _, code := range Supported() {
		c := catalogs[code]
		for key := range en.Texts {
			_, ok := c.Texts[key]
			assert.True(t, ok, "catalog %s missing key %s", code, key)
		}
	}
}

func TestAdminDeniedIsExplicit(t *testing.T) {
	for _, code := range Supported() {
		denied := Get(code, "admin_denied")
		assert.Contains(t, denied, "⛔️", "catalog %s", code)
		assert.NotEqual(t, Get(code, "use_start"), denied, "catalog %s", code)
	}
}

func TestMonthAndWeekdayNames(t *testing.T) {
	assert.Equal(t, "January", MonthName("en", time.January))
	assert.Equal(t, "Январь", MonthName("ru", time.January))
	assert.Equal(t, "Mo", WeekdayShort("en", 0))
	assert.Equal(t, "Вс", WeekdayShort("ru", 6))
	assert.Equal(t, "", WeekdayShort("en", 7))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "September 5, 2026", FormatDate("en", "2026-09-05"))
	assert.Equal(t, "not-a-date", FormatDate("en", "not-a-date"))
}
