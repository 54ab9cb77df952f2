package keyboards

import (
	"testing"
	"time"

	"github.com/ketravel/travelbot/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageSelectionMarksCurrent(t *testing.T) {
	kb := LanguageSelection("ru")
	require.Len(t, kb.InlineKeyboard, 3)
	assert.Equal(t, "🇷🇺 Русский ✅", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "lang_select_ru", kb.InlineKeyboard[0][0].Data)
	assert.Equal(t, "🇬🇧 English", kb.InlineKeyboard[1][0].Text)
}

func TestCitiesKeyboardMarksSelection(t *testing.T) {
	a := form.Answers{Cities: []string{"mecca"}, OtherCities: []string{"Amman"}}
	kb := Cities("en", a)

	// 8 known cities two per row, one other city, other + done rows
	require.Len(t, kb.InlineKeyboard, 4+1+2)
	first := kb.InlineKeyboard[0]
	assert.Equal(t, "✅ Mecca", first[0].Text)
	assert.Equal(t, "city_mecca", first[0].Data)
	assert.Equal(t, "⬜️ Medina", first[1].Text)

	otherCity := kb.InlineKeyboard[4][0]
	assert.Equal(t, "✅ Amman", otherCity.Text)
	assert.Equal(t, "city_Amman", otherCity.Data)

	assert.Equal(t, "city_other", kb.InlineKeyboard[5][0].Data)
	assert.Equal(t, "city_done", kb.InlineKeyboard[6][0].Data)
}

func TestDaysAndPeopleKeyboards(t *testing.T) {
	days := Days("en")
	require.Len(t, days.InlineKeyboard, 3)
	assert.Equal(t, "days_3", days.InlineKeyboard[0][0].Data)
	assert.Equal(t, "days_other", days.InlineKeyboard[2][0].Data)

	people := People("en")
	require.Len(t, people.InlineKeyboard, 2)
	assert.Equal(t, "people_4plus", people.InlineKeyboard[1][1].Data)
}

func TestCalendarKeyboard(t *testing.T) {
	today := time.Date(2026, time.September, 10, 8, 0, 0, 0, time.UTC)
	ym := form.YearMonth{Year: 2026, Month: time.September}
	kb := Calendar("en", ym, "2026-09-15", today)

	// header + 5 weeks + nav + skip
	require.Len(t, kb.InlineKeyboard, 1+5+1+1)

	header := kb.InlineKeyboard[0]
	assert.Equal(t, "Mo", header[0].Text)
	assert.Equal(t, "cal_ignore", header[0].Data)

	// September 1st 2026 is a Tuesday: the first cell is padding.
	week1 := kb.InlineKeyboard[1]
	assert.Equal(t, " ", week1[0].Text)
	assert.Equal(t, "cal_ignore", week1[0].Data)
	assert.Equal(t, "·1", week1[1].Text) // past day
	assert.Equal(t, "cal_ignore", week1[1].Data)

	week2 := kb.InlineKeyboard[2]
	assert.Equal(t, "📍10", week2[3].Text) // today
	assert.Equal(t, "cal_day_2026-09-10", week2[3].Data)

	week3 := kb.InlineKeyboard[3]
	assert.Equal(t, "✅15", week3[1].Text) // selected
	assert.Equal(t, "cal_day_2026-09-15", week3[1].Data)
	assert.Equal(t, "16", week3[2].Text)

	nav := kb.InlineKeyboard[6]
	assert.Equal(t, "cal_prev_2026_9", nav[0].Data)
	assert.Equal(t, "September 2026", nav[1].Text)
	assert.Equal(t, "cal_next_2026_9", nav[2].Data)

	assert.Equal(t, "cal_skip", kb.InlineKeyboard[7][0].Data)
}

func TestDateConfirmKeyboard(t *testing.T) {
	kb := DateConfirm("en", "2026-09-15")
	row := kb.InlineKeyboard[0]
	assert.Equal(t, "cal_confirm_2026-09-15", row[0].Data)
	assert.Equal(t, "cal_change", row[1].Data)
}

func TestReferralKeyboard(t *testing.T) {
	kb := Referral("en")
	// 5 options in 3 rows, then other, then skip
	require.Len(t, kb.InlineKeyboard, 5)
	assert.Equal(t, "ref_instagram", kb.InlineKeyboard[0][0].Data)
	assert.Equal(t, "ref_other", kb.InlineKeyboard[3][0].Data)
	assert.Equal(t, "ref_skip", kb.InlineKeyboard[4][0].Data)
}

func TestEditMenu(t *testing.T) {
	kb := EditMenu("en")
	require.Len(t, kb.InlineKeyboard, 4)
	assert.Equal(t, "edit_phone", kb.InlineKeyboard[0][0].Data)
	assert.Equal(t, "edit_dates", kb.InlineKeyboard[3][0].Data)
}
