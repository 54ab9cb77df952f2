package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ketravel/travelbot/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(id string, name string) storage.Request {
	return storage.Request{
		ID:        id,
		Status:    storage.StatusNew,
		CreatedAt: time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC),
		Payload: storage.Payload{
			UserID:         1000,
			FullName:       name,
			Phone:          "+971501234567",
			CurrentCity:    "Casablanca",
			CitiesToVisit:  []string{"Mecca"},
			OtherCities:    []string{"Amman"},
			Days:           "7",
			People:         "2",
			NeedTranslator: "Yes",
			TranslatorLanguage: "EN",
			StartDate:      "2026-09-15",
			ReferralSource: "Instagram",
			LangCode:       "en",
		},
	}
}

func TestPanelText(t *testing.T) {
	assert.Contains(t, PanelText(0), "Pending requests: <b>0</b>")
	assert.Contains(t, PanelText(0), "auto-refreshes")
	assert.Contains(t, PanelText(3), "Tap a user")
}

func TestPanelKeyboardCapsListAndSkipsEmptyIDs(t *testing.T) {
	var requests []storage.Request
	for i := 0; i < 15; i++ {
		requests = append(requests, request(fmt.Sprintf("id-%d", i), "Traveler"))
	}
	kb := PanelKeyboard(requests)
	require.Len(t, kb.InlineKeyboard, MaxListItems)
	assert.Equal(t, CallbackViewPrefix+"id-0", kb.InlineKeyboard[0][0].Data)

	kb = PanelKeyboard([]storage.Request{{}, request("id-1", "Traveler")})
	assert.Len(t, kb.InlineKeyboard, 1)
}

func TestPreviewLabelTruncatesLongNames(t *testing.T) {
	long := request("id-1", strings.Repeat("N", 80))
	label := previewLabel(long)
	assert.LessOrEqual(t, len([]rune(label)), labelLimit)
	assert.True(t, strings.HasSuffix(label, "…"))

	anon := request("id-2", "")
	assert.Contains(t, previewLabel(anon), "Unknown")
}

func TestDetailText(t *testing.T) {
	req := request("id-1", "Amina <Yusuf>")
	text := DetailText(req)

	assert.Contains(t, text, `<a href="tg://user?id=1000">Amina &lt;Yusuf&gt;</a>`)
	assert.Contains(t, text, "Destinations: Mecca, Amman")
	assert.Contains(t, text, "↳ Language: EN")
	assert.Contains(t, text, "Travel date: 2026-09-15")
	assert.NotContains(t, text, "Already processed")

	req.Status = storage.StatusProcessed
	assert.Contains(t, DetailText(req), "Already processed")
}

func TestDetailTextMissingFields(t *testing.T) {
	req := storage.Request{ID: "id-1", Status: storage.StatusNew}
	text := DetailText(req)
	assert.Contains(t, text, "Phone: N/A")
	assert.Contains(t, text, "Destinations: N/A")
	assert.NotContains(t, text, "↳ Language")
}

func TestDetailKeyboard(t *testing.T) {
	kb := DetailKeyboard("abc")
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, CallbackDonePrefix+"abc", kb.InlineKeyboard[0][0].Data)
	assert.Equal(t, CallbackRefresh, kb.InlineKeyboard[1][0].Data)
}

func TestTrackerRefreshesUntilStopped(t *testing.T) {
	tr := NewTracker(5 * time.Millisecond)
	defer tr.Close()

	var calls atomic.Int32
	tr.Start(1, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)
	tr.Stop(1)
	n := calls.Load()
	time.Sleep(25 * time.Millisecond)
	assert.LessOrEqual(t, calls.Load(), n+1)
}

func TestTrackerStopsOnRefreshError(t *testing.T) {
	tr := NewTracker(5 * time.Millisecond)
	defer tr.Close()

	var calls atomic.Int32
	tr.Start(1, func(context.Context) error {
		calls.Add(1)
		return errors.New("message is gone")
	})

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(25 * time.Millisecond)
	assert.EqualValues(t, 1, calls.Load())
}

func TestTrackerStartReplacesPreviousLoop(t *testing.T) {
	tr := NewTracker(5 * time.Millisecond)
	defer tr.Close()

	var first, second atomic.Int32
	tr.Start(1, func(context.Context) error { first.Add(1); return nil })
	tr.Start(1, func(context.Context) error { second.Add(1); return nil })

	assert.Eventually(t, func() bool { return second.Load() >= 2 }, time.Second, time.Millisecond)
	n := first.Load()
	time.Sleep(25 * time.Millisecond)
	assert.LessOrEqual(t, first.Load(), n+1)
}

func TestNotificationText(t *testing.T) {
	text := NotificationText(1000, "Amina Yusuf")
	assert.Equal(t, `📥 New request from <a href="tg://user?id=1000">Amina Yusuf</a>`, text)
}
