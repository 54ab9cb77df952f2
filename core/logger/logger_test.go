package logger

import (
	"testing"

	"log/slog"
)

// Domain packages log through the component vars from load time onward.
// They must be usable before InitLogger wires the real handler.
func TestComponentLoggersUsableBeforeInit(t *testing.T) {
	components := map[string]*slog.Logger{
		"L":     L,
		"DB":    DB,
		"TG":    TG,
		"MIG":   MIG,
		"TWire": TWire,
		"FORM":  FORM,
		"STORE": STORE,
		"ADM":   ADM,
		"NTF":   NTF,
	}
	for name, lg := range components {
		if lg == nil {
			t.Fatalf("logger %s is nil before InitLogger", name)
		}
	}

	// None of these may panic on the pre-init discard handler.
	STORE.Warn("language store read failed", slog.String("path", "languages.json"))
	FORM.Info("session started", slog.Int64("user_id", 1))
	LogEvent(Background(), ADM, slog.LevelInfo, "panel.render")
	Error(Background(), "notify", "notify.failed", slog.Int64("admin_id", 2))

	if Component("storage") == nil {
		t.Fatal("Component returned nil before InitLogger")
	}
}
