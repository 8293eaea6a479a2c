package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata 存储
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings.SoundVolume != 0.8 || !settings.SoundEnabled || settings.LastOpened != "" {
		t.Errorf("DefaultSettings() = %+v", settings)
	}
}

func TestSettingsManager_MemoryOnly(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetSoundVolume(1.5)
	sm.SetSoundEnabled(false)

	if err := sm.Save(); err != nil {
		t.Errorf("Save() in memory mode error: %v", err)
	}
	if got := sm.GetSettings().SoundVolume; got != 1.0 {
		t.Errorf("SoundVolume = %v, want clamped 1.0", got)
	}
	if sm.GetSettings().SoundEnabled {
		t.Error("SoundEnabled should be false")
	}
}

func TestSettingsManager_SaveAndLoad(t *testing.T) {
	m := openTestGdata(t, "test_anim_settings")

	sm := NewSettingsManager(m)
	sm.SetSoundVolume(0.25)
	sm.SetSoundEnabled(false)
	sm.SetLastOpened("on-fire")
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(m)
	got := reloaded.GetSettings()
	if got.SoundVolume != 0.25 || got.SoundEnabled || got.LastOpened != "on-fire" {
		t.Errorf("reloaded settings = %+v", got)
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := clampVolume(tt.in); got != tt.want {
			t.Errorf("clampVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
