package ui

import "testing"

func TestLocalization_SetLanguage(t *testing.T) {
	tests := []struct {
		name   string
		lang   string
		expect string
	}{
		{"english", "en", "en"},
		{"turkish", "tr", "tr"},
		{"unknown keeps current", "xx", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLocalization()
			l.SetLanguage(tt.lang)
			if got := l.GetCurrentLanguage(); got != tt.expect {
				t.Errorf("Expected %s, got %s", tt.expect, got)
			}
		})
	}
}

func TestLocalization_SystemLanguage(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "tr_TR.UTF-8")

	l := NewLocalization()
	l.SetLanguage("system")
	if got := l.GetCurrentLanguage(); got != "tr" {
		t.Errorf("Expected tr from LANG, got %s", got)
	}
}

func TestLocalization_GetText(t *testing.T) {
	l := NewLocalization()

	if got := l.GetText(KeyDownload); got != "Download" {
		t.Errorf("Expected Download, got %q", got)
	}
	if got := l.GetText("missing_key"); got != "missing_key" {
		t.Errorf("Expected key fallback, got %q", got)
	}

	l.SetLanguage("tr")
	if got := l.GetText(KeyDownload); got != "İndir" {
		t.Errorf("Expected İndir, got %q", got)
	}
}

func TestLocalization_Format(t *testing.T) {
	l := NewLocalization()
	if got := l.Format(KeyDownloading, "a.mp4", 42.26); got != "Downloading: a.mp4 - 42.3%" {
		t.Errorf("Unexpected english format %q", got)
	}

	l.SetLanguage("tr")
	if got := l.Format(KeyDownloading, "a.mp4", 42.26); got != "İndiriliyor: a.mp4 - %42.3" {
		t.Errorf("Unexpected turkish format %q", got)
	}
}

func TestLocalization_CompleteTranslations(t *testing.T) {
	l := NewLocalization()
	for key := range l.texts["en"] {
		if _, ok := l.texts["tr"][key]; !ok {
			t.Errorf("Missing turkish text for %s", key)
		}
	}
}
