package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("DEFAULT_LOCALE", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("FONT_DIRS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.StorageDir != "outputs" {
		t.Fatalf("StorageDir = %q, want %q", cfg.StorageDir, "outputs")
	}
	if cfg.DefaultLocale != "he" {
		t.Fatalf("DefaultLocale = %q, want %q", cfg.DefaultLocale, "he")
	}
	if cfg.GeminiImageModel != "gemini-2.5-flash-image-preview" {
		t.Fatalf("GeminiImageModel = %q", cfg.GeminiImageModel)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("CORSAllowedOrigins = %#v, want [*]", cfg.CORSAllowedOrigins)
	}
	if len(cfg.FontDirs) != 0 {
		t.Fatalf("FontDirs = %#v, want empty", cfg.FontDirs)
	}
	if cfg.HTTPWriteTimeout != 120*time.Second {
		t.Fatalf("HTTPWriteTimeout = %v, want 120s", cfg.HTTPWriteTimeout)
	}
}

func TestLoadConfigExplicitValues(t *testing.T) {
	t.Setenv("PORT", "1919")
	t.Setenv("OUTPUT_DIR", "/var/lib/shivuk")
	t.Setenv("DEFAULT_LOCALE", "en")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "1919" {
		t.Fatalf("Port = %q, want %q", cfg.Port, "1919")
	}
	if cfg.StorageDir != "/var/lib/shivuk" {
		t.Fatalf("StorageDir = %q", cfg.StorageDir)
	}
	if cfg.DefaultLocale != "en" {
		t.Fatalf("DefaultLocale = %q, want %q", cfg.DefaultLocale, "en")
	}
	if cfg.RateLimitPerMin != 5 {
		t.Fatalf("RateLimitPerMin = %d, want 5", cfg.RateLimitPerMin)
	}
}

func TestLoadConfigSplitsCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com ")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	want := []string{"https://app.example.com", "https://admin.example.com"}
	if len(cfg.CORSAllowedOrigins) != len(want) {
		t.Fatalf("CORSAllowedOrigins = %#v, want %#v", cfg.CORSAllowedOrigins, want)
	}
	for i, origin := range want {
		if cfg.CORSAllowedOrigins[i] != origin {
			t.Fatalf("CORSAllowedOrigins[%d] = %q, want %q", i, cfg.CORSAllowedOrigins[i], origin)
		}
	}
}

func TestLoadConfigParsesFontDirs(t *testing.T) {
	t.Setenv("FONT_DIRS", "/usr/share/fonts:/home/app/fonts")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if len(cfg.FontDirs) != 2 {
		t.Fatalf("FontDirs = %#v, want two entries", cfg.FontDirs)
	}
	if cfg.FontDirs[0] != "/usr/share/fonts" || cfg.FontDirs[1] != "/home/app/fonts" {
		t.Fatalf("FontDirs = %#v", cfg.FontDirs)
	}
}

func TestLoadConfigIgnoresBadInt(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.RateLimitPerMin != 30 {
		t.Fatalf("RateLimitPerMin = %d, want the default 30", cfg.RateLimitPerMin)
	}
}
