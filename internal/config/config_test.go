package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	t.Run("環境変数がなければデフォルト値になること", func(t *testing.T) {
		for _, key := range []string{"GEMINI_API_KEY", "IMAGE_GEMINI_MODEL", "COLORING_DB_PATH", "COLORING_OUTPUT_DIR", "COLORING_HTTP_ADDR", "COLORING_RATE_INTERVAL"} {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
		got := LoadConfig()
		want := &Config{
			GeminiImageModel: "gemini-2.5-flash-image",
			DBPath:           DefaultDBPath,
			OutputDir:        DefaultOutputDir,
			HTTPAddr:         DefaultHTTPAddr,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("設定が違います (-want +got):\n%s", diff)
		}
	})

	t.Run("環境変数の値が使われること", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "key")
		t.Setenv("IMAGE_GEMINI_MODEL", "custom-model")
		t.Setenv("COLORING_DB_PATH", "/tmp/x.db")
		t.Setenv("COLORING_RATE_INTERVAL", "2s")
		got := LoadConfig()
		if got.GeminiAPIKey != "key" || got.GeminiImageModel != "custom-model" || got.DBPath != "/tmp/x.db" {
			t.Errorf("環境変数が反映されていません: %+v", got)
		}
		if got.RateInterval != 2*time.Second {
			t.Errorf("RateInterval = %v, want 2s", got.RateInterval)
		}
	})

	t.Run("不正な間隔は無視されること", func(t *testing.T) {
		t.Setenv("COLORING_RATE_INTERVAL", "soon")
		if got := LoadConfig().RateInterval; got != 0 {
			t.Errorf("RateInterval = %v, want 0", got)
		}
	})
}

func TestConfig_ApplyOptions(t *testing.T) {
	cfg := &Config{GeminiImageModel: "env-model", DBPath: "env.db", OutputDir: "env-out", HTTPAddr: ":1"}
	opts := GenerateOptions{OutputDir: "flag-out", RateInterval: time.Second}
	cfg.ApplyOptions(opts)

	want := &Config{
		GeminiImageModel: "env-model",
		DBPath:           "env.db",
		OutputDir:        "flag-out",
		HTTPAddr:         ":1",
		RateInterval:     time.Second,
		Options:          opts,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("上書き結果が違います (-want +got):\n%s", diff)
	}
}
