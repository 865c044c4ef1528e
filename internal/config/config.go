package config

import (
	"log/slog"
	"time"

	"github.com/shouni/go-utils/envutil"

	"github.com/shouni/go-coloring-kit/pkg/generator"
)

// デフォルト値の定義なのだ
const (
	DefaultImageModel   = generator.DefaultImageModel
	DefaultDBPath       = "data/coloring.db" // ライブラリを保存する SQLite ファイル
	DefaultOutputDir    = "output"           // PDF の書き出し先
	DefaultHTTPAddr     = ":8080"
	DefaultRateInterval = 0 * time.Second // 0 なら待機しない
)

// Config はアプリケーション全体の環境設定を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	GeminiImageModel string
	DBPath           string
	OutputDir        string
	HTTPAddr         string
	RateInterval     time.Duration

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		DBPath:           envutil.GetEnv("COLORING_DB_PATH", DefaultDBPath),
		OutputDir:        envutil.GetEnv("COLORING_OUTPUT_DIR", DefaultOutputDir),
		HTTPAddr:         envutil.GetEnv("COLORING_HTTP_ADDR", DefaultHTTPAddr),
		RateInterval:     parseDuration("COLORING_RATE_INTERVAL", DefaultRateInterval),
	}
	return cfg
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		slog.Warn("不正な間隔指定を無視します", "key", key, "value", raw)
		return fallback
	}
	return d
}

// ApplyOptions は CLI フラグで明示された値を環境変数由来の設定に上書きするのだ。
func (c *Config) ApplyOptions(opts GenerateOptions) {
	if opts.ImageModel != "" {
		c.GeminiImageModel = opts.ImageModel
	}
	if opts.DBPath != "" {
		c.DBPath = opts.DBPath
	}
	if opts.OutputDir != "" {
		c.OutputDir = opts.OutputDir
	}
	if opts.Addr != "" {
		c.HTTPAddr = opts.Addr
	}
	if opts.RateInterval > 0 {
		c.RateInterval = opts.RateInterval
	}
	c.Options = opts
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// 本の入力
	Name  string // --name
	Age   string // --age
	Theme string // --theme

	// 出力
	Export    bool   // --export: 生成後に PDF を書き出す
	OutputDir string // --output-dir
	DBPath    string // --db

	// AI挙動設定
	ImageModel   string        // --image-model
	RateInterval time.Duration // --rate-interval

	// サーバー
	Addr string // --addr

	// その他
	Yes     bool // --yes: 削除の確認を省略
	Verbose bool // --verbose
}
