package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shouni/go-coloring-kit/internal/config"
)

var opts config.GenerateOptions

var rootCmd = &cobra.Command{
	Use:               "coloring-kit",
	Short:             "名前とテーマから塗り絵本を作るのだ。",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "デバッグログを出力するのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "ライブラリの SQLite ファイルなのだ（既定: $COLORING_DB_PATH か "+config.DefaultDBPath+"）。")
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", "", "PDF の書き出し先ディレクトリなのだ（既定: $COLORING_OUTPUT_DIR か "+config.DefaultOutputDir+"）。")
}

// addGenerationFlags は画像生成を伴うコマンドのフラグを定義するのだ。
func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&opts.ImageModel, "image-model", "", "使用する Gemini 画像モデル名なのだ（既定: "+config.DefaultImageModel+"）。")
	cmd.Flags().DurationVar(&opts.RateInterval, "rate-interval", 0, "画像生成の呼び出し間隔なのだ。0 なら待たないのだ。")
}

func setupLogger(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

// preRunAppE は、画像生成を行うコマンドの実行前に必須の環境変数をチェックするのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}
	return nil
}

// loadConfig は環境変数の設定にフラグを重ねた Config を返すのだ。
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	cfg.ApplyOptions(opts)
	return cfg
}

func init() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(
		generateCmd,
		listCmd,
		deleteCmd,
		exportCmd,
		themesCmd,
		serveCmd,
	)
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
