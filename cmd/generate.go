package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-coloring-kit/internal/pipeline"
	"github.com/shouni/go-coloring-kit/pkg/domain"
)

// generateCmd は表紙1枚と5ページを生成してライブラリに保存するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "塗り絵本を1冊生成しますなのだ。",
	Long: `子どもの名前、年齢区分、テーマから表紙と5ページの塗り絵を生成するのだ。
完成した本はライブラリに保存され、--export を付けると PDF も書き出すのだよ。`,
	PreRunE: preRunAppE,
	RunE:    generateCommand,
}

func init() {
	generateCmd.Flags().StringVarP(&opts.Name, "name", "n", "", "子どもの名前なのだ（必須）。")
	generateCmd.Flags().StringVarP(&opts.Theme, "theme", "t", "", "塗り絵のテーマなのだ（必須）。")
	generateCmd.Flags().StringVarP(&opts.Age, "age", "a", string(domain.DefaultAgeBracket), "年齢区分（3-5, 6-8, 9-12）なのだ。")
	generateCmd.Flags().BoolVarP(&opts.Export, "export", "e", false, "生成後に PDF を書き出すのだ。")
	addGenerationFlags(generateCmd)
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	slog.Info("塗り絵本の生成を開始するのだ！",
		"name", opts.Name,
		"theme", opts.Theme,
		"age", opts.Age,
		"image_model", cfg.GeminiImageModel)

	if err := pipeline.ExecuteGenerate(ctx, cfg, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
