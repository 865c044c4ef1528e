package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-coloring-kit/internal/builder"
	"github.com/shouni/go-coloring-kit/internal/config"
	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/runner"
	"github.com/shouni/go-coloring-kit/pkg/workflow"
)

// ExecuteGenerate は入力から1冊を生成してライブラリに保存し、
// --export が指定されていれば PDF も書き出すのだ。
func ExecuteGenerate(ctx context.Context, cfg *config.Config, out io.Writer) error {
	age, err := domain.ParseAgeBracket(cfg.Options.Age)
	if err != nil {
		return err
	}
	draft := domain.Draft{Name: cfg.Options.Name, Age: age, Theme: cfg.Options.Theme}

	appCtx, err := builder.NewAppContext(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	genRunner, err := builder.BuildGenerateRunner(ctx, appCtx, func(msg string) {
		fmt.Fprintln(out, msg)
	})
	if err != nil {
		return fmt.Errorf("生成の準備に失敗しました: %w", err)
	}

	res, err := genRunner.Run(ctx, draft)
	if err != nil {
		return err
	}
	reportGenerated(out, res)

	if !cfg.Options.Export {
		return nil
	}
	path, err := builder.BuildExportRunner(appCtx).RunAndSave(ctx, res.Book)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, path)
	return nil
}

// reportGenerated は保存の結果を利用者に伝えるのだ。保存に失敗しても本は手元に残るのだ。
func reportGenerated(out io.Writer, res runner.GenerateResult) {
	if res.Saved {
		fmt.Fprintf(out, "Livre enregistré : %s\n", res.Book.ID)
		return
	}
	fmt.Fprintln(out, workflow.NoticeSaveFailed)
}

// ExportBook は保存済みの本を PDF にして書き出し、そのパスを返すのだ。
func ExportBook(ctx context.Context, cfg *config.Config, id string) (string, error) {
	appCtx, err := builder.NewAppContext(cfg)
	if err != nil {
		return "", err
	}
	defer appCtx.Close()

	book, ok, err := appCtx.Library.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("本が見つかりません: %s", id)
	}

	return builder.BuildExportRunner(appCtx).RunAndSave(ctx, book)
}

// DeleteBook はライブラリから本を削除するのだ。存在しない ID はそのまま成功扱いなのだ。
func DeleteBook(ctx context.Context, cfg *config.Config, id string) error {
	appCtx, err := builder.NewAppContext(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	if err := appCtx.Library.Delete(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "削除が完了したのだ", "book_id", id)
	return nil
}
