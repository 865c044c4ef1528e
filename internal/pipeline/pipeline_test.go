package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vincent-petithory/dataurl"

	"github.com/shouni/go-coloring-kit/internal/config"
	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/runner"
	"github.com/shouni/go-coloring-kit/pkg/store"
	"github.com/shouni/go-coloring-kit/pkg/workflow"
)

func pngURI(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 4))); err != nil {
		t.Fatalf("PNG のエンコードに失敗しました: %v", err)
	}
	return dataurl.New(buf.Bytes(), "image/png").String()
}

// seededConfig は本を2冊保存したデータベースを指す設定を返します。
func seededConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		DBPath:    filepath.Join(dir, "coloring.db"),
		OutputDir: filepath.Join(dir, "out"),
	}

	kv, err := store.NewSQLiteKV(cfg.DBPath)
	if err != nil {
		t.Fatalf("SQLite を開けませんでした: %v", err)
	}
	defer kv.Close()

	img := pngURI(t)
	lib := store.NewLibrary(kv)
	older := domain.Book{ID: "old", Name: "Emma", Theme: "Robots", Age: domain.AgeYoung, Cover: img,
		Pages: []string{img, img, img, img, img}, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := domain.Book{ID: "new", Name: "Léo", Theme: "Dinosaures", Age: domain.AgeMiddle, Cover: img,
		Pages: []string{img, img, img, img, img}, CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}
	for _, b := range []domain.Book{older, newer} {
		if err := lib.Save(context.Background(), b); err != nil {
			t.Fatalf("保存に失敗しました: %v", err)
		}
	}
	return cfg
}

func TestListBooks(t *testing.T) {
	t.Run("新しい順に表示されること", func(t *testing.T) {
		cfg := seededConfig(t)
		var out bytes.Buffer
		if err := ListBooks(context.Background(), cfg, &out); err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		s := out.String()
		iNew, iOld := strings.Index(s, "Léo"), strings.Index(s, "Emma")
		if iNew < 0 || iOld < 0 || iNew > iOld {
			t.Errorf("並び順が違います:\n%s", s)
		}
	})

	t.Run("空のライブラリでは案内を表示すること", func(t *testing.T) {
		cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "empty.db")}
		var out bytes.Buffer
		if err := ListBooks(context.Background(), cfg, &out); err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if !strings.Contains(out.String(), "premier livre") {
			t.Errorf("案内が表示されません: %q", out.String())
		}
	})
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()
	cfg := seededConfig(t)

	if err := DeleteBook(ctx, cfg, "old"); err != nil {
		t.Fatalf("削除に失敗しました: %v", err)
	}
	if err := DeleteBook(ctx, cfg, "missing"); err != nil {
		t.Fatalf("存在しない ID でエラーになりました: %v", err)
	}

	var out bytes.Buffer
	_ = ListBooks(ctx, cfg, &out)
	if strings.Contains(out.String(), "Emma") || !strings.Contains(out.String(), "Léo") {
		t.Errorf("削除結果が違います:\n%s", out.String())
	}
}

func TestExportBook(t *testing.T) {
	ctx := context.Background()
	cfg := seededConfig(t)

	path, err := ExportBook(ctx, cfg, "new")
	if err != nil {
		t.Fatalf("書き出しに失敗しました: %v", err)
	}
	if filepath.Base(path) != "coloriage-l-o.pdf" {
		t.Errorf("ファイル名 = %s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("書き出したファイルが読めません: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("PDF ではありません")
	}

	if _, err := ExportBook(ctx, cfg, "missing"); err == nil {
		t.Error("存在しない本でエラーになりませんでした")
	}
}

func TestExecuteGenerate_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("不正な年齢区分はエラーになること", func(t *testing.T) {
		cfg := seededConfig(t)
		cfg.Options = config.GenerateOptions{Name: "Léo", Theme: "Dinosaures", Age: "13-15"}
		if err := ExecuteGenerate(ctx, cfg, &bytes.Buffer{}); err == nil {
			t.Error("エラーになるはずでした")
		}
	})

	t.Run("API キーがなければエラーになること", func(t *testing.T) {
		cfg := seededConfig(t)
		cfg.Options = config.GenerateOptions{Name: "Léo", Theme: "Dinosaures", Age: "3-5"}
		err := ExecuteGenerate(ctx, cfg, &bytes.Buffer{})
		if err == nil || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
			t.Errorf("err = %v", err)
		}
	})
}

func TestReportGenerated(t *testing.T) {
	t.Run("保存できたときは ID を表示すること", func(t *testing.T) {
		var out bytes.Buffer
		reportGenerated(&out, runner.GenerateResult{Book: domain.Book{ID: "b1"}, Saved: true})
		if got := out.String(); got != "Livre enregistré : b1\n" {
			t.Errorf("出力 = %q", got)
		}
	})

	t.Run("保存に失敗したときは通知を表示すること", func(t *testing.T) {
		var out bytes.Buffer
		reportGenerated(&out, runner.GenerateResult{Book: domain.Book{ID: "b1"}})
		if got := out.String(); got != workflow.NoticeSaveFailed+"\n" {
			t.Errorf("出力 = %q", got)
		}
	})
}
