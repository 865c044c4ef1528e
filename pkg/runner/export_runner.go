package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/publisher"
)

// Assembler は本から PDF を組み立てます。
type Assembler interface {
	AssembleBook(book domain.Book) (*publisher.Document, error)
}

// ExportRunner は本を PDF にして書き出し先に保存します。
type ExportRunner struct {
	assembler Assembler
	assets    *publisher.AssetManager
}

// NewExportRunner は、組版エンジンと保存先を依存性として注入して初期化します。
func NewExportRunner(assembler Assembler, assets *publisher.AssetManager) *ExportRunner {
	return &ExportRunner{
		assembler: assembler,
		assets:    assets,
	}
}

// Run は保存を行わず、PDF の組み立てだけを行います。
func (r *ExportRunner) Run(ctx context.Context, book domain.Book) (*publisher.Document, error) {
	if book.Cover == "" {
		return nil, fmt.Errorf("表紙がない本は書き出せません: %s", book.ID)
	}

	slog.InfoContext(ctx, "ExportRunner: PDF の組み立てを開始します",
		"book_id", book.ID,
		"name", book.Name,
		"pageCount", len(book.Pages)+1,
	)

	doc, err := r.assembler.AssembleBook(book)
	if err != nil {
		return nil, fmt.Errorf("PDF の組み立てに失敗しました: %w", err)
	}
	return doc, nil
}

// RunAndSave は PDF を組み立てて保存し、保存先のパスを返します。
func (r *ExportRunner) RunAndSave(ctx context.Context, book domain.Book) (string, error) {
	doc, err := r.Run(ctx, book)
	if err != nil {
		return "", err
	}

	path, err := r.assets.SaveDocument(ctx, doc)
	if err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "PDF exported", "path", path, slog.Int("pages", doc.PageCount))
	return path, nil
}
