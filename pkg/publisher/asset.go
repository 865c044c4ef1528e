package publisher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// OutputWriter は書き出し先にデータを保存するためのインターフェースです。
type OutputWriter interface {
	Write(ctx context.Context, path string, data []byte) error
}

// LocalWriter はローカルファイルシステムへの書き出しを行います。
type LocalWriter struct{}

func (LocalWriter) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ファイルの書き込みに失敗しました: %w", err)
	}
	return nil
}

// AssetManager は書き出すドキュメントの保存パスと永続化を管理します。
type AssetManager struct {
	writer  OutputWriter
	baseDir string // 保存先のベースディレクトリ (例: "output")
}

func NewAssetManager(writer OutputWriter, baseDir string) *AssetManager {
	return &AssetManager{
		writer:  writer,
		baseDir: baseDir,
	}
}

// SaveDocument は PDF を保存し、その保存先のパスを返します。
func (am *AssetManager) SaveDocument(ctx context.Context, doc *Document) (string, error) {
	fullPath, err := ResolveOutputPath(am.baseDir, doc.FileName)
	if err != nil {
		return "", err
	}
	if err := am.writer.Write(ctx, fullPath, doc.Data); err != nil {
		return "", fmt.Errorf("asset_manager: PDF の保存に失敗しました: %w", err)
	}
	return fullPath, nil
}
