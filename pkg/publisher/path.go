package publisher

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から最終的な出力パスを生成します。
// ファイル名にディレクトリ成分が含まれる場合はエラーにするのだ。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	if fileName == "" || strings.ContainsAny(fileName, `/\`) || fileName == ".." {
		return "", fmt.Errorf("無効なファイル名です: %q", fileName)
	}
	if baseDir == "" {
		baseDir = "."
	}
	return filepath.Join(baseDir, fileName), nil
}
