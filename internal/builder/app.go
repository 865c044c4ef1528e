package builder

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-coloring-kit/internal/config"
	"github.com/shouni/go-coloring-kit/pkg/publisher"
	"github.com/shouni/go-coloring-kit/pkg/store"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config  *config.Config         // Configは、環境変数とフラグから決まった設定です。
	Options config.GenerateOptions // Optionsは、コマンドラインから渡された実行時の設定です。
	Library *store.Library         // Libraryは、完成した本のコレクションです。
	Assets  *publisher.AssetManager
	kv      *store.SQLiteKV
}

// NewAppContext はライブラリのデータベースを開き、AppContext を生成する
func NewAppContext(cfg *config.Config) (*AppContext, error) {
	kv, err := store.NewSQLiteKV(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("ライブラリを開けませんでした (%s): %w", cfg.DBPath, err)
	}
	slog.Debug("ライブラリを開きました", "db_path", kv.Path())

	return &AppContext{
		Config:  cfg,
		Options: cfg.Options,
		Library: store.NewLibrary(kv),
		Assets:  publisher.NewAssetManager(publisher.LocalWriter{}, cfg.OutputDir),
		kv:      kv,
	}, nil
}

// Close はデータベース接続を閉じる
func (a *AppContext) Close() error {
	return a.kv.Close()
}
