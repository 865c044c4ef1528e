package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteKV は SQLite の1テーブルを KV スロットとして使う実装です。
type SQLiteKV struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteKV はデータベースファイルを開き（なければ作成し）、スキーマを準備します。
func NewSQLiteKV(dbPath string) (*SQLiteKV, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("ディレクトリの作成に失敗しました: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("データベースを開けませんでした: %w", err)
	}
	// 書き込みは1コネクションに直列化する
	db.SetMaxOpenConns(1)

	kv := &SQLiteKV{db: db, dbPath: dbPath}
	if err := kv.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("スキーマの初期化に失敗しました: %w", err)
	}
	return kv, nil
}

func (s *SQLiteKV) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Close はデータベース接続を閉じます。
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}

// Path はデータベースファイルのパスを返します。
func (s *SQLiteKV) Path() string {
	return s.dbPath
}

func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("キー '%s' の読み込みに失敗しました: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("キー '%s' の書き込みに失敗しました: %w", key, err)
	}
	return nil
}
