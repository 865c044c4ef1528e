package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shouni/go-coloring-kit/pkg/domain"
)

// DefaultLibraryKey は本のコレクション全体を保存するスロット名です。
const DefaultLibraryKey = "magical-books"

// Library は完成した本のコレクションを1つの値として KV に保存します。
// 書き込みは常にコレクション全体の読み込み→変更→書き戻しです。
type Library struct {
	kv  KV
	key string
	mu  sync.Mutex
}

// NewLibrary は KV をラップした Library を返します。
func NewLibrary(kv KV) *Library {
	return &Library{kv: kv, key: DefaultLibraryKey}
}

// Save は本をコレクションの末尾に追加します。ID の重複は確認しません。
func (l *Library) Save(ctx context.Context, book domain.Book) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	books, err := l.load(ctx)
	if err != nil {
		return &domain.StoreError{Op: "save", Err: err}
	}
	books = append(books, book.Clone())
	if err := l.write(ctx, books); err != nil {
		return &domain.StoreError{Op: "save", Err: err}
	}

	slog.InfoContext(ctx, "Book saved to library", "book_id", book.ID, slog.Int("total", len(books)))
	return nil
}

// List は保存されている全ての本を保存順で返します。
func (l *Library) List(ctx context.Context) ([]domain.Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	books, err := l.load(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "list", Err: err}
	}
	return books, nil
}

// Get は ID が一致する最初の本を返します。
func (l *Library) Get(ctx context.Context, id string) (domain.Book, bool, error) {
	books, err := l.List(ctx)
	if err != nil {
		return domain.Book{}, false, err
	}
	for _, b := range books {
		if b.ID == id {
			return b, true, nil
		}
	}
	return domain.Book{}, false, nil
}

// Delete は ID が一致する本をコレクションから取り除きます。該当がなければ何も変わりません。
func (l *Library) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	books, err := l.load(ctx)
	if err != nil {
		return &domain.StoreError{Op: "delete", Err: err}
	}
	filtered := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if b.ID != id {
			filtered = append(filtered, b)
		}
	}
	if err := l.write(ctx, filtered); err != nil {
		return &domain.StoreError{Op: "delete", Err: err}
	}

	slog.InfoContext(ctx, "Book deleted from library",
		"book_id", id,
		slog.Int("removed", len(books)-len(filtered)),
	)
	return nil
}

func (l *Library) load(ctx context.Context) ([]domain.Book, error) {
	raw, err := l.kv.Get(ctx, l.key)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []domain.Book{}, nil
	}
	var books []domain.Book
	if err := json.Unmarshal(raw, &books); err != nil {
		return nil, fmt.Errorf("ライブラリのデコードに失敗しました: %w", err)
	}
	return books, nil
}

func (l *Library) write(ctx context.Context, books []domain.Book) error {
	raw, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("ライブラリのエンコードに失敗しました: %w", err)
	}
	return l.kv.Set(ctx, l.key, raw)
}
